package rettiwt

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/omarcinkonis/rettiwt-go/jsontree"
)

// createdAtLayout is X's legacy timestamp format.
const createdAtLayout = "Mon Jan 02 15:04:05 +0000 2006"

// tweetFragment mirrors the fields of a raw Tweet result we care about.
type tweetFragment struct {
	TypeName string `json:"__typename"`
	RestID   string `json:"rest_id"`
	Legacy   struct {
		FullText      string `json:"full_text"`
		CreatedAt     string `json:"created_at"`
		Lang          string `json:"lang"`
		FavoriteCount int    `json:"favorite_count"`
		RetweetCount  int    `json:"retweet_count"`
		QuoteCount    int    `json:"quote_count"`
		ReplyCount    int    `json:"reply_count"`
		UserIDStr     string `json:"user_id_str"`
	} `json:"legacy"`
	Views struct {
		Count string `json:"count"`
	} `json:"views"`
}

// userFragment mirrors the fields of a raw User result we care about.
type userFragment struct {
	TypeName string `json:"__typename"`
	ID       string `json:"id"`
	RestID   string `json:"rest_id"`
	Legacy   struct {
		Name           string `json:"name"`
		ScreenName     string `json:"screen_name"`
		Description    string `json:"description"`
		FollowersCount int    `json:"followers_count"`
		FriendsCount   int    `json:"friends_count"`
		StatusesCount  int    `json:"statuses_count"`
		ListedCount    int    `json:"listed_count"`
		CreatedAt      string `json:"created_at"`
		Verified       bool   `json:"verified"`
	} `json:"legacy"`
	IsBlueVerified bool `json:"is_blue_verified"`
}

// decodeTweets converts raw fragments into Tweet entities. Fragments that
// fail the shape check (wrong tag or empty rest_id) are dropped silently:
// X routinely embeds partial or tombstoned entities, and one bad fragment
// must not abort the page.
func decodeTweets(frags []*jsontree.Value, log *slog.Logger) []*Tweet {
	var tweets []*Tweet
	for _, frag := range frags {
		raw, err := jsontree.Decode[tweetFragment](frag)
		if err != nil {
			log.Debug("skip undecodable tweet fragment", slog.Any("error", err))
			continue
		}
		if raw.TypeName != "Tweet" || raw.RestID == "" {
			log.Debug("skip malformed tweet fragment",
				slog.String("typename", raw.TypeName),
				slog.String("rest_id", raw.RestID))
			continue
		}
		tweets = append(tweets, newTweet(raw))
	}
	return tweets
}

// decodeUsers converts raw fragments into User entities. A User needs both
// halves of X's split ID namespace: the numeric rest_id and the GraphQL
// node id. Fragments missing either are dropped silently.
func decodeUsers(frags []*jsontree.Value, log *slog.Logger) []*User {
	var users []*User
	for _, frag := range frags {
		raw, err := jsontree.Decode[userFragment](frag)
		if err != nil {
			log.Debug("skip undecodable user fragment", slog.Any("error", err))
			continue
		}
		if raw.TypeName != "User" || raw.RestID == "" || raw.ID == "" {
			log.Debug("skip malformed user fragment",
				slog.String("typename", raw.TypeName),
				slog.String("rest_id", raw.RestID))
			continue
		}
		users = append(users, newUser(raw))
	}
	return users
}

func newTweet(r tweetFragment) *Tweet {
	views := 0
	if r.Views.Count != "" {
		views, _ = strconv.Atoi(r.Views.Count)
	}
	return &Tweet{
		ID:        r.RestID,
		AuthorID:  r.Legacy.UserIDStr,
		Text:      r.Legacy.FullText,
		CreatedAt: parseCreatedAt(r.Legacy.CreatedAt),
		Lang:      r.Legacy.Lang,
		Likes:     r.Legacy.FavoriteCount,
		Retweets:  r.Legacy.RetweetCount,
		Quotes:    r.Legacy.QuoteCount,
		Replies:   r.Legacy.ReplyCount,
		Views:     views,
	}
}

func newUser(r userFragment) *User {
	return &User{
		ID:          r.RestID,
		NodeID:      r.ID,
		Username:    r.Legacy.ScreenName,
		DisplayName: r.Legacy.Name,
		Bio:         strings.TrimSpace(r.Legacy.Description),
		Followers:   r.Legacy.FollowersCount,
		Following:   r.Legacy.FriendsCount,
		TweetCount:  r.Legacy.StatusesCount,
		ListedCount: r.Legacy.ListedCount,
		CreatedAt:   parseCreatedAt(r.Legacy.CreatedAt),
		Verified:    r.Legacy.Verified || r.IsBlueVerified,
	}
}

// parseCreatedAt returns the zero time for absent or unparseable input;
// a bad timestamp never invalidates an otherwise well-formed entity.
func parseCreatedAt(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(createdAtLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
