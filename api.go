package rettiwt

import (
	"context"
	"fmt"
)

// GetTweetDetails fetches a single tweet by ID.
func (c *Client) GetTweetDetails(ctx context.Context, tweetID string) (*Tweet, error) {
	page, err := fetchPage(ctx, c, ResourceTweetDetails, FetchArgs{ID: tweetID}, decodeTweets)
	if err != nil {
		return nil, fmt.Errorf("TweetDetails: %w", err)
	}
	if len(page.Items) == 0 {
		return nil, fmt.Errorf("TweetDetails: tweet %s not found or unavailable", tweetID)
	}
	return page.Items[0], nil
}

// GetUserByUsername fetches a user profile by handle.
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	page, err := fetchPage(ctx, c, ResourceUserDetailsByUsername, FetchArgs{Username: username}, decodeUsers)
	if err != nil {
		return nil, fmt.Errorf("UserByScreenName: %w", err)
	}
	if len(page.Items) == 0 {
		return nil, fmt.Errorf("UserByScreenName: user %q not found or unavailable", username)
	}
	return page.Items[0], nil
}

// GetUserByID fetches a user profile by rest_id.
func (c *Client) GetUserByID(ctx context.Context, userID string) (*User, error) {
	page, err := fetchPage(ctx, c, ResourceUserDetailsByID, FetchArgs{ID: userID}, decodeUsers)
	if err != nil {
		return nil, fmt.Errorf("UserByRestId: %w", err)
	}
	if len(page.Items) == 0 {
		return nil, fmt.Errorf("UserByRestId: user %s not found or unavailable", userID)
	}
	return page.Items[0], nil
}

// GetUserTimeline fetches one page of a user's tweets. Pass the previous
// page's Next value as cursor to continue; an empty Next means the end.
func (c *Client) GetUserTimeline(ctx context.Context, userID string, count int, cursor string) (*CursoredData[*Tweet], error) {
	page, err := fetchPage(ctx, c, ResourceUserTimeline, FetchArgs{ID: userID, Count: count, Cursor: cursor}, decodeTweets)
	if err != nil {
		return nil, fmt.Errorf("UserTweets: %w", err)
	}
	return page, nil
}

// SearchTweets fetches one page of latest tweets matching a raw query.
func (c *Client) SearchTweets(ctx context.Context, query string, count int, cursor string) (*CursoredData[*Tweet], error) {
	page, err := fetchPage(ctx, c, ResourceTweetSearch, FetchArgs{Query: query, Count: count, Cursor: cursor}, decodeTweets)
	if err != nil {
		return nil, fmt.Errorf("SearchTimeline: %w", err)
	}
	return page, nil
}

// GetFollowers fetches one page of a user's followers.
func (c *Client) GetFollowers(ctx context.Context, userID string, count int, cursor string) (*CursoredData[*User], error) {
	page, err := fetchPage(ctx, c, ResourceUserFollowers, FetchArgs{ID: userID, Count: count, Cursor: cursor}, decodeUsers)
	if err != nil {
		return nil, fmt.Errorf("Followers: %w", err)
	}
	return page, nil
}

// GetFollowing fetches one page of the users a user follows.
func (c *Client) GetFollowing(ctx context.Context, userID string, count int, cursor string) (*CursoredData[*User], error) {
	page, err := fetchPage(ctx, c, ResourceUserFollowing, FetchArgs{ID: userID, Count: count, Cursor: cursor}, decodeUsers)
	if err != nil {
		return nil, fmt.Errorf("Following: %w", err)
	}
	return page, nil
}

// GetRetweeters fetches one page of the users who retweeted a tweet.
func (c *Client) GetRetweeters(ctx context.Context, tweetID string, count int, cursor string) (*CursoredData[*User], error) {
	page, err := fetchPage(ctx, c, ResourceTweetRetweeters, FetchArgs{ID: tweetID, Count: count, Cursor: cursor}, decodeUsers)
	if err != nil {
		return nil, fmt.Errorf("Retweeters: %w", err)
	}
	return page, nil
}

// CreateTweet posts a new tweet, optionally as a reply.
func (c *Client) CreateTweet(ctx context.Context, text, replyTo string) error {
	if err := c.post(ctx, ResourceCreateTweet, PostArgs{Text: text, ReplyTo: replyTo}); err != nil {
		return fmt.Errorf("CreateTweet: %w", err)
	}
	return nil
}

// FavoriteTweet likes a tweet.
func (c *Client) FavoriteTweet(ctx context.Context, tweetID string) error {
	if err := c.post(ctx, ResourceFavoriteTweet, PostArgs{ID: tweetID}); err != nil {
		return fmt.Errorf("FavoriteTweet: %w", err)
	}
	return nil
}
