package rettiwt

import (
	"log/slog"
	"testing"
	"time"

	"github.com/omarcinkonis/rettiwt-go/jsontree"
)

var discard = slog.New(slog.DiscardHandler)

func tweetFrags(t *testing.T, body string) []*jsontree.Value {
	t.Helper()
	return jsontree.Search(mustParse(t, body), "__typename", "Tweet")
}

func userFrags(t *testing.T, body string) []*jsontree.Value {
	t.Helper()
	return jsontree.Search(mustParse(t, body), "__typename", "User")
}

func TestDecodeTweets(t *testing.T) {
	body := `{"results": [
		{"__typename": "Tweet", "rest_id": "10", "legacy": {
			"full_text": "hello world",
			"created_at": "Mon Jan 02 15:04:05 +0000 2024",
			"lang": "en",
			"favorite_count": 7,
			"retweet_count": 3,
			"quote_count": 1,
			"reply_count": 2,
			"user_id_str": "999"
		}, "views": {"count": "1200"}}
	]}`

	tweets := decodeTweets(tweetFrags(t, body), discard)
	if len(tweets) != 1 {
		t.Fatalf("expected 1 tweet, got %d", len(tweets))
	}
	tw := tweets[0]
	if tw.ID != "10" || tw.AuthorID != "999" || tw.Text != "hello world" {
		t.Fatalf("unexpected tweet: %+v", tw)
	}
	if tw.Likes != 7 || tw.Retweets != 3 || tw.Quotes != 1 || tw.Replies != 2 || tw.Views != 1200 {
		t.Fatalf("unexpected counters: %+v", tw)
	}
	want := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	if !tw.CreatedAt.Equal(want) {
		t.Fatalf("expected created at %v, got %v", want, tw.CreatedAt)
	}
}

func TestDecodeTweetsDropsMissingID(t *testing.T) {
	// One malformed fragment must not affect its siblings.
	body := `{"results": [
		{"__typename": "Tweet", "rest_id": "", "legacy": {"full_text": "tombstone"}},
		{"__typename": "Tweet", "rest_id": "11", "legacy": {"full_text": "ok"}}
	]}`

	tweets := decodeTweets(tweetFrags(t, body), discard)
	if len(tweets) != 1 {
		t.Fatalf("expected 1 tweet after dropping malformed fragment, got %d", len(tweets))
	}
	if tweets[0].ID != "11" {
		t.Fatalf("wrong survivor: %+v", tweets[0])
	}
}

func TestDecodeTweetsOptionalFieldsDefault(t *testing.T) {
	body := `{"results": [{"__typename": "Tweet", "rest_id": "12"}]}`

	tweets := decodeTweets(tweetFrags(t, body), discard)
	if len(tweets) != 1 {
		t.Fatalf("expected 1 tweet, got %d", len(tweets))
	}
	tw := tweets[0]
	if tw.Text != "" || tw.Views != 0 || !tw.CreatedAt.IsZero() {
		t.Fatalf("absent optional fields must map to zero values: %+v", tw)
	}
}

func TestDecodeUsers(t *testing.T) {
	body := `{"results": [
		{"__typename": "User", "id": "VXNlcjo0Mg==", "rest_id": "42", "legacy": {
			"name": "Test User",
			"screen_name": "testuser",
			"description": "  bio text  ",
			"followers_count": 100,
			"friends_count": 50,
			"statuses_count": 200,
			"listed_count": 5,
			"created_at": "Mon Jan 02 15:04:05 +0000 2020",
			"verified": false
		}, "is_blue_verified": true}
	]}`

	users := decodeUsers(userFrags(t, body), discard)
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	u := users[0]
	if u.ID != "42" || u.NodeID != "VXNlcjo0Mg==" || u.Username != "testuser" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.Bio != "bio text" {
		t.Fatalf("expected trimmed bio, got %q", u.Bio)
	}
	if !u.Verified {
		t.Fatal("blue verification must count as verified")
	}
}

func TestDecodeUsersRequiresBothIDs(t *testing.T) {
	// A User fragment missing the secondary node id is dropped; the
	// well-formed sibling survives.
	body := `{"results": [
		{"__typename": "User", "rest_id": "42", "legacy": {"screen_name": "broken"}},
		{"__typename": "User", "id": "VXNlcjo0Mw==", "rest_id": "43", "legacy": {"screen_name": "ok"}}
	]}`

	users := decodeUsers(userFrags(t, body), discard)
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	if users[0].Username != "ok" {
		t.Fatalf("wrong survivor: %+v", users[0])
	}
}

func TestDecodeWrongTagDropped(t *testing.T) {
	body := `{"results": [
		{"__typename": "UserUnavailable", "id": "x", "rest_id": "44"}
	]}`
	frags := jsontree.Search(mustParse(t, body), "__typename", "UserUnavailable")
	if got := decodeUsers(frags, discard); len(got) != 0 {
		t.Fatalf("expected 0 users for unavailable fragment, got %d", len(got))
	}
}
