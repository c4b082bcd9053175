package rettiwt

import "time"

// Tweet is a single post, extracted from a raw GraphQL fragment.
type Tweet struct {
	ID        string
	AuthorID  string
	Text      string
	CreatedAt time.Time
	Lang      string
	Likes     int
	Retweets  int
	Quotes    int
	Replies   int
	Views     int
}

// User is an account profile.
type User struct {
	ID          string // rest_id, the stable numeric identifier
	NodeID      string // GraphQL node id (base64); the second half of X's split ID namespace
	Username    string
	DisplayName string
	Bio         string
	Followers   int
	Following   int
	TweetCount  int
	ListedCount int
	CreatedAt   time.Time
	Verified    bool
}

// CursoredData is one page of a paginated collection. Next is the opaque
// token for the following page, empty when no further page exists. A cursor
// is only meaningful for the same resource and arguments that produced it.
type CursoredData[T any] struct {
	Items []T
	Next  string
}

// FetchArgs carries the arguments for read resources. Which fields apply
// depends on the resource: ID for tweet/user lookups and lists, Username
// for by-username lookup, Query for search.
type FetchArgs struct {
	ID       string
	Username string
	Query    string
	Count    int
	Cursor   string
}

// PostArgs carries the arguments for write resources.
type PostArgs struct {
	ID      string // target tweet for favorites
	Text    string
	ReplyTo string
}
