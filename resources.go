package rettiwt

// Resource names one supported operation against the X GraphQL API.
type Resource string

const (
	ResourceTweetDetails          Resource = "TweetResultByRestId"
	ResourceUserDetailsByUsername Resource = "UserByScreenName"
	ResourceUserDetailsByID       Resource = "UserByRestId"
	ResourceUserTimeline          Resource = "UserTweets"
	ResourceTweetSearch           Resource = "SearchTimeline"
	ResourceUserFollowers         Resource = "Followers"
	ResourceUserFollowing         Resource = "Following"
	ResourceTweetRetweeters       Resource = "Retweeters"
	ResourceCreateTweet           Resource = "CreateTweet"
	ResourceFavoriteTweet         Resource = "FavoriteTweet"
)

// guestAllowed reports whether a resource is reachable with guest
// credentials: single-entity lookups and a user's primary timeline.
// Everything else needs an authenticated session.
func guestAllowed(res Resource) bool {
	switch res {
	case ResourceTweetDetails, ResourceUserDetailsByUsername, ResourceUserDetailsByID, ResourceUserTimeline:
		return true
	}
	return false
}

// discriminator locates raw entity fragments in a response tree: objects
// whose key field equals value. project, when set, unwraps a container
// fragment to the entity nested inside it.
type discriminator struct {
	key     string
	value   string
	project []string
}

// extractorSpec drives extraction for one resource.
type extractorSpec struct {
	collection bool
	fragments  []discriminator
}

// extractors is the per-resource extraction table. It must stay exhaustive
// over the read resources above; extract panics on a missing entry.
var extractors = map[Resource]extractorSpec{
	ResourceTweetDetails: {
		fragments: []discriminator{{key: "__typename", value: "Tweet"}},
	},
	ResourceUserDetailsByUsername: {
		fragments: []discriminator{{key: "__typename", value: "User"}},
	},
	ResourceUserDetailsByID: {
		fragments: []discriminator{{key: "__typename", value: "User"}},
	},
	ResourceUserTimeline: {
		collection: true,
		fragments:  []discriminator{{key: "__typename", value: "TimelineTweet", project: []string{"tweet_results", "result"}}},
	},
	ResourceTweetSearch: {
		collection: true,
		fragments:  []discriminator{{key: "__typename", value: "TimelineTweet", project: []string{"tweet_results", "result"}}},
	},
	ResourceUserFollowers: {
		collection: true,
		fragments:  []discriminator{{key: "__typename", value: "TimelineUser", project: []string{"user_results", "result"}}},
	},
	ResourceUserFollowing: {
		collection: true,
		fragments:  []discriminator{{key: "__typename", value: "TimelineUser", project: []string{"user_results", "result"}}},
	},
	ResourceTweetRetweeters: {
		collection: true,
		fragments:  []discriminator{{key: "__typename", value: "TimelineUser", project: []string{"user_results", "result"}}},
	},
}
