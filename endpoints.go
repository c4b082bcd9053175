package rettiwt

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	graphQLBase   = "https://x.com/i/api/graphql"
	twitterAPIURL = "https://api.twitter.com"
)

// bearerTokens is the list of known X web-app bearer tokens.
var bearerTokens = []string{
	"AAAAAAAAAAAAAAAAAAAAANRILgAAAAAAnNwIzUejRCOuH5E6I8xnZz4puTs%3D1Zv7ttfk8LF81IUq16cHjhLTvJu4FA33AGWWjCpTnA",
	"AAAAAAAAAAAAAAAAAAAAAFQODgEAAAAAVHTp76lzh3rFzcHbmHVvQxYYpTw%3DckAlMINMjmCwxUcaXbAN4XqJVdgMJaHqNOFgPMK0zN1qLqLQCF",
}

// BearerToken is the active bearer token (first in list).
var BearerToken = bearerTokens[0]

// Request is the opaque descriptor handed to the transport: everything it
// needs to execute one HTTP exchange.
type Request struct {
	Resource Resource
	Method   string
	URL      string
	Headers  map[string]string
	Body     []byte
}

// Endpoint holds the operation ID, path name, and per-operation feature flags.
type Endpoint struct {
	ID       string
	Name     string
	Features map[string]any
}

// URL returns the full URL for this endpoint.
func (e Endpoint) URL() string {
	return fmt.Sprintf("%s/%s/%s", graphQLBase, e.ID, e.Name)
}

// Endpoints maps resources to their current GraphQL IDs and feature flags.
var Endpoints = map[Resource]Endpoint{
	ResourceTweetDetails:          {ID: "Xl5pC_lBkBOhjhqyoa-A1g", Name: "TweetResultByRestId", Features: gqlFeatures()},
	ResourceUserDetailsByUsername: {ID: "1VOOyvKkiI3FMmkeDNxM9A", Name: "UserByScreenName", Features: gqlFeatures()},
	ResourceUserDetailsByID:       {ID: "WJ7rCtezBVT6nk6VM5R8Bw", Name: "UserByRestId", Features: gqlFeatures()},
	ResourceUserTimeline:          {ID: "HeWHY26ItCfUmm1e6ITjeA", Name: "UserTweets", Features: gqlFeatures()},
	ResourceTweetSearch:           {ID: "AIdc203rPpK_k_2KWSdm7g", Name: "SearchTimeline", Features: gqlFeatures()},
	ResourceUserFollowers:         {ID: "Elc_-qTARceHpztqhI9PQA", Name: "Followers", Features: gqlFeatures()},
	ResourceUserFollowing:         {ID: "C1qZ6bs-L3oc_TKSZyxkXQ", Name: "Following", Features: gqlFeatures()},
	ResourceTweetRetweeters:       {ID: "i-CI8t2pJD15euZJErEDrg", Name: "Retweeters", Features: gqlFeatures()},
	ResourceCreateTweet:           {ID: "a1p9RWpkYKBjWv_I3WzS-A", Name: "CreateTweet", Features: gqlFeatures()},
	ResourceFavoriteTweet:         {ID: "lI07N6Otwv1PhnEgXILM7A", Name: "FavoriteTweet", Features: nil},
}

// newFetchRequest builds the GET request descriptor for a read resource.
func newFetchRequest(res Resource, args FetchArgs, cred Credential) (*Request, error) {
	ep, ok := Endpoints[res]
	if !ok {
		return nil, fmt.Errorf("unknown resource: %s", res)
	}

	count := args.Count
	if count <= 0 {
		count = 20
	}

	var variables map[string]any
	var fieldToggles map[string]any
	switch res {
	case ResourceTweetDetails:
		variables = map[string]any{
			"tweetId":                args.ID,
			"withCommunity":          false,
			"includePromotedContent": false,
			"withVoice":              false,
		}
	case ResourceUserDetailsByUsername:
		variables = map[string]any{
			"screen_name":              args.Username,
			"withSafetyModeUserFields": true,
		}
	case ResourceUserDetailsByID:
		variables = map[string]any{
			"userId":                   args.ID,
			"withSafetyModeUserFields": true,
		}
	case ResourceUserTimeline:
		variables = map[string]any{
			"userId":                                 args.ID,
			"count":                                  count,
			"includePromotedContent":                 false,
			"withQuickPromoteEligibilityTweetFields": true,
			"withVoice":                              true,
			"withV2Timeline":                         true,
		}
	case ResourceTweetSearch:
		variables = map[string]any{
			"rawQuery":    args.Query,
			"count":       count,
			"querySource": "typed_query",
			"product":     "Latest",
		}
		fieldToggles = map[string]any{"withArticleRichContentState": false}
	case ResourceUserFollowers, ResourceUserFollowing:
		variables = map[string]any{
			"userId":                 args.ID,
			"count":                  count,
			"includePromotedContent": false,
		}
	case ResourceTweetRetweeters:
		variables = map[string]any{
			"tweetId":                args.ID,
			"count":                  count,
			"includePromotedContent": true,
		}
	default:
		return nil, fmt.Errorf("resource %s is not fetchable", res)
	}
	if args.Cursor != "" {
		variables["cursor"] = args.Cursor
	}

	return &Request{
		Resource: res,
		Method:   "GET",
		URL:      addGraphQLParams(ep.URL(), variables, ep.Features, fieldToggles),
		Headers:  cred.Headers(),
	}, nil
}

// newPostRequest builds the POST request descriptor for a write resource.
func newPostRequest(res Resource, args PostArgs, cred Credential) (*Request, error) {
	ep, ok := Endpoints[res]
	if !ok {
		return nil, fmt.Errorf("unknown resource: %s", res)
	}

	var variables map[string]any
	switch res {
	case ResourceCreateTweet:
		variables = map[string]any{
			"tweet_text":   args.Text,
			"dark_request": false,
			"media": map[string]any{
				"media_entities":     []any{},
				"possibly_sensitive": false,
			},
			"semantic_annotation_ids": []any{},
		}
		if args.ReplyTo != "" {
			variables["reply"] = map[string]any{
				"in_reply_to_tweet_id":   args.ReplyTo,
				"exclude_reply_user_ids": []any{},
			}
		}
	case ResourceFavoriteTweet:
		variables = map[string]any{"tweet_id": args.ID}
	default:
		return nil, fmt.Errorf("resource %s is not postable", res)
	}

	payload := map[string]any{
		"variables": variables,
		"queryId":   ep.ID,
	}
	if ep.Features != nil {
		payload["features"] = ep.Features
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", res, err)
	}

	return &Request{
		Resource: res,
		Method:   "POST",
		URL:      ep.URL(),
		Headers:  cred.Headers(),
		Body:     body,
	}, nil
}

// addGraphQLParams builds the full URL with variables, features, and
// optional fieldToggles.
func addGraphQLParams(url string, variables, features, fieldToggles map[string]any) string {
	v, _ := json.Marshal(variables)
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	result := url + sep + "variables=" + jsonEscape(v)
	if features != nil {
		f, _ := json.Marshal(features)
		result += "&features=" + jsonEscape(f)
	}
	if fieldToggles != nil {
		ft, _ := json.Marshal(fieldToggles)
		result += "&fieldToggles=" + jsonEscape(ft)
	}
	return result
}

func jsonEscape(b []byte) string {
	s := string(b)
	var result strings.Builder
	for _, ch := range s {
		switch {
		case ch == ' ':
			result.WriteString("%20")
		case ch == '"':
			result.WriteString("%22")
		case ch == '{':
			result.WriteString("%7B")
		case ch == '}':
			result.WriteString("%7D")
		case ch == '[':
			result.WriteString("%5B")
		case ch == ']':
			result.WriteString("%5D")
		case ch == ':':
			result.WriteString("%3A")
		case ch == ',':
			result.WriteString("%2C")
		case ch == '\'':
			result.WriteString("%27")
		case ch == '|':
			result.WriteString("%7C")
		default:
			result.WriteRune(ch)
		}
	}
	return result.String()
}

// gqlFeatures returns the canonical X GraphQL feature flags.
func gqlFeatures() map[string]any {
	return map[string]any{
		"articles_preview_enabled":                                                false,
		"c9s_tweet_anatomy_moderator_badge_enabled":                               true,
		"communities_web_enable_tweet_community_results_fetch":                    true,
		"creator_subscriptions_quote_tweet_preview_enabled":                       false,
		"creator_subscriptions_tweet_preview_api_enabled":                         true,
		"freedom_of_speech_not_reach_fetch_enabled":                               true,
		"graphql_is_translatable_rweb_tweet_is_translatable_enabled":              true,
		"longform_notetweets_consumption_enabled":                                 true,
		"longform_notetweets_inline_media_enabled":                                true,
		"longform_notetweets_rich_text_read_enabled":                              true,
		"premium_content_api_read_enabled":                                        false,
		"profile_label_improvements_pcf_label_in_post_enabled":                    false,
		"responsive_web_edit_tweet_api_enabled":                                   true,
		"responsive_web_enhance_cards_enabled":                                    false,
		"responsive_web_graphql_exclude_directive_enabled":                        true,
		"responsive_web_graphql_skip_user_profile_image_extensions_enabled":       false,
		"responsive_web_graphql_timeline_navigation_enabled":                      true,
		"responsive_web_grok_analyze_button_fetch_trends_enabled":                 false,
		"responsive_web_grok_analyze_post_followups_enabled":                      false,
		"responsive_web_grok_image_annotation_enabled":                            false,
		"responsive_web_grok_share_attachment_enabled":                            false,
		"responsive_web_media_download_video_enabled":                             false,
		"responsive_web_twitter_article_tweet_consumption_enabled":                true,
		"rweb_tipjar_consumption_enabled":                                         true,
		"rweb_video_timestamps_enabled":                                           true,
		"standardized_nudges_misinfo":                                             true,
		"tweet_awards_web_tipping_enabled":                                        false,
		"tweet_with_visibility_results_prefer_gql_limited_actions_policy_enabled": true,
		"tweet_with_visibility_results_prefer_gql_media_interstitial_enabled":     false,
		"tweetypie_unmention_optimization_enabled":                                true,
		"verified_phone_label_enabled":                                            false,
		"view_counts_everywhere_api_enabled":                                      true,
	}
}
