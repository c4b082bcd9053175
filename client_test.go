package rettiwt

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport records requests and serves canned bodies. Guest activation
// is answered separately so tests can count acquisitions.
type fakeTransport struct {
	mu          sync.Mutex
	calls       int
	activations int
	requests    []*Request
	body        []byte
	err         error
}

func (f *fakeTransport) Do(_ context.Context, req *Request) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if req.Resource == "GuestActivate" {
		f.activations++
		return []byte(`{"guest_token":"gt123"}`), nil
	}
	f.calls++
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.body, nil
}

func (f *fakeTransport) stats() (calls, activations int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls, f.activations
}

func guestClient(t *testing.T, f *fakeTransport) *Client {
	t.Helper()
	c, err := NewClient(ClientConfig{Transport: f})
	require.NoError(t, err)
	require.Equal(t, LevelGuest, c.Level())
	return c
}

func userClient(t *testing.T, f *fakeTransport) *Client {
	t.Helper()
	c, err := NewClient(ClientConfig{Transport: f, APIKey: testAPIKey(t)})
	require.NoError(t, err)
	require.Equal(t, LevelUser, c.Level())
	return c
}

func TestAuthorizationGateBlocksBeforeTransport(t *testing.T) {
	f := &fakeTransport{}
	c := guestClient(t, f)

	_, err := c.GetFollowers(context.Background(), "42", 20, "")
	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, ResourceUserFollowers, authErr.Resource)

	calls, activations := f.stats()
	assert.Zero(t, calls, "no transport call may be issued")
	assert.Zero(t, activations, "no credential may be acquired")
}

func TestGetTweetDetailsAsGuest(t *testing.T) {
	f := &fakeTransport{body: []byte(tweetDetailsBody)}
	c := guestClient(t, f)

	tweet, err := c.GetTweetDetails(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "123", tweet.ID)
	assert.Equal(t, "hi", tweet.Text)

	calls, activations := f.stats()
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, activations, "guest credential acquired lazily, once")

	// The guest token ends up on the request headers.
	assert.Equal(t, "gt123", f.requests[0].Headers["x-guest-token"])
}

func TestSearchTweetsPage(t *testing.T) {
	f := &fakeTransport{body: []byte(timelineBody)}
	c := userClient(t, f)

	page, err := c.SearchTweets(context.Background(), "golang", 20, "")
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "1", page.Items[0].ID)
	assert.Equal(t, "2", page.Items[1].ID)
	assert.Equal(t, "abc|", page.Next)

	_, activations := f.stats()
	assert.Zero(t, activations, "user-level client never acquires a guest token")

	req := f.requests[0]
	assert.Equal(t, "GET", req.Method)
	assert.Contains(t, req.URL, "SearchTimeline")
	assert.Contains(t, req.URL, "variables=")
	assert.Contains(t, req.Headers["cookie"], "auth_token=")
}

func TestCursorPropagation(t *testing.T) {
	f := &fakeTransport{body: []byte(timelineBody)}
	c := userClient(t, f)

	page, err := c.SearchTweets(context.Background(), "golang", 20, "")
	require.NoError(t, err)

	_, err = c.SearchTweets(context.Background(), "golang", 20, page.Next)
	require.NoError(t, err)
	assert.Contains(t, f.requests[1].URL, "cursor")
}

func TestCreateTweet(t *testing.T) {
	f := &fakeTransport{body: []byte(`{"data":{"create_tweet":{"tweet_results":{}}}}`)}
	c := userClient(t, f)

	require.NoError(t, c.CreateTweet(context.Background(), "hello", ""))

	req := f.requests[0]
	assert.Equal(t, "POST", req.Method)
	assert.Contains(t, req.URL, "CreateTweet")
	assert.Contains(t, string(req.Body), "tweet_text")
}

func TestCreateTweetRequiresUser(t *testing.T) {
	f := &fakeTransport{}
	c := guestClient(t, f)

	err := c.CreateTweet(context.Background(), "hello", "")
	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)
	calls, _ := f.stats()
	assert.Zero(t, calls)
}

func TestPostPropagatesTransportError(t *testing.T) {
	cause := &APIError{Resource: ResourceFavoriteTweet, Status: 503, Body: "unavailable"}
	f := &fakeTransport{err: cause}
	c := userClient(t, f)

	err := c.FavoriteTweet(context.Background(), "123")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 503, apiErr.Status)
}

func TestFetchRejectsErrorOnlyBody(t *testing.T) {
	f := &fakeTransport{body: []byte(`{"errors":[{"code":88}],"data":null}`)}
	c := userClient(t, f)

	_, err := c.SearchTweets(context.Background(), "golang", 20, "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, errBanned, apiErr.Code)
}

func TestErrorHandlerSeesFailure(t *testing.T) {
	cause := &APIError{Resource: ResourceTweetSearch, Status: 403, Body: "forbidden"}
	replaced := errors.New("classified: account flagged")

	var sawErr error
	f := &fakeTransport{err: cause}
	c, err := NewClient(ClientConfig{
		Transport: f,
		APIKey:    testAPIKey(t),
		ErrorHandler: func(err error, _ []byte) error {
			sawErr = err
			return replaced
		},
	})
	require.NoError(t, err)

	_, err = c.SearchTweets(context.Background(), "golang", 20, "")
	require.ErrorIs(t, err, replaced)
	assert.Equal(t, cause, sawErr)
}

func TestGuestCredentialAcquiredOnce(t *testing.T) {
	f := &fakeTransport{body: []byte(tweetDetailsBody)}
	c := guestClient(t, f)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.GetTweetDetails(context.Background(), "123")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	calls, activations := f.stats()
	assert.Equal(t, 16, calls)
	assert.Equal(t, 1, activations, "concurrent first use must collapse into one acquisition")
}

func TestGuestAcquisitionFailureIsRetryable(t *testing.T) {
	f := &failingActivationTransport{failures: 1, body: []byte(tweetDetailsBody)}
	c, err := NewClient(ClientConfig{Transport: f})
	require.NoError(t, err)

	_, err = c.GetTweetDetails(context.Background(), "123")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "guest credential"))

	// Next call reattempts acquisition and succeeds.
	tweet, err := c.GetTweetDetails(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "123", tweet.ID)
}

// failingActivationTransport fails the first n guest activations.
type failingActivationTransport struct {
	mu       sync.Mutex
	failures int
	body     []byte
}

func (f *failingActivationTransport) Do(_ context.Context, req *Request) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if req.Resource == "GuestActivate" {
		if f.failures > 0 {
			f.failures--
			return nil, &APIError{Resource: req.Resource, Status: 503, Body: "activation down"}
		}
		return []byte(`{"guest_token":"gt123"}`), nil
	}
	return f.body, nil
}
