package rettiwt

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/omarcinkonis/rettiwt-go/jsontree"
)

// Client is the top-level client for X's private GraphQL API. It is safe
// for concurrent use: extraction and deserialization are pure, and the only
// mutable state is the lazily acquired guest credential.
type Client struct {
	cfg       ClientConfig
	transport Transport
	level     CredentialLevel
	log       *slog.Logger

	mu    sync.Mutex
	cred  Credential
	group singleflight.Group
}

// NewClient creates a client. With an API key the client runs at user
// level; without one it runs at guest level and acquires a guest credential
// on first use.
func NewClient(cfg ClientConfig) (*Client, error) {
	cfg.defaults()

	transport := cfg.Transport
	if transport == nil {
		st, err := newStealthTransport(cfg.Proxy, cfg.RateLimit, cfg.Logger)
		if err != nil {
			return nil, err
		}
		transport = st
	}

	c := &Client{
		cfg:       cfg,
		transport: transport,
		level:     LevelGuest,
		log:       cfg.Logger,
	}

	if cfg.APIKey != "" {
		cred, err := ParseAPIKey(cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("api key: %w", err)
		}
		if uc, ok := cred.(*userCredential); ok && cfg.UserAgent != "" {
			uc.userAgent = cfg.UserAgent
		}
		c.cred = cred
		c.level = LevelUser
	}
	return c, nil
}

// Level returns the credential level the client was constructed at.
func (c *Client) Level() CredentialLevel { return c.level }

// credential returns the client's credential, acquiring a guest token on
// first use. Concurrent first callers collapse into a single activation
// call; a failed activation stays retryable on the next request.
func (c *Client) credential(ctx context.Context) (Credential, error) {
	c.mu.Lock()
	if c.cred != nil {
		cred := c.cred
		c.mu.Unlock()
		return cred, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do("guest", func() (any, error) {
		cred, err := activateGuest(ctx, c.transport)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.cred = cred
		c.mu.Unlock()
		c.log.Info("guest credential acquired")
		return cred, nil
	})
	if err != nil {
		return nil, fmt.Errorf("guest credential: %w", err)
	}
	return v.(Credential), nil
}

// fetch runs the read pipeline up to the parsed response tree:
// authorization gate, request build, transport call, parse.
func (c *Client) fetch(ctx context.Context, res Resource, args FetchArgs) (*jsontree.Value, error) {
	if err := c.checkAuthorization(res); err != nil {
		c.log.Debug("authorization denied", slog.String("resource", string(res)))
		return nil, err
	}
	cred, err := c.credential(ctx)
	if err != nil {
		return nil, err
	}
	req, err := newFetchRequest(res, args, cred)
	if err != nil {
		return nil, err
	}

	body, err := c.transport.Do(ctx, req)
	if err != nil {
		return nil, c.handleError(err, body)
	}
	if class := classifyError(body); class != errNone && !hasResponseData(body) {
		apiErr := &APIError{Resource: res, Code: class, Body: truncateBytes(body, 200)}
		return nil, c.handleError(apiErr, body)
	}

	tree, err := jsontree.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", res, err)
	}
	return tree, nil
}

// post runs the write pipeline: gate, request build, transport call. The
// response body is discarded; only the transport outcome matters.
func (c *Client) post(ctx context.Context, res Resource, args PostArgs) error {
	if err := c.checkAuthorization(res); err != nil {
		return err
	}
	cred, err := c.credential(ctx)
	if err != nil {
		return err
	}
	req, err := newPostRequest(res, args, cred)
	if err != nil {
		return err
	}

	body, err := c.transport.Do(ctx, req)
	if err != nil {
		return c.handleError(err, body)
	}
	if class := classifyError(body); class != errNone {
		apiErr := &APIError{Resource: res, Code: class, Body: truncateBytes(body, 200)}
		return c.handleError(apiErr, body)
	}
	c.log.Info("post succeeded", slog.String("resource", string(res)))
	return nil
}

// handleError gives the configured error handler a look at the failure
// before it propagates. The original error is returned unless the handler
// substitutes its own.
func (c *Client) handleError(err error, body []byte) error {
	if c.cfg.ErrorHandler != nil {
		if replaced := c.cfg.ErrorHandler(err, body); replaced != nil {
			return replaced
		}
	}
	return err
}

// fetchPage runs the full read pipeline for one page: fetch, extract,
// deserialize, wrap in a cursored result.
func fetchPage[T any](ctx context.Context, c *Client, res Resource, args FetchArgs, decode func([]*jsontree.Value, *slog.Logger) []T) (*CursoredData[T], error) {
	tree, err := c.fetch(ctx, res, args)
	if err != nil {
		return nil, err
	}
	frags, next := extract(tree, res)
	items := decode(frags, c.log)
	c.log.Debug("page fetched",
		slog.String("resource", string(res)),
		slog.Int("fragments", len(frags)),
		slog.Int("items", len(items)),
		slog.Bool("more", next != ""))
	return &CursoredData[T]{Items: items, Next: next}, nil
}
