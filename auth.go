package rettiwt

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// CredentialLevel is the access tier a client operates at. It is fixed at
// construction; build a new client to change it.
type CredentialLevel int

const (
	LevelGuest CredentialLevel = iota
	LevelUser
)

func (l CredentialLevel) String() string {
	if l == LevelUser {
		return "user"
	}
	return "guest"
}

// Credential produces the request headers for its access tier.
type Credential interface {
	Level() CredentialLevel
	Headers() map[string]string
}

// userCredential is an authenticated session decoded from a stored API key.
type userCredential struct {
	authToken string
	ct0       string
	kdt       string
	twid      string
	userAgent string
}

func (c *userCredential) Level() CredentialLevel { return LevelUser }

func (c *userCredential) Headers() map[string]string {
	return sessionHeaders(c)
}

// guestCredential is an unauthenticated guest token.
type guestCredential struct {
	token string
}

func (c *guestCredential) Level() CredentialLevel { return LevelGuest }

func (c *guestCredential) Headers() map[string]string {
	return guestHeaders(c.token)
}

// ParseAPIKey decodes a stored API key into an authenticated credential.
// The key is the base64 form of the session cookie string
// "kdt=...;twid=...;ct0=...;auth_token=...". auth_token and ct0 are
// mandatory; the rest ride along in the cookie header when present.
func ParseAPIKey(key string) (Credential, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(key))
	if err != nil {
		return nil, fmt.Errorf("api key is not valid base64: %w", err)
	}
	cred := &userCredential{}
	for _, part := range strings.Split(string(raw), ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		switch name {
		case "auth_token":
			cred.authToken = value
		case "ct0":
			cred.ct0 = value
		case "kdt":
			cred.kdt = value
		case "twid":
			cred.twid = value
		}
	}
	if cred.authToken == "" || cred.ct0 == "" {
		return nil, fmt.Errorf("api key is missing auth_token or ct0 cookie")
	}
	return cred, nil
}

// checkAuthorization is the gate in front of every request: user-only
// resources fail fast at guest level, before any transport call.
func (c *Client) checkAuthorization(res Resource) error {
	if !guestAllowed(res) && c.level == LevelGuest {
		return &AuthorizationError{Resource: res, Level: c.level}
	}
	return nil
}

// activateGuest performs the guest-credential acquisition call.
func activateGuest(ctx context.Context, t Transport) (*guestCredential, error) {
	req := &Request{
		Resource: "GuestActivate",
		Method:   "POST",
		URL:      twitterAPIURL + "/1.1/guest/activate.json",
		Headers:  activationHeaders(),
	}
	body, err := t.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	var resp struct {
		GuestToken string `json:"guest_token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse guest activation: %w", err)
	}
	if resp.GuestToken == "" {
		return nil, fmt.Errorf("empty guest token in response")
	}
	return &guestCredential{token: resp.GuestToken}, nil
}
