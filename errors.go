package rettiwt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// AuthorizationError is returned before any network call when the client's
// credential level cannot reach the requested resource.
type AuthorizationError struct {
	Resource Resource
	Level    CredentialLevel
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s requires an authenticated session (credential level %s)", e.Resource, e.Level)
}

// APIError is a failed exchange with the platform: a network failure, a
// non-2xx status, or a 2xx body carrying a known error code.
type APIError struct {
	Resource Resource
	Status   int
	Code     errorClass
	Body     string
	Err      error
}

func (e *APIError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Resource, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s HTTP %d: %s", e.Resource, e.Status, e.Body)
	default:
		return fmt.Sprintf("%s error class %d: %s", e.Resource, e.Code, e.Body)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// RateLimited reports whether the exchange failed on a rate limit.
func (e *APIError) RateLimited() bool { return e.Status == 429 }

// ErrorHandler may inspect the raw response body of a failed exchange and
// classify it before the error is returned to the caller. Returning nil
// keeps the original error; returning a non-nil error replaces it.
type ErrorHandler func(err error, body []byte) error

// errorClass categorizes X API error responses for targeted handling.
type errorClass int

const (
	errNone          errorClass = iota
	errBanned                   // code 88, rate limit abuse
	errSuspended                // code 64, account suspended
	errLocked                   // code 326, account locked behind captcha
	errCSRF                     // code 353, csrf token mismatch
	errAuthExpired              // code 32, could not authenticate
	errBlocked                  // code 161, blocked from performing action
	errNotAuthorized            // codes 179 and 219, not authorized
	errInternal                 // code 131, internal platform error
)

// classifyError inspects a response body for known X error codes.
func classifyError(body []byte) errorClass {
	var errResp struct {
		Errors []struct {
			Code int `json:"code"`
		} `json:"errors"`
	}
	if json.Unmarshal(body, &errResp) != nil || len(errResp.Errors) == 0 {
		return errNone
	}

	for _, e := range errResp.Errors {
		switch e.Code {
		case 88:
			return errBanned
		case 64:
			return errSuspended
		case 326:
			return errLocked
		case 353:
			return errCSRF
		case 32:
			return errAuthExpired
		case 161:
			return errBlocked
		case 179, 219:
			return errNotAuthorized
		case 131:
			return errInternal
		}
	}
	return errNone
}

// hasResponseData returns true if the JSON body contains a non-null "data"
// field. Bodies with error codes but usable data still yield a page.
func hasResponseData(body []byte) bool {
	var probe struct {
		Data json.RawMessage `json:"data"`
	}
	if json.Unmarshal(body, &probe) != nil {
		return false
	}
	return len(probe.Data) > 0 && string(probe.Data) != "null"
}

// parseRateLimitReset parses the x-rate-limit-reset unix timestamp header.
// Falls back to 15 minutes from now if missing or invalid.
func parseRateLimitReset(v string) time.Time {
	if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Unix(ts, 0)
	}
	return time.Now().Add(15 * time.Minute)
}

func truncateBytes(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
