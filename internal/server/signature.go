// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-08-24
// Last Modified: 2026-08-29

package server

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
)

// githubUserAgentPrefix is the fixed vendor prefix GitHub sends on
// every hook delivery.
const githubUserAgentPrefix = "GitHub-Hookshot"

// hookError is a verification failure with the HTTP status it maps to.
type hookError struct {
	code   int
	reason string
}

func (e *hookError) Error() string { return e.reason }

// verifyGitHub checks a GitHub delivery before any body parsing:
// the X-Hub-Signature header must be present, declare sha1, and carry
// a valid HMAC of the raw body; the user agent must carry GitHub's
// vendor prefix. A declared algorithm other than sha1 is rejected as
// not implemented rather than silently accepted.
func verifyGitHub(body []byte, signature, userAgent, secret string) *hookError {
	if signature == "" {
		return &hookError{code: http.StatusForbidden, reason: "no signature header"}
	}

	algorithm, sign, found := strings.Cut(signature, "=")
	if !found {
		return &hookError{code: http.StatusForbidden, reason: "malformed signature header"}
	}
	if algorithm != "sha1" {
		return &hookError{code: http.StatusNotImplemented, reason: "unsupported signature algorithm " + algorithm}
	}

	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(sign)) {
		return &hookError{code: http.StatusForbidden, reason: "invalid signature"}
	}

	if !strings.HasPrefix(userAgent, githubUserAgentPrefix) {
		return &hookError{code: http.StatusForbidden, reason: "invalid user agent"}
	}

	return nil
}

// verifyGitLab checks a GitLab delivery: the X-Gitlab-Token header is
// the raw shared secret and must match exactly.
func verifyGitLab(token, secret string) *hookError {
	if token == "" {
		return &hookError{code: http.StatusForbidden, reason: "no token header"}
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
		return &hookError{code: http.StatusForbidden, reason: "invalid token"}
	}
	return nil
}
