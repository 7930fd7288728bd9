// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidToken = errors.New("invalid identity token")

// MaxTokenLength bounds caller-supplied tokens. Long enough for a UUID
// or a NewToken value with plenty of slack.
const MaxTokenLength = 128

// NewToken creates a random opaque voter token. Clients may also bring
// their own token; the server never distinguishes the two.
func NewToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate identity token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// ValidateToken checks that a caller-supplied token is usable as a
// ledger key. The token is otherwise opaque; no identity verification
// happens here.
func ValidateToken(token string) error {
	if token == "" {
		return fmt.Errorf("%w: empty", ErrInvalidToken)
	}
	if len(token) > MaxTokenLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidToken, MaxTokenLength)
	}
	if strings.ContainsAny(token, " \t\r\n") {
		return fmt.Errorf("%w: contains whitespace", ErrInvalidToken)
	}
	return nil
}
