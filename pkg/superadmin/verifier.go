// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package superadmin

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidToken = errors.New("invalid super token")
	ErrTokenExpired = errors.New("super token expired")
)

// Verifier mints and checks timestamped HMAC tokens for the super
// channel. A token is "<unix-seconds>.<hex-mac>" where the mac covers
// the timestamp, so a token stands on its own and needs no storage.
type Verifier struct {
	secret []byte
	maxAge time.Duration
}

func NewVerifier(secret string, maxAge time.Duration) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("super token secret must not be empty")
	}

	return &Verifier{
		secret: []byte(secret),
		maxAge: maxAge,
	}, nil
}

func (v *Verifier) Mint(now time.Time) (string, error) {
	ts := strconv.FormatInt(now.Unix(), 10)
	return fmt.Sprintf("%s.%s", ts, v.sign(ts)), nil
}

func (v *Verifier) Verify(token string, now time.Time) error {
	ts, mac, ok := strings.Cut(token, ".")
	if !ok {
		return ErrInvalidToken
	}

	issued, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return ErrInvalidToken
	}

	if !hmac.Equal([]byte(mac), []byte(v.sign(ts))) {
		return ErrInvalidToken
	}

	issuedAt := time.Unix(issued, 0)
	if issuedAt.After(now) {
		return ErrInvalidToken
	}
	if now.Sub(issuedAt) > v.maxAge {
		return ErrTokenExpired
	}

	return nil
}

func (v *Verifier) sign(ts string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(ts))
	return hex.EncodeToString(mac.Sum(nil))
}
