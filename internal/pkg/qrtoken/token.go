// Package qrtoken encodes and validates the rotating QR payload shown on
// the kiosk screen. The payload is a base64 wrapper around
// "TIMESTAMP:<epoch millis>"; freshness is checked against the lifespan
// configured in the attendance policy.
package qrtoken

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

const marker = "TIMESTAMP:"

var (
	ErrInvalidToken = errors.New("qr token is malformed or unrecognized")
	ErrExpiredToken = errors.New("qr token has expired")
)

// Result carries the decoded issue time for audit logging.
type Result struct {
	IssuedAt time.Time
}

// Encode builds the token for a given issue time.
func Encode(issuedAt time.Time) string {
	payload := marker + strconv.FormatInt(issuedAt.UnixMilli(), 10)
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

// Decode validates a scanned token against now and the configured lifespan.
// Returns ErrInvalidToken when the encoding or marker is wrong and
// ErrExpiredToken when the token is older than the lifespan. Elapsed time
// exactly equal to the lifespan is still fresh.
func Decode(token string, now time.Time, lifespan time.Duration) (Result, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Result{}, ErrInvalidToken
	}

	payload := string(raw)
	if !strings.HasPrefix(payload, marker) {
		return Result{}, ErrInvalidToken
	}

	millis, err := strconv.ParseInt(strings.TrimPrefix(payload, marker), 10, 64)
	if err != nil {
		return Result{}, ErrInvalidToken
	}

	issuedAt := time.UnixMilli(millis)
	if now.Sub(issuedAt) > lifespan {
		return Result{}, ErrExpiredToken
	}

	return Result{IssuedAt: issuedAt}, nil
}
