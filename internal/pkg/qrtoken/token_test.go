package qrtoken

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	lifespans := []time.Duration{5 * time.Second, 15 * time.Second, time.Minute}
	for _, lifespan := range lifespans {
		issued := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
		token := Encode(issued)

		// Evaluated immediately, zero elapsed time.
		res, err := Decode(token, issued, lifespan)
		require.NoError(t, err)
		assert.Equal(t, issued.UnixMilli(), res.IssuedAt.UnixMilli())
	}
}

func TestDecodeFreshnessBoundaries(t *testing.T) {
	issued := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	lifespan := 15 * time.Second
	token := Encode(issued)

	_, err := Decode(token, issued.Add(lifespan-time.Second), lifespan)
	assert.NoError(t, err, "one second before expiry must be fresh")

	_, err = Decode(token, issued.Add(lifespan), lifespan)
	assert.NoError(t, err, "elapsed exactly equal to lifespan is still fresh")

	_, err = Decode(token, issued.Add(lifespan+time.Second), lifespan)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestDecodeInvalidTokens(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"missing marker", base64.StdEncoding.EncodeToString([]byte("1717232400000"))},
		{"wrong marker", base64.StdEncoding.EncodeToString([]byte("TOKEN:1717232400000"))},
		{"non-numeric timestamp", base64.StdEncoding.EncodeToString([]byte("TIMESTAMP:abc"))},
		{"empty", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Decode(c.token, now, 15*time.Second)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
