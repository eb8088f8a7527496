// Package id generates short random identifiers for requests and traces.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes in use.
const (
	PrefixRequest = "req"
)

// requestIDSize keeps request IDs short enough for log lines.
const requestIDSize = 12

// Generate returns prefix-nanoid using the default 21-character URL-safe
// alphabet.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// RequestID returns a short request identifier such as "req-4f1ZbqXk0a_C".
// It falls back to a fixed marker when entropy is unavailable rather than
// failing the request.
func RequestID() string {
	id, err := gonanoid.New(requestIDSize)
	if err != nil {
		return PrefixRequest + "-unknown"
	}
	return PrefixRequest + "-" + id
}
