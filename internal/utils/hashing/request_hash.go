// Package hashing derives the fixed-length fingerprints stored with
// idempotency records and API keys.
package hashing

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// SHA256Hex returns the lowercase hex sha256 digest of s.
func SHA256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// KeyHash scopes an idempotency key to a caller: the scope token is hashed,
// joined with the key, and hashed again.
func KeyHash(scopeToken, idempotencyKey string) string {
	return SHA256Hex(SHA256Hex(scopeToken) + ":" + idempotencyKey)
}

// Canonicalize re-encodes a JSON document with object keys sorted at every
// depth. Array order and number literals are preserved.
func Canonicalize(body []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode request body: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decode request body: trailing data")
	}

	// encoding/json writes map keys in sorted order.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// RequestHash fingerprints a JSON body so that documents differing only in
// key order or whitespace hash identically. An empty body hashes as {}.
func RequestHash(body []byte) (string, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	canonical, err := Canonicalize(body)
	if err != nil {
		return "", err
	}
	return SHA256Hex(string(canonical)), nil
}
