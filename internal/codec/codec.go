// Package codec provides the base64 primitives behind the encrypt/decrypt tools.
package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Encode encodes text to standard base64.
func Encode(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// Decode decodes a standard base64 string back to the original text.
// Fails on malformed base64 or when the decoded bytes are not valid UTF-8.
func Decode(encoded string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("invalid base64 input: %w", err)
	}
	if !utf8.Valid(b) {
		return "", errors.New("decoded bytes are not valid UTF-8")
	}
	return string(b), nil
}

// Validate reports whether encoded is a decodable base64 string.
func Validate(encoded string) bool {
	_, err := Decode(encoded)
	return err == nil
}
