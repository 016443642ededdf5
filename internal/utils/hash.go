package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString computes an HMAC-SHA256 signature over data using hashKey and
// returns the hex-encoded digest.
//
// The server applies it to the client-supplied auth hash before storage, so
// a leaked users table is not directly usable for login.
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(hashString([]byte(data), hashKey))
}

// VerifyHashString reports whether data hashes to expected under hashKey,
// comparing in constant time.
func VerifyHashString(data, expected, hashKey string) bool {
	return hmac.Equal([]byte(HashString(data, hashKey)), []byte(expected))
}

func hashString(data []byte, hashKey string) []byte {
	h := hmac.New(sha256.New, []byte(hashKey))
	h.Write(data)
	return h.Sum(nil)
}
