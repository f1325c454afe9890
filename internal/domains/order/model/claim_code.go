package model

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const claimCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ClaimCodeLength is the fixed length of pickup codes.
const ClaimCodeLength = 8

// GenerateClaimCode returns a random pickup code of uppercase letters
// and digits. Codes are checked against a unique constraint on
// insert, so a collision surfaces as a retryable error rather than a
// silent overwrite.
func GenerateClaimCode() (string, error) {
	max := big.NewInt(int64(len(claimCodeAlphabet)))
	code := make([]byte, ClaimCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate claim code: %w", err)
		}
		code[i] = claimCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
