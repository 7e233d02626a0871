package service

import (
	"crypto/rand"
	"math/big"
)

const (
	ReferenceLength      = 8
	MaxReferenceAttempts = 5

	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewReference returns a random uppercase alphanumeric payment reference.
// Uniqueness is checked by the caller against stored bookings.
func NewReference() (string, error) {
	max := big.NewInt(int64(len(referenceAlphabet)))
	buf := make([]byte, ReferenceLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = referenceAlphabet[n.Int64()]
	}
	return string(buf), nil
}
