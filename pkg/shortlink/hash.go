package shortlink

import (
	"math/rand/v2"

	"Foodgram-Backend/domain"
)

const hashAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// HashGenerator returns a candidate short hash. Uniqueness is checked by the
// caller.
type HashGenerator func() string

// RandomHash picks a length in [MinShortHashLength, MaxShortHashLength] and
// fills it from [A-Za-z0-9].
func RandomHash() string {
	n := domain.MinShortHashLength + rand.IntN(domain.MaxShortHashLength-domain.MinShortHashLength+1)
	b := make([]byte, n)
	for i := range b {
		b[i] = hashAlphabet[rand.IntN(len(hashAlphabet))]
	}
	return string(b)
}
