// Package classcode generates the short join codes students type to enroll
// in a classroom.
package classcode

import (
	"math/rand"
	"strings"
)

// Length is the fixed join-code length.
const Length = 6

// Alphabet is the 36-symbol code alphabet. Uppercase-only keeps codes
// unambiguous to type; collisions are expected and handled by the
// uniqueness check at creation time, not here.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generate returns a random Length-character code drawn uniformly from
// Alphabet. Not cryptographically secure.
func Generate() string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		b.WriteByte(Alphabet[rand.Intn(len(Alphabet))])
	}
	return b.String()
}

// Normalize upper-cases a user-entered code so lookups are
// case-insensitive.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
