// Package invite generates and normalizes receipt invite codes.
package invite

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Alphabet is uppercase alphanumerics without the look-alikes 0/O and 1/I/L.
const Alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// DefaultLength is the code length used when none is configured.
const DefaultLength = 6

// ErrExhausted is returned when every attempt produced a code that was taken.
var ErrExhausted = errors.New("could not generate a unique invite code")

// Generator makes random invite codes.
type Generator struct {
	length int
}

// NewGenerator returns a Generator for codes of the given length.
// Non-positive lengths fall back to DefaultLength.
func NewGenerator(length int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{length: length}
}

// Generate returns a new random code.
func (g *Generator) Generate() (string, error) {
	max := big.NewInt(int64(len(Alphabet)))
	var b strings.Builder
	b.Grow(g.length)
	for i := 0; i < g.length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		b.WriteByte(Alphabet[n.Int64()])
	}
	return b.String(), nil
}

// Assign calls try with fresh codes until it succeeds, returns an error other
// than taken, or attempts run out. taken reports whether an error means the
// code is already in use.
func (g *Generator) Assign(attempts int, try func(code string) error, taken func(error) bool) (string, error) {
	if attempts <= 0 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		code, err := g.Generate()
		if err != nil {
			return "", err
		}
		err = try(code)
		if err == nil {
			return code, nil
		}
		if !taken(err) {
			return "", err
		}
	}
	return "", ErrExhausted
}

// Normalize prepares user input for lookup: codes match case-insensitively.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
