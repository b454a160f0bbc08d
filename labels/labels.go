// Package labels generates the fixed-width alphanumeric identifiers the
// simulator uses for elements and connections. The simulator treats a label
// as an opaque string, so the scheme only has to be injective, constant
// width, and stable across runs.
package labels

import (
	"errors"
	"fmt"
	"strings"
)

// alphabet exhausts the digits before overflowing into letters, so small
// meshes get familiar numeric-looking labels ("00000", "00001", ...).
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// DefaultWidth matches the 5-character label columns of the ELEME and CONNE
// blocks.
const DefaultWidth = 5

// ErrOverflow reports an index beyond the addressable label space
var ErrOverflow = errors.New("label space exhausted")

// Assigner maps cell indices to fixed-width labels. Label(i) is a pure
// function of i: the same index always yields the same label.
type Assigner struct {
	Width int
}

// NewAssigner returns an Assigner with the standard 5-character width
func NewAssigner() *Assigner {
	return &Assigner{Width: DefaultWidth}
}

// Capacity returns the number of distinct labels the width can address
func (a *Assigner) Capacity() int {
	cap := 1
	for i := 0; i < a.Width; i++ {
		cap *= len(alphabet)
	}
	return cap
}

// Label returns the fixed-width label for index i, or ErrOverflow when i is
// outside the addressable space.
func (a *Assigner) Label(i int) (string, error) {
	if i < 0 || i >= a.Capacity() {
		return "", fmt.Errorf("label index %d exceeds %d-character space (%d): %w",
			i, a.Width, a.Capacity(), ErrOverflow)
	}
	buf := make([]byte, a.Width)
	for pos := a.Width - 1; pos >= 0; pos-- {
		buf[pos] = alphabet[i%len(alphabet)]
		i /= len(alphabet)
	}
	return string(buf), nil
}

// Labels returns labels for indices [0, n), failing fast on overflow
func (a *Assigner) Labels(n int) ([]string, error) {
	if n > a.Capacity() {
		return nil, fmt.Errorf("%d cells exceed %d-character label space (%d): %w",
			n, a.Width, a.Capacity(), ErrOverflow)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		l, err := a.Label(i)
		if err != nil {
			return nil, err
		}
		out[i] = l
	}
	return out, nil
}

// Parse inverts Label, recovering the index from a fixed-width label
func (a *Assigner) Parse(label string) (int, error) {
	if len(label) != a.Width {
		return 0, fmt.Errorf("label %q is not %d characters wide", label, a.Width)
	}
	var i int
	for _, c := range label {
		pos := strings.IndexRune(alphabet, c)
		if pos < 0 {
			return 0, fmt.Errorf("label %q contains invalid character %q", label, c)
		}
		i = i*len(alphabet) + pos
	}
	return i, nil
}
