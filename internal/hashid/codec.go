// Package hashid encodes (day, sequence) pairs into short alphanumeric hashes and back.
package hashid

import (
	"errors"
	"fmt"

	"github.com/sqids/sqids-go"
)

// DefaultAlphabet is URL-path safe: no reserved or percent-encoded characters.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ErrDecode is returned when a hash was not produced with the codec's salt or is malformed.
var ErrDecode = errors.New("hash does not decode under configured salt")

// Codec is a salt-parameterized, reversible encoder. It is safe for concurrent use.
type Codec struct {
	sqids *sqids.Sqids
}

// Options configures a Codec.
type Options struct {
	Salt      string
	MinLength uint8
}

// New creates a codec whose alphabet is permuted by the salt.
func New(opts Options) (*Codec, error) {
	s, err := sqids.New(sqids.Options{
		Alphabet:  Shuffle(DefaultAlphabet, opts.Salt),
		MinLength: opts.MinLength,
	})
	if err != nil {
		return nil, fmt.Errorf("create sqids encoder: %w", err)
	}

	return &Codec{sqids: s}, nil
}

// Encode maps a day index and a per-day sequence to a hash.
func (c *Codec) Encode(day, seq uint64) (string, error) {
	return c.sqids.Encode([]uint64{day, seq})
}

// Decode recovers the day index and sequence from a hash.
func (c *Codec) Decode(hash string) (day, seq uint64, err error) {
	if hash == "" {
		return 0, 0, ErrDecode
	}

	numbers := c.sqids.Decode(hash)
	if len(numbers) != 2 {
		return 0, 0, ErrDecode
	}

	// Several strings can decode to the same numbers; only the canonical one is valid.
	canonical, err := c.sqids.Encode(numbers)
	if err != nil || canonical != hash {
		return 0, 0, ErrDecode
	}

	return numbers[0], numbers[1], nil
}

// Shuffle deterministically permutes alphabet using salt (the hashids consistent shuffle).
// An empty salt returns the alphabet unchanged.
func Shuffle(alphabet, salt string) string {
	if salt == "" {
		return alphabet
	}

	out := []byte(alphabet)
	key := []byte(salt)

	for i, v, p := len(out)-1, 0, 0; i > 0; i, v = i-1, v+1 {
		v %= len(key)
		n := int(key[v])
		p += n
		j := (n + v + p) % i
		out[i], out[j] = out[j], out[i]
	}

	return string(out)
}
