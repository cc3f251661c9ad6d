package hashid_test

import (
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/serroba/shorty/internal/hashid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var urlSafe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

func newCodec(t *testing.T, salt string) *hashid.Codec {
	t.Helper()

	c, err := hashid.New(hashid.Options{Salt: salt})
	require.NoError(t, err)

	return c
}

func TestCodec_RoundTrip(t *testing.T) {
	pairs := [][2]uint64{
		{0, 1},
		{16000, 1},
		{19723, 42},
		{19723, math.MaxInt32},
		{19723, math.MaxInt32 + 1},
		{365 * 500, 1 << 40},
	}

	for _, salt := range []string{"", "pepper", "a much longer salt with spaces", "ünïcödé"} {
		c := newCodec(t, salt)

		for _, p := range pairs {
			hash, err := c.Encode(p[0], p[1])
			require.NoError(t, err)
			assert.Regexp(t, urlSafe, hash)

			day, seq, err := c.Decode(hash)
			require.NoError(t, err, "salt %q pair %v", salt, p)
			assert.Equal(t, p[0], day)
			assert.Equal(t, p[1], seq)
		}
	}
}

func TestCodec_Deterministic(t *testing.T) {
	a := newCodec(t, "salt")
	b := newCodec(t, "salt")

	h1, err := a.Encode(19000, 7)
	require.NoError(t, err)

	h2, err := b.Encode(19000, 7)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
}

func TestCodec_DistinctPairsDistinctHashes(t *testing.T) {
	c := newCodec(t, "salt")
	seen := make(map[string]struct{})

	for day := uint64(19000); day < 19003; day++ {
		for seq := uint64(1); seq <= 300; seq++ {
			hash, err := c.Encode(day, seq)
			require.NoError(t, err)

			_, dup := seen[hash]
			require.False(t, dup, "duplicate hash %s", hash)
			seen[hash] = struct{}{}
		}
	}
}

func TestCodec_SaltChangesOutput(t *testing.T) {
	h1, err := newCodec(t, "one").Encode(19000, 1)
	require.NoError(t, err)

	h2, err := newCodec(t, "two").Encode(19000, 1)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestCodec_DecodeErrors(t *testing.T) {
	c := newCodec(t, "salt")

	t.Run("empty hash", func(t *testing.T) {
		_, _, err := c.Decode("")
		assert.ErrorIs(t, err, hashid.ErrDecode)
	})

	t.Run("characters outside alphabet", func(t *testing.T) {
		_, _, err := c.Decode("ab-c_d")
		assert.ErrorIs(t, err, hashid.ErrDecode)
	})

	t.Run("truncated hash", func(t *testing.T) {
		valid, err := c.Encode(1, 2)
		require.NoError(t, err)

		_, _, err = c.Decode(valid[:1])
		assert.ErrorIs(t, err, hashid.ErrDecode)
	})

	t.Run("hash from another salt", func(t *testing.T) {
		foreign, err := newCodec(t, "other").Encode(19000, 5)
		require.NoError(t, err)

		day, seq, err := c.Decode(foreign)
		if err == nil {
			// A foreign hash may happen to be canonical here, but never for the same pair.
			assert.False(t, day == 19000 && seq == 5)
		}
	})
}

func TestShuffle(t *testing.T) {
	t.Run("empty salt keeps alphabet", func(t *testing.T) {
		assert.Equal(t, hashid.DefaultAlphabet, hashid.Shuffle(hashid.DefaultAlphabet, ""))
	})

	t.Run("is a permutation", func(t *testing.T) {
		shuffled := hashid.Shuffle(hashid.DefaultAlphabet, "some salt")

		assert.Len(t, shuffled, len(hashid.DefaultAlphabet))
		assert.NotEqual(t, hashid.DefaultAlphabet, shuffled)

		for _, r := range hashid.DefaultAlphabet {
			assert.Equal(t, 1, strings.Count(shuffled, string(r)))
		}
	})
}
