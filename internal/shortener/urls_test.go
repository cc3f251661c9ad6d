package shortener_test

import (
	"testing"

	"github.com/serroba/shorty/internal/shortener"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/path?a=1&b=2#frag", "https://example.com/path?a=1&b=2#frag"},
		{"http://de.wikipedia.org/wiki/Elf (Begriffsklärung)", "http://de.wikipedia.org/wiki/Elf%20(Begriffskl%C3%A4rung)"},
		{"http://example.com/already%20escaped", "http://example.com/already%20escaped"},
		{"http://example.com/a b\"c<d>", "http://example.com/a%20b%22c%3Cd%3E"},
		{"http://user@example.com/~x;y,z!$*'[]", "http://user@example.com/~x;y,z!$*'[]"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, shortener.NormalizeURL(tt.in))
		})
	}
}

func TestValidURL(t *testing.T) {
	t.Parallel()

	valid := []string{
		"http://example.com",
		"https://example.com/",
		"HTTPS://EXAMPLE.COM/Path?q=1",
		"ftp://files.example.org/pub",
		"ftps://files.example.org",
		"http://localhost:8888",
		"http://127.0.0.1:8080/x",
		"http://sub.domain.co.uk/a/b?c=d#e",
		"http://sho.rt",
	}

	invalid := []string{
		"",
		"example.com",
		"mailto:me@example.com",
		"myapp://open",
		"http://",
		"http://exa mple.com",
		"http://example.com/a b",
		"javascript:alert(1)",
		"https://store/app",
	}

	for _, u := range valid {
		assert.True(t, shortener.ValidURL(u), u)
	}

	for _, u := range invalid {
		assert.False(t, shortener.ValidURL(u), u)
	}
}

func TestHashFromShortURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want shortener.Hash
		ok   bool
	}{
		{"http://sho.rt/aB3dE", "aB3dE", true},
		{"http://sho.rt/aB3dE/", "aB3dE", true},
		{"https://sho.rt/a/B3", "aB3", true},
		{"/aB3dE", "aB3dE", true},
		{"http://sho.rt", "", false},
		{"http://sho.rt/", "", false},
		{"aB3dE", "", false},
		{"http://[::1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, ok := shortener.HashFromShortURL(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "SHORT:HI:19723", shortener.CounterKey("SHORT:", 19723))
	assert.Equal(t, "SHORT:URLS:aB3", shortener.RecordKey("SHORT:", "aB3"))
	assert.Equal(t, "SHORT:URLS:aB3:android_url", shortener.FieldKey("SHORT:", "aB3", shortener.FieldAndroidURL))
	assert.Equal(t, "SHORT:URLS:aB3:android_fallback_url", shortener.FieldKey("SHORT:", "aB3", shortener.FieldAndroidFallbackURL))
	assert.Equal(t, "SHORT:URLS:aB3:ios_url", shortener.FieldKey("SHORT:", "aB3", shortener.FieldIOSURL))
	assert.Equal(t, "SHORT:URLS:aB3:ios_fallback_url", shortener.FieldKey("SHORT:", "aB3", shortener.FieldIOSFallbackURL))
}

func TestAppURLAllowed(t *testing.T) {
	t.Parallel()

	for _, u := range []string{"myapp://open", "intent://scan/#Intent;scheme=zxing;end", "fb://profile/1", "https://example.com"} {
		assert.True(t, shortener.AppURLAllowed(u), u)
	}

	for _, u := range []string{"", "no-scheme", "javascript:alert(1)", "JavaScript:alert(1)", " data:text/html,x", "vbscript:x"} {
		assert.False(t, shortener.AppURLAllowed(u), u)
	}
}
