package shortener

import (
	"net/url"
	"regexp"
	"strings"
)

// Characters left untouched when quoting a URL. Everything else outside [A-Za-z0-9_.-]
// is percent-encoded byte by byte.
const urlSafeChars = "%/:=&?~#+!$,;'@()*[]"

var urlPattern = regexp.MustCompile(`(?i)^(?:http|ftp)s?://` +
	`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+(?:[A-Z]{2,6}\.?|[A-Z0-9-]{2,}\.?)|` +
	`localhost|` +
	`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
	`(?::\d+)?` +
	`(?:/?|[/?]\S+)$`)

// NormalizeURL percent-encodes characters that are not safe in a URL, such as spaces and
// non-ASCII bytes. Existing escapes are kept as they are.
func NormalizeURL(raw string) string {
	var b strings.Builder

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if isUnreserved(c) || strings.IndexByte(urlSafeChars, c) >= 0 {
			b.WriteByte(c)

			continue
		}

		const hex = "0123456789ABCDEF"

		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}

	return b.String()
}

func isUnreserved(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '.' || c == '-'
}

// ValidURL reports whether u is an absolute http, https, ftp or ftps URL with a host.
func ValidURL(u string) bool {
	return urlPattern.MatchString(u)
}

// HashFromShortURL extracts the hash from a short URL's path, stripping every slash.
func HashFromShortURL(shortURL string) (Hash, bool) {
	u, err := url.Parse(shortURL)
	if err != nil || !strings.HasPrefix(u.Path, "/") {
		return "", false
	}

	hash := strings.ReplaceAll(u.Path, "/", "")
	if hash == "" {
		return "", false
	}

	return Hash(hash), true
}

// Schemes that would run script in the short domain's origin if navigated to.
var scriptSchemes = map[string]bool{
	"javascript": true,
	"data":       true,
	"vbscript":   true,
}

// AppURLAllowed accepts any URL with a scheme, custom app schemes included, except
// script schemes.
func AppURLAllowed(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" {
		return false
	}

	return !scriptSchemes[strings.ToLower(u.Scheme)]
}

// ShortURL builds the public short URL for a hash.
func ShortURL(domain string, hash Hash) string {
	return "http://" + domain + "/" + string(hash)
}
