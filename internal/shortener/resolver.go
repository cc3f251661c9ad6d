package shortener

import "strings"

// Kind is the outcome of resolving a hash for a client.
type Kind int

const (
	KindNotFound Kind = iota
	KindRedirect
	KindInterstitial
)

func (k Kind) String() string {
	switch k {
	case KindRedirect:
		return "redirect"
	case KindInterstitial:
		return "interstitial"
	default:
		return "not_found"
	}
}

// Platform identifies which app override an interstitial targets.
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
)

// Decision tells the HTTP layer what to send back.
//
// For KindRedirect, Target is the long URL. For KindInterstitial, Target is the app URL and
// Fallback is the optional web fallback (empty means none).
type Decision struct {
	Kind     Kind
	Target   string
	Fallback string
	Platform Platform
}

type rule struct {
	platform Platform
	matches  func(userAgent string) bool
	target   Field
	fallback Field
}

// Rules are evaluated in order; the first one whose predicate matches and whose app URL is
// present wins. Android comes first so a user agent advertising both platforms gets Android.
var rules = []rule{
	{
		platform: PlatformAndroid,
		matches: func(ua string) bool {
			return strings.Contains(ua, "Android")
		},
		target:   FieldAndroidURL,
		fallback: FieldAndroidFallbackURL,
	},
	{
		platform: PlatformIOS,
		matches: func(ua string) bool {
			return strings.Contains(ua, "iPhone") || strings.Contains(ua, "iPad")
		},
		target:   FieldIOSURL,
		fallback: FieldIOSFallbackURL,
	},
}

// Decide picks the response for a record and a User-Agent. It never fails.
func Decide(record *Record, userAgent string) Decision {
	if !record.Exists() {
		return Decision{Kind: KindNotFound}
	}

	for _, r := range rules {
		target := record.Get(r.target)
		if target == "" || !r.matches(userAgent) {
			continue
		}

		return Decision{
			Kind:     KindInterstitial,
			Target:   target,
			Fallback: record.Get(r.fallback),
			Platform: r.platform,
		}
	}

	return Decision{Kind: KindRedirect, Target: record.LongURL}
}
