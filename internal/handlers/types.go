package handlers

// Envelope is the bitly-compatible wrapper of every API answer. Data is an empty list on errors.
type Envelope struct {
	StatusCode int    `json:"status_code" example:"200"`
	StatusTxt  string `json:"status_txt"  example:"OK"`
	Data       any    `json:"data"`
}

// EnvelopeResponse carries an Envelope and the matching HTTP status.
type EnvelopeResponse struct {
	Status int
	Body   Envelope
}

type ShortenRequest struct {
	LongURL            string `doc:"URL to shorten"                       example:"https://example.com/very/long/path" query:"longUrl"`
	AndroidURL         string `doc:"App URL opened on Android devices"    example:"intent://open#Intent;end"           query:"androidUrl"`
	AndroidFallbackURL string `doc:"Web URL used when the app is missing" example:"https://play.google.com/store"      query:"androidFallbackUrl"`
	IOSURL             string `doc:"App URL opened on iPhone and iPad"    example:"myapp://open"                       query:"iosUrl"`
	IOSFallbackURL     string `doc:"Web URL used when the app is missing" example:"https://apps.apple.com/app/id1"     query:"iosFallbackUrl"`
	Domain             string `doc:"Host of the returned short URL"       example:"sho.rt"                             query:"domain"`
}

type ShortenData struct {
	LongURL            string `json:"long_url"`
	AndroidURL         string `json:"android_url,omitempty"`
	AndroidFallbackURL string `json:"android_fallback_url,omitempty"`
	IOSURL             string `json:"ios_url,omitempty"`
	IOSFallbackURL     string `json:"ios_fallback_url,omitempty"`
	URL                string `json:"url"`
	Hash               string `json:"hash"`
	GlobalHash         string `json:"global_hash"`
}

type ExpandRequest struct {
	ShortURL string `doc:"Short URL to expand" example:"http://sho.rt/aB3dE" query:"shortUrl"`
	Hash     string `doc:"Hash to expand"      example:"aB3dE"               query:"hash"`
}

type ExpandData struct {
	Expand []ExpandItem `json:"expand"`
}

// ExpandItem is either a found record or {error, hash}.
type ExpandItem struct {
	LongURL            string `json:"long_url,omitempty"`
	AndroidURL         string `json:"android_url,omitempty"`
	AndroidFallbackURL string `json:"android_fallback_url,omitempty"`
	IOSURL             string `json:"ios_url,omitempty"`
	IOSFallbackURL     string `json:"ios_fallback_url,omitempty"`
	Hash               string `json:"hash"`
	ShortURL           string `json:"short_url,omitempty"`
	Error              string `json:"error,omitempty"`
}

type RedirectRequest struct {
	Hash      string `doc:"Short link hash" example:"aB3dE" path:"hash"`
	UserAgent string `header:"User-Agent"`
}

// RedirectResponse is either a 301 with Location or a 200 HTML interstitial.
type RedirectResponse struct {
	Status       int
	Location     string `header:"Location"`
	ContentType  string `header:"Content-Type"`
	CacheControl string `header:"Cache-Control"`
	Body         []byte
}
