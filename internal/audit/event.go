// Package audit records the trail of created short links.
package audit

import "time"

// TopicLinkCreated is the stream every stored link is announced on.
const TopicLinkCreated = "link.created"

// LinkCreated is published after a record has been written.
type LinkCreated struct {
	Hash               string    `json:"hash"`
	ShortURL           string    `json:"shortUrl"`
	LongURL            string    `json:"longUrl"`
	AndroidURL         string    `json:"androidUrl,omitempty"`
	AndroidFallbackURL string    `json:"androidFallbackUrl,omitempty"`
	IOSURL             string    `json:"iosUrl,omitempty"`
	IOSFallbackURL     string    `json:"iosFallbackUrl,omitempty"`
	TTLDays            int       `json:"ttlDays,omitempty"`
	RequestID          string    `json:"requestId,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}
