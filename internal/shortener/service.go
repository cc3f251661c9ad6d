package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/serroba/shorty/internal/audit"
	"github.com/serroba/shorty/internal/messaging"
	"github.com/serroba/shorty/internal/metrics"
	"go.uber.org/zap"
)

// Decoder recovers the (day, sequence) pair from a hash.
type Decoder interface {
	Decode(hash string) (day, seq uint64, err error)
}

// Config holds the per-deployment service settings.
type Config struct {
	DefaultDomain string
	TTLDays       int
}

// ShortenRequest carries the raw, unvalidated arguments of a shorten call.
// An empty Domain selects the default domain.
type ShortenRequest struct {
	LongURL            string
	AndroidURL         string
	AndroidFallbackURL string
	IOSURL             string
	IOSFallbackURL     string
	Domain             string
	RequestID          string
}

// Link is a stored short link.
type Link struct {
	Hash     Hash
	ShortURL string
	Record
}

// ExpandRequest identifies a link by short URL, by hash, or by both.
type ExpandRequest struct {
	ShortURL string
	Hash     string
}

// Expansion is the result of a successful Expand.
type Expansion struct {
	Hash     Hash
	ShortURL string
	Record
}

type Service struct {
	generator *Generator
	records   RecordStore
	decoder   Decoder
	publish   messaging.Publish[audit.LinkCreated]
	logger    *zap.Logger
	cfg       Config
	now       Clock
}

func NewService(
	generator *Generator,
	records RecordStore,
	decoder Decoder,
	publish messaging.Publish[audit.LinkCreated],
	logger *zap.Logger,
	cfg Config,
) *Service {
	if publish == nil {
		publish = messaging.Discard[audit.LinkCreated]()
	}

	return &Service{
		generator: generator,
		records:   records,
		decoder:   decoder,
		publish:   publish,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Shorten validates the request, issues a new hash and stores the record under it.
// Every call yields a new hash, even for a URL that was shortened before.
func (s *Service) Shorten(ctx context.Context, req ShortenRequest) (*Link, error) {
	record := Record{
		LongURL:    NormalizeURL(req.LongURL),
		AndroidURL: req.AndroidURL,
		IOSURL:     req.IOSURL,
	}

	if !ValidURL(record.LongURL) {
		return nil, invalid(CodeInvalidURI, "longUrl", nil)
	}

	// App URLs use custom schemes and are stored as given; fallbacks must be web URLs.
	if req.AndroidURL != "" && !AppURLAllowed(req.AndroidURL) {
		return nil, invalid(CodeInvalidURI, "androidUrl", nil)
	}

	if req.IOSURL != "" && !AppURLAllowed(req.IOSURL) {
		return nil, invalid(CodeInvalidURI, "iosUrl", nil)
	}

	fallbacks := []struct {
		field string
		raw   string
		dst   *string
	}{
		{"androidFallbackUrl", req.AndroidFallbackURL, &record.AndroidFallbackURL},
		{"iosFallbackUrl", req.IOSFallbackURL, &record.IOSFallbackURL},
	}

	for _, fb := range fallbacks {
		if fb.raw == "" {
			continue
		}

		normalized := NormalizeURL(fb.raw)
		if !ValidURL(normalized) {
			return nil, invalid(CodeInvalidURI, fb.field, nil)
		}

		*fb.dst = normalized
	}

	domain := req.Domain
	if domain == "" {
		domain = s.cfg.DefaultDomain
	}

	if !ValidURL("http://" + domain) {
		return nil, invalid(CodeInvalidDomain, "domain", nil)
	}

	hash, err := s.generator.Generate(ctx)
	if err != nil {
		return nil, err
	}

	if err = s.records.Put(ctx, hash, &record, s.cfg.TTLDays); err != nil {
		return nil, fmt.Errorf("store %s: %w", hash, err)
	}

	metrics.RecordLinkCreated()

	link := &Link{
		Hash:     hash,
		ShortURL: ShortURL(domain, hash),
		Record:   record,
	}

	s.announce(ctx, link, req.RequestID)

	return link, nil
}

func (s *Service) announce(ctx context.Context, link *Link, requestID string) {
	event := &audit.LinkCreated{
		Hash:               string(link.Hash),
		ShortURL:           link.ShortURL,
		LongURL:            link.LongURL,
		AndroidURL:         link.AndroidURL,
		AndroidFallbackURL: link.AndroidFallbackURL,
		IOSURL:             link.IOSURL,
		IOSFallbackURL:     link.IOSFallbackURL,
		TTLDays:            s.cfg.TTLDays,
		RequestID:          requestID,
		CreatedAt:          s.now(),
	}

	if err := s.publish(ctx, event); err != nil {
		s.logger.Error("failed to publish link created event",
			zap.String("hash", string(link.Hash)),
			zap.Error(err),
		)
	}
}

// Resolve loads the record for hash and decides how to answer a client with userAgent.
// A missing record yields a KindNotFound decision, not an error.
func (s *Service) Resolve(ctx context.Context, hash Hash, userAgent string) (Decision, error) {
	record, err := s.records.GetAll(ctx, hash)
	if err != nil {
		return Decision{}, err
	}

	decision := Decide(record, userAgent)
	metrics.RecordResolution(decision.Kind.String(), string(decision.Platform))

	return decision, nil
}

// Expand looks up the record behind a short URL or a hash.
//
// A short URL must carry a hash produced under the configured salt. When both arguments are
// given they must name the same hash. A bare hash is looked up without decoding.
func (s *Service) Expand(ctx context.Context, req ExpandRequest) (*Expansion, error) {
	if req.ShortURL == "" && req.Hash == "" {
		return nil, invalid(CodeMissingShortURLOrHash, "shortUrl", nil)
	}

	hash := Hash(req.Hash)

	if req.ShortURL != "" {
		fromURL, ok := HashFromShortURL(req.ShortURL)
		if !ok {
			return nil, invalid(CodeInvalidShortURL, "shortUrl", nil)
		}

		if _, _, err := s.decoder.Decode(string(fromURL)); err != nil {
			return nil, invalid(CodeInvalidShortURL, "shortUrl", err)
		}

		if hash != "" && hash != fromURL {
			return nil, invalid(CodeArgsDontMatch, "hash", nil)
		}

		hash = fromURL
	}

	record, err := s.records.GetAll(ctx, hash)
	if err != nil {
		return nil, err
	}

	if !record.Exists() {
		return nil, &NotFoundError{Hash: hash}
	}

	return &Expansion{Hash: hash, ShortURL: req.ShortURL, Record: *record}, nil
}

// IsInputError reports whether err is caused by the caller and returns its code.
func IsInputError(err error) (string, bool) {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return inputErr.Code, true
	}

	return "", false
}
