package handlers

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shorty/internal/shortener"
	"go.uber.org/zap"
)

const (
	statusOK        = "OK"
	errorNotFound   = "NOT_FOUND"
	cacheNoStore    = "no-store"
	contentTypeHTML = "text/html; charset=utf-8"
)

var hashPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// Shortener is the part of shortener.Service the HTTP layer needs.
type Shortener interface {
	Shorten(ctx context.Context, req shortener.ShortenRequest) (*shortener.Link, error)
	Resolve(ctx context.Context, hash shortener.Hash, userAgent string) (shortener.Decision, error)
	Expand(ctx context.Context, req shortener.ExpandRequest) (*shortener.Expansion, error)
}

// URLHandler serves the shorten, expand and redirect endpoints.
type URLHandler struct {
	service Shortener
	pages   *Pages
	logger  *zap.Logger
}

func NewURLHandler(service Shortener, pages *Pages, logger *zap.Logger) *URLHandler {
	return &URLHandler{
		service: service,
		pages:   pages,
		logger:  logger,
	}
}

type requestMetaKey struct{}

// RequestMeta holds per-request data gathered by middleware.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
	RequestID string
}

func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}

func ok(data any) *EnvelopeResponse {
	return &EnvelopeResponse{
		Status: http.StatusOK,
		Body:   Envelope{StatusCode: http.StatusOK, StatusTxt: statusOK, Data: data},
	}
}

// failure turns caller errors into a 400 envelope and everything else into a 500 problem.
func (h *URLHandler) failure(op string, err error) (*EnvelopeResponse, error) {
	if code, isInput := shortener.IsInputError(err); isInput {
		h.logger.Info("rejected request", zap.String("operation", op), zap.String("code", code), zap.Error(err))

		return &EnvelopeResponse{
			Status: http.StatusBadRequest,
			Body:   Envelope{StatusCode: http.StatusBadRequest, StatusTxt: code, Data: []any{}},
		}, nil
	}

	h.logger.Error("request failed", zap.String("operation", op), zap.Error(err))

	return nil, huma.Error500InternalServerError("backing store unavailable")
}

func (h *URLHandler) Shorten(ctx context.Context, req *ShortenRequest) (*EnvelopeResponse, error) {
	link, err := h.service.Shorten(ctx, shortener.ShortenRequest{
		LongURL:            req.LongURL,
		AndroidURL:         req.AndroidURL,
		AndroidFallbackURL: req.AndroidFallbackURL,
		IOSURL:             req.IOSURL,
		IOSFallbackURL:     req.IOSFallbackURL,
		Domain:             req.Domain,
		RequestID:          RequestMetaFromContext(ctx).RequestID,
	})
	if err != nil {
		return h.failure("shorten", err)
	}

	return ok(ShortenData{
		LongURL:            link.LongURL,
		AndroidURL:         link.AndroidURL,
		AndroidFallbackURL: link.AndroidFallbackURL,
		IOSURL:             link.IOSURL,
		IOSFallbackURL:     link.IOSFallbackURL,
		URL:                link.ShortURL,
		Hash:               string(link.Hash),
		GlobalHash:         string(link.Hash),
	}), nil
}

func (h *URLHandler) Expand(ctx context.Context, req *ExpandRequest) (*EnvelopeResponse, error) {
	exp, err := h.service.Expand(ctx, shortener.ExpandRequest{ShortURL: req.ShortURL, Hash: req.Hash})
	if err != nil {
		var notFound *shortener.NotFoundError
		if errors.As(err, &notFound) {
			return ok(ExpandData{Expand: []ExpandItem{{Error: errorNotFound, Hash: string(notFound.Hash)}}}), nil
		}

		return h.failure("expand", err)
	}

	return ok(ExpandData{Expand: []ExpandItem{{
		LongURL:            exp.LongURL,
		AndroidURL:         exp.AndroidURL,
		AndroidFallbackURL: exp.AndroidFallbackURL,
		IOSURL:             exp.IOSURL,
		IOSFallbackURL:     exp.IOSFallbackURL,
		Hash:               string(exp.Hash),
		ShortURL:           exp.ShortURL,
	}}}), nil
}

// Redirect answers GET /{hash}: a permanent redirect, an app interstitial or 404.
func (h *URLHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	if !hashPattern.MatchString(req.Hash) {
		return nil, huma.Error404NotFound("short url not found")
	}

	decision, err := h.service.Resolve(ctx, shortener.Hash(req.Hash), req.UserAgent)
	if err != nil {
		h.logger.Error("resolve failed", zap.String("hash", req.Hash), zap.Error(err))

		return nil, huma.Error500InternalServerError("backing store unavailable")
	}

	switch decision.Kind {
	case shortener.KindNotFound:
		return nil, huma.Error404NotFound("short url not found")
	case shortener.KindInterstitial:
		body, err := h.pages.Render(decision)
		if err != nil {
			h.logger.Error("render interstitial failed", zap.String("hash", req.Hash), zap.Error(err))

			return nil, huma.Error500InternalServerError("failed to render page")
		}

		return &RedirectResponse{
			Status:       http.StatusOK,
			ContentType:  contentTypeHTML,
			CacheControl: cacheNoStore,
			Body:         body,
		}, nil
	default:
		return &RedirectResponse{Status: http.StatusMovedPermanently, Location: decision.Target}, nil
	}
}
