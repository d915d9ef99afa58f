package registry

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/codekettle/shorturl/internal/errx"
	"github.com/codekettle/shorturl/internal/httpx"
	"github.com/codekettle/shorturl/internal/probe"
)

const (
	invalidURLMessage = "invalid url"
	notFoundMessage   = "Short URL not found"
)

// createRequest is the JSON request body for registering a URL. The same
// endpoint also accepts a form submission with a "url" field.
type createRequest struct {
	URL string `json:"url"`
}

// createResponse is the JSON response for a registered URL. The short form
// is the bare numeric code, not a base62 string.
type createResponse struct {
	OriginalURL string `json:"original_url"`
	ShortURL    int64  `json:"short_url"`
}

// Handler provides the HTTP boundary consuming the registry. It performs
// syntactic validation and the reachability probe before the service is ever
// called; both failure modes collapse into the same "invalid url" outcome.
type Handler struct {
	service Service
	prober  probe.Prober
	logger  *slog.Logger
}

// HandlerConfig holds configuration for the handler.
type HandlerConfig struct {
	Service Service
	Prober  probe.Prober
	Logger  *slog.Logger
}

// NewHandler creates a new Handler instance.
func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	prober := cfg.Prober
	if prober == nil {
		prober = probe.NewDNS()
	}

	return &Handler{
		service: cfg.Service,
		prober:  prober,
		logger:  logger,
	}
}

// CreateShortURL handles POST requests to register a URL and assign a code.
func (h *Handler) CreateShortURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	logger := h.logger.With(
		"request_id", httpx.GetRequestID(ctx),
		"method", r.Method,
		"path", r.URL.Path,
	)

	rawURL, err := h.decodeURL(r)
	if err != nil {
		logger.WarnContext(ctx, "failed to decode request", "error", err.Error())
		httpx.WriteError(w, http.StatusBadRequest, invalidURLMessage)
		return
	}

	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" || !IsValid(rawURL) {
		logger.WarnContext(ctx, "url rejected by validator", "url", rawURL)
		httpx.WriteError(w, http.StatusBadRequest, invalidURLMessage)
		return
	}

	normalized := Normalize(rawURL)

	// Reachability runs after syntactic validation and before any code is
	// minted; a probe timeout counts as a failure.
	if err := h.prober.Resolve(ctx, Hostname(normalized)); err != nil {
		logger.WarnContext(ctx, "host did not resolve",
			"url", normalized,
			"error", err.Error(),
		)
		httpx.WriteError(w, http.StatusBadRequest, invalidURLMessage)
		return
	}

	entry, created, err := h.service.Register(ctx, normalized)
	if err != nil {
		h.handleRegisterError(ctx, w, err)
		return
	}

	logger.InfoContext(ctx, "url registered",
		"short_code", entry.ShortCode,
		"created", created,
	)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	httpx.WriteJSON(w, status, createResponse{
		OriginalURL: entry.OriginalURL,
		ShortURL:    entry.ShortCode,
	})
}

// ResolveShortURL handles GET requests to redirect a short code to its
// original URL.
func (h *Handler) ResolveShortURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	logger := h.logger.With(
		"request_id", httpx.GetRequestID(ctx),
		"method", r.Method,
		"path", r.URL.Path,
	)

	raw := r.PathValue("code")
	code, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logger.WarnContext(ctx, "non-numeric short code", "code", raw)
		httpx.WriteErrorShort(w, http.StatusNotFound, notFoundMessage, raw)
		return
	}

	entry, err := h.service.Lookup(ctx, code)
	if err != nil {
		h.handleLookupError(ctx, w, err, code)
		return
	}

	logger.InfoContext(ctx, "short code resolved",
		"short_code", code,
		"original_url", entry.OriginalURL,
	)

	http.Redirect(w, r, entry.OriginalURL, http.StatusFound)
}

// decodeURL extracts the candidate URL from either a form or a JSON body.
func (h *Handler) decodeURL(r *http.Request) (string, error) {
	if httpx.IsFormRequest(r) {
		return httpx.FormField(r, "url")
	}
	req, err := httpx.DecodeJSON[createRequest](r)
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// handleRegisterError handles errors from the Register service method.
func (h *Handler) handleRegisterError(ctx context.Context, w http.ResponseWriter, err error) {
	kind := errx.KindOf(err)

	logAttrs := []any{
		"error", err.Error(),
		"error_kind", kind,
		"operation", errx.OpOf(err),
	}

	switch kind {
	case errx.Invalid:
		h.logger.WarnContext(ctx, "invalid registration request", logAttrs...)
		httpx.WriteError(w, http.StatusBadRequest, invalidURLMessage)

	case errx.Exhausted:
		// Not retried further: the sparseness assumption behind the code
		// space has failed and that needs operator attention.
		h.logger.ErrorContext(ctx, "short code space exhausted", logAttrs...)
		httpx.WriteError(w, http.StatusInternalServerError,
			"unable to assign a short code at this time")

	case errx.Unavailable:
		h.logger.ErrorContext(ctx, "store unavailable", logAttrs...)
		httpx.WriteError(w, http.StatusServiceUnavailable,
			"unable to register url at this time")

	default:
		h.logger.ErrorContext(ctx, "unexpected error registering url", logAttrs...)
		httpx.WriteError(w, http.StatusInternalServerError,
			"unable to register url at this time")
	}
}

// handleLookupError handles errors from the Lookup service method.
func (h *Handler) handleLookupError(ctx context.Context, w http.ResponseWriter, err error, code int64) {
	kind := errx.KindOf(err)

	logAttrs := []any{
		"error", err.Error(),
		"error_kind", kind,
		"operation", errx.OpOf(err),
		"short_code", code,
	}

	switch kind {
	case errx.NotFound:
		h.logger.WarnContext(ctx, "short code not found", logAttrs...)
		httpx.WriteErrorShort(w, http.StatusNotFound, notFoundMessage, code)

	default:
		h.logger.ErrorContext(ctx, "unexpected error resolving short code", logAttrs...)
		httpx.WriteError(w, http.StatusInternalServerError,
			"unable to resolve this code at this time")
	}
}
