// Package httpapi serves converted documents over plain HTTP.
//
// GET /doc?id=<id> returns the HTML fragment for the document. Failures are
// reported as JSON objects with an "error" field.
package httpapi

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dastrobu/doc-html-mcp/internal/docsource"
	"github.com/dastrobu/doc-html-mcp/internal/log"
	"github.com/dastrobu/doc-html-mcp/internal/richtext"
	"github.com/google/uuid"
	"github.com/zeebo/blake3"
)

// DefaultTimeout bounds a document lookup when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Error messages written in the "error" field.
const (
	MsgMissingID   = "Missing ?id= parameter"
	MsgFetchFailed = "Failed to fetch document"
)

// ErrNoSource is reported when the handler has no document source.
var ErrNoSource = errors.New("no document source configured")

// RequestIDHeader carries the id assigned to each request.
const RequestIDHeader = "X-Request-Id"

// Handler serves documents from a source.
type Handler struct {
	source    docsource.Source
	converter *richtext.Converter
	timeout   time.Duration
}

// NewHandler returns a handler converting documents from source. A
// non-positive timeout selects DefaultTimeout. With a nil source every
// lookup fails with 503 Service Unavailable.
func NewHandler(source docsource.Source, converter *richtext.Converter, timeout time.Duration) *Handler {
	if converter == nil {
		converter = richtext.NewConverter(nil)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Handler{source: source, converter: converter, timeout: timeout}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, requestID)

	logger := log.FromContext(r.Context()).With("[" + requestID + "] ")
	ctx := log.WithLogger(r.Context(), logger)

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: http.StatusText(http.StatusMethodNotAllowed)})
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: MsgMissingID})
		return
	}

	if h.source == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: MsgFetchFailed, Message: ErrNoSource.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	doc, err := h.source.Open(ctx, id)
	if err != nil {
		status := statusForError(err)
		logger.Printf("fetching %s failed with %d: %v", id, status, err)
		writeJSON(w, status, errorBody{Error: MsgFetchFailed, Message: err.Error()})
		return
	}

	body := []byte(h.converter.ConvertDocument(doc))
	etag := entityTag(body)
	logger.Debugf("converted %s (%d bytes) in %s", id, len(body), time.Since(start))

	w.Header().Set("ETag", etag)
	if matchesETag(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(body); err != nil {
		logger.Printf("writing response for %s: %v", id, err)
	}
}

// statusForError maps source errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, docsource.ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, docsource.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, docsource.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// entityTag returns a strong ETag derived from the BLAKE3 digest of body.
func entityTag(body []byte) string {
	h := blake3.New()
	_, _ = h.Write(body)
	sum := h.Sum(nil)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// matchesETag reports whether an If-None-Match header value matches etag.
func matchesETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for candidate := range strings.SplitSeq(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
