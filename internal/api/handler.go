package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/dmitrymomot/chatmark/internal/view"
	"github.com/dmitrymomot/chatmark/pkg/environment"
	"github.com/dmitrymomot/chatmark/pkg/logger"
	"github.com/dmitrymomot/chatmark/pkg/requestid"
	"github.com/dmitrymomot/chatmark/pkg/sanitizer"
)

// Renderer renders chat message markdown to safe HTML.
type Renderer interface {
	Render(ctx context.Context, raw string, opts ...sanitizer.Option) (string, error)
}

// RenderRequest is the body of POST /render. Absent policy fields keep the
// service default; an empty list allows nothing.
type RenderRequest struct {
	Text                string   `json:"text"`
	AllowedTags         []string `json:"allowed_tags,omitempty"`
	AllowedAttributes   []string `json:"allowed_attributes,omitempty"`
	AllowDataAttributes *bool    `json:"allow_data_attributes,omitempty"`
}

func (r RenderRequest) options() []sanitizer.Option {
	opts := []sanitizer.Option{
		sanitizer.WithAllowedTags(r.AllowedTags...),
		sanitizer.WithAllowedAttributes(r.AllowedAttributes...),
	}
	if r.AllowDataAttributes != nil {
		opts = append(opts, sanitizer.WithDataAttributes(*r.AllowDataAttributes))
	}
	return opts
}

type RenderResult struct {
	HTML string `json:"html"`
}

type handlers struct {
	renderer     Renderer
	log          *slog.Logger
	maxTextBytes int64
}

func (h *handlers) render(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err != nil || mt != "application/json" {
			h.fail(w, r, ErrUnsupportedMediaType)
			return
		}
	}

	// JSON escaping can grow the text; the text itself is checked below.
	r.Body = http.MaxBytesReader(w, r.Body, 2*h.maxTextBytes+1024)

	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(w, r, ErrTextTooLarge)
			return
		}
		h.fail(w, r, errors.Join(ErrMalformedBody, err))
		return
	}
	if int64(len(req.Text)) > h.maxTextBytes {
		h.fail(w, r, ErrTextTooLarge)
		return
	}

	html, err := h.renderer.Render(r.Context(), req.Text, req.options()...)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, JSONResponse{
		Data: RenderResult{HTML: html},
		Meta: map[string]any{"request_id": requestid.FromContext(r.Context())},
	})
}

func (h *handlers) preview(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if int64(len(text)) > h.maxTextBytes {
		http.Error(w, ErrTextTooLarge.Error(), ErrTextTooLarge.Status)
		return
	}

	ctx := r.Context()
	params := view.PageParams{Text: text, RequestID: requestid.FromContext(ctx)}
	if text != "" {
		html, err := h.renderer.Render(ctx, text)
		if err != nil {
			h.log.ErrorContext(ctx, "preview render failed", logger.Error(err), logger.Handler("preview"))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		params.Messages = []view.MessageParams{{Role: "assistant", HTML: html}}
	}

	page, err := view.Render(ctx, view.Page(params))
	if err != nil {
		h.log.ErrorContext(ctx, "preview page failed", logger.Error(err), logger.Handler("preview"))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := errorToDetail(err)
	if status >= http.StatusInternalServerError && !environment.FromContext(r.Context()).IsProduction() {
		detail.Message = err.Error()
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.log.LogAttrs(r.Context(), level, "request error",
		logger.Error(err),
		slog.Int("status_code", status),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		logger.Component("api"),
	)

	h.respond(w, r, status, JSONResponse{Error: detail})
}

func (h *handlers) respond(w http.ResponseWriter, r *http.Request, status int, body JSONResponse) {
	if err := writeJSON(w, status, body); err != nil {
		h.log.ErrorContext(r.Context(), "failed to write response", logger.Error(err), logger.Component("api"))
	}
}

func (h *handlers) tooManyRequests(w http.ResponseWriter, r *http.Request) {
	h.fail(w, r, ErrTooManyRequests)
}
