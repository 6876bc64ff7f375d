package requestid_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/chatmark/pkg/requestid"
)

// echoID answers with the request id it sees, the way /render reports it in
// its response meta.
func echoID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"meta": map[string]string{"request_id": requestid.FromContext(r.Context())},
		})
	})
}

func serve(t *testing.T, incoming string) (header, meta string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(`{"text":"x"}`))
	if incoming != "" {
		req.Header.Set(requestid.Header, incoming)
	}
	rec := httptest.NewRecorder()
	requestid.Middleware(echoID()).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Meta struct {
			RequestID string `json:"request_id"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Header().Get(requestid.Header), body.Meta.RequestID
}

func TestMiddleware_ReusesWellFormedID(t *testing.T) {
	t.Parallel()

	for _, id := range []string{
		"abc123",
		"chat_msg-42",
		"0190f1c2-7b1e-7c3a-9d4e-2f6a8b0c1d2e",
		strings.Repeat("a", 128),
	} {
		header, meta := serve(t, id)
		assert.Equal(t, id, header)
		assert.Equal(t, id, meta, "handler sees the same id the client sent")
	}
}

func TestMiddleware_ReplacesMissingOrMalformedID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		id   string
	}{
		{name: "missing", id: ""},
		{name: "markup", id: "<script>alert(1)</script>"},
		{name: "whitespace", id: "two words"},
		{name: "path", id: "../../etc"},
		{name: "header splitting", id: "a%0d%0aSet-Cookie:x"},
		{name: "too long", id: strings.Repeat("a", 129)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			header, meta := serve(t, tt.id)

			assert.NotEqual(t, tt.id, header)
			assert.Equal(t, header, meta)

			parsed, err := uuid.Parse(header)
			require.NoError(t, err, "replacement is a uuid")
			assert.Equal(t, uuid.Version(7), parsed.Version())
		})
	}
}

func TestMiddleware_DistinctIDsPerRequest(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for range 50 {
		header, _ := serve(t, "")
		_, dup := seen[header]
		require.False(t, dup, "id %s issued twice", header)
		seen[header] = struct{}{}
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, requestid.FromContext(context.Background()))
	assert.Equal(t, "msg-1", requestid.FromContext(requestid.WithContext(context.Background(), "msg-1")))
}

func TestNew(t *testing.T) {
	t.Parallel()

	a, b := requestid.New(), requestid.New()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	attr, ok := requestid.LoggerExtractor()(requestid.WithContext(context.Background(), "abc"))
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())

	_, ok = requestid.LoggerExtractor()(context.Background())
	assert.False(t, ok)
}
