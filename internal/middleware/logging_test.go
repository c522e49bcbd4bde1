package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeRecorder struct {
	statuses   []int
	userErrors []string
}

func (f *fakeRecorder) RecordRequest(statusCode int, _ time.Duration) {
	f.statuses = append(f.statuses, statusCode)
}

func (f *fakeRecorder) RecordUserError(operation string) {
	f.userErrors = append(f.userErrors, operation)
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantCode  int
		wantLevel zapcore.Level
	}{
		{
			name:      "Implicit 200",
			handler:   func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) },
			wantCode:  http.StatusOK,
			wantLevel: zapcore.InfoLevel,
		},
		{
			name:      "Client error",
			handler:   func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadRequest) },
			wantCode:  http.StatusBadRequest,
			wantLevel: zapcore.WarnLevel,
		},
		{
			name:      "Server error",
			handler:   func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			wantCode:  http.StatusInternalServerError,
			wantLevel: zapcore.ErrorLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			recorder := &fakeRecorder{}

			h := RequestLogger(zap.New(core), recorder)(tt.handler)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/query", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
			assert.Equal(t, []int{tt.wantCode}, recorder.statuses)

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.wantLevel, entry.Level)
			assert.Equal(t, "http_request", entry.Message)

			fields := entry.ContextMap()
			assert.Equal(t, "/query", fields["path"])
			assert.Equal(t, int64(tt.wantCode), fields["status"])
			assert.Equal(t, rec.Header().Get(RequestIDHeader), fields["request_id"])
		})
	}
}

func TestRequestLogger_KeepsClientRequestID(t *testing.T) {
	h := RequestLogger(zap.NewNop(), &fakeRecorder{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-id")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "client-id", rec.Header().Get(RequestIDHeader))
}

func TestStatusRecorder_HijackUnsupported(t *testing.T) {
	sr := &statusRecorder{ResponseWriter: httptest.NewRecorder()}

	_, _, err := sr.Hijack()
	assert.Error(t, err)
}
