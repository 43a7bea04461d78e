package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCORS(t *testing.T) {
	mw := NewCORS(CORSOptions{
		AllowedOrigins:   []string{"http://localhost:3000", " http://app.esprit.tn "},
		AllowCredentials: true,
	})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	do := func(method, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/api/clubs/public", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		rec := httptest.NewRecorder()
		mw(next).ServeHTTP(rec, req)
		return rec
	}

	t.Run("AllowedOrigin", func(t *testing.T) {
		rec := do(http.MethodGet, "http://localhost:3000")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, rec.Header().Values("Vary"), "Origin")
	})

	t.Run("TrimmedOrigin", func(t *testing.T) {
		rec := do(http.MethodGet, "http://app.esprit.tn")
		assert.Equal(t, "http://app.esprit.tn", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("UnknownOrigin", func(t *testing.T) {
		rec := do(http.MethodGet, "http://evil.example")
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("PreflightShortCircuits", func(t *testing.T) {
		rec := do(http.MethodOptions, "http://localhost:3000")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
		assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
	})
}
