package middlewarectx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/soundvault/soundvault/internal/http/middlewarectx"
)

func TestRateLimitMiddleware(t *testing.T) {
	// Лимит в один запрос без пополнения: второй запрос отклоняется
	handler := middlewarectx.RateLimitMiddleware(discardLogger(), rate.Limit(0), 1)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/dbproj/song/test", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/dbproj/song/test", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "too many requests", errorBody(t, second))
}
