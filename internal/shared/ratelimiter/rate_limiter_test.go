package ratelimiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLimiter_Allow(t *testing.T) {
	t.Parallel()

	l := NewLimiter(2, time.Minute)

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"), "third call in the window must be rejected")

	// 別キーは独立してカウントされる
	assert.True(t, l.Allow("b"))
}

func TestLimiter_WindowReset(t *testing.T) {
	t.Parallel()

	l := NewLimiter(1, 10*time.Millisecond)

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))

	time.Sleep(15 * time.Millisecond)
	assert.True(t, l.Allow("a"), "a new window must admit the caller again")
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/limited", Middleware(NewLimiter(1, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/limited", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/limited", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
