// Package ratelimiter は、OTPメール送信などの悪用されやすい操作の頻度を制限します。
package ratelimiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"community_backend/internal/api"
)

// Limiter は呼び出し元キーごとの固定ウィンドウ式レートリミッターです。
type Limiter struct {
	limit  int           // ウィンドウあたりの上限
	window time.Duration // どの単位でリセットするか

	mu     sync.Mutex
	counts map[string]int
	resets map[string]time.Time
}

// NewLimiter は新しいLimiterのインスタンスを生成します。
func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:  limit,
		window: window,
		counts: make(map[string]int),
		resets: make(map[string]time.Time),
	}
}

// Allow は指定キーの呼び出しを許可するかを返します。
// ウィンドウを過ぎたキーはカウントがリセットされます。
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if reset, ok := l.resets[key]; !ok || now.Sub(reset) >= l.window {
		l.counts[key] = 0
		l.resets[key] = now
	}

	l.counts[key]++
	return l.counts[key] <= l.limit
}

// Middleware はクライアントIPをキーにリクエストを制限するGinミドルウェアを返します。
func Middleware(l *Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				api.Error("Too many requests. Please try again later."))
			return
		}
		c.Next()
	}
}
