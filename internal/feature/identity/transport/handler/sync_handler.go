// Package handler はidentityフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"community_backend/internal/api"
	authentity "community_backend/internal/feature/auth/domain/entity"
	"community_backend/internal/feature/identity/domain"
)

// Reconciler は外部IDとローカルユーザーの同期ユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type Reconciler interface {
	// Sync はベアラートークンを検証し、対応するローカルUserを返します。
	Sync(ctx context.Context, token string) (*authentity.User, error)
}

// SyncHandler は /api/auth/supabase-sync のHTTPリクエストを処理します。
type SyncHandler struct {
	reconciler Reconciler
}

// NewSyncHandler はSyncHandlerの新しいインスタンスを生成します。
func NewSyncHandler(reconciler Reconciler) *SyncHandler {
	return &SyncHandler{reconciler: reconciler}
}

// BearerToken extracts the bearer token from an Authorization header,
// returning the empty string when absent.
func BearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}

// Sync は外部認証済みユーザーの同期エンドポイントを処理します。
// - トークン欠落・拒否時は401を返却
// - プロバイダーユーザーにメールが無い場合は400を返却
// - プロバイダー未設定・到達不能時は500を返却
func (h *SyncHandler) Sync(c *gin.Context) {
	user, err := h.reconciler.Sync(c.Request.Context(), BearerToken(c))
	if err != nil {
		status, resp := syncErrorResponse(err)
		slog.Warn("supabase sync failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(status, resp)
		return
	}

	slog.Info("user synced", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.OK("User synced successfully", gin.H{"user": user.Public()}))
}

// syncErrorResponse maps reconciliation errors onto the HTTP taxonomy.
// Provider rejection is the client's fault (401); provider misconfiguration
// or unreachability is the operator's fault (500).
func syncErrorResponse(err error) (int, api.Response) {
	switch {
	case errors.Is(err, domain.ErrNoToken):
		return http.StatusUnauthorized, api.Error("No token provided")
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, api.Error("Invalid token")
	case errors.Is(err, domain.ErrNoEmail):
		return http.StatusBadRequest, api.Error("Supabase user has no email")
	case errors.Is(err, domain.ErrProviderNotConfigured):
		return http.StatusInternalServerError, api.Error("Supabase is not configured on the server")
	default:
		return http.StatusInternalServerError, api.Error("Server error during user sync")
	}
}
