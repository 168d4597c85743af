// Package handler はeventsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"community_backend/internal/api"
	"community_backend/internal/feature/events/domain/entity"
	"community_backend/internal/feature/events/usecase"
	identitydomain "community_backend/internal/feature/identity/domain"
)

// EventUsecase はイベント一覧と登録操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type EventUsecase interface {
	// List は全イベントを返します。トークン付きなら登録状況を付与します。
	List(ctx context.Context, token string) ([]entity.EventWithStatus, error)
	// Register は呼び出し元をイベントに登録します。
	Register(ctx context.Context, token string, eventID uint) (*usecase.RegisterResult, error)
}

// EventHandler は公開イベントエンドポイントのHTTPリクエストを処理します。
type EventHandler struct {
	events EventUsecase
}

// NewEventHandler はEventHandlerの新しいインスタンスを生成します。
func NewEventHandler(events EventUsecase) *EventHandler {
	return &EventHandler{events: events}
}

// bearerToken extracts the bearer token, empty when absent.
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}

// eventIDParam parses the :eventId path parameter.
func eventIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("eventId"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// List はイベント一覧APIエンドポイントを処理します。
// 公開エンドポイントのため、トークンが無くても・壊れていても200を返します。
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.events.List(c.Request.Context(), bearerToken(c))
	if err != nil {
		slog.Error("event list failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("Server error while fetching events"))
		return
	}
	c.JSON(http.StatusOK, api.OK("", gin.H{"events": events}))
}

// Register はイベント登録APIエンドポイントを処理します。
// - トークン欠落・拒否時は401を返却
// - イベント不在時は404を返却
// - 二重登録時は409を返却
// - 成功時は更新済みイベントと登録行を201で返却
func (h *EventHandler) Register(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, api.Error("Invalid event id"))
		return
	}

	result, err := h.events.Register(c.Request.Context(), bearerToken(c), eventID)
	if err != nil {
		status, resp := registerErrorResponse(err)
		slog.Warn("event registration failed", "error", err, "event_id", eventID, "remote_addr", c.ClientIP())
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusCreated, api.OK("Successfully registered for the event", result))
}

// registerErrorResponse は登録エラーをHTTPステータスへ対応付けます。
func registerErrorResponse(err error) (int, api.Response) {
	switch {
	case errors.Is(err, identitydomain.ErrNoToken):
		return http.StatusUnauthorized, api.Error("Access denied. No token provided.")
	case errors.Is(err, identitydomain.ErrInvalidToken):
		return http.StatusUnauthorized, api.Error("Invalid token")
	case errors.Is(err, identitydomain.ErrNoEmail):
		return http.StatusBadRequest, api.Error("Supabase user has no email")
	case errors.Is(err, usecase.ErrEventNotFound):
		return http.StatusNotFound, api.Error("Event not found")
	case errors.Is(err, usecase.ErrAlreadyRegistered):
		return http.StatusConflict, api.Error("You are already registered for this event")
	default:
		return http.StatusInternalServerError, api.Error("Server error during registration")
	}
}
