package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"community_backend/internal/api"
	"community_backend/internal/feature/events/domain/entity"
	"community_backend/internal/feature/events/transport/http/dto"
	"community_backend/internal/feature/events/usecase"
)

// AdminEventUsecase は管理者向けイベント操作のユースケースを定義します。
type AdminEventUsecase interface {
	List(ctx context.Context, token string) ([]entity.EventWithStatus, error)
	Create(ctx context.Context, in usecase.EventInput) (*entity.Event, error)
	Update(ctx context.Context, id uint, in usecase.EventInput) (*entity.Event, error)
	Delete(ctx context.Context, id uint) error
	Registrations(ctx context.Context, eventID uint) ([]entity.Registration, error)
}

// AdminEventHandler は管理者向けイベントエンドポイントのHTTPリクエストを処理します。
// ルーター側でAdminRequiredミドルウェアの内側に配置される前提です。
type AdminEventHandler struct {
	events AdminEventUsecase
}

// NewAdminEventHandler はAdminEventHandlerの新しいインスタンスを生成します。
func NewAdminEventHandler(events AdminEventUsecase) *AdminEventHandler {
	return &AdminEventHandler{events: events}
}

// List は管理画面向けのイベント一覧を処理します。登録状況の付与は不要です。
func (h *AdminEventHandler) List(c *gin.Context) {
	events, err := h.events.List(c.Request.Context(), "")
	if err != nil {
		slog.Error("admin event list failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("Server error while fetching events"))
		return
	}
	c.JSON(http.StatusOK, api.OK("", gin.H{"events": events}))
}

// Create はイベント作成エンドポイントを処理します。スラッグ重複は409です。
func (h *AdminEventHandler) Create(c *gin.Context) {
	var req dto.EventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("event create validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Error("Invalid request body"))
		return
	}

	event, err := h.events.Create(c.Request.Context(), eventInput(req))
	if err != nil {
		if errors.Is(err, usecase.ErrSlugExists) {
			c.JSON(http.StatusConflict, api.Error("An event with this slug already exists"))
			return
		}
		slog.Error("event create failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("Server error while creating the event"))
		return
	}

	slog.Info("event created", "slug", event.Slug, "event_id", event.ID)
	c.JSON(http.StatusCreated, api.OK("Event created successfully", gin.H{"event": event}))
}

// Update はイベント更新エンドポイントを処理します。
func (h *AdminEventHandler) Update(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, api.Error("Invalid event id"))
		return
	}

	var req dto.EventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("event update validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Error("Invalid request body"))
		return
	}

	event, err := h.events.Update(c.Request.Context(), eventID, eventInput(req))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEventNotFound):
			c.JSON(http.StatusNotFound, api.Error("Event not found"))
		case errors.Is(err, usecase.ErrSlugExists):
			c.JSON(http.StatusConflict, api.Error("An event with this slug already exists"))
		default:
			slog.Error("event update failed", "error", err, "event_id", eventID)
			c.JSON(http.StatusInternalServerError, api.Error("Server error while updating the event"))
		}
		return
	}

	c.JSON(http.StatusOK, api.OK("Event updated successfully", gin.H{"event": event}))
}

// Delete はイベント削除エンドポイントを処理します。紐づく登録行も削除されます。
func (h *AdminEventHandler) Delete(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, api.Error("Invalid event id"))
		return
	}

	if err := h.events.Delete(c.Request.Context(), eventID); err != nil {
		if errors.Is(err, usecase.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, api.Error("Event not found"))
			return
		}
		slog.Error("event delete failed", "error", err, "event_id", eventID)
		c.JSON(http.StatusInternalServerError, api.Error("Server error while deleting the event"))
		return
	}

	slog.Info("event deleted", "event_id", eventID)
	c.JSON(http.StatusOK, api.OK("Event deleted successfully", nil))
}

// Registrations は指定イベントの登録台帳レポートを処理します。
func (h *AdminEventHandler) Registrations(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, api.Error("Invalid event id"))
		return
	}

	regs, err := h.events.Registrations(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, usecase.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, api.Error("Event not found"))
			return
		}
		slog.Error("registration report failed", "error", err, "event_id", eventID)
		c.JSON(http.StatusInternalServerError, api.Error("Server error while fetching registrations"))
		return
	}

	c.JSON(http.StatusOK, api.OK("", gin.H{
		"registrations": regs,
		"count":         len(regs),
	}))
}

// eventInput はDTOをユースケース入力へ変換します。
func eventInput(req dto.EventReq) usecase.EventInput {
	return usecase.EventInput{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Mode:        req.Mode,
		Location:    req.Location,
		Image:       req.Image,
	}
}
