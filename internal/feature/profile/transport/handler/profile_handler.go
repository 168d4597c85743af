// Package handler はprofileフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"community_backend/internal/api"
	"community_backend/internal/feature/identity/transport/middleware"
	"community_backend/internal/feature/profile/domain/entity"
	"community_backend/internal/feature/profile/transport/http/dto"
	"community_backend/internal/feature/profile/usecase"
)

// ProfileUsecase はプロフィール操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ProfileUsecase interface {
	// Get は指定ユーザーのプロフィールを返します。未作成なら (nil, nil) です。
	Get(ctx context.Context, userID uint) (*entity.UserProfile, error)
	// Upsert はプロフィールを検証のうえ作成または更新します。
	Upsert(ctx context.Context, userID uint, in usecase.ProfileInput) (*entity.UserProfile, error)
}

// ProfileHandler はプロフィールエンドポイントのHTTPリクエストを処理します。
// ルーター側でIdentityRequiredミドルウェアの内側に配置される前提です。
type ProfileHandler struct {
	profiles ProfileUsecase
}

// NewProfileHandler はProfileHandlerの新しいインスタンスを生成します。
func NewProfileHandler(profiles ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Get は現在のユーザーのプロフィール取得エンドポイントを処理します。
// プロフィール未作成は404ではなくnullデータの200です。
func (h *ProfileHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Error("Authentication required"))
		return
	}

	profile, err := h.profiles.Get(c.Request.Context(), user.ID)
	if err != nil {
		slog.Error("profile fetch failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, api.Error("Server error while fetching profile"))
		return
	}

	if profile == nil {
		c.JSON(http.StatusOK, api.OK("", gin.H{"profile": nil}))
		return
	}
	c.JSON(http.StatusOK, api.OK("", gin.H{"profile": profile}))
}

// Upsert はプロフィール作成・更新エンドポイントを処理します。
// - フィールド検証違反は400とfield->messageマップを返却
// - 他ユーザーとのPRN重複は409を返却
func (h *ProfileHandler) Upsert(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Error("Authentication required"))
		return
	}

	var req dto.ProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("profile validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Error("Invalid request body"))
		return
	}

	profile, err := h.profiles.Upsert(c.Request.Context(), user.ID, usecase.ProfileInput{
		FullName:     req.FullName,
		ProfileImage: req.ProfileImage,
		PRNNumber:    req.PRNNumber,
		Class:        req.Class,
		Division:     req.Division,
		Bio:          req.Bio,
	})
	if err != nil {
		if v, ok := usecase.AsValidation(err); ok {
			c.JSON(http.StatusBadRequest, api.FieldError("Invalid profile data", v.Fields))
			return
		}
		if errors.Is(err, usecase.ErrPRNExists) {
			c.JSON(http.StatusConflict, api.FieldError("PRN number already exists", map[string]string{
				"prnNumber": "This PRN number is already registered",
			}))
			return
		}
		slog.Error("profile upsert failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, api.Error("Server error while saving profile"))
		return
	}

	message := "Profile updated successfully"
	if profile.IsProfileComplete {
		message = "Profile completed successfully!"
	}
	c.JSON(http.StatusOK, api.OK(message, gin.H{"profile": profile}))
}
