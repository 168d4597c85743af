// Package handler はadminフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"community_backend/internal/api"
	"community_backend/internal/feature/admin/transport/http/dto"
	"community_backend/internal/feature/admin/usecase"
	"community_backend/internal/platform/cloudinary"
	jwtmw "community_backend/internal/platform/jwt"
)

// AdminUsecase は管理者ログインのユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AdminUsecase interface {
	Login(email, password string) (*usecase.LoginResult, error)
}

// UploadSigner はCloudinary直接アップロードの署名発行を抽象化します。
type UploadSigner interface {
	SignUpload() (*cloudinary.UploadSignature, error)
}

// AdminHandler は管理者認証とダッシュボード補助エンドポイントのHTTPリクエストを処理します。
type AdminHandler struct {
	admin  AdminUsecase
	signer UploadSigner
}

// NewAdminHandler はAdminHandlerの新しいインスタンスを生成します。
func NewAdminHandler(admin AdminUsecase, signer UploadSigner) *AdminHandler {
	return &AdminHandler{admin: admin, signer: signer}
}

// Login は管理者ログインエンドポイントを処理します。
// - クレデンシャル未設定のサーバーは500
// - 不一致は詳細を明かさない401
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error("Email and password are required"))
		return
	}

	result, err := h.admin.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotConfigured):
			slog.Error("admin login attempted without configured credentials")
			c.JSON(http.StatusInternalServerError, api.Error("Admin credentials are not configured on the server"))
		case errors.Is(err, usecase.ErrInvalidCredentials):
			slog.Warn("admin login rejected", "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.Error("Invalid credentials"))
		default:
			slog.Error("admin login failed", "error", err)
			c.JSON(http.StatusInternalServerError, api.Error("Server error during admin login"))
		}
		return
	}

	slog.Info("admin logged in", "email", result.Admin.Email)
	c.JSON(http.StatusOK, api.OK("Admin login successful", result))
}

// Me は管理者トークンの検証エンドポイントを処理します。
// AdminRequiredミドルウェアが設定したコンテキスト値をそのまま返します。
func (h *AdminHandler) Me(c *gin.Context) {
	admin, ok := c.Get(jwtmw.ContextAdmin)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Error("Unauthorized"))
		return
	}
	c.JSON(http.StatusOK, api.OK("", gin.H{"admin": admin}))
}

// CloudinarySignature はブラウザ直接アップロード用の署名を発行します。
func (h *AdminHandler) CloudinarySignature(c *gin.Context) {
	sig, err := h.signer.SignUpload()
	if err != nil {
		if errors.Is(err, cloudinary.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, api.Error("Cloudinary credentials are not configured on the server"))
			return
		}
		slog.Error("cloudinary signature failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("Server error while generating cloudinary signature"))
		return
	}
	c.JSON(http.StatusOK, api.OK("", sig))
}
