// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"community_backend/internal/api"
	"community_backend/internal/feature/auth/domain/entity"
	"community_backend/internal/feature/auth/transport/http/dto"
	"community_backend/internal/feature/auth/usecase"
	jwtmw "community_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は仮ユーザーを作成して検証用OTPをメール送信します。
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	// VerifyOTP は検証コードを確認し、成功時にセッショントークンを返します。
	VerifyOTP(ctx context.Context, email, code string) (string, *entity.User, error)
	// ResendOTP は未検証アカウントの検証コードを再発行します。
	ResendOTP(ctx context.Context, email string) error
	// Login はユーザーを認証し、成功時にJWTトークンを返します。
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
	// ForgotPassword はパスワードリセットトークンを発行します。
	ForgotPassword(ctx context.Context, email string) error
	// Me は認証済みユーザーの本人情報を取得します。
	Me(ctx context.Context, userID uint) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをRegisterReqにバインド
// - バリデーションエラー時は400を返却
// - メール重複時は409を返却
// - 成功時は201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Error("Invalid request body"))
		return
	}

	user, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		Password:            req.Password,
		SubscribeNewsletter: req.SubscribeNewsletter,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Warn("register conflict", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, api.Error("An account with this email already exists"))
			return
		}
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.Error("Server error during registration"))
		return
	}

	slog.Info("user registered", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.OK(
		"Registration successful. Please check your email for the verification code.",
		gin.H{"email": user.Email},
	))
}

// VerifyOTP はメール検証APIエンドポイントを処理します。
// 成功時はアカウントを本登録へ昇格し、セッショントークンを返します（自動ログイン）。
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("verify otp validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Error("Invalid request body"))
		return
	}

	token, user, err := h.auth.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		status, resp := verifyOTPErrorResponse(err)
		slog.Warn("verify otp failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(status, resp)
		return
	}

	slog.Info("otp verified", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.OK("Email verified successfully", gin.H{
		"token": token,
		"user":  user.Public(),
	}))
}

// verifyOTPErrorResponse はOTP検証エラーをHTTPステータスへ対応付けます。
func verifyOTPErrorResponse(err error) (int, api.Response) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return http.StatusNotFound, api.Error("No account found with this email address")
	case errors.Is(err, usecase.ErrAlreadyVerified):
		return http.StatusBadRequest, api.Error("This account is already verified. Please log in.")
	case errors.Is(err, usecase.ErrInvalidOTP):
		return http.StatusBadRequest, api.Error("Invalid verification code")
	case errors.Is(err, usecase.ErrOTPExpired):
		return http.StatusBadRequest, api.Error("Verification code has expired. Please request a new one.")
	default:
		return http.StatusInternalServerError, api.Error("Server error during verification")
	}
}

// ResendOTP は検証コード再送APIエンドポイントを処理します。
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req dto.EmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("resend otp validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Error("Invalid request body"))
		return
	}

	if err := h.auth.ResendOTP(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.Error("No account found with this email address"))
		case errors.Is(err, usecase.ErrAlreadyVerified):
			c.JSON(http.StatusBadRequest, api.Error("This account is already verified. Please log in."))
		default:
			slog.Error("resend otp failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.Error("Server error while resending the code"))
		}
		return
	}

	slog.Info("otp resent", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.OK("A new verification code has been sent to your email", nil))
}

// Login はユーザーログインAPIエンドポイントを処理します。
// 失敗原因ごとに別のメッセージを返し、クライアントが正しい復旧手段を提示できるようにします。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Error("Invalid request body"))
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status, resp := loginErrorResponse(err)
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(status, resp)
		return
	}

	slog.Info("user login successful", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.OK("Login successful", gin.H{
		"token": token,
		"user":  user.Public(),
	}))
}

// loginErrorResponse はログイン失敗をHTTPステータスとフィールド付きメッセージへ対応付けます。
func loginErrorResponse(err error) (int, api.Response) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return http.StatusUnauthorized, api.FieldError(
			"No account found with this email address",
			map[string]string{"email": "No account found with this email address"},
		)
	case errors.Is(err, usecase.ErrAccountDeactivated):
		return http.StatusUnauthorized, api.Error("Your account has been deactivated. Please contact support.")
	case errors.Is(err, usecase.ErrAccountNotVerified):
		return http.StatusUnauthorized, api.Error("Please verify your email with the code sent to your inbox before logging in")
	case errors.Is(err, usecase.ErrEmailNotVerified):
		return http.StatusUnauthorized, api.Error("Please verify your email before logging in")
	case errors.Is(err, usecase.ErrWrongPassword):
		return http.StatusUnauthorized, api.FieldError(
			"Incorrect password",
			map[string]string{"password": "Incorrect password"},
		)
	default:
		return http.StatusInternalServerError, api.Error("Server error during login")
	}
}

// ForgotPassword はパスワードリセット要求APIエンドポイントを処理します。
// アカウントの存在有無を漏らさないため、整形式の入力には常に同一の200を返します。
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.EmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("forgot password validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Error("Invalid request body"))
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		// 存在有無に関わらず同一レスポンスを守るため、内部障害もログに留めて200を返す
		slog.Error("forgot password failed", "error", err, "remote_addr", c.ClientIP())
	}

	c.JSON(http.StatusOK, api.OK(
		"If an account with that email exists, a password reset link has been sent",
		nil,
	))
}

// Logout はログアウトAPIエンドポイントを処理します。
// トークンはステートレスなJWTでサーバー側に状態を持たないため、
// クライアントへ破棄を促す成功レスポンスを返すだけです。
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, api.OK("Logout successful", nil))
}

// Me は認証済みユーザーの本人情報取得APIエンドポイントを処理します。
// JWTミドルウェアがコンテキストに設定したユーザーIDを前提とします。
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := c.Get(jwtmw.ContextUserID)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Error("Authentication required"))
		return
	}
	id, ok := userID.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Error("Authentication required"))
		return
	}

	user, err := h.auth.Me(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, api.Error("Account no longer exists"))
			return
		}
		slog.Error("me lookup failed", "error", err, "user_id", id)
		c.JSON(http.StatusInternalServerError, api.Error("Server error"))
		return
	}

	c.JSON(http.StatusOK, api.OK("", gin.H{"user": user.Public()}))
}
