package dto

// VerifyOTPReq は/api/auth/verify-otpエンドポイントのリクエストボディを表します。
type VerifyOTPReq struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

// EmailReq はメールアドレスのみを受け取るエンドポイント
// （/api/auth/resend-otp、/api/auth/forgot-password）のリクエストボディを表します。
type EmailReq struct {
	Email string `json:"email" binding:"required,email"`
}
