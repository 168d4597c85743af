package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	authusecase "community_backend/internal/feature/auth/usecase"
)

// SMTPMailer はSMTP経由でトランザクションメールを送信するMailer実装です。
// SMTPが未設定の環境（ローカル開発など）では送信せず内容をログに出力します。
type SMTPMailer struct {
	cfg Config

	// send allows tests to intercept the SMTP call.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// SMTPMailerがMailerを実装していることをコンパイル時に検証します。
var _ authusecase.Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer はSMTPMailerの新しいインスタンスを生成します。
func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

// SendOTP は検証コードをユーザーに送信します。
func (m *SMTPMailer) SendOTP(ctx context.Context, to, name, code string) error {
	subject := "Your verification code"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour verification code is: %s\n\nIt expires in 10 minutes.\n",
		name, code,
	)
	return m.deliver(ctx, to, subject, body)
}

// SendWelcome は検証完了後のウェルカムメールを送信します。
func (m *SMTPMailer) SendWelcome(ctx context.Context, to, name string) error {
	subject := "Welcome to the community"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour email has been verified and your account is ready.\nWelcome aboard!\n",
		name,
	)
	return m.deliver(ctx, to, subject, body)
}

// SendPasswordReset はパスワードリセットトークンを送信します。
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, name, token string) error {
	subject := "Password reset request"
	body := fmt.Sprintf(
		"Hi %s,\n\nUse the following token to reset your password: %s\n\nIt expires in 10 minutes. If you did not request this, you can ignore this email.\n",
		name, token,
	)
	return m.deliver(ctx, to, subject, body)
}

// deliver はプレーンテキストメールを1通送信します。
// 未設定時はログ出力のみで成功扱いにします。
func (m *SMTPMailer) deliver(ctx context.Context, to, subject, body string) error {
	if !m.cfg.Configured() {
		slog.Info("smtp not configured, logging mail instead", "to", to, "subject", subject)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := m.cfg.Host + ":" + m.cfg.Port
	msg := "From: " + m.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body + "\r\n"

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := m.send(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}
