// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"community_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// bcryptCost はパスワードハッシュのコストパラメータです。
	bcryptCost = 12

	// otpTTL はワンタイムパスワードの有効期間です。
	otpTTL = 10 * time.Minute

	// resetTokenTTL はパスワードリセットトークンの有効期間です。
	resetTokenTTL = 10 * time.Minute
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Save は既存ユーザーの変更を永続化します。
	Save(ctx context.Context, user *entity.User) error
}

// TokenIssuer はセッショントークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenIssuer interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint, email, role string) (string, error)
}

// Mailer はトランザクションメール送信を抽象化します。
// 送信失敗は認証フローを失敗させず、警告ログに留めます。
type Mailer interface {
	// SendOTP は検証コードをユーザーに送信します。
	SendOTP(ctx context.Context, to, name, code string) error

	// SendWelcome は検証完了後のウェルカムメールを送信します。
	SendWelcome(ctx context.Context, to, name string) error

	// SendPasswordReset はパスワードリセットトークンを送信します。
	SendPasswordReset(ctx context.Context, to, name, token string) error
}

// RegisterInput は新規登録リクエストの入力値です。
type RegisterInput struct {
	FirstName           string
	LastName            string
	Email               string
	Password            string
	SubscribeNewsletter bool
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	tokens TokenIssuer
	mailer Mailer
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenIssuer, mailer Mailer) *authUsecase {
	return &authUsecase{
		users:  users,
		tokens: tokens,
		mailer: mailer,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// normalizeEmail はメールアドレスを小文字・前後空白除去で正規化します。
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register はハッシュ化されたパスワードと検証用OTPを持つ仮ユーザーを作成します。
// OTPが確認されるまでis_temp_user=trueのまま残ります。
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := generateOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp: %w", err)
	}
	expires := time.Now().Add(otpTTL)

	user := &entity.User{
		AuthProvider:        entity.ProviderLocal,
		FirstName:           strings.TrimSpace(in.FirstName),
		LastName:            strings.TrimSpace(in.LastName),
		Email:               normalizeEmail(in.Email),
		Password:            string(hashed),
		Role:                entity.RoleUser,
		IsActive:            true,
		IsTempUser:          true,
		OTPCode:             &code,
		OTPExpires:          &expires,
		SubscribeNewsletter: in.SubscribeNewsletter,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// メール送信失敗で登録を巻き戻さない。ユーザーは再送エンドポイントで回復できる
	if err := u.mailer.SendOTP(ctx, user.Email, user.FirstName, code); err != nil {
		slog.Warn("failed to send otp mail", "email", user.Email, "error", err)
	}
	return user, nil
}

// VerifyOTP は検証コードを確認し、成功時にアカウントを本登録へ昇格して
// セッショントークンを返します（自動ログイン）。
//
// 状態遷移は一度だけ発生します。検証済みアカウントへの再実行はErrAlreadyVerifiedです。
func (u *authUsecase) VerifyOTP(ctx context.Context, email, code string) (string, *entity.User, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, err
	}

	if user.EmailVerified && !user.IsTempUser {
		return "", nil, ErrAlreadyVerified
	}
	if user.OTPCode == nil || *user.OTPCode != code {
		return "", nil, ErrInvalidOTP
	}
	if user.OTPExpires == nil || time.Now().After(*user.OTPExpires) {
		return "", nil, ErrOTPExpired
	}

	user.EmailVerified = true
	user.IsTempUser = false
	user.OTPCode = nil
	user.OTPExpires = nil
	now := time.Now()
	user.LastLogin = &now

	if err := u.users.Save(ctx, user); err != nil {
		return "", nil, fmt.Errorf("save user: %w", err)
	}

	if err := u.mailer.SendWelcome(ctx, user.Email, user.FirstName); err != nil {
		slog.Warn("failed to send welcome mail", "email", user.Email, "error", err)
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

// ResendOTP は未検証アカウントの検証コードを再発行して送信します。
func (u *authUsecase) ResendOTP(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user.EmailVerified && !user.IsTempUser {
		return ErrAlreadyVerified
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}
	expires := time.Now().Add(otpTTL)
	user.OTPCode = &code
	user.OTPExpires = &expires

	if err := u.users.Save(ctx, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	if err := u.mailer.SendOTP(ctx, user.Email, user.FirstName, code); err != nil {
		slog.Warn("failed to send otp mail", "email", user.Email, "error", err)
	}
	return nil
}

// Login はユーザーを認証し、成功時にJWTトークンと本人情報を返します。
//
// 失敗は原因ごとに別のセンチネルで返します。クライアントが正しい復旧手段
// （OTP再送、サポート連絡など）を提示できるようにするためで、順序は
// 未登録 → 停止中 → 仮登録 → メール未検証 → パスワード不一致 で固定です。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, err
	}

	if !user.IsActive {
		return "", nil, ErrAccountDeactivated
	}
	if user.IsTempUser {
		return "", nil, ErrAccountNotVerified
	}
	if !user.EmailVerified {
		return "", nil, ErrEmailNotVerified
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrWrongPassword
	}

	now := time.Now()
	user.LastLogin = &now
	if err := u.users.Save(ctx, user); err != nil {
		return "", nil, fmt.Errorf("save user: %w", err)
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

// ForgotPassword はリセットトークンを発行してメール送信します。
// アカウントの存在有無を呼び出し元に漏らさないため、未登録メールでもエラーを返しません。
func (u *authUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	expires := time.Now().Add(resetTokenTTL)
	user.PasswordResetToken = &token
	user.PasswordResetExpires = &expires

	if err := u.users.Save(ctx, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	if err := u.mailer.SendPasswordReset(ctx, user.Email, user.FirstName, token); err != nil {
		slog.Warn("failed to send password reset mail", "email", user.Email, "error", err)
	}
	return nil
}

// Me は認証済みユーザーの本人情報を取得します。
func (u *authUsecase) Me(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// generateOTP は暗号論的乱数で6桁の検証コードを生成します。
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// generateResetToken は32バイトの暗号論的乱数を16進エンコードして返します。
func generateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
