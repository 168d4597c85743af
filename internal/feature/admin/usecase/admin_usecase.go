// Package usecase はadminフィーチャーのビジネスロジックを実装します。
//
// 管理者はデータベース上のユーザーではなく、環境変数に固定された
// 単一のクレデンシャルです。
package usecase

import (
	"crypto/subtle"
	"errors"
	"os"
	"strings"
)

// 管理者クレデンシャルの環境変数キー。
const (
	EnvKeyAdminEmail    = "ADMIN_EMAIL"
	EnvKeyAdminPassword = "ADMIN_PASSWORD"
	EnvKeyAdminName     = "ADMIN_NAME"
)

// adminフィーチャーのドメインエラー。
var (
	ErrInvalidCredentials = errors.New("invalid admin credentials")
	ErrNotConfigured      = errors.New("admin credentials are not configured")
)

// Credentials は環境変数から読み込んだ管理者クレデンシャルです。
type Credentials struct {
	Email    string
	Password string
	Name     string
}

// LoadCredentials は環境変数から管理者クレデンシャルを読み込みます。
func LoadCredentials() Credentials {
	return Credentials{
		Email:    strings.ToLower(strings.TrimSpace(os.Getenv(EnvKeyAdminEmail))),
		Password: os.Getenv(EnvKeyAdminPassword),
		Name:     strings.TrimSpace(os.Getenv(EnvKeyAdminName)),
	}
}

// Configured はログインに必要なクレデンシャルが揃っているかを返します。
func (c Credentials) Configured() bool {
	return c.Email != "" && c.Password != ""
}

// TokenIssuer は管理者トークンの発行を抽象化します。
type TokenIssuer interface {
	GenerateAdminToken(email, name string) (string, error)
}

// Identity はトークンと一緒に返される管理者の公開情報です。
type Identity struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

// LoginResult は管理者ログイン成功時のレスポンスペイロードです。
type LoginResult struct {
	Token string   `json:"token"`
	Admin Identity `json:"admin"`
}

// adminUsecase は固定クレデンシャルによる管理者ログインを実装します。
type adminUsecase struct {
	creds  Credentials
	tokens TokenIssuer
}

// NewAdminUsecase はadminUsecaseの新しいインスタンスを生成します。
func NewAdminUsecase(creds Credentials, tokens TokenIssuer) *adminUsecase {
	return &adminUsecase{creds: creds, tokens: tokens}
}

// Login は入力クレデンシャルを検証し、管理者トークンを発行します。
// タイミング攻撃でメールとパスワードの一致長が漏れないよう、
// 比較は定数時間で行います。
func (u *adminUsecase) Login(email, password string) (*LoginResult, error) {
	if !u.creds.Configured() {
		return nil, ErrNotConfigured
	}

	normalized := strings.ToLower(strings.TrimSpace(email))
	emailOK := safeEqual(normalized, u.creds.Email)
	passwordOK := safeEqual(password, u.creds.Password)
	if !emailOK || !passwordOK {
		return nil, ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateAdminToken(u.creds.Email, u.creds.Name)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token: token,
		Admin: Identity{Email: u.creds.Email, Role: "admin", Name: u.creds.Name},
	}, nil
}

// safeEqual は2つの文字列を定数時間で比較します。
func safeEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
