package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"community_backend/internal/feature/identity/domain"
	"community_backend/internal/feature/identity/domain/entity"
	identityusecase "community_backend/internal/feature/identity/usecase"
)

// Client はSupabase Auth APIに対してベアラートークンを検証するTokenValidator実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがTokenValidatorを実装していることをコンパイル時に検証します。
var _ identityusecase.TokenValidator = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// userResponse mirrors the relevant fields of GET /auth/v1/user.
type userResponse struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	EmailConfirmedAt string         `json:"email_confirmed_at"`
	UserMetadata     map[string]any `json:"user_metadata"`
}

// Validate はトークンをSupabaseに問い合わせ、検証済みのProviderIdentityを返します。
// プロバイダーがトークンを拒否した場合は domain.ErrInvalidToken、
// 資格情報が未設定の場合は domain.ErrProviderNotConfigured を返します。
// それ以外のエラー（到達不能など）は運用者側の障害としてそのまま伝播します。
func (c *Client) Validate(ctx context.Context, token string) (*entity.ProviderIdentity, error) {
	if !c.cfg.Configured() {
		return nil, domain.ErrProviderNotConfigured
	}

	u := fmt.Sprintf("%s/auth/v1/user", strings.TrimRight(c.cfg.BaseURL, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.cfg.AnonKey)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supabase request failed: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	// 401/403はクライアント起因（トークン不正）、それ以外の4xx/5xxはサーバ起因として扱う
	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return nil, domain.ErrInvalidToken
	case res.StatusCode >= 400:
		return nil, fmt.Errorf("supabase http %d", res.StatusCode)
	}

	var body userResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.ID == "" {
		return nil, domain.ErrInvalidToken
	}

	return &entity.ProviderIdentity{
		ID:             body.ID,
		Email:          strings.ToLower(strings.TrimSpace(body.Email)),
		EmailConfirmed: body.EmailConfirmedAt != "",
		FirstName:      metaString(body.UserMetadata, "firstName", "first_name", "given_name"),
		LastName:       metaString(body.UserMetadata, "lastName", "last_name", "family_name"),
	}, nil
}

// metaString は複数の候補キーからメタデータの文字列値を取り出します。
func metaString(meta map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := meta[k].(string); ok {
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		}
	}
	return ""
}
