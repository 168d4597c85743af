// Package usecase はidentityフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	authentity "community_backend/internal/feature/auth/domain/entity"
	"community_backend/internal/feature/identity/domain"
	"community_backend/internal/feature/identity/domain/entity"
)

// TokenValidator は外部IDプロバイダーに対するベアラートークンの検証を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/supabase）ではなくコンシューマー（usecase）が定義します。
type TokenValidator interface {
	// Validate はトークンを検証し、プロバイダー上のユーザー情報を返します。
	// トークンが拒否された場合は domain.ErrInvalidToken を返します。
	Validate(ctx context.Context, token string) (*entity.ProviderIdentity, error)
}

// UserRepository はユーザーエンティティの永続化層を抽象化します。
type UserRepository interface {
	// FindBySupabaseID は外部プロバイダーIDでユーザーを取得します。
	// 見つからない場合はエラーではなく (nil, nil) を返します。
	FindBySupabaseID(ctx context.Context, supabaseID string) (*authentity.User, error)

	// FindByEmail はメールアドレスでユーザーを取得します。
	// 見つからない場合は (nil, nil) を返します。
	FindByEmail(ctx context.Context, email string) (*authentity.User, error)

	// Save はユーザーを挿入または更新します。
	Save(ctx context.Context, user *authentity.User) error
}

// reconcilerUsecase は外部IDプロバイダーのアカウントとローカルユーザーを
// 1人につき1レコードへ収束させます。
type reconcilerUsecase struct {
	validator TokenValidator
	users     UserRepository
}

// NewReconcilerUsecase はreconcilerUsecaseの新しいインスタンスを生成します。
func NewReconcilerUsecase(validator TokenValidator, users UserRepository) *reconcilerUsecase {
	return &reconcilerUsecase{validator: validator, users: users}
}

// Sync はベアラートークンを検証し、対応するローカルUserを作成または更新して返します。
// 同じトークンで何度呼ばれても同一レコードに収束します（冪等）。
//
// 検索順序: 外部プロバイダーID → メールアドレス。メールでのみ見つかった場合は
// 重複アカウントを作らず、既存レコードに外部IDをひも付けます。
func (u *reconcilerUsecase) Sync(ctx context.Context, token string) (*authentity.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.ErrNoToken
	}

	ident, err := u.validator.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	if ident.Email == "" {
		return nil, domain.ErrNoEmail
	}

	user, err := u.users.FindBySupabaseID(ctx, ident.ID)
	if err != nil {
		return nil, fmt.Errorf("lookup by provider id: %w", err)
	}
	if user == nil {
		// 外部プロバイダー導入以前のアカウントをメールでひも付ける
		user, err = u.users.FindByEmail(ctx, ident.Email)
		if err != nil {
			return nil, fmt.Errorf("lookup by email: %w", err)
		}
	}

	safeFirst, safeLast := fallbackNames(ident)

	if user == nil {
		user = &authentity.User{
			AuthProvider: authentity.ProviderSupabase,
			SupabaseID:   &ident.ID,
			Email:        ident.Email,
			FirstName:    safeFirst,
			LastName:     safeLast,
		}
	} else {
		user.AuthProvider = authentity.ProviderSupabase
		user.SupabaseID = &ident.ID
		user.Email = ident.Email
		// 名前はユーザー編集を上書きしないよう、空の場合のみ補完する
		if strings.TrimSpace(user.FirstName) == "" {
			user.FirstName = safeFirst
		}
		if strings.TrimSpace(user.LastName) == "" {
			user.LastName = safeLast
		}
	}

	user.EmailVerified = ident.EmailConfirmed
	user.IsTempUser = false
	user.IsActive = true

	if err := u.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// IsClientFault はSyncの失敗がクライアント起因（401/400系）かどうかを返します。
func IsClientFault(err error) bool {
	return errors.Is(err, domain.ErrNoToken) ||
		errors.Is(err, domain.ErrInvalidToken) ||
		errors.Is(err, domain.ErrNoEmail)
}

// fallbackNames はメタデータ → メールのローカル部 → "User" の順で名前を決めます。
func fallbackNames(ident *entity.ProviderIdentity) (first, last string) {
	first = ident.FirstName
	last = ident.LastName
	if first == "" {
		if at := strings.Index(ident.Email, "@"); at > 0 {
			first = ident.Email[:at]
		} else {
			first = "User"
		}
	}
	if last == "" {
		last = "User"
	}
	return first, last
}
