// Package adapters はidentityフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	authentity "community_backend/internal/feature/auth/domain/entity"
	"community_backend/internal/feature/identity/usecase"
)

// userGorm はUserRepositoryインターフェースのGORM実装です。
// authフィーチャーと同じusersテーブルを共有します。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// FindBySupabaseID は外部プロバイダーIDでユーザーを取得します。
func (r *userGorm) FindBySupabaseID(ctx context.Context, supabaseID string) (*authentity.User, error) {
	var u authentity.User
	if err := r.db.WithContext(ctx).Where("supabase_id = ?", supabaseID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*authentity.User, error) {
	var u authentity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Save はユーザーを挿入または更新します。
func (r *userGorm) Save(ctx context.Context, user *authentity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}
