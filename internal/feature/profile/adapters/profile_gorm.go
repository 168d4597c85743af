// Package adapters はprofileフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"community_backend/internal/feature/profile/domain/entity"
	"community_backend/internal/feature/profile/usecase"
)

// uniqueViolation はPostgreSQLの一意制約違反コードです。
const uniqueViolation = "23505"

// profileGorm はProfileRepositoryインターフェースのGORM実装です。
type profileGorm struct {
	db *gorm.DB
}

// profileGormがProfileRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ProfileRepository = (*profileGorm)(nil)

// NewProfileGorm は指定されたgorm.DB接続でprofileGormの新しいインスタンスを生成します。
func NewProfileGorm(db *gorm.DB) *profileGorm {
	return &profileGorm{db: db}
}

// FindByUserID はユーザーIDでプロフィールを取得します。
func (r *profileGorm) FindByUserID(ctx context.Context, userID uint) (*entity.UserProfile, error) {
	var p entity.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// FindByPRN はPRN番号でプロフィールを取得します。
func (r *profileGorm) FindByPRN(ctx context.Context, prn string) (*entity.UserProfile, error) {
	var p entity.UserProfile
	if err := r.db.WithContext(ctx).Where("prn_number = ?", prn).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Save はプロフィールを挿入または更新します。
// PRNの一意制約違反はErrPRNExistsへ変換します。
func (r *profileGorm) Save(ctx context.Context, profile *entity.UserProfile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		if isDuplicate(err) {
			return usecase.ErrPRNExists
		}
		return err
	}
	return nil
}

// isDuplicate はドライバ固有の一意制約違反を判定します。
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
