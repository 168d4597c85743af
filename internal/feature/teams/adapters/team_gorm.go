// Package adapters はteamsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"community_backend/internal/feature/teams/domain/entity"
	"community_backend/internal/feature/teams/usecase"
)

// uniqueViolation はPostgreSQLの一意制約違反コードです。
const uniqueViolation = "23505"

// teamGorm はTeamRepositoryインターフェースのGORM実装です。
type teamGorm struct {
	db *gorm.DB
}

// teamGormがTeamRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.TeamRepository = (*teamGorm)(nil)

// NewTeamGorm は指定されたgorm.DB接続でteamGormの新しいインスタンスを生成します。
func NewTeamGorm(db *gorm.DB) *teamGorm {
	return &teamGorm{db: db}
}

// ListActive は公開中のチームを作成日降順で取得します。
func (r *teamGorm) ListActive(ctx context.Context) ([]entity.Team, error) {
	var teams []entity.Team
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// ListAll は非公開も含む全チームを作成日降順で取得します。
func (r *teamGorm) ListAll(ctx context.Context) ([]entity.Team, error) {
	var teams []entity.Team
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// FindActiveBySlug はスラッグで公開中のチームを取得します。
func (r *teamGorm) FindActiveBySlug(ctx context.Context, slug string) (*entity.Team, error) {
	var team entity.Team
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

// FindByID はIDでチームを取得します。
func (r *teamGorm) FindByID(ctx context.Context, id uint) (*entity.Team, error) {
	var team entity.Team
	if err := r.db.WithContext(ctx).First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

// Create は新しいチームを挿入します。
// スラッグの一意制約違反はErrSlugExistsへ変換します。
func (r *teamGorm) Create(ctx context.Context, team *entity.Team) error {
	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		if isDuplicate(err) {
			return usecase.ErrSlugExists
		}
		return err
	}
	return nil
}

// Update は既存チームの変更を永続化します。
func (r *teamGorm) Update(ctx context.Context, team *entity.Team) error {
	if err := r.db.WithContext(ctx).Save(team).Error; err != nil {
		if isDuplicate(err) {
			return usecase.ErrSlugExists
		}
		return err
	}
	return nil
}

// Delete はチームと所属メンバーを1トランザクションで削除します。
func (r *teamGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&entity.TeamMember{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Team{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrTeamNotFound
		}
		return nil
	})
}

// isDuplicate はドライバ固有の一意制約違反を判定します。
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
