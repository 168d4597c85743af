package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"community_backend/internal/feature/teams/domain/entity"
	"community_backend/internal/feature/teams/usecase"
)

// memberGorm はMemberRepositoryインターフェースのGORM実装です。
type memberGorm struct {
	db *gorm.DB
}

// memberGormがMemberRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MemberRepository = (*memberGorm)(nil)

// NewMemberGorm は指定されたgorm.DB接続でmemberGormの新しいインスタンスを生成します。
func NewMemberGorm(db *gorm.DB) *memberGorm {
	return &memberGorm{db: db}
}

// ListActiveByTeam は公開中のメンバーを表示順昇順、同順位は作成日降順で取得します。
func (r *memberGorm) ListActiveByTeam(ctx context.Context, teamID uint) ([]entity.TeamMember, error) {
	var members []entity.TeamMember
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND is_active = ?", teamID, true).
		Order("display_order ASC, created_at DESC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// ListByTeam は非公開も含む全メンバーを表示順昇順で取得します。
func (r *memberGorm) ListByTeam(ctx context.Context, teamID uint) ([]entity.TeamMember, error) {
	var members []entity.TeamMember
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("display_order ASC, created_at DESC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// FindByID はIDでメンバーを取得します。
func (r *memberGorm) FindByID(ctx context.Context, id uint) (*entity.TeamMember, error) {
	var member entity.TeamMember
	if err := r.db.WithContext(ctx).First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// Create は新しいメンバーを挿入します。
func (r *memberGorm) Create(ctx context.Context, member *entity.TeamMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// Update は既存メンバーの変更を永続化します。
func (r *memberGorm) Update(ctx context.Context, member *entity.TeamMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// Delete はメンバーをIDで削除します。
func (r *memberGorm) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.TeamMember{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrMemberNotFound
	}
	return nil
}

// CountActiveByTeams は指定チーム群の公開メンバー数をチームIDごとに集計します。
func (r *memberGorm) CountActiveByTeams(ctx context.Context, teamIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(teamIDs))
	if len(teamIDs) == 0 {
		return counts, nil
	}

	type row struct {
		TeamID uint
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&entity.TeamMember{}).
		Select("team_id, COUNT(*) as count").
		Where("team_id IN ? AND is_active = ?", teamIDs, true).
		Group("team_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.TeamID] = row.Count
	}
	return counts, nil
}
