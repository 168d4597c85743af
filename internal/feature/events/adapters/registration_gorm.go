package adapters

import (
	"context"

	"gorm.io/gorm"

	"community_backend/internal/feature/events/domain/entity"
	"community_backend/internal/feature/events/usecase"
)

// registrationGorm はRegistrationRepositoryインターフェースのGORM実装です。
type registrationGorm struct {
	db *gorm.DB
}

// registrationGormがRegistrationRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.RegistrationRepository = (*registrationGorm)(nil)

// NewRegistrationGorm は指定されたgorm.DB接続でregistrationGormの新しいインスタンスを生成します。
func NewRegistrationGorm(db *gorm.DB) *registrationGorm {
	return &registrationGorm{db: db}
}

// Create は登録行を挿入します。
// (event_id, user_supabase_id)の複合一意制約が重複登録を防ぎます。
// アプリケーション側の事前チェックに頼らないため、並行登録でも二重計上されません。
func (r *registrationGorm) Create(ctx context.Context, reg *entity.Registration) error {
	if err := r.db.WithContext(ctx).Create(reg).Error; err != nil {
		if isDuplicate(err) {
			return usecase.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

// Delete は登録行をIDで削除します。
func (r *registrationGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Registration{}, id).Error
}

// ListByEvent は指定イベントの登録行を登録日時昇順で取得します。
func (r *registrationGorm) ListByEvent(ctx context.Context, eventID uint) ([]entity.Registration, error) {
	var regs []entity.Registration
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

// EventIDsByUser は指定ユーザーが登録済みのイベントID集合を返します。
// 一覧表示のhasRegistered付与を1クエリで済ませるための形です。
func (r *registrationGorm) EventIDsByUser(ctx context.Context, supabaseID string) (map[uint]bool, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&entity.Registration{}).
		Where("user_supabase_id = ?", supabaseID).
		Pluck("event_id", &ids).Error
	if err != nil {
		return nil, err
	}

	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
