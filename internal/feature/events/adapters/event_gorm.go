// Package adapters はeventsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"community_backend/internal/feature/events/domain/entity"
	"community_backend/internal/feature/events/usecase"
)

// uniqueViolation はPostgreSQLの一意制約違反コードです。
const uniqueViolation = "23505"

// eventGorm はEventRepositoryインターフェースのGORM実装です。
type eventGorm struct {
	db *gorm.DB
}

// eventGormがEventRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.EventRepository = (*eventGorm)(nil)

// NewEventGorm は指定されたgorm.DB接続でeventGormの新しいインスタンスを生成します。
func NewEventGorm(db *gorm.DB) *eventGorm {
	return &eventGorm{db: db}
}

// List は全イベントを開催日昇順で取得します。
func (r *eventGorm) List(ctx context.Context) ([]entity.Event, error) {
	var events []entity.Event
	if err := r.db.WithContext(ctx).Order("date ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FindByID はIDでイベントを取得します。
func (r *eventGorm) FindByID(ctx context.Context, id uint) (*entity.Event, error) {
	var ev entity.Event
	if err := r.db.WithContext(ctx).First(&ev, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrEventNotFound
		}
		return nil, err
	}
	return &ev, nil
}

// Create は新しいイベントを挿入します。
// スラッグの一意制約違反はErrSlugExistsへ変換します。
func (r *eventGorm) Create(ctx context.Context, event *entity.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		if isDuplicate(err) {
			return usecase.ErrSlugExists
		}
		return err
	}
	return nil
}

// Update は既存イベントの変更を永続化します。
func (r *eventGorm) Update(ctx context.Context, event *entity.Event) error {
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		if isDuplicate(err) {
			return usecase.ErrSlugExists
		}
		return err
	}
	return nil
}

// Delete はイベントと紐づく登録行を1トランザクションで削除します。
func (r *eventGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&entity.Registration{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Event{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrEventNotFound
		}
		return nil
	})
}

// IncrementRegisteredCount は登録者数カウンタをアトミックに加算します。
// 一致した行数を返すので、呼び出し元は0行を対象消失として扱えます。
func (r *eventGorm) IncrementRegisteredCount(ctx context.Context, id uint, delta int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Event{}).
		Where("id = ?", id).
		UpdateColumn("registered_count", gorm.Expr("registered_count + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// isDuplicate はドライバ固有の一意制約違反を判定します。
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
