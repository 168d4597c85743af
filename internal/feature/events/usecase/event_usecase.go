// Package usecase はeventsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	authentity "community_backend/internal/feature/auth/domain/entity"
	"community_backend/internal/feature/events/domain/entity"
)

// EventRepository はイベントエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type EventRepository interface {
	// List は全イベントを開催日昇順で取得します。
	List(ctx context.Context) ([]entity.Event, error)

	// FindByID はIDでイベントを取得します。
	// 存在しない場合、ErrEventNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Event, error)

	// Create は新しいイベントを挿入します。
	// スラッグ重複時はErrSlugExistsを返します。
	Create(ctx context.Context, event *entity.Event) error

	// Update は既存イベントの変更を永続化します。
	Update(ctx context.Context, event *entity.Event) error

	// Delete はイベントと紐づく登録行を削除します。
	// 対象が存在しない場合、ErrEventNotFoundを返します。
	Delete(ctx context.Context, id uint) error

	// IncrementRegisteredCount は登録者数カウンタをアトミックに加算し、
	// 一致した行数を返します。0行は対象イベントの消失を意味します。
	IncrementRegisteredCount(ctx context.Context, id uint, delta int) (int64, error)
}

// RegistrationRepository は登録台帳の永続化層を抽象化します。
type RegistrationRepository interface {
	// Create は登録行を挿入します。
	// (event_id, user_supabase_id)の一意制約違反はErrAlreadyRegisteredを返します。
	Create(ctx context.Context, reg *entity.Registration) error

	// Delete は登録行をIDで削除します。補償処理が使用します。
	Delete(ctx context.Context, id uint) error

	// ListByEvent は指定イベントの登録行を取得します。
	ListByEvent(ctx context.Context, eventID uint) ([]entity.Registration, error)

	// EventIDsByUser は指定ユーザーが登録済みのイベントID集合を返します。
	EventIDsByUser(ctx context.Context, supabaseID string) (map[uint]bool, error)
}

// Reconciler は外部IDとローカルユーザーの同期ユースケースを抽象化します。
type Reconciler interface {
	Sync(ctx context.Context, token string) (*authentity.User, error)
}

// RegisterResult は登録成功時のレスポンスペイロードです。
type RegisterResult struct {
	Event        entity.EventWithStatus `json:"event"`
	Registration *entity.Registration   `json:"registration"`
}

// eventUsecase はイベントと登録台帳のビジネスロジックを実装します。
type eventUsecase struct {
	events     EventRepository
	regs       RegistrationRepository
	reconciler Reconciler
}

// NewEventUsecase はeventUsecaseの新しいインスタンスを生成します。
func NewEventUsecase(events EventRepository, regs RegistrationRepository, reconciler Reconciler) *eventUsecase {
	return &eventUsecase{
		events:     events,
		regs:       regs,
		reconciler: reconciler,
	}
}

// List は全イベントを返します。トークン付きの場合は呼び出し元の登録状況を
// 1クエリで取得してhasRegisteredを付与します。
//
// ここでのトークン失敗は登録操作と異なり致命的ではないため、匿名扱いに
// フォールバックします（公開一覧を壊さない寛容ポリシー）。
func (u *eventUsecase) List(ctx context.Context, token string) ([]entity.EventWithStatus, error) {
	events, err := u.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	registered := map[uint]bool{}
	if token != "" {
		if user, err := u.reconciler.Sync(ctx, token); err != nil {
			slog.Warn("event list: token ignored", "error", err)
		} else if user.SupabaseID != nil {
			registered, err = u.regs.EventIDsByUser(ctx, *user.SupabaseID)
			if err != nil {
				return nil, fmt.Errorf("list registrations: %w", err)
			}
		}
	}

	result := make([]entity.EventWithStatus, 0, len(events))
	for _, ev := range events {
		result = append(result, entity.EventWithStatus{
			Event:         ev,
			HasRegistered: registered[ev.ID],
		})
	}
	return result, nil
}

// Register は呼び出し元をイベントに登録します。
//
// 台帳挿入とカウンタ加算は別書き込みのため、加算が失敗または0行一致の場合は
// 直前に挿入した登録行を削除して巻き戻します。カウンタは常に台帳の行数と
// 一致しなければなりません。
func (u *eventUsecase) Register(ctx context.Context, token string, eventID uint) (*RegisterResult, error) {
	// 登録は厳格モード: トークン失敗をそのまま伝播する
	user, err := u.reconciler.Sync(ctx, token)
	if err != nil {
		return nil, err
	}
	if user.SupabaseID == nil {
		return nil, fmt.Errorf("synced user %d has no provider id", user.ID)
	}

	event, err := u.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	reg := &entity.Registration{
		EventID:        event.ID,
		UserSupabaseID: *user.SupabaseID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		UserEmail:      user.Email,
		UserName:       user.FirstName + " " + user.LastName,
	}
	if err := u.regs.Create(ctx, reg); err != nil {
		return nil, err
	}

	matched, err := u.events.IncrementRegisteredCount(ctx, event.ID, 1)
	if err != nil {
		u.compensate(ctx, reg)
		return nil, fmt.Errorf("increment registered count: %w", err)
	}
	if matched == 0 {
		// イベントが挿入と加算の間に消えた
		u.compensate(ctx, reg)
		return nil, ErrEventNotFound
	}

	updated, err := u.events.FindByID(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	slog.Info("event registration recorded", "event_id", event.ID, "email", user.Email)
	return &RegisterResult{
		Event:        entity.EventWithStatus{Event: *updated, HasRegistered: true},
		Registration: reg,
	}, nil
}

// compensate は登録行を削除してカウンタ不整合を防ぎます。
// 削除自体の失敗は回復不能なのでログに残します。
func (u *eventUsecase) compensate(ctx context.Context, reg *entity.Registration) {
	if err := u.regs.Delete(ctx, reg.ID); err != nil {
		slog.Error("failed to compensate registration", "registration_id", reg.ID, "event_id", reg.EventID, "error", err)
	}
}

// EventInput は管理者によるイベント作成・更新の入力値です。
type EventInput struct {
	Slug        string
	Title       string
	Description string
	Date        time.Time
	Time        string
	Mode        string
	Location    string
	Image       string
}

// Create は新しいイベントを作成します。
func (u *eventUsecase) Create(ctx context.Context, in EventInput) (*entity.Event, error) {
	if !entity.ValidMode(in.Mode) {
		return nil, fmt.Errorf("invalid event mode %q", in.Mode)
	}
	event := &entity.Event{
		Slug:        in.Slug,
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Time:        in.Time,
		Mode:        in.Mode,
		Location:    in.Location,
		Image:       in.Image,
	}
	if err := u.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Update は既存イベントを更新します。登録者数カウンタは入力から変更できません。
func (u *eventUsecase) Update(ctx context.Context, id uint, in EventInput) (*entity.Event, error) {
	if !entity.ValidMode(in.Mode) {
		return nil, fmt.Errorf("invalid event mode %q", in.Mode)
	}
	event, err := u.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event.Slug = in.Slug
	event.Title = in.Title
	event.Description = in.Description
	event.Date = in.Date
	event.Time = in.Time
	event.Mode = in.Mode
	event.Location = in.Location
	event.Image = in.Image

	if err := u.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete はイベントと紐づく登録行を削除します。
func (u *eventUsecase) Delete(ctx context.Context, id uint) error {
	return u.events.Delete(ctx, id)
}

// Registrations は指定イベントの登録台帳を返します（管理者レポート用）。
func (u *eventUsecase) Registrations(ctx context.Context, eventID uint) ([]entity.Registration, error) {
	if _, err := u.events.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return u.regs.ListByEvent(ctx, eventID)
}
