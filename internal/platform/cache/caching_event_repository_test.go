package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"community_backend/internal/feature/events/domain/entity"
)

// mockEventRepository はテスト用のEventRepositoryモック実装です。
type mockEventRepository struct {
	listFn      func(ctx context.Context) ([]entity.Event, error)
	findByIDFn  func(ctx context.Context, id uint) (*entity.Event, error)
	createFn    func(ctx context.Context, event *entity.Event) error
	updateFn    func(ctx context.Context, event *entity.Event) error
	deleteFn    func(ctx context.Context, id uint) error
	incrementFn func(ctx context.Context, id uint, delta int) (int64, error)
}

func (m *mockEventRepository) List(ctx context.Context) ([]entity.Event, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockEventRepository) FindByID(ctx context.Context, id uint) (*entity.Event, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, errors.New("not found")
}

func (m *mockEventRepository) Create(ctx context.Context, event *entity.Event) error {
	if m.createFn != nil {
		return m.createFn(ctx, event)
	}
	return nil
}

func (m *mockEventRepository) Update(ctx context.Context, event *entity.Event) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, event)
	}
	return nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockEventRepository) IncrementRegisteredCount(ctx context.Context, id uint, delta int) (int64, error) {
	if m.incrementFn != nil {
		return m.incrementFn(ctx, id, delta)
	}
	return 1, nil
}

// TestNewCachingEventRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingEventRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       time.Minute,
			expectedNamespace: "events",
		},
		{
			name:              "custom values preserved",
			ttl:               10 * time.Minute,
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingEventRepository(nil, tt.ttl, &mockEventRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

// TestCachingEventRepository_List_NilRedis はRedisがnilの場合にキャッシュをバイパスして内部リポジトリを直接呼び出すことを検証します。
func TestCachingEventRepository_List_NilRedis(t *testing.T) {
	t.Parallel()

	expected := []entity.Event{{ID: 1, Slug: "first"}}
	inner := &mockEventRepository{
		listFn: func(ctx context.Context) ([]entity.Event, error) {
			return expected, nil
		},
	}

	repo := NewCachingEventRepository(nil, time.Minute, inner, "events")

	events, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].Slug != "first" {
		t.Errorf("unexpected events: %+v", events)
	}
}

// TestCachingEventRepository_List_CacheHit はキャッシュヒット時にRedisからデータを返し、内部リポジトリを呼ばないことを検証します。
func TestCachingEventRepository_List_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached := []entity.Event{{ID: 1, Slug: "cached-event"}}
	payload, err := json.Marshal(cached)
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}
	mock.ExpectGet("events:list").SetVal(string(payload))

	inner := &mockEventRepository{
		listFn: func(ctx context.Context) ([]entity.Event, error) {
			t.Error("inner repository must not be called on a cache hit")
			return nil, nil
		},
	}
	repo := NewCachingEventRepository(rdb, time.Minute, inner, "events")

	events, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].Slug != "cached-event" {
		t.Errorf("unexpected events: %+v", events)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("redis expectations: %v", err)
	}
}

// TestCachingEventRepository_List_CacheMiss はキャッシュミス時に内部リポジトリへフォールバックし、結果をキャッシュに保存することを検証します。
func TestCachingEventRepository_List_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	fresh := []entity.Event{{ID: 2, Slug: "fresh-event"}}
	payload, err := json.Marshal(fresh)
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}

	mock.ExpectGet("events:list").RedisNil()
	mock.ExpectSet("events:list", payload, time.Minute).SetVal("OK")

	inner := &mockEventRepository{
		listFn: func(ctx context.Context) ([]entity.Event, error) {
			return fresh, nil
		},
	}
	repo := NewCachingEventRepository(rdb, time.Minute, inner, "events")

	events, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].Slug != "fresh-event" {
		t.Errorf("unexpected events: %+v", events)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("redis expectations: %v", err)
	}
}

// TestCachingEventRepository_Increment_Invalidates はカウンタ加算後にイベントのキャッシュキーが破棄されることを検証します。
func TestCachingEventRepository_Increment_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("events:list", "events:id:7").SetVal(2)

	inner := &mockEventRepository{
		incrementFn: func(ctx context.Context, id uint, delta int) (int64, error) {
			return 1, nil
		},
	}
	repo := NewCachingEventRepository(rdb, time.Minute, inner, "events")

	matched, err := repo.IncrementRegisteredCount(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matched != 1 {
		t.Errorf("expected 1 matched row, got %d", matched)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("redis expectations: %v", err)
	}
}

// TestCachingEventRepository_Increment_ZeroMatch は0行一致時にキャッシュを触らないことを検証します。
func TestCachingEventRepository_Increment_ZeroMatch(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockEventRepository{
		incrementFn: func(ctx context.Context, id uint, delta int) (int64, error) {
			return 0, nil
		},
	}
	repo := NewCachingEventRepository(rdb, time.Minute, inner, "events")

	matched, err := repo.IncrementRegisteredCount(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matched != 0 {
		t.Errorf("expected 0 matched rows, got %d", matched)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("redis expectations: %v", err)
	}
}

// TestCachingEventRepository_Create_WriteThrough は書き込みが内部リポジトリへ到達し、一覧キャッシュが破棄されることを検証します。
func TestCachingEventRepository_Create_WriteThrough(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	var created *entity.Event
	inner := &mockEventRepository{
		createFn: func(ctx context.Context, event *entity.Event) error {
			event.ID = 3
			created = event
			return nil
		},
	}
	mock.ExpectDel("events:list", "events:id:3").SetVal(1)

	repo := NewCachingEventRepository(rdb, time.Minute, inner, "events")

	event := &entity.Event{Slug: "brand-new"}
	if err := repo.Create(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected the write to reach the inner repository")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("redis expectations: %v", err)
	}
}

// TestCachingEventRepository_Create_InnerError は内部リポジトリのエラー時にキャッシュ操作が行われないことを検証します。
func TestCachingEventRepository_Create_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockEventRepository{
		createFn: func(ctx context.Context, event *entity.Event) error {
			return errors.New("insert failed")
		},
	}
	repo := NewCachingEventRepository(rdb, time.Minute, inner, "events")

	if err := repo.Create(context.Background(), &entity.Event{Slug: "broken"}); err == nil {
		t.Error("expected the inner error to propagate")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("redis expectations: %v", err)
	}
}
