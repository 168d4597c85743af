// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"

	"gorm.io/gorm"

	authentity "community_backend/internal/feature/auth/domain/entity"
	identityadapters "community_backend/internal/feature/identity/adapters"
	identityusecase "community_backend/internal/feature/identity/usecase"
	infrahttp "community_backend/internal/platform/http"
	"community_backend/internal/platform/supabase"
)

// Reconciler resolves a Supabase bearer token to a local user record.
type Reconciler interface {
	Sync(ctx context.Context, token string) (*authentity.User, error)
}

// NewSupabaseClient creates a fully configured Supabase auth client with HTTP client.
func NewSupabaseClient() *supabase.Client {
	cfg := supabase.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return supabase.NewClient(cfg, httpClient)
}

// NewReconciler wires the Supabase token validator to the local user store.
func NewReconciler(db *gorm.DB) Reconciler {
	return identityusecase.NewReconcilerUsecase(NewSupabaseClient(), identityadapters.NewUserGorm(db))
}
