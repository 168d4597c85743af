package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"community_backend/internal/app/di"
	"community_backend/internal/app/router"
	adminhandler "community_backend/internal/feature/admin/transport/handler"
	adminusecase "community_backend/internal/feature/admin/usecase"
	authadapters "community_backend/internal/feature/auth/adapters"
	authhandler "community_backend/internal/feature/auth/transport/handler"
	authusecase "community_backend/internal/feature/auth/usecase"
	eventsadapters "community_backend/internal/feature/events/adapters"
	eventshandler "community_backend/internal/feature/events/transport/handler"
	eventsusecase "community_backend/internal/feature/events/usecase"
	identityhandler "community_backend/internal/feature/identity/transport/handler"
	profileadapters "community_backend/internal/feature/profile/adapters"
	profilehandler "community_backend/internal/feature/profile/transport/handler"
	profileusecase "community_backend/internal/feature/profile/usecase"
	teamsadapters "community_backend/internal/feature/teams/adapters"
	teamshandler "community_backend/internal/feature/teams/transport/handler"
	teamsusecase "community_backend/internal/feature/teams/usecase"
	"community_backend/internal/platform/cloudinary"
	platformdb "community_backend/internal/platform/db"
	jwtmw "community_backend/internal/platform/jwt"
	"community_backend/internal/platform/mail"
	platformredis "community_backend/internal/platform/redis"
)

// トークン有効期限。管理者トークンは管理画面全体を守るため短めにする。
const (
	userTokenTTL  = 7 * 24 * time.Hour
	adminTokenTTL = 12 * time.Hour
)

func main() {
	// .envはローカル開発用。無ければ環境変数をそのまま使う
	_ = godotenv.Load()

	// db
	db := platformdb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Identity（Supabaseトークン → ローカルユーザー）
	reconciler := di.NewReconciler(db)

	// Repository
	eventRepo := di.NewEventRepository(rdb, db)
	regRepo := eventsadapters.NewRegistrationGorm(db)
	userRepo := authadapters.NewUserGorm(db)
	profileRepo := profileadapters.NewProfileGorm(db)
	teamRepo := teamsadapters.NewTeamGorm(db)
	memberRepo := teamsadapters.NewMemberGorm(db)

	// Usecase
	tokens := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), userTokenTTL, adminTokenTTL)
	mailer := mail.NewSMTPMailer(mail.LoadConfig())
	authUC := authusecase.NewAuthUsecase(userRepo, tokens, mailer)
	eventUC := eventsusecase.NewEventUsecase(eventRepo, regRepo, reconciler)
	profileUC := profileusecase.NewProfileUsecase(profileRepo)
	teamUC := teamsusecase.NewTeamUsecase(teamRepo, memberRepo)
	adminUC := adminusecase.NewAdminUsecase(adminusecase.LoadCredentials(), tokens)
	signer := cloudinary.NewSigner(cloudinary.LoadConfig())

	// SEED_DEFAULT_EVENTS=true のとき定番イベントを投入する
	if err := eventUC.SeedDefaults(context.Background()); err != nil {
		slog.Error("failed to seed default events", "error", err)
	}

	// Handler
	h := router.Handlers{
		Auth:       authhandler.NewAuthHandler(authUC),
		Sync:       identityhandler.NewSyncHandler(reconciler),
		Events:     eventshandler.NewEventHandler(eventUC),
		AdminEvent: eventshandler.NewAdminEventHandler(eventUC),
		Teams:      teamshandler.NewTeamHandler(teamUC),
		AdminTeam:  teamshandler.NewAdminTeamHandler(teamUC),
		Profile:    profilehandler.NewProfileHandler(profileUC),
		Admin:      adminhandler.NewAdminHandler(adminUC, signer),
	}

	// ルータ生成
	r := router.NewRouter(h, reconciler)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
