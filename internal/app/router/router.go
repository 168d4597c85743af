package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"community_backend/internal/app/di"
	adminhandler "community_backend/internal/feature/admin/transport/handler"
	authhandler "community_backend/internal/feature/auth/transport/handler"
	eventshandler "community_backend/internal/feature/events/transport/handler"
	identityhandler "community_backend/internal/feature/identity/transport/handler"
	identitymw "community_backend/internal/feature/identity/transport/middleware"
	profilehandler "community_backend/internal/feature/profile/transport/handler"
	teamshandler "community_backend/internal/feature/teams/transport/handler"
	"community_backend/internal/platform/http/handler"
	jwtmw "community_backend/internal/platform/jwt"
	"community_backend/internal/shared/ratelimiter"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth       *authhandler.AuthHandler
	Sync       *identityhandler.SyncHandler
	Events     *eventshandler.EventHandler
	AdminEvent *eventshandler.AdminEventHandler
	Teams      *teamshandler.TeamHandler
	AdminTeam  *teamshandler.AdminTeamHandler
	Profile    *profilehandler.ProfileHandler
	Admin      *adminhandler.AdminHandler
}

func NewRouter(h Handlers, reconciler di.Reconciler) *gin.Engine {
	r := gin.Default()

	// ブラウザフロントエンドから叩かれるためCORSを許可する
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)

	api := r.Group("/api")

	// 認証系はOTPメール送信を伴うため、IP単位でレートリミットをかける
	authLimiter := ratelimiter.NewLimiter(20, time.Minute)

	auth := api.Group("/auth")
	auth.Use(ratelimiter.Middleware(authLimiter))
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/verify-otp", h.Auth.VerifyOTP)
		auth.POST("/resend-otp", h.Auth.ResendOTP)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/logout", h.Auth.Logout)
		auth.POST("/supabase-sync", h.Sync.Sync)
		// ローカルJWTが必要なルート
		auth.GET("/me", jwtmw.AuthRequired(), h.Auth.Me)
	}

	// 公開ルート（トークンは任意。付いていれば登録状況が付与される）
	api.GET("/events", h.Events.List)
	api.POST("/events/:eventId/register", h.Events.Register)

	api.GET("/teams", h.Teams.List)
	api.GET("/teams/:slug", h.Teams.BySlug)
	api.GET("/teams/:slug/members", h.Teams.Members)

	// プロフィールはSupabaseトークンで同期済みユーザーのみ
	profile := api.Group("/profile")
	profile.Use(identitymw.IdentityRequired(reconciler))
	{
		profile.GET("", h.Profile.Get)
		profile.POST("", h.Profile.Upsert)
	}

	// 管理者ログインはガードの外
	api.POST("/admin/login", ratelimiter.Middleware(authLimiter), h.Admin.Login)

	// 管理者トークン必須のルート
	admin := api.Group("/admin")
	admin.Use(jwtmw.AdminRequired())
	{
		admin.GET("/me", h.Admin.Me)
		admin.GET("/cloudinary/signature", h.Admin.CloudinarySignature)

		admin.GET("/events", h.AdminEvent.List)
		admin.POST("/events", h.AdminEvent.Create)
		admin.PUT("/events/:eventId", h.AdminEvent.Update)
		admin.DELETE("/events/:eventId", h.AdminEvent.Delete)
		admin.GET("/events/:eventId/registrations", h.AdminEvent.Registrations)

		admin.GET("/teams", h.AdminTeam.List)
		admin.POST("/teams", h.AdminTeam.Create)
		admin.PUT("/teams/:teamId", h.AdminTeam.Update)
		admin.DELETE("/teams/:teamId", h.AdminTeam.Delete)
		admin.GET("/teams/:teamId/members", h.AdminTeam.Members)
		admin.POST("/teams/:teamId/members", h.AdminTeam.CreateMember)
		admin.PUT("/members/:memberId", h.AdminTeam.UpdateMember)
		admin.DELETE("/members/:memberId", h.AdminTeam.DeleteMember)
	}

	return r
}
