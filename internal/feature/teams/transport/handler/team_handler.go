// Package handler はteamsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"community_backend/internal/api"
	"community_backend/internal/feature/teams/domain/entity"
	"community_backend/internal/feature/teams/usecase"
)

// TeamUsecase は公開チームページのユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type TeamUsecase interface {
	// ListActive は公開中のチーム一覧をメンバー数付きで返します。
	ListActive(ctx context.Context) ([]entity.TeamWithCount, error)
	// BySlug は公開中のチームをスラッグで返します。
	BySlug(ctx context.Context, slug string) (*entity.TeamWithCount, error)
	// MembersBySlug は公開中のチームの公開メンバーを表示順で返します。
	MembersBySlug(ctx context.Context, slug string) ([]entity.TeamMember, error)
}

// TeamHandler は公開チームエンドポイントのHTTPリクエストを処理します。
type TeamHandler struct {
	teams TeamUsecase
}

// NewTeamHandler はTeamHandlerの新しいインスタンスを生成します。
func NewTeamHandler(teams TeamUsecase) *TeamHandler {
	return &TeamHandler{teams: teams}
}

// List はチーム一覧APIエンドポイントを処理します。
func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.teams.ListActive(c.Request.Context())
	if err != nil {
		slog.Error("team list failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("Server error while fetching teams"))
		return
	}
	c.JSON(http.StatusOK, api.OK("", gin.H{"teams": teams}))
}

// BySlug はチーム単体取得APIエンドポイントを処理します。
func (h *TeamHandler) BySlug(c *gin.Context) {
	team, err := h.teams.BySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidSlug):
			c.JSON(http.StatusBadRequest, api.Error("Invalid team slug"))
		case errors.Is(err, usecase.ErrTeamNotFound):
			c.JSON(http.StatusNotFound, api.Error("Team not found"))
		default:
			slog.Error("team fetch failed", "error", err, "slug", c.Param("slug"))
			c.JSON(http.StatusInternalServerError, api.Error("Server error while fetching team"))
		}
		return
	}
	c.JSON(http.StatusOK, api.OK("", gin.H{"team": team}))
}

// Members はチームメンバー一覧APIエンドポイントを処理します。
func (h *TeamHandler) Members(c *gin.Context) {
	members, err := h.teams.MembersBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidSlug):
			c.JSON(http.StatusBadRequest, api.Error("Invalid team slug"))
		case errors.Is(err, usecase.ErrTeamNotFound):
			c.JSON(http.StatusNotFound, api.Error("Team not found"))
		default:
			slog.Error("team members fetch failed", "error", err, "slug", c.Param("slug"))
			c.JSON(http.StatusInternalServerError, api.Error("Server error while fetching team members"))
		}
		return
	}
	c.JSON(http.StatusOK, api.OK("", gin.H{"members": members}))
}
