package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"community_backend/internal/api"
	"community_backend/internal/feature/teams/domain/entity"
	"community_backend/internal/feature/teams/transport/http/dto"
	"community_backend/internal/feature/teams/usecase"
)

// AdminTeamUsecase は管理者向けチーム・メンバー操作のユースケースを定義します。
type AdminTeamUsecase interface {
	ListAll(ctx context.Context) ([]entity.Team, error)
	CreateTeam(ctx context.Context, in usecase.TeamInput) (*entity.Team, error)
	UpdateTeam(ctx context.Context, id uint, in usecase.TeamInput) (*entity.Team, error)
	DeleteTeam(ctx context.Context, id uint) error
	MembersByTeam(ctx context.Context, teamID uint) ([]entity.TeamMember, error)
	CreateMember(ctx context.Context, teamID uint, in usecase.MemberInput) (*entity.TeamMember, error)
	UpdateMember(ctx context.Context, memberID uint, in usecase.MemberInput) (*entity.TeamMember, error)
	DeleteMember(ctx context.Context, memberID uint) error
}

// AdminTeamHandler は管理者向けチームエンドポイントのHTTPリクエストを処理します。
// ルーター側でAdminRequiredミドルウェアの内側に配置される前提です。
type AdminTeamHandler struct {
	teams AdminTeamUsecase
}

// NewAdminTeamHandler はAdminTeamHandlerの新しいインスタンスを生成します。
func NewAdminTeamHandler(teams AdminTeamUsecase) *AdminTeamHandler {
	return &AdminTeamHandler{teams: teams}
}

// idParam parses a positive uint path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// List は管理画面向けの全チーム一覧を処理します。非公開チームも含まれます。
func (h *AdminTeamHandler) List(c *gin.Context) {
	teams, err := h.teams.ListAll(c.Request.Context())
	if err != nil {
		slog.Error("admin team list failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("Server error while fetching teams"))
		return
	}
	c.JSON(http.StatusOK, api.OK("", gin.H{"teams": teams}))
}

// Create はチーム作成エンドポイントを処理します。スラッグ重複は409です。
func (h *AdminTeamHandler) Create(c *gin.Context) {
	var req dto.TeamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("team create validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Error("Invalid request body"))
		return
	}

	team, err := h.teams.CreateTeam(c.Request.Context(), teamInput(req))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidSlug):
			c.JSON(http.StatusBadRequest, api.Error("Invalid team slug"))
		case errors.Is(err, usecase.ErrSlugExists):
			c.JSON(http.StatusConflict, api.Error("Team slug already exists"))
		default:
			slog.Error("team create failed", "error", err)
			c.JSON(http.StatusInternalServerError, api.Error("Server error while creating team"))
		}
		return
	}

	slog.Info("team created", "slug", team.Slug, "team_id", team.ID)
	c.JSON(http.StatusCreated, api.OK("Team created successfully", gin.H{"team": team}))
}

// Update はチーム更新エンドポイントを処理します。
func (h *AdminTeamHandler) Update(c *gin.Context) {
	teamID, ok := idParam(c, "teamId")
	if !ok {
		c.JSON(http.StatusBadRequest, api.Error("Invalid team id"))
		return
	}

	var req dto.TeamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("team update validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Error("Invalid request body"))
		return
	}

	team, err := h.teams.UpdateTeam(c.Request.Context(), teamID, teamInput(req))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTeamNotFound):
			c.JSON(http.StatusNotFound, api.Error("Team not found"))
		case errors.Is(err, usecase.ErrInvalidSlug):
			c.JSON(http.StatusBadRequest, api.Error("Invalid team slug"))
		case errors.Is(err, usecase.ErrSlugExists):
			c.JSON(http.StatusConflict, api.Error("Team slug already exists"))
		default:
			slog.Error("team update failed", "error", err, "team_id", teamID)
			c.JSON(http.StatusInternalServerError, api.Error("Server error while updating team"))
		}
		return
	}

	c.JSON(http.StatusOK, api.OK("Team updated successfully", gin.H{"team": team}))
}

// Delete はチーム削除エンドポイントを処理します。所属メンバーも削除されます。
func (h *AdminTeamHandler) Delete(c *gin.Context) {
	teamID, ok := idParam(c, "teamId")
	if !ok {
		c.JSON(http.StatusBadRequest, api.Error("Invalid team id"))
		return
	}

	if err := h.teams.DeleteTeam(c.Request.Context(), teamID); err != nil {
		if errors.Is(err, usecase.ErrTeamNotFound) {
			c.JSON(http.StatusNotFound, api.Error("Team not found"))
			return
		}
		slog.Error("team delete failed", "error", err, "team_id", teamID)
		c.JSON(http.StatusInternalServerError, api.Error("Server error while deleting team"))
		return
	}

	slog.Info("team deleted", "team_id", teamID)
	c.JSON(http.StatusOK, api.OK("Team deleted", nil))
}

// Members は指定チームの全メンバー一覧を処理します（非公開含む）。
func (h *AdminTeamHandler) Members(c *gin.Context) {
	teamID, ok := idParam(c, "teamId")
	if !ok {
		c.JSON(http.StatusBadRequest, api.Error("Invalid team id"))
		return
	}

	members, err := h.teams.MembersByTeam(c.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, usecase.ErrTeamNotFound) {
			c.JSON(http.StatusNotFound, api.Error("Team not found"))
			return
		}
		slog.Error("admin member list failed", "error", err, "team_id", teamID)
		c.JSON(http.StatusInternalServerError, api.Error("Server error while fetching team members"))
		return
	}
	c.JSON(http.StatusOK, api.OK("", gin.H{"members": members}))
}

// CreateMember はメンバー追加エンドポイントを処理します。
func (h *AdminTeamHandler) CreateMember(c *gin.Context) {
	teamID, ok := idParam(c, "teamId")
	if !ok {
		c.JSON(http.StatusBadRequest, api.Error("Invalid team id"))
		return
	}

	var req dto.MemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("member create validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Error("Invalid request body"))
		return
	}

	member, err := h.teams.CreateMember(c.Request.Context(), teamID, memberInput(req))
	if err != nil {
		if errors.Is(err, usecase.ErrTeamNotFound) {
			c.JSON(http.StatusNotFound, api.Error("Team not found"))
			return
		}
		slog.Error("member create failed", "error", err, "team_id", teamID)
		c.JSON(http.StatusInternalServerError, api.Error("Server error while creating member"))
		return
	}

	slog.Info("team member created", "team_id", teamID, "member_id", member.ID)
	c.JSON(http.StatusCreated, api.OK("Member created successfully", gin.H{"member": member}))
}

// UpdateMember はメンバー更新エンドポイントを処理します。
func (h *AdminTeamHandler) UpdateMember(c *gin.Context) {
	memberID, ok := idParam(c, "memberId")
	if !ok {
		c.JSON(http.StatusBadRequest, api.Error("Invalid member id"))
		return
	}

	var req dto.MemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("member update validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Error("Invalid request body"))
		return
	}

	member, err := h.teams.UpdateMember(c.Request.Context(), memberID, memberInput(req))
	if err != nil {
		if errors.Is(err, usecase.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.Error("Member not found"))
			return
		}
		slog.Error("member update failed", "error", err, "member_id", memberID)
		c.JSON(http.StatusInternalServerError, api.Error("Server error while updating member"))
		return
	}

	c.JSON(http.StatusOK, api.OK("Member updated successfully", gin.H{"member": member}))
}

// DeleteMember はメンバー削除エンドポイントを処理します。
func (h *AdminTeamHandler) DeleteMember(c *gin.Context) {
	memberID, ok := idParam(c, "memberId")
	if !ok {
		c.JSON(http.StatusBadRequest, api.Error("Invalid member id"))
		return
	}

	if err := h.teams.DeleteMember(c.Request.Context(), memberID); err != nil {
		if errors.Is(err, usecase.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.Error("Member not found"))
			return
		}
		slog.Error("member delete failed", "error", err, "member_id", memberID)
		c.JSON(http.StatusInternalServerError, api.Error("Server error while deleting member"))
		return
	}

	slog.Info("team member deleted", "member_id", memberID)
	c.JSON(http.StatusOK, api.OK("Member deleted", nil))
}

// teamInput はDTOをユースケース入力へ変換します。isActive省略時はtrueです。
func teamInput(req dto.TeamReq) usecase.TeamInput {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return usecase.TeamInput{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		IsActive:    active,
	}
}

// memberInput はDTOをユースケース入力へ変換します。isActive省略時はtrueです。
func memberInput(req dto.MemberReq) usecase.MemberInput {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return usecase.MemberInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		LinkedIn:     req.LinkedIn,
		Image:        req.Image,
		DisplayOrder: req.Order,
		IsActive:     active,
	}
}
