package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"community_backend/internal/feature/teams/domain/entity"
	"community_backend/internal/feature/teams/usecase"
)

// mockTeamUsecase implements both TeamUsecase and AdminTeamUsecase.
type mockTeamUsecase struct {
	ListActiveFunc    func(ctx context.Context) ([]entity.TeamWithCount, error)
	BySlugFunc        func(ctx context.Context, slug string) (*entity.TeamWithCount, error)
	MembersBySlugFunc func(ctx context.Context, slug string) ([]entity.TeamMember, error)
	ListAllFunc       func(ctx context.Context) ([]entity.Team, error)
	CreateTeamFunc    func(ctx context.Context, in usecase.TeamInput) (*entity.Team, error)
	UpdateTeamFunc    func(ctx context.Context, id uint, in usecase.TeamInput) (*entity.Team, error)
	DeleteTeamFunc    func(ctx context.Context, id uint) error
	MembersByTeamFunc func(ctx context.Context, teamID uint) ([]entity.TeamMember, error)
	CreateMemberFunc  func(ctx context.Context, teamID uint, in usecase.MemberInput) (*entity.TeamMember, error)
	UpdateMemberFunc  func(ctx context.Context, memberID uint, in usecase.MemberInput) (*entity.TeamMember, error)
	DeleteMemberFunc  func(ctx context.Context, memberID uint) error
}

func (m *mockTeamUsecase) ListActive(ctx context.Context) ([]entity.TeamWithCount, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockTeamUsecase) BySlug(ctx context.Context, slug string) (*entity.TeamWithCount, error) {
	if m.BySlugFunc != nil {
		return m.BySlugFunc(ctx, slug)
	}
	return nil, usecase.ErrTeamNotFound
}

func (m *mockTeamUsecase) MembersBySlug(ctx context.Context, slug string) ([]entity.TeamMember, error) {
	if m.MembersBySlugFunc != nil {
		return m.MembersBySlugFunc(ctx, slug)
	}
	return nil, usecase.ErrTeamNotFound
}

func (m *mockTeamUsecase) ListAll(ctx context.Context) ([]entity.Team, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockTeamUsecase) CreateTeam(ctx context.Context, in usecase.TeamInput) (*entity.Team, error) {
	if m.CreateTeamFunc != nil {
		return m.CreateTeamFunc(ctx, in)
	}
	return &entity.Team{ID: 1, Slug: in.Slug}, nil
}

func (m *mockTeamUsecase) UpdateTeam(ctx context.Context, id uint, in usecase.TeamInput) (*entity.Team, error) {
	if m.UpdateTeamFunc != nil {
		return m.UpdateTeamFunc(ctx, id, in)
	}
	return &entity.Team{ID: id, Slug: in.Slug}, nil
}

func (m *mockTeamUsecase) DeleteTeam(ctx context.Context, id uint) error {
	if m.DeleteTeamFunc != nil {
		return m.DeleteTeamFunc(ctx, id)
	}
	return nil
}

func (m *mockTeamUsecase) MembersByTeam(ctx context.Context, teamID uint) ([]entity.TeamMember, error) {
	if m.MembersByTeamFunc != nil {
		return m.MembersByTeamFunc(ctx, teamID)
	}
	return nil, nil
}

func (m *mockTeamUsecase) CreateMember(ctx context.Context, teamID uint, in usecase.MemberInput) (*entity.TeamMember, error) {
	if m.CreateMemberFunc != nil {
		return m.CreateMemberFunc(ctx, teamID, in)
	}
	return &entity.TeamMember{ID: 1, TeamID: teamID}, nil
}

func (m *mockTeamUsecase) UpdateMember(ctx context.Context, memberID uint, in usecase.MemberInput) (*entity.TeamMember, error) {
	if m.UpdateMemberFunc != nil {
		return m.UpdateMemberFunc(ctx, memberID, in)
	}
	return &entity.TeamMember{ID: memberID}, nil
}

func (m *mockTeamUsecase) DeleteMember(ctx context.Context, memberID uint) error {
	if m.DeleteMemberFunc != nil {
		return m.DeleteMemberFunc(ctx, memberID)
	}
	return nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestTeamHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewTeamHandler(&mockTeamUsecase{
		ListActiveFunc: func(ctx context.Context) ([]entity.TeamWithCount, error) {
			return []entity.TeamWithCount{
				{Team: entity.Team{ID: 1, Slug: "tech"}, MembersCount: 4},
			}, nil
		},
	})

	router := gin.New()
	router.GET("/api/teams", h.List)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/teams", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	teams := body["data"].(map[string]any)["teams"].([]any)
	require.Len(t, teams, 1)
	assert.Equal(t, float64(4), teams[0].(map[string]any)["membersCount"])
}

func TestTeamHandler_BySlug(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		slug           string
		mockErr        error
		expectedStatus int
	}{
		{name: "found", slug: "tech", expectedStatus: http.StatusOK},
		{name: "unknown team", slug: "ghost", mockErr: usecase.ErrTeamNotFound, expectedStatus: http.StatusNotFound},
		{name: "invalid slug", slug: "%21%21", mockErr: usecase.ErrInvalidSlug, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTeamHandler(&mockTeamUsecase{
				BySlugFunc: func(ctx context.Context, slug string) (*entity.TeamWithCount, error) {
					if tt.mockErr != nil {
						return nil, tt.mockErr
					}
					return &entity.TeamWithCount{Team: entity.Team{ID: 1, Slug: slug}}, nil
				},
			})

			router := gin.New()
			router.GET("/api/teams/:slug", h.BySlug)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/teams/"+tt.slug, nil))
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestTeamHandler_Members(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewTeamHandler(&mockTeamUsecase{
		MembersBySlugFunc: func(ctx context.Context, slug string) ([]entity.TeamMember, error) {
			assert.Equal(t, "tech", slug)
			return []entity.TeamMember{{ID: 1, FirstName: "Alice"}}, nil
		},
	})

	router := gin.New()
	router.GET("/api/teams/:slug/members", h.Members)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/teams/tech/members", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	members := body["data"].(map[string]any)["members"].([]any)
	require.Len(t, members, 1)
}

func postJSON(t *testing.T, router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminTeamHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	validBody := gin.H{
		"slug":        "tech-team",
		"title":       "Tech Team",
		"description": "Builders",
		"color":       "blue",
		"icon":        "cpu",
	}

	t.Run("success defaults to active", func(t *testing.T) {
		h := NewAdminTeamHandler(&mockTeamUsecase{
			CreateTeamFunc: func(ctx context.Context, in usecase.TeamInput) (*entity.Team, error) {
				assert.True(t, in.IsActive, "isActive must default to true")
				return &entity.Team{ID: 1, Slug: in.Slug, IsActive: in.IsActive}, nil
			},
		})

		router := gin.New()
		router.POST("/api/admin/teams", h.Create)

		w := postJSON(t, router, http.MethodPost, "/api/admin/teams", validBody)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("slug conflict yields 409", func(t *testing.T) {
		h := NewAdminTeamHandler(&mockTeamUsecase{
			CreateTeamFunc: func(ctx context.Context, in usecase.TeamInput) (*entity.Team, error) {
				return nil, usecase.ErrSlugExists
			},
		})

		router := gin.New()
		router.POST("/api/admin/teams", h.Create)

		w := postJSON(t, router, http.MethodPost, "/api/admin/teams", validBody)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Team slug already exists", decodeBody(t, w)["message"])
	})

	t.Run("missing fields yield 400", func(t *testing.T) {
		h := NewAdminTeamHandler(&mockTeamUsecase{})

		router := gin.New()
		router.POST("/api/admin/teams", h.Create)

		w := postJSON(t, router, http.MethodPost, "/api/admin/teams", gin.H{"slug": "tech"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminTeamHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		path           string
		mockErr        error
		expectedStatus int
	}{
		{name: "success", path: "/api/admin/teams/1", expectedStatus: http.StatusOK},
		{name: "unknown team", path: "/api/admin/teams/99", mockErr: usecase.ErrTeamNotFound, expectedStatus: http.StatusNotFound},
		{name: "malformed id", path: "/api/admin/teams/abc", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAdminTeamHandler(&mockTeamUsecase{
				DeleteTeamFunc: func(ctx context.Context, id uint) error {
					return tt.mockErr
				},
			})

			router := gin.New()
			router.DELETE("/api/admin/teams/:teamId", h.Delete)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, tt.path, nil))
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAdminTeamHandler_CreateMember(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success passes the team id", func(t *testing.T) {
		h := NewAdminTeamHandler(&mockTeamUsecase{
			CreateMemberFunc: func(ctx context.Context, teamID uint, in usecase.MemberInput) (*entity.TeamMember, error) {
				assert.Equal(t, uint(7), teamID)
				assert.Equal(t, 3, in.DisplayOrder)
				return &entity.TeamMember{ID: 1, TeamID: teamID}, nil
			},
		})

		router := gin.New()
		router.POST("/api/admin/teams/:teamId/members", h.CreateMember)

		w := postJSON(t, router, http.MethodPost, "/api/admin/teams/7/members", gin.H{
			"firstName": "Alice",
			"lastName":  "Smith",
			"role":      "Lead",
			"order":     3,
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("unknown team yields 404", func(t *testing.T) {
		h := NewAdminTeamHandler(&mockTeamUsecase{
			CreateMemberFunc: func(ctx context.Context, teamID uint, in usecase.MemberInput) (*entity.TeamMember, error) {
				return nil, usecase.ErrTeamNotFound
			},
		})

		router := gin.New()
		router.POST("/api/admin/teams/:teamId/members", h.CreateMember)

		w := postJSON(t, router, http.MethodPost, "/api/admin/teams/99/members", gin.H{
			"firstName": "Alice",
			"lastName":  "Smith",
			"role":      "Lead",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-url linkedin yields 400", func(t *testing.T) {
		h := NewAdminTeamHandler(&mockTeamUsecase{})

		router := gin.New()
		router.POST("/api/admin/teams/:teamId/members", h.CreateMember)

		w := postJSON(t, router, http.MethodPost, "/api/admin/teams/7/members", gin.H{
			"firstName": "Alice",
			"lastName":  "Smith",
			"role":      "Lead",
			"linkedin":  "not-a-url",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminTeamHandler_DeleteMember(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewAdminTeamHandler(&mockTeamUsecase{
		DeleteMemberFunc: func(ctx context.Context, memberID uint) error {
			if memberID == 99 {
				return usecase.ErrMemberNotFound
			}
			return nil
		},
	})

	router := gin.New()
	router.DELETE("/api/admin/members/:memberId", h.DeleteMember)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/admin/members/5", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/admin/members/99", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
