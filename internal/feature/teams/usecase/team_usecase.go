// Package usecase はteamsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"community_backend/internal/feature/teams/domain/entity"
)

// TeamRepository はチームエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type TeamRepository interface {
	// ListActive は公開中のチームを作成日降順で取得します。
	ListActive(ctx context.Context) ([]entity.Team, error)

	// ListAll は非公開も含む全チームを作成日降順で取得します（管理者用）。
	ListAll(ctx context.Context) ([]entity.Team, error)

	// FindActiveBySlug はスラッグで公開中のチームを取得します。
	// 存在しない場合、ErrTeamNotFoundを返します。
	FindActiveBySlug(ctx context.Context, slug string) (*entity.Team, error)

	// FindByID はIDでチームを取得します。
	// 存在しない場合、ErrTeamNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Team, error)

	// Create は新しいチームを挿入します。
	// スラッグ重複時はErrSlugExistsを返します。
	Create(ctx context.Context, team *entity.Team) error

	// Update は既存チームの変更を永続化します。
	Update(ctx context.Context, team *entity.Team) error

	// Delete はチームと所属メンバーを削除します。
	// 対象が存在しない場合、ErrTeamNotFoundを返します。
	Delete(ctx context.Context, id uint) error
}

// MemberRepository はチームメンバーの永続化層を抽象化します。
type MemberRepository interface {
	// ListActiveByTeam は公開中のメンバーを表示順昇順で取得します。
	ListActiveByTeam(ctx context.Context, teamID uint) ([]entity.TeamMember, error)

	// ListByTeam は非公開も含む全メンバーを表示順昇順で取得します（管理者用）。
	ListByTeam(ctx context.Context, teamID uint) ([]entity.TeamMember, error)

	// FindByID はIDでメンバーを取得します。
	// 存在しない場合、ErrMemberNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.TeamMember, error)

	// Create は新しいメンバーを挿入します。
	Create(ctx context.Context, member *entity.TeamMember) error

	// Update は既存メンバーの変更を永続化します。
	Update(ctx context.Context, member *entity.TeamMember) error

	// Delete はメンバーをIDで削除します。
	// 対象が存在しない場合、ErrMemberNotFoundを返します。
	Delete(ctx context.Context, id uint) error

	// CountActiveByTeams は指定チーム群の公開メンバー数をチームIDごとに返します。
	CountActiveByTeams(ctx context.Context, teamIDs []uint) (map[uint]int64, error)
}

// teamUsecase はチームページと所属メンバーのビジネスロジックを実装します。
type teamUsecase struct {
	teams   TeamRepository
	members MemberRepository
}

// NewTeamUsecase はteamUsecaseの新しいインスタンスを生成します。
func NewTeamUsecase(teams TeamRepository, members MemberRepository) *teamUsecase {
	return &teamUsecase{teams: teams, members: members}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify はタイトルや入力スラッグをURL安全な形式に正規化します。
// 小文字化したうえで英数字以外の連続をハイフン1つにまとめます。
func Slugify(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	s = slugPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ListActive は公開中のチーム一覧をメンバー数付きで返します。
func (u *teamUsecase) ListActive(ctx context.Context) ([]entity.TeamWithCount, error) {
	teams, err := u.teams.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	ids := make([]uint, 0, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
	}
	counts, err := u.members.CountActiveByTeams(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count team members: %w", err)
	}

	result := make([]entity.TeamWithCount, 0, len(teams))
	for _, t := range teams {
		result = append(result, entity.TeamWithCount{Team: t, MembersCount: counts[t.ID]})
	}
	return result, nil
}

// BySlug は公開中のチームをスラッグで返します。
// 保存済みスラッグとの不一致を避けるため、検索前に入力を正規化します。
func (u *teamUsecase) BySlug(ctx context.Context, slug string) (*entity.TeamWithCount, error) {
	normalized := Slugify(slug)
	if normalized == "" {
		return nil, ErrInvalidSlug
	}

	team, err := u.teams.FindActiveBySlug(ctx, normalized)
	if err != nil {
		return nil, err
	}

	counts, err := u.members.CountActiveByTeams(ctx, []uint{team.ID})
	if err != nil {
		return nil, fmt.Errorf("count team members: %w", err)
	}
	return &entity.TeamWithCount{Team: *team, MembersCount: counts[team.ID]}, nil
}

// MembersBySlug は公開中のチームの公開メンバーを表示順で返します。
func (u *teamUsecase) MembersBySlug(ctx context.Context, slug string) ([]entity.TeamMember, error) {
	normalized := Slugify(slug)
	if normalized == "" {
		return nil, ErrInvalidSlug
	}

	team, err := u.teams.FindActiveBySlug(ctx, normalized)
	if err != nil {
		return nil, err
	}
	return u.members.ListActiveByTeam(ctx, team.ID)
}

// TeamInput は管理者によるチーム作成・更新の入力値です。
type TeamInput struct {
	Slug        string
	Title       string
	Description string
	Color       string
	Icon        string
	IsActive    bool
}

// ListAll は非公開も含む全チームを返します（管理者用）。
func (u *teamUsecase) ListAll(ctx context.Context) ([]entity.Team, error) {
	return u.teams.ListAll(ctx)
}

// CreateTeam は新しいチームを作成します。スラッグは保存前に正規化されます。
func (u *teamUsecase) CreateTeam(ctx context.Context, in TeamInput) (*entity.Team, error) {
	slug := Slugify(in.Slug)
	if slug == "" {
		return nil, ErrInvalidSlug
	}

	team := &entity.Team{
		Slug:        slug,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Color:       strings.TrimSpace(in.Color),
		Icon:        strings.TrimSpace(in.Icon),
		IsActive:    in.IsActive,
	}
	if err := u.teams.Create(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// UpdateTeam は既存チームを更新します。
func (u *teamUsecase) UpdateTeam(ctx context.Context, id uint, in TeamInput) (*entity.Team, error) {
	slug := Slugify(in.Slug)
	if slug == "" {
		return nil, ErrInvalidSlug
	}

	team, err := u.teams.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	team.Slug = slug
	team.Title = strings.TrimSpace(in.Title)
	team.Description = strings.TrimSpace(in.Description)
	team.Color = strings.TrimSpace(in.Color)
	team.Icon = strings.TrimSpace(in.Icon)
	team.IsActive = in.IsActive

	if err := u.teams.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// DeleteTeam はチームと所属メンバーを削除します。
func (u *teamUsecase) DeleteTeam(ctx context.Context, id uint) error {
	return u.teams.Delete(ctx, id)
}

// MemberInput は管理者によるメンバー作成・更新の入力値です。
type MemberInput struct {
	FirstName    string
	LastName     string
	Role         string
	LinkedIn     string
	Image        string
	DisplayOrder int
	IsActive     bool
}

// MembersByTeam は非公開も含む指定チームの全メンバーを返します（管理者用）。
func (u *teamUsecase) MembersByTeam(ctx context.Context, teamID uint) ([]entity.TeamMember, error) {
	if _, err := u.teams.FindByID(ctx, teamID); err != nil {
		return nil, err
	}
	return u.members.ListByTeam(ctx, teamID)
}

// CreateMember は指定チームに新しいメンバーを追加します。
func (u *teamUsecase) CreateMember(ctx context.Context, teamID uint, in MemberInput) (*entity.TeamMember, error) {
	team, err := u.teams.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	member := &entity.TeamMember{
		TeamID:       team.ID,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         strings.TrimSpace(in.Role),
		LinkedIn:     optional(in.LinkedIn),
		Image:        optional(in.Image),
		DisplayOrder: in.DisplayOrder,
		IsActive:     in.IsActive,
	}
	if err := u.members.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// UpdateMember は既存メンバーを更新します。所属チームは変更できません。
func (u *teamUsecase) UpdateMember(ctx context.Context, memberID uint, in MemberInput) (*entity.TeamMember, error) {
	member, err := u.members.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	member.FirstName = strings.TrimSpace(in.FirstName)
	member.LastName = strings.TrimSpace(in.LastName)
	member.Role = strings.TrimSpace(in.Role)
	member.LinkedIn = optional(in.LinkedIn)
	member.Image = optional(in.Image)
	member.DisplayOrder = in.DisplayOrder
	member.IsActive = in.IsActive

	if err := u.members.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// DeleteMember はメンバーを削除します。
func (u *teamUsecase) DeleteMember(ctx context.Context, memberID uint) error {
	return u.members.Delete(ctx, memberID)
}

// optional は空文字列をNULL相当のnilに変換します。
func optional(value string) *string {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	return &v
}
