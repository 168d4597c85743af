// Package usecase はprofileフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"community_backend/internal/feature/profile/domain/entity"
)

// Validation limits for profile fields.
const (
	fullNameMin = 2
	fullNameMax = 100
	classMax    = 50
	bioMax      = 500
)

var (
	prnPattern = regexp.MustCompile(`^[A-Za-z0-9]{6,20}$`)

	// imageURLPattern accepts direct links to common image formats.
	imageURLPattern = regexp.MustCompile(`(?i)^https?://.+\.(jpg|jpeg|png|gif|webp|svg)$`)

	// cloudinaryURLPattern accepts any Cloudinary delivery URL regardless of extension.
	cloudinaryURLPattern = regexp.MustCompile(`(?i)^https://res\.cloudinary\.com/.+`)

	// cloudinaryPublicID extracts the public id from a versioned delivery URL.
	cloudinaryPublicID = regexp.MustCompile(`/v\d+/(.+?)\.`)
)

// ProfileRepository はプロフィールエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ProfileRepository interface {
	// FindByUserID はユーザーIDでプロフィールを取得します。
	// 見つからない場合はエラーではなく (nil, nil) を返します。
	FindByUserID(ctx context.Context, userID uint) (*entity.UserProfile, error)

	// FindByPRN はPRN番号でプロフィールを取得します。
	// 見つからない場合は (nil, nil) を返します。
	FindByPRN(ctx context.Context, prn string) (*entity.UserProfile, error)

	// Save はプロフィールを挿入または更新します。
	// PRNの一意制約違反はErrPRNExistsを返します。
	Save(ctx context.Context, profile *entity.UserProfile) error
}

// ProfileInput はプロフィール作成・更新の入力値です。
type ProfileInput struct {
	FullName     string
	ProfileImage string
	PRNNumber    string
	Class        string
	Division     string
	Bio          string
}

// profileUsecase はプロフィールのビジネスロジックを実装します。
type profileUsecase struct {
	profiles ProfileRepository
}

// NewProfileUsecase はprofileUsecaseの新しいインスタンスを生成します。
func NewProfileUsecase(profiles ProfileRepository) *profileUsecase {
	return &profileUsecase{profiles: profiles}
}

// Get は指定ユーザーのプロフィールを返します。未作成の場合は (nil, nil) です。
func (u *profileUsecase) Get(ctx context.Context, userID uint) (*entity.UserProfile, error) {
	return u.profiles.FindByUserID(ctx, userID)
}

// Upsert はプロフィールを検証のうえ作成または更新します。
//
// PRN番号は他ユーザーと重複できません。is_profile_completeは保存のたびに
// 必須フィールドから再計算されるため、データと食い違うことはありません。
func (u *profileUsecase) Upsert(ctx context.Context, userID uint, in ProfileInput) (*entity.UserProfile, error) {
	in = normalizeInput(in)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	// PRNの重複を先に検査して409を返す。競合した並行保存は一意制約が拾う
	existing, err := u.profiles.FindByPRN(ctx, in.PRNNumber)
	if err != nil {
		return nil, fmt.Errorf("lookup by prn: %w", err)
	}
	if existing != nil && existing.UserID != userID {
		return nil, ErrPRNExists
	}

	profile, err := u.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup by user: %w", err)
	}
	if profile == nil {
		profile = &entity.UserProfile{UserID: userID}
	}

	profile.FullName = in.FullName
	profile.PRNNumber = in.PRNNumber
	profile.Class = in.Class
	profile.Division = in.Division
	profile.Bio = in.Bio

	if in.ProfileImage != "" {
		profile.ProfileImage = &in.ProfileImage
		profile.CloudinaryPublicID = extractCloudinaryPublicID(in.ProfileImage)
	}

	profile.RecomputeComplete()

	if err := u.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// normalizeInput は前後空白を除去します。
func normalizeInput(in ProfileInput) ProfileInput {
	in.FullName = strings.TrimSpace(in.FullName)
	in.ProfileImage = strings.TrimSpace(in.ProfileImage)
	in.PRNNumber = strings.TrimSpace(in.PRNNumber)
	in.Class = strings.TrimSpace(in.Class)
	in.Division = strings.TrimSpace(in.Division)
	in.Bio = strings.TrimSpace(in.Bio)
	return in
}

// validateInput はフィールド単位の検証を行い、全違反をまとめて返します。
func validateInput(in ProfileInput) error {
	fields := map[string]string{}

	if len(in.FullName) < fullNameMin {
		fields["fullName"] = "Full name must be at least 2 characters long"
	} else if len(in.FullName) > fullNameMax {
		fields["fullName"] = "Full name cannot exceed 100 characters"
	}

	if !prnPattern.MatchString(in.PRNNumber) {
		fields["prnNumber"] = "PRN number must be 6-20 alphanumeric characters"
	}

	if !entity.ValidDivision(in.Division) {
		fields["division"] = "Division must be either GIA or SFI"
	}

	if in.Class == "" {
		fields["class"] = "Class is required"
	} else if len(in.Class) > classMax {
		fields["class"] = "Class cannot exceed 50 characters"
	}

	if len(in.Bio) > bioMax {
		fields["bio"] = "Bio cannot exceed 500 characters"
	}

	if in.ProfileImage != "" &&
		!imageURLPattern.MatchString(in.ProfileImage) &&
		!cloudinaryURLPattern.MatchString(in.ProfileImage) {
		fields["profileImage"] = "Profile image must be a valid image URL"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// extractCloudinaryPublicID はCloudinary配信URLからpublic idを取り出します。
// Cloudinary以外のURLではnilを返します。
func extractCloudinaryPublicID(imageURL string) *string {
	m := cloudinaryPublicID.FindStringSubmatch(imageURL)
	if m == nil {
		return nil
	}
	return &m[1]
}
