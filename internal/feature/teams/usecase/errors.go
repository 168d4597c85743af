package usecase

import "errors"

// teamsフィーチャーのドメインエラー。ハンドラー層でHTTPステータスに変換されます。
var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrMemberNotFound = errors.New("team member not found")
	ErrSlugExists     = errors.New("team slug already exists")
	ErrInvalidSlug    = errors.New("invalid team slug")
)
