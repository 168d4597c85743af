// Package dto はteamsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// TeamReq は管理者のチーム作成・更新リクエストボディを表します。
// isActiveはポインタにすることで「省略時はtrue」を表現します。
type TeamReq struct {
	Slug        string `json:"slug" binding:"required,max=200"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=3000"`
	Color       string `json:"color" binding:"required,max=64"`
	Icon        string `json:"icon" binding:"required,max=128"`
	IsActive    *bool  `json:"isActive"`
}

// MemberReq は管理者のメンバー作成・更新リクエストボディを表します。
type MemberReq struct {
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"required,max=100"`
	Role      string `json:"role" binding:"required,max=200"`
	LinkedIn  string `json:"linkedin" binding:"omitempty,url,max=512"`
	Image     string `json:"image" binding:"omitempty,url,max=512"`
	Order     int    `json:"order"`
	IsActive  *bool  `json:"isActive"`
}
