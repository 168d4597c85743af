// Package dto はadminフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// AdminLoginReq は/api/admin/loginエンドポイントのリクエストボディを表します。
type AdminLoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
