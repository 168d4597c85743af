// Package dto はprofileフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// ProfileReq は/api/profileエンドポイントのリクエストボディを表します。
// 細かいフィールド検証はユースケース側でfield->messageマップとして行うため、
// ここでは必須チェックのみ行います。
type ProfileReq struct {
	FullName     string `json:"fullName" binding:"required"`
	ProfileImage string `json:"profileImage"`
	PRNNumber    string `json:"prnNumber" binding:"required"`
	Class        string `json:"class" binding:"required"`
	Division     string `json:"division" binding:"required"`
	Bio          string `json:"bio"`
}
