// Package dto はeventsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "time"

// EventReq は管理者のイベント作成・更新エンドポイントのリクエストボディを表します。
// 登録者数カウンタは台帳が所有するため、入力には含まれません。
type EventReq struct {
	Slug        string    `json:"slug" binding:"required,max=200"`
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description" binding:"required,max=2000"`
	Date        time.Time `json:"date" binding:"required"`
	Time        string    `json:"time" binding:"required,max=32"`
	Mode        string    `json:"mode" binding:"required,oneof=Online Offline Hybrid"`
	Location    string    `json:"location" binding:"required,max=255"`
	Image       string    `json:"image" binding:"required,url"`
}
