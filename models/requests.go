package models

import "dartserver/board"

// ルーム作成リクエスト
type RoomCreateRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ポインタ入力（1投分）のリクエスト。座標は画面ピクセル。
type ThrowRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// 任意の中心とスケールへのズーム
type ZoomRequest struct {
	CenterX    float64 `json:"centerX"`
	CenterY    float64 `json:"centerY"`
	Scale      float64 `json:"scale"`
	DurationMs int     `json:"durationMs"`
}

// ブルへのズーム（中心0.5,0.5の短縮形）
type ZoomBullRequest struct {
	Scale      float64 `json:"scale"`
	DurationMs int     `json:"durationMs"`
}

// 等倍へ戻す
type ZoomResetRequest struct {
	DurationMs int `json:"durationMs"`
}

// 描画面サイズの変更
type ResizeRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// 通常レイヤーの置き換え
type ShowMarkersRequest struct {
	Hits []HitMessage `json:"hits"`
}

// ディサイダー開始。参加者の並びが手番の表示順になる。
type DeciderStartRequest struct {
	Participants []board.Participant `json:"participants"`
}

type DeciderCurrentRequest struct {
	Index int `json:"index"`
}

type DeciderMarkerRequest struct {
	X float64 `json:"x"` // 正規化座標[0,1]
	Y float64 `json:"y"`
}
