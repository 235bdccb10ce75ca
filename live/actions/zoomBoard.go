package actions

import (
	"time"

	"dartserver/board"
	"dartserver/models"
	"dartserver/rooms"

	"go.uber.org/zap"
)

const defaultZoomDuration = 600 * time.Millisecond

// handleZoomBoard は任意の中心とスケールへのズームを開始します。
func handleZoomBoard(client *models.Client, msg map[string]interface{}, room *rooms.Room, logger *zap.Logger) {
	centerX, okX := msg["centerX"].(float64)
	centerY, okY := msg["centerY"].(float64)
	scale, okS := msg["scale"].(float64)
	if !okX || !okY || !okS {
		sendErrorMessage(client, "Invalid zoom parameters")
		logger.Error("Invalid zoom parameters", zap.Any("msg", msg))
		return
	}
	duration := durationFromMsg(msg, "durationMs", defaultZoomDuration)

	room.WithBoard(func(b *board.Board) {
		b.ZoomTo(centerX, centerY, scale, duration, time.Now())
	})
	logger.Info("Zoom started", zap.Uint("RoomID", room.ID), zap.Float64("scale", scale))
	broadcastAfterCommand(room, logger)
}

// handleZoomToBull は中心(0.5,0.5)への短縮形
func handleZoomToBull(msg map[string]interface{}, room *rooms.Room, logger *zap.Logger) {
	scale, ok := msg["scale"].(float64)
	if !ok {
		scale = 3
	}
	duration := durationFromMsg(msg, "durationMs", defaultZoomDuration)
	room.WithBoard(func(b *board.Board) {
		b.ZoomToBull(scale, duration, time.Now())
	})
	broadcastAfterCommand(room, logger)
}

// handleResetZoom は等倍へ戻します。
func handleResetZoom(msg map[string]interface{}, room *rooms.Room, logger *zap.Logger) {
	duration := durationFromMsg(msg, "durationMs", defaultZoomDuration)
	room.WithBoard(func(b *board.Board) {
		b.ResetZoom(duration, time.Now())
	})
	broadcastAfterCommand(room, logger)
}

// handleResizeBoard は描画面サイズの変更を反映します。
func handleResizeBoard(client *models.Client, msg map[string]interface{}, room *rooms.Room, logger *zap.Logger) {
	wFloat, okW := msg["width"].(float64)
	hFloat, okH := msg["height"].(float64)
	if !okW || !okH || wFloat < 0 || hFloat < 0 {
		sendErrorMessage(client, "Invalid board size")
		logger.Error("Invalid board size", zap.Any("msg", msg))
		return
	}
	room.WithBoard(func(b *board.Board) {
		b.Resize(int(wFloat), int(hFloat))
	})
	broadcastAfterCommand(room, logger)
}
