package actions

import (
	"time"

	"dartserver/board"
	"dartserver/models"
	"dartserver/rooms"

	"go.uber.org/zap"
)

// handleThrowDart はポインタ入力1件を盤面へ流します。
// ヒットの中継は盤面のリスナー経由（broadcast.AttachHitRelay）で行われるので、
// ここでは判定と、その後の状態配信だけを受け持つ。
func handleThrowDart(client *models.Client, msg map[string]interface{}, room *rooms.Room, logger *zap.Logger) {
	xFloat, okX := msg["x"].(float64)
	yFloat, okY := msg["y"].(float64)
	if !okX || !okY {
		sendErrorMessage(client, "Invalid pointer coordinates")
		logger.Error("Invalid pointer coordinates - type assertion failed", zap.Any("x", msg["x"]), zap.Any("y", msg["y"]))
		return
	}

	var hit board.Hit
	var ok bool
	room.WithBoard(func(b *board.Board) {
		hit, ok = b.HandlePointerDown(xFloat, yFloat, time.Now())
	})

	if !ok {
		// ミスリングの外か、オーバーレイのボタン操作。どちらもイベント無し。
		logger.Info("Pointer down without hit", zap.Uint("UserID", client.UserID), zap.Uint("RoomID", room.ID))
	} else {
		logger.Info("Dart hit registered",
			zap.Uint("UserID", client.UserID),
			zap.Uint("RoomID", room.ID),
			zap.String("label", hit.Label),
		)
	}

	broadcastAfterCommand(room, logger)
}
