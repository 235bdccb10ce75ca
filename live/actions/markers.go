package actions

import (
	"encoding/json"
	"time"

	"dartserver/board"
	"dartserver/models"
	"dartserver/rooms"

	"go.uber.org/zap"
)

// handleShowMarkers は通常レイヤーを受信内容で置き換えます。
func handleShowMarkers(client *models.Client, msg map[string]interface{}, room *rooms.Room, logger *zap.Logger) {
	// mapで受けたhitsを一度JSONに戻してからワイヤ形式にデコードする
	raw, err := json.Marshal(msg["hits"])
	if err != nil {
		sendErrorMessage(client, "Invalid markers payload")
		return
	}
	var hitMessages []models.HitMessage
	if err := json.Unmarshal(raw, &hitMessages); err != nil {
		sendErrorMessage(client, "Invalid markers payload")
		logger.Error("Error decoding markers payload", zap.Error(err))
		return
	}

	hits := make([]board.Hit, 0, len(hitMessages))
	for _, m := range hitMessages {
		hits = append(hits, m.ToHit())
	}

	room.WithBoard(func(b *board.Board) {
		b.ShowMarkers(hits, board.ColorMarkerPrimary, time.Now())
	})
	logger.Info("Markers replaced", zap.Uint("RoomID", room.ID), zap.Int("count", len(hits)))
	broadcastAfterCommand(room, logger)
}

// handleClearMarkers は通常レイヤーを空にします。
func handleClearMarkers(client *models.Client, room *rooms.Room, logger *zap.Logger) {
	room.WithBoard(func(b *board.Board) {
		b.ClearMarkers()
	})
	logger.Info("Markers cleared", zap.Uint("RoomID", room.ID), zap.Uint("UserID", client.UserID))
	broadcastAfterCommand(room, logger)
}
