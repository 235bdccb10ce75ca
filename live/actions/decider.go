package actions

import (
	"encoding/json"
	"time"

	"dartserver/board"
	"dartserver/models"
	"dartserver/rooms"

	"go.uber.org/zap"
)

// handleDeciderStart は先攻決めセッションを開始します。
// 手番順の決定は外部コラボレーター（クライアント側のゲームエンジン）の責務で、
// ここでは参加者リストの表示とブルへのズームを引き受けるだけ。
func handleDeciderStart(client *models.Client, msg map[string]interface{}, room *rooms.Room, logger *zap.Logger) {
	raw, err := json.Marshal(msg["participants"])
	if err != nil {
		sendErrorMessage(client, "Invalid participants payload")
		return
	}
	var participants []board.Participant
	if err := json.Unmarshal(raw, &participants); err != nil || len(participants) == 0 {
		sendErrorMessage(client, "Invalid participants payload")
		logger.Error("Error decoding participants", zap.Error(err))
		return
	}

	room.WithBoard(func(b *board.Board) {
		b.DeciderStart(participants, time.Now())
	})
	logger.Info("Decider session started", zap.Uint("RoomID", room.ID), zap.Int("participants", len(participants)))
	broadcastAfterCommand(room, logger)
}

func handleDeciderSetCurrent(client *models.Client, msg map[string]interface{}, room *rooms.Room, logger *zap.Logger) {
	index, ok := msg["index"].(float64)
	if !ok {
		sendErrorMessage(client, "Invalid index")
		return
	}
	room.WithBoard(func(b *board.Board) {
		b.DeciderSetCurrent(int(index))
	})
	broadcastAfterCommand(room, logger)
}

func handleDeciderAddMarker(client *models.Client, msg map[string]interface{}, room *rooms.Room, logger *zap.Logger) {
	x, okX := msg["x"].(float64)
	y, okY := msg["y"].(float64)
	if !okX || !okY {
		sendErrorMessage(client, "Invalid marker coordinates")
		return
	}
	room.WithBoard(func(b *board.Board) {
		b.DeciderAddMarker(x, y, time.Now())
	})
	broadcastAfterCommand(room, logger)
}

func handleDeciderTogglePause(room *rooms.Room, logger *zap.Logger) {
	room.WithBoard(func(b *board.Board) {
		b.DeciderTogglePause(time.Now())
	})
	broadcastAfterCommand(room, logger)
}

// 終了とキャンセルは同一のセマンティクス
func handleDeciderEnd(room *rooms.Room, logger *zap.Logger) {
	room.WithBoard(func(b *board.Board) {
		b.DeciderEnd(time.Now())
	})
	logger.Info("Decider session ended", zap.Uint("RoomID", room.ID))
	broadcastAfterCommand(room, logger)
}
