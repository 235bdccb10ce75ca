package connection

import (
	"encoding/json"

	"dartserver/live/actions"
	"dartserver/live/broadcast"
	"dartserver/models"
	"dartserver/rooms"

	"go.uber.org/zap"

	"github.com/gorilla/websocket"
)

// HandleClient はクライアントごとのメッセージ読み取りゴルーチンです。
func HandleClient(client *models.Client, room *rooms.Room, logger *zap.Logger) {
	defer func() {
		client.Conn.Close()
		room.RemoveClient(client)
		broadcast.NotifyOnlineStatus(room, client.UserID, client.NickName, false, logger)
	}()

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("WebSocket error", zap.Error(err))
			}
			break // エラーが発生したらループを抜ける
		}

		// 受信したメッセージをJSON形式でデコード
		var msg map[string]interface{}
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.Error("Error decoding message", zap.Error(err))
			continue
		}

		actions.Dispatch(client, msg, room, logger)
	}
}
