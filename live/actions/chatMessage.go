package actions

import (
	"time"

	"dartserver/models"
	"dartserver/rooms"

	"go.uber.org/zap"
)

// チャットメッセージを処理する関数
func handleChatMessage(client *models.Client, msg map[string]interface{}, room *rooms.Room, logger *zap.Logger) {
	chatMessage, ok := msg["message"].(string)
	if !ok || chatMessage == "" {
		sendErrorMessage(client, "Invalid chat message")
		return
	}

	timestamp := time.Now().Format(time.RFC3339)
	logger.Info("Received chat message",
		zap.String("message", chatMessage),
		zap.Uint("from", client.UserID),
		zap.String("timestamp", timestamp),
	)

	// ルーム内の全クライアントにメッセージをブロードキャストする
	message := map[string]interface{}{
		"type":      "chatMessage",
		"message":   chatMessage,
		"from":      client.UserID,
		"nickName":  client.NickName,
		"timestamp": timestamp,
	}
	for _, c := range room.Clients() {
		if err := c.SendJSON(message); err != nil {
			logger.Error("Failed to send chat message", zap.Uint("to", c.UserID), zap.Error(err))
		}
	}
}
