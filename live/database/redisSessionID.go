package database

import (
	"context"
	"encoding/json"
	"time"

	"dartserver/models"

	"go.uber.org/zap"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ValidateSessionID checks the session ID from Redis and returns the client if the session is valid.
func ValidateSessionID(ctx context.Context, rdb *redis.Client, sessionID string, logger *zap.Logger) *models.Client {
	if rdb == nil || sessionID == "" {
		return nil
	}

	sessionInfoJSON, err := rdb.Get(ctx, "session:"+sessionID).Result()
	if err != nil {
		logger.Error("Failed to retrieve session info", zap.Error(err))
		return nil
	}

	var sessionInfo map[string]interface{}
	if err := json.Unmarshal([]byte(sessionInfoJSON), &sessionInfo); err != nil {
		logger.Error("Failed to decode session info", zap.Error(err))
		return nil
	}

	userID, ok := sessionInfo["userID"].(float64) // JSONの数値はfloat64としてデコードされます
	if !ok {
		logger.Error("Invalid session info: missing userID")
		return nil
	}
	roomID, ok := sessionInfo["roomID"].(float64)
	if !ok {
		logger.Error("Invalid session info: missing roomID")
		return nil
	}
	nickName, _ := sessionInfo["nickName"].(string)

	// 有効なセッション情報を基にClientオブジェクトを作成
	return &models.Client{
		UserID:   uint(userID),
		RoomID:   uint(roomID),
		NickName: nickName,
	}
}

// DeleteSessionID は復元済みの旧セッションを破棄します。
func DeleteSessionID(ctx context.Context, rdb *redis.Client, sessionID string) {
	if rdb == nil || sessionID == "" {
		return
	}
	rdb.Del(ctx, "session:"+sessionID)
}

// GenerateAndStoreSessionID は新しいセッションIDを発行してRedisに保存し、
// クライアントへ送り返します。Redisが無効な環境ではセッション復元なしで続行する。
func GenerateAndStoreSessionID(ctx context.Context, client *models.Client, rdb *redis.Client, logger *zap.Logger) error {
	if rdb == nil {
		return nil
	}
	sessionID := uuid.New().String()

	sessionInfo := map[string]interface{}{
		"userID":   client.UserID,
		"roomID":   client.RoomID,
		"nickName": client.NickName,
	}
	sessionInfoJSON, err := json.Marshal(sessionInfo)
	if err != nil {
		logger.Error("Error encoding session info", zap.Error(err))
		return err
	}

	// 24時間の有効期限
	if err := rdb.Set(ctx, "session:"+sessionID, sessionInfoJSON, 24*time.Hour).Err(); err != nil {
		logger.Error("Error storing session info in Redis", zap.Error(err))
		return err
	}

	return sendSessionIDToClient(client, sessionID, logger)
}

func sendSessionIDToClient(client *models.Client, sessionID string, logger *zap.Logger) error {
	response := map[string]interface{}{
		"type":      "session",
		"sessionID": sessionID,
		"userID":    client.UserID,
	}
	if err := client.SendJSON(response); err != nil {
		if err == models.ErrNoConnection {
			logger.Warn("WebSocket connection is not established, cannot send session ID")
			return nil
		}
		logger.Error("Error sending session ID to client", zap.Error(err))
		return err
	}
	logger.Info("Successfully sent session ID to client", zap.String("sessionID", sessionID))
	return nil
}
