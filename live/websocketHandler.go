package live

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"dartserver/live/broadcast"
	"dartserver/live/connection"
	"dartserver/live/database"
	"dartserver/models"
	"dartserver/rooms"

	"go.uber.org/zap"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
)

// HandleConnections はWebSocket接続へのアップグレードを行い、クライアントを
// ルームへ参加させます。roomクエリパラメータでルームを指定し、存在しなければ
// 盤面つきで暗黙に作られる。sessionパラメータがあればRedisから前回の
// 参加情報を復元する。
func HandleConnections(ctx context.Context, w http.ResponseWriter, r *http.Request, rdb *redis.Client, logger *zap.Logger, hub *rooms.Hub, upgrader websocket.Upgrader, defaultBoardSize int) {
	roomIDStr := r.URL.Query().Get("room")
	roomIDUint, err := strconv.ParseUint(roomIDStr, 10, 32)
	if err != nil || roomIDUint == 0 {
		logger.Error("Invalid roomID format", zap.String("room", roomIDStr), zap.Error(err))
		http.Error(w, "Invalid roomID format", http.StatusBadRequest)
		return
	}
	roomID := uint(roomIDUint)

	nickName := strings.TrimSpace(r.URL.Query().Get("name"))
	if nickName == "" {
		nickName = "Player"
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// WebSocket接続のアップグレードに失敗
		logger.Error("Error upgrading WebSocket", zap.Error(err))
		return
	}

	randGen := CreateLocalRandGenerator()
	client := &models.Client{
		Conn:     conn,
		UserID:   uint(randGen.Uint32()),
		RoomID:   roomID,
		NickName: nickName,
	}

	// セッションIDの検証と復元
	sessionID := r.URL.Query().Get("session")
	if sessionID != "" {
		if restored := database.ValidateSessionID(ctx, rdb, sessionID, logger); restored != nil {
			// セッション情報に基づいてクライアント情報を復元
			client.UserID = restored.UserID
			client.RoomID = restored.RoomID
			if restored.NickName != "" {
				client.NickName = restored.NickName
			}
			roomID = restored.RoomID
			// 旧セッションの削除（新しいIDは接続確立後に発行される）
			database.DeleteSessionID(ctx, rdb, sessionID)
			logger.Info("Session restored", zap.Uint("UserID", client.UserID), zap.Uint("RoomID", roomID))
		}
	}

	room := hub.GetOrCreate(roomID, defaultBoardSize, defaultBoardSize)
	broadcast.AttachHitRelay(room, logger)
	room.AddClient(client)
	logger.Info("New client added", zap.Uint("UserID", client.UserID), zap.Uint("RoomID", roomID), zap.String("NickName", client.NickName))

	// WebSocketのCloseHandlerを設定
	client.Conn.SetCloseHandler(func(code int, text string) error {
		logger.Info("WebSocket closed", zap.Int("code", code), zap.String("reason", text))
		client.Conn.Close()
		room.RemoveClient(client)
		return nil
	})

	// クライアントごとにメッセージ読み取りゴルーチンを起動
	go connection.HandleClient(client, room, logger)

	// Ping/Pongを管理するゴルーチンを起動
	go connection.MaintainWebSocketConnection(client, room, logger)

	// 新しいセッションIDを発行してクライアントへ返す
	if err := database.GenerateAndStoreSessionID(ctx, client, rdb, logger); err != nil {
		logger.Error("Failed to generate or store session ID", zap.Error(err))
	}

	// 参加直後に現在の盤面状態を送る
	broadcast.SendBoardState(room, client, logger)
	broadcast.NotifyOnlineStatus(room, client.UserID, client.NickName, true, logger)
}
