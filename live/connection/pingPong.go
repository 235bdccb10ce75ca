package connection

import (
	"time"

	"dartserver/live/broadcast"
	"dartserver/models"
	"dartserver/rooms"

	"go.uber.org/zap"

	"github.com/gorilla/websocket"
)

const (
	pingPeriod   = 10 * time.Second
	readDeadline = 60 * time.Second
)

// MaintainWebSocketConnection はクライアントのWebSocket接続を維持し、
// Ping/Pongメッセージで接続をチェックします。
func MaintainWebSocketConnection(c *models.Client, room *rooms.Room, logger *zap.Logger) {
	defer func() {
		c.Conn.Close()
		room.RemoveClient(c)
		logger.Info("Client removed", zap.Uint("UserID", c.UserID))
	}()

	// Pongハンドラの設定: Pongを受信したら読み取りデッドラインを更新し、
	// オンラインであることをルームへ通知する
	c.Conn.SetReadDeadline(time.Now().Add(readDeadline))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(readDeadline))
		broadcast.NotifyOnlineStatus(room, c.UserID, c.NickName, true, logger)
		return nil
	})

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		if err := c.SendControl(websocket.PingMessage, nil); err != nil {
			logger.Error("Error sending ping or connection is closed", zap.Error(err))
			return
		}
	}
}
