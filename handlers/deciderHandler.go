package handlers

import (
	"net/http"
	"time"

	"dartserver/board"
	"dartserver/live/broadcast"
	"dartserver/models"
	"dartserver/rooms"

	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

func afterDeciderCommand(c *gin.Context, room *rooms.Room, logger *zap.Logger) {
	broadcast.BroadcastBoardState(room, logger)
	broadcast.EnsureFrameBroadcast(room, logger)
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// DeciderStart は先攻決めセッションを開始します。ブルへのズームが要求される。
func DeciderStart(c *gin.Context, hub *rooms.Hub, logger *zap.Logger) {
	room, ok := roomFromParam(c, hub)
	if !ok {
		return
	}
	var request models.DeciderStartRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Decider start request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(request.Participants) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参加者が指定されていません"})
		return
	}
	room.WithBoard(func(b *board.Board) {
		b.DeciderStart(request.Participants, time.Now())
	})
	logger.Info("Decider session started", zap.Uint("RoomID", room.ID), zap.Int("participants", len(request.Participants)))
	afterDeciderCommand(c, room, logger)
}

// DeciderSetCurrent は手番表示を更新します。添字は参加者数にクランプされる。
func DeciderSetCurrent(c *gin.Context, hub *rooms.Hub, logger *zap.Logger) {
	room, ok := roomFromParam(c, hub)
	if !ok {
		return
	}
	var request models.DeciderCurrentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room.WithBoard(func(b *board.Board) {
		b.DeciderSetCurrent(request.Index)
	})
	broadcast.BroadcastBoardState(room, logger)
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// DeciderAddMarker は正規化座標でディサイダーレイヤーにマーカーを置きます。
func DeciderAddMarker(c *gin.Context, hub *rooms.Hub, logger *zap.Logger) {
	room, ok := roomFromParam(c, hub)
	if !ok {
		return
	}
	var request models.DeciderMarkerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room.WithBoard(func(b *board.Board) {
		b.DeciderAddMarker(request.X, request.Y, time.Now())
	})
	broadcast.BroadcastBoardState(room, logger)
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// DeciderTogglePause は一時停止を切り替えます。停止で等倍、再開でブルへ再ズーム。
func DeciderTogglePause(c *gin.Context, hub *rooms.Hub, logger *zap.Logger) {
	room, ok := roomFromParam(c, hub)
	if !ok {
		return
	}
	room.WithBoard(func(b *board.Board) {
		b.DeciderTogglePause(time.Now())
	})
	afterDeciderCommand(c, room, logger)
}

// DeciderEnd はセッションを終了します。キャンセルも同一動作で、
// 互換のため2つのルートから呼ばれる。
func DeciderEnd(c *gin.Context, hub *rooms.Hub, logger *zap.Logger) {
	room, ok := roomFromParam(c, hub)
	if !ok {
		return
	}
	room.WithBoard(func(b *board.Board) {
		b.DeciderEnd(time.Now())
	})
	logger.Info("Decider session ended", zap.Uint("RoomID", room.ID))
	afterDeciderCommand(c, room, logger)
}
