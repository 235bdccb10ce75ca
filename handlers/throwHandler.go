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

// RegisterThrow はポインタ入力1件を盤面へ流し、結果を返します。
// ミスリングの外のクリックはヒット無しとして扱い、イベントもマーカーも出ない。
func RegisterThrow(c *gin.Context, hub *rooms.Hub, logger *zap.Logger) {
	room, ok := roomFromParam(c, hub)
	if !ok {
		return
	}
	var request models.ThrowRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Throw request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var hit board.Hit
	var scored bool
	room.WithBoard(func(b *board.Board) {
		hit, scored = b.HandlePointerDown(request.X, request.Y, time.Now())
	})

	broadcast.BroadcastBoardState(room, logger)
	broadcast.EnsureFrameBroadcast(room, logger)

	if !scored {
		c.JSON(http.StatusOK, gin.H{"hit": nil})
		return
	}
	logger.Info("Dart hit registered", zap.Uint("RoomID", room.ID), zap.String("label", hit.Label))
	c.JSON(http.StatusOK, gin.H{"hit": models.NewHitMessage(hit)})
}
