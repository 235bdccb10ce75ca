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

// ShowMarkers は通常レイヤーを受信内容で丸ごと置き換えます。
func ShowMarkers(c *gin.Context, hub *rooms.Hub, logger *zap.Logger) {
	room, ok := roomFromParam(c, hub)
	if !ok {
		return
	}
	var request models.ShowMarkersRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Show markers request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hits := make([]board.Hit, 0, len(request.Hits))
	for _, m := range request.Hits {
		hits = append(hits, m.ToHit())
	}
	room.WithBoard(func(b *board.Board) {
		b.ShowMarkers(hits, board.ColorMarkerPrimary, time.Now())
	})
	broadcast.BroadcastBoardState(room, logger)
	c.JSON(http.StatusOK, gin.H{"count": len(hits)})
}

// ClearMarkers は通常レイヤーを空にします。
func ClearMarkers(c *gin.Context, hub *rooms.Hub, logger *zap.Logger) {
	room, ok := roomFromParam(c, hub)
	if !ok {
		return
	}
	room.WithBoard(func(b *board.Board) {
		b.ClearMarkers()
	})
	broadcast.BroadcastBoardState(room, logger)
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
