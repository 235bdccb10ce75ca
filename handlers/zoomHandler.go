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

func afterZoomCommand(c *gin.Context, room *rooms.Room, logger *zap.Logger) {
	broadcast.BroadcastBoardState(room, logger)
	broadcast.EnsureFrameBroadcast(room, logger)
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// ZoomBoard は任意の正規化中心とスケールへのズームを開始します。
func ZoomBoard(c *gin.Context, hub *rooms.Hub, logger *zap.Logger) {
	room, ok := roomFromParam(c, hub)
	if !ok {
		return
	}
	var request models.ZoomRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room.WithBoard(func(b *board.Board) {
		b.ZoomTo(request.CenterX, request.CenterY, request.Scale, time.Duration(request.DurationMs)*time.Millisecond, time.Now())
	})
	afterZoomCommand(c, room, logger)
}

// ZoomToBull は中心(0.5,0.5)へのズームの短縮形です。
func ZoomToBull(c *gin.Context, hub *rooms.Hub, logger *zap.Logger) {
	room, ok := roomFromParam(c, hub)
	if !ok {
		return
	}
	var request models.ZoomBullRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Scale <= 0 {
		request.Scale = 3
	}
	room.WithBoard(func(b *board.Board) {
		b.ZoomToBull(request.Scale, time.Duration(request.DurationMs)*time.Millisecond, time.Now())
	})
	afterZoomCommand(c, room, logger)
}

// ResetZoom は等倍表示へ戻します。
func ResetZoom(c *gin.Context, hub *rooms.Hub, logger *zap.Logger) {
	room, ok := roomFromParam(c, hub)
	if !ok {
		return
	}
	var request models.ZoomResetRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room.WithBoard(func(b *board.Board) {
		b.ResetZoom(time.Duration(request.DurationMs)*time.Millisecond, time.Now())
	})
	afterZoomCommand(c, room, logger)
}

// ResizeBoard は描画面サイズの変更を反映します。ジオメトリは次の描画で再計算される。
func ResizeBoard(c *gin.Context, hub *rooms.Hub, logger *zap.Logger) {
	room, ok := roomFromParam(c, hub)
	if !ok {
		return
	}
	var request models.ResizeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Width < 0 || request.Height < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "盤面サイズが不正です"})
		return
	}
	room.WithBoard(func(b *board.Board) {
		b.Resize(request.Width, request.Height)
	})
	broadcast.BroadcastBoardState(room, logger)
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
