package handlers

import (
	"net/http"
	"strconv"

	"dartserver/live/broadcast"
	"dartserver/models"
	"dartserver/rooms"

	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

// roomFromParam はURLパラメータからルームを引きます。見つからなければ404を返す。
func roomFromParam(c *gin.Context, hub *rooms.Hub) (*rooms.Room, bool) {
	idUint, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ルームIDが不正です"})
		return nil, false
	}
	room, ok := hub.Get(uint(idUint))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "ルームが見つかりません"})
		return nil, false
	}
	return room, true
}

// RoomCreate は新しい盤面つきルームを作ります。
func RoomCreate(c *gin.Context, hub *rooms.Hub, defaultBoardSize int, logger *zap.Logger) {
	var request models.RoomCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Room create request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Width <= 0 {
		request.Width = defaultBoardSize
	}
	if request.Height <= 0 {
		request.Height = defaultBoardSize
	}

	room := hub.Create(request.Width, request.Height)
	broadcast.AttachHitRelay(room, logger)

	c.JSON(http.StatusOK, gin.H{
		"roomID": room.ID,
		"width":  request.Width,
		"height": request.Height,
	})
}

// RoomDelete はルームを破棄します。
func RoomDelete(c *gin.Context, hub *rooms.Hub, logger *zap.Logger) {
	room, ok := roomFromParam(c, hub)
	if !ok {
		return
	}
	hub.Delete(room.ID)
	logger.Info("Room deleted", zap.Uint("RoomID", room.ID))
	c.JSON(http.StatusOK, gin.H{"message": "ルームを削除しました"})
}
