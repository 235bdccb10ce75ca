package handlers

import (
	"bytes"
	"image/png"
	"net/http"
	"time"

	"dartserver/board"
	"dartserver/rooms"

	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

// RenderFrame は現在のマーカーとズーム状態で盤面を1フレーム描画してPNGで返します。
// 再描画トリガーとして何度呼んでも安全。
func RenderFrame(c *gin.Context, hub *rooms.Hub, logger *zap.Logger) {
	room, ok := roomFromParam(c, hub)
	if !ok {
		return
	}

	var frame *bytes.Buffer
	var encodeErr error
	room.WithBoard(func(b *board.Board) {
		img := b.Render(time.Now())
		if img == nil {
			return
		}
		frame = &bytes.Buffer{}
		encodeErr = png.Encode(frame, img)
	})

	if frame == nil {
		// 描画面が無い（サイズゼロ）場合は失敗ではなく空応答
		c.Status(http.StatusNoContent)
		return
	}
	if encodeErr != nil {
		logger.Error("Failed to encode board frame", zap.Uint("RoomID", room.ID), zap.Error(encodeErr))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "フレームの生成に失敗しました"})
		return
	}
	c.Data(http.StatusOK, "image/png", frame.Bytes())
}

// RoomState は盤面状態のJSONスナップショットを返します。
func RoomState(c *gin.Context, hub *rooms.Hub, logger *zap.Logger) {
	room, ok := roomFromParam(c, hub)
	if !ok {
		return
	}

	var state gin.H
	room.WithBoard(func(b *board.Board) {
		b.Tick(time.Now())
		width, height := b.Size()
		view := b.View()
		decider := b.Decider()
		state = gin.H{
			"roomID": room.ID,
			"width":  width,
			"height": height,
			"view": gin.H{
				"scale":     view.Scale,
				"centerX":   view.CenterX,
				"centerY":   view.CenterY,
				"animating": b.Animating(),
			},
			"markerCount":        len(b.Markers()),
			"deciderMarkerCount": len(b.DeciderMarkers()),
			"decider": gin.H{
				"active":       decider.Active,
				"participants": decider.Participants,
				"currentIndex": decider.CurrentIndex,
				"paused":       decider.Paused,
			},
		}
	})
	c.JSON(http.StatusOK, state)
}
