package actions

import (
	"time"

	"dartserver/live/broadcast"
	"dartserver/models"
	"dartserver/rooms"

	"go.uber.org/zap"
)

// Helper function to send error message to the client via WebSocket
func sendErrorMessage(client *models.Client, errorMessage string) {
	_ = client.SendJSON(map[string]string{"error": errorMessage})
}

// msgからミリ秒指定のdurationを取り出す。無ければフォールバック値。
func durationFromMsg(msg map[string]interface{}, key string, fallback time.Duration) time.Duration {
	ms, ok := msg[key].(float64)
	if !ok || ms < 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

// コマンド実行後の共通処理。状態を配り、ズーム遷移があればフレーム配信を起こす。
func broadcastAfterCommand(room *rooms.Room, logger *zap.Logger) {
	broadcast.BroadcastBoardState(room, logger)
	broadcast.EnsureFrameBroadcast(room, logger)
}

// Dispatch はメッセージタイプに基づいて適切なアクションを実行します。
// 未知のタイプはログに残すだけ。
func Dispatch(client *models.Client, msg map[string]interface{}, room *rooms.Room, logger *zap.Logger) {
	switch msg["type"] {
	case "throwDart":
		handleThrowDart(client, msg, room, logger)
	case "showMarkers":
		handleShowMarkers(client, msg, room, logger)
	case "clearMarkers":
		handleClearMarkers(client, room, logger)
	case "zoomBoard":
		handleZoomBoard(client, msg, room, logger)
	case "zoomToBull":
		handleZoomToBull(msg, room, logger)
	case "resetZoom":
		handleResetZoom(msg, room, logger)
	case "resizeBoard":
		handleResizeBoard(client, msg, room, logger)
	case "deciderStart":
		handleDeciderStart(client, msg, room, logger)
	case "deciderSetCurrent":
		handleDeciderSetCurrent(client, msg, room, logger)
	case "deciderAddMarker":
		handleDeciderAddMarker(client, msg, room, logger)
	case "deciderTogglePause":
		handleDeciderTogglePause(room, logger)
	case "deciderEnd", "deciderCancel":
		handleDeciderEnd(room, logger)
	case "chatMessage":
		handleChatMessage(client, msg, room, logger)
	default:
		logger.Info("Received unknown message type", zap.Any("message", msg))
	}
}
