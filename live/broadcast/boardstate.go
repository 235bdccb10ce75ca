package broadcast

import (
	"dartserver/board"
	"dartserver/models"
	"dartserver/rooms"

	"go.uber.org/zap"
)

// buildBoardState は盤面スナップショットをメッセージに組み立てます。
// 必ずルームのロックの中（WithBoard）から呼ぶこと。
func buildBoardState(b *board.Board) map[string]interface{} {
	width, height := b.Size()
	view := b.View()

	markers := make([]map[string]interface{}, 0, len(b.Markers()))
	for _, m := range b.Markers() {
		markers = append(markers, markerInfo(m))
	}
	deciderMarkers := make([]map[string]interface{}, 0, len(b.DeciderMarkers()))
	for _, m := range b.DeciderMarkers() {
		deciderMarkers = append(deciderMarkers, markerInfo(m))
	}

	decider := b.Decider()
	return map[string]interface{}{
		"type":   "boardState",
		"width":  width,
		"height": height,
		"view": map[string]interface{}{
			"scale":     view.Scale,
			"centerX":   view.CenterX,
			"centerY":   view.CenterY,
			"animating": b.Animating(),
		},
		"markers":        markers,
		"deciderMarkers": deciderMarkers,
		"decider": map[string]interface{}{
			"active":       decider.Active,
			"participants": decider.Participants,
			"currentIndex": decider.CurrentIndex,
			"paused":       decider.Paused,
		},
	}
}

func markerInfo(m board.Marker) map[string]interface{} {
	return map[string]interface{}{
		"hit":       models.NewHitMessage(m.Hit),
		"createdAt": m.CreatedAt.UnixMilli(),
	}
}

// BroadcastBoardState はルーム内の全クライアントへ現在の盤面状態を送ります。
func BroadcastBoardState(room *rooms.Room, logger *zap.Logger) {
	var state map[string]interface{}
	room.WithBoard(func(b *board.Board) {
		state = buildBoardState(b)
	})
	for _, client := range room.Clients() {
		if err := client.SendJSON(state); err != nil {
			logger.Error("Failed to broadcast board state", zap.Uint("to", client.UserID), zap.Error(err))
		}
	}
}

// SendBoardState は1クライアントにだけ盤面状態を送ります（接続直後の初期化用）。
func SendBoardState(room *rooms.Room, client *models.Client, logger *zap.Logger) {
	var state map[string]interface{}
	room.WithBoard(func(b *board.Board) {
		state = buildBoardState(b)
	})
	if err := client.SendJSON(state); err != nil {
		logger.Error("Failed to send board state", zap.Uint("to", client.UserID), zap.Error(err))
	}
}

// BroadcastDartHit はヒットイベントをルーム内へ中継します。
// 盤面ロックの内側（ヒットリスナー）から呼ばれるため、盤面には触らない。
func BroadcastDartHit(room *rooms.Room, hit board.Hit, logger *zap.Logger) {
	message := map[string]interface{}{
		"type": "dartHit",
		"hit":  models.NewHitMessage(hit),
	}
	for _, client := range room.Clients() {
		if err := client.SendJSON(message); err != nil {
			logger.Error("Failed to broadcast dart hit", zap.Uint("to", client.UserID), zap.Error(err))
		}
	}
}

// AttachHitRelay は盤面のヒットリスナーをルームのブロードキャストへ接続します。
// 何度呼んでも同じ配線になるだけなので、接続やルーム作成のたびに呼んでよい。
func AttachHitRelay(room *rooms.Room, logger *zap.Logger) {
	room.WithBoard(func(b *board.Board) {
		b.SetHitListener(func(hit board.Hit) {
			BroadcastDartHit(room, hit, logger)
		})
	})
}

// EnsureFrameBroadcast はズーム遷移中、フレームごとに盤面状態を配信する
// ループを起動します。遷移が無ければ何もしない。
func EnsureFrameBroadcast(room *rooms.Room, logger *zap.Logger) {
	room.StartFrameLoop(func() {
		BroadcastBoardState(room, logger)
	})
}

// NotifyOnlineStatus はクライアントの入退室をルーム内の他クライアントへ通知します。
func NotifyOnlineStatus(room *rooms.Room, userID uint, nickName string, isOnline bool, logger *zap.Logger) {
	message := map[string]interface{}{
		"type":     "onlineStatus",
		"userID":   userID,
		"nickName": nickName,
		"isOnline": isOnline,
	}
	for _, client := range room.Clients() {
		if client.UserID == userID {
			continue
		}
		if err := client.SendJSON(message); err != nil {
			logger.Error("Failed to send online status message", zap.Error(err))
		}
	}
}
