package actions

import (
	"testing"
	"time"

	"dartserver/board"
	"dartserver/models"
	"dartserver/rooms"

	"go.uber.org/zap"
)

// 接続を持たないクライアント。送信はErrNoConnectionになるがディスパッチは進む。
func newTestClient(roomID uint) *models.Client {
	return &models.Client{UserID: 42, RoomID: roomID, NickName: "Player"}
}

func newTestRoom(t *testing.T) *rooms.Room {
	t.Helper()
	hub := rooms.NewHub(zap.NewNop())
	return hub.Create(640, 640)
}

func TestDispatchThrowDartAddsMarker(t *testing.T) {
	room := newTestRoom(t)
	client := newTestClient(room.ID)

	// 640x640の中心はインナーブル
	msg := map[string]interface{}{"type": "throwDart", "x": 320.0, "y": 320.0}
	Dispatch(client, msg, room, zap.NewNop())

	room.WithBoard(func(b *board.Board) {
		markers := b.Markers()
		if len(markers) != 1 {
			t.Fatalf("markers = %d; want 1", len(markers))
		}
		if markers[0].Hit.Label != "BULL" {
			t.Fatalf("label = %q; want BULL", markers[0].Hit.Label)
		}
	})
}

func TestDispatchThrowDartInvalidCoordinates(t *testing.T) {
	room := newTestRoom(t)
	client := newTestClient(room.ID)

	msg := map[string]interface{}{"type": "throwDart", "x": "oops"}
	Dispatch(client, msg, room, zap.NewNop())

	room.WithBoard(func(b *board.Board) {
		if len(b.Markers()) != 0 {
			t.Fatal("invalid payload must not add markers")
		}
	})
}

func TestDispatchShowAndClearMarkers(t *testing.T) {
	room := newTestRoom(t)
	client := newTestClient(room.ID)

	show := map[string]interface{}{
		"type": "showMarkers",
		"hits": []interface{}{
			map[string]interface{}{"value": 20.0, "multiplier": 3.0, "label": "T20"},
			map[string]interface{}{"value": 19.0, "multiplier": 1.0, "label": "S19"},
		},
	}
	Dispatch(client, show, room, zap.NewNop())

	room.WithBoard(func(b *board.Board) {
		if len(b.Markers()) != 2 {
			t.Fatalf("markers = %d; want 2", len(b.Markers()))
		}
	})

	Dispatch(client, map[string]interface{}{"type": "clearMarkers"}, room, zap.NewNop())
	room.WithBoard(func(b *board.Board) {
		if len(b.Markers()) != 0 {
			t.Fatal("clearMarkers left markers behind")
		}
	})
}

func TestDispatchZoomBoard(t *testing.T) {
	room := newTestRoom(t)
	client := newTestClient(room.ID)

	msg := map[string]interface{}{
		"type":       "zoomBoard",
		"centerX":    0.5,
		"centerY":    0.5,
		"scale":      2.0,
		"durationMs": 0.0,
	}
	Dispatch(client, msg, room, zap.NewNop())

	room.WithBoard(func(b *board.Board) {
		if b.View().Scale != 2.0 {
			t.Fatalf("scale = %v; want 2.0", b.View().Scale)
		}
	})

	Dispatch(client, map[string]interface{}{"type": "resetZoom", "durationMs": 0.0}, room, zap.NewNop())
	room.WithBoard(func(b *board.Board) {
		if b.View().Scale != 1.0 {
			t.Fatalf("scale after reset = %v; want 1.0", b.View().Scale)
		}
	})
}

func TestDispatchResizeBoard(t *testing.T) {
	room := newTestRoom(t)
	client := newTestClient(room.ID)

	msg := map[string]interface{}{"type": "resizeBoard", "width": 800.0, "height": 480.0}
	Dispatch(client, msg, room, zap.NewNop())

	room.WithBoard(func(b *board.Board) {
		w, h := b.Size()
		if w != 800 || h != 480 {
			t.Fatalf("size = %dx%d; want 800x480", w, h)
		}
	})
}

func TestDispatchDeciderFlow(t *testing.T) {
	room := newTestRoom(t)
	client := newTestClient(room.ID)
	logger := zap.NewNop()

	start := map[string]interface{}{
		"type": "deciderStart",
		"participants": []interface{}{
			map[string]interface{}{"id": 1.0, "displayName": "Alice"},
			map[string]interface{}{"id": 2.0, "displayName": "Bob"},
		},
	}
	Dispatch(client, start, room, logger)

	room.WithBoard(func(b *board.Board) {
		session := b.Decider()
		if !session.Active {
			t.Fatal("decider session not active after start")
		}
		if len(session.Participants) != 2 {
			t.Fatalf("participants = %d; want 2", len(session.Participants))
		}
		if !b.Animating() {
			t.Fatal("start must kick off the bull zoom")
		}
	})

	Dispatch(client, map[string]interface{}{"type": "deciderSetCurrent", "index": 1.0}, room, logger)
	Dispatch(client, map[string]interface{}{"type": "deciderAddMarker", "x": 0.5, "y": 0.5}, room, logger)

	room.WithBoard(func(b *board.Board) {
		if b.Decider().CurrentIndex != 1 {
			t.Fatalf("currentIndex = %d; want 1", b.Decider().CurrentIndex)
		}
		if len(b.DeciderMarkers()) != 1 {
			t.Fatalf("decider markers = %d; want 1", len(b.DeciderMarkers()))
		}
	})

	Dispatch(client, map[string]interface{}{"type": "deciderTogglePause"}, room, logger)
	room.WithBoard(func(b *board.Board) {
		if !b.Decider().Paused {
			t.Fatal("session not paused after toggle")
		}
	})

	// キャンセルは終了の別名
	Dispatch(client, map[string]interface{}{"type": "deciderCancel"}, room, logger)
	room.WithBoard(func(b *board.Board) {
		if b.Decider().Active {
			t.Fatal("session still active after cancel")
		}
		if len(b.DeciderMarkers()) != 0 {
			t.Fatal("decider markers survived cancel")
		}
	})
}

func TestDispatchDeciderStartRejectsEmpty(t *testing.T) {
	room := newTestRoom(t)
	client := newTestClient(room.ID)

	Dispatch(client, map[string]interface{}{"type": "deciderStart", "participants": []interface{}{}}, room, zap.NewNop())

	room.WithBoard(func(b *board.Board) {
		if b.Decider().Active {
			t.Fatal("empty participant list must not start a session")
		}
	})
}

func TestDispatchUnknownTypeIsIgnored(t *testing.T) {
	room := newTestRoom(t)
	client := newTestClient(room.ID)

	Dispatch(client, map[string]interface{}{"type": "selfDestruct"}, room, zap.NewNop())

	room.WithBoard(func(b *board.Board) {
		if len(b.Markers()) != 0 || b.Animating() {
			t.Fatal("unknown message type changed board state")
		}
	})
}

func TestDurationFromMsg(t *testing.T) {
	fallback := 600 * time.Millisecond
	tests := []struct {
		name string
		msg  map[string]interface{}
		want time.Duration
	}{
		{"present", map[string]interface{}{"durationMs": 250.0}, 250 * time.Millisecond},
		{"missing", map[string]interface{}{}, fallback},
		{"negative", map[string]interface{}{"durationMs": -5.0}, fallback},
		{"wrong type", map[string]interface{}{"durationMs": "fast"}, fallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := durationFromMsg(tt.msg, "durationMs", fallback); got != tt.want {
				t.Fatalf("durationFromMsg = %v; want %v", got, tt.want)
			}
		})
	}
}
