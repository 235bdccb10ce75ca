package rooms

import (
	"sync"
	"time"

	"dartserver/board"
	"dartserver/models"

	"go.uber.org/zap"
)

// Hub は稼働中の全ルームのレジストリです。ルームはメモリ上にのみ存在し、
// 永続化はしない。
type Hub struct {
	mu     sync.Mutex
	rooms  map[uint]*Room
	nextID uint
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		rooms:  make(map[uint]*Room),
		nextID: 1,
		logger: logger,
	}
}

// Create は新しいルームと盤面を作ります。
func (h *Hub) Create(width, height int) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	room := newRoom(id, width, height, h.logger)
	h.rooms[id] = room
	h.logger.Info("New room created", zap.Uint("RoomID", id), zap.Int("width", width), zap.Int("height", height))
	return room
}

// Get は既存ルームを返します。
func (h *Hub) Get(id uint) (*Room, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[id]
	return room, ok
}

// GetOrCreate はWebsocket接続時の暗黙のルーム作成に使います。
func (h *Hub) GetOrCreate(id uint, width, height int) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room, ok := h.rooms[id]; ok {
		return room
	}
	if id >= h.nextID {
		h.nextID = id + 1
	}
	room := newRoom(id, width, height, h.logger)
	h.rooms[id] = room
	h.logger.Info("Room implicitly created", zap.Uint("RoomID", id))
	return room
}

// Delete はルームを破棄します。
func (h *Hub) Delete(id uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms, id)
}

// Count は稼働中のルーム数を返します。
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}

// ExpireIdle は指定時間より長く動きのない無人ルームを削除し、件数を返します。
// クーロンジョブから呼ばれる。
func (h *Hub) ExpireIdle(maxIdle time.Duration, now time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	removed := 0
	for id, room := range h.rooms {
		if room.ClientCount() == 0 && now.Sub(room.LastActivity()) > maxIdle {
			delete(h.rooms, id)
			removed++
		}
	}
	if removed > 0 {
		h.logger.Info("Idle rooms expired", zap.Int("rooms_deleted", removed))
	}
	return removed
}

// Room は1つの盤面とその観戦者・プレイヤーを所有します。
// 盤面の状態はmuの中でだけ触れる。盤面コアは並行実行を想定しないため、
// 排他は所有者であるルームの責務になる。
type Room struct {
	ID    uint
	Board *board.Board

	mu           sync.Mutex
	lastActivity time.Time
	frameLoop    bool

	clientsMu sync.Mutex
	clients   map[*models.Client]bool

	logger *zap.Logger
}

// アニメーション中のフレーム配信間隔
const frameInterval = 50 * time.Millisecond

func newRoom(id uint, width, height int, logger *zap.Logger) *Room {
	return &Room{
		ID:           id,
		Board:        board.New(width, height, logger),
		lastActivity: time.Now(),
		clients:      make(map[*models.Client]bool),
		logger:       logger,
	}
}

// WithBoard は盤面をルームの排他の下で操作します。
// fnの中からWithBoardやStartFrameLoopを呼んではいけない。
func (r *Room) WithBoard(fn func(b *board.Board)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastActivity = time.Now()
	fn(r.Board)
}

// LastActivity は最後に盤面が操作された時刻を返します。
func (r *Room) LastActivity() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastActivity
}

// AddClient はルームにクライアントを登録します。
func (r *Room) AddClient(c *models.Client) {
	r.clientsMu.Lock()
	defer r.clientsMu.Unlock()
	r.clients[c] = true
}

// RemoveClient はクライアントを外します。
func (r *Room) RemoveClient(c *models.Client) {
	r.clientsMu.Lock()
	defer r.clientsMu.Unlock()
	delete(r.clients, c)
}

// Clients は現在の接続クライアントのスナップショットを返します。
// 盤面ロックの内側から安全に呼べるよう、排他は別のミューテックスで持つ。
func (r *Room) Clients() []*models.Client {
	r.clientsMu.Lock()
	defer r.clientsMu.Unlock()
	out := make([]*models.Client, 0, len(r.clients))
	for c := range r.clients {
		out = append(out, c)
	}
	return out
}

func (r *Room) ClientCount() int {
	r.clientsMu.Lock()
	defer r.clientsMu.Unlock()
	return len(r.clients)
}

// StartFrameLoop はズームアニメーションが終わるまで盤面をTickし続け、
// フレームごとにonFrameを呼ぶゴルーチンを起動します。既に起動済みなら何もしない。
// onFrameはルームのロックの外で呼ばれる。
func (r *Room) StartFrameLoop(onFrame func()) {
	r.mu.Lock()
	if r.frameLoop || !r.Board.Animating() {
		r.mu.Unlock()
		return
	}
	r.frameLoop = true
	r.mu.Unlock()

	go func() {
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		for now := range ticker.C {
			r.mu.Lock()
			r.Board.Tick(now)
			done := !r.Board.Animating()
			if done {
				r.frameLoop = false
			}
			r.mu.Unlock()

			if onFrame != nil {
				onFrame()
			}
			if done {
				return
			}
		}
	}()
}
