package board

import (
	"testing"
	"time"
)

func newTestBoard() *Board {
	return New(640, 640, nil)
}

func TestHandlePointerDownEmitsHit(t *testing.T) {
	b := newTestBoard()
	var got Hit
	var calls int
	b.SetHitListener(func(h Hit) {
		got = h
		calls++
	})

	hit, ok := b.HandlePointerDown(320, 120, t0) // 中心から200px上
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Label != "S20" {
		t.Errorf("hit label = %q, want S20", hit.Label)
	}
	if calls != 1 || got.Label != "S20" {
		t.Errorf("listener calls=%d label=%q", calls, got.Label)
	}
	if len(b.Markers()) != 1 {
		t.Errorf("primary markers = %d, want 1", len(b.Markers()))
	}
}

func TestHandlePointerDownBeyondMissRing(t *testing.T) {
	b := newTestBoard()
	var calls int
	b.SetHitListener(func(Hit) { calls++ })

	if _, ok := b.HandlePointerDown(1, 1, t0); ok {
		t.Error("corner click is beyond the miss ring, expected no hit")
	}
	if calls != 0 || len(b.Markers()) != 0 {
		t.Errorf("no event and no marker expected, calls=%d markers=%d", calls, len(b.Markers()))
	}
}

// ズーム前後で同じ論理位置をクリックしたとき、スコアが一致すること。
// scale=3のビューでは順変換で得た画面点を入力として使う。
func TestZoomInvariance(t *testing.T) {
	flat := newTestBoard()
	zoomed := newTestBoard()
	zoomed.ZoomTo(0.45, 0.4, 3, 0, t0)

	g := NewGeometry(640, 640)
	for _, pt := range [][2]float64{{320, 120}, {320, 90}, {200, 320}, {320, 321}} {
		flatHit, ok1 := flat.HandlePointerDown(pt[0], pt[1], t0)
		view := zoomed.View()
		sx, sy := view.Forward(pt[0], pt[1], g)
		zoomHit, ok2 := zoomed.HandlePointerDown(sx, sy, t0)
		if ok1 != ok2 {
			t.Fatalf("point %v: hit disagreement %v vs %v", pt, ok1, ok2)
		}
		if !ok1 {
			continue
		}
		if flatHit.Sector != zoomHit.Sector || flatHit.Multiplier != zoomHit.Multiplier || flatHit.Label != zoomHit.Label {
			t.Errorf("point %v: flat %q vs zoomed %q", pt, flatHit.Label, zoomHit.Label)
		}
	}
}

func TestListenerPanicIsolated(t *testing.T) {
	b := newTestBoard()
	b.SetHitListener(func(Hit) { panic("collaborator bug") })

	hit, ok := b.HandlePointerDown(320, 120, t0)
	if !ok || hit.Label != "S20" {
		t.Fatalf("hit should survive a panicking listener, got ok=%v %q", ok, hit.Label)
	}
	if len(b.Markers()) != 1 {
		t.Error("marker placement must not be rolled back by listener failure")
	}
}

func TestMarkerLayerCap(t *testing.T) {
	b := newTestBoard()
	for i := 0; i < maxMarkersPerLayer+10; i++ {
		b.HandlePointerDown(320, 120, t0)
	}
	if len(b.Markers()) != maxMarkersPerLayer {
		t.Errorf("markers = %d, want cap %d", len(b.Markers()), maxMarkersPerLayer)
	}
}

func TestShowAndClearMarkers(t *testing.T) {
	b := newTestBoard()
	hits := []Hit{
		{Sector: 20, Multiplier: 3},
		{Sector: 19, Multiplier: 1},
	}
	b.ShowMarkers(hits, ColorMarkerPrimary, t0)
	if len(b.Markers()) != 2 {
		t.Fatalf("markers = %d, want 2", len(b.Markers()))
	}
	b.ClearMarkers()
	if len(b.Markers()) != 0 {
		t.Error("markers should be empty after clear")
	}
}

func TestZeroSizedBoardIsNoop(t *testing.T) {
	b := New(0, 0, nil)
	if _, ok := b.HandlePointerDown(10, 10, t0); ok {
		t.Error("zero-sized board must not produce hits")
	}
	if img := b.Render(t0); img != nil {
		t.Error("zero-sized board must not render")
	}
	b.ZoomToBull(3, 0, t0) // 落ちなければよい
}

func TestDeciderSessionFlow(t *testing.T) {
	b := newTestBoard()
	players := []Participant{{ID: 1, DisplayName: "Alice"}, {ID: 2, DisplayName: "Bob"}}

	b.DeciderStart(players, t0)
	d := b.Decider()
	if !d.Active || d.Paused || d.CurrentIndex != 0 {
		t.Fatalf("after start: %+v", d)
	}
	if !b.Animating() {
		t.Error("start should request a zoom to bull")
	}
	b.Tick(t0.Add(time.Second))
	if v := b.View(); v.Scale != bullZoomScale {
		t.Errorf("scale = %v, want %v", v.Scale, bullZoomScale)
	}

	// 2回マーカーを置くとディサイダーレイヤーだけが伸びる
	b.DeciderAddMarker(0.5, 0.48, t0)
	b.DeciderAddMarker(0.51, 0.5, t0)
	if len(b.DeciderMarkers()) != 2 {
		t.Errorf("decider markers = %d, want 2", len(b.DeciderMarkers()))
	}
	if len(b.Markers()) != 0 {
		t.Errorf("primary markers = %d, want 0", len(b.Markers()))
	}

	// 手番のクランプ
	b.DeciderSetCurrent(5)
	if b.Decider().CurrentIndex != 1 {
		t.Errorf("current index = %d, want clamped 1", b.Decider().CurrentIndex)
	}
	b.DeciderSetCurrent(-3)
	if b.Decider().CurrentIndex != 0 {
		t.Errorf("current index = %d, want clamped 0", b.Decider().CurrentIndex)
	}

	// 一時停止で等倍へ、再開でブルへ
	b.DeciderTogglePause(t0)
	b.Tick(t0.Add(time.Second))
	if !b.Decider().Paused || b.View().Scale != 1 {
		t.Errorf("paused=%v scale=%v, want paused at scale 1", b.Decider().Paused, b.View().Scale)
	}
	b.DeciderTogglePause(t0.Add(time.Second))
	b.Tick(t0.Add(2 * time.Second))
	if b.Decider().Paused || b.View().Scale != bullZoomScale {
		t.Errorf("unpaused=%v scale=%v", b.Decider().Paused, b.View().Scale)
	}

	// 終了でマーカーも参加者も消え、等倍へ戻る
	b.DeciderEnd(t0.Add(2 * time.Second))
	b.Tick(t0.Add(3 * time.Second))
	d = b.Decider()
	if d.Active || len(d.Participants) != 0 || len(b.DeciderMarkers()) != 0 {
		t.Errorf("after end: %+v markers=%d", d, len(b.DeciderMarkers()))
	}
	if b.View().Scale != 1 {
		t.Errorf("scale = %v, want 1", b.View().Scale)
	}
}

// ディサイダー中のクリックはディサイダーレイヤーに入り、リスナーにも流れる。
func TestDeciderClickGoesToDeciderLayer(t *testing.T) {
	b := newTestBoard()
	b.DeciderStart([]Participant{{ID: 1, DisplayName: "Alice"}}, t0)
	b.ResetZoom(0, t0) // 判定を単純にするため等倍へ

	var calls int
	b.SetHitListener(func(Hit) { calls++ })
	if _, ok := b.HandlePointerDown(320, 320, t0); !ok {
		t.Fatal("expected a bull hit")
	}
	if len(b.DeciderMarkers()) != 1 || len(b.Markers()) != 0 {
		t.Errorf("decider=%d primary=%d", len(b.DeciderMarkers()), len(b.Markers()))
	}
	if calls != 1 {
		t.Errorf("listener calls = %d, want 1", calls)
	}
}

// オーバーレイのボタンが盤面ヒットより先に判定されること。
func TestOverlayButtonShortCircuits(t *testing.T) {
	b := newTestBoard()
	b.DeciderStart([]Participant{{ID: 1, DisplayName: "Alice"}}, t0)
	var calls int
	b.SetHitListener(func(Hit) { calls++ })

	btns := b.deciderButtons()
	if len(btns) != 2 {
		t.Fatalf("buttons = %d, want 2", len(btns))
	}

	// ZOOMボタン → 一時停止に切り替わり、盤面イベントは出ない
	zoom := btns[0]
	if _, ok := b.HandlePointerDown(zoom.X+1, zoom.Y+1, t0); ok {
		t.Error("button click must not be a board hit")
	}
	if !b.Decider().Paused {
		t.Error("ZOOM button should toggle pause")
	}

	// CANCELボタン → セッション終了
	cancel := btns[1]
	b.HandlePointerDown(cancel.X+1, cancel.Y+1, t0)
	if b.Decider().Active {
		t.Error("CANCEL button should end the session")
	}
	if calls != 0 || len(b.DeciderMarkers()) != 0 {
		t.Errorf("no board events expected, calls=%d markers=%d", calls, len(b.DeciderMarkers()))
	}
}

func TestResizeKeepsNormalizedMarkers(t *testing.T) {
	b := newTestBoard()
	hit, _ := b.HandlePointerDown(320, 120, t0)

	b.Resize(320, 320)
	g := NewGeometry(320, 320)
	x, y, err := HitToPixel(hit, g)
	if err != nil {
		t.Fatal(err)
	}
	// 正規化座標なのでリサイズ後も同じ相対位置
	if x != hit.XNorm*320 || y != hit.YNorm*320 {
		t.Errorf("marker moved after resize: (%v,%v)", x, y)
	}
	again, ok := PixelToHit(x, y, g)
	if !ok || again.Label != hit.Label {
		t.Errorf("resized hit = %q, want %q", again.Label, hit.Label)
	}
}
