package board

import (
	"image/color"
	"time"

	"go.uber.org/zap"
)

const (
	// ブルへのズームの既定値
	bullZoomScale    = 3.0
	bullZoomDuration = 600 * time.Millisecond
)

// HitListener は盤内クリックのたびに呼ばれるコールバック。
// コールバック側の失敗で盤面の状態が壊れないよう、呼び出しはrecoverで隔離される。
type HitListener func(Hit)

// buttonRect はディサイダーオーバーレイのボタン矩形（画面座標）。
type buttonRect struct {
	X, Y, W, H float64
	Label      string
}

func (b buttonRect) contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.W && y >= b.Y && y <= b.Y+b.H
}

// Board は1枚の盤面インスタンス。描画面サイズ、ビュー変換、マーカーレイヤー、
// ディサイダーセッションをすべて所有する。パッケージレベルの可変状態は持たず、
// 複数の盤面が共存できる。
//
// 並行実行の前提はない。マルチゴルーチンのホストから使う場合は、
// 所有者側（ルーム）が排他を取ること。
type Board struct {
	width, height int

	view           ViewTransform
	markers        []Marker // 通常レイヤー
	deciderMarkers []Marker // ディサイダーレイヤー
	decider        DeciderSession

	listener HitListener
	logger   *zap.Logger
}

// New は指定サイズの盤面を作ります。サイズゼロでも失敗はせず、
// 有効なサイズが与えられるまで各操作がノーオペになる。
func New(width, height int, logger *zap.Logger) *Board {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Board{
		width:  width,
		height: height,
		view:   NewViewTransform(),
		logger: logger,
	}
}

// SetHitListener は盤内クリックの通知先を登録します。
func (b *Board) SetHitListener(fn HitListener) {
	b.listener = fn
}

// Resize は描画面サイズの変更を反映します。ジオメトリは描画のたびに
// 再計算されるため、ここではサイズを覚えるだけでよい。
func (b *Board) Resize(width, height int) {
	if width < 0 || height < 0 {
		return
	}
	b.width = width
	b.height = height
}

// Size は現在の描画面サイズを返します。
func (b *Board) Size() (int, int) {
	return b.width, b.height
}

func (b *Board) geometry() Geometry {
	return NewGeometry(float64(b.width), float64(b.height))
}

// View は現在のビュー変換のコピーを返します。
func (b *Board) View() ViewTransform {
	return b.view
}

// Tick はズームアニメーションを現在時刻まで進めます。
// ホストのスケジューラから呼ばれる。ヘッドレス実行では合成タイムスタンプでよい。
func (b *Board) Tick(now time.Time) {
	b.view.Tick(now)
}

// Animating はズーム遷移が進行中かどうかを返します。
func (b *Board) Animating() bool {
	return b.view.Animating()
}

// ZoomTo は指定の正規化中心とスケールへのズームを開始します。
func (b *Board) ZoomTo(centerX, centerY, scale float64, duration time.Duration, now time.Time) {
	b.view.SetTarget(centerX, centerY, scale, duration, now)
}

// ZoomToBull は盤面中央（ブル）へのズーム。
func (b *Board) ZoomToBull(scale float64, duration time.Duration, now time.Time) {
	b.ZoomTo(0.5, 0.5, scale, duration, now)
}

// ResetZoom は等倍表示へ戻します。
func (b *Board) ResetZoom(duration time.Duration, now time.Time) {
	b.ZoomTo(0.5, 0.5, 1, duration, now)
}

// ShowMarkers は通常レイヤーを丸ごと置き換えます。
func (b *Board) ShowMarkers(hits []Hit, col color.RGBA, now time.Time) {
	b.markers = nil
	for _, h := range hits {
		b.markers = appendMarker(b.markers, Marker{Hit: h, Color: col, CreatedAt: now})
	}
}

// ClearMarkers は通常レイヤーを空にします。
func (b *Board) ClearMarkers() {
	b.markers = nil
}

// Markers は通常レイヤーのコピーを返します。
func (b *Board) Markers() []Marker {
	out := make([]Marker, len(b.markers))
	copy(out, b.markers)
	return out
}

// DeciderMarkers はディサイダーレイヤーのコピーを返します。
func (b *Board) DeciderMarkers() []Marker {
	out := make([]Marker, len(b.deciderMarkers))
	copy(out, b.deciderMarkers)
	return out
}

// Decider はディサイダーセッションの現在状態を返します。
func (b *Board) Decider() DeciderSession {
	d := b.decider
	d.Participants = append([]Participant(nil), b.decider.Participants...)
	return d
}

// DeciderStart はディサイダーセッションを開始し、ブルへのズームを要求します。
func (b *Board) DeciderStart(participants []Participant, now time.Time) {
	b.decider.start(participants)
	b.deciderMarkers = nil
	b.ZoomToBull(bullZoomScale, bullZoomDuration, now)
}

// DeciderSetCurrent は手番表示を更新します。手番順の決定は外部コラボレーターの責務。
func (b *Board) DeciderSetCurrent(index int) {
	b.decider.setCurrent(index)
}

// DeciderAddMarker は正規化座標を指定してディサイダーレイヤーにマーカーを置きます。
func (b *Board) DeciderAddMarker(xNorm, yNorm float64, now time.Time) {
	g := b.geometry()
	hit := Hit{XNorm: xNorm, YNorm: yNorm, PX: xNorm * g.Width, PY: yNorm * g.Height, HasCoords: true}
	b.deciderMarkers = appendMarker(b.deciderMarkers, Marker{Hit: hit, Color: ColorMarkerDecider, CreatedAt: now})
}

// DeciderTogglePause は一時停止を切り替えます。
// 停止中は等倍へ戻し、再開でブルへ再ズームする。
func (b *Board) DeciderTogglePause(now time.Time) {
	if !b.decider.Active {
		return
	}
	if b.decider.togglePause() {
		b.ResetZoom(bullZoomDuration, now)
	} else {
		b.ZoomToBull(bullZoomScale, bullZoomDuration, now)
	}
}

// DeciderEnd はセッションを終了し、ディサイダーマーカーを消して等倍へ戻します。
// キャンセルも同一動作。
func (b *Board) DeciderEnd(now time.Time) {
	b.decider.end()
	b.deciderMarkers = nil
	b.ResetZoom(bullZoomDuration, now)
}

// deciderButtons はオーバーレイのボタン矩形を返します。画面座標のまま
// 描画・判定されるので、ズーム状態に関係なく位置が安定する。
func (b *Board) deciderButtons() []buttonRect {
	if !b.decider.Active || b.width == 0 || b.height == 0 {
		return nil
	}
	const btnW, btnH, margin = 88.0, 30.0, 10.0
	w := float64(b.width)
	return []buttonRect{
		{X: w - btnW - margin, Y: margin, W: btnW, H: btnH, Label: "ZOOM"},
		{X: w - btnW - margin, Y: margin*2 + btnH, W: btnW, H: btnH, Label: "CANCEL"},
	}
}

// HandlePointerDown は生のポインタ座標を処理します。
//  1. ディサイダーのボタン矩形を先に判定し、当たれば盤面の判定はしない。
//  2. 逆変換で論理座標に戻してからPixelToHitを呼ぶ。
//  3. ミスリングの外ならイベントもマーカーも無し。
//  4. それ以外はアクティブなレイヤーへマーカーを追加し、リスナーへ通知する。
//
// 戻り値のokはヒットが発生したかどうか。ボタン操作や盤外クリックではfalse。
func (b *Board) HandlePointerDown(screenX, screenY float64, now time.Time) (Hit, bool) {
	if b.width == 0 || b.height == 0 {
		return Hit{}, false
	}
	b.view.Tick(now)

	for _, btn := range b.deciderButtons() {
		if btn.contains(screenX, screenY) {
			switch btn.Label {
			case "ZOOM":
				b.DeciderTogglePause(now)
			case "CANCEL":
				b.DeciderEnd(now)
			}
			return Hit{}, false
		}
	}

	g := b.geometry()
	lx, ly := b.view.Inverse(screenX, screenY, g)
	hit, ok := PixelToHit(lx, ly, g)
	if !ok {
		return Hit{}, false
	}

	marker := Marker{Hit: hit, Color: ColorMarkerPrimary, CreatedAt: now}
	if b.decider.Active {
		marker.Color = ColorMarkerDecider
		b.deciderMarkers = appendMarker(b.deciderMarkers, marker)
	} else {
		b.markers = appendMarker(b.markers, marker)
	}

	b.emit(hit)
	return hit, true
}

// emit はリスナー呼び出しを隔離します。リスナーのpanicはログに残すだけで、
// 既に済んだマーカー追加や状態更新には影響させない。
func (b *Board) emit(hit Hit) {
	if b.listener == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Hit listener panicked", zap.Any("panic", r), zap.String("label", hit.Label))
		}
	}()
	b.listener(hit)
}
