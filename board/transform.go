package board

import (
	"math"
	"time"
)

// viewAnimation は進行中のズーム遷移の記録。同時に存在できるのは1つだけで、
// 新しいターゲットの設定は進行中の遷移を上書きする。
type viewAnimation struct {
	fromScale, fromCenterX, fromCenterY float64
	toScale, toCenterX, toCenterY       float64
	start                               time.Time
	duration                            time.Duration
}

// ViewTransform はアニメーション付きの平行移動＋等倍スケール変換です。
// Scaleは常に1以上（ネイティブ表示より縮小はしない）。
// 状態を進めるのはTickだけで、ホスト側スケジューラが現在時刻を注入する。
type ViewTransform struct {
	Scale   float64
	CenterX float64 // ズーム中心、[0,1]の正規化座標
	CenterY float64
	anim    *viewAnimation
}

// NewViewTransform は等倍・中央のビューを返します。
func NewViewTransform() ViewTransform {
	return ViewTransform{Scale: 1, CenterX: 0.5, CenterY: 0.5}
}

// 3次イーズアウト
func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// SetTarget は新しいズームターゲットを設定します。durationがゼロなら即時適用。
// 進行中のアニメーションがある場合は、その「現在の補間値」を新しい開始点として
// 取り込むため、再ターゲットしても表示が跳ねることはない。
func (v *ViewTransform) SetTarget(centerX, centerY, scale float64, duration time.Duration, now time.Time) {
	centerX = clamp(centerX, 0, 1)
	centerY = clamp(centerY, 0, 1)
	scale = math.Max(1, scale)

	// 開始点は現在の補間値
	v.Tick(now)

	if duration <= 0 {
		v.Scale = scale
		v.CenterX = centerX
		v.CenterY = centerY
		v.anim = nil
		return
	}

	v.anim = &viewAnimation{
		fromScale:   v.Scale,
		fromCenterX: v.CenterX,
		fromCenterY: v.CenterY,
		toScale:     scale,
		toCenterX:   centerX,
		toCenterY:   centerY,
		start:       now,
		duration:    duration,
	}
}

// Tick はアニメーションを現在時刻まで進めます。完了したら確定して停止。
func (v *ViewTransform) Tick(now time.Time) {
	a := v.anim
	if a == nil {
		return
	}
	t := clamp(float64(now.Sub(a.start))/float64(a.duration), 0, 1)
	e := easeOutCubic(t)
	v.Scale = a.fromScale + (a.toScale-a.fromScale)*e
	v.CenterX = a.fromCenterX + (a.toCenterX-a.fromCenterX)*e
	v.CenterY = a.fromCenterY + (a.toCenterY-a.fromCenterY)*e
	if t >= 1 {
		v.Scale = a.toScale
		v.CenterX = a.toCenterX
		v.CenterY = a.toCenterY
		v.anim = nil
	}
}

// Animating は遷移が進行中かどうかを返します。
func (v *ViewTransform) Animating() bool {
	return v.anim != nil
}

// Forward は論理座標を画面座標へ写します。論理位置pに描かれたものは
// 画面上では zoomCenter + (p - zoomCenter)*scale に現れる。
func (v *ViewTransform) Forward(x, y float64, g Geometry) (float64, float64) {
	if v.Scale == 1 {
		return x, y
	}
	zx := v.CenterX * g.Width
	zy := v.CenterY * g.Height
	return zx + (x-zx)*v.Scale, zy + (y-zy)*v.Scale
}

// Inverse は画面座標から論理座標を復元します。ヒットテストがPixelToHitを
// 呼ぶ前に使う。scale==1のときは恒等変換なので計算を省く。
func (v *ViewTransform) Inverse(x, y float64, g Geometry) (float64, float64) {
	if v.Scale == 1 {
		return x, y
	}
	zx := v.CenterX * g.Width
	zy := v.CenterY * g.Height
	return zx + (x-zx)/v.Scale, zy + (y-zy)/v.Scale
}
