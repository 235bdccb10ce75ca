package board

import (
	"image/color"
	"time"
)

const (
	// 1レイヤーあたりのマーカー上限。描画コストとメモリを抑えるため、
	// 超過時は古いものから追い出す。
	maxMarkersPerLayer = 64

	// マーカー出現アニメーションの長さ
	markerFadeDuration = 400 * time.Millisecond
)

// マーカーの既定色
var (
	ColorMarkerPrimary = color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff} // 金
	ColorMarkerDecider = color.RGBA{R: 0x44, G: 0x88, B: 0xff, A: 0xff} // 青
)

// Marker は盤面に置かれた1つのマーカー。位置はHitとして持ち、
// 正規化座標が無い場合はセクターと倍率から帯の中間位置に復元される。
type Marker struct {
	Hit       Hit
	Color     color.RGBA
	CreatedAt time.Time
}

// fadeProgress は生成からの経過時間に基づく出現アニメーションの進行度[0,1]。
func (m Marker) fadeProgress(now time.Time) float64 {
	elapsed := now.Sub(m.CreatedAt)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= markerFadeDuration {
		return 1
	}
	return easeOutCubic(float64(elapsed) / float64(markerFadeDuration))
}

// appendMarker はレイヤーにマーカーを追加し、上限を超えた分を先頭から落とします。
func appendMarker(layer []Marker, m Marker) []Marker {
	layer = append(layer, m)
	if len(layer) > maxMarkersPerLayer {
		layer = layer[len(layer)-maxMarkersPerLayer:]
	}
	return layer
}
