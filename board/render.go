package board

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// 盤面の配色
var (
	colorBackground  = color.RGBA{R: 0x10, G: 0x14, B: 0x18, A: 0xff}
	colorWedgeDark   = color.RGBA{R: 0x1b, G: 0x1b, B: 0x1b, A: 0xff}
	colorWedgeLight  = color.RGBA{R: 0xf2, G: 0xe9, B: 0xd5, A: 0xff}
	colorRingRed     = color.RGBA{R: 0xc6, G: 0x28, B: 0x28, A: 0xff}
	colorRingGreen   = color.RGBA{R: 0x1d, G: 0x7a, B: 0x46, A: 0xff}
	colorBullInner   = color.RGBA{R: 0xc6, G: 0x28, B: 0x28, A: 0xff}
	colorBullOuter   = color.RGBA{R: 0x1d, G: 0x7a, B: 0x46, A: 0xff}
	colorMissOutline = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x50}
	colorMissInline  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x28}
	colorBadge       = color.RGBA{R: 0x26, G: 0x29, B: 0x2e, A: 0xff}
	colorBadgeText   = color.RGBA{R: 0xf2, G: 0xe9, B: 0xd5, A: 0xff}
	colorOverlayBox  = color.RGBA{R: 0x26, G: 0x29, B: 0x2e, A: 0xe0}
	colorOverlayText = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Render は現在のマーカーとビュー変換のもとで盤面を1フレーム描画します。
// 描画面が無い（サイズゼロ）場合はnilを返すだけで失敗しない。
// ジオメトリは毎回ここで再計算する。リサイズをまたいでキャッシュしてはいけない。
func (b *Board) Render(now time.Time) *image.RGBA {
	if b.width <= 0 || b.height <= 0 {
		return nil
	}
	b.view.Tick(now)
	g := b.geometry()

	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))

	// 盤面本体: 画面ピクセルごとに逆変換で論理座標へ戻し、
	// PixelToHitと同じ帯の並びで色を決める。
	for sy := 0; sy < b.height; sy++ {
		for sx := 0; sx < b.width; sx++ {
			lx, ly := b.view.Inverse(float64(sx)+0.5, float64(sy)+0.5, g)
			img.SetRGBA(sx, sy, b.classifyPixel(lx, ly, g))
		}
	}

	b.drawNumberBadges(img, g)
	b.drawMarkers(img, g, b.markers, now)
	b.drawMarkers(img, g, b.deciderMarkers, now)
	b.drawDeciderOverlay(img)

	return img
}

// classifyPixel は論理座標1点の盤面色を返します。帯の判定順はPixelToHitと同じ。
func (b *Board) classifyPixel(lx, ly float64, g Geometry) color.RGBA {
	dx := lx - g.CenterX
	dy := ly - g.CenterY
	r := math.Hypot(dx, dy)

	idx := sectorIndexAt(dx, dy)
	dark := idx%2 == 0

	var c color.RGBA
	switch {
	case r <= g.BullInner:
		c = colorBullInner
	case r <= g.BullOuter:
		c = colorBullOuter
	case r >= g.TripleInner && r <= g.TripleOuter:
		c = ringColor(dark)
	case r >= g.DoubleInner && r <= g.DoubleOuter:
		c = ringColor(dark)
	case r <= g.OuterRadius:
		c = wedgeColor(dark)
	default:
		c = colorBackground
	}

	// ミスリングは塗り帯ではなく2層の半透明アウトライン
	if d := math.Abs(r - g.MissRing); d <= 1.5 {
		c = blend(c, colorMissOutline)
	} else if d := math.Abs(r - (g.MissRing - 4)); d <= 1.0 {
		c = blend(c, colorMissInline)
	}
	return c
}

func ringColor(dark bool) color.RGBA {
	if dark {
		return colorRingRed
	}
	return colorRingGreen
}

func wedgeColor(dark bool) color.RGBA {
	if dark {
		return colorWedgeDark
	}
	return colorWedgeLight
}

// drawNumberBadges はダブルリングの外側に丸いバッジと数字を描きます。
// バッジ位置はビュー変換で画面座標へ写すが、フォントサイズは固定。
func (b *Board) drawNumberBadges(img *image.RGBA, g Geometry) {
	badgeOrbit := 1.12 * g.OuterRadius
	badgeRadius := 0.085 * g.OuterRadius * b.view.Scale

	for i, sector := range SectorOrder {
		midAngle := float64(i)*wedgeAngle - math.Pi/2
		lx := g.CenterX + badgeOrbit*math.Cos(midAngle)
		ly := g.CenterY + badgeOrbit*math.Sin(midAngle)
		sx, sy := b.view.Forward(lx, ly, g)
		fillCircle(img, sx, sy, badgeRadius, colorBadge)
		drawCenteredText(img, sx, sy, strconv.Itoa(sector), colorBadgeText)
	}
}

// drawMarkers はマーカーレイヤーを描画します。出現アニメーションは
// 生成時刻からの経過で決まるスケール＋不透明度のイージング。
func (b *Board) drawMarkers(img *image.RGBA, g Geometry, layer []Marker, now time.Time) {
	baseRadius := 0.025 * g.OuterRadius * b.view.Scale
	for _, m := range layer {
		lx, ly, err := HitToPixel(m.Hit, g)
		if err != nil {
			// 正規のセクター値以外は描画位置が定まらないので飛ばす
			continue
		}
		sx, sy := b.view.Forward(lx, ly, g)

		p := m.fadeProgress(now)
		radius := baseRadius * (0.4 + 0.6*p)
		col := m.Color
		col.A = uint8(float64(col.A) * (0.25 + 0.75*p))
		fillCircleBlend(img, sx, sy, radius, col)
	}
}

// drawDeciderOverlay は手番ヒントとZOOM/CANCELボタンを描きます。
// ズーム変換は適用しない画面座標のままなので、拡大中でも読める。
func (b *Board) drawDeciderOverlay(img *image.RGBA) {
	if !b.decider.Active {
		return
	}

	if current, ok := b.decider.Current(); ok {
		hint := "THROW: " + current.DisplayName
		if b.decider.Paused {
			hint = "PAUSED - " + hint
		}
		fillRect(img, 10, 10, float64(14+7*len(hint)), 24, colorOverlayBox)
		drawCenteredText(img, 10+float64(14+7*len(hint))/2, 22, hint, colorOverlayText)
	}

	for _, btn := range b.deciderButtons() {
		fillRect(img, btn.X, btn.Y, btn.W, btn.H, colorOverlayBox)
		drawCenteredText(img, btn.X+btn.W/2, btn.Y+btn.H/2, btn.Label, colorOverlayText)
	}
}

// fillCircle は不透明の塗りつぶし円を描きます。
func fillCircle(img *image.RGBA, cx, cy, radius float64, col color.RGBA) {
	bounds := img.Bounds()
	r2 := radius * radius
	minX := int(math.Floor(cx - radius))
	maxX := int(math.Ceil(cx + radius))
	minY := int(math.Floor(cy - radius))
	maxY := int(math.Ceil(cy + radius))

	for y := minY; y <= maxY; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		dy := float64(y) + 0.5 - cy
		for x := minX; x <= maxX; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// fillCircleBlend は半透明対応の塗りつぶし円。
func fillCircleBlend(img *image.RGBA, cx, cy, radius float64, col color.RGBA) {
	bounds := img.Bounds()
	r2 := radius * radius
	minX := int(math.Floor(cx - radius))
	maxX := int(math.Ceil(cx + radius))
	minY := int(math.Floor(cy - radius))
	maxY := int(math.Ceil(cy + radius))

	for y := minY; y <= maxY; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		dy := float64(y) + 0.5 - cy
		for x := minX; x <= maxX; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				img.SetRGBA(x, y, blend(img.RGBAAt(x, y), col))
			}
		}
	}
}

func fillRect(img *image.RGBA, x, y, w, h float64, col color.RGBA) {
	bounds := img.Bounds()
	for py := int(y); py < int(y+h); py++ {
		if py < bounds.Min.Y || py >= bounds.Max.Y {
			continue
		}
		for px := int(x); px < int(x+w); px++ {
			if px < bounds.Min.X || px >= bounds.Max.X {
				continue
			}
			img.SetRGBA(px, py, blend(img.RGBAAt(px, py), col))
		}
	}
}

// blend は単純なsrc-over合成。
func blend(dst, src color.RGBA) color.RGBA {
	a := float64(src.A) / 255
	return color.RGBA{
		R: uint8(float64(src.R)*a + float64(dst.R)*(1-a)),
		G: uint8(float64(src.G)*a + float64(dst.G)*(1-a)),
		B: uint8(float64(src.B)*a + float64(dst.B)*(1-a)),
		A: 0xff,
	}
}

// drawCenteredText は固定サイズのビットマップフォントで中央揃えの文字列を描きます。
func drawCenteredText(img *image.RGBA, cx, cy float64, text string, col color.RGBA) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(int(cx)) - width/2,
			Y: fixed.I(int(cy) + face.Height/2 - 3),
		},
	}
	d.DrawString(text)
}
