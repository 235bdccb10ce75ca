package board

import (
	"errors"
	"math"
	"strconv"
)

// 時計回りのセクター配列。12時のウェッジ（中央に20が来る）から始まる。
var SectorOrder = [20]int{20, 1, 18, 4, 13, 6, 10, 15, 2, 17, 3, 19, 7, 16, 8, 11, 14, 9, 12, 5}

const (
	sectorCount = 20
	wedgeAngle  = 2 * math.Pi / sectorCount
)

// ErrInvalidSector はHitToPixelに正規のセクター値以外が渡された場合に返されます。
var ErrInvalidSector = errors.New("board: sector not in sector order")

// Geometry は描画面サイズから導出される盤面の半径群です。
// サイズ変更のたびに再計算され、永続的な状態は持ちません。
type Geometry struct {
	Width, Height    float64
	CenterX, CenterY float64
	OuterRadius      float64
	TripleInner      float64
	TripleOuter      float64
	DoubleInner      float64
	DoubleOuter      float64
	BullOuter        float64
	BullInner        float64
	MissRing         float64
}

// NewGeometry は描画面の寸法から盤面ジオメトリを導出します。
// 不変条件: BullInner < BullOuter < TripleInner < TripleOuter < DoubleInner <= DoubleOuter < MissRing
func NewGeometry(width, height float64) Geometry {
	outer := 0.78 * math.Min(width, height) / 2
	return Geometry{
		Width:       width,
		Height:      height,
		CenterX:     width / 2,
		CenterY:     height / 2,
		OuterRadius: outer,
		TripleInner: 0.58 * outer,
		TripleOuter: 0.66 * outer,
		DoubleInner: 0.88 * outer,
		DoubleOuter: outer,
		BullOuter:   0.06 * outer,
		BullInner:   0.03 * outer,
		MissRing:    1.35 * outer,
	}
}

// Degenerate は描画面が存在しない（サイズゼロ）状態かどうかを返します。
func (g Geometry) Degenerate() bool {
	return g.OuterRadius <= 0
}

// Hit は1投分のスコア結果。XNorm/YNormはズーム前の論理盤面に対する正規化座標で、
// リサイズやズーム状態をまたいでもマーカー位置が保たれる。
type Hit struct {
	Sector     int     // 1-20、25はブル、0は盤外ミス
	Multiplier int     // 0,1,2,3
	Label      string  // "S20"、"T19"、"BULL" など
	XNorm      float64 // [0,1] 論理盤面に対する正規化X
	YNorm      float64 // [0,1] 論理盤面に対する正規化Y
	PX         float64 // クリック時の論理ピクセルX
	PY         float64 // クリック時の論理ピクセルY
	HasCoords  bool    // 正規化座標が実際のクリック位置由来かどうか
}

// sectorIndexAt は中心からの角度をセクター配列の添字に変換します。
// 角度0を最初のウェッジの上端に合わせ、さらに半ウェッジ分ずらすことで
// ウェッジiが数字の中央に揃う。
func sectorIndexAt(dx, dy float64) int {
	angle := math.Atan2(dy, dx)
	normalized := math.Mod(angle+math.Pi/2, 2*math.Pi)
	if normalized < 0 {
		normalized += 2 * math.Pi
	}
	adjusted := math.Mod(normalized+wedgeAngle/2, 2*math.Pi)
	return int(adjusted/wedgeAngle) % sectorCount
}

// PixelToHit は論理ピクセル座標をスコアタプルに変換します。
// ミスリングの外側はヒットなし（ok=false）。呼び出し側はイベントを発行してはいけない。
//
// リング帯の判定順は仕様そのもの。帯が境界半径を共有する場合は先に並んだ帯が
// 勝つため、この並びを半径順に並べ替えてはならない。
func PixelToHit(px, py float64, g Geometry) (Hit, bool) {
	if g.Degenerate() {
		return Hit{}, false
	}

	dx := px - g.CenterX
	dy := py - g.CenterY
	r := math.Hypot(dx, dy)

	if r > g.MissRing {
		return Hit{}, false
	}

	sector := SectorOrder[sectorIndexAt(dx, dy)]

	hit := Hit{
		XNorm:     px / g.Width,
		YNorm:     py / g.Height,
		PX:        px,
		PY:        py,
		HasCoords: true,
	}

	switch {
	case r <= g.BullInner:
		hit.Sector, hit.Multiplier, hit.Label = 25, 2, "BULL"
	case r <= g.BullOuter:
		hit.Sector, hit.Multiplier, hit.Label = 25, 1, "SBULL"
	case r >= g.TripleInner && r <= g.TripleOuter:
		hit.Sector, hit.Multiplier, hit.Label = sector, 3, "T"+strconv.Itoa(sector)
	case r >= g.DoubleInner && r <= g.DoubleOuter:
		hit.Sector, hit.Multiplier, hit.Label = sector, 2, "D"+strconv.Itoa(sector)
	case r > g.OuterRadius:
		hit.Sector, hit.Multiplier, hit.Label = 0, 0, "OUT"
	default:
		hit.Sector, hit.Multiplier, hit.Label = sector, 1, "S"+strconv.Itoa(sector)
	}
	return hit, true
}

// HitToPixel はセクターと倍率しか持たないマーカーのための逆変換です。
// 帯の中間半径を使った表示用の近似であり、元のクリック位置は復元しない。
// Hitが正規化座標を持っている場合はそちらが優先されます。
func HitToPixel(hit Hit, g Geometry) (float64, float64, error) {
	if g.Degenerate() {
		return 0, 0, nil
	}
	if hit.HasCoords {
		return hit.XNorm * g.Width, hit.YNorm * g.Height, nil
	}
	if hit.Sector == 25 {
		return g.CenterX, g.CenterY, nil
	}
	if hit.Multiplier == 0 {
		// ミスはミスリング上（真上方向）に置く
		return g.CenterX, g.CenterY - g.MissRing, nil
	}

	idx := -1
	for i, s := range SectorOrder {
		if s == hit.Sector {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, 0, ErrInvalidSector
	}

	var radius float64
	switch hit.Multiplier {
	case 3:
		radius = (g.TripleInner + g.TripleOuter) / 2
	case 2:
		radius = (g.DoubleInner + g.DoubleOuter) / 2
	default:
		radius = (g.TripleOuter+g.DoubleInner)/2 - 0.03*g.OuterRadius
	}

	// sectorIndexAtの逆: ウェッジiの中央角へ戻す
	midAngle := float64(idx)*wedgeAngle - math.Pi/2
	return g.CenterX + radius*math.Cos(midAngle), g.CenterY + radius*math.Sin(midAngle), nil
}
