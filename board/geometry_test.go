package board

import (
	"math"
	"testing"
)

func TestGeometryInvariant(t *testing.T) {
	g := NewGeometry(640, 640)
	if !(g.BullInner < g.BullOuter && g.BullOuter < g.TripleInner &&
		g.TripleInner < g.TripleOuter && g.TripleOuter < g.DoubleInner &&
		g.DoubleInner <= g.DoubleOuter && g.DoubleOuter < g.MissRing) {
		t.Fatalf("radius invariant violated: %+v", g)
	}
	if math.Abs(g.OuterRadius-249.6) > 1e-9 {
		t.Errorf("outer radius = %v, want 249.6", g.OuterRadius)
	}
}

func TestPixelToHitBull(t *testing.T) {
	g := NewGeometry(640, 640)
	// ブル内側の任意の点はすべてsector=25, multiplier=2
	for _, r := range []float64{0, g.BullInner * 0.5, g.BullInner} {
		hit, ok := PixelToHit(g.CenterX+r, g.CenterY, g)
		if !ok {
			t.Fatalf("r=%v: expected a hit", r)
		}
		if hit.Sector != 25 || hit.Multiplier != 2 || hit.Label != "BULL" {
			t.Errorf("r=%v: got %d x%d %q, want 25 x2 BULL", r, hit.Sector, hit.Multiplier, hit.Label)
		}
	}
}

func TestPixelToHitOuterBull(t *testing.T) {
	g := NewGeometry(640, 640)
	r := (g.BullInner + g.BullOuter) / 2
	hit, ok := PixelToHit(g.CenterX, g.CenterY+r, g)
	if !ok || hit.Sector != 25 || hit.Multiplier != 1 || hit.Label != "SBULL" {
		t.Errorf("got %+v ok=%v, want SBULL", hit, ok)
	}
}

func TestPixelToHitOutBand(t *testing.T) {
	g := NewGeometry(640, 640)
	for _, r := range []float64{g.OuterRadius + 1, (g.OuterRadius + g.MissRing) / 2, g.MissRing} {
		hit, ok := PixelToHit(g.CenterX+r, g.CenterY, g)
		if !ok {
			t.Fatalf("r=%v: expected a hit", r)
		}
		if hit.Sector != 0 || hit.Multiplier != 0 || hit.Label != "OUT" {
			t.Errorf("r=%v: got %d x%d %q, want 0 x0 OUT", r, hit.Sector, hit.Multiplier, hit.Label)
		}
	}
}

func TestPixelToHitBeyondMissRing(t *testing.T) {
	g := NewGeometry(640, 640)
	if _, ok := PixelToHit(g.CenterX+g.MissRing+1, g.CenterY, g); ok {
		t.Error("expected no hit beyond the miss ring")
	}
	if _, ok := PixelToHit(-10, -10, g); ok {
		t.Error("expected no hit far outside the board")
	}
}

// 640x640の盤で中心から200px真上のクリック。200はシングル帯
// （トリプル外側164.7、ダブル内側219.6の間）なのでS20になる。
func TestPixelToHitTopSingle(t *testing.T) {
	g := NewGeometry(640, 640)
	hit, ok := PixelToHit(g.CenterX, g.CenterY-200, g)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Sector != 20 || hit.Multiplier != 1 || hit.Label != "S20" {
		t.Errorf("got %d x%d %q, want 20 x1 S20", hit.Sector, hit.Multiplier, hit.Label)
	}
}

func TestPixelToHitRingBands(t *testing.T) {
	g := NewGeometry(640, 640)
	tests := []struct {
		name   string
		radius float64
		mult   int
		prefix byte
	}{
		{"triple mid", (g.TripleInner + g.TripleOuter) / 2, 3, 'T'},
		{"double mid", (g.DoubleInner + g.DoubleOuter) / 2, 2, 'D'},
		{"inner single", (g.BullOuter + g.TripleInner) / 2, 1, 'S'},
		{"outer single", (g.TripleOuter + g.DoubleInner) / 2, 1, 'S'},
	}
	for _, tt := range tests {
		hit, ok := PixelToHit(g.CenterX, g.CenterY-tt.radius, g)
		if !ok {
			t.Fatalf("%s: expected a hit", tt.name)
		}
		if hit.Multiplier != tt.mult || hit.Sector != 20 || hit.Label[0] != tt.prefix {
			t.Errorf("%s: got %d x%d %q", tt.name, hit.Sector, hit.Multiplier, hit.Label)
		}
	}
}

// 20セクター全部で、倍率1のヒットを座標に戻してもう一度判定すると
// 同じセクターに落ちること。
func TestHitToPixelRoundTrip(t *testing.T) {
	g := NewGeometry(640, 640)
	for _, mult := range []int{1, 2, 3} {
		for _, sector := range SectorOrder {
			hit := Hit{Sector: sector, Multiplier: mult}
			x, y, err := HitToPixel(hit, g)
			if err != nil {
				t.Fatalf("sector %d x%d: %v", sector, mult, err)
			}
			got, ok := PixelToHit(x, y, g)
			if !ok {
				t.Fatalf("sector %d x%d: no hit at reconstructed point", sector, mult)
			}
			if got.Sector != sector {
				t.Errorf("sector %d x%d: round-tripped to sector %d", sector, mult, got.Sector)
			}
			if got.Multiplier != mult {
				t.Errorf("sector %d x%d: round-tripped to multiplier %d", sector, mult, got.Multiplier)
			}
		}
	}
}

func TestHitToPixelExplicitCoordsWin(t *testing.T) {
	g := NewGeometry(640, 640)
	// 明示座標があればセクターからの復元より優先される
	hit := Hit{Sector: 20, Multiplier: 1, XNorm: 0.25, YNorm: 0.75, HasCoords: true}
	x, y, err := HitToPixel(hit, g)
	if err != nil {
		t.Fatal(err)
	}
	if x != 0.25*640 || y != 0.75*640 {
		t.Errorf("got (%v,%v), want (160,480)", x, y)
	}
}

func TestHitToPixelBullAndMiss(t *testing.T) {
	g := NewGeometry(640, 640)
	x, y, err := HitToPixel(Hit{Sector: 25, Multiplier: 2}, g)
	if err != nil || x != g.CenterX || y != g.CenterY {
		t.Errorf("bull: got (%v,%v) err=%v, want center", x, y, err)
	}
	_, y, err = HitToPixel(Hit{Sector: 0, Multiplier: 0}, g)
	if err != nil || math.Abs(g.CenterY-y-g.MissRing) > 1e-9 {
		t.Errorf("miss: got y=%v err=%v, want miss ring", y, err)
	}
}

func TestHitToPixelInvalidSector(t *testing.T) {
	g := NewGeometry(640, 640)
	if _, _, err := HitToPixel(Hit{Sector: 21, Multiplier: 1}, g); err != ErrInvalidSector {
		t.Errorf("got %v, want ErrInvalidSector", err)
	}
}

func TestDegenerateGeometry(t *testing.T) {
	g := NewGeometry(0, 0)
	if !g.Degenerate() {
		t.Fatal("zero-sized surface should be degenerate")
	}
	if _, ok := PixelToHit(0, 0, g); ok {
		t.Error("degenerate geometry must not produce hits")
	}
	if _, _, err := HitToPixel(Hit{Sector: 20, Multiplier: 1}, g); err != nil {
		t.Errorf("degenerate HitToPixel should be a no-op, got %v", err)
	}
}

// ウェッジ境界のすぐ両側で隣のセクターに切り替わること。
func TestSectorBoundaries(t *testing.T) {
	g := NewGeometry(640, 640)
	r := (g.TripleOuter + g.DoubleInner) / 2
	// 12時から半ウェッジ分時計回りに回った角度が20と1の境界
	boundary := -math.Pi/2 + wedgeAngle/2
	eps := 0.001

	left, _ := PixelToHit(g.CenterX+r*math.Cos(boundary-eps), g.CenterY+r*math.Sin(boundary-eps), g)
	right, _ := PixelToHit(g.CenterX+r*math.Cos(boundary+eps), g.CenterY+r*math.Sin(boundary+eps), g)
	if left.Sector != 20 || right.Sector != 1 {
		t.Errorf("boundary sectors: got %d|%d, want 20|1", left.Sector, right.Sector)
	}
}
