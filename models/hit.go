package models

import "dartserver/board"

// HitMessage はダーツヒットのワイヤ形式。x,yはズーム前の論理盤面に対する
// 正規化座標、px,pyはクリック時点の論理ピクセル座標。
type HitMessage struct {
	Value      int     `json:"value"`
	Multiplier int     `json:"multiplier"`
	Label      string  `json:"label"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	PX         float64 `json:"px"`
	PY         float64 `json:"py"`
}

// NewHitMessage はboard.Hitをワイヤ形式に変換します。
func NewHitMessage(hit board.Hit) HitMessage {
	return HitMessage{
		Value:      hit.Sector,
		Multiplier: hit.Multiplier,
		Label:      hit.Label,
		X:          hit.XNorm,
		Y:          hit.YNorm,
		PX:         hit.PX,
		PY:         hit.PY,
	}
}

// ToHit はワイヤ形式からboard.Hitを復元します。座標が両方ゼロの場合は
// セクターと倍率だけのマーカーとして扱い、表示位置は帯の中間に復元される。
func (m HitMessage) ToHit() board.Hit {
	return board.Hit{
		Sector:     m.Value,
		Multiplier: m.Multiplier,
		Label:      m.Label,
		XNorm:      m.X,
		YNorm:      m.Y,
		PX:         m.PX,
		PY:         m.PY,
		HasCoords:  m.X != 0 || m.Y != 0,
	}
}
