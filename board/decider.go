package board

// Participant は先攻決め（ブルズディサイダー）の参加者。
type Participant struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"displayName"`
}

// DeciderSession は「誰が先に投げるか」を決めるミニセッションの状態。
// 状態遷移: Inactive → Active(unpaused) ⇄ Active(paused) → Inactive。
// 手番の進行は外部のコラボレーターが決める。ここでは表示に必要な状態だけを持つ。
type DeciderSession struct {
	Active       bool
	Participants []Participant
	CurrentIndex int
	Paused       bool
}

// start はセッションを開始します。手番を先頭に戻す。
func (d *DeciderSession) start(participants []Participant) {
	d.Active = true
	d.Participants = participants
	d.CurrentIndex = 0
	d.Paused = false
}

// togglePause はActive中のみ有効。戻り値は切替後のpaused。
func (d *DeciderSession) togglePause() bool {
	if !d.Active {
		return false
	}
	d.Paused = !d.Paused
	return d.Paused
}

// setCurrent は手番の添字を[0, len-1]にクランプして設定します。
func (d *DeciderSession) setCurrent(index int) {
	if !d.Active || len(d.Participants) == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(d.Participants)-1 {
		index = len(d.Participants) - 1
	}
	d.CurrentIndex = index
}

// end はどの状態からでもInactiveへ戻し、参加者を破棄します。
// cancelはendと同一のセマンティクス。
func (d *DeciderSession) end() {
	d.Active = false
	d.Participants = nil
	d.CurrentIndex = 0
	d.Paused = false
}

// Current は現在手番の参加者を返します。
func (d *DeciderSession) Current() (Participant, bool) {
	if !d.Active || d.CurrentIndex < 0 || d.CurrentIndex >= len(d.Participants) {
		return Participant{}, false
	}
	return d.Participants[d.CurrentIndex], true
}
