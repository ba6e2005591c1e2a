package domain

// Player - тело игрока. Двигается командами клиента или ботом.
type Player struct {
	Pos      Vec3 `json:"pos"`
	Velocity Vec3 `json:"velocity"`
}

// Reposition переносит игрока в точку и гасит скорость.
func (p *Player) Reposition(pos Vec3) {
	p.Pos = pos
	p.Velocity = Vec3{}
}

// Position нужна для интерфейсов, которые только читают позицию.
func (p *Player) Position() Vec3 {
	return p.Pos
}
