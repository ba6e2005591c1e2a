package engine

import (
	"github.com/muneebk98/Maze-Adventures/internal/domain"
)

// Outbox копит события тика. Рассылка идет только после того,
// как все проверки близости и урона этого тика выполнены.
type Outbox struct {
	pending []domain.Event
}

func (o *Outbox) Notify(ev domain.Event) {
	o.pending = append(o.pending, ev)
}

// Drain забирает накопленные события.
func (o *Outbox) Drain() []domain.Event {
	out := o.pending
	o.pending = nil
	return out
}

func (o *Outbox) Len() int {
	return len(o.pending)
}
