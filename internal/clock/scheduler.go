// Package clock - однопоточный планировщик отложенных вызовов на игровом времени.
//
// Время не идет само: его двигает игровой цикл через Advance. Все колбэки
// выполняются в той же горутине, что вызвала Advance.
package clock

import (
	"container/heap"
	"time"
)

// Timer - ручка отложенного вызова. Cancel гарантирует, что колбэк не выполнится.
type Timer struct {
	due   time.Duration
	seq   uint64
	index int
	fn    func()
	owner *Scheduler
}

// Cancel снимает таймер с очереди. Возвращает false, если он уже сработал или отменен.
func (t *Timer) Cancel() bool {
	if t == nil || t.owner == nil || t.index < 0 {
		return false
	}
	heap.Remove(&t.owner.queue, t.index)
	t.fn = nil
	return true
}

// Active - таймер еще ждет своего срока.
func (t *Timer) Active() bool {
	return t != nil && t.index >= 0
}

// Due - момент срабатывания на шкале планировщика.
func (t *Timer) Due() time.Duration {
	return t.due
}

type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
}

func NewScheduler() *Scheduler {
	s := &Scheduler{queue: make(timerQueue, 0)}
	heap.Init(&s.queue)
	return s
}

// Now - сколько игрового времени прошло.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After ставит fn на выполнение через d. Отрицательное d считается нулем.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Timer{due: s.now + d, seq: s.seq, fn: fn, owner: s}
	heap.Push(&s.queue, t)
	return t
}

// Advance двигает время на dt и выполняет все созревшие вызовы по порядку.
// Вызовы, поставленные из колбэков и созревающие в пределах dt, тоже выполняются.
func (s *Scheduler) Advance(dt time.Duration) int {
	target := s.now + dt
	fired := 0
	for {
		due, ok := s.queue.peekDue()
		if !ok || due > target {
			break
		}
		t := heap.Pop(&s.queue).(*Timer)
		s.now = t.due
		fn := t.fn
		t.fn = nil
		if fn != nil {
			fn()
			fired++
		}
	}
	if target > s.now {
		s.now = target
	}
	return fired
}

// Pending - сколько таймеров ждет срабатывания.
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

// CancelAll снимает все таймеры.
func (s *Scheduler) CancelAll() {
	for _, t := range s.queue {
		t.index = -1
		t.fn = nil
	}
	s.queue = s.queue[:0]
}
