package clock

import "time"

// timerQueue реализует heap.Interface и хранит отложенные вызовы.
// Порядок: сначала по сроку, при равенстве - по порядку постановки.
type timerQueue []*Timer

func (pq timerQueue) Len() int { return len(pq) }

func (pq timerQueue) Less(i, j int) bool {
	if pq[i].due != pq[j].due {
		return pq[i].due < pq[j].due
	}
	return pq[i].seq < pq[j].seq
}

func (pq timerQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *timerQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*Timer)
	item.index = n
	*pq = append(*pq, item)
}

func (pq *timerQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.index = -1 // таймер больше не в очереди
	*pq = old[0 : n-1]
	return item
}

func (pq timerQueue) peekDue() (time.Duration, bool) {
	if len(pq) == 0 {
		return 0, false
	}
	return pq[0].due, true
}
