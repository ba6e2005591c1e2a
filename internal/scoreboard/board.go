// Package scoreboard - здоровье, очки и таймер уровня.
package scoreboard

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/muneebk98/Maze-Adventures/internal/domain"
	"github.com/muneebk98/Maze-Adventures/pkg/logger"
)

const (
	DefaultMaxHealth = 100
	DefaultTimeLimit = 60 * time.Second
)

type Board struct {
	MaxHealth int
	TimeLimit time.Duration

	level    int
	health   int
	score    int
	timeLeft time.Duration
	dead     bool
	timeUp   bool

	notifier domain.Notifier
	log      *logrus.Entry
}

func New(maxHealth int, timeLimit time.Duration, notifier domain.Notifier) *Board {
	if maxHealth <= 0 {
		maxHealth = DefaultMaxHealth
	}
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}
	if notifier == nil {
		notifier = domain.NopNotifier{}
	}
	b := &Board{
		MaxHealth: maxHealth,
		TimeLimit: timeLimit,
		notifier:  notifier,
		log:       logger.Component("scoreboard"),
	}
	b.ResetHealth()
	b.ResetScore()
	b.ResetTimer()
	return b
}

// SetLevel - номер уровня для полей событий.
func (b *Board) SetLevel(index int) { b.level = index }

func (b *Board) Health() int             { return b.health }
func (b *Board) Score() int              { return b.score }
func (b *Board) TimeLeft() time.Duration { return b.timeLeft }
func (b *Board) Dead() bool              { return b.dead }

func (b *Board) State() domain.LevelState {
	return domain.LevelState{
		Index:    b.level,
		Score:    b.score,
		Health:   b.health,
		TimeLeft: b.timeLeft,
	}
}

// Damage уменьшает здоровье, не ниже нуля. Смерть сообщается один раз за жизнь.
func (b *Board) Damage(amount int) {
	if amount <= 0 || b.dead {
		return
	}
	b.health -= amount
	if b.health < 0 {
		b.health = 0
	}
	b.notifier.Notify(domain.Event{Type: domain.EventDamage, Level: b.level, Amount: amount})

	if b.health == 0 {
		b.dead = true
		b.log.WithField("level_index", b.level).Info("Player died.")
		b.notifier.Notify(domain.Event{Type: domain.EventPlayerDied, Level: b.level})
	}
}

// Heal лечит, не выше максимума. false - лечить нечего, предмет не тратится.
func (b *Board) Heal(amount int) bool {
	if amount <= 0 || b.dead || b.health >= b.MaxHealth {
		return false
	}
	before := b.health
	b.health += amount
	if b.health > b.MaxHealth {
		b.health = b.MaxHealth
	}
	b.notifier.Notify(domain.Event{Type: domain.EventHeal, Level: b.level, Amount: b.health - before})
	return true
}

func (b *Board) AddScore(delta int) {
	b.score += delta
	b.notifier.Notify(domain.Event{Type: domain.EventScoreDelta, Level: b.level, Amount: delta})
}

// Tick отсчитывает таймер. Истечение сообщается один раз.
func (b *Board) Tick(dt time.Duration) {
	if b.timeUp {
		return
	}
	b.timeLeft -= dt
	if b.timeLeft <= 0 {
		b.timeLeft = 0
		b.timeUp = true
		b.log.WithField("level_index", b.level).Info("Time is up.")
		b.notifier.Notify(domain.Event{Type: domain.EventTimeUp, Level: b.level})
	}
}

func (b *Board) ResetScore() {
	b.score = 0
}

func (b *Board) ResetTimer() {
	b.timeLeft = b.TimeLimit
	b.timeUp = false
}

func (b *Board) ResetHealth() {
	b.health = b.MaxHealth
	b.dead = false
}
