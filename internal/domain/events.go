package domain

import (
	"strings"

	"github.com/muneebk98/Maze-Adventures/internal/core/types"
)

// EventType - числовой идентификатор события для презентации и клиентов.
type EventType uint8

const (
	EventUnknown EventType = iota
	EventLevelGenerated
	EventLevelAdvanced
	EventAllLevelsComplete
	EventPlacementShortfall
	EventEntitySpawned
	EventEntityRemoved
	EventHazardState
	EventDamage
	EventHeal
	EventScoreDelta
	EventPlayerMoved
	EventPlayerDied
	EventTimeUp
)

var eventStringToType = map[string]EventType{
	"LEVEL_GENERATED":     EventLevelGenerated,
	"LEVEL_ADVANCED":      EventLevelAdvanced,
	"ALL_LEVELS_COMPLETE": EventAllLevelsComplete,
	"PLACEMENT_SHORTFALL": EventPlacementShortfall,
	"ENTITY_SPAWNED":      EventEntitySpawned,
	"ENTITY_REMOVED":      EventEntityRemoved,
	"HAZARD_STATE":        EventHazardState,
	"DAMAGE":              EventDamage,
	"HEAL":                EventHeal,
	"SCORE_DELTA":         EventScoreDelta,
	"PLAYER_MOVED":        EventPlayerMoved,
	"PLAYER_DIED":         EventPlayerDied,
	"TIME_UP":             EventTimeUp,
}

var eventTypeToString = func() map[EventType]string {
	m := make(map[EventType]string, len(eventStringToType))
	for k, v := range eventStringToType {
		m[v] = k
	}
	return m
}()

// ParseEvent конвертирует строку в EventType (регистр не важен).
func ParseEvent(s string) EventType {
	if val, ok := eventStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return EventUnknown
}

func (e EventType) String() string {
	if val, ok := eventTypeToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

func (e EventType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *EventType) UnmarshalText(b []byte) error {
	*e = ParseEvent(string(b))
	return nil
}

// Event - одно уведомление для внешних слушателей.
// Заполняются только поля, относящиеся к типу события.
type Event struct {
	Type     EventType      `json:"type"`
	Level    int            `json:"level"`
	Entity   types.EntityID `json:"entity,omitempty"`
	Kind     string         `json:"kind,omitempty"`
	Category string         `json:"category,omitempty"`
	State    string         `json:"state,omitempty"`
	Amount   int            `json:"amount,omitempty"`

	Requested int `json:"requested,omitempty"`
	Actual    int `json:"actual,omitempty"`

	Pos *Vec3 `json:"pos,omitempty"`
}

// Notifier принимает события. Вызов не должен блокировать.
type Notifier interface {
	Notify(ev Event)
}

// NotifierFunc позволяет использовать функцию как Notifier.
type NotifierFunc func(ev Event)

func (f NotifierFunc) Notify(ev Event) { f(ev) }

// NopNotifier глотает события.
type NopNotifier struct{}

func (NopNotifier) Notify(Event) {}
