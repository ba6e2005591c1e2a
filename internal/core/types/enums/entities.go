package enums

import (
	"fmt"
	"strings"
)

// EntityType - вид объекта в лабиринте. Используется как ключ индекса мира
// и как поле Type в EntityID.
type EntityType uint8

const (
	EntityTypeUnknown EntityType = iota
	EntityTypeFloor
	EntityTypePlayer
	EntityTypeExit
	EntityTypePickup
	EntityTypeHealing
	EntityTypeHazard
)

var entityTypeToString = map[EntityType]string{
	EntityTypeFloor:   "FLOOR",
	EntityTypePlayer:  "PLAYER",
	EntityTypeExit:    "EXIT",
	EntityTypePickup:  "PICKUP",
	EntityTypeHealing: "HEALING",
	EntityTypeHazard:  "HAZARD",
}

var entityTypeStringToType = map[string]EntityType{
	"FLOOR":   EntityTypeFloor,
	"PLAYER":  EntityTypePlayer,
	"EXIT":    EntityTypeExit,
	"PICKUP":  EntityTypePickup,
	"HEALING": EntityTypeHealing,
	"HAZARD":  EntityTypeHazard,
}

// String возвращает строковое представление (для логов и дебага)
func (e EntityType) String() string {
	if val, ok := entityTypeToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseEntityType конвертирует строку в Enum (нужно для загрузки конфигов)
func ParseEntityType(s string) EntityType {
	upper := strings.ToUpper(s)
	if val, ok := entityTypeStringToType[upper]; ok {
		return val
	}
	return EntityTypeUnknown
}

func (e EntityType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText принимает имя вида без учета регистра. Неизвестное имя - ошибка.
func (e *EntityType) UnmarshalText(b []byte) error {
	v := ParseEntityType(string(b))
	if v == EntityTypeUnknown && !strings.EqualFold(string(b), "UNKNOWN") {
		return fmt.Errorf("unknown entity type %q", b)
	}
	*e = v
	return nil
}
