package enums

import "strings"

// HazardState - фаза цикла ловушки.
// Idle -> Arming -> Active -> Cooling -> Idle
type HazardState uint8

const (
	HazardIdle HazardState = iota
	HazardArming
	HazardActive
	HazardCooling
)

var hazardStateToString = map[HazardState]string{
	HazardIdle:    "IDLE",
	HazardArming:  "ARMING",
	HazardActive:  "ACTIVE",
	HazardCooling: "COOLING",
}

func (s HazardState) String() string {
	if val, ok := hazardStateToString[s]; ok {
		return val
	}
	return "UNKNOWN"
}

// Next возвращает следующую фазу цикла.
func (s HazardState) Next() HazardState {
	switch s {
	case HazardIdle:
		return HazardArming
	case HazardArming:
		return HazardActive
	case HazardActive:
		return HazardCooling
	default:
		return HazardIdle
	}
}

// ActivationMode определяет, что запускает цикл ловушки.
type ActivationMode uint8

const (
	// ModeTimedCycle - цикл крутится сам по себе.
	ModeTimedCycle ActivationMode = iota
	// ModeProximityTriggered - цикл стартует, когда игрок подошел ближе ActivationDistance.
	ModeProximityTriggered
)

var activationModeToString = map[ActivationMode]string{
	ModeTimedCycle:         "timed",
	ModeProximityTriggered: "proximity",
}

func (m ActivationMode) String() string {
	if val, ok := activationModeToString[m]; ok {
		return val
	}
	return "unknown"
}

// ParseActivationMode конвертирует строку в режим. Неизвестное значение - TimedCycle.
func ParseActivationMode(s string) ActivationMode {
	if strings.EqualFold(s, "proximity") {
		return ModeProximityTriggered
	}
	return ModeTimedCycle
}

func (m ActivationMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *ActivationMode) UnmarshalText(b []byte) error {
	*m = ParseActivationMode(string(b))
	return nil
}
