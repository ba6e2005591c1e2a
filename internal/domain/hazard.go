package domain

import (
	"time"

	"github.com/muneebk98/Maze-Adventures/internal/core/types/enums"
)

// HazardProfile - параметры цикла ловушки одной категории.
type HazardProfile struct {
	Damage         int                  `json:"damage"`
	ArmDelay       time.Duration        `json:"armDelay"`
	ActiveDuration time.Duration        `json:"activeDuration"`
	ResetDuration  time.Duration        `json:"resetDuration"`
	Mode           enums.ActivationMode `json:"mode"`

	// ActivationDistance используется только в режиме ModeProximityTriggered.
	ActivationDistance float64 `json:"activationDistance"`
	// HitRadius - на каком расстоянии игрок считается задетым.
	HitRadius float64 `json:"hitRadius"`
}
