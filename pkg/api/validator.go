package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p MovePayload) Validate() error {
	for _, v := range []float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("position must be finite")
		}
	}
	return nil
}

func (c ClientCommand) Validate() error {
	switch strings.ToUpper(c.Action) {
	case ActionMove:
		var p MovePayload
		if err := json.Unmarshal(c.Payload, &p); err != nil {
			return fmt.Errorf("move payload: %w", err)
		}
		return p.Validate()
	case ActionExit, ActionRestart:
		return nil
	case "":
		return errors.New("action is required")
	default:
		return fmt.Errorf("unknown action %q", c.Action)
	}
}
