package engine

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/muneebk98/Maze-Adventures/internal/domain"
	"github.com/muneebk98/Maze-Adventures/pkg/api"
)

// CommandType - внутренний числовой идентификатор команды
type CommandType uint8

const (
	CommandUnknown CommandType = iota
	CommandMove
	CommandExit
	CommandRestart
)

var commandStringToType = map[string]CommandType{
	api.ActionMove:    CommandMove,
	api.ActionExit:    CommandExit,
	api.ActionRestart: CommandRestart,
}

func (c CommandType) String() string {
	for k, v := range commandStringToType {
		if v == c {
			return k
		}
	}
	return "UNKNOWN"
}

// Command - команда, дошедшая до игрового цикла.
type Command struct {
	Type   CommandType
	Target domain.Vec3
	// Source - кто прислал (ID подписчика), для логов.
	Source string
}

// ParseCommand проверяет и переводит команду клиента во внутреннюю.
func ParseCommand(source string, c api.ClientCommand) (Command, error) {
	if err := c.Validate(); err != nil {
		return Command{}, err
	}

	cmd := Command{Type: commandStringToType[strings.ToUpper(c.Action)], Source: source}
	if cmd.Type == CommandMove {
		var p api.MovePayload
		if err := json.Unmarshal(c.Payload, &p); err != nil {
			return Command{}, fmt.Errorf("move payload: %w", err)
		}
		cmd.Target = p.Vec()
	}
	return cmd, nil
}
