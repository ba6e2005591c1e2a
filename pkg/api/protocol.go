package api

import (
	"encoding/json"

	"github.com/muneebk98/Maze-Adventures/internal/domain"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы сообщений сервера.
const (
	MsgEvent    = "EVENT"
	MsgSnapshot = "SNAPSHOT"
	MsgError    = "ERROR"
)

// ServerMessage это корневой объект, который сервер отправляет клиенту.
type ServerMessage struct {
	// Type - MsgEvent, MsgSnapshot или MsgError.
	Type string `json:"type"`

	// Tick номер тика игрового цикла, на котором сообщение сформировано.
	Tick uint64 `json:"tick"`

	Event    *domain.Event `json:"event,omitempty"`
	Snapshot *LevelView    `json:"snapshot,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// LevelView - полный снимок уровня. Отправляется при подключении и после генерации.
type LevelView struct {
	Level      int     `json:"level"`
	LevelCount int     `json:"levelCount"`
	Phase      string  `json:"phase"`
	Rows       int     `json:"rows"`
	Columns    int     `json:"columns"`
	CellWidth  float64 `json:"cellWidth"`
	CellHeight float64 `json:"cellHeight"`
	Gap        float64 `json:"gap"`

	Start  domain.Vec3 `json:"start"`
	Exit   domain.Vec3 `json:"exit"`
	Player domain.Vec3 `json:"player"`

	Score      int   `json:"score"`
	Health     int   `json:"health"`
	TimeLeftMs int64 `json:"timeLeftMs"`

	Entities []domain.PlacementRecord `json:"entities"`
	Hazards  []HazardView             `json:"hazards"`
}

// HazardView - состояние одной ловушки.
type HazardView struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	State     string `json:"state"`
	CanDamage bool   `json:"canDamage"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// Действия клиента.
const (
	ActionMove    = "MOVE"
	ActionExit    = "EXIT"
	ActionRestart = "RESTART"
)

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия: MOVE, EXIT, RESTART.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MovePayload - куда игрок хочет переместиться (мировые координаты).
type MovePayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (p MovePayload) Vec() domain.Vec3 {
	return domain.Vec3{X: p.X, Y: p.Y, Z: p.Z}
}
