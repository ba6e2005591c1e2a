package server

import (
	"encoding/json"
	"net/http"

	"github.com/muneebk98/Maze-Adventures/internal/engine"
)

// DebugHandler открывает внутреннее состояние игры только на чтение.
type DebugHandler struct {
	Game *engine.Game
}

func NewDebugHandler(g *engine.Game) *DebugHandler {
	return &DebugHandler{Game: g}
}

func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/level", h.handleLevel)
	mux.HandleFunc("/debug/hazards", h.handleHazards)
	mux.HandleFunc("/debug/reports", h.handleReports)
}

// /debug/level - полный снимок уровня
func (h *DebugHandler) handleLevel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Game.Snapshot())
}

// /debug/hazards - состояния ловушек, включая счетчик попаданий
func (h *DebugHandler) handleHazards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Game.Statuses())
}

// /debug/reports - итоги последнего прохода расстановки
func (h *DebugHandler) handleReports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Game.Reports())
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
