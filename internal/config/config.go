// Package config - параметры запуска: уровни, количества, веса, тайминги ловушек.
// Все значения статичны на время запуска.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/muneebk98/Maze-Adventures/internal/core/types/enums"
	"github.com/muneebk98/Maze-Adventures/internal/domain"
)

// Config хранит параметры запуска игры
type Config struct {
	// Seed - мастер-зерно. 0 - случайное при старте.
	Seed     int64  `yaml:"seed" json:"seed"`
	TickRate int    `yaml:"tick_rate" json:"tick_rate"`
	Port     string `yaml:"port" json:"port"`

	Maze       MazeConfig         `yaml:"maze" json:"maze"`
	Levels     []domain.LevelSize `yaml:"levels" json:"levels"`
	Scoreboard ScoreboardConfig   `yaml:"scoreboard" json:"scoreboard"`
	Pickups    PickupConfig       `yaml:"pickups" json:"pickups"`
	Healing    HealingConfig      `yaml:"healing" json:"healing"`
	Hazards    HazardConfig       `yaml:"hazards" json:"hazards"`
}

type MazeConfig struct {
	CellWidth  float64 `yaml:"cell_width" json:"cell_width"`
	CellHeight float64 `yaml:"cell_height" json:"cell_height"`
	GapEnabled bool    `yaml:"gap_enabled" json:"gap_enabled"`
	// Braid - доля тупиков, которые пробиваются для циклов (0..1).
	Braid      float64 `yaml:"braid" json:"braid"`
	ExitRadius float64 `yaml:"exit_radius" json:"exit_radius"`
}

type ScoreboardConfig struct {
	MaxHealth    int     `yaml:"max_health" json:"max_health"`
	TimeLimit    float64 `yaml:"time_limit" json:"time_limit"`
	RestartDelay float64 `yaml:"restart_delay" json:"restart_delay"`
	PlayerSpeed  float64 `yaml:"player_speed" json:"player_speed"`
}

type PickupConfig struct {
	Count          int     `yaml:"count" json:"count"`
	Item           string  `yaml:"item" json:"item"`
	MinDistance    float64 `yaml:"min_distance" json:"min_distance"`
	StartClearance float64 `yaml:"start_clearance" json:"start_clearance"`
	ExitClearance  float64 `yaml:"exit_clearance" json:"exit_clearance"`
	CollectRadius  float64 `yaml:"collect_radius" json:"collect_radius"`
}

type HealingConfig struct {
	Count           int     `yaml:"count" json:"count"`
	Item            string  `yaml:"item" json:"item"`
	HealAmount      int     `yaml:"heal_amount" json:"heal_amount"`
	MinDistance     float64 `yaml:"min_distance" json:"min_distance"`
	StartClearance  float64 `yaml:"start_clearance" json:"start_clearance"`
	ExitClearance   float64 `yaml:"exit_clearance" json:"exit_clearance"`
	HazardClearance float64 `yaml:"hazard_clearance" json:"hazard_clearance"`
	PickupClearance float64 `yaml:"pickup_clearance" json:"pickup_clearance"`
	CollectRadius   float64 `yaml:"collect_radius" json:"collect_radius"`
}

type HazardConfig struct {
	Difficulty      domain.Difficulty `yaml:"difficulty" json:"difficulty"`
	MinDistance     float64           `yaml:"min_distance" json:"min_distance"`
	SafeRadius      float64           `yaml:"safe_radius" json:"safe_radius"`
	PickupClearance float64           `yaml:"pickup_clearance" json:"pickup_clearance"`
	// Weights - порядок важен: по нему идет накопление веса.
	Weights []CategoryWeight `yaml:"weights" json:"weights"`
	// Templates - имена конкретных ловушек; категория определяется по подстроке имени.
	Templates []string                 `yaml:"templates" json:"templates"`
	Profiles  map[string]HazardProfile `yaml:"profiles" json:"profiles"`
	Rules     map[string][]string      `yaml:"rules" json:"rules"`
}

type CategoryWeight struct {
	Category string `yaml:"category" json:"category"`
	Weight   int    `yaml:"weight" json:"weight"`
}

// HazardProfile - тайминги в секундах.
type HazardProfile struct {
	Damage             int     `yaml:"damage" json:"damage"`
	Mode               string  `yaml:"mode" json:"mode" jsonschema:"enum=timed,enum=proximity"`
	ArmDelay           float64 `yaml:"arm_delay" json:"arm_delay"`
	ActiveDuration     float64 `yaml:"active_duration" json:"active_duration"`
	ResetDuration      float64 `yaml:"reset_duration" json:"reset_duration"`
	ActivationDistance float64 `yaml:"activation_distance" json:"activation_distance"`
	HitRadius          float64 `yaml:"hit_radius" json:"hit_radius"`
}

// Domain переводит профиль в доменный тип.
func (p HazardProfile) Domain() domain.HazardProfile {
	return domain.HazardProfile{
		Damage:             p.Damage,
		ArmDelay:           Seconds(p.ArmDelay),
		ActiveDuration:     Seconds(p.ActiveDuration),
		ResetDuration:      Seconds(p.ResetDuration),
		Mode:               enums.ParseActivationMode(p.Mode),
		ActivationDistance: p.ActivationDistance,
		HitRadius:          p.HitRadius,
	}
}

// Seconds переводит секунды из файла в time.Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Default - параметры по умолчанию: шесть уровней от 5x5 до 10x10.
func Default() Config {
	levels := make([]domain.LevelSize, 0, 6)
	for n := 5; n <= 10; n++ {
		levels = append(levels, domain.LevelSize{Rows: n, Columns: n})
	}

	return Config{
		TickRate: 30,
		Port:     "8080",
		Maze: MazeConfig{
			CellWidth:  4,
			CellHeight: 4,
			GapEnabled: true,
			ExitRadius: 1.5,
		},
		Levels: levels,
		Scoreboard: ScoreboardConfig{
			MaxHealth:    100,
			TimeLimit:    60,
			RestartDelay: 2,
			PlayerSpeed:  4,
		},
		Pickups: PickupConfig{
			Count:          10,
			Item:           "Orb",
			MinDistance:    1,
			StartClearance: 1,
			ExitClearance:  1,
			CollectRadius:  1,
		},
		Healing: HealingConfig{
			Count:           2,
			Item:            "Heart",
			HealAmount:      25,
			MinDistance:     3,
			StartClearance:  5,
			ExitClearance:   5,
			HazardClearance: 1,
			PickupClearance: 1,
			CollectRadius:   1,
		},
		Hazards: HazardConfig{
			Difficulty:      domain.Difficulty{Base: 5, PerLevel: 2},
			MinDistance:     2,
			SafeRadius:      5,
			PickupClearance: 0.5,
			Weights: []CategoryWeight{
				{Category: "spike", Weight: 30},
				{Category: "guillotine", Weight: 45},
				{Category: "swing", Weight: 25},
			},
			Templates: []string{"Spike Trap", "Gyotine Trap", "Swinging Axe"},
			Rules: map[string][]string{
				"spike":      {"spike"},
				"guillotine": {"gyotine", "guillotine"},
				"swing":      {"swing"},
			},
			Profiles: map[string]HazardProfile{
				"spike": {
					Damage: 15, Mode: "proximity", ArmDelay: 0.5, ActiveDuration: 2, ResetDuration: 2,
					ActivationDistance: 2, HitRadius: 1,
				},
				"guillotine": {Damage: 30, Mode: "timed", ArmDelay: 0.5, ActiveDuration: 2, ResetDuration: 2, HitRadius: 1},
				"swing":      {Damage: 30, Mode: "timed", ArmDelay: 0.5, ActiveDuration: 2, ResetDuration: 3, HitRadius: 1},
				"other":      {Damage: 20, Mode: "timed", ArmDelay: 0.5, ActiveDuration: 2, ResetDuration: 2, HitRadius: 1},
			},
		},
	}
}

// Load накладывает YAML-файл поверх Default и применяет переменные окружения.
// Пустой path - только значения по умолчанию и окружение.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if port := os.Getenv("MAZE_PORT"); port != "" {
		c.Port = port
	}
	if raw := os.Getenv("MAZE_SEED"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("MAZE_SEED: %w", err)
		}
		c.Seed = seed
	}
	return nil
}

// Profile возвращает профиль категории, для неизвестной - профиль "other".
func (c *Config) Profile(cat enums.HazardCategory) domain.HazardProfile {
	if p, ok := c.Hazards.Profiles[cat.String()]; ok {
		return p.Domain()
	}
	return c.Hazards.Profiles[enums.HazardOther.String()].Domain()
}

// Validate проверяет согласованность. Ошибки собираются все сразу.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.TickRate <= 0 {
		bad("tick_rate must be positive, got %d", c.TickRate)
	}
	if len(c.Levels) == 0 {
		bad("levels: at least one level required")
	}
	if len(c.Levels) > 256 {
		bad("levels: at most 256 levels supported, got %d", len(c.Levels))
	}
	for i, l := range c.Levels {
		if l.Rows < 1 || l.Columns < 1 {
			bad("levels[%d]: size %dx%d is not positive", i, l.Rows, l.Columns)
		}
	}
	if c.Maze.CellWidth <= 0 || c.Maze.CellHeight <= 0 {
		bad("maze: cell size must be positive")
	}
	if c.Scoreboard.MaxHealth <= 0 || c.Scoreboard.TimeLimit <= 0 {
		bad("scoreboard: max_health and time_limit must be positive")
	}
	if c.Scoreboard.RestartDelay < 0 {
		bad("scoreboard: restart_delay must not be negative")
	}

	if c.Pickups.Count < 0 || c.Healing.Count < 0 {
		bad("pickups/healing: count must not be negative")
	}
	if c.Hazards.Difficulty.Base < 0 || c.Hazards.Difficulty.PerLevel < 0 {
		bad("hazards.difficulty: base and per_level must not be negative")
	}
	for name, v := range map[string]float64{
		"pickups.min_distance":     c.Pickups.MinDistance,
		"pickups.start_clearance":  c.Pickups.StartClearance,
		"pickups.exit_clearance":   c.Pickups.ExitClearance,
		"healing.min_distance":     c.Healing.MinDistance,
		"healing.start_clearance":  c.Healing.StartClearance,
		"healing.exit_clearance":   c.Healing.ExitClearance,
		"healing.hazard_clearance": c.Healing.HazardClearance,
		"healing.pickup_clearance": c.Healing.PickupClearance,
		"hazards.min_distance":     c.Hazards.MinDistance,
		"hazards.safe_radius":      c.Hazards.SafeRadius,
		"hazards.pickup_clearance": c.Hazards.PickupClearance,
	} {
		if v < 0 {
			bad("%s must not be negative, got %v", name, v)
		}
	}

	total := 0
	for _, w := range c.Hazards.Weights {
		if _, err := enums.ParseHazardCategory(w.Category); err != nil {
			bad("hazards.weights: %v", err)
		}
		if w.Weight < 0 {
			bad("hazards.weights: %s has negative weight", w.Category)
		}
		total += w.Weight
	}
	if total <= 0 {
		bad("hazards.weights: total weight must be positive: %w", domain.ErrInvalidWeights)
	}
	for cat := range c.Hazards.Rules {
		if _, err := enums.ParseHazardCategory(cat); err != nil {
			bad("hazards.rules: %v", err)
		}
	}

	if _, ok := c.Hazards.Profiles[enums.HazardOther.String()]; !ok {
		bad("hazards.profiles: profile %q is required", enums.HazardOther)
	}
	for name, p := range c.Hazards.Profiles {
		if _, err := enums.ParseHazardCategory(name); err != nil {
			bad("hazards.profiles: %v", err)
		}
		if p.Mode != "timed" && p.Mode != "proximity" {
			bad("hazards.profiles.%s: unknown mode %q", name, p.Mode)
		}
		if p.Damage < 0 || p.ArmDelay < 0 || p.ActiveDuration < 0 || p.ResetDuration < 0 {
			bad("hazards.profiles.%s: negative value", name)
		}
		if p.ArmDelay+p.ActiveDuration+p.ResetDuration <= 0 {
			bad("hazards.profiles.%s: cycle duration must be positive", name)
		}
	}

	return errors.Join(errs...)
}
