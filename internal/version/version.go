package version

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"time"
)

// Заполняются через -ldflags "-X".
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// Номер сборки - число дней от первого релиза лабиринта.
var buildEpoch = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

type VersionInfo struct {
	BuildID    int    `json:"build_id"`
	BuildDate  string `json:"build_date"`
	Commit     string `json:"commit"`
	Branch     string `json:"branch"`
	CI         string `json:"ci"`
	Calculated bool   `json:"calculated"`
	Error      string `json:"error,omitempty"`

	Runtime *Runtime `json:"runtime,omitempty"`
}

// Runtime - параметры запущенной игры. Одинаковый отпечаток дает
// одинаковую последовательность уровней.
type Runtime struct {
	Seed        int64  `json:"seed"`
	Levels      int    `json:"levels"`
	Fingerprint string `json:"fingerprint"`
}

// Fingerprint - FNV-1a от seed и сериализованного конфига.
func Fingerprint(seed int64, config []byte) string {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(seed))

	h := fnv.New64a()
	_, _ = h.Write(buf[:])
	_, _ = h.Write(config)
	return fmt.Sprintf("mz-%016x", h.Sum64())
}

// Describe - Info вместе с параметрами игры.
func Describe(rt Runtime) VersionInfo {
	info := Info()
	info.Runtime = &rt
	return info
}

func CalculateBuildID() (int, error) {
	return buildID(BuildDate)
}

func buildID(date string) (int, error) {
	if date == "" {
		return 0, fmt.Errorf("BuildDate is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid BuildDate %q: %w", date, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("BuildDate %s is before epoch", date)
	}

	// Обе даты в UTC, часы без сюрпризов DST.
	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Info - сведения о сборке. Можно вызывать в любой момент.
func Info() VersionInfo {
	info := VersionInfo{
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
		CI:        BuildCI,
	}

	id, err := CalculateBuildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.BuildID = id
	info.Calculated = true
	return info
}

func String() string {
	info := Info()
	if !info.Calculated {
		return fmt.Sprintf("Maze Adventures build unknown (%s)", info.Error)
	}
	return fmt.Sprintf(
		"Maze Adventures build %d (%s) commit[%s] branch[%s] ci[%s]",
		info.BuildID,
		info.BuildDate,
		coalesce(info.Commit, "unknown"),
		coalesce(info.Branch, "unknown"),
		coalesce(info.CI, "local"),
	)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
