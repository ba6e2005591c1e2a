package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/muneebk98/Maze-Adventures/internal/domain"
	"github.com/muneebk98/Maze-Adventures/internal/level"
	"github.com/muneebk98/Maze-Adventures/pkg/logger"
)

const (
	MagicHeader string = `MZLV` // 4 байта
	Version1    uint32 = 1
	Extension          = ".mzl"
)

// FileHeader - точное представление заголовка файла.
// binary.Write пишет его целиком: только массивы и числа.
type FileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4
	Seed        int64   // 8
	Timestamp   int64   // 8
	Level       int32   // 4
	Generation  uint16  // 2
	Rows        uint16  // 2
	Columns     uint16  // 2
	_           uint16  // 2, выравнивание
	RecordCount int32   // 4
}

// RecordHeader - заголовок одной расстановки. За ним идут ItemLen байт имени.
type RecordHeader struct {
	ID       uint64 // 8
	Kind     uint8  // 1
	Category uint8  // 1
	ItemLen  uint8  // 1
	_        uint8  // 1
	X, Y, Z  float64
	Yaw      float64
}

// Snapshot - расстановка одного прохода генерации.
type Snapshot struct {
	Seed       int64
	Timestamp  int64
	Level      int
	Generation uint16
	Rows       int
	Columns    int
	Records    []domain.PlacementRecord
}

// SnapshotService складывает снимки уровней в каталог.
type SnapshotService struct {
	SaveDir string
	now     func() time.Time
	log     *logrus.Entry
}

func NewSnapshotService(dir string) (*SnapshotService, error) {
	// Создаем папку если нет
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &SnapshotService{
		SaveDir: dir,
		now:     time.Now,
		log:     logger.Component("storage"),
	}, nil
}

// SaveLevel пишет снимок после генерации уровня.
func (s *SnapshotService) SaveLevel(seed int64, gen level.Generated, records []domain.PlacementRecord) error {
	snap := &Snapshot{
		Seed:      seed,
		Timestamp: s.now().Unix(),
		Level:     gen.Index,
		Rows:      gen.Layout.Rows,
		Columns:   gen.Layout.Columns,
		Records:   records,
	}
	if len(records) > 0 {
		snap.Generation = records[0].ID.Generation()
	}
	_, err := s.Save(snap)
	return err
}

// Save пишет снимок и возвращает путь к файлу.
func (s *SnapshotService) Save(snap *Snapshot) (string, error) {
	filename := fmt.Sprintf("level_%d_lvl%d_gen%d_%d%s", snap.Seed, snap.Level, snap.Generation, snap.Timestamp, Extension)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeBinary(w, snap); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", err
	}

	s.log.WithFields(logrus.Fields{
		"path":        path,
		"level_index": snap.Level,
		"records":     len(snap.Records),
	}).Debug("Level snapshot saved")
	return path, nil
}

func writeBinary(w io.Writer, s *Snapshot) error {
	if s.Rows > math.MaxUint16 || s.Columns > math.MaxUint16 {
		return fmt.Errorf("maze too large: %dx%d", s.Rows, s.Columns)
	}

	header := FileHeader{
		Version:     Version1,
		Seed:        s.Seed,
		Timestamp:   s.Timestamp,
		Level:       int32(s.Level),
		Generation:  s.Generation,
		Rows:        uint16(s.Rows),
		Columns:     uint16(s.Columns),
		RecordCount: int32(len(s.Records)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, rec := range s.Records {
		item := []byte(rec.Item)
		if len(item) > 255 {
			return fmt.Errorf("item name too long: %d", len(item))
		}

		rh := RecordHeader{
			ID:       uint64(rec.ID),
			Kind:     uint8(rec.Kind),
			Category: uint8(rec.Category),
			ItemLen:  uint8(len(item)),
			X:        rec.Pos.X,
			Y:        rec.Pos.Y,
			Z:        rec.Pos.Z,
			Yaw:      rec.Yaw,
		}
		if err := binary.Write(w, binary.LittleEndian, &rh); err != nil {
			return err
		}
		if _, err := w.Write(item); err != nil {
			return err
		}
	}
	return nil
}
