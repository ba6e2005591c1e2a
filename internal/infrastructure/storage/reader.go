package storage

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/muneebk98/Maze-Adventures/internal/core/types"
	"github.com/muneebk98/Maze-Adventures/internal/core/types/enums"
	"github.com/muneebk98/Maze-Adventures/internal/domain"
)

var ErrInvalidMagic = errors.New("invalid magic")

// Load читает снимок уровня из файла.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(bufio.NewReader(f))
}

func readBinary(r io.Reader) (*Snapshot, error) {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, ErrInvalidMagic
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	if header.RecordCount < 0 {
		return nil, fmt.Errorf("negative record count: %d", header.RecordCount)
	}

	snap := &Snapshot{
		Seed:       header.Seed,
		Timestamp:  header.Timestamp,
		Level:      int(header.Level),
		Generation: header.Generation,
		Rows:       int(header.Rows),
		Columns:    int(header.Columns),
		Records:    make([]domain.PlacementRecord, 0, header.RecordCount),
	}

	for i := 0; i < int(header.RecordCount); i++ {
		var rh RecordHeader
		if err := binary.Read(r, binary.LittleEndian, &rh); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		item := make([]byte, rh.ItemLen)
		if _, err := io.ReadFull(r, item); err != nil {
			return nil, fmt.Errorf("record %d item: %w", i, err)
		}

		snap.Records = append(snap.Records, domain.PlacementRecord{
			ID:       types.EntityID(rh.ID),
			Kind:     enums.EntityType(rh.Kind),
			Category: enums.HazardCategory(rh.Category),
			Item:     string(item),
			Pos:      domain.Vec3{X: rh.X, Y: rh.Y, Z: rh.Z},
			Yaw:      rh.Yaw,
		})
	}
	return snap, nil
}
