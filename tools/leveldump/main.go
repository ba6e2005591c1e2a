package main

import (
	"fmt"
	"os"
	"time"

	"github.com/muneebk98/Maze-Adventures/internal/core/types/enums"
	"github.com/muneebk98/Maze-Adventures/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 3 {
		printHelp()
		return
	}

	snap, err := storage.Load(os.Args[2])
	if err != nil {
		fmt.Printf("Failed to read snapshot: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "info":
		printInfo(snap)
	case "records":
		printInfo(snap)
		for _, rec := range snap.Records {
			cat := ""
			if rec.Kind == enums.EntityTypeHazard {
				cat = rec.Category.String()
			}
			fmt.Printf("%-40s %-8s %-10s %-14q (%6.2f, %6.2f) yaw=%3.0f\n",
				rec.ID, rec.Kind, cat, rec.Item, rec.Pos.X, rec.Pos.Z, rec.Yaw)
		}
	default:
		printHelp()
	}
}

func printInfo(s *storage.Snapshot) {
	counts := map[enums.EntityType]int{}
	for _, rec := range s.Records {
		counts[rec.Kind]++
	}
	fmt.Printf("seed=%d level=%d gen=%d maze=%dx%d saved=%s\n",
		s.Seed, s.Level, s.Generation, s.Rows, s.Columns,
		time.Unix(s.Timestamp, 0).Format(time.RFC3339))
	fmt.Printf("pickups=%d healing=%d hazards=%d\n",
		counts[enums.EntityTypePickup], counts[enums.EntityTypeHealing], counts[enums.EntityTypeHazard])
}

func printHelp() {
	fmt.Println(`Level Dump - просмотр снимков уровней (.mzl)
Commands:
  info <file>       - заголовок и количество объектов
  records <file>    - все расстановки построчно`)
}
