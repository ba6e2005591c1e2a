package enums

import (
	"fmt"
	"strings"
)

// HazardCategory - категория ловушки. Определяется по имени шаблона.
type HazardCategory uint8

const (
	HazardOther HazardCategory = iota
	HazardSpike
	HazardGuillotine
	HazardSwing
)

var hazardCategoryToString = map[HazardCategory]string{
	HazardOther:      "other",
	HazardSpike:      "spike",
	HazardGuillotine: "guillotine",
	HazardSwing:      "swing",
}

var hazardCategoryStringToType = map[string]HazardCategory{
	"other":      HazardOther,
	"spike":      HazardSpike,
	"guillotine": HazardGuillotine,
	"swing":      HazardSwing,
}

// HazardCategories - все категории в каноническом порядке.
var HazardCategories = []HazardCategory{HazardSpike, HazardGuillotine, HazardSwing, HazardOther}

func (c HazardCategory) String() string {
	if val, ok := hazardCategoryToString[c]; ok {
		return val
	}
	return "other"
}

// ParseHazardCategory конвертирует строку в категорию.
func ParseHazardCategory(s string) (HazardCategory, error) {
	if val, ok := hazardCategoryStringToType[strings.ToLower(strings.TrimSpace(s))]; ok {
		return val, nil
	}
	return HazardOther, fmt.Errorf("unknown hazard category %q", s)
}

func (c HazardCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *HazardCategory) UnmarshalText(b []byte) error {
	v, err := ParseHazardCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
