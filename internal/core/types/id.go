package types

import (
	"fmt"
	"strconv"

	"github.com/muneebk98/Maze-Adventures/internal/core/types/enums"
)

// EntityID - 64-битный идентификатор объекта уровня.
//
// Формат битов (от старших к младшим):
//
//	[ Level (8) | Type (8) | Generation (16) | Index (32) ]
//
// Generation увеличивается при каждой перегенерации уровня, поэтому ссылка
// на объект прошлого прохода не совпадет ни с одним живым ID.
type EntityID uint64

// NilEntityID - нулевой идентификатор.
const NilEntityID EntityID = 0

const (
	bitsIndex = 32
	bitsGen   = 16
	bitsType  = 8
	bitsLevel = 8

	shiftGen   = bitsIndex
	shiftType  = bitsIndex + bitsGen
	shiftLevel = bitsIndex + bitsGen + bitsType

	maskIndex = (1 << bitsIndex) - 1
	maskGen   = (1 << bitsGen) - 1
	maskType  = (1 << bitsType) - 1
	maskLevel = (1 << bitsLevel) - 1
)

// PackEntityID собирает EntityID из составных частей.
// Проверок диапазонов нет: level и gen усекаются до своих полей.
func PackEntityID(level uint8, typ enums.EntityType, gen uint16, index uint32) EntityID {
	return EntityID(
		(uint64(level) << shiftLevel) |
			(uint64(typ) << shiftType) |
			(uint64(gen) << shiftGen) |
			uint64(index),
	)
}

func (id EntityID) Index() uint32 {
	return uint32(id & maskIndex)
}

// Generation возвращает номер прохода генерации, в котором создан объект.
func (id EntityID) Generation() uint16 {
	return uint16((id >> shiftGen) & maskGen)
}

func (id EntityID) Type() enums.EntityType {
	return enums.EntityType((id >> shiftType) & maskType)
}

func (id EntityID) Level() uint8 {
	return uint8((id >> shiftLevel) & maskLevel)
}

func (id EntityID) IsNil() bool {
	return id == NilEntityID
}

// String возвращает человекочитаемое представление для логов.
func (id EntityID) String() string {
	if id.IsNil() {
		return "<nil>"
	}

	return fmt.Sprintf(
		"[lvl=%d type=%s gen=%d idx=%d]",
		id.Level(),
		id.Type(),
		id.Generation(),
		id.Index(),
	)
}

// MarshalJSON сериализует EntityID строкой, чтобы JS-клиент не терял точность.
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON принимает как строковое, так и числовое представление.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	s := string(data)

	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" {
		*id = NilEntityID
		return nil
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}

	*id = EntityID(v)
	return nil
}
