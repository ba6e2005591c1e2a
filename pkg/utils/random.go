package utils

import (
	"crypto/rand"
	"encoding/hex"
	"hash/fnv"
	mrand "math/rand"
	"time"
)

// GenerateID создает простой уникальный ID (замена UUID для снижения зависимостей)
func GenerateID() string {
	b := make([]byte, 8) // 16 символов hex
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate random ID: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// StringToSeed превращает строку в детерминированное зерно.
func StringToSeed(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}

// ResolveSeed возвращает seed, а для нуля - зерно от текущего времени.
func ResolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// SubsystemRNG выдает отдельный поток случайных чисел для подсистемы.
// Один и тот же master seed, уровень и метка всегда дают одну и ту же последовательность,
// поэтому порядок вызовов одной подсистемы не влияет на другие.
func SubsystemRNG(master int64, level int, label string) *mrand.Rand {
	h := fnv.New64a()
	var buf [16]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(master >> (8 * i))
		buf[8+i] = byte(int64(level) >> (8 * i))
	}
	_, _ = h.Write(buf[:])
	_, _ = h.Write([]byte(label))
	return mrand.New(mrand.NewSource(int64(h.Sum64())))
}
