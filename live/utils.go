package live

import (
	"math/rand"

	"time"
)

// 乱数はユーザーIDの採番に使用
func CreateLocalRandGenerator() *rand.Rand {
	source := rand.NewSource(time.Now().UnixNano())
	return rand.New(source)
}
