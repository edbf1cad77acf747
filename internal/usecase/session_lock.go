package usecase

import (
	"hash/fnv"
	"sync"
)

const sessionLockStripes = 64

// sessionLocks сериализует изменения корзины одной сессии между параллельными запросами.
// Сессии распределяются по фиксированному набору мьютексов.
type sessionLocks struct {
	stripes [sessionLockStripes]sync.Mutex
}

func (l *sessionLocks) lock(sessionID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))

	mu := &l.stripes[h.Sum32()%sessionLockStripes]
	mu.Lock()

	return mu.Unlock
}
