package utils

import (
	"fmt"
	"sync"
	"time"
)

var (
	idMu     sync.Mutex
	idMillis int64
	idSeq    int
)

// NextEventID returns a unique token ordered by creation: millisecond timestamp
// plus a per-process sequence that breaks ties within the same millisecond. If
// the wall clock steps backwards the previous millisecond is kept so ordering
// still holds.
func NextEventID() string {
	idMu.Lock()
	defer idMu.Unlock()
	now := time.Now().UnixMilli()
	if now > idMillis {
		idMillis = now
		idSeq = 0
	} else {
		idSeq++
	}
	return fmt.Sprintf("%d-%04d", idMillis, idSeq)
}
