package set

import (
	"strings"
	"sync"

	"github.com/emirpasic/gods/sets/hashset"
)

// ThreadSafeSet guards a hashset with a RWMutex. Reads vastly outnumber
// writes: the sets are filled from config at startup and read per request.
type ThreadSafeSet struct {
	set     *hashset.Set
	rwMutex sync.RWMutex
}

func NewThreadSafeSet(items ...interface{}) *ThreadSafeSet {
	return &ThreadSafeSet{set: hashset.New(items...)}
}

// FromCSV builds a set of the trimmed, lower-cased, non-empty entries of csv.
func FromCSV(csv string) *ThreadSafeSet {
	s := NewThreadSafeSet()
	for _, item := range SplitCSV(csv) {
		s.Add(strings.ToLower(item))
	}
	return s
}

// SplitCSV returns the trimmed non-empty entries of csv in order, without duplicates.
func SplitCSV(csv string) []string {
	seen := hashset.New()
	var out []string
	for _, item := range strings.Split(csv, ",") {
		item = strings.TrimSpace(item)
		if item == "" || seen.Contains(item) {
			continue
		}
		seen.Add(item)
		out = append(out, item)
	}
	return out
}

func (t *ThreadSafeSet) Contains(items ...interface{}) bool {
	t.rwMutex.RLock()
	defer t.rwMutex.RUnlock()
	return t.set.Contains(items...)
}

func (t *ThreadSafeSet) Add(items ...interface{}) {
	t.rwMutex.Lock()
	defer t.rwMutex.Unlock()
	t.set.Add(items...)
}

func (t *ThreadSafeSet) Size() int {
	t.rwMutex.RLock()
	defer t.rwMutex.RUnlock()
	return t.set.Size()
}
