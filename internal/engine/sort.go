package engine

import (
	"math"
	"sort"
	"time"

	"github.com/tartampluch/pet-reminder/internal/config"
)

// SortBirthdays returns a copy ordered by days until the next occurrence.
// Malformed records sort last. Ties keep input order.
func SortBirthdays(today time.Time, records []BirthdayRecord) []BirthdayRecord {
	keys := make([]int, len(records))
	for i, b := range records {
		days, err := DaysUntilBirthday(today, b)
		if err != nil {
			days = math.MaxInt
		}
		keys[i] = days
	}
	return stableSortByKey(records, keys)
}

// SortEvents returns a copy ordered by days until the event.
// Past and malformed events share config.PastEventSortKey and so sink to the end.
func SortEvents(today time.Time, records []EventRecord) []EventRecord {
	keys := make([]int, len(records))
	for i, e := range records {
		days, err := DaysUntilEvent(today, e)
		if err != nil || days < 0 {
			days = config.PastEventSortKey
		}
		keys[i] = days
	}
	return stableSortByKey(records, keys)
}

func stableSortByKey[T any](records []T, keys []int) []T {
	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return keys[idx[i]] < keys[idx[j]]
	})

	out := make([]T, len(records))
	for i, k := range idx {
		out[i] = records[k]
	}
	return out
}
