package docstore

import "time"

// Timestamp is the store's opaque time type. It serializes as RFC3339 UTC,
// which keeps lexicographic field ordering equal to chronological ordering
// across backends.
type Timestamp struct {
	time.Time
}

// Now returns the current time as a Timestamp.
func Now() Timestamp {
	return Timestamp{Time: time.Now().UTC().Truncate(time.Second)}
}

// At wraps an explicit time, normalized to UTC.
func At(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Second)}
}

// Seconds yields the epoch-seconds value of the timestamp. A zero
// Timestamp yields 0, which sorts before every real record.
func (t Timestamp) Seconds() int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
