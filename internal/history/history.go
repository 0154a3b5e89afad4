// Package history keeps the capped rolling log of daily overall scores.
// Each owner has at most Capacity entries, one per date, oldest first.
package history

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
)

// DefaultCapacity is the number of most recent dates kept per owner.
const DefaultCapacity = 7

// DateLayout is the format of Entry.Date.
const DateLayout = "2006-01-02"

var (
	ErrInvalidEntry  = errors.New("history: invalid entry")
	ErrUnknownDriver = errors.New("history: unknown driver")
)

// Entry is one day's overall score.
type Entry struct {
	ID         string    `json:"id"`
	Date       string    `json:"date"`
	Score      int       `json:"score"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Store is an append-only capped log keyed by date. Appending a second entry
// for a date replaces the first. Implementations are safe for concurrent use.
type Store interface {
	Append(ctx context.Context, owner string, e Entry) error
	Recent(ctx context.Context, owner string) ([]Entry, error)
	Close() error
}

// NewEntry builds an entry for the calendar day of at.
func NewEntry(at time.Time, score int) Entry {
	return Entry{
		ID:         ulid.Make().String(),
		Date:       at.Format(DateLayout),
		Score:      score,
		RecordedAt: at.UTC(),
	}
}

// Validate checks the entry's date format and score range.
func (e Entry) Validate() error {
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return fmt.Errorf("%w: date %q: %v", ErrInvalidEntry, e.Date, err)
	}
	if e.Score < 0 || e.Score > 100 {
		return fmt.Errorf("%w: score %d out of range", ErrInvalidEntry, e.Score)
	}
	return nil
}

// merge inserts e into entries and keeps only the capacity most recent
// dates, oldest first. An entry for a date already present updates its score
// and RecordedAt and keeps the existing ID.
func merge(entries []Entry, e Entry, capacity int) []Entry {
	out := make([]Entry, 0, len(entries)+1)
	for _, existing := range entries {
		if existing.Date == e.Date {
			e.ID = existing.ID
			continue
		}
		out = append(out, existing)
	}
	if e.ID == "" {
		e.ID = ulid.Make().String()
	}
	out = append(out, e)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	if len(out) > capacity {
		out = out[len(out)-capacity:]
	}
	return out
}

func normalizeCapacity(capacity int) int {
	if capacity <= 0 {
		return DefaultCapacity
	}
	return capacity
}

// Options selects and configures a Store backend.
type Options struct {
	Driver   string
	Path     string
	DSN      string
	Capacity int
}

// Open returns the Store named by opts.Driver: memory, file, sqlite or postgres.
func Open(opts Options) (Store, error) {
	switch opts.Driver {
	case "", "memory":
		return NewMemoryStore(opts.Capacity), nil
	case "file":
		return NewFileStore(opts.Path, opts.Capacity)
	case "sqlite", "postgres":
		return OpenGorm(opts.Driver, opts.DSN, opts.Capacity)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
}
