package journal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry records one applied patch.
type Entry struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Start     int       `json:"start"`
	End       int       `json:"end"`
	Removed   int       `json:"removed"`
	Inserted  int       `json:"inserted"`
	BeforeSHA string    `json:"before_sha256"`
	AfterSHA  string    `json:"after_sha256"`
	AppliedAt time.Time `json:"applied_at"`
}

// NewEntry fills in a fresh ID.
func NewEntry(path string, start, end, inserted int, beforeSHA, afterSHA string, at time.Time) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Path:      path,
		Start:     start,
		End:       end,
		Removed:   end - start,
		Inserted:  inserted,
		BeforeSHA: beforeSHA,
		AfterSHA:  afterSHA,
		AppliedAt: at,
	}
}

// String renders the entry as a single log line.
func (e Entry) String() string {
	return fmt.Sprintf("%s  %s  [%d,%d)  -%d +%d  %s -> %s",
		e.AppliedAt.Format(time.RFC3339), e.Path, e.Start, e.End,
		e.Removed, e.Inserted, short(e.BeforeSHA), short(e.AfterSHA))
}

func short(sha string) string {
	if len(sha) > 12 {
		return sha[:12]
	}
	return sha
}
