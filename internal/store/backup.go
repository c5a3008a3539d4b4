package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecarvalho/aulaplan/internal/plan"
)

// ErrInvalidBackupFormat reports a backup payload that does not parse to
// an array of lesson objects. Restore is all-or-nothing: on this error
// the existing collection is left untouched.
type ErrInvalidBackupFormat struct {
	Err error
}

func (e *ErrInvalidBackupFormat) Error() string {
	return fmt.Sprintf("invalid backup format: %v", e.Err)
}

func (e *ErrInvalidBackupFormat) Unwrap() error { return e.Err }

// ExportBackup serializes the collection as an indented JSON array.
func ExportBackup(c plan.Collection) ([]byte, error) {
	if c == nil {
		c = plan.Collection{}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal backup: %w", err)
	}
	return data, nil
}

// ImportBackup parses backup bytes into a collection. The top-level value
// must be a JSON array and every element must be a lesson object with an
// id; any violation fails the whole import.
func ImportBackup(data []byte) (plan.Collection, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ErrInvalidBackupFormat{Err: fmt.Errorf("top-level value is not an array: %w", err)}
	}

	c := make(plan.Collection, 0, len(raw))
	for i, item := range raw {
		var l plan.Lesson
		if err := json.Unmarshal(item, &l); err != nil {
			return nil, &ErrInvalidBackupFormat{Err: fmt.Errorf("entry %d is not a lesson: %w", i+1, err)}
		}
		if l.ID == "" {
			return nil, &ErrInvalidBackupFormat{Err: fmt.Errorf("entry %d has no id", i+1)}
		}
		c = append(c, l)
	}
	return c, nil
}

// BackupFilename names a backup file with the current date embedded.
func BackupFilename(now time.Time) string {
	return fmt.Sprintf("aulaplan_backup_%s.json", now.Format(plan.DateFormat))
}
