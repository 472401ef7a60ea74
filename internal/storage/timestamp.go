package storage

import (
	"fmt"
	"time"
)

// timestamp scans created_at from either backend: SQLite keeps RFC 3339 text,
// PostgreSQL returns a time.Time.
type timestamp struct {
	time.Time
}

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v
		return nil
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return fmt.Errorf("failed to parse created_at: %w", err)
		}
		t.Time = parsed
		return nil
	case []byte:
		return t.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}
