// Package domain defines core content entities
package domain

import (
	"database/sql/driver"
	"fmt"
)

// Text is a string column that may be NULL in the backend. NULL reads as "".
type Text string

// Scan implements sql.Scanner.
func (t *Text) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = ""
	case string:
		*t = Text(v)
	case []byte:
		*t = Text(v)
	default:
		return fmt.Errorf("domain.Text: cannot scan %T", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (t Text) Value() (driver.Value, error) {
	return string(t), nil
}

func (t Text) String() string { return string(t) }

// Record is anything addressable by slug on a detail page.
type Record interface {
	RecordSlug() string
	RecordRegion() *int64
	Rank() int
}
