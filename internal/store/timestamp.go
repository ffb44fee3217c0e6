package store

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrConvertingValueIntoTimestamp is returned when a value cannot be converted into a timestamp.
var ErrConvertingValueIntoTimestamp = errors.New("cannot convert value into timestamp")

// timestamp is a time with millisecond precision, stored as an INTEGER column.
//
//nolint:recvcheck // Mixing pointer receivers and value receivers is needed here because we are implementing sql.Scanner and driver.Valuer.
type timestamp time.Time

// Scan converts a value to a timestamp.
// Currently, only int64 values are supported.
func (t *timestamp) Scan(value any) error {
	if value == nil {
		*t = timestamp(time.Time{})

		return nil
	}

	ms, ok := value.(int64)
	if !ok {
		return fmt.Errorf("%w: %T", ErrConvertingValueIntoTimestamp, value)
	}

	*t = timestamp(time.UnixMilli(ms).UTC())

	return nil
}

// Value converts a timestamp to a value suitable for database storage.
func (t timestamp) Value() (driver.Value, error) {
	return time.Time(t).UnixMilli(), nil
}
