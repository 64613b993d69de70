package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// LocalTime is a time that serializes as "YYYY-MM-DD HH:MM:SS".
type LocalTime time.Time

const timeFormat = "2006-01-02 15:04:05"

// MarshalJSON implements json.Marshaler.
func (t LocalTime) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", time.Time(t).Format(timeFormat))), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *LocalTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*t = LocalTime(time.Time{})
		return nil
	}
	parsed, err := time.ParseInLocation(timeFormat, s, time.Local)
	if err != nil {
		return err
	}
	*t = LocalTime(parsed)
	return nil
}

// Value implements driver.Valuer so gorm can store the column.
func (t LocalTime) Value() (driver.Value, error) {
	return time.Time(t), nil
}

// Scan implements sql.Scanner.
func (t *LocalTime) Scan(v interface{}) error {
	switch val := v.(type) {
	case time.Time:
		*t = LocalTime(val)
		return nil
	case nil:
		*t = LocalTime(time.Time{})
		return nil
	default:
		return fmt.Errorf("cannot scan %T into LocalTime", v)
	}
}
