package spec

import (
	"encoding/json"
	"fmt"
)

// DateTime is a calendar-component date value as it appears in selection
// initializers and legend values. All members are optional; Month and Date
// are 1-based.
type DateTime struct {
	Year         *int `json:"year,omitempty"`
	Quarter      *int `json:"quarter,omitempty"`
	Month        *int `json:"month,omitempty"`
	Date         *int `json:"date,omitempty"`
	Day          *int `json:"day,omitempty"`
	Hours        *int `json:"hours,omitempty"`
	Minutes      *int `json:"minutes,omitempty"`
	Seconds      *int `json:"seconds,omitempty"`
	Milliseconds *int `json:"milliseconds,omitempty"`
	UTC          bool `json:"utc,omitempty"`
}

// IsDateTime reports whether a decoded JSON value looks like a DateTime
// object, i.e. a map whose keys are all date components.
func IsDateTime(v interface{}) bool {
	m, ok := v.(map[string]interface{})
	if !ok || len(m) == 0 {
		return false
	}
	for k := range m {
		switch k {
		case "year", "quarter", "month", "date", "day", "hours", "minutes", "seconds", "milliseconds", "utc":
		default:
			return false
		}
	}
	return true
}

// ToDateTime converts a decoded JSON map into a DateTime. It panics when the
// map is not DateTime-shaped; callers check with IsDateTime first.
func ToDateTime(v interface{}) *DateTime {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("Internal Error: not a date-time value: %v", v))
	}
	var d DateTime
	if err := json.Unmarshal(raw, &d); err != nil {
		panic(fmt.Sprintf("Internal Error: not a date-time value: %v", v))
	}
	return &d
}
