package models

import (
	"encoding/json"
	"time"
)

// FlexTime accepts the timestamp shapes clients actually send: RFC 3339
// with or without offset, and bare dates. A value that parses as none of
// them unmarshals to the zero time instead of failing the request. The
// ordering code treats zero instants as invalid and sorts them last, so a
// bad date degrades one list entry rather than the whole response.
type FlexTime struct {
	time.Time
}

const flexDateOnlyLayout = "2006-01-02"

var flexLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	flexDateOnlyLayout,
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t.Time = ParseFlexTime(s)
	return nil
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339))
}

// ParseFlexTime parses s against the accepted layouts in order, returning
// the zero time when none match.
func ParseFlexTime(s string) time.Time {
	for _, layout := range flexLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
