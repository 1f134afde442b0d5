package schedule

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Day is a canonical day of week. The zero value is invalid.
type Day int

const (
	InvalidDay Day = iota
	Mon
	Tue
	Wed
	Thu
	Fri
	Sat
	Sun
)

// Days lists the valid days in week order.
var Days = []Day{Mon, Tue, Wed, Thu, Fri, Sat, Sun}

var dayNames = [...]string{"invalid", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// dayCodes maps lower-cased accepted inputs to days. Single letters follow the
// registrar convention where R is Thursday and S is Saturday.
var dayCodes = map[string]Day{
	"mon": Mon, "tue": Tue, "wed": Wed, "thu": Thu, "fri": Fri, "sat": Sat, "sun": Sun,
	"m": Mon, "t": Tue, "w": Wed, "r": Thu, "f": Fri, "s": Sat, "su": Sun,
}

// ParseDay normalizes a raw day code. Anything outside the accepted set
// returns InvalidDay and false.
func ParseDay(raw string) (Day, bool) {
	d, ok := dayCodes[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return InvalidDay, false
	}
	return d, true
}

// Valid reports whether d is one of Mon..Sun.
func (d Day) Valid() bool {
	return d >= Mon && d <= Sun
}

func (d Day) String() string {
	if !d.Valid() {
		return dayNames[0]
	}
	return dayNames[d]
}

// MarshalJSON encodes the day as its abbreviation.
func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts any code ParseDay accepts.
func (d *Day) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, ok := ParseDay(s)
	if !ok {
		return fmt.Errorf("invalid day %q", s)
	}
	*d = parsed
	return nil
}
