package normalizer

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// timeLayouts are tried in order against the upper-cased start time.
var timeLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3:04:05 PM",
	"3 PM",
	"3PM",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"01/02/2006 15:04",
	"1/2/2006 15:04",
	"1/2/2006 3:04 PM",
	"02.01.2006 15:04",
}

// ParseStartHour interprets a start-time cell as hours since midnight,
// hour + minute/60. It returns nil when the cell is not a time of day.
//
// Excel stores times as day fractions, so numeric cells in [0, 1) are read as
// such and non-integral serials >= 1 as full date-times. Integral numbers and
// bare dates carry no time of day and are rejected.
func ParseStartHour(raw string) *float64 {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if IsNullLike(s) {
		return nil
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return hourFromSerial(f)
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			h := float64(t.Hour()) + float64(t.Minute())/60.0
			return &h
		}
	}
	return nil
}

func hourFromSerial(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil
	}
	if f < 1 {
		totalMinutes := math.Round(f * 24 * 60)
		if totalMinutes >= 24*60 {
			return nil
		}
		h := math.Floor(totalMinutes/60) + math.Mod(totalMinutes, 60)/60.0
		return &h
	}
	if f == math.Trunc(f) {
		return nil
	}
	t, err := excelize.ExcelDateToTime(f, false)
	if err != nil {
		return nil
	}
	h := float64(t.Hour()) + float64(t.Minute())/60.0
	return &h
}
