package itemid

import "time"

// DOS date/time range limits.
const (
	dosEpochYear = 1980
	dosMaxYear   = 2107
)

// toDOSDateTime packs t (in UTC) into DOS date and time words. Times outside
// the representable range pack to zero.
func toDOSDateTime(t time.Time) (date, clock uint16) {
	if t.IsZero() {
		return 0, 0
	}

	t = t.UTC()
	if t.Year() < dosEpochYear || t.Year() > dosMaxYear {
		return 0, 0
	}

	date = uint16((t.Year()-dosEpochYear)<<9 | int(t.Month())<<5 | t.Day())
	clock = uint16(t.Hour()<<11 | t.Minute()<<5 | t.Second()/2)

	return date, clock
}

// fromDOSDateTime unpacks DOS date and time words as a UTC time. It reports
// false when a field is out of range, which includes the all-zero stamp.
func fromDOSDateTime(date, clock uint16) (time.Time, bool) {
	year := dosEpochYear + int(date>>9)
	month := int(date>>5) & 0x0F
	day := int(date) & 0x1F
	hour := int(clock >> 11)
	minute := int(clock>>5) & 0x3F
	sec := int(clock&0x1F) * 2

	if month < 1 || month > 12 || day < 1 || hour > 23 || minute > 59 || sec > 59 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, hour, minute, sec, 0, time.UTC)
	if t.Day() != day {
		// Rolled over, e.g. February 30.
		return time.Time{}, false
	}

	return t, true
}
