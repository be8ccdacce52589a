package timeutil

import (
	"fmt"
	"time"
)

// DateFormat is the canonical calendar-date layout used for day records.
const DateFormat = "2006-01-02"

// All day boundaries are computed in Korea Standard Time regardless of
// where the server runs.
var koreaLocation = mustLoadKorea()

func mustLoadKorea() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		// KST has no DST; a fixed offset is equivalent.
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// KoreaNow returns the current time in Korea Standard Time.
func KoreaNow() time.Time {
	return time.Now().In(koreaLocation)
}

// KoreaToday returns today's date in KST as "YYYY-MM-DD".
func KoreaToday() string {
	return KoreaNow().Format(DateFormat)
}

// FormatDateForDisplay renders a date string as "M월 D일" without zero padding.
func FormatDateForDisplay(date string) string {
	t, err := time.ParseInLocation(DateFormat, date, koreaLocation)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d월 %d일", int(t.Month()), t.Day())
}
