package formatter

import (
	"regexp"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

var isoDurationRegex = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// FormatISODuration rewrites the catalog's compact ISO-8601 duration
// ("PT1H2M7S") into colon-separated display form ("1:02:07").
//
// Absent components are omitted, except that minutes are zero-padded to two
// digits whenever hours are present. Seconds are always zero-padded when any
// larger component exists. Input that does not match passes through unchanged.
func FormatISODuration(duration string) string {
	match := isoDurationRegex.FindStringSubmatch(duration)
	if match == nil || (match[1] == "" && match[2] == "" && match[3] == "") {
		return duration
	}

	hours, minutes, seconds := match[1], match[2], match[3]
	if seconds == "" {
		seconds = "0"
	}

	var result string
	if hours != "" {
		result = hours + ":"
		if minutes == "" {
			minutes = "00"
		}
	}
	if minutes != "" {
		result += pad2(minutes, hours != "") + ":"
	}
	result += pad2(seconds, hours != "" || minutes != "")

	return result
}

// pad2 left-pads a numeric component to two digits when it is not the leading
// component.
func pad2(component string, padded bool) string {
	if padded && len(component) < 2 {
		return "0" + component
	}
	return component
}

// FormatCount renders a decimal count string like "1234567" as "1,234,567".
// Non-numeric input passes through unchanged.
func FormatCount(count string) string {
	n, err := strconv.ParseUint(count, 10, 64)
	if err != nil {
		return count
	}
	return humanize.Comma(int64(n))
}

// FormatRelativeTime renders an RFC3339 publish timestamp as "3 days ago".
// Unparseable input passes through unchanged.
func FormatRelativeTime(published string) string {
	t, err := time.Parse(time.RFC3339, published)
	if err != nil {
		return published
	}
	return humanize.Time(t)
}
