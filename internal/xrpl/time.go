package xrpl

import "time"

// RippleEpoch is January 1, 2000 00:00:00 UTC, the instant XRPL timestamps
// are counted from.
var RippleEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// RippleTimeToUTC converts seconds since the ripple epoch to UTC time.
func RippleTimeToUTC(seconds int64) time.Time {
	return time.Unix(RippleEpoch.Unix()+seconds, 0).UTC()
}

// UTCToRippleTime converts a time to seconds since the ripple epoch.
func UTCToRippleTime(t time.Time) int64 {
	return t.Unix() - RippleEpoch.Unix()
}

// FormatRippleTime renders a ripple timestamp as a sortable RFC 3339 string,
// e.g. 0 -> "2000-01-01T00:00:00Z".
func FormatRippleTime(seconds int64) string {
	return RippleTimeToUTC(seconds).Format(time.RFC3339)
}
