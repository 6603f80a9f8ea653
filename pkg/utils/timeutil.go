package utils

import "time"

// SGT is the Singapore Time location (UTC+8).
var SGT *time.Location

func init() {
	var err error
	SGT, err = time.LoadLocation("Asia/Singapore")
	if err != nil {
		// Fallback: create fixed zone if tz database is not available
		SGT = time.FixedZone("SGT", 8*60*60)
	}
}

// NowSGT returns the current time in SGT.
func NowSGT() time.Time {
	return time.Now().In(SGT)
}

// ToSGT converts a time.Time to SGT.
func ToSGT(t time.Time) time.Time {
	return t.In(SGT)
}
