package utils

import (
	"log"
	"time"
)

// TimeNowIST returns the current time in Indian Standard Time. The tracked
// listings trade on NSE/BSE, so all timestamps are anchored there.
func TimeNowIST() time.Time {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return time.Now().In(loc)
}

// PrettyDate formats a timestamp for human-facing messages.
func PrettyDate(t time.Time) string {
	return t.Format("Mon, 02 Jan 2006 15:04 MST")
}
