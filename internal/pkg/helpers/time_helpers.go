package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// InspectionTimeLayout is how inspection timestamps are written when the server stamps them
const InspectionTimeLayout = "2006-01-02 15:04:05"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		// The global logger is used because this may run before the logger is configured.
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// FormatInspectionTime renders t in local time for an inspection record
func FormatInspectionTime(t time.Time) string {
	return t.Local().Format(InspectionTimeLayout)
}
