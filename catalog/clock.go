package catalog

import (
	"strconv"
	"strings"
)

// ParseClockTime reads "H:MM" or "HH:MM" with an optional AM/PM marker
// anywhere in the text. A PM hour below 12 gains 12; every other hour is
// kept as written, so "12:00 AM" reads as 12.
func ParseClockTime(text string) (ClockTime, error) {
	hourToken, minuteToken, found := strings.Cut(text, ":")
	if !found {
		return ClockTime{}, &TimeError{Text: text, Reason: "missing colon"}
	}

	hour, ok := leadingInt(hourToken)
	if !ok {
		return ClockTime{}, &TimeError{Text: text, Reason: "hour is not a number"}
	}
	if hour < 0 || hour > 23 {
		return ClockTime{}, &TimeError{Text: text, Reason: "hour out of range"}
	}

	minute, ok := leadingInt(minuteToken)
	if !ok {
		return ClockTime{}, &TimeError{Text: text, Reason: "minute is not a number"}
	}
	if minute < 0 || minute > 59 {
		return ClockTime{}, &TimeError{Text: text, Reason: "minute out of range"}
	}

	pm := strings.Contains(strings.ToUpper(text), "PM")
	if pm && hour < 12 {
		hour += 12
	}

	return ClockTime{Hour: hour, Minute: minute}, nil
}

// leadingInt parses the run of digits at the start of the trimmed token.
func leadingInt(token string) (int, bool) {
	token = strings.TrimSpace(token)
	end := 0
	for end < len(token) && token[end] >= '0' && token[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(token[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
