package catalog

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	listSeparator     = "; "
	tagSeparator      = " :: "
	patternSeparator  = " | "
	timeSeparator     = " - "
	titleSeparator    = " - "
	daySeparator      = "-"
	ratioSeparator    = "/"
	termSuffix        = " Term"
	NoLocation        = "None"
	sectionDetails    = "Section_Details"
	enrolledCapacity  = "Enrolled_Capacity"
	waitlistCapacity  = "Waitlist_Waitlist_Capacity"
	startingPeriod    = "Starting_Academic_Period_Type"
	instructionFormat = "Instructional_Format"
)

// Section_Details chunks that stand for the whole section's location.
var locationSentinels = map[string]string{
	"Online-asynchronous |": "Online-asynchronous",
	"Online-synchronous |":  "Online-synchronous",
	"Online (inactive) |":   "Online",
	"Other |":               "Other",
	"Off Campus |":          "Off Campus",
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
}

func ParseAcademicLevel(raw string) (AcademicLevel, error) {
	switch level := AcademicLevel(raw); level {
	case Undergraduate, Graduate:
		return level, nil
	}
	return "", invalidField("Academic_Level", raw, "expected Undergraduate or Graduate")
}

// ParseCredits accepts only the canonical spelling of a non-negative number:
// the value printed back must equal the input, so "03", "3.0" and "3 " fail.
func ParseCredits(raw string) (float64, error) {
	credits, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(credits) || math.IsInf(credits, 0) {
		return 0, invalidField("Credits", raw, "not a number")
	}
	if credits < 0 || math.Signbit(credits) {
		return 0, invalidField("Credits", raw, "negative")
	}
	if strconv.FormatFloat(credits, 'f', -1, 64) != raw {
		return 0, invalidField("Credits", raw, "not in canonical form")
	}
	return credits, nil
}

func ParseDeliveryMode(raw string) (DeliveryMode, error) {
	switch mode := DeliveryMode(raw); mode {
	case InPerson, Online, Hybrid:
		return mode, nil
	}
	return "", invalidField("Delivery_Mode", raw, "")
}

func ParseFormat(raw string) (Format, error) {
	switch format := Format(raw); format {
	case FormatDiscussion, FormatExperiential, FormatLaboratory, FormatLecture,
		FormatInternship, FormatSeminar, FormatWorkshop:
		return format, nil
	}
	return "", invalidField(instructionFormat, raw, "")
}

// ParseEnrollment reads "remaining/maximum".
func ParseEnrollment(raw string) (Capacity, error) {
	remaining, maximum, err := parseRatio(enrolledCapacity, raw)
	if err != nil {
		return Capacity{}, err
	}
	return Capacity{
		Remaining: remaining,
		Maximum:   maximum,
		Disabled:  remaining == 0 && maximum == 0,
	}, nil
}

// ParseWaitlist reads "occupied/maximum".
func ParseWaitlist(raw string) (Capacity, error) {
	occupied, maximum, err := parseRatio(waitlistCapacity, raw)
	if err != nil {
		return Capacity{}, err
	}
	return Capacity{
		Remaining: maximum - occupied,
		Maximum:   maximum,
		Disabled:  occupied == 0 && maximum == 0,
	}, nil
}

func parseRatio(field, raw string) (int, int, error) {
	parts := strings.Split(raw, ratioSeparator)
	if len(parts) != 2 {
		return 0, 0, invalidField(field, raw, "expected two parts separated by /")
	}
	left, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, invalidField(field, raw, "not an integer ratio")
	}
	right, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, invalidField(field, raw, "not an integer ratio")
	}
	return left, right, nil
}

// ParseTags reads "key :: value; key :: value". A repeated key keeps the
// last value; anything after a second " :: " in a part is dropped.
func ParseTags(raw string) map[string]string {
	tags := make(map[string]string)
	for _, part := range strings.Split(raw, listSeparator) {
		if part == "" {
			continue
		}
		portions := strings.Split(part, tagSeparator)
		value := ""
		if len(portions) > 1 {
			value = portions[1]
		}
		tags[portions[0]] = value
	}
	return tags
}

func ParseTerm(raw string) (TermPeriod, error) {
	term := TermPeriod(strings.TrimSuffix(raw, termSuffix))
	switch term {
	case TermA, TermB, TermC, TermD, TermE1, TermE2,
		SemesterSpring, SemesterFall, SemesterSummer:
		return term, nil
	}
	return "", invalidField(startingPeriod, raw, "")
}

// ParseSectionDetails splits Section_Details into locations and meeting
// patterns. A sentinel chunk ends the list. The location list is never
// empty; it falls back to NoLocation.
func ParseSectionDetails(raw string) ([]string, []MeetingPattern, error) {
	var locations []string
	patterns := []MeetingPattern{}

	for _, chunk := range strings.Split(raw, listSeparator) {
		if location, ok := locationSentinels[chunk]; ok {
			locations = append(locations, location)
			break
		}
		if chunk == "" {
			continue
		}

		pattern, err := parsePattern(chunk)
		if err != nil {
			return nil, nil, err
		}
		locations = append(locations, pattern.LocationID)
		patterns = append(patterns, pattern)
	}

	if len(locations) == 0 {
		locations = []string{NoLocation}
	}
	return locations, patterns, nil
}

func parsePattern(chunk string) (MeetingPattern, error) {
	portions := strings.Split(chunk, patternSeparator)
	if len(portions) != 3 {
		return MeetingPattern{}, invalidField(sectionDetails, chunk, "expected location | days | times")
	}

	var days []Day
	for _, code := range strings.Split(portions[1], daySeparator) {
		switch day := Day(code); day {
		case Monday, Tuesday, Wednesday, Thursday, Friday:
			days = append(days, day)
		default:
			return MeetingPattern{}, invalidField(sectionDetails, chunk, "unknown day code "+strconv.Quote(code))
		}
	}

	startText, endText, found := strings.Cut(portions[2], timeSeparator)
	if !found {
		return MeetingPattern{}, &TimeError{Text: portions[2], Reason: "expected start - end"}
	}
	start, err := ParseClockTime(startText)
	if err != nil {
		return MeetingPattern{}, err
	}
	end, err := ParseClockTime(endText)
	if err != nil {
		return MeetingPattern{}, err
	}

	return MeetingPattern{
		LocationID: portions[0],
		Days:       days,
		Start:      start,
		End:        end,
	}, nil
}

// ParseDate returns the zero time for text no layout accepts.
func ParseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, raw); err == nil {
			return date.UTC()
		}
	}
	return time.Time{}
}

// ParseInstructors splits the "; " separated Instructors field.
func ParseInstructors(raw string) []string {
	instructors := []string{}
	for _, name := range strings.Split(raw, listSeparator) {
		if name = strings.TrimSpace(name); name != "" {
			instructors = append(instructors, name)
		}
	}
	return instructors
}
