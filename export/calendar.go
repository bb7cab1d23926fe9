package export

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/brequin/listings/catalog"
)

const (
	productId      = "-//brequin//listings//EN"
	floatingLayout = "20060102T150405"
	calendarDomain = "listings.brequin"
	untilEndOfDay  = 24*time.Hour - time.Second
)

var byDay = map[catalog.Day]string{
	catalog.Monday:    "MO",
	catalog.Tuesday:   "TU",
	catalog.Wednesday: "WE",
	catalog.Thursday:  "TH",
	catalog.Friday:    "FR",
}

// Calendar builds one weekly recurring event per meeting pattern. Times are
// floating local times, as the export has no zone. Sections without both
// dates, and patterns without days, are left out.
func Calendar(courses []catalog.Course, stamp time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productId)

	for _, course := range courses {
		for s, section := range course.Sections {
			if section.StartDate.IsZero() || section.EndDate.IsZero() {
				continue
			}
			for p, pattern := range section.Patterns {
				if len(pattern.Days) == 0 {
					continue
				}
				first := firstMeeting(section.StartDate, pattern.Days)
				if first.After(section.EndDate) {
					continue
				}

				uid := fmt.Sprintf("%s-%s-%d-%d@%s", course.Subject.Code, course.Code, s, p, calendarDomain)
				event := cal.AddEvent(uid)
				event.SetDtStampTime(stamp)
				event.SetSummary(summary(course, section))
				event.SetLocation(pattern.LocationID)
				if course.Description != "" {
					event.SetDescription(course.Description)
				}
				event.SetProperty(ics.ComponentPropertyDtStart, at(first, pattern.Start).Format(floatingLayout))
				event.SetProperty(ics.ComponentPropertyDtEnd, at(first, pattern.End).Format(floatingLayout))
				event.AddRrule(rrule(pattern.Days, section.EndDate))
			}
		}
	}

	return cal
}

func summary(course catalog.Course, section catalog.Section) string {
	label := course.Subject.Code + " " + course.Code
	if section.Code != "" {
		label = section.Code
	}
	return label + " - " + course.Title
}

// firstMeeting is the first date on or after start that falls on one of
// days.
func firstMeeting(start time.Time, days []catalog.Day) time.Time {
	for offset := 0; offset < 7; offset++ {
		date := start.AddDate(0, 0, offset)
		for _, day := range days {
			if day.Weekday() == date.Weekday() {
				return date
			}
		}
	}
	return start
}

func at(date time.Time, clock catalog.ClockTime) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour, clock.Minute, 0, 0, time.UTC)
}

func rrule(days []catalog.Day, end time.Time) string {
	codes := make([]string, 0, len(days))
	for _, day := range days {
		codes = append(codes, byDay[day])
	}
	until := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC).Add(untilEndOfDay)
	return "FREQ=WEEKLY;BYDAY=" + strings.Join(codes, ",") + ";UNTIL=" + until.Format(floatingLayout)
}
