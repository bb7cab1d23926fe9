// Package export renders catalog courses as an iCalendar feed or an
// Excel workbook.
package export

import (
	"fmt"
	"strings"

	"github.com/brequin/listings/catalog"
)

// FilterSubject returns the courses of one subject. An empty code keeps
// every course.
func FilterSubject(courses []catalog.Course, subjectCode string) []catalog.Course {
	if subjectCode == "" {
		return courses
	}
	var filtered []catalog.Course
	for _, course := range courses {
		if strings.EqualFold(course.Subject.Code, subjectCode) {
			filtered = append(filtered, course)
		}
	}
	return filtered
}

func joinDays(days []catalog.Day) string {
	codes := make([]string, len(days))
	for i, day := range days {
		codes[i] = string(day)
	}
	return strings.Join(codes, "-")
}

// describePattern gives "AK 116 | M-R | 10:00-10:50".
func describePattern(pattern catalog.MeetingPattern) string {
	return fmt.Sprintf("%s | %s | %s-%s", pattern.LocationID, joinDays(pattern.Days), pattern.Start, pattern.End)
}
