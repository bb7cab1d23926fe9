package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var courseCodePattern = regexp.MustCompile(`^([[:upper:]]*)([[:digit:]]*)([[:upper:]]*)`)

// SortKey pads a course code so that string order is catalog order:
// "502" < "1101" < "1101X" < "3013". Codes without digits sort first.
func SortKey(code string) string {
	submatches := courseCodePattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(code)))
	prefix := submatches[1]
	suffix := submatches[3]
	number, err := strconv.Atoi(submatches[2])
	if err != nil {
		number = 0
		suffix = prefix
		prefix = ""
	}
	return fmt.Sprintf("%06d%-4s%-4s", number, suffix, prefix)
}

// SortedCourses returns the courses ordered by subject code and then by
// SortKey. The catalog itself is left in import order.
func (c *Catalog) SortedCourses() []Course {
	courses := make([]Course, len(c.Courses))
	copy(courses, c.Courses)

	sort.SliceStable(courses, func(i, j int) bool {
		if courses[i].Subject.Code != courses[j].Subject.Code {
			return courses[i].Subject.Code < courses[j].Subject.Code
		}
		return SortKey(courses[i].Code) < SortKey(courses[j].Code)
	})
	return courses
}
