package catalog

import "testing"

func TestSortKeyOrder(t *testing.T) {
	ordered := []string{"", "MQP", "502", "1101", "1101X", "3013", "10001"}

	for i := 1; i < len(ordered); i++ {
		previous, current := SortKey(ordered[i-1]), SortKey(ordered[i])
		if previous >= current {
			t.Errorf("SortKey(%q) = %q is not before SortKey(%q) = %q", ordered[i-1], previous, ordered[i], current)
		}
	}
}

func TestSortedCourses(t *testing.T) {
	c := Catalog{
		Courses: []Course{
			{Subject: Subject{Code: "MA"}, Code: "1021"},
			{Subject: Subject{Code: "CS"}, Code: "2102"},
			{Subject: Subject{Code: "CS"}, Code: "502"},
		},
	}

	sorted := c.SortedCourses()
	want := []string{"CS 502", "CS 2102", "MA 1021"}
	for i, course := range sorted {
		if got := course.Key().String(); got != want[i] {
			t.Errorf("sorted[%d] = %q, want %q", i, got, want[i])
		}
	}
	if c.Courses[0].Code != "1021" {
		t.Errorf("SortedCourses reordered the catalog")
	}
}
