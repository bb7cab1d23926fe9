package db

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/brequin/listings/catalog"
	"github.com/brequin/listings/importer"
)

func testCatalog() catalog.Catalog {
	cs := catalog.Subject{Code: "CS", Name: "Computer Science"}
	start := time.Date(2024, time.August, 22, 0, 0, 0, 0, time.UTC)

	return catalog.Catalog{
		Subjects: []catalog.Subject{cs},
		Courses: []catalog.Course{
			{
				Subject: cs,
				Code:    "1101",
				Title:   "Introduction To Program Design",
				Level:   catalog.Undergraduate,
				Credits: 3,
				Format:  catalog.FormatLecture,
				Sections: []catalog.Section{
					{
						Code:       "CS 1101-AL01",
						Term:       catalog.TermA,
						StartDate:  start,
						Enrollment: catalog.Capacity{Remaining: 138, Maximum: 150},
						Waitlist:   catalog.Capacity{Disabled: true},
						Locations:  []string{"AK 116"},
						Patterns: []catalog.MeetingPattern{{
							LocationID: "AK 116",
							Days:       []catalog.Day{catalog.Monday, catalog.Thursday},
							Start:      catalog.ClockTime{Hour: 10},
							End:        catalog.ClockTime{Hour: 10, Minute: 50},
						}},
						Tags: map[string]string{"Course Type": "Standard"},
					},
					{Code: "CS 1101-AL02", Term: catalog.TermA},
				},
			},
		},
	}
}

func TestCourseId(t *testing.T) {
	if id := CourseId(catalog.CourseKey{SubjectCode: "CS", Code: "1101"}); id != "CS#1101" {
		t.Errorf("CourseId = %q", id)
	}
}

func TestCourseRows(t *testing.T) {
	c := testCatalog()
	courses := CourseRows(&c)

	if len(courses) != 1 {
		t.Fatalf("len(courses) = %d", len(courses))
	}
	course := courses[0]
	if course.Id != "CS#1101" || course.SubjectCode != "CS" || course.CatalogNumber != "1101" {
		t.Errorf("course identity = %+v", course)
	}
	if course.SortKey != catalog.SortKey("1101") || course.Level != "Undergraduate" || course.Format != "Lecture" {
		t.Errorf("course attributes = %+v", course)
	}

	subjects := SubjectRows(&c)
	if len(subjects) != 1 || subjects[0] != (Subject{Code: "CS", Name: "Computer Science"}) {
		t.Errorf("subjects = %+v", subjects)
	}
}

func TestSectionRows(t *testing.T) {
	c := testCatalog()
	sections, err := SectionRows(&c)
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 2 {
		t.Fatalf("len(sections) = %d", len(sections))
	}

	first := sections[0]
	if first.CourseId != "CS#1101" || first.Position != 0 || sections[1].Position != 1 {
		t.Errorf("positions = %d, %d", first.Position, sections[1].Position)
	}
	if first.StartDate == nil || !first.StartDate.Equal(time.Date(2024, time.August, 22, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("StartDate = %v", first.StartDate)
	}
	if first.EndDate != nil {
		t.Errorf("zero EndDate stored as %v, want NULL", first.EndDate)
	}
	if first.EnrollmentRemaining != 138 || first.EnrollmentMaximum != 150 || !first.WaitlistDisabled {
		t.Errorf("capacities = %+v", first)
	}

	var patterns []catalog.MeetingPattern
	if err := json.Unmarshal(first.Patterns, &patterns); err != nil {
		t.Fatal(err)
	}
	if len(patterns) != 1 || patterns[0].End.Minute != 50 || len(patterns[0].Days) != 2 {
		t.Errorf("patterns = %+v", patterns)
	}

	second := sections[1]
	if second.Locations == nil || second.Instructors == nil {
		t.Errorf("empty lists stored as NULL: %+v", second)
	}
	if string(second.Patterns) != "[]" {
		t.Errorf("Patterns = %s", second.Patterns)
	}
}

func TestImportRunRow(t *testing.T) {
	snapshot := &importer.Snapshot{
		RunID:      uuid.New(),
		ImportedAt: time.Date(2024, time.August, 1, 12, 0, 0, 0, time.UTC),
		Source:     "https://example.edu/prod-data.json",
		Entries:    3,
		Catalog:    testCatalog(),
		Failures:   []catalog.Failure{{Index: 2, Title: "CS 9999 - Broken", Reason: "bad format"}},
	}

	run, err := ImportRunRow(snapshot)
	if err != nil {
		t.Fatal(err)
	}
	if run.Id != snapshot.RunID || run.Courses != 1 || run.Sections != 2 || run.Skipped != 1 {
		t.Errorf("run = %+v", run)
	}

	var failures []catalog.Failure
	if err := json.Unmarshal(run.Failures, &failures); err != nil {
		t.Fatal(err)
	}
	if len(failures) != 1 || failures[0].Title != "CS 9999 - Broken" {
		t.Errorf("failures = %+v", failures)
	}
}
