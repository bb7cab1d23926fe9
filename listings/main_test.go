package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/brequin/listings/catalog"
	"github.com/brequin/listings/importer"
)

func TestReport(t *testing.T) {
	subject := catalog.Subject{Code: "CS", Name: "Computer Science"}
	snapshot := &importer.Snapshot{
		RunID:   uuid.MustParse("6f1c3a5e-8f0c-4f4e-9d4b-2f3b7b1b9a10"),
		Entries: 3,
		Catalog: catalog.Catalog{
			Subjects: []catalog.Subject{subject},
			Courses: []catalog.Course{
				{Subject: subject, Code: "1101", Sections: make([]catalog.Section, 2)},
			},
		},
		Failures: []catalog.Failure{
			{Index: 2, Title: "CS 2102 - Object-Oriented Design Concepts", Reason: "invalid Instructional_Format \"Unknown\""},
		},
	}

	var out bytes.Buffer
	report(&out, snapshot)

	text := out.String()
	for _, want := range []string{
		"Imported 2 of 3 records: 1 subjects, 1 courses, 2 sections (run 6f1c3a5e-8f0c-4f4e-9d4b-2f3b7b1b9a10)",
		"Skipped 1 records:",
		"#2 CS 2102 - Object-Oriented Design Concepts: invalid Instructional_Format",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report lacks %q:\n%s", want, text)
		}
	}
}

func TestReportWithoutFailures(t *testing.T) {
	var out bytes.Buffer
	report(&out, &importer.Snapshot{Entries: 0})

	if strings.Contains(out.String(), "Skipped") {
		t.Errorf("report lists failures for a clean run:\n%s", out.String())
	}
}
