package workday

import (
	"errors"
	"testing"
)

func TestDecode(t *testing.T) {
	content := []byte(`{"Report_Entry":[{"Course_Title":"CS 1101 - Introduction To Program Design","Credits":"3","Unknown_Field":"ignored"}]}`)

	report, err := Decode(content)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(report.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(report.Entries))
	}
	if report.Entries[0].CourseTitle != "CS 1101 - Introduction To Program Design" {
		t.Errorf("CourseTitle = %q", report.Entries[0].CourseTitle)
	}
	if report.Entries[0].Credits != "3" {
		t.Errorf("Credits = %q", report.Entries[0].Credits)
	}
}

func TestDecodeEmptyList(t *testing.T) {
	report, err := Decode([]byte(`{"Report_Entry":[]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(report.Entries) != 0 {
		t.Errorf("got %d entries, want 0", len(report.Entries))
	}
}

func TestDecodeRejectsShape(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `<html>maintenance</html>`},
		{"missing key", `{"Entries":[]}`},
		{"null list", `{"Report_Entry":null}`},
		{"numeric field", `{"Report_Entry":[{"Credits":3}]}`},
		{"list not object", `[{"Credits":"3"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.content))
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("err = %v, want *DecodeError", err)
			}
		})
	}
}
