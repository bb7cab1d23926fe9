package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/brequin/listings/catalog"
	"github.com/brequin/listings/importer"
)

type Subject struct {
	Code string
	Name string
}

type Course struct {
	Id            string
	SubjectCode   string
	CatalogNumber string
	SortKey       string
	Title         string
	Level         string
	Credits       float64
	Notes         string
	Description   string
	Format        string
}

type Section struct {
	CourseId            string
	Position            int
	Code                string
	Status              string
	OfferingPeriod      string
	DeliveryMode        string
	Term                string
	StartDate           *time.Time
	EndDate             *time.Time
	EnrollmentRemaining int
	EnrollmentMaximum   int
	EnrollmentDisabled  bool
	WaitlistRemaining   int
	WaitlistMaximum     int
	WaitlistDisabled    bool
	Locations           []string
	Patterns            []byte
	Tags                []byte
	Instructors         []string
}

type ImportRun struct {
	Id         uuid.UUID
	ImportedAt time.Time
	Source     string
	Entries    int
	Courses    int
	Sections   int
	Skipped    int
	Failures   []byte
}

func optionalDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// nonNil keeps empty lists as '{}' rather than NULL.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func SubjectRows(c *catalog.Catalog) []Subject {
	var subjects []Subject
	for _, subject := range c.Subjects {
		subjects = append(subjects, Subject{Code: subject.Code, Name: subject.Name})
	}
	return subjects
}

func CourseRows(c *catalog.Catalog) []Course {
	var courses []Course
	for _, course := range c.Courses {
		courses = append(courses, Course{
			Id:            CourseId(course.Key()),
			SubjectCode:   course.Subject.Code,
			CatalogNumber: course.Code,
			SortKey:       catalog.SortKey(course.Code),
			Title:         course.Title,
			Level:         string(course.Level),
			Credits:       course.Credits,
			Notes:         course.Notes,
			Description:   course.Description,
			Format:        string(course.Format),
		})
	}
	return courses
}

// SectionRows flattens every course's sections. Position keeps the import
// order of sections within a course.
func SectionRows(c *catalog.Catalog) ([]Section, error) {
	var sections []Section
	for _, course := range c.Courses {
		courseId := CourseId(course.Key())
		for i, section := range course.Sections {
			sectionPatterns := section.Patterns
			if sectionPatterns == nil {
				sectionPatterns = []catalog.MeetingPattern{}
			}
			patterns, err := json.Marshal(sectionPatterns)
			if err != nil {
				return nil, err
			}
			tags, err := json.Marshal(section.Tags)
			if err != nil {
				return nil, err
			}

			sections = append(sections, Section{
				CourseId:            courseId,
				Position:            i,
				Code:                section.Code,
				Status:              section.Status,
				OfferingPeriod:      section.OfferingPeriod,
				DeliveryMode:        string(section.DeliveryMode),
				Term:                string(section.Term),
				StartDate:           optionalDate(section.StartDate),
				EndDate:             optionalDate(section.EndDate),
				EnrollmentRemaining: section.Enrollment.Remaining,
				EnrollmentMaximum:   section.Enrollment.Maximum,
				EnrollmentDisabled:  section.Enrollment.Disabled,
				WaitlistRemaining:   section.Waitlist.Remaining,
				WaitlistMaximum:     section.Waitlist.Maximum,
				WaitlistDisabled:    section.Waitlist.Disabled,
				Locations:           nonNil(section.Locations),
				Patterns:            patterns,
				Tags:                tags,
				Instructors:         nonNil(section.Instructors),
			})
		}
	}
	return sections, nil
}

func ImportRunRow(snapshot *importer.Snapshot) (ImportRun, error) {
	failures, err := json.Marshal(snapshot.Failures)
	if err != nil {
		return ImportRun{}, err
	}
	return ImportRun{
		Id:         snapshot.RunID,
		ImportedAt: snapshot.ImportedAt,
		Source:     snapshot.Source,
		Entries:    snapshot.Entries,
		Courses:    len(snapshot.Catalog.Courses),
		Sections:   snapshot.Catalog.SectionCount(),
		Skipped:    len(snapshot.Failures),
		Failures:   failures,
	}, nil
}
