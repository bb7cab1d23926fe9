package catalog

import (
	"strings"

	"github.com/brequin/listings/workday"
)

// ParsedEntry is one normalized record. Course carries the course level
// attributes from this record and no sections.
type ParsedEntry struct {
	Key        CourseKey
	Course     Course
	Section    Section
	NewSubject *Subject
}

// ParseEntry normalizes one raw record. Subjects already present in c are
// reused by code; a subject seen for the first time is returned in
// NewSubject for the caller to register. Every failure is a
// *ValidationError naming the record's course title.
func ParseEntry(raw workday.Entry, c *Catalog) (*ParsedEntry, error) {
	parsed, err := parseEntry(raw, c)
	if err != nil {
		return nil, &ValidationError{Title: raw.CourseTitle, Err: err}
	}
	return parsed, nil
}

func parseEntry(raw workday.Entry, c *Catalog) (*ParsedEntry, error) {
	level, err := ParseAcademicLevel(raw.AcademicLevel)
	if err != nil {
		return nil, err
	}

	credits, err := ParseCredits(raw.Credits)
	if err != nil {
		return nil, err
	}

	tags := ParseTags(raw.CourseTags)

	deliveryMode, err := ParseDeliveryMode(raw.DeliveryMode)
	if err != nil {
		return nil, err
	}

	enrollment, err := ParseEnrollment(raw.EnrolledCapacity)
	if err != nil {
		return nil, err
	}

	format, err := ParseFormat(raw.InstructionalFormat)
	if err != nil {
		return nil, err
	}

	locations, patterns, err := ParseSectionDetails(raw.SectionDetails)
	if err != nil {
		return nil, err
	}

	startDate := ParseDate(raw.CourseSectionStartDate)
	endDate := ParseDate(raw.CourseSectionEndDate)

	subjectCode, _, found := strings.Cut(raw.CourseTitle, " ")
	if !found || subjectCode == "" {
		return nil, invalidField("Course_Title", raw.CourseTitle, "missing subject code")
	}
	subjectNames := strings.Split(raw.Subject, listSeparator)
	subjectName := subjectNames[len(subjectNames)-1]

	var newSubject *Subject
	subject, exists := c.Subject(subjectCode)
	if !exists {
		subject = Subject{Code: subjectCode, Name: subjectName}
		newSubject = &subject
	}

	label, title, found := strings.Cut(raw.CourseTitle, titleSeparator)
	if !found {
		return nil, invalidField("Course_Title", raw.CourseTitle, "missing \" - \" before the title")
	}
	code := strings.Replace(label, subject.Code+" ", "", 1)

	term, err := ParseTerm(raw.StartingPeriodType)
	if err != nil {
		return nil, err
	}

	waitlist, err := ParseWaitlist(raw.WaitlistCapacity)
	if err != nil {
		return nil, err
	}

	return &ParsedEntry{
		Key: CourseKey{SubjectCode: subject.Code, Code: code},
		Course: Course{
			Subject:     subject,
			Code:        code,
			Title:       title,
			Level:       level,
			Credits:     credits,
			Notes:       raw.PublicNotes,
			Description: workday.DescriptionText(raw.CourseDescription),
			Format:      format,
		},
		Section: Section{
			Code:           raw.CourseSection,
			Status:         raw.SectionStatus,
			OfferingPeriod: raw.OfferingPeriod,
			DeliveryMode:   deliveryMode,
			Term:           term,
			StartDate:      startDate,
			EndDate:        endDate,
			Enrollment:     enrollment,
			Waitlist:       waitlist,
			Locations:      locations,
			Patterns:       patterns,
			Tags:           tags,
			Instructors:    ParseInstructors(raw.Instructors),
		},
		NewSubject: newSubject,
	}, nil
}
