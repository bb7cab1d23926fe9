package catalog

import (
	"fmt"
	"time"
)

type AcademicLevel string

const (
	Undergraduate AcademicLevel = "Undergraduate"
	Graduate      AcademicLevel = "Graduate"
)

type DeliveryMode string

const (
	InPerson DeliveryMode = "In-Person"
	Online   DeliveryMode = "Online"
	Hybrid   DeliveryMode = "Hybrid"
)

type Format string

const (
	FormatDiscussion   Format = "Discussion"
	FormatExperiential Format = "Experiential"
	FormatLaboratory   Format = "Laboratory"
	FormatLecture      Format = "Lecture"
	FormatInternship   Format = "Internship"
	FormatSeminar      Format = "Seminar"
	FormatWorkshop     Format = "Workshop"
)

// TermPeriod is either a short term (A-D, E1, E2) or a whole semester.
type TermPeriod string

const (
	TermA  TermPeriod = "A"
	TermB  TermPeriod = "B"
	TermC  TermPeriod = "C"
	TermD  TermPeriod = "D"
	TermE1 TermPeriod = "E1"
	TermE2 TermPeriod = "E2"

	SemesterSpring TermPeriod = "Spring"
	SemesterFall   TermPeriod = "Fall"
	SemesterSummer TermPeriod = "Summer"
)

func (t TermPeriod) IsSemester() bool {
	return t == SemesterSpring || t == SemesterFall || t == SemesterSummer
}

type Day string

const (
	Monday    Day = "M"
	Tuesday   Day = "T"
	Wednesday Day = "W"
	Thursday  Day = "R"
	Friday    Day = "F"
)

// Weekday maps the export's day code onto time.Weekday.
func (d Day) Weekday() time.Weekday {
	switch d {
	case Monday:
		return time.Monday
	case Tuesday:
		return time.Tuesday
	case Wednesday:
		return time.Wednesday
	case Thursday:
		return time.Thursday
	default:
		return time.Friday
	}
}

// ClockTime is a wall clock time on a 24 hour dial.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

type Subject struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Capacity is a seat count. Disabled means the export reported 0/0, which
// is "not tracked" rather than "full".
type Capacity struct {
	Remaining int  `json:"remaining"`
	Maximum   int  `json:"maximum"`
	Disabled  bool `json:"disabled"`
}

type MeetingPattern struct {
	LocationID string    `json:"locationId"`
	Days       []Day     `json:"days"`
	Start      ClockTime `json:"startTime"`
	End        ClockTime `json:"endTime"`
}

type Section struct {
	Code           string            `json:"code"`
	Status         string            `json:"status"`
	OfferingPeriod string            `json:"offeringPeriod"`
	DeliveryMode   DeliveryMode      `json:"deliveryMode"`
	Term           TermPeriod        `json:"term"`
	StartDate      time.Time         `json:"startDate"`
	EndDate        time.Time         `json:"endDate"`
	Enrollment     Capacity          `json:"enrollment"`
	Waitlist       Capacity          `json:"waitlist"`
	Locations      []string          `json:"locations"`
	Patterns       []MeetingPattern  `json:"patterns"`
	Tags           map[string]string `json:"tags"`
	Instructors    []string          `json:"instructors"`
}

// CourseKey identifies a course across records.
type CourseKey struct {
	SubjectCode string
	Code        string
}

func (k CourseKey) String() string {
	return k.SubjectCode + " " + k.Code
}

type Course struct {
	Subject     Subject       `json:"subject"`
	Code        string        `json:"code"`
	Title       string        `json:"title"`
	Level       AcademicLevel `json:"academicLevel"`
	Credits     float64       `json:"credits"`
	Notes       string        `json:"notes"`
	Description string        `json:"description"`
	Format      Format        `json:"format"`
	Sections    []Section     `json:"sections"`
}

func (c *Course) Key() CourseKey {
	return CourseKey{SubjectCode: c.Subject.Code, Code: c.Code}
}

// Catalog is the result of one import run. Subject codes and course keys
// are unique. Consumers must treat it as read-only.
type Catalog struct {
	Subjects []Subject `json:"subjects"`
	Courses  []Course  `json:"courses"`
}

func (c *Catalog) Subject(code string) (Subject, bool) {
	for _, subject := range c.Subjects {
		if subject.Code == code {
			return subject, true
		}
	}
	return Subject{}, false
}

func (c *Catalog) Course(key CourseKey) (*Course, bool) {
	for i := range c.Courses {
		if c.Courses[i].Key() == key {
			return &c.Courses[i], true
		}
	}
	return nil, false
}

func (c *Catalog) SectionCount() int {
	count := 0
	for _, course := range c.Courses {
		count += len(course.Sections)
	}
	return count
}
