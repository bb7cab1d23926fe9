package catalog

import (
	"errors"

	"go.uber.org/zap"

	"github.com/brequin/listings/workday"
)

// Failure is a record that was skipped during a build.
type Failure struct {
	Index  int    `json:"index"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

type Result struct {
	Catalog  Catalog
	Failures []Failure
	Entries  int
}

func (r *Result) Skipped() int {
	return len(r.Failures)
}

// Builder folds raw records into a Catalog, one record at a time and in
// input order, since subject reuse depends on earlier records.
type Builder struct {
	logger *zap.Logger
	parse  func(workday.Entry, *Catalog) (*ParsedEntry, error)
}

func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{logger: logger, parse: ParseEntry}
}

// Build returns a fresh catalog for entries. Records failing validation are
// logged, recorded in Result.Failures and skipped. Any other error aborts
// the build; ParseEntry itself only returns *ValidationError, so that path
// guards against parse failures that are not about the record.
func (b *Builder) Build(entries []workday.Entry) (*Result, error) {
	result := &Result{
		Catalog: Catalog{
			Subjects: []Subject{},
			Courses:  []Course{},
		},
		Failures: []Failure{},
		Entries:  len(entries),
	}
	subjectIndex := make(map[string]int)
	courseIndex := make(map[CourseKey]int)

	for i, entry := range entries {
		parsed, err := b.parse(entry, &result.Catalog)
		if err != nil {
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				return nil, err
			}

			b.logger.Warn("skipping record",
				zap.Int("index", i),
				zap.String("title", entry.CourseTitle),
				zap.Error(validationErr.Err),
			)
			result.Failures = append(result.Failures, Failure{
				Index:  i,
				Title:  entry.CourseTitle,
				Reason: validationErr.Err.Error(),
			})
			continue
		}

		if subject := parsed.NewSubject; subject != nil {
			if _, seen := subjectIndex[subject.Code]; !seen {
				subjectIndex[subject.Code] = len(result.Catalog.Subjects)
				result.Catalog.Subjects = append(result.Catalog.Subjects, *subject)
			}
		}

		if at, exists := courseIndex[parsed.Key]; exists {
			course := &result.Catalog.Courses[at]
			course.Sections = append(course.Sections, parsed.Section)
			continue
		}

		course := parsed.Course
		course.Sections = []Section{parsed.Section}
		courseIndex[parsed.Key] = len(result.Catalog.Courses)
		result.Catalog.Courses = append(result.Catalog.Courses, course)
	}

	b.logger.Info("catalog built",
		zap.Int("entries", result.Entries),
		zap.Int("subjects", len(result.Catalog.Subjects)),
		zap.Int("courses", len(result.Catalog.Courses)),
		zap.Int("sections", result.Catalog.SectionCount()),
		zap.Int("skipped", result.Skipped()),
	)

	return result, nil
}

// Build runs a Builder without logging.
func Build(entries []workday.Entry) (*Result, error) {
	return NewBuilder(nil).Build(entries)
}
