package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/brequin/listings/importer"
)

var ErrNoImportRuns = errors.New("no import runs stored")

const listSubjects = `SELECT code, name FROM subjects ORDER BY code`
const insertSubject = `INSERT INTO subjects (code, name) VALUES ($1, $2) ON CONFLICT (code) DO UPDATE SET name=EXCLUDED.name`

const listSubjectCourses = `SELECT id, subject_code, catalog_number, sort_key, title, academic_level, credits, notes, description, format FROM courses WHERE subject_code = $1 ORDER BY sort_key`
const insertCourse = `INSERT INTO courses (id, subject_code, catalog_number, sort_key, title, academic_level, credits, notes, description, format) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const insertSection = `INSERT INTO sections (course_id, position, code, status, offering_period, delivery_mode, term, start_date, end_date, enrollment_remaining, enrollment_maximum, enrollment_disabled, waitlist_remaining, waitlist_maximum, waitlist_disabled, locations, patterns, tags, instructors) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

const clearSections = `DELETE FROM sections`
const clearCourses = `DELETE FROM courses`
const clearSubjects = `DELETE FROM subjects`

const latestImportRun = `SELECT id, imported_at, source, entries, courses, sections, skipped, failures FROM import_runs ORDER BY imported_at DESC LIMIT 1`
const insertImportRun = `INSERT INTO import_runs (id, imported_at, source, entries, courses, sections, skipped, failures) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func insertCallback(ct pgconn.CommandTag) error {
	return nil
}

// stripNul drops NUL bytes, which Postgres text columns reject.
func stripNul(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

func (d *Database) ListSubjects(ctx context.Context) ([]Subject, error) {
	rows, err := d.Pool.Query(ctx, listSubjects)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []Subject
	for rows.Next() {
		var subject Subject
		if err := rows.Scan(&subject.Code, &subject.Name); err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subjects, nil
}

func (d *Database) ListSubjectCourses(ctx context.Context, subjectCode string) ([]Course, error) {
	rows, err := d.Pool.Query(ctx, listSubjectCourses, subjectCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []Course
	for rows.Next() {
		var course Course
		if err := rows.Scan(
			&course.Id,
			&course.SubjectCode,
			&course.CatalogNumber,
			&course.SortKey,
			&course.Title,
			&course.Level,
			&course.Credits,
			&course.Notes,
			&course.Description,
			&course.Format,
		); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

func (d *Database) LatestImportRun(ctx context.Context) (*ImportRun, error) {
	var run ImportRun
	err := d.Pool.QueryRow(ctx, latestImportRun).Scan(
		&run.Id,
		&run.ImportedAt,
		&run.Source,
		&run.Entries,
		&run.Courses,
		&run.Sections,
		&run.Skipped,
		&run.Failures,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoImportRuns
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// SaveSnapshot replaces the stored catalog with the snapshot's catalog and
// records the run, in one transaction.
func (d *Database) SaveSnapshot(ctx context.Context, snapshot *importer.Snapshot) error {
	subjects := SubjectRows(&snapshot.Catalog)
	courses := CourseRows(&snapshot.Catalog)
	sections, err := SectionRows(&snapshot.Catalog)
	if err != nil {
		return fmt.Errorf("encode sections: %w", err)
	}
	run, err := ImportRunRow(snapshot)
	if err != nil {
		return fmt.Errorf("encode import run: %w", err)
	}

	return pgx.BeginFunc(ctx, d.Pool, func(tx pgx.Tx) error {
		for _, sql := range []string{clearSections, clearCourses, clearSubjects} {
			if _, err := tx.Exec(ctx, sql); err != nil {
				return err
			}
		}

		if err := insertSubjects(ctx, tx, subjects); err != nil {
			return fmt.Errorf("insert subjects: %w", err)
		}
		if err := insertCourses(ctx, tx, courses); err != nil {
			return fmt.Errorf("insert courses: %w", err)
		}
		if err := insertSections(ctx, tx, sections); err != nil {
			return fmt.Errorf("insert sections: %w", err)
		}

		_, err := tx.Exec(ctx, insertImportRun,
			run.Id,
			run.ImportedAt,
			run.Source,
			run.Entries,
			run.Courses,
			run.Sections,
			run.Skipped,
			run.Failures,
		)
		return err
	})
}

func insertSubjects(ctx context.Context, tx pgx.Tx, subjects []Subject) error {
	if len(subjects) == 0 {
		return nil
	}

	batch := pgx.Batch{}
	var queuedQueries []*pgx.QueuedQuery

	for _, subject := range subjects {
		queuedQueries = append(queuedQueries, batch.Queue(insertSubject, subject.Code, stripNul(subject.Name)))
	}

	for _, queuedQuery := range queuedQueries {
		queuedQuery.Exec(insertCallback)
	}

	return tx.SendBatch(ctx, &batch).Close()
}

func insertCourses(ctx context.Context, tx pgx.Tx, courses []Course) error {
	if len(courses) == 0 {
		return nil
	}

	batch := pgx.Batch{}
	var queuedQueries []*pgx.QueuedQuery

	for _, course := range courses {
		queuedQueries = append(
			queuedQueries,
			batch.Queue(
				insertCourse,
				course.Id,
				course.SubjectCode,
				course.CatalogNumber,
				course.SortKey,
				stripNul(course.Title),
				course.Level,
				course.Credits,
				stripNul(course.Notes),
				stripNul(course.Description),
				course.Format,
			),
		)
	}

	for _, queuedQuery := range queuedQueries {
		queuedQuery.Exec(insertCallback)
	}

	return tx.SendBatch(ctx, &batch).Close()
}

func insertSections(ctx context.Context, tx pgx.Tx, sections []Section) error {
	if len(sections) == 0 {
		return nil
	}

	batch := pgx.Batch{}
	var queuedQueries []*pgx.QueuedQuery

	for _, section := range sections {
		queuedQueries = append(
			queuedQueries,
			batch.Queue(
				insertSection,
				section.CourseId,
				section.Position,
				section.Code,
				section.Status,
				section.OfferingPeriod,
				section.DeliveryMode,
				section.Term,
				section.StartDate,
				section.EndDate,
				section.EnrollmentRemaining,
				section.EnrollmentMaximum,
				section.EnrollmentDisabled,
				section.WaitlistRemaining,
				section.WaitlistMaximum,
				section.WaitlistDisabled,
				section.Locations,
				section.Patterns,
				section.Tags,
				section.Instructors,
			),
		)
	}

	for _, queuedQuery := range queuedQueries {
		queuedQuery.Exec(insertCallback)
	}

	return tx.SendBatch(ctx, &batch).Close()
}

func (d *Database) Name() string {
	return "postgres"
}

// Publish stores the snapshot; it makes Database an importer.Sink.
func (d *Database) Publish(ctx context.Context, snapshot *importer.Snapshot) error {
	return d.SaveSnapshot(ctx, snapshot)
}
