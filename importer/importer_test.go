package importer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brequin/listings/workday"
)

type fakeFetcher struct {
	mu       sync.Mutex
	contents [][]byte
	errs     []error
	calls    int
	fetched  chan struct{}
}

func (f *fakeFetcher) Fetch(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.calls
	if i >= len(f.contents) {
		i = len(f.contents) - 1
	}
	f.calls++
	if f.fetched != nil {
		select {
		case f.fetched <- struct{}{}:
		default:
		}
	}
	return f.contents[i], f.errs[i]
}

func (f *fakeFetcher) Source() string {
	return "test://listings"
}

type recordingSink struct {
	err       error
	snapshots []*Snapshot
}

func (s *recordingSink) Name() string {
	return "recording"
}

func (s *recordingSink) Publish(ctx context.Context, snapshot *Snapshot) error {
	s.snapshots = append(s.snapshots, snapshot)
	return s.err
}

func entry(title, subject, format string) workday.Entry {
	return workday.Entry{
		CourseTitle:            title,
		Subject:                subject,
		AcademicLevel:          "Undergraduate",
		Credits:                "3",
		DeliveryMode:           "In-Person",
		EnrolledCapacity:       "10/40",
		WaitlistCapacity:       "0/0",
		InstructionalFormat:    format,
		SectionDetails:         "AK 233 | T-F | 2:00 PM - 3:50 PM",
		CourseSectionStartDate: "2024-08-22",
		CourseSectionEndDate:   "2024-10-11",
		StartingPeriodType:     "A Term",
	}
}

func document(t *testing.T, entries ...workday.Entry) []byte {
	t.Helper()
	if entries == nil {
		entries = []workday.Entry{}
	}
	content, err := json.Marshal(workday.Report{Entries: entries})
	if err != nil {
		t.Fatal(err)
	}
	return content
}

func TestRefresh(t *testing.T) {
	fetcher := &fakeFetcher{
		contents: [][]byte{document(t,
			entry("CS 1101 - Introduction To Program Design", "Computer Science", "Lecture"),
			entry("CS 1101 - Introduction To Program Design", "Computer Science", "Lecture"),
			entry("CS 2102 - Object-Oriented Design Concepts", "Computer Science", "Unknown"),
		)},
		errs: []error{nil},
	}
	sink := &recordingSink{}
	im := New(fetcher, nil, sink)

	if im.Current() != nil {
		t.Fatalf("Current before refresh = %+v", im.Current())
	}

	snapshot, err := im.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if im.Current() != snapshot {
		t.Errorf("Current is not the refreshed snapshot")
	}
	if snapshot.Entries != 3 || len(snapshot.Catalog.Courses) != 1 || len(snapshot.Catalog.Courses[0].Sections) != 2 {
		t.Errorf("snapshot = %+v", snapshot)
	}
	if len(snapshot.Failures) != 1 || snapshot.Failures[0].Title != "CS 2102 - Object-Oriented Design Concepts" {
		t.Errorf("Failures = %+v", snapshot.Failures)
	}
	if snapshot.Source != "test://listings" || snapshot.ImportedAt.IsZero() {
		t.Errorf("Source/ImportedAt = %q/%v", snapshot.Source, snapshot.ImportedAt)
	}
	if len(sink.snapshots) != 1 || sink.snapshots[0] != snapshot {
		t.Errorf("sink saw %d snapshots", len(sink.snapshots))
	}
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	fetchErr := errors.New("connection refused")
	fetcher := &fakeFetcher{
		contents: [][]byte{
			document(t, entry("CS 1101 - Introduction To Program Design", "Computer Science", "Lecture")),
			nil,
			[]byte(`{"Report_Entry":[{"Credits":3}]}`),
		},
		errs: []error{nil, fetchErr, nil},
	}
	sink := &recordingSink{}
	im := New(fetcher, nil, sink)

	first, err := im.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if _, err := im.Refresh(context.Background()); !errors.Is(err, fetchErr) {
		t.Errorf("second Refresh err = %v, want fetch error", err)
	}
	if im.Current() != first {
		t.Errorf("Current changed after a failed fetch")
	}

	_, err = im.Refresh(context.Background())
	var decodeErr *workday.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("third Refresh err = %v, want *workday.DecodeError", err)
	}
	if im.Current() != first {
		t.Errorf("Current changed after a failed decode")
	}
	if len(sink.snapshots) != 1 {
		t.Errorf("sink saw %d snapshots, want 1", len(sink.snapshots))
	}
}

func TestRefreshRebuildsFromScratch(t *testing.T) {
	fetcher := &fakeFetcher{
		contents: [][]byte{document(t,
			entry("MA 1021 - Calculus I", "Mathematical Sciences", "Lecture"),
		)},
		errs: []error{nil},
	}
	im := New(fetcher, nil)

	first, err := im.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	second, err := im.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if first.RunID == second.RunID {
		t.Errorf("two runs share id %v", first.RunID)
	}
	if len(second.Catalog.Courses) != 1 || len(second.Catalog.Courses[0].Sections) != 1 {
		t.Errorf("second catalog = %+v, want one course with one section", second.Catalog)
	}
	if len(first.Catalog.Courses[0].Sections) != 1 {
		t.Errorf("first snapshot was modified by the second run")
	}
}

func TestRefreshSinkErrorIsNotFatal(t *testing.T) {
	fetcher := &fakeFetcher{
		contents: [][]byte{document(t)},
		errs:     []error{nil},
	}
	failing := &recordingSink{err: errors.New("redis down")}
	after := &recordingSink{}
	im := New(fetcher, nil, failing, after)

	snapshot, err := im.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if im.Current() != snapshot {
		t.Errorf("Current is not the refreshed snapshot")
	}
	if len(after.snapshots) != 1 {
		t.Errorf("later sink skipped after an earlier sink failed")
	}
	if snapshot.Entries != 0 || len(snapshot.Catalog.Courses) != 0 {
		t.Errorf("empty report produced %+v", snapshot)
	}
}

func TestWatch(t *testing.T) {
	fetcher := &fakeFetcher{
		contents: [][]byte{document(t, entry("MA 1021 - Calculus I", "Mathematical Sciences", "Lecture"))},
		errs:     []error{nil},
		fetched:  make(chan struct{}, 1),
	}
	im := New(fetcher, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		im.Watch(ctx, 10*time.Millisecond)
		close(done)
	}()

	select {
	case <-fetcher.fetched:
	case <-time.After(5 * time.Second):
		t.Fatal("Watch never refreshed")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
}
