package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/brequin/listings/importer"
)

// CatalogRefreshedEvent announces that a new catalog snapshot is current.
// It carries counts only; consumers read the catalog from the store or
// the cache.
type CatalogRefreshedEvent struct {
	RunID      uuid.UUID `json:"run_id"`
	ImportedAt time.Time `json:"imported_at"`
	Source     string    `json:"source"`
	Entries    int       `json:"entries"`
	Subjects   int       `json:"subjects"`
	Courses    int       `json:"courses"`
	Sections   int       `json:"sections"`
	Skipped    int       `json:"skipped"`
}

func NewCatalogRefreshedEvent(snapshot *importer.Snapshot) CatalogRefreshedEvent {
	return CatalogRefreshedEvent{
		RunID:      snapshot.RunID,
		ImportedAt: snapshot.ImportedAt,
		Source:     snapshot.Source,
		Entries:    snapshot.Entries,
		Subjects:   len(snapshot.Catalog.Subjects),
		Courses:    len(snapshot.Catalog.Courses),
		Sections:   snapshot.Catalog.SectionCount(),
		Skipped:    len(snapshot.Failures),
	}
}
