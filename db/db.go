package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brequin/listings/catalog"
)

type Database struct {
	Pool *pgxpool.Pool
}

// Open connects and pings the database at url.
func Open(ctx context.Context, url string) (*Database, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Database{Pool: pool}, nil
}

func (d *Database) Close() {
	d.Pool.Close()
}

// CourseId is the stored identity of a course.
func CourseId(key catalog.CourseKey) string {
	const idTemplate = "%v#%v"
	return fmt.Sprintf(idTemplate, key.SubjectCode, key.Code)
}
