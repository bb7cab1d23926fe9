package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/brequin/listings/cache"
	"github.com/brequin/listings/catalog"
	"github.com/brequin/listings/config"
	"github.com/brequin/listings/db"
	"github.com/brequin/listings/export"
	"github.com/brequin/listings/importer"
	"github.com/brequin/listings/logger"
	"github.com/brequin/listings/notify"
	"github.com/brequin/listings/workday"
)

func main() {
	configPath := flag.String("config", "", "path to a config file")
	once := flag.Bool("once", false, "import once even when a refresh interval is configured")
	xlsxPath := flag.String("xlsx", "", "write the catalog to this Excel workbook")
	icsPath := flag.String("ics", "", "write meeting patterns to this iCalendar file")
	subject := flag.String("subject", "", "limit exports to one subject code")
	flag.Parse()

	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := workday.NewClient(cfg.Export.URL, cfg.Export.Timeout)
	client.MaxBodyBytes = cfg.Export.MaxBodyBytes

	sinks, closeSinks, err := openSinks(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("open sinks", zap.Error(err))
	}
	defer closeSinks()

	im := importer.New(client, zapLogger.Named("importer"), sinks...)

	snapshot, err := im.Refresh(ctx)
	if err != nil {
		zapLogger.Fatal("import failed", zap.Error(err))
	}
	report(os.Stdout, snapshot)

	courses := export.FilterSubject(snapshot.Catalog.SortedCourses(), *subject)
	if *xlsxPath != "" {
		if err := writeWorkbook(*xlsxPath, courses); err != nil {
			zapLogger.Fatal("workbook export failed", zap.String("path", *xlsxPath), zap.Error(err))
		}
		zapLogger.Info("workbook written", zap.String("path", *xlsxPath), zap.Int("courses", len(courses)))
	}
	if *icsPath != "" {
		if err := writeCalendar(*icsPath, courses, snapshot.ImportedAt); err != nil {
			zapLogger.Fatal("calendar export failed", zap.String("path", *icsPath), zap.Error(err))
		}
		zapLogger.Info("calendar written", zap.String("path", *icsPath), zap.Int("courses", len(courses)))
	}

	if *once || cfg.Export.RefreshInterval == 0 {
		return
	}

	zapLogger.Info("watching for changes", zap.Duration("interval", cfg.Export.RefreshInterval))
	im.Watch(ctx, cfg.Export.RefreshInterval)
}

// openSinks connects every configured downstream. An empty address
// leaves that downstream out.
func openSinks(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) ([]importer.Sink, func(), error) {
	var sinks []importer.Sink
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.Database.URL != "" {
		database, err := db.Open(ctx, cfg.Database.URL)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, database.Close)
		if err := database.Migrate(zapLogger.Named("migrate")); err != nil {
			closeAll()
			return nil, nil, err
		}
		sinks = append(sinks, database)
	}

	if cfg.Redis.Addr != "" {
		c, err := cache.New(cfg.Redis, zapLogger.Named("cache"))
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, func() { _ = c.Close() })
		sinks = append(sinks, c)
	}

	if cfg.AMQP.URL != "" {
		sinks = append(sinks, notify.NewPublisher(cfg.AMQP, zapLogger.Named("notify")))
	}

	return sinks, closeAll, nil
}

// report prints the run summary and one line per skipped record.
func report(w io.Writer, snapshot *importer.Snapshot) {
	imported := snapshot.Entries - len(snapshot.Failures)
	fmt.Fprintf(w, "Imported %d of %d records: %d subjects, %d courses, %d sections (run %s)\n",
		imported,
		snapshot.Entries,
		len(snapshot.Catalog.Subjects),
		len(snapshot.Catalog.Courses),
		snapshot.Catalog.SectionCount(),
		snapshot.RunID,
	)
	if len(snapshot.Failures) == 0 {
		return
	}

	fmt.Fprintf(w, "Skipped %d records:\n", len(snapshot.Failures))
	for _, failure := range snapshot.Failures {
		title := strings.TrimSpace(failure.Title)
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(w, "  #%d %s: %s\n", failure.Index, title, failure.Reason)
	}
}

func writeWorkbook(path string, courses []catalog.Course) error {
	buf, err := export.Workbook(courses)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func writeCalendar(path string, courses []catalog.Course, stamp time.Time) error {
	return os.WriteFile(path, []byte(export.Calendar(courses, stamp).Serialize()), 0o644)
}
