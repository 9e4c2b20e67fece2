package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"wiki-content/internal/domain"
	"wiki-content/internal/logger"
	"wiki-content/internal/metrics"
	"wiki-content/internal/repository"
	"wiki-content/internal/validator"
)

// Loader stores fixture records one at a time. A rejected record is reported
// in the LoadResult and does not stop the run or undo earlier records.
type Loader struct {
	out io.Writer
}

// NewLoader creates a Loader. When out is non-nil every stored entity is
// written to it as one JSON line.
func NewLoader(out io.Writer) *Loader {
	return &Loader{out: out}
}

// Load parses a seed file and stores its records through db.
func (l *Loader) Load(ctx context.Context, db repository.DBTX, r io.Reader) (*domain.LoadResult, error) {
	f, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return l.Apply(ctx, db, f)
}

// Apply stores the records of f. It returns early only when ctx is done.
func (l *Loader) Apply(ctx context.Context, db repository.DBTX, f *Fixture) (*domain.LoadResult, error) {
	start := time.Now()
	result := &domain.LoadResult{TotalRecords: f.Records()}
	log := logger.WithFields(slog.String("run_id", uuid.NewString()))
	log.InfoContext(ctx, "starting fixture load",
		slog.Int("articles", len(f.Articles)),
		slog.Int("references", len(f.References)),
		slog.Int("total_records", result.TotalRecords))

	for _, rec := range f.Articles {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		l.loadArticle(ctx, db, rec, result)
	}
	for _, rec := range f.References {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		l.loadReference(ctx, db, rec, result)
	}

	log.InfoContext(ctx, "fixture load completed",
		slog.Int("total_records", result.TotalRecords),
		slog.Int("success", result.SuccessCount),
		slog.Int("failed", result.FailureCount),
		slog.Duration("elapsed", time.Since(start).Round(time.Millisecond)))
	return result, nil
}

func (l *Loader) loadArticle(ctx context.Context, db repository.DBTX, rec ArticleRecord, result *domain.LoadResult) {
	a, err := domain.NewArticle(nil, rec.CategoryType, rec.ArticleTitle, rec.TextContent)
	if err == nil {
		err = repository.InsertArticle(ctx, db, a)
	}
	if err != nil {
		l.fail(ctx, result, rec.line, domain.EntityArticle, err)
		for _, link := range rec.Links {
			l.fail(ctx, result, link.line, domain.EntityLink, &domain.Error{
				Kind:    domain.KindInvalidArgument,
				Field:   "article_id",
				Message: "parent article was not stored",
			})
		}
		return
	}
	l.succeed(ctx, result, domain.EntityArticle, a)

	articleID, _ := a.ArticleID()
	for _, link := range rec.Links {
		l.loadLink(ctx, db, articleID, link, result)
	}
}

func (l *Loader) loadLink(ctx context.Context, db repository.DBTX, articleID int64, rec LinkRecord, result *domain.LoadResult) {
	link, err := domain.NewLink(nil, articleID, rec.LinkURL, rec.LinkDescription)
	if err == nil {
		err = repository.InsertLink(ctx, db, link)
	}
	if err != nil {
		l.fail(ctx, result, rec.line, domain.EntityLink, err)
		return
	}
	l.succeed(ctx, result, domain.EntityLink, link)
}

func (l *Loader) loadReference(ctx context.Context, db repository.DBTX, rec ReferenceRecord, result *domain.LoadResult) {
	ref, err := l.buildReference(rec)
	if err == nil {
		err = repository.InsertReference(ctx, db, ref)
	}
	if err != nil {
		l.fail(ctx, result, rec.line, domain.EntityReference, err)
		return
	}
	l.succeed(ctx, result, domain.EntityReference, ref)
}

func (l *Loader) buildReference(rec ReferenceRecord) (*domain.Reference, error) {
	pageNum, err := domain.ParsePageNum(rec.PageNum)
	if err != nil {
		return nil, err
	}
	return domain.NewReference(nil, rec.Author, rec.JournalName, pageNum, rec.LinkType)
}

func (l *Loader) succeed(ctx context.Context, result *domain.LoadResult, entity string, v json.Marshaler) {
	result.SuccessCount++
	metrics.ObserveFixtureRecord(entity, metrics.ResultSuccess)
	logger.DebugContext(ctx, "fixture record stored", slog.String("entity", entity))
	if l.out == nil {
		return
	}
	b, err := v.MarshalJSON()
	if err != nil {
		logger.WarnContext(ctx, "failed to encode stored entity", slog.String("entity", entity), slog.String("error", err.Error()))
		return
	}
	fmt.Fprintln(l.out, string(b))
}

func (l *Loader) fail(ctx context.Context, result *domain.LoadResult, row int, entity string, err error) {
	metrics.ObserveFixtureRecord(entity, metrics.ResultError)
	logger.WarnContext(ctx, "fixture record rejected",
		slog.String("entity", entity),
		slog.Int("row", row),
		slog.String("kind", domain.KindOf(err).String()),
		slog.String("error", err.Error()))

	result.Fail(recordErrors(row, entity, err)...)
}

// recordErrors splits err into one RecordError per offending field.
// Database failures are reported against the whole record.
func recordErrors(row int, entity string, err error) []domain.RecordError {
	if domain.KindOf(err) == domain.KindPersistence {
		return []domain.RecordError{{Row: row, Entity: entity, Field: "record", Reason: err.Error()}}
	}
	return validator.ConvertValidationErrors(row, entity, err)
}
