package repository_test

import (
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"wiki-content/internal/domain"
)

// newMock returns a sqlmock-backed handle whose expectations are checked on cleanup.
func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func quote(q string) string {
	return regexp.QuoteMeta(q)
}

func articleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"article_id", "category_type", "text_content", "article_title"})
}

func referenceRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"reference_id", "author", "journal_name", "link_type", "page_num"})
}

func linkRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"link_id", "article_id", "link_url", "link_description"})
}

func newArticle(t *testing.T, id *int64) *domain.Article {
	t.Helper()
	a, err := domain.NewArticle(id, "Science", "The science of things", "Paragraphs")
	require.NoError(t, err)
	return a
}

func newReference(t *testing.T, id *int64) *domain.Reference {
	t.Helper()
	r, err := domain.NewReference(id, "Ada Lovelace", "Journal of Engines", 12, "https://example.com/notes")
	require.NoError(t, err)
	return r
}

func newLink(t *testing.T, id *int64, articleID int64) *domain.Link {
	t.Helper()
	l, err := domain.NewLink(id, articleID, "https://go.dev/doc/", "Go documentation")
	require.NoError(t, err)
	return l
}
