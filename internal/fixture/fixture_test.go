package fixture_test

import (
	"bytes"
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiki-content/internal/domain"
	"wiki-content/internal/fixture"
	"wiki-content/internal/logger"
)

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

func expectInsert(mock sqlmock.Sqlmock, table, idColumn string, id int64, args ...driver.Value) {
	mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO " + table)).
		ExpectQuery().
		WithArgs(args...).
		WillReturnRows(sqlmock.NewRows([]string{idColumn}).AddRow(id))
}

func TestParse(t *testing.T) {
	t.Run("seed file", func(t *testing.T) {
		f, err := os.Open("testdata/seed.yaml")
		require.NoError(t, err)
		defer f.Close()

		fx, err := fixture.Parse(f)
		require.NoError(t, err)
		require.Len(t, fx.Articles, 2)
		require.Len(t, fx.References, 2)
		assert.Equal(t, 7, fx.Records())

		assert.Equal(t, 2, fx.Articles[0].Line())
		assert.Equal(t, 6, fx.Articles[0].Links[0].Line())
		assert.Equal(t, "637", fx.References[0].PageNum)
		assert.Equal(t, "first", fx.References[1].PageNum)
	})

	t.Run("empty input", func(t *testing.T) {
		fx, err := fixture.Parse(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, 0, fx.Records())
	})

	t.Run("unknown section", func(t *testing.T) {
		_, err := fixture.Parse(strings.NewReader("comments: []\n"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := fixture.Parse(strings.NewReader("articles: [\n"))
		assert.Error(t, err)
	})
}

func TestLoader_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("stores valid records and reports the rest", func(t *testing.T) {
		db, mock := newMock(t)
		expectInsert(mock, "article", "article_id", 1,
			"Networking", "TCP provides reliable, ordered delivery of a byte stream.", "Transmission Control Protocol")
		expectInsert(mock, "link", "link_id", 10,
			int64(1), "https://www.rfc-editor.org/rfc/rfc9293", "RFC 9293")
		expectInsert(mock, "reference", "reference_id", 100,
			"Vinton Cerf", "IEEE Transactions on Communications", "https://doi.org/10.1109/TCOM.1974.1092259", 637)

		f, err := os.Open("testdata/seed.yaml")
		require.NoError(t, err)
		defer f.Close()

		var out bytes.Buffer
		result, err := fixture.NewLoader(&out).Load(ctx, db, f)
		require.NoError(t, err)

		assert.Equal(t, 7, result.TotalRecords)
		assert.Equal(t, 3, result.SuccessCount)
		assert.Equal(t, 4, result.FailureCount)

		fields := make(map[string]domain.RecordError)
		for _, e := range result.Errors {
			fields[e.Entity+"."+e.Field] = e
		}
		assert.Contains(t, fields, "link.link_url")
		assert.Contains(t, fields, "article.category_type")
		assert.Contains(t, fields, "link.article_id")
		assert.Contains(t, fields, "reference.page_number")
		assert.Equal(t, 10, fields["article.category_type"].Row)

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3)
		assert.JSONEq(t, `{"linkId":10,"articleId":1,"linkUrl":"https://www.rfc-editor.org/rfc/rfc9293","linkDescription":"RFC 9293"}`, lines[1])
	})

	t.Run("database failure rejects only that record", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO reference")).
			ExpectQuery().
			WillReturnError(errors.New("connection refused"))
		expectInsert(mock, "reference", "reference_id", 2,
			"Grace Hopper", "Datamation", "https://example.com/cobol", 5)

		doc := `
references:
  - author: Ada Lovelace
    journal_name: Notes
    page_num: 1
    link_type: https://example.com/notes
  - author: Grace Hopper
    journal_name: Datamation
    page_num: 5
    link_type: https://example.com/cobol
`
		result, err := fixture.NewLoader(nil).Load(ctx, db, strings.NewReader(doc))
		require.NoError(t, err)
		assert.Equal(t, 1, result.SuccessCount)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "record", result.Errors[0].Field)
		assert.Equal(t, 3, result.Errors[0].Row)
		assert.Contains(t, result.Errors[0].Reason, "connection refused")
	})

	t.Run("rejected and stored records are logged", func(t *testing.T) {
		previous := logger.GetLogger()
		t.Cleanup(func() { logger.SetLogger(previous) })
		var logs bytes.Buffer
		logger.SetLogger(logger.New(&logs, "debug"))

		db, mock := newMock(t)
		expectInsert(mock, "article", "article_id", 5, "Science", "Body", "Kept")

		doc := `
articles:
  - category_type: Science
    article_title: Kept
    text_content: Body
  - category_type: Science
    article_title: ""
    text_content: Body
`
		result, err := fixture.NewLoader(nil).Load(ctx, db, strings.NewReader(doc))
		require.NoError(t, err)
		assert.Equal(t, 1, result.SuccessCount)

		output := logs.String()
		assert.Contains(t, output, `"msg":"fixture record stored"`)
		assert.Contains(t, output, `"msg":"fixture record rejected"`)
		assert.Contains(t, output, `"level":"WARN"`)
		assert.Contains(t, output, `"row":6`)
	})

	t.Run("canceled context stops the run", func(t *testing.T) {
		db, _ := newMock(t)
		ctx, cancel := context.WithCancel(ctx)
		cancel()

		doc := "articles:\n  - category_type: A\n    article_title: B\n    text_content: C\n"
		result, err := fixture.NewLoader(nil).Load(ctx, db, strings.NewReader(doc))
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, result.SuccessCount)
	})

	t.Run("parse failure", func(t *testing.T) {
		db, _ := newMock(t)

		_, err := fixture.NewLoader(nil).Load(ctx, db, strings.NewReader("articles: {"))
		assert.Error(t, err)
	})
}
