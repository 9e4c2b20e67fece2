package repository

import (
	"context"
	"database/sql"

	"wiki-content/internal/domain"
)

const articleColumns = `article_id, category_type, text_content, article_title`

var (
	articleInsert = statement{domain.EntityArticle, "insert", `
		INSERT INTO article (category_type, text_content, article_title)
		VALUES ($1, $2, $3)
		RETURNING article_id`}
	articleUpdate = statement{domain.EntityArticle, "update", `
		UPDATE article
		SET category_type = $1, text_content = $2, article_title = $3
		WHERE article_id = $4`}
	articleDelete = statement{domain.EntityArticle, "delete", `
		DELETE FROM article WHERE article_id = $1`}
	articleByID = statement{domain.EntityArticle, "get_by_article_id", `
		SELECT ` + articleColumns + `
		FROM article
		WHERE article_id = $1`}
	articleByCategoryType = statement{domain.EntityArticle, "get_by_category_type", `
		SELECT ` + articleColumns + `
		FROM article
		WHERE category_type LIKE $1
		ORDER BY article_id`}
	articleByTitle = statement{domain.EntityArticle, "get_by_article_title", `
		SELECT ` + articleColumns + `
		FROM article
		WHERE article_title LIKE $1
		ORDER BY article_id`}
)

// InsertArticle stores a new article and assigns its generated article id.
// The article must not have an id yet.
func InsertArticle(ctx context.Context, db DBTX, a *domain.Article) error {
	if err := checkHandle(db); err != nil {
		return err
	}
	if a == nil {
		return missingEntity(domain.EntityArticle)
	}
	if _, ok := a.ArticleID(); ok {
		return domain.Persistence("not a new article", nil)
	}
	if err := entityValidator.ValidateArticle(a); err != nil {
		return invalidEntity(domain.EntityArticle, err)
	}

	id, err := articleInsert.queryID(ctx, db, a.CategoryType(), a.TextContent(), a.ArticleTitle())
	if err != nil {
		return err
	}
	if err := a.SetArticleID(&id); err != nil {
		return domain.Persistence("unable to assign generated article id", err)
	}
	return nil
}

// UpdateArticle rewrites the stored row of a previously inserted article.
func UpdateArticle(ctx context.Context, db DBTX, a *domain.Article) error {
	if err := checkHandle(db); err != nil {
		return err
	}
	if a == nil {
		return missingEntity(domain.EntityArticle)
	}
	id, ok := a.ArticleID()
	if !ok {
		return domain.Persistence("unable to update an article that does not exist", nil)
	}
	if err := entityValidator.ValidateArticle(a); err != nil {
		return invalidEntity(domain.EntityArticle, err)
	}

	return articleUpdate.exec(ctx, db, a.CategoryType(), a.TextContent(), a.ArticleTitle(), id)
}

// DeleteArticle removes the stored row. The in-memory article keeps its id.
func DeleteArticle(ctx context.Context, db DBTX, a *domain.Article) error {
	if err := checkHandle(db); err != nil {
		return err
	}
	if a == nil {
		return missingEntity(domain.EntityArticle)
	}
	id, ok := a.ArticleID()
	if !ok {
		return domain.Persistence("unable to delete an article that does not exist", nil)
	}

	return articleDelete.exec(ctx, db, id)
}

// GetArticleByArticleID returns the article with the given id, or nil if there is none.
func GetArticleByArticleID(ctx context.Context, db DBTX, articleID int64) (*domain.Article, error) {
	if err := checkHandle(db); err != nil {
		return nil, err
	}
	if err := requireID("article id", articleID); err != nil {
		return nil, err
	}

	items, err := queryAll(ctx, db, articleByID, scanArticle, articleID)
	if err != nil {
		return nil, err
	}
	return first(items), nil
}

// GetArticlesByCategoryType finds articles whose category contains categoryType.
func GetArticlesByCategoryType(ctx context.Context, db DBTX, categoryType string) (*Result[domain.Article], error) {
	return findArticles(ctx, db, articleByCategoryType, "category type", categoryType)
}

// GetArticlesByArticleTitle finds articles whose title contains articleTitle.
func GetArticlesByArticleTitle(ctx context.Context, db DBTX, articleTitle string) (*Result[domain.Article], error) {
	return findArticles(ctx, db, articleByTitle, "article title", articleTitle)
}

func findArticles(ctx context.Context, db DBTX, s statement, field, value string) (*Result[domain.Article], error) {
	if err := checkHandle(db); err != nil {
		return nil, err
	}
	pattern, err := containsPattern(field, value)
	if err != nil {
		return nil, err
	}

	items, err := queryAll(ctx, db, s, scanArticle, pattern)
	if err != nil {
		return nil, err
	}
	return newResult(items), nil
}

func scanArticle(rows *sql.Rows) (*domain.Article, error) {
	var (
		id                                      int64
		categoryType, textContent, articleTitle string
	)
	if err := rows.Scan(&id, &categoryType, &textContent, &articleTitle); err != nil {
		return nil, domain.Persistence("unable to get result set", err)
	}

	a, err := domain.NewArticle(&id, categoryType, articleTitle, textContent)
	if err != nil {
		return nil, domain.Persistence("unable to convert row to article", err)
	}
	return a, nil
}
