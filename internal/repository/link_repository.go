package repository

import (
	"context"
	"database/sql"

	"wiki-content/internal/domain"
)

const linkColumns = `link_id, article_id, link_url, link_description`

var (
	linkInsert = statement{domain.EntityLink, "insert", `
		INSERT INTO link (article_id, link_url, link_description)
		VALUES ($1, $2, $3)
		RETURNING link_id`}
	linkUpdate = statement{domain.EntityLink, "update", `
		UPDATE link
		SET article_id = $1, link_url = $2, link_description = $3
		WHERE link_id = $4`}
	linkDelete = statement{domain.EntityLink, "delete", `
		DELETE FROM link WHERE link_id = $1`}
	linkByID = statement{domain.EntityLink, "get_by_link_id", `
		SELECT ` + linkColumns + `
		FROM link
		WHERE link_id = $1`}
	linkByURL = statement{domain.EntityLink, "get_by_link_url", `
		SELECT ` + linkColumns + `
		FROM link
		WHERE link_url LIKE $1
		ORDER BY link_id`}
	linkByArticleID = statement{domain.EntityLink, "get_by_article_id", `
		SELECT ` + linkColumns + `
		FROM link
		WHERE article_id = $1
		ORDER BY link_id`}
)

// InsertLink stores a new link and assigns its generated link id. The
// referenced article must already exist.
func InsertLink(ctx context.Context, db DBTX, l *domain.Link) error {
	if err := checkHandle(db); err != nil {
		return err
	}
	if l == nil {
		return missingEntity(domain.EntityLink)
	}
	if _, ok := l.LinkID(); ok {
		return domain.Persistence("not a new link", nil)
	}
	if err := entityValidator.ValidateLink(l); err != nil {
		return invalidEntity(domain.EntityLink, err)
	}

	id, err := linkInsert.queryID(ctx, db, l.ArticleID(), l.LinkURL(), l.LinkDescription())
	if err != nil {
		return err
	}
	if err := l.SetLinkID(&id); err != nil {
		return domain.Persistence("unable to assign generated link id", err)
	}
	return nil
}

// UpdateLink rewrites the stored row of a previously inserted link.
func UpdateLink(ctx context.Context, db DBTX, l *domain.Link) error {
	if err := checkHandle(db); err != nil {
		return err
	}
	if l == nil {
		return missingEntity(domain.EntityLink)
	}
	id, ok := l.LinkID()
	if !ok {
		return domain.Persistence("unable to update a link that does not exist", nil)
	}
	if err := entityValidator.ValidateLink(l); err != nil {
		return invalidEntity(domain.EntityLink, err)
	}

	return linkUpdate.exec(ctx, db, l.ArticleID(), l.LinkURL(), l.LinkDescription(), id)
}

// DeleteLink removes the stored row. The in-memory link keeps its id.
func DeleteLink(ctx context.Context, db DBTX, l *domain.Link) error {
	if err := checkHandle(db); err != nil {
		return err
	}
	if l == nil {
		return missingEntity(domain.EntityLink)
	}
	id, ok := l.LinkID()
	if !ok {
		return domain.Persistence("unable to delete a link that does not exist", nil)
	}

	return linkDelete.exec(ctx, db, id)
}

// GetLinkByLinkID returns the link with the given id, or nil if there is none.
func GetLinkByLinkID(ctx context.Context, db DBTX, linkID int64) (*domain.Link, error) {
	if err := checkHandle(db); err != nil {
		return nil, err
	}
	if err := requireID("link id", linkID); err != nil {
		return nil, err
	}

	items, err := queryAll(ctx, db, linkByID, scanLink, linkID)
	if err != nil {
		return nil, err
	}
	return first(items), nil
}

// GetLinksByLinkURL finds links whose URL contains linkURL.
func GetLinksByLinkURL(ctx context.Context, db DBTX, linkURL string) (*Result[domain.Link], error) {
	if err := checkHandle(db); err != nil {
		return nil, err
	}
	pattern, err := containsPattern("link url", linkURL)
	if err != nil {
		return nil, err
	}

	items, err := queryAll(ctx, db, linkByURL, scanLink, pattern)
	if err != nil {
		return nil, err
	}
	return newResult(items), nil
}

// GetLinksByArticleID returns the links attached to one article.
func GetLinksByArticleID(ctx context.Context, db DBTX, articleID int64) (*Result[domain.Link], error) {
	if err := checkHandle(db); err != nil {
		return nil, err
	}
	if err := requireID("article id", articleID); err != nil {
		return nil, err
	}

	items, err := queryAll(ctx, db, linkByArticleID, scanLink, articleID)
	if err != nil {
		return nil, err
	}
	return newResult(items), nil
}

func scanLink(rows *sql.Rows) (*domain.Link, error) {
	var (
		id, articleID            int64
		linkURL, linkDescription string
	)
	if err := rows.Scan(&id, &articleID, &linkURL, &linkDescription); err != nil {
		return nil, domain.Persistence("unable to get result set", err)
	}

	l, err := domain.NewLink(&id, articleID, linkURL, linkDescription)
	if err != nil {
		return nil, domain.Persistence("unable to convert row to link", err)
	}
	return l, nil
}
