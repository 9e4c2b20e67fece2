package repository

import (
	"context"
	"database/sql"

	"wiki-content/internal/domain"
)

const referenceColumns = `reference_id, author, journal_name, link_type, page_num`

var (
	referenceInsert = statement{domain.EntityReference, "insert", `
		INSERT INTO reference (author, journal_name, link_type, page_num)
		VALUES ($1, $2, $3, $4)
		RETURNING reference_id`}
	referenceUpdate = statement{domain.EntityReference, "update", `
		UPDATE reference
		SET author = $1, journal_name = $2, link_type = $3, page_num = $4
		WHERE reference_id = $5`}
	referenceDelete = statement{domain.EntityReference, "delete", `
		DELETE FROM reference WHERE reference_id = $1`}
	referenceByID = statement{domain.EntityReference, "get_by_reference_id", `
		SELECT ` + referenceColumns + `
		FROM reference
		WHERE reference_id = $1`}
	referenceByAuthor = statement{domain.EntityReference, "get_by_author", `
		SELECT ` + referenceColumns + `
		FROM reference
		WHERE author LIKE $1
		ORDER BY reference_id`}
	referenceByJournalName = statement{domain.EntityReference, "get_by_journal_name", `
		SELECT ` + referenceColumns + `
		FROM reference
		WHERE journal_name LIKE $1
		ORDER BY reference_id`}
)

// InsertReference stores a new reference and assigns its generated reference id.
func InsertReference(ctx context.Context, db DBTX, r *domain.Reference) error {
	if err := checkHandle(db); err != nil {
		return err
	}
	if r == nil {
		return missingEntity(domain.EntityReference)
	}
	if _, ok := r.ReferenceID(); ok {
		return domain.Persistence("not a new reference", nil)
	}
	if err := entityValidator.ValidateReference(r); err != nil {
		return invalidEntity(domain.EntityReference, err)
	}

	id, err := referenceInsert.queryID(ctx, db, r.Author(), r.JournalName(), r.LinkType(), r.PageNum())
	if err != nil {
		return err
	}
	if err := r.SetReferenceID(&id); err != nil {
		return domain.Persistence("unable to assign generated reference id", err)
	}
	return nil
}

// UpdateReference rewrites the stored row of a previously inserted reference.
func UpdateReference(ctx context.Context, db DBTX, r *domain.Reference) error {
	if err := checkHandle(db); err != nil {
		return err
	}
	if r == nil {
		return missingEntity(domain.EntityReference)
	}
	id, ok := r.ReferenceID()
	if !ok {
		return domain.Persistence("unable to update a reference that does not exist", nil)
	}
	if err := entityValidator.ValidateReference(r); err != nil {
		return invalidEntity(domain.EntityReference, err)
	}

	return referenceUpdate.exec(ctx, db, r.Author(), r.JournalName(), r.LinkType(), r.PageNum(), id)
}

// DeleteReference removes the stored row. The in-memory reference keeps its id.
func DeleteReference(ctx context.Context, db DBTX, r *domain.Reference) error {
	if err := checkHandle(db); err != nil {
		return err
	}
	if r == nil {
		return missingEntity(domain.EntityReference)
	}
	id, ok := r.ReferenceID()
	if !ok {
		return domain.Persistence("unable to delete a reference that does not exist", nil)
	}

	return referenceDelete.exec(ctx, db, id)
}

// GetReferenceByReferenceID returns the reference with the given id, or nil if there is none.
func GetReferenceByReferenceID(ctx context.Context, db DBTX, referenceID int64) (*domain.Reference, error) {
	if err := checkHandle(db); err != nil {
		return nil, err
	}
	if err := requireID("reference id", referenceID); err != nil {
		return nil, err
	}

	items, err := queryAll(ctx, db, referenceByID, scanReference, referenceID)
	if err != nil {
		return nil, err
	}
	return first(items), nil
}

// GetReferencesByAuthor finds references whose author contains author.
func GetReferencesByAuthor(ctx context.Context, db DBTX, author string) (*Result[domain.Reference], error) {
	return findReferences(ctx, db, referenceByAuthor, "author", author)
}

// GetReferencesByJournalName finds references whose journal name contains journalName.
func GetReferencesByJournalName(ctx context.Context, db DBTX, journalName string) (*Result[domain.Reference], error) {
	return findReferences(ctx, db, referenceByJournalName, "journal name", journalName)
}

func findReferences(ctx context.Context, db DBTX, s statement, field, value string) (*Result[domain.Reference], error) {
	if err := checkHandle(db); err != nil {
		return nil, err
	}
	pattern, err := containsPattern(field, value)
	if err != nil {
		return nil, err
	}

	items, err := queryAll(ctx, db, s, scanReference, pattern)
	if err != nil {
		return nil, err
	}
	return newResult(items), nil
}

func scanReference(rows *sql.Rows) (*domain.Reference, error) {
	var (
		id                            int64
		author, journalName, linkType string
		pageNum                       int
	)
	if err := rows.Scan(&id, &author, &journalName, &linkType, &pageNum); err != nil {
		return nil, domain.Persistence("unable to get result set", err)
	}

	r, err := domain.NewReference(&id, author, journalName, pageNum, linkType)
	if err != nil {
		return nil, domain.Persistence("unable to convert row to reference", err)
	}
	return r, nil
}
