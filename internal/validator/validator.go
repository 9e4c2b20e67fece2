package validator

import (
	"errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"wiki-content/internal/domain"
)

var errMissingEntity = validation.NewError("entity_required", "entity is nil")

// Validator re-checks whole entities before they reach the database.
// Entities built with the domain constructors always pass; zero values do not.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateArticle validates an Article entity.
func (v *Validator) ValidateArticle(a *domain.Article) error {
	if a == nil {
		return validation.Errors{"article": errMissingEntity}
	}
	return validation.Errors{
		"category_type": validation.Validate(a.CategoryType(), domain.TextRules...),
		"article_title": validation.Validate(a.ArticleTitle(), domain.TextRules...),
		"text_content":  validation.Validate(a.TextContent(), domain.TextRules...),
	}.Filter()
}

// ValidateReference validates a Reference entity.
func (v *Validator) ValidateReference(r *domain.Reference) error {
	if r == nil {
		return validation.Errors{"reference": errMissingEntity}
	}
	return validation.Errors{
		"author":       validation.Validate(r.Author(), domain.TextRules...),
		"journal_name": validation.Validate(r.JournalName(), domain.TextRules...),
		"page_num":     validation.Validate(r.PageNum(), validation.Required, validation.Min(1)),
		"link_type":    validation.Validate(r.LinkType(), domain.URLRules...),
	}.Filter()
}

// ValidateLink validates a Link entity.
func (v *Validator) ValidateLink(l *domain.Link) error {
	if l == nil {
		return validation.Errors{"link": errMissingEntity}
	}
	return validation.Errors{
		"article_id":       validation.Validate(l.ArticleID(), validation.Required, validation.Min(int64(1))),
		"link_url":         validation.Validate(l.LinkURL(), domain.URLRules...),
		"link_description": validation.Validate(l.LinkDescription(), domain.TextRules...),
	}.Filter()
}

// ConvertValidationErrors converts ozzo and domain validation errors to RecordErrors,
// ordered by field.
func ConvertValidationErrors(rowNum int, entity string, err error) []domain.RecordError {
	if err == nil {
		return nil
	}

	var ve validation.Errors
	if errors.As(err, &ve) {
		fields := make([]string, 0, len(ve))
		for field := range ve {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		out := make([]domain.RecordError, 0, len(fields))
		for _, field := range fields {
			out = append(out, domain.RecordError{
				Row:    rowNum,
				Entity: entity,
				Field:  field,
				Reason: ve[field].Error(),
			})
		}
		return out
	}

	field := "unknown"
	var de *domain.Error
	if errors.As(err, &de) && de.Field != "" {
		field = de.Field
	}
	return []domain.RecordError{{
		Row:    rowNum,
		Entity: entity,
		Field:  field,
		Reason: err.Error(),
	}}
}
