package domain

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// MaxURLLength bounds every URL field.
const MaxURLLength = 2048

var markupTag = regexp.MustCompile(`<[^>]*>`)

// TextRules are the ozzo rules every free-text field must pass after SanitizeText.
var TextRules = []validation.Rule{
	validation.Required,
	validation.By(printable),
}

// URLRules are the ozzo rules every URL field must pass after trimming.
var URLRules = []validation.Rule{
	validation.Required,
	validation.RuneLength(0, MaxURLLength),
	is.URL,
	validation.By(webURL),
}

// ID returns a pointer to id, for passing identities to constructors.
func ID(id int64) *int64 {
	return &id
}

// SanitizeText trims s and strips markup tags from it.
func SanitizeText(s string) string {
	return strings.TrimSpace(markupTag.ReplaceAllString(strings.TrimSpace(s), ""))
}

// ParseID converts textual input into an identity value.
func ParseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fieldError(KindInvalidArgument, field, field+" is not an integer")
	}
	if err := requirePositive(field, id); err != nil {
		return 0, err
	}
	return id, nil
}

// ParsePageNum converts textual input into a page number.
func ParsePageNum(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fieldError(KindInvalidArgument, "page number", "page number is not an integer")
	}
	if err := requirePositive("page number", int64(n)); err != nil {
		return 0, err
	}
	return n, nil
}

func requireText(field, raw string) (string, error) {
	v := SanitizeText(raw)
	if err := validation.Validate(v, TextRules...); err != nil {
		return "", fieldError(KindInvalidArgument, field, field+" is empty or insecure")
	}
	return v, nil
}

func requireURL(field, raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if err := validation.Validate(v, URLRules...); err != nil {
		return "", fieldError(KindInvalidArgument, field, field+" is invalid or insecure")
	}
	return v, nil
}

func requirePositive(field string, v int64) error {
	if v <= 0 {
		return fieldError(KindRange, field, "the "+field+" is not positive")
	}
	return nil
}

// nextIdentity validates an identity assignment. A set identity never changes.
func nextIdentity(field string, current, next *int64) (*int64, error) {
	if next == nil {
		if current != nil {
			return nil, fieldError(KindInvalidArgument, field, field+" is already assigned")
		}
		return nil, nil
	}
	if err := requirePositive(field, *next); err != nil {
		return nil, err
	}
	if current != nil && *current != *next {
		return nil, fieldError(KindInvalidArgument, field, field+" is already assigned")
	}
	v := *next
	return &v, nil
}

// fieldError labels the error with the snake_case form of field.
func fieldError(kind Kind, field, msg string) *Error {
	return &Error{Kind: kind, Field: strings.ReplaceAll(field, " ", "_"), Message: msg}
}

func identityValue(id *int64) (int64, bool) {
	if id == nil {
		return 0, false
	}
	return *id, true
}

func printable(value interface{}) error {
	s, _ := value.(string)
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if unicode.IsControl(r) {
			return validation.NewError("validation_control_character", "must not contain control characters")
		}
	}
	return nil
}

func webURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return validation.NewError("validation_url_parse", "must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return validation.NewError("validation_url_scheme", "must use http or https scheme")
	}
	if u.Host == "" {
		return validation.NewError("validation_url_host", "must have a host")
	}
	return nil
}
