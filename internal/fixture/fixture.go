// Package fixture loads YAML seed files of articles, links, and references.
package fixture

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Fixture is the decoded content of a seed file.
type Fixture struct {
	Articles   []ArticleRecord   `yaml:"articles"`
	References []ReferenceRecord `yaml:"references"`
}

// ArticleRecord is one article with the links attached to it.
type ArticleRecord struct {
	CategoryType string       `yaml:"category_type"`
	ArticleTitle string       `yaml:"article_title"`
	TextContent  string       `yaml:"text_content"`
	Links        []LinkRecord `yaml:"links"`

	line int
}

// LinkRecord is one link. Its article id comes from the enclosing article.
type LinkRecord struct {
	LinkURL         string `yaml:"link_url"`
	LinkDescription string `yaml:"link_description"`

	line int
}

// ReferenceRecord is one reference. PageNum is kept as text so that a bad
// value rejects only its own record.
type ReferenceRecord struct {
	Author      string `yaml:"author"`
	JournalName string `yaml:"journal_name"`
	PageNum     string `yaml:"page_num"`
	LinkType    string `yaml:"link_type"`

	line int
}

// Line returns the line in the seed file where the record starts.
func (r ArticleRecord) Line() int { return r.line }

// Line returns the line in the seed file where the record starts.
func (r LinkRecord) Line() int { return r.line }

// Line returns the line in the seed file where the record starts.
func (r ReferenceRecord) Line() int { return r.line }

func (r *ArticleRecord) UnmarshalYAML(n *yaml.Node) error {
	type plain ArticleRecord
	r.line = n.Line
	return n.Decode((*plain)(r))
}

func (r *LinkRecord) UnmarshalYAML(n *yaml.Node) error {
	type plain LinkRecord
	r.line = n.Line
	return n.Decode((*plain)(r))
}

func (r *ReferenceRecord) UnmarshalYAML(n *yaml.Node) error {
	type plain ReferenceRecord
	r.line = n.Line
	return n.Decode((*plain)(r))
}

// Parse decodes a seed file. Unknown top-level keys are rejected.
func Parse(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// Records returns the number of entities the fixture describes.
func (f *Fixture) Records() int {
	n := len(f.References)
	for _, a := range f.Articles {
		n += 1 + len(a.Links)
	}
	return n
}
