package domain

import "encoding/json"

// Reference is one row of the reference table: a cited journal source.
type Reference struct {
	referenceID *int64
	author      string
	journalName string
	pageNum     int
	linkType    string
}

// NewReference builds a validated Reference. Pass a nil id for a reference not yet stored.
func NewReference(id *int64, author, journalName string, pageNum int, linkType string) (*Reference, error) {
	r := &Reference{}
	if err := r.SetReferenceID(id); err != nil {
		return nil, err
	}
	if err := r.SetAuthor(author); err != nil {
		return nil, err
	}
	if err := r.SetJournalName(journalName); err != nil {
		return nil, err
	}
	if err := r.SetPageNum(pageNum); err != nil {
		return nil, err
	}
	if err := r.SetLinkType(linkType); err != nil {
		return nil, err
	}
	return r, nil
}

// ReferenceID returns the primary key and whether one has been assigned.
func (r *Reference) ReferenceID() (int64, bool) {
	return identityValue(r.referenceID)
}

// SetReferenceID assigns the primary key.
func (r *Reference) SetReferenceID(id *int64) error {
	v, err := nextIdentity("reference id", r.referenceID, id)
	if err != nil {
		return err
	}
	r.referenceID = v
	return nil
}

// Author returns the cited author.
func (r *Reference) Author() string {
	return r.author
}

// SetAuthor sets the cited author.
func (r *Reference) SetAuthor(author string) error {
	v, err := requireText("author", author)
	if err != nil {
		return err
	}
	r.author = v
	return nil
}

// JournalName returns the journal the source appeared in.
func (r *Reference) JournalName() string {
	return r.journalName
}

// SetJournalName sets the journal the source appeared in.
func (r *Reference) SetJournalName(journalName string) error {
	v, err := requireText("journal name", journalName)
	if err != nil {
		return err
	}
	r.journalName = v
	return nil
}

// PageNum returns the cited page.
func (r *Reference) PageNum() int {
	return r.pageNum
}

// SetPageNum sets the cited page; it must be positive.
func (r *Reference) SetPageNum(pageNum int) error {
	if err := requirePositive("page number", int64(pageNum)); err != nil {
		return err
	}
	r.pageNum = pageNum
	return nil
}

// LinkType returns the URL of the cited source.
func (r *Reference) LinkType() string {
	return r.linkType
}

// SetLinkType sets the URL of the cited source.
func (r *Reference) SetLinkType(linkType string) error {
	v, err := requireURL("link type", linkType)
	if err != nil {
		return err
	}
	r.linkType = v
	return nil
}

// MarshalJSON renders the reference with a null referenceId when it has not been stored.
func (r *Reference) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ReferenceID *int64 `json:"referenceId"`
		Author      string `json:"author"`
		JournalName string `json:"journalName"`
		PageNum     int    `json:"pageNum"`
		LinkType    string `json:"linkType"`
	}{r.referenceID, r.author, r.journalName, r.pageNum, r.linkType})
}
