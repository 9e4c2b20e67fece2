package domain

import "encoding/json"

// Link is one row of the link table: an outbound URL attached to an article.
type Link struct {
	linkID          *int64
	articleID       int64
	linkURL         string
	linkDescription string
}

// NewLink builds a validated Link. Pass a nil id for a link not yet stored.
func NewLink(id *int64, articleID int64, linkURL, linkDescription string) (*Link, error) {
	l := &Link{}
	if err := l.SetLinkID(id); err != nil {
		return nil, err
	}
	if err := l.SetArticleID(articleID); err != nil {
		return nil, err
	}
	if err := l.SetLinkURL(linkURL); err != nil {
		return nil, err
	}
	if err := l.SetLinkDescription(linkDescription); err != nil {
		return nil, err
	}
	return l, nil
}

// LinkID returns the primary key and whether one has been assigned.
func (l *Link) LinkID() (int64, bool) {
	return identityValue(l.linkID)
}

// SetLinkID assigns the primary key.
func (l *Link) SetLinkID(id *int64) error {
	v, err := nextIdentity("link id", l.linkID, id)
	if err != nil {
		return err
	}
	l.linkID = v
	return nil
}

// ArticleID returns the article this link belongs to.
func (l *Link) ArticleID() int64 {
	return l.articleID
}

// SetArticleID points the link at an article.
func (l *Link) SetArticleID(articleID int64) error {
	if err := requirePositive("article id", articleID); err != nil {
		return err
	}
	l.articleID = articleID
	return nil
}

// LinkURL returns the target URL.
func (l *Link) LinkURL() string {
	return l.linkURL
}

// SetLinkURL sets the target URL.
func (l *Link) SetLinkURL(linkURL string) error {
	v, err := requireURL("link url", linkURL)
	if err != nil {
		return err
	}
	l.linkURL = v
	return nil
}

// LinkDescription returns the link text.
func (l *Link) LinkDescription() string {
	return l.linkDescription
}

// SetLinkDescription sets the link text.
func (l *Link) SetLinkDescription(linkDescription string) error {
	v, err := requireText("link description", linkDescription)
	if err != nil {
		return err
	}
	l.linkDescription = v
	return nil
}

// MarshalJSON renders the link with a null linkId when it has not been stored.
func (l *Link) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		LinkID          *int64 `json:"linkId"`
		ArticleID       int64  `json:"articleId"`
		LinkURL         string `json:"linkUrl"`
		LinkDescription string `json:"linkDescription"`
	}{l.linkID, l.articleID, l.linkURL, l.linkDescription})
}
