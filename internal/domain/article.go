package domain

import "encoding/json"

// Article is one row of the article table.
type Article struct {
	articleID    *int64
	categoryType string
	textContent  string
	articleTitle string
}

// NewArticle builds a validated Article. Pass a nil id for an article not yet stored.
func NewArticle(id *int64, categoryType, articleTitle, textContent string) (*Article, error) {
	a := &Article{}
	if err := a.SetArticleID(id); err != nil {
		return nil, err
	}
	if err := a.SetCategoryType(categoryType); err != nil {
		return nil, err
	}
	if err := a.SetArticleTitle(articleTitle); err != nil {
		return nil, err
	}
	if err := a.SetTextContent(textContent); err != nil {
		return nil, err
	}
	return a, nil
}

// ArticleID returns the primary key and whether one has been assigned.
func (a *Article) ArticleID() (int64, bool) {
	return identityValue(a.articleID)
}

// SetArticleID assigns the primary key.
func (a *Article) SetArticleID(id *int64) error {
	v, err := nextIdentity("article id", a.articleID, id)
	if err != nil {
		return err
	}
	a.articleID = v
	return nil
}

// CategoryType returns the category.
func (a *Article) CategoryType() string {
	return a.categoryType
}

// SetCategoryType sets the category.
func (a *Article) SetCategoryType(categoryType string) error {
	v, err := requireText("category type", categoryType)
	if err != nil {
		return err
	}
	a.categoryType = v
	return nil
}

// TextContent returns the article body.
func (a *Article) TextContent() string {
	return a.textContent
}

// SetTextContent sets the article body.
func (a *Article) SetTextContent(textContent string) error {
	v, err := requireText("text content", textContent)
	if err != nil {
		return err
	}
	a.textContent = v
	return nil
}

// ArticleTitle returns the title.
func (a *Article) ArticleTitle() string {
	return a.articleTitle
}

// SetArticleTitle sets the title.
func (a *Article) SetArticleTitle(articleTitle string) error {
	v, err := requireText("article title", articleTitle)
	if err != nil {
		return err
	}
	a.articleTitle = v
	return nil
}

// MarshalJSON renders the article with a null articleId when it has not been stored.
func (a *Article) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ArticleID    *int64 `json:"articleId"`
		CategoryType string `json:"categoryType"`
		ArticleTitle string `json:"articleTitle"`
		TextContent  string `json:"textContent"`
	}{a.articleID, a.categoryType, a.articleTitle, a.textContent})
}
