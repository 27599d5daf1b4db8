package entities

type ArticleType string

const (
	ArticleAIGenerated    ArticleType = "ai-generated"
	ArticleAIArchived     ArticleType = "ai-archived"
	ArticleStaticArchived ArticleType = "static-archived"
)

type Article struct {
	ID                    string      `json:"id"`
	Title                 string      `json:"title"`
	Source                string      `json:"source"`
	Date                  string      `json:"date"` // YYYY-MM-DD
	Summary               string      `json:"summary,omitempty"`
	Introduction          string      `json:"introduction,omitempty"`
	BodySectionHints      []string    `json:"bodySectionHints"`
	FullArticleText       string      `json:"fullArticleText,omitempty"`
	Conclusion            string      `json:"conclusion,omitempty"`
	ImageURL              string      `json:"imageUrl"`
	ImageHint             string      `json:"imageHint"`
	ImagePromptSuggestion string      `json:"imagePromptSuggestion,omitempty"`
	Type                  ArticleType `json:"type"`
	UploadedImageDataURI  string      `json:"uploadedImageDataUri,omitempty"`
}
