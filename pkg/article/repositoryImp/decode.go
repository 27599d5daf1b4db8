package repositoryImp

import (
	"go.uber.org/zap"

	"agniro/entities"
	"agniro/pkg/article"
	"agniro/pkg/storage"
)

// decodeArchived keeps only well-formed archived records: an object with
// id, title and the ai-archived type. Other gaps get defaults.
func decodeArchived(recs []storage.Record, log *zap.Logger) []entities.Article {
	out := make([]entities.Article, 0, len(recs))
	seen := make(map[string]bool, len(recs))
	for i, rec := range recs {
		if rec == nil {
			log.Warn("dropping malformed archived article", zap.Int("index", i))
			continue
		}
		id, title, typ := rec.String("id"), rec.String("title"), entities.ArticleType(rec.String("type"))
		if id == "" || title == "" || typ == "" {
			log.Warn("dropping archived article missing id, title or type", zap.Int("index", i))
			continue
		}
		if typ != entities.ArticleAIArchived {
			log.Warn("dropping archived article with unexpected type", zap.Int("index", i), zap.String("type", string(typ)))
			continue
		}
		if seen[id] {
			log.Warn("dropping archived article with duplicate id", zap.Int("index", i), zap.String("id", id))
			continue
		}
		seen[id] = true
		hints, _ := rec.StringSlice("bodySectionHints")
		if hints == nil {
			hints = []string{}
		}
		out = append(out, entities.Article{
			ID:                    id,
			Title:                 title,
			Source:                rec.StringOr("source", "Unknown Source"),
			Date:                  article.NormalizeDate(rec.String("date")),
			Summary:               rec.String("summary"),
			Introduction:          rec.String("introduction"),
			BodySectionHints:      hints,
			FullArticleText:       rec.String("fullArticleText"),
			Conclusion:            rec.String("conclusion"),
			ImageURL:              rec.StringOr("imageUrl", article.PlaceholderImageURL),
			ImageHint:             rec.StringOr("imageHint", "article image"),
			ImagePromptSuggestion: rec.String("imagePromptSuggestion"),
			Type:                  typ,
			UploadedImageDataURI:  rec.String("uploadedImageDataUri"),
		})
	}
	return out
}
