package serviceImp

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"

	"agniro/entities"
	"agniro/pkg/ai"
	"agniro/pkg/article"
	"agniro/pkg/article/service"
)

const defaultTopic = "general farming best practices"

type articleSvc struct {
	flows   *ai.Flows
	country string
	log     *zap.Logger
	now     func() time.Time
	md      goldmark.Markdown
}

func New(flows *ai.Flows, country string, log *zap.Logger, now func() time.Time) service.ArticleService {
	if now == nil {
		now = time.Now
	}
	return &articleSvc{
		flows:   flows,
		country: country,
		log:     log,
		now:     now,
		md:      goldmark.New(goldmark.WithExtensions(extension.GFM, extension.Typographer)),
	}
}

func (s *articleSvc) Generate(ctx context.Context, req service.GenerateRequest) (entities.Article, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		topic = defaultTopic
	}
	region := strings.TrimSpace(req.Region)
	if region == "" {
		region = string(entities.Regions[0])
	}
	draft, err := s.flows.GenerateArticle(ctx, ai.ArticleInput{Country: s.country, Region: region, Topic: topic})
	if err != nil {
		return entities.Article{}, fmt.Errorf("generate article: %w", err)
	}
	a := entities.Article{
		ID:                    article.GeneratedID(s.now()),
		Title:                 draft.Title,
		Source:                draft.Source,
		Date:                  article.NormalizeDate(draft.Date),
		Introduction:          draft.Introduction,
		BodySectionHints:      draft.BodySectionHints,
		FullArticleText:       draft.FullArticleText,
		Conclusion:            draft.Conclusion,
		ImageURL:              article.PlaceholderImageURL,
		ImageHint:             draft.ImageHint,
		ImagePromptSuggestion: draft.ImagePromptSuggestion,
		Type:                  entities.ArticleAIGenerated,
	}
	s.log.Info("article generated", zap.String("id", a.ID), zap.String("topic", topic), zap.String("region", region))
	return a, nil
}

// RenderHTML converts the article into an HTML fragment. Raw HTML in the
// article text is dropped by the renderer.
func (s *articleSvc) RenderHTML(a entities.Article) (string, error) {
	var doc strings.Builder
	fmt.Fprintf(&doc, "# %s\n\n", a.Title)
	if byline := strings.Trim(a.Source+" · "+a.Date, " ·"); byline != "" {
		fmt.Fprintf(&doc, "*%s*\n\n", byline)
	}
	for _, part := range []string{a.Introduction, a.FullArticleText, a.Summary} {
		if part = strings.TrimSpace(part); part != "" {
			doc.WriteString(part + "\n\n")
		}
	}
	if c := strings.TrimSpace(a.Conclusion); c != "" {
		doc.WriteString("## Conclusion\n\n" + c + "\n")
	}
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(doc.String()), &buf); err != nil {
		return "", fmt.Errorf("render article %s: %w", a.ID, err)
	}
	return buf.String(), nil
}
