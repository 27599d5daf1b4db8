package service

import (
	"context"

	"agniro/entities"
)

type GenerateRequest struct {
	Region string `json:"region"`
	Topic  string `json:"topic"`
}

type ArticleService interface {
	// Generate asks the AI collaborator for a new article. The result is
	// not stored anywhere.
	Generate(ctx context.Context, req GenerateRequest) (entities.Article, error)
	RenderHTML(a entities.Article) (string, error)
}
