package repository

import "agniro/entities"

// ArticleRepository holds one client's articles: up to three freshly
// generated ones kept in memory, the stored archive, and the built-in
// archive filtered by a stored set of hidden ids.
type ArticleRepository interface {
	Latest() []entities.Article
	// Archive is the built-in entries that are not hidden plus the stored
	// archive, newest first.
	Archive() []entities.Article
	// Static is every built-in entry, hidden or not.
	Static() []entities.Article
	HiddenStaticIDs() []string
	Get(id string) (entities.Article, bool)

	AddLatest(a entities.Article) entities.Article
	RemoveLatest(id string)
	SaveToArchive(a entities.Article) (entities.Article, error)
	DeleteArticle(a entities.Article) error
	UpdateImage(id string, dataURI *string) error
}
