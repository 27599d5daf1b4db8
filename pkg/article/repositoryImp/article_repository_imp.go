package repositoryImp

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"agniro/entities"
	"agniro/pkg/article"
	"agniro/pkg/article/repository"
	"agniro/pkg/storage"
	storageRepo "agniro/pkg/storage/repository"
)

type articleRepo struct {
	mu     sync.RWMutex
	bucket storageRepo.Bucket
	log    *zap.Logger
	now    func() time.Time

	latest   []entities.Article
	archived []entities.Article
	hidden   []string
	// session-only images for built-in entries
	staticImages map[string]string
}

func New(bucket storageRepo.Bucket, log *zap.Logger, now func() time.Time) repository.ArticleRepository {
	if now == nil {
		now = time.Now
	}
	r := &articleRepo{bucket: bucket, log: log, now: now, staticImages: map[string]string{}}
	r.archived = r.loadArchived()
	r.hidden = r.loadHidden()
	return r
}

// read returns the stored value under key, clearing it when it cannot be
// parsed by decode.
func (r *articleRepo) read(key string, decode func([]byte) error) {
	log := r.log.With(zap.String("key", key))
	raw, found, err := r.bucket.Get(key)
	if err != nil {
		log.Error("reading stored articles", zap.Error(err))
		return
	}
	if !found {
		return
	}
	if err := decode(raw); err != nil {
		log.Warn("stored value is corrupt, clearing", zap.Error(err))
		if err := r.bucket.Remove(key); err != nil {
			log.Error("clearing corrupt value", zap.Error(err))
		}
	}
}

func (r *articleRepo) loadArchived() []entities.Article {
	out := []entities.Article{}
	r.read(storage.KeyArchivedArticles, func(raw []byte) error {
		recs, err := storage.DecodeArray(raw)
		if err != nil {
			return err
		}
		out = decodeArchived(recs, r.log.With(zap.String("key", storage.KeyArchivedArticles)))
		return nil
	})
	return out
}

func (r *articleRepo) loadHidden() []string {
	out := []string{}
	r.read(storage.KeyHiddenStaticIDs, func(raw []byte) error {
		ids, err := storage.DecodeStrings(raw)
		if err != nil {
			return err
		}
		out = ids
		return nil
	})
	return out
}

func (r *articleRepo) save(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.bucket.Set(key, raw); err != nil {
		r.log.Error("persisting articles", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (r *articleRepo) isHidden(id string) bool {
	for _, h := range r.hidden {
		if h == id {
			return true
		}
	}
	return false
}

func cloneAll(as []entities.Article) []entities.Article {
	out := make([]entities.Article, len(as))
	for i, a := range as {
		out[i] = article.Clone(a)
	}
	return out
}

func indexOf(as []entities.Article, id string) int {
	for i := range as {
		if as[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *articleRepo) Latest() []entities.Article {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAll(r.latest)
}

func (r *articleRepo) visibleStatic() []entities.Article {
	out := []entities.Article{}
	for _, a := range article.Static() {
		if r.isHidden(a.ID) {
			continue
		}
		if img, ok := r.staticImages[a.ID]; ok {
			a.UploadedImageDataURI, a.ImageURL = img, ""
		}
		out = append(out, a)
	}
	return out
}

func (r *articleRepo) Archive() []entities.Article {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append(r.visibleStatic(), cloneAll(r.archived)...)
	article.SortByDate(out)
	return out
}

func (r *articleRepo) Static() []entities.Article { return article.Static() }

func (r *articleRepo) HiddenStaticIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.hidden...)
}

func (r *articleRepo) Get(id string) (entities.Article, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, list := range [][]entities.Article{r.latest, r.archived, r.visibleStatic()} {
		if i := indexOf(list, id); i >= 0 {
			return article.Clone(list[i]), true
		}
	}
	return entities.Article{}, false
}

func (r *articleRepo) AddLatest(a entities.Article) entities.Article {
	r.mu.Lock()
	defer r.mu.Unlock()
	a = article.Clone(a)
	a.Type = entities.ArticleAIGenerated
	if a.ID == "" || indexOf(r.latest, a.ID) >= 0 {
		a.ID = article.GeneratedID(r.now())
	}
	keep := r.latest
	if len(keep) > article.LatestLimit-1 {
		keep = keep[:article.LatestLimit-1]
	}
	r.latest = append([]entities.Article{a}, keep...)
	return article.Clone(a)
}

func (r *articleRepo) RemoveLatest(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := indexOf(r.latest, id); i >= 0 {
		r.latest = append(r.latest[:i:i], r.latest[i+1:]...)
	}
}

func (r *articleRepo) SaveToArchive(a entities.Article) (entities.Article, error) {
	if a.Type != entities.ArticleAIGenerated {
		return entities.Article{}, article.ErrNotArchivable
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	archived := article.Clone(a)
	archived.ID = article.ArchivedID(a.ID, r.now())
	archived.Type = entities.ArticleAIArchived
	r.archived = append([]entities.Article{archived}, r.archived...)
	if i := indexOf(r.latest, a.ID); i >= 0 {
		r.latest = append(r.latest[:i:i], r.latest[i+1:]...)
	}
	return article.Clone(archived), r.save(storage.KeyArchivedArticles, r.archived)
}

func (r *articleRepo) DeleteArticle(a entities.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch a.Type {
	case entities.ArticleStaticArchived:
		if r.isHidden(a.ID) {
			return nil
		}
		r.hidden = append(r.hidden, a.ID)
		delete(r.staticImages, a.ID)
		return r.save(storage.KeyHiddenStaticIDs, r.hidden)
	case entities.ArticleAIGenerated:
		if i := indexOf(r.latest, a.ID); i >= 0 {
			r.latest = append(r.latest[:i:i], r.latest[i+1:]...)
		}
		return nil
	default:
		i := indexOf(r.archived, a.ID)
		if i < 0 {
			return nil
		}
		r.archived = append(r.archived[:i:i], r.archived[i+1:]...)
		return r.save(storage.KeyArchivedArticles, r.archived)
	}
}

func setImage(a *entities.Article, dataURI *string) {
	if dataURI == nil || *dataURI == "" {
		a.UploadedImageDataURI = ""
		if a.ImageURL == "" {
			a.ImageURL = article.PlaceholderImageURL
		}
		return
	}
	a.UploadedImageDataURI, a.ImageURL = *dataURI, ""
}

func (r *articleRepo) UpdateImage(id string, dataURI *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := indexOf(r.latest, id); i >= 0 {
		setImage(&r.latest[i], dataURI)
		return nil
	}
	if i := indexOf(r.archived, id); i >= 0 {
		setImage(&r.archived[i], dataURI)
		return r.save(storage.KeyArchivedArticles, r.archived)
	}
	if article.IsStatic(id) && !r.isHidden(id) {
		if dataURI == nil || *dataURI == "" {
			delete(r.staticImages, id)
		} else {
			r.staticImages[id] = *dataURI
		}
	}
	return nil
}
