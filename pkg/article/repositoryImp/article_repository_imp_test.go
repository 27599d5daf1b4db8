package repositoryImp

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"agniro/entities"
	"agniro/pkg/article"
	"agniro/pkg/article/repository"
	"agniro/pkg/storage"
	storageRepo "agniro/pkg/storage/repository"
	kv "agniro/pkg/storage/repositoryImp"
)

func clock() func() time.Time {
	t := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Millisecond)
		return t
	}
}

func newBucket() storageRepo.Bucket { return kv.Scope(kv.NewMemory(), "client-a") }

func newRepo(b storageRepo.Bucket) repository.ArticleRepository {
	return New(b, zap.NewNop(), clock())
}

func generated(title, date string) entities.Article {
	return entities.Article{
		Title: title, Source: "AI", Date: date, Introduction: "intro",
		FullArticleText: "body", Conclusion: "end", BodySectionHints: []string{"h"},
		ImageURL: article.PlaceholderImageURL, ImageHint: "farm", Type: entities.ArticleAIGenerated,
	}
}

func articleIDs(as []entities.Article) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.ID
	}
	return out
}

func TestFreshArchiveIsStatic(t *testing.T) {
	r := newRepo(newBucket())
	assert.Empty(t, r.Latest())
	assert.Equal(t, []string{"static-news-1", "static-article-1"}, articleIDs(r.Archive()))
	assert.Empty(t, r.HiddenStaticIDs())
}

func TestLatestIsCapped(t *testing.T) {
	r := newRepo(newBucket())
	var added []string
	for _, title := range []string{"a", "b", "c", "d"} {
		added = append(added, r.AddLatest(generated(title, "2024-06-01")).ID)
	}
	got := r.Latest()
	require.Len(t, got, article.LatestLimit)
	assert.Equal(t, []string{added[3], added[2], added[1]}, articleIDs(got))
}

func TestSaveToArchive(t *testing.T) {
	b := newBucket()
	r := newRepo(b)
	gen := r.AddLatest(generated("Maize tips", "2024-06-01"))

	saved, err := r.SaveToArchive(gen)
	require.NoError(t, err)
	assert.Equal(t, entities.ArticleAIArchived, saved.Type)
	assert.NotEqual(t, gen.ID, saved.ID)
	assert.Contains(t, saved.ID, "ai-archived-")
	assert.Equal(t, gen.Title, saved.Title)
	assert.Empty(t, r.Latest())
	assert.Equal(t, saved.ID, r.Archive()[0].ID)

	reloaded := newRepo(b)
	got, ok := reloaded.Get(saved.ID)
	require.True(t, ok)
	assert.Equal(t, "Maize tips", got.Title)
}

func TestSaveToArchiveRejectsOtherTypes(t *testing.T) {
	r := newRepo(newBucket())
	_, err := r.SaveToArchive(article.Static()[0])
	assert.ErrorIs(t, err, article.ErrNotArchivable)
}

func TestDeleteStaticHidesIt(t *testing.T) {
	b := newBucket()
	r := newRepo(b)
	st := article.Static()[0]

	require.NoError(t, r.DeleteArticle(st))
	require.NoError(t, r.DeleteArticle(st))
	assert.Equal(t, []string{st.ID}, r.HiddenStaticIDs())
	assert.NotContains(t, articleIDs(r.Archive()), st.ID)
	assert.Contains(t, articleIDs(r.Static()), st.ID)
	_, ok := r.Get(st.ID)
	assert.False(t, ok)

	reloaded := newRepo(b)
	assert.NotContains(t, articleIDs(reloaded.Archive()), st.ID)
}

func TestDeleteByType(t *testing.T) {
	r := newRepo(newBucket())
	gen := r.AddLatest(generated("one", "2024-06-01"))
	other := r.AddLatest(generated("two", "2024-06-02"))
	saved, err := r.SaveToArchive(other)
	require.NoError(t, err)

	require.NoError(t, r.DeleteArticle(gen))
	assert.Empty(t, r.Latest())

	require.NoError(t, r.DeleteArticle(saved))
	assert.NotContains(t, articleIDs(r.Archive()), saved.ID)

	require.NoError(t, r.DeleteArticle(entities.Article{ID: "missing", Type: entities.ArticleAIArchived}))
}

func TestUpdateImage(t *testing.T) {
	b := newBucket()
	r := newRepo(b)
	img := "data:image/png;base64,iVBORw0KGgo="

	gen := r.AddLatest(generated("g", "2024-06-01"))
	require.NoError(t, r.UpdateImage(gen.ID, &img))
	got, _ := r.Get(gen.ID)
	assert.Equal(t, img, got.UploadedImageDataURI)
	assert.Empty(t, got.ImageURL)

	require.NoError(t, r.UpdateImage(gen.ID, nil))
	got, _ = r.Get(gen.ID)
	assert.Empty(t, got.UploadedImageDataURI)
	assert.Equal(t, article.PlaceholderImageURL, got.ImageURL)

	saved, err := r.SaveToArchive(r.AddLatest(generated("h", "2024-06-02")))
	require.NoError(t, err)
	require.NoError(t, r.UpdateImage(saved.ID, &img))
	got, _ = newRepo(b).Get(saved.ID)
	assert.Equal(t, img, got.UploadedImageDataURI)

	require.NoError(t, r.UpdateImage("static-news-1", &img))
	got, _ = r.Get("static-news-1")
	assert.Equal(t, img, got.UploadedImageDataURI)
	got, _ = newRepo(b).Get("static-news-1")
	assert.Empty(t, got.UploadedImageDataURI)
}

func TestLoadDropsMalformedArchive(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	b := newBucket()
	recs := []any{
		"nonsense",
		map[string]any{"id": "a1", "title": "kept", "type": "ai-archived", "date": "May 20, 2024"},
		map[string]any{"id": "a2", "type": "ai-archived"},
		map[string]any{"id": "a3", "title": "wrong", "type": "ai-generated"},
		map[string]any{"id": "a1", "title": "dup", "type": "ai-archived"},
	}
	raw, err := json.Marshal(recs)
	require.NoError(t, err)
	require.NoError(t, b.Set(storage.KeyArchivedArticles, raw))

	r := New(b, zap.New(core), clock())
	got, ok := r.Get("a1")
	require.True(t, ok)
	assert.Equal(t, "kept", got.Title)
	assert.Equal(t, "2024-05-20", got.Date)
	assert.Equal(t, "Unknown Source", got.Source)
	assert.Equal(t, article.PlaceholderImageURL, got.ImageURL)
	assert.Equal(t, "article image", got.ImageHint)
	assert.Equal(t, []string{}, got.BodySectionHints)
	assert.Equal(t, 4, logs.Len())
	assert.Len(t, r.Archive(), 3)
}

func TestLoadClearsCorruptValues(t *testing.T) {
	b := newBucket()
	require.NoError(t, b.Set(storage.KeyArchivedArticles, []byte(`{"oops":1}`)))
	require.NoError(t, b.Set(storage.KeyHiddenStaticIDs, []byte(`[1,2`)))

	r := newRepo(b)
	assert.Len(t, r.Archive(), 2)
	assert.Empty(t, r.HiddenStaticIDs())

	_, found, err := b.Get(storage.KeyArchivedArticles)
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = b.Get(storage.KeyHiddenStaticIDs)
	require.NoError(t, err)
	assert.False(t, found)
}

type failingBucket struct{ storageRepo.Bucket }

func (failingBucket) Set(string, []byte) error { return errors.New("disk full") }

func TestWriteErrorsSurface(t *testing.T) {
	r := newRepo(failingBucket{newBucket()})
	saved, err := r.SaveToArchive(r.AddLatest(generated("x", "2024-06-01")))
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, saved.ID, r.Archive()[0].ID)
}
