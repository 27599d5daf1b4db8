package repositoryImp

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"agniro/entities"
	"agniro/pkg/storage"
	storageRepo "agniro/pkg/storage/repository"
	"agniro/pkg/video"
	"agniro/pkg/video/repository"
)

type videoRepo struct {
	mu     sync.RWMutex
	bucket storageRepo.Bucket
	log    *zap.Logger
	now    func() time.Time
	videos []entities.Video
}

func New(bucket storageRepo.Bucket, log *zap.Logger, now func() time.Time) repository.VideoRepository {
	if now == nil {
		now = time.Now
	}
	r := &videoRepo{bucket: bucket, log: log.With(zap.String("key", storage.KeyVideoLinks)), now: now}
	r.videos = r.load()
	return r
}

func (r *videoRepo) load() []entities.Video {
	out := []entities.Video{}
	raw, found, err := r.bucket.Get(storage.KeyVideoLinks)
	if err != nil {
		r.log.Error("reading stored videos", zap.Error(err))
		return out
	}
	if !found {
		return out
	}
	recs, err := storage.DecodeArray(raw)
	if err != nil {
		r.log.Warn("stored videos are corrupt, clearing", zap.Error(err))
		if err := r.bucket.Remove(storage.KeyVideoLinks); err != nil {
			r.log.Error("clearing corrupt videos", zap.Error(err))
		}
		return out
	}
	seen := map[string]bool{}
	for i, rec := range recs {
		v := entities.Video{
			ID:                       rec.String("id"),
			Title:                    rec.String("title"),
			YoutubeURL:               rec.String("youtubeUrl"),
			Source:                   rec.String("source"),
			Description:              rec.String("description"),
			ThumbnailHint:            rec.StringOr("thumbnailHint", video.DefaultThumbnailHint),
			UploadedThumbnailDataURI: rec.String("uploadedThumbnailDataUri"),
		}
		if rec == nil || v.ID == "" || v.Title == "" || video.YouTubeID(v.YoutubeURL) == "" {
			r.log.Warn("dropping malformed video link", zap.Int("index", i))
			continue
		}
		if seen[v.ID] {
			r.log.Warn("dropping video link with duplicate id", zap.Int("index", i), zap.String("id", v.ID))
			continue
		}
		seen[v.ID] = true
		out = append(out, v)
	}
	return out
}

func (r *videoRepo) persist() error {
	raw, err := json.Marshal(r.videos)
	if err != nil {
		return err
	}
	if err := r.bucket.Set(storage.KeyVideoLinks, raw); err != nil {
		r.log.Error("persisting videos", zap.Error(err))
		return err
	}
	return nil
}

func (r *videoRepo) indexOf(id string) int {
	for i := range r.videos {
		if r.videos[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *videoRepo) List() []entities.Video {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entities.Video{}, r.videos...)
}

func (r *videoRepo) Get(id string) (entities.Video, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.videos[i], true
	}
	return entities.Video{}, false
}

func (r *videoRepo) Add(v entities.Video) (entities.Video, error) {
	if err := video.Validate(&v); err != nil {
		return entities.Video{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	base := video.NewID(r.now())
	v.ID = base
	for n := 2; r.indexOf(v.ID) >= 0; n++ {
		v.ID = fmt.Sprintf("%s-%d", base, n)
	}
	r.videos = append([]entities.Video{v}, r.videos...)
	return v, r.persist()
}

func (r *videoRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil
	}
	r.videos = append(r.videos[:i:i], r.videos[i+1:]...)
	return r.persist()
}

func (r *videoRepo) UpdateThumbnail(id string, dataURI *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil
	}
	if dataURI == nil {
		r.videos[i].UploadedThumbnailDataURI = ""
	} else {
		r.videos[i].UploadedThumbnailDataURI = *dataURI
	}
	return r.persist()
}
