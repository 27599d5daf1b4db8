package repositoryImp

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"agniro/entities"
	"agniro/pkg/crop"
	"agniro/pkg/crop/repository"
	"agniro/pkg/crop/seed"
	"agniro/pkg/storage"
	storageRepo "agniro/pkg/storage/repository"
)

type cropRepo struct {
	mu     sync.RWMutex
	bucket storageRepo.Bucket
	log    *zap.Logger
	now    func() time.Time
	crops  []entities.Crop
}

// New loads the client's crops from bucket, falling back to the built-in
// seed when nothing usable is stored.
func New(bucket storageRepo.Bucket, log *zap.Logger, now func() time.Time) repository.CropRepository {
	if now == nil {
		now = time.Now
	}
	r := &cropRepo{bucket: bucket, log: log.With(zap.String("key", storage.KeyCrops)), now: now}
	r.crops = r.load()
	return r
}

func (r *cropRepo) load() []entities.Crop {
	raw, found, err := r.bucket.Get(storage.KeyCrops)
	if err != nil {
		r.log.Error("reading stored crops, using seed", zap.Error(err))
		return seed.Crops()
	}
	if !found {
		return seed.Crops()
	}
	recs, err := storage.DecodeArray(raw)
	if err != nil {
		r.log.Warn("stored crops are corrupt, clearing and using seed", zap.Error(err))
		if err := r.bucket.Remove(storage.KeyCrops); err != nil {
			r.log.Error("clearing corrupt crops", zap.Error(err))
		}
		return seed.Crops()
	}
	crops := decodeCrops(recs, r.now(), r.log)
	if len(crops) == 0 {
		return seed.Crops()
	}
	return crops
}

// persist must be called with mu held.
func (r *cropRepo) persist() error {
	raw, err := json.Marshal(r.crops)
	if err != nil {
		return fmt.Errorf("encode crops: %w", err)
	}
	if err := r.bucket.Set(storage.KeyCrops, raw); err != nil {
		r.log.Error("persisting crops", zap.Error(err))
		return err
	}
	return nil
}

func (r *cropRepo) indexOf(id string) int {
	for i := range r.crops {
		if r.crops[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *cropRepo) List() []entities.Crop {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Crop, len(r.crops))
	for i, c := range r.crops {
		out[i] = crop.Clone(c)
	}
	return out
}

func (r *cropRepo) Get(id string) (entities.Crop, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return crop.Clone(r.crops[i]), true
	}
	return entities.Crop{}, false
}

func (r *cropRepo) AddCrop(data entities.Crop) (entities.Crop, error) {
	if err := crop.Validate(data); err != nil {
		return entities.Crop{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	c := crop.Clone(data)
	c.ID = r.uniqueID(crop.NewID(c.Region, c.Name, r.now()))
	if c.UploadedImageDataURI == "" {
		for _, existing := range r.crops {
			if strings.EqualFold(existing.Name, c.Name) && existing.UploadedImageDataURI != "" {
				c.UploadedImageDataURI = existing.UploadedImageDataURI
				break
			}
		}
	}
	r.crops = append([]entities.Crop{c}, r.crops...)
	return crop.Clone(c), r.persist()
}

func (r *cropRepo) uniqueID(base string) string {
	id := base
	for n := 2; r.indexOf(id) >= 0; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

func (r *cropRepo) DeleteCrop(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil
	}
	r.crops = append(r.crops[:i:i], r.crops[i+1:]...)
	return r.persist()
}

func (r *cropRepo) EditCrop(updated entities.Crop) error {
	if err := crop.Validate(updated); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(updated.ID)
	if i < 0 {
		return nil
	}
	r.crops[i] = crop.Clone(updated)
	return r.persist()
}

func (r *cropRepo) UpdateCropImage(id string, dataURI *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil
	}
	r.crops[i].UploadedImageDataURI = ""
	if dataURI != nil {
		r.crops[i].UploadedImageDataURI = *dataURI
	}
	return r.persist()
}

func (r *cropRepo) UpdateCropPlantingDate(id string, date *string) error {
	if date != nil && *date != "" && !crop.ValidDate(*date) {
		return fmt.Errorf("%w: datePlanted must be YYYY-MM-DD", crop.ErrInvalidCrop)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil
	}
	r.crops[i].DatePlanted = ""
	if date != nil {
		r.crops[i].DatePlanted = *date
	}
	return r.persist()
}

func (r *cropRepo) ReorderCrops(draggedID, targetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	from := r.indexOf(draggedID)
	if from < 0 {
		return nil
	}
	dragged := r.crops[from]
	r.crops = append(r.crops[:from:from], r.crops[from+1:]...)

	to := r.indexOf(targetID)
	if to < 0 {
		r.crops = append(r.crops, dragged)
	} else {
		r.crops = append(r.crops[:to:to], append([]entities.Crop{dragged}, r.crops[to:]...)...)
	}
	return r.persist()
}
