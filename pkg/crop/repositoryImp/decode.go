package repositoryImp

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"agniro/entities"
	"agniro/pkg/crop"
	"agniro/pkg/months"
	"agniro/pkg/storage"
)

// decodeCrops rebuilds stored records field by field. Non-objects and
// repeated ids are dropped; every other gap is filled with a default.
func decodeCrops(recs []storage.Record, now time.Time, log *zap.Logger) []entities.Crop {
	out := make([]entities.Crop, 0, len(recs))
	seen := make(map[string]bool, len(recs))
	for i, rec := range recs {
		if rec == nil {
			log.Warn("dropping malformed crop record", zap.Int("index", i))
			continue
		}
		c := decodeCrop(rec, i, now)
		if seen[c.ID] {
			log.Warn("dropping crop with duplicate id", zap.Int("index", i), zap.String("id", c.ID))
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out
}

func decodeCrop(rec storage.Record, index int, now time.Time) entities.Crop {
	c := entities.Crop{
		ID:                   rec.String("id"),
		Name:                 rec.StringOr("name", "Unnamed Crop"),
		Region:               entities.RegionName(rec.String("region")),
		PlantingMonths:       decodeMonths(rec, "plantingMonths"),
		HarvestMonths:        decodeMonths(rec, "harvestMonths"),
		WeedingInfo:          rec.StringOr("weedingInfo", "N/A"),
		Type:                 entities.CropType(rec.String("type")),
		Notes:                rec.StringOr("notes", "No notes."),
		IconHint:             rec.String("iconHint"),
		UploadedImageDataURI: rec.String("uploadedImageDataUri"),
		DatePlanted:          decodeDate(rec.String("datePlanted")),
	}
	if c.ID == "" {
		c.ID = fmt.Sprintf("legacy-crop-%d-%d", index, now.UnixMilli())
	}
	if !c.Region.Valid() {
		c.Region = entities.Regions[0]
	}
	if !c.Type.Valid() {
		c.Type = entities.CropTraditional
	}
	return c
}

// decodeMonths accepts the canonical array form and, for older records, a
// free-text string.
func decodeMonths(rec storage.Record, key string) []months.Month {
	if tokens, ok := rec.StringSlice(key); ok {
		return months.Normalize(tokens)
	}
	if s := rec.String(key); s != "" {
		return months.Parse(s)
	}
	return []months.Month{}
}

func decodeDate(s string) string {
	if s == "" {
		return ""
	}
	if crop.ValidDate(s) {
		return s
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(crop.DateLayout)
	}
	return ""
}
