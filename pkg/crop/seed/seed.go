// Package seed embeds the built-in crop collection used when a client has
// no stored crops.
package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"agniro/entities"
	"agniro/pkg/months"
)

//go:embed crops.yaml
var cropsYAML []byte

type seedCrop struct {
	ID       string              `yaml:"id"`
	Name     string              `yaml:"name"`
	Region   entities.RegionName `yaml:"region"`
	Planting string              `yaml:"planting"`
	Harvest  string              `yaml:"harvest"`
	Weeding  string              `yaml:"weeding"`
	Type     entities.CropType   `yaml:"type"`
	Notes    string              `yaml:"notes"`
	IconHint string              `yaml:"iconHint"`
}

// Decode parses a seed document. Month text is run through months.Parse.
func Decode(doc []byte) ([]entities.Crop, error) {
	var rows []seedCrop
	if err := yaml.Unmarshal(doc, &rows); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	out := make([]entities.Crop, 0, len(rows))
	for i, r := range rows {
		if r.ID == "" || !r.Region.Valid() || !r.Type.Valid() {
			return nil, fmt.Errorf("seed: row %d (%q) is incomplete", i, r.Name)
		}
		out = append(out, entities.Crop{
			ID:             r.ID,
			Name:           r.Name,
			Region:         r.Region,
			PlantingMonths: months.Parse(r.Planting),
			HarvestMonths:  months.Parse(r.Harvest),
			WeedingInfo:    r.Weeding,
			Type:           r.Type,
			Notes:          r.Notes,
			IconHint:       r.IconHint,
		})
	}
	return out, nil
}

var builtin []entities.Crop

func init() {
	var err error
	if builtin, err = Decode(cropsYAML); err != nil {
		panic(err)
	}
}

// Crops returns a fresh copy of the built-in collection.
func Crops() []entities.Crop {
	out := make([]entities.Crop, len(builtin))
	for i, c := range builtin {
		c.PlantingMonths = append([]months.Month{}, c.PlantingMonths...)
		c.HarvestMonths = append([]months.Month{}, c.HarvestMonths...)
		out[i] = c
	}
	return out
}
