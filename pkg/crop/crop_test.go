package crop

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"agniro/entities"
	"agniro/pkg/months"
)

func TestSlugAndID(t *testing.T) {
	assert.Equal(t, "beans-bush-improved", Slug("Beans (Bush - Improved)"))
	assert.Equal(t, "matoke-banana", Slug("  Matoke (Banana) "))

	now := time.UnixMilli(1717000000123)
	assert.Equal(t, "central-robusta-coffee-1717000000123", NewID(entities.RegionCentral, "Robusta Coffee", now))
}

func TestValidate(t *testing.T) {
	good := entities.Crop{Name: "Maize", Region: entities.RegionEastern, Type: entities.CropModern,
		PlantingMonths: []months.Month{months.Mar}, DatePlanted: "2024-03-15"}
	assert.NoError(t, Validate(good))

	cases := map[string]func(c *entities.Crop){
		"short name":  func(c *entities.Crop) { c.Name = " M " },
		"region":      func(c *entities.Crop) { c.Region = "Southern" },
		"type":        func(c *entities.Crop) { c.Type = "Organic" },
		"month":       func(c *entities.Crop) { c.HarvestMonths = []months.Month{12} },
		"date format": func(c *entities.Crop) { c.DatePlanted = "15/03/2024" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Clone(good)
			mutate(&c)
			assert.True(t, errors.Is(Validate(c), ErrInvalidCrop))
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	a := entities.Crop{PlantingMonths: []months.Month{months.Jan}}
	b := Clone(a)
	b.PlantingMonths[0] = months.Feb
	assert.Equal(t, months.Jan, a.PlantingMonths[0])
}
