package seed

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agniro/entities"
	"agniro/pkg/months"
)

func TestBuiltinCrops(t *testing.T) {
	crops := Crops()
	require.Len(t, crops, 40)

	ids := map[string]bool{}
	perRegion := map[entities.RegionName]int{}
	for _, c := range crops {
		assert.False(t, ids[c.ID], "duplicate id %s", c.ID)
		ids[c.ID] = true
		perRegion[c.Region]++
	}
	for _, r := range entities.Regions {
		assert.Equal(t, 10, perRegion[r], string(r))
	}
}

func TestBuiltinMonthParsing(t *testing.T) {
	byID := map[string]entities.Crop{}
	for _, c := range Crops() {
		byID[c.ID] = c
	}

	millet := byID["ug-eastern-millet-1"]
	if diff := cmp.Diff([]months.Month{months.Mar, months.Apr, months.Aug, months.Sep}, millet.PlantingMonths); diff != "" {
		t.Errorf("millet planting (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]months.Month{months.Jan, months.Jul, months.Aug, months.Dec}, millet.HarvestMonths); diff != "" {
		t.Errorf("millet harvest (-want +got):\n%s", diff)
	}

	assert.Equal(t, months.All(), byID["ug-western-tea-1"].HarvestMonths)
	assert.Empty(t, byID["ug-northern-cassava-1"].HarvestMonths)
}

func TestCropsReturnsCopies(t *testing.T) {
	a := Crops()
	a[0].PlantingMonths[0] = months.Dec
	a[0].Name = "changed"
	b := Crops()
	assert.NotEqual(t, "changed", b[0].Name)
	assert.NotEqual(t, months.Dec, b[0].PlantingMonths[0])
}

func TestDecodeRejectsIncompleteRows(t *testing.T) {
	_, err := Decode([]byte("- id: x\n  name: X\n  region: Southern\n  type: Modern\n"))
	assert.Error(t, err)
}
