// Package climate carries the static Uganda region and rainfall tables and
// exports crop calendars as spreadsheets.
package climate

import (
	"math"

	"agniro/entities"
	"agniro/pkg/months"
)

type Region struct {
	Name      entities.RegionName `json:"name"`
	AccentVar string              `json:"accentVar"`
}

var regions = []Region{
	{Name: entities.RegionNorthern, AccentVar: "--northern-accent"},
	{Name: entities.RegionCentral, AccentVar: "--central-accent"},
	{Name: entities.RegionEastern, AccentVar: "--eastern-accent"},
	{Name: entities.RegionWestern, AccentVar: "--western-accent"},
}

func Regions() []Region { return append([]Region{}, regions...) }

// Rainfall is the typical monthly rainfall in millimetres.
type Rainfall struct {
	Month    months.Month `json:"month"`
	Northern int          `json:"Northern"`
	Central  int          `json:"Central"`
	Eastern  int          `json:"Eastern"`
	Western  int          `json:"Western"`
	Average  int          `json:"Average"`
}

func (r Rainfall) For(region entities.RegionName) int {
	switch region {
	case entities.RegionNorthern:
		return r.Northern
	case entities.RegionCentral:
		return r.Central
	case entities.RegionEastern:
		return r.Eastern
	case entities.RegionWestern:
		return r.Western
	}
	return r.Average
}

var rainfall = func() []Rainfall {
	rows := []Rainfall{
		{Month: months.Jan, Northern: 16, Central: 45, Eastern: 40, Western: 80},
		{Month: months.Feb, Northern: 30, Central: 65, Eastern: 60, Western: 100},
		{Month: months.Mar, Northern: 80, Central: 120, Eastern: 110, Western: 150},
		{Month: months.Apr, Northern: 150, Central: 170, Eastern: 160, Western: 180},
		{Month: months.May, Northern: 130, Central: 130, Eastern: 120, Western: 140},
		{Month: months.Jun, Northern: 100, Central: 90, Eastern: 80, Western: 100},
		{Month: months.Jul, Northern: 110, Central: 70, Eastern: 70, Western: 80},
		{Month: months.Aug, Northern: 140, Central: 80, Eastern: 90, Western: 100},
		{Month: months.Sep, Northern: 100, Central: 110, Eastern: 120, Western: 150},
		{Month: months.Oct, Northern: 90, Central: 140, Eastern: 150, Western: 170},
		{Month: months.Nov, Northern: 60, Central: 120, Eastern: 110, Western: 150},
		{Month: months.Dec, Northern: 25, Central: 70, Eastern: 50, Western: 100},
	}
	for i := range rows {
		r := &rows[i]
		r.Average = int(math.Round(float64(r.Northern+r.Central+r.Eastern+r.Western) / 4))
	}
	return rows
}()

func RainfallTable() []Rainfall { return append([]Rainfall{}, rainfall...) }
