package entities

import "agniro/pkg/months"

type CropType string

const (
	CropTraditional CropType = "Traditional"
	CropModern      CropType = "Modern"
)

func (t CropType) Valid() bool { return t == CropTraditional || t == CropModern }

type RegionName string

const (
	RegionNorthern RegionName = "Northern"
	RegionCentral  RegionName = "Central"
	RegionEastern  RegionName = "Eastern"
	RegionWestern  RegionName = "Western"
)

// Regions is the closed set, in display order. The first entry is the default.
var Regions = []RegionName{RegionNorthern, RegionCentral, RegionEastern, RegionWestern}

func (r RegionName) Valid() bool {
	for _, v := range Regions {
		if v == r {
			return true
		}
	}
	return false
}

type Crop struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	Region               RegionName     `json:"region"`
	PlantingMonths       []months.Month `json:"plantingMonths"`
	WeedingInfo          string         `json:"weedingInfo"`
	HarvestMonths        []months.Month `json:"harvestMonths"`
	Type                 CropType       `json:"type"`
	Notes                string         `json:"notes"`
	IconHint             string         `json:"iconHint,omitempty"`
	UploadedImageDataURI string         `json:"uploadedImageDataUri,omitempty"`
	DatePlanted          string         `json:"datePlanted,omitempty"` // YYYY-MM-DD
}
