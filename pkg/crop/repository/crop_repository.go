package repository

import "agniro/entities"

// CropRepository is one client's ordered crop collection. Every mutation
// writes the whole collection back to storage before returning. Unknown ids
// are a silent no-op.
type CropRepository interface {
	List() []entities.Crop
	Get(id string) (entities.Crop, bool)
	AddCrop(data entities.Crop) (entities.Crop, error)
	DeleteCrop(id string) error
	EditCrop(updated entities.Crop) error
	UpdateCropImage(id string, dataURI *string) error
	UpdateCropPlantingDate(id string, date *string) error
	ReorderCrops(draggedID, targetID string) error
}
