package repository

import "agniro/entities"

type VideoRepository interface {
	List() []entities.Video
	Get(id string) (entities.Video, bool)
	Add(v entities.Video) (entities.Video, error)
	Delete(id string) error
	UpdateThumbnail(id string, dataURI *string) error
}
