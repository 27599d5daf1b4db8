package entities

type Video struct {
	ID                       string `json:"id"`
	Title                    string `json:"title"`
	YoutubeURL               string `json:"youtubeUrl"`
	Source                   string `json:"source,omitempty"`
	Description              string `json:"description,omitempty"`
	ThumbnailHint            string `json:"thumbnailHint,omitempty"`
	UploadedThumbnailDataURI string `json:"uploadedThumbnailDataUri,omitempty"`
}
