package dto

// S3URLResponse содержит presigned URL для загрузки или скачивания файла
type S3URLResponse struct {
	URL string `json:"url"`
	Key string `json:"key,omitempty"`
}
