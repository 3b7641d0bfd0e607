package dto

// UploadResponse describes a stored upload. The filePath is what project
// write requests reference; the url is where the file is served from.
type UploadResponse struct {
	FileName string `json:"fileName"`
	FilePath string `json:"filePath"`
	FileSize int64  `json:"fileSize"`
	MimeType string `json:"mimeType"`
	URL      string `json:"url"`
}
