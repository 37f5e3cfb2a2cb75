package dto

// UploadURLRequest asks for a pre-authorized destination to upload one
// source-material file to.
type UploadURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType"`
}

// UploadURLResponse carries the issued upload destination.
type UploadURLResponse struct {
	UploadURL   string `json:"uploadUrl"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
}
