package documents

// UploadResponse is returned by POST /upload.
type UploadResponse struct {
	Text string `json:"text"`
}

func toResponse(doc Document) UploadResponse {
	return UploadResponse{Text: doc.Text}
}
