package dto

type AddDocumentResponse struct {
	Source     string `json:"source"`
	PageCount  int    `json:"page_count"`
	ChunkCount int    `json:"chunk_count"`
	Status     string `json:"status"`
}

type DocumentSource struct {
	Source     string `json:"source"`
	ChunkCount int64  `json:"chunk_count"`
}

type ListDocumentsResponse struct {
	Documents []DocumentSource `json:"documents"`
	Total     int              `json:"total"`
}

type DeleteDocumentResponse struct {
	Source     string `json:"source"`
	ChunkCount int64  `json:"chunk_count"`
}

// DocumentChunkInfo is one indexed chunk of a source, without its embedding.
type DocumentChunkInfo struct {
	ChunkIndex int    `json:"chunk_index"`
	PageRange  string `json:"page_range"`
	Content    string `json:"content"`
}

type DocumentDetailResponse struct {
	Source string              `json:"source"`
	Chunks []DocumentChunkInfo `json:"chunks"`
}

// ChunkPayload is one pre-split chunk queued for embedding.
type ChunkPayload struct {
	Content    string `json:"content"`
	PageRange  string `json:"page_range"`
	ChunkIndex int    `json:"chunk_index"`
}

// PublishEmbedDocumentMessage is the ingest bus payload. The chunks travel in
// the message so the consumer does not have to re-read the upload.
type PublishEmbedDocumentMessage struct {
	Source string         `json:"source"`
	Chunks []ChunkPayload `json:"chunks"`
}
