package model

// Document is the plain text produced by a source extractor
type Document struct {
	Content  string           `json:"content"`
	Metadata DocumentMetadata `json:"metadata"`
	Language string           `json:"language"`
}

// DocumentMetadata describes where the text came from
type DocumentMetadata struct {
	Title     string     `json:"title"`
	PageCount int        `json:"page_count"`
	FileType  string     `json:"file_type"`
	Source    string     `json:"source,omitempty"`    // file path or URL
	Extractor string     `json:"extractor,omitempty"` // extractor that produced the text
	FetchMeta *FetchMeta `json:"fetch_meta,omitempty"`
}

// FetchMeta contains HTTP metadata for URL sources
type FetchMeta struct {
	StatusCode   int               `json:"status_code"`
	ContentType  string            `json:"content_type,omitempty"`
	LastModified string            `json:"last_modified,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
}
