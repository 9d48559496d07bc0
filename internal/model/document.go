package model

import "time"

// DocumentStatus tracks where an evidence document sits in the tagging lifecycle
type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "uploaded"   // Ingested, not yet tagged
	StatusProcessing DocumentStatus = "processing" // Tagging run in progress
	StatusTagged     DocumentStatus = "tagged"     // At least one automatic mapping produced
	StatusReviewed   DocumentStatus = "reviewed"   // Mappings checked by a human
)

// DocumentType categorizes evidence documents
type DocumentType string

const (
	DocPolicy     DocumentType = "policy"
	DocProcedure  DocumentType = "procedure"
	DocRecord     DocumentType = "record"
	DocAssessment DocumentType = "assessment"
	DocOther      DocumentType = "other"
)

// Document represents an evidence document submitted for compliance tagging
type Document struct {
	ID          string         `json:"id"`
	Title       string         `json:"title,omitempty"`
	Type        DocumentType   `json:"type,omitempty"`
	Source      string         `json:"source"` // File path or URL the text came from
	Status      DocumentStatus `json:"status"`
	Text        string         `json:"-"` // Extracted text, not serialized into reports
	TextLength  int            `json:"text_length"`
	Entities    []Entity       `json:"entities,omitempty"`
	ProcessedAt *time.Time     `json:"processed_at,omitempty"`
}
