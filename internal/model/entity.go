package model

// Entity represents a single regex-detected mention in document text
type Entity struct {
	Text  string     `json:"entity"`          // The matched text as it appears in the document
	Kind  EntityKind `json:"type"`            // Entity classification
	Start int        `json:"start"`           // Byte offset of the match start
	End   int        `json:"end"`             // Byte offset of the match end
	Value string     `json:"value,omitempty"` // Normalized captured group (e.g. clause number "1.8.1")
}

// EntityKind classifies the type of detected entity
type EntityKind string

const (
	EntityStandard      EntityKind = "STANDARD"      // Standard references (e.g. "Standard 1.8")
	EntityClause        EntityKind = "CLAUSE"        // Clause numbers (e.g. "Clause 1.8.1")
	EntityDate          EntityKind = "DATE"          // Numeric or written dates
	EntityQualification EntityKind = "QUALIFICATION" // National qualification codes (e.g. "TAE40116")
	EntityOrg           EntityKind = "ORG"           // Sector organisation keywords (ASQA, RTO, ...)
	EntityPolicy        EntityKind = "POLICY"        // Policy/procedure identifiers
)
