package catalog

import "time"

// RedactionReceipt records what a GDPR redaction removed, for audit
// purposes. It must never contain the removed personal data itself.
type RedactionReceipt struct {
	WorkID        string    `json:"work_id"`
	ClearedAt     time.Time `json:"cleared_at"`
	FieldsCleared []string  `json:"fields_cleared"`

	// ArtifactDeleted reports whether a stored PDF existed and was
	// successfully deleted. ArtifactError carries the storage failure
	// message when deletion was attempted but failed; field redaction
	// still completed in that case.
	ArtifactDeleted bool   `json:"artifact_deleted"`
	ArtifactError   string `json:"artifact_error,omitempty"`

	// IndexCleared reports whether the work's search-index entry was
	// removed.
	IndexCleared bool `json:"index_cleared"`
}
