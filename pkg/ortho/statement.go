package ortho

// Status is the lifecycle state of a PendingWrite. A write is terminal
// once its status leaves StatusPending.
type Status string

const (
	StatusPending Status = "pending"
	StatusWritten Status = "written"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// EntityRef ties an external gene identifier to its Wikidata item.
type EntityRef struct {
	// QID is the Wikidata item identifier.
	QID string
	// ExternalID is the source database identifier (Ensembl gene ID).
	ExternalID string
	// TaxonID is the NCBI taxonomy ID of the species.
	TaxonID string
	// TaxonQID is the Wikidata item of the species.
	TaxonQID string
}

// PendingWrite is one missing ortholog statement scheduled for the batch
// writer. Created by the reconciliation engine with StatusPending; the
// writer moves it to written, skipped or failed.
type PendingWrite struct {
	Subject EntityRef
	Object  EntityRef

	// ReferenceURL is the OMA browser page backing the statement.
	ReferenceURL string

	Status Status

	// Error holds failure detail when Status is StatusFailed, so failed
	// writes can be reconciled manually by subject/object QIDs.
	Error string
}

// Key is the canonical unordered QID pair key of the write.
func (w PendingWrite) Key() string {
	return PairKey(w.Subject.QID, w.Object.QID)
}
