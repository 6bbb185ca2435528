package ortho

// Mapping resolves external identifiers to Wikidata QIDs.
// Built from a bulk property query (genes: P594, taxa: P685).
type Mapping map[string]string

// Stats accumulates per-run counters. Every record ends up in exactly
// one bucket besides Read.
type Stats struct {
	// Read is the number of gene pairs consumed from the loader.
	Read int
	// UnresolvedGene counts records where either gene has no known
	// Wikidata item.
	UnresolvedGene int
	// UnresolvedTaxon counts records where either species taxon has no
	// known Wikidata item.
	UnresolvedTaxon int
	// SelfPair counts records where both genes resolve to the same item.
	SelfPair int
	// Duplicate counts records collapsing onto an already-emitted pair
	// within this run (exact or symmetric duplicates).
	Duplicate int
	// AlreadyRecorded counts records whose statement exists in the index.
	AlreadyRecorded int
	// Pending is the number of emitted PendingWrite items.
	Pending int
}

// Reconciler joins loader records against the existing-fact index and
// the ID mappings, emitting at most one canonical PendingWrite per
// unordered gene pair per run.
//
// The index snapshot is taken by reference and never mutated; idempotence
// across runs relies on rebuilding the index before each run so pairs
// written previously are filtered out here.
type Reconciler struct {
	genes Mapping
	taxa  Mapping
	index *StatementIndex

	seen  map[string]struct{}
	stats Stats
}

// NewReconciler creates a reconciler over immutable inputs.
func NewReconciler(genes, taxa Mapping, index *StatementIndex) *Reconciler {
	return &Reconciler{
		genes: genes,
		taxa:  taxa,
		index: index,
		seen:  make(map[string]struct{}),
	}
}

// Reconcile processes one record. It returns the emitted PendingWrite and
// true, or a zero value and false when the record is skipped. Skips are
// never fatal; they only increment counters.
func (r *Reconciler) Reconcile(pair GenePair) (PendingWrite, bool) {
	var empty PendingWrite
	r.stats.Read++

	c := pair.Canonical()

	subjQID, ok := r.genes[c.GeneA]
	if !ok {
		r.stats.UnresolvedGene++
		return empty, false
	}
	objQID, ok := r.genes[c.GeneB]
	if !ok {
		r.stats.UnresolvedGene++
		return empty, false
	}

	// Different external IDs can point at the same item; a self-ortholog
	// statement would be meaningless.
	if subjQID == objQID {
		r.stats.SelfPair++
		return empty, false
	}

	subjTaxonQID, ok := r.taxa[c.TaxonA]
	if !ok {
		r.stats.UnresolvedTaxon++
		return empty, false
	}
	objTaxonQID, ok := r.taxa[c.TaxonB]
	if !ok {
		r.stats.UnresolvedTaxon++
		return empty, false
	}

	key := PairKey(subjQID, objQID)
	if _, ok := r.seen[key]; ok {
		r.stats.Duplicate++
		return empty, false
	}
	r.seen[key] = struct{}{}

	if r.index.Has(subjQID, objQID) {
		r.stats.AlreadyRecorded++
		return empty, false
	}

	r.stats.Pending++
	return PendingWrite{
		Subject: EntityRef{
			QID:        subjQID,
			ExternalID: c.GeneA,
			TaxonID:    c.TaxonA,
			TaxonQID:   subjTaxonQID,
		},
		Object: EntityRef{
			QID:        objQID,
			ExternalID: c.GeneB,
			TaxonID:    c.TaxonB,
			TaxonQID:   objTaxonQID,
		},
		ReferenceURL: OMABrowserURL(c.GeneA),
		Status:       StatusPending,
	}, true
}

// Stats returns the counters accumulated so far.
func (r *Reconciler) Stats() Stats {
	return r.stats
}
