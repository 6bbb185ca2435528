package ortho

// StatementIndex answers "does Wikidata already assert ortholog(X, Y)?"
// in O(1). It is an immutable snapshot built once per run from a bulk
// property query; it is never mutated afterwards, so repeated runs must
// rebuild it to observe their own writes.
type StatementIndex struct {
	pairs map[string]struct{}
}

// NewStatementIndex builds an index from (subject, object) QID pairs.
// Pairs are stored under their canonical unordered key, so both statement
// directions hit the same entry.
func NewStatementIndex(pairs [][2]string) *StatementIndex {
	idx := &StatementIndex{
		pairs: make(map[string]struct{}, len(pairs)),
	}
	for _, p := range pairs {
		idx.pairs[PairKey(p[0], p[1])] = struct{}{}
	}
	return idx
}

// Has reports whether an ortholog statement between the two items is
// already recorded, in either direction.
func (x *StatementIndex) Has(q1, q2 string) bool {
	_, ok := x.pairs[PairKey(q1, q2)]
	return ok
}

// Len returns the number of distinct unordered pairs in the index.
func (x *StatementIndex) Len() int {
	return len(x.pairs)
}
