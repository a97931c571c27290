package extractor

// ProductRecord represents one extracted product listing
type ProductRecord struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount *int     `json:"review_count,omitempty"`
	InStock     bool     `json:"in_stock"` // always true; the sites expose no usable out-of-stock signal
	Link        string   `json:"link"`
	Site        string   `json:"site"`
}

// Accumulator collects records for a single site across its pages.
// Append rejects records whose link was already collected, so the
// per-site list never holds two records with the same link.
type Accumulator struct {
	records []ProductRecord
	seen    map[string]struct{}
}

// NewAccumulator creates an empty accumulator
func NewAccumulator() *Accumulator {
	return &Accumulator{
		seen: make(map[string]struct{}),
	}
}

// Append adds a record unless its link was seen before.
// It reports whether the record was kept.
func (a *Accumulator) Append(rec ProductRecord) bool {
	if _, dup := a.seen[rec.Link]; dup {
		return false
	}
	a.seen[rec.Link] = struct{}{}
	a.records = append(a.records, rec)
	return true
}

// AppendAll appends a batch of records and returns how many were kept
func (a *Accumulator) AppendAll(recs []ProductRecord) int {
	kept := 0
	for _, rec := range recs {
		if a.Append(rec) {
			kept++
		}
	}
	return kept
}

// Records returns the collected records in append order
func (a *Accumulator) Records() []ProductRecord {
	return a.records
}

// Len returns the number of collected records
func (a *Accumulator) Len() int {
	return len(a.records)
}
