package extractor

// Deduplicate keeps the first record for each distinct link, preserving
// the relative order of the survivors. Within-page and within-site
// duplicates were already dropped, so this pass only removes cross-site
// repeats. Running it on its own output is a no-op.
func Deduplicate(records []ProductRecord) []ProductRecord {
	seen := make(map[string]struct{}, len(records))
	unique := make([]ProductRecord, 0, len(records))

	for _, rec := range records {
		if _, dup := seen[rec.Link]; dup {
			continue
		}
		seen[rec.Link] = struct{}{}
		unique = append(unique, rec)
	}

	return unique
}
