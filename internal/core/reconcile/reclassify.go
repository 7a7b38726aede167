package reconcile

import "gad-officerhub/internal/core/domain"

// Reclassify decides, per field, whether a just-submitted value belongs to
// the editing role or keeps its prior source. A field present (non-nil) in
// the explicitly edited payload adopts the editing role; a field edited to
// null drops its prior attribution, since whatever value remains visible
// came from somewhere else. Untouched fields keep their prior tag, falling
// back to SPARK when there was none but the save still produced a non-empty
// value for the field.
func Reclassify(prior map[string]domain.ValueSource, edited map[string]*string, saved map[string]string, role domain.ValueSource) (map[string]domain.ValueSource, domain.ValueSource) {
	prov := make(map[string]domain.ValueSource, len(domain.DeputationFields))
	for _, field := range domain.DeputationFields {
		v, touched := edited[field]
		if touched && v != nil {
			prov[field] = role
			continue
		}
		if src, ok := prior[field]; !touched && ok && src != "" && src != domain.SourceUnknown {
			prov[field] = src
			continue
		}
		if saved[field] != "" {
			prov[field] = domain.SourceSpark
			continue
		}
		prov[field] = domain.SourceUnknown
	}
	return prov, domain.OverallSourceOf(saved, prov)
}
