package catalogo

import (
	"path/filepath"
	"strings"
)

// assetResolver matches uploaded image files against the product code set
// and persists the matches in the asset store.
type assetResolver struct {
	store *AssetStore
}

// Resolve classifies uploaded files into matched, unmatched, and missing.
//
// A file matches iff its filename with the extension stripped equals a code
// exactly (case-sensitive). Matched files are saved to the store as
// <code>.jpg; a save failure aborts with ErrStorage. When codes is empty
// there is no ground truth to validate against, so every file is accepted
// and the report is flagged Unvalidated.
func (r *assetResolver) Resolve(codes []string, files []UploadFile) (Report, error) {
	codeSet := make(map[string]bool, len(codes))
	for _, c := range codes {
		codeSet[c] = true
	}
	acceptAll := len(codeSet) == 0

	var report Report
	report.Unvalidated = acceptAll

	matched := make(map[string]bool)
	for _, f := range files {
		base := strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
		if !acceptAll && !codeSet[base] {
			report.Unmatched = append(report.Unmatched, f.Name)
			continue
		}
		if err := r.store.SaveImage(base, f.Data); err != nil {
			return Report{}, err
		}
		matched[base] = true
	}

	for code := range matched {
		report.Matched = append(report.Matched, code)
	}
	report.Matched = sortedCopy(report.Matched)

	for code := range codeSet {
		if !matched[code] {
			report.Missing = append(report.Missing, code)
		}
	}
	report.Missing = sortedCopy(report.Missing)

	return report, nil
}
