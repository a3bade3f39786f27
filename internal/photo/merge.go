package photo

import "github.com/roamly/travel-buddy-backend/internal/model"

// Merge reconciles a trip's photo list against an update request.
// Photos whose URL appears in deletions with IsDeleted set are
// dropped; survivors keep their relative order; a non-nil upload is
// appended at the end. Matching is by exact URL only, and the inputs
// are never modified.
func Merge(existing []model.Photo, deletions []model.Photo, upload *model.Photo) []model.Photo {
	deleted := make(map[string]bool, len(deletions))
	for _, d := range deletions {
		if d.IsDeleted {
			deleted[d.URL] = true
		}
	}

	merged := make([]model.Photo, 0, len(existing)+1)
	for _, p := range existing {
		if deleted[p.URL] {
			continue
		}
		merged = append(merged, p)
	}

	if upload != nil {
		merged = append(merged, model.Photo{URL: upload.URL, IsDeleted: false})
	}

	return merged
}
