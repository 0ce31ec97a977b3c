package pages

import (
	"slices"

	"github.com/starford/folio/internal/models"
)

// SortExperiences returns a copy of exp ordered by start date, newest first.
// Records without a start date sort as if dated at the minimum and land
// last. Equal keys keep their store order.
func SortExperiences(exp []models.Experience) []models.Experience {
	out := slices.Clone(exp)
	if out == nil {
		out = []models.Experience{}
	}
	slices.SortStableFunc(out, func(a, b models.Experience) int {
		switch {
		case a.StartDate == nil && b.StartDate == nil:
			return 0
		case a.StartDate == nil:
			return 1
		case b.StartDate == nil:
			return -1
		}
		return b.StartDate.Time().Compare(a.StartDate.Time())
	})
	return out
}

// Featured returns the first min(n, len(projects)) projects in store order.
func Featured(projects []models.Project, n int) []models.Project {
	if n < 0 {
		n = 0
	}
	if n > len(projects) {
		n = len(projects)
	}
	return slices.Clone(projects[:n:n])
}
