package loader

import (
	"slices"

	"github.com/CrestNiraj12/tootline/domain"
)

// truncateStatuses drops statuses at or below sinceID along with repeated
// IDs inside the page. The page is truncated when it reached sinceID,
// which means nothing is missing between it and the known statuses.
func truncateStatuses(in []domain.Status, sinceID int64) ([]domain.Status, bool) {
	out := make([]domain.Status, 0, len(in))
	seen := make(map[int64]struct{}, len(in))
	truncated := false
	for _, st := range in {
		if sinceID > 0 && st.ID <= sinceID {
			truncated = true
			continue
		}
		if _, ok := seen[st.ID]; ok {
			continue
		}
		seen[st.ID] = struct{}{}
		out = append(out, st)
	}
	return out, truncated
}

// deleteStatus removes every status with the given ID.
func deleteStatus(data []domain.Status, id int64) ([]domain.Status, bool) {
	n := len(data)
	data = slices.DeleteFunc(data, func(st domain.Status) bool { return st.ID == id })
	return data, len(data) != n
}

func containsID(statuses []domain.Status, id int64) bool {
	return slices.ContainsFunc(statuses, func(st domain.Status) bool { return st.ID == id })
}

// minIDIndex returns the index of the status with the smallest ID, or -1.
func minIDIndex(statuses []domain.Status) (int64, int) {
	minID, minIdx := int64(-1), -1
	for i, st := range statuses {
		if minID == -1 || st.ID < minID {
			minID, minIdx = st.ID, i
		}
	}
	return minID, minIdx
}
