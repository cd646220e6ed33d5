package report

import (
	"cmp"
	"slices"

	"github.com/Bahjat/har-report/backend/internal/model"
)

// TopN returns a fresh slice with the first n elements of list, in order.
// The list is trusted to be ranked already; nothing is compared. The result
// is never nil.
func TopN[T any](list []T, n int) []T {
	n = max(0, min(n, len(list)))
	out := make([]T, n)
	copy(out, list[:n])
	return out
}

// RankDistribution orders a response code distribution by count, highest
// first. Equal counts keep their original relative order.
func RankDistribution(dist *model.ResponseCodes) []model.CodeCount {
	if dist == nil {
		return []model.CodeCount{}
	}

	ranked := make([]model.CodeCount, 0, dist.Len())
	for pair := dist.Oldest(); pair != nil; pair = pair.Next() {
		ranked = append(ranked, model.CodeCount{Code: pair.Key, Count: pair.Value})
	}

	slices.SortStableFunc(ranked, func(a, b model.CodeCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return ranked
}
