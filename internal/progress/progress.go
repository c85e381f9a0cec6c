// Package progress computes the completion and cost roll-ups behind the
// dashboard views. Every function is pure; an empty input yields zero values,
// never NaN.
package progress

import (
	"math"
)

// Summary is the roll-up of one group of tasks or resources.
type Summary struct {
	Count   int     `json:"count"`
	Done    int     `json:"done"`
	Percent int     `json:"percent"`
	Cost    float64 `json:"cost"`
}

// Percent returns round(100*done/total), or 0 when total is 0.
func Percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return roundHalfUp(100 * float64(done) / float64(total))
}

// Ratio is Percent for monetary amounts.
func Ratio(part, whole float64) int {
	if whole <= 0 {
		return 0
	}
	return roundHalfUp(100 * part / whole)
}

// Groups holds items bucketed by key. Keys keeps first-seen order.
type Groups[T any] struct {
	Keys    []string
	Members map[string][]T
}

// GroupBy buckets items by key, preserving the input order inside each
// bucket and the first-seen order of the keys.
func GroupBy[T any](items []T, key func(T) string) Groups[T] {
	g := Groups[T]{Members: make(map[string][]T)}
	for _, item := range items {
		k := key(item)
		if _, ok := g.Members[k]; !ok {
			g.Keys = append(g.Keys, k)
		}
		g.Members[k] = append(g.Members[k], item)
	}
	return g
}

// Summarize counts items, the ones matching done, and their summed cost.
// cost may be nil when the group carries no monetary value.
func Summarize[T any](items []T, done func(T) bool, cost func(T) float64) Summary {
	var s Summary
	for _, item := range items {
		s.Count++
		if done(item) {
			s.Done++
		}
		if cost != nil {
			s.Cost += cost(item)
		}
	}
	s.Percent = Percent(s.Done, s.Count)
	return s
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
