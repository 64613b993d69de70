// Package ranking selects the top-K classes and rescales them to percentages.
package ranking

import (
	"fmt"
	"sort"

	"gramhealth-go/internal/classifier"
)

// DefaultK is the shortlist size.
const DefaultK = 3

// Entry is one shortlisted class.
// Raw is the classifier probability; Percent is Raw rescaled so the shortlist sums to 100.
type Entry struct {
	Class   string
	Raw     float64
	Percent float64
}

// Label formats Percent with one decimal, e.g. "60.0%".
func (e Entry) Label() string {
	return fmt.Sprintf("%.1f%%", e.Percent)
}

// Bar truncates Percent to an integer for a progress-bar style display.
func (e Entry) Bar() int {
	return int(e.Percent)
}

// Ranked is a shortlist ordered by descending probability.
type Ranked []Entry

// Primary returns the top entry. ok is false for an empty shortlist.
func (r Ranked) Primary() (Entry, bool) {
	if len(r) == 0 {
		return Entry{}, false
	}
	return r[0], true
}

// Differentials returns the entries after the primary.
func (r Ranked) Differentials() []Entry {
	if len(r) <= 1 {
		return nil
	}
	return r[1:]
}

// TopK sorts vector by descending probability, keeping native order for ties,
// and returns the first k entries with percentages summing to 100.
// If the shortlist probabilities sum to zero every percentage is zero.
// k <= 0 means DefaultK. vector is not modified.
func TopK(vector []classifier.Scored, k int) Ranked {
	if k <= 0 {
		k = DefaultK
	}
	sorted := make([]classifier.Scored, len(vector))
	copy(sorted, vector)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Probability > sorted[j].Probability
	})
	if len(sorted) > k {
		sorted = sorted[:k]
	}

	var sum float64
	for _, s := range sorted {
		sum += s.Probability
	}

	out := make(Ranked, len(sorted))
	for i, s := range sorted {
		out[i] = Entry{Class: s.Class, Raw: s.Probability}
		if sum > 0 {
			out[i].Percent = s.Probability / sum * 100
		}
	}
	return out
}
