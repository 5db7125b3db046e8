package patient

import (
	"math"
	"strings"
)

// DuplicateGroup is a set of two or more records believed to be the same
// person, with a 0-100 similarity score.
type DuplicateGroup struct {
	Records         []*Patient `json:"records"`
	SimilarityScore int        `json:"similarity_score"`
}

// pairMatch reports whether two records qualify as a duplicate pair. A pair
// matches when at least two of the three identity fields agree; a phone
// match requires both values to be non-empty.
func pairMatch(p, q *Patient) bool {
	nameMatch := strings.EqualFold(p.FullName, q.FullName)
	dobMatch := p.dobKey() == q.dobKey()
	phoneMatch := p.phoneVal() != "" && p.phoneVal() == q.phoneVal()

	return (nameMatch && dobMatch) || (nameMatch && phoneMatch) || (dobMatch && phoneMatch)
}

// FindDuplicates partitions the snapshot into duplicate groups. Grouping is
// anchor-relative: each unprocessed record becomes an anchor and collects
// every other unprocessed record that matches *it*, so two members of a
// group need not match each other. That is intentionally not a full
// connected-components clustering; it mirrors the established matching
// behavior and keeps a record in at most one group per pass.
//
// Singleton groups are dropped. The function is pure: it never mutates its
// input and performs no I/O.
func FindDuplicates(patients []*Patient) []DuplicateGroup {
	var groups []DuplicateGroup
	processed := make(map[string]bool, len(patients))

	for _, anchor := range patients {
		if processed[anchor.ID.String()] {
			continue
		}

		members := []*Patient{anchor}
		for _, other := range patients {
			if other == anchor || processed[other.ID.String()] {
				continue
			}
			if pairMatch(anchor, other) {
				members = append(members, other)
				processed[other.ID.String()] = true
			}
		}

		if len(members) > 1 {
			for _, m := range members {
				processed[m.ID.String()] = true
			}
			groups = append(groups, DuplicateGroup{
				Records:         members,
				SimilarityScore: SimilarityScore(members),
			})
		}
	}

	return groups
}

// SimilarityScore compares every group member against the first one on the
// three identity fields and returns the match ratio as a 0-100 integer.
// The first member contributes its self-comparison, so a group whose
// reference record has no phone can never reach 100.
func SimilarityScore(group []*Patient) int {
	if len(group) < 2 {
		return 0
	}

	first := group[0]
	matches := 0
	total := 0

	for _, p := range group {
		if p.FullName == first.FullName {
			matches++
		}
		if p.dobKey() == first.dobKey() {
			matches++
		}
		if p.phoneVal() != "" && p.phoneVal() == first.phoneVal() {
			matches++
		}
		total += 3
	}

	return int(math.Round(float64(matches) / float64(total) * 100))
}
