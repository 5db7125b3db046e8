package patient

import (
	"errors"
	"fmt"
	"time"
)

// ErrMergeTooFew is returned when a merge is requested with fewer than two
// records.
var ErrMergeTooFew = errors.New("at least two records required")

// UnifiedIDGenerator produces a new unified patient identifier. Injected so
// callers can substitute a collision-resistant generator.
type UnifiedIDGenerator func() string

// NewUnifiedID is the default generator: a timestamp-based token with a
// short random suffix so concurrent merges do not collide.
func NewUnifiedID() string {
	return fmt.Sprintf("UPI-%d-%s", time.Now().UnixMilli(), randToken(2))
}

// MergeResult carries the merged field set and the freshly generated
// unified identifier. The caller applies the same payload to every source
// record.
type MergeResult struct {
	UnifiedID string   `json:"unified_id"`
	Merged    *Patient `json:"merged"`
}

// MergePatients coalesces two or more records into one canonical field set.
// Precedence, per field:
//
//   - full_name, date_of_birth: first record wins, no fallback
//   - scalar optionals: first record with a non-empty value wins
//   - allergies, chronic_conditions, past_surgeries: deduplicated union
//   - current_medications: concatenation in input order, no dedup
//
// The computation is deterministic for a given input order; only the
// unified identifier differs between invocations.
func MergePatients(records []*Patient, genID UnifiedIDGenerator) (*MergeResult, error) {
	if len(records) < 2 {
		return nil, ErrMergeTooFew
	}
	if genID == nil {
		genID = NewUnifiedID
	}

	unifiedID := genID()
	merged := &Patient{
		FullName:          records[0].FullName,
		DateOfBirth:       records[0].DateOfBirth,
		Gender:            firstNonEmpty(records, func(p *Patient) *string { return p.Gender }),
		BloodGroup:        firstNonEmpty(records, func(p *Patient) *string { return p.BloodGroup }),
		Phone:             firstNonEmpty(records, func(p *Patient) *string { return p.Phone }),
		Email:             firstNonEmpty(records, func(p *Patient) *string { return p.Email }),
		Address:           firstNonEmpty(records, func(p *Patient) *string { return p.Address }),
		EmergencyContact:  firstNonEmpty(records, func(p *Patient) *string { return p.EmergencyContact }),
		Allergies:         unionStrings(records, func(p *Patient) []string { return p.Allergies }),
		ChronicConditions: unionStrings(records, func(p *Patient) []string { return p.ChronicConditions }),
		PastSurgeries:     unionStrings(records, func(p *Patient) []string { return p.PastSurgeries }),
		UnifiedPatientID:  &unifiedID,
	}
	for _, r := range records {
		merged.CurrentMedications = append(merged.CurrentMedications, r.CurrentMedications...)
	}

	return &MergeResult{UnifiedID: unifiedID, Merged: merged}, nil
}

// firstNonEmpty returns the first record's non-empty value for the field,
// or nil when no record has one.
func firstNonEmpty(records []*Patient, get func(*Patient) *string) *string {
	for _, r := range records {
		if v := get(r); v != nil && *v != "" {
			out := *v
			return &out
		}
	}
	return nil
}

// unionStrings unions the records' lists, deduplicated, preserving
// first-seen order.
func unionStrings(records []*Patient, get func(*Patient) []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		for _, v := range get(r) {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// applyMerge copies the merged field set onto an existing record, keeping
// the record's own identifiers.
func applyMerge(target *Patient, merged *Patient) {
	target.FullName = merged.FullName
	target.DateOfBirth = merged.DateOfBirth
	target.Gender = merged.Gender
	target.BloodGroup = merged.BloodGroup
	target.Phone = merged.Phone
	target.Email = merged.Email
	target.Address = merged.Address
	target.EmergencyContact = merged.EmergencyContact
	target.Allergies = merged.Allergies
	target.ChronicConditions = merged.ChronicConditions
	target.CurrentMedications = merged.CurrentMedications
	target.PastSurgeries = merged.PastSurgeries
	target.UnifiedPatientID = merged.UnifiedPatientID
}
