package patient

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func testPatient(name, dob, phone string) *Patient {
	p := &Patient{
		ID:          uuid.New(),
		PatientID:   NewPatientID(),
		FullName:    name,
		DateOfBirth: date(dob),
	}
	if phone != "" {
		p.Phone = strPtr(phone)
	}
	return p
}

func TestFindDuplicates_Empty(t *testing.T) {
	if groups := FindDuplicates(nil); len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
	if groups := FindDuplicates([]*Patient{testPatient("Jane Doe", "1990-01-01", "111")}); len(groups) != 0 {
		t.Errorf("expected no groups for single record, got %d", len(groups))
	}
}

func TestFindDuplicates_NameAndDOB(t *testing.T) {
	patients := []*Patient{
		testPatient("Jane Doe", "1990-01-01", "111"),
		testPatient("Jane Doe", "1990-01-01", "222"),
		testPatient("John Smith", "2000-05-05", "333"),
	}

	groups := FindDuplicates(patients)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if len(groups[0].Records) != 2 {
		t.Errorf("expected group of 2, got %d", len(groups[0].Records))
	}
	for _, rec := range groups[0].Records {
		if rec.FullName != "Jane Doe" {
			t.Errorf("unexpected group member %s", rec.FullName)
		}
	}
}

func TestFindDuplicates_NameCaseInsensitive(t *testing.T) {
	patients := []*Patient{
		testPatient("JANE DOE", "1990-01-01", ""),
		testPatient("jane doe", "1990-01-01", ""),
	}
	if groups := FindDuplicates(patients); len(groups) != 1 {
		t.Errorf("expected case-insensitive name match, got %d groups", len(groups))
	}
}

func TestFindDuplicates_NameAndPhone(t *testing.T) {
	patients := []*Patient{
		testPatient("Jane Doe", "1990-01-01", "555"),
		testPatient("Jane Doe", "1985-07-07", "555"),
	}
	if groups := FindDuplicates(patients); len(groups) != 1 {
		t.Errorf("expected name+phone match, got %d groups", len(groups))
	}
}

func TestFindDuplicates_DOBAndPhone(t *testing.T) {
	patients := []*Patient{
		testPatient("Jane Doe", "1990-01-01", "555"),
		testPatient("J. Doe", "1990-01-01", "555"),
	}
	if groups := FindDuplicates(patients); len(groups) != 1 {
		t.Errorf("expected dob+phone match, got %d groups", len(groups))
	}
}

func TestFindDuplicates_PhoneAloneDoesNotMatch(t *testing.T) {
	patients := []*Patient{
		testPatient("Jane Doe", "1990-01-01", "555"),
		testPatient("John Smith", "2000-05-05", "555"),
	}
	if groups := FindDuplicates(patients); len(groups) != 0 {
		t.Errorf("phone alone must not group records, got %d groups", len(groups))
	}
}

func TestFindDuplicates_EmptyPhonesNeverMatch(t *testing.T) {
	// Same name only; both phones absent. Name+phone must not fire.
	patients := []*Patient{
		testPatient("Jane Doe", "1990-01-01", ""),
		testPatient("Jane Doe", "1991-02-02", ""),
	}
	if groups := FindDuplicates(patients); len(groups) != 0 {
		t.Errorf("empty phones must not count as a match, got %d groups", len(groups))
	}
}

func TestFindDuplicates_RecordInAtMostOneGroup(t *testing.T) {
	patients := []*Patient{
		testPatient("Jane Doe", "1990-01-01", "111"),
		testPatient("Jane Doe", "1990-01-01", "222"),
		testPatient("Jane Doe", "1990-01-01", "333"),
		testPatient("John Smith", "2000-05-05", "444"),
		testPatient("John Smith", "2000-05-05", "555"),
	}

	groups := FindDuplicates(patients)
	seen := make(map[uuid.UUID]int)
	for _, g := range groups {
		if len(g.Records) < 2 {
			t.Errorf("group smaller than 2: %d", len(g.Records))
		}
		for _, rec := range g.Records {
			seen[rec.ID]++
		}
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("record %s appears in %d groups", id, n)
		}
	}
	if len(groups) != 2 {
		t.Errorf("expected 2 groups, got %d", len(groups))
	}
}

func TestFindDuplicates_AnchorRelativeGrouping(t *testing.T) {
	// B and C each match anchor A on different criteria but not each other.
	// Anchor-relative grouping still puts all three in one group.
	a := testPatient("Jane Doe", "1990-01-01", "111")
	b := testPatient("Jane Doe", "1990-01-01", "222") // name+dob vs A
	c := testPatient("Jane Doe", "1985-05-05", "111") // name+phone vs A

	groups := FindDuplicates([]*Patient{a, b, c})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if len(groups[0].Records) != 3 {
		t.Errorf("expected all three records grouped via the anchor, got %d", len(groups[0].Records))
	}
}

func TestFindDuplicates_DoesNotMutateInput(t *testing.T) {
	patients := []*Patient{
		testPatient("Jane Doe", "1990-01-01", "111"),
		testPatient("Jane Doe", "1990-01-01", "222"),
	}
	before := *patients[0]
	FindDuplicates(patients)
	if patients[0].FullName != before.FullName || patients[0].UnifiedPatientID != nil {
		t.Error("FindDuplicates must not mutate its input")
	}
}

func TestSimilarityScore_Bounds(t *testing.T) {
	cases := [][]*Patient{
		{testPatient("Jane Doe", "1990-01-01", "111"), testPatient("Jane Doe", "1990-01-01", "111")},
		{testPatient("Jane Doe", "1990-01-01", ""), testPatient("Jane Doe", "1990-01-01", "")},
		{testPatient("A", "1990-01-01", ""), testPatient("B", "1991-01-01", "")},
	}
	for i, group := range cases {
		score := SimilarityScore(group)
		if score < 0 || score > 100 {
			t.Errorf("case %d: score %d out of [0,100]", i, score)
		}
	}
}

func TestSimilarityScore_FullMatch(t *testing.T) {
	group := []*Patient{
		testPatient("Jane Doe", "1990-01-01", "111"),
		testPatient("Jane Doe", "1990-01-01", "111"),
	}
	if score := SimilarityScore(group); score != 100 {
		t.Errorf("expected 100 for identical records with phone, got %d", score)
	}
}

func TestSimilarityScore_MissingPhoneCapsScore(t *testing.T) {
	// The reference's self-comparison only yields 2 of 3 without a phone,
	// so the score cannot reach 100.
	group := []*Patient{
		testPatient("Jane Doe", "1990-01-01", ""),
		testPatient("Jane Doe", "1990-01-01", ""),
	}
	score := SimilarityScore(group)
	if score != 67 {
		t.Errorf("expected 67 (4/6 rounded), got %d", score)
	}
}

func TestSimilarityScore_Singleton(t *testing.T) {
	if score := SimilarityScore([]*Patient{testPatient("Jane Doe", "1990-01-01", "111")}); score != 0 {
		t.Errorf("expected 0 for singleton, got %d", score)
	}
}
