// internal/match/query.go
// Preference query builder: translates a member's partner preferences into
// the structured eligibility filter executed by the repository.

package match

import (
	"time"

	"github.com/Ecera-System/ESMatromonial-sub000/internal/profile"
)

// CandidateFilter expresses the hard-eligibility predicates for one
// retrieval. Nil optional fields mean "no constraint". Account status and
// verification are always enforced by the repository and are not part of
// the filter.
type CandidateFilter struct {
	SelfID     int64
	ExcludeIDs []int64 // previously skipped members; dropped at the last-resort tier

	Gender     string
	BornAfter  *time.Time // date_of_birth >= today - maxAge years
	BornBefore *time.Time // date_of_birth <= today - minAge years
	Country    *string
	State      *string
	Religion   *string
	Caste      *string

	Limit int
}

// BuildFilter derives the strict eligibility filter from the requesting
// member's profile. Pure transformation; preference wildcards have already
// been normalized to nil by the profile layer.
func BuildFilter(u *profile.Profile, skipped []int64, limit int) CandidateFilter {
	f := CandidateFilter{
		SelfID:     u.ID,
		ExcludeIDs: skipped,
		Gender:     preferredGender(u),
		Country:    u.PartnerCountry,
		State:      u.PartnerLocation,
		Religion:   u.PartnerReligion,
		Caste:      u.PartnerCaste,
		Limit:      limit,
	}

	// Translate the preferred age range into a birth-date window
	if u.PartnerAgeMin != nil && u.PartnerAgeMax != nil {
		now := time.Now()
		bornAfter := now.AddDate(-*u.PartnerAgeMax, 0, 0)
		bornBefore := now.AddDate(-*u.PartnerAgeMin, 0, 0)
		f.BornAfter = &bornAfter
		f.BornBefore = &bornBefore
	}

	return f
}

// preferredGender uses the explicit preference when present, otherwise
// defaults to the opposite of the member's own gender.
func preferredGender(u *profile.Profile) string {
	if u.PartnerGender != nil {
		return *u.PartnerGender
	}
	if u.Gender == "Male" {
		return "Female"
	}
	return "Male"
}
