// internal/profile/models.go

package profile

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

// Profile represents a member's full matrimony profile, including the
// partner-preference sub-record used by the matchmaking engine.
type Profile struct {
	ID int64 `json:"id" db:"id"`

	// Basic Info
	FirstName     string     `json:"first_name" db:"first_name"`
	LastName      string     `json:"last_name" db:"last_name"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Gender        string     `json:"gender" db:"gender"`
	Height        *string    `json:"height,omitempty" db:"height"` // feet'inches" format, e.g. 5'10"
	Weight        *string    `json:"weight,omitempty" db:"weight"`
	MaritalStatus *string    `json:"marital_status,omitempty" db:"marital_status"`
	Religion      *string    `json:"religion,omitempty" db:"religion"`
	Caste         *string    `json:"caste,omitempty" db:"caste"`
	MotherTongue  *string    `json:"mother_tongue,omitempty" db:"mother_tongue"`

	// Contact & Location
	Email   string  `json:"email" db:"email"`
	Phone   *string `json:"phone,omitempty" db:"phone"`
	Country *string `json:"country,omitempty" db:"country"`
	State   *string `json:"state,omitempty" db:"state"`
	City    *string `json:"city,omitempty" db:"city"`

	// Professional
	Education        *string `json:"education,omitempty" db:"education"`
	EducationDetails *string `json:"education_details,omitempty" db:"education_details"`
	Occupation       *string `json:"occupation,omitempty" db:"occupation"`
	AnnualIncome     *string `json:"annual_income,omitempty" db:"annual_income"`
	WorkLocation     *string `json:"work_location,omitempty" db:"work_location"`

	// Lifestyle
	Diet      *string `json:"diet,omitempty" db:"diet"`
	Smoking   *string `json:"smoking,omitempty" db:"smoking"`
	Drinking  *string `json:"drinking,omitempty" db:"drinking"`
	Hobbies   *string `json:"hobbies,omitempty" db:"hobbies"`     // comma-delimited free text
	Interests *string `json:"interests,omitempty" db:"interests"` // comma-delimited free text

	// About
	AboutMe *string `json:"about_me,omitempty" db:"about_me"`

	// Partner Preferences
	// Nil means "no preference". Legacy wildcard sentinels ("Any Religion",
	// "Any Country", ...) are normalized to nil at the load boundary so the
	// matching core never compares magic strings.
	PartnerGender        *string `json:"partner_gender,omitempty" db:"partner_gender"`
	PartnerAgeMin        *int    `json:"partner_age_min,omitempty" db:"partner_age_min"`
	PartnerAgeMax        *int    `json:"partner_age_max,omitempty" db:"partner_age_max"`
	PartnerHeightMin     *string `json:"partner_height_min,omitempty" db:"partner_height_min"`
	PartnerHeightMax     *string `json:"partner_height_max,omitempty" db:"partner_height_max"`
	PartnerEducation     *string `json:"partner_education,omitempty" db:"partner_education"`
	PartnerOccupation    *string `json:"partner_occupation,omitempty" db:"partner_occupation"`
	PartnerIncome        *string `json:"partner_income,omitempty" db:"partner_income"`
	PartnerCountry       *string `json:"partner_country,omitempty" db:"partner_country"`
	PartnerLocation      *string `json:"partner_location,omitempty" db:"partner_location"` // preferred state
	PartnerReligion      *string `json:"partner_religion,omitempty" db:"partner_religion"`
	PartnerCaste         *string `json:"partner_caste,omitempty" db:"partner_caste"`
	PartnerMaritalStatus *string `json:"partner_marital_status,omitempty" db:"partner_marital_status"`
	PartnerAbout         *string `json:"partner_about,omitempty" db:"partner_about"`

	// Photos
	Photos pq.StringArray `json:"photos" db:"photos"`

	// System
	IsVerified    bool       `json:"is_verified" db:"is_verified"`
	AccountStatus string     `json:"account_status" db:"account_status"` // active, suspended, deleted
	LastActive    *time.Time `json:"last_active,omitempty" db:"last_active"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// PublicProfile is the candidate projection served to other members.
// Contact details and verification documents are never included.
type PublicProfile struct {
	ID            int64      `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	Age           *int       `json:"age,omitempty"`
	Gender        string     `json:"gender"`
	Height        *string    `json:"height,omitempty"`
	MaritalStatus *string    `json:"marital_status,omitempty"`
	Religion      *string    `json:"religion,omitempty"`
	Caste         *string    `json:"caste,omitempty"`
	MotherTongue  *string    `json:"mother_tongue,omitempty"`
	Country       *string    `json:"country,omitempty"`
	State         *string    `json:"state,omitempty"`
	City          *string    `json:"city,omitempty"`
	Education     *string    `json:"education,omitempty"`
	Occupation    *string    `json:"occupation,omitempty"`
	AnnualIncome  *string    `json:"annual_income,omitempty"`
	Diet          *string    `json:"diet,omitempty"`
	Hobbies       *string    `json:"hobbies,omitempty"`
	Interests     *string    `json:"interests,omitempty"`
	AboutMe       *string    `json:"about_me,omitempty"`
	Photos        []string   `json:"photos"`
	LastActive    *time.Time `json:"last_active,omitempty"`
}

// Public returns the candidate-facing projection of the profile
func (p *Profile) Public() *PublicProfile {
	pub := &PublicProfile{
		ID:            p.ID,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		DateOfBirth:   p.DateOfBirth,
		Gender:        p.Gender,
		Height:        p.Height,
		MaritalStatus: p.MaritalStatus,
		Religion:      p.Religion,
		Caste:         p.Caste,
		MotherTongue:  p.MotherTongue,
		Country:       p.Country,
		State:         p.State,
		City:          p.City,
		Education:     p.Education,
		Occupation:    p.Occupation,
		AnnualIncome:  p.AnnualIncome,
		Diet:          p.Diet,
		Hobbies:       p.Hobbies,
		Interests:     p.Interests,
		AboutMe:       p.AboutMe,
		Photos:        []string(p.Photos),
		LastActive:    p.LastActive,
	}
	if age, ok := p.Age(); ok {
		pub.Age = &age
	}
	return pub
}

// Age returns the member's age in calendar years
func (p *Profile) Age() (int, bool) {
	if p.DateOfBirth == nil {
		return 0, false
	}
	return time.Now().Year() - p.DateOfBirth.Year(), true
}

// Wildcard sentinels carried over from the legacy preference forms. A stored
// value equal to one of these means "no preference" for that attribute.
var wildcardSentinels = map[string]struct{}{
	"any gender":       {},
	"any religion":     {},
	"any country":      {},
	"any state":        {},
	"any education":    {},
	"any occupation":   {},
	"any income range": {},
	"any status":       {},
	"any":              {},
}

// NormalizePreferences converts wildcard sentinel strings to nil so that
// "no preference" is represented structurally. Called after every load.
func (p *Profile) NormalizePreferences() {
	fields := []**string{
		&p.PartnerGender,
		&p.PartnerHeightMin,
		&p.PartnerHeightMax,
		&p.PartnerEducation,
		&p.PartnerOccupation,
		&p.PartnerIncome,
		&p.PartnerCountry,
		&p.PartnerLocation,
		&p.PartnerReligion,
		&p.PartnerCaste,
		&p.PartnerMaritalStatus,
	}
	for _, f := range fields {
		if *f == nil {
			continue
		}
		v := strings.TrimSpace(**f)
		if v == "" {
			*f = nil
			continue
		}
		if _, isWildcard := wildcardSentinels[strings.ToLower(v)]; isWildcard {
			*f = nil
		}
	}
}

// Completion summarizes how complete a profile is
type Completion struct {
	Percentage    int      `json:"completion"`
	MissingFields []string `json:"missingFields"`
}

// completionFields maps API field names to accessors, in display order
var completionFields = []struct {
	name  string
	value func(p *Profile) bool
}{
	{"firstName", func(p *Profile) bool { return p.FirstName != "" }},
	{"lastName", func(p *Profile) bool { return p.LastName != "" }},
	{"dateOfBirth", func(p *Profile) bool { return p.DateOfBirth != nil }},
	{"gender", func(p *Profile) bool { return p.Gender != "" }},
	{"height", func(p *Profile) bool { return filled(p.Height) }},
	{"weight", func(p *Profile) bool { return filled(p.Weight) }},
	{"maritalStatus", func(p *Profile) bool { return filled(p.MaritalStatus) }},
	{"religion", func(p *Profile) bool { return filled(p.Religion) }},
	{"caste", func(p *Profile) bool { return filled(p.Caste) }},
	{"motherTongue", func(p *Profile) bool { return filled(p.MotherTongue) }},
	{"email", func(p *Profile) bool { return p.Email != "" }},
	{"phone", func(p *Profile) bool { return filled(p.Phone) }},
	{"country", func(p *Profile) bool { return filled(p.Country) }},
	{"state", func(p *Profile) bool { return filled(p.State) }},
	{"city", func(p *Profile) bool { return filled(p.City) }},
	{"education", func(p *Profile) bool { return filled(p.Education) }},
	{"educationDetails", func(p *Profile) bool { return filled(p.EducationDetails) }},
	{"occupation", func(p *Profile) bool { return filled(p.Occupation) }},
	{"annualIncome", func(p *Profile) bool { return filled(p.AnnualIncome) }},
	{"workLocation", func(p *Profile) bool { return filled(p.WorkLocation) }},
	{"diet", func(p *Profile) bool { return filled(p.Diet) }},
	{"smoking", func(p *Profile) bool { return filled(p.Smoking) }},
	{"drinking", func(p *Profile) bool { return filled(p.Drinking) }},
	{"hobbies", func(p *Profile) bool { return filled(p.Hobbies) }},
	{"interests", func(p *Profile) bool { return filled(p.Interests) }},
	{"aboutMe", func(p *Profile) bool { return filled(p.AboutMe) }},
	{"partnerAgeMin", func(p *Profile) bool { return p.PartnerAgeMin != nil }},
	{"partnerAgeMax", func(p *Profile) bool { return p.PartnerAgeMax != nil }},
	{"partnerHeightMin", func(p *Profile) bool { return filled(p.PartnerHeightMin) }},
	{"partnerHeightMax", func(p *Profile) bool { return filled(p.PartnerHeightMax) }},
	{"partnerEducation", func(p *Profile) bool { return filled(p.PartnerEducation) }},
	{"partnerOccupation", func(p *Profile) bool { return filled(p.PartnerOccupation) }},
	{"partnerIncome", func(p *Profile) bool { return filled(p.PartnerIncome) }},
	{"partnerLocation", func(p *Profile) bool { return filled(p.PartnerLocation) }},
	{"partnerReligion", func(p *Profile) bool { return filled(p.PartnerReligion) }},
	{"partnerCaste", func(p *Profile) bool { return filled(p.PartnerCaste) }},
	{"partnerMaritalStatus", func(p *Profile) bool { return filled(p.PartnerMaritalStatus) }},
	{"partnerAbout", func(p *Profile) bool { return filled(p.PartnerAbout) }},
	{"photos", func(p *Profile) bool { return len(p.Photos) > 0 }},
}

// CalculateCompletion returns the profile completion percentage and the list
// of missing fields. Verification counts toward 100%.
func (p *Profile) CalculateCompletion() *Completion {
	filledCount := 0
	missing := []string{}

	for _, f := range completionFields {
		if f.value(p) {
			filledCount++
		} else {
			missing = append(missing, f.name)
		}
	}

	total := len(completionFields) + 1
	if p.IsVerified {
		filledCount++
	} else {
		missing = append(missing, "isVerified")
	}

	percentage := int(float64(filledCount)/float64(total)*100 + 0.5)

	return &Completion{
		Percentage:    percentage,
		MissingFields: missing,
	}
}

func filled(s *string) bool {
	return s != nil && *s != ""
}
