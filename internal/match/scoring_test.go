// internal/match/scoring_test.go
package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Ecera-System/ESMatromonial-sub000/internal/profile"
)

// ==========================
// Test Helper Functions
// ==========================

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func timePtr(t time.Time) *time.Time { return &t }

func birthDate(age int) *time.Time {
	t := time.Now().AddDate(-age, 0, 0)
	return &t
}

// seeker is a member with a full preference set
func seeker() *profile.Profile {
	return &profile.Profile{
		ID:                   1,
		FirstName:            "Priya",
		Gender:               "Female",
		Religion:             strPtr("Hindu"),
		Caste:                strPtr("Brahmin"),
		Country:              strPtr("India"),
		State:                strPtr("Karnataka"),
		Education:            strPtr("Masters"),
		Occupation:           strPtr("Engineer"),
		MaritalStatus:        strPtr("Never Married"),
		Hobbies:              strPtr("Reading, Cooking, Travel"),
		Interests:            strPtr("Music, Yoga"),
		DateOfBirth:          birthDate(28),
		PartnerGender:        strPtr("Male"),
		PartnerReligion:      strPtr("Hindu"),
		PartnerCaste:         strPtr("Brahmin"),
		PartnerCountry:       strPtr("India"),
		PartnerLocation:      strPtr("Karnataka"),
		PartnerEducation:     strPtr("Masters"),
		PartnerOccupation:    strPtr("Engineer"),
		PartnerIncome:        strPtr("10-15 LPA"),
		PartnerAgeMin:        intPtr(28),
		PartnerAgeMax:        intPtr(34),
		PartnerHeightMin:     strPtr(`5'6"`),
		PartnerHeightMax:     strPtr(`6'0"`),
		PartnerMaritalStatus: strPtr("Never Married"),
	}
}

// idealCandidate matches every preference of seeker and has a complete,
// recently active profile
func idealCandidate() *profile.Profile {
	return &profile.Profile{
		ID:                   2,
		FirstName:            "Rahul",
		Gender:               "Male",
		Religion:             strPtr("Hindu"),
		Caste:                strPtr("Brahmin"),
		Country:              strPtr("India"),
		State:                strPtr("Karnataka"),
		Education:            strPtr("Masters"),
		Occupation:           strPtr("Engineer"),
		AnnualIncome:         strPtr("10-15 LPA"),
		MaritalStatus:        strPtr("Never Married"),
		Height:               strPtr(`5'10"`),
		DateOfBirth:          birthDate(30),
		Hobbies:              strPtr("Travel, Cooking"),
		Interests:            strPtr("Music"),
		AboutMe:              strPtr("Software engineer who loves the outdoors."),
		Photos:               []string{"photo1.jpg"},
		LastActive:           timePtr(time.Now().Add(-24 * time.Hour)),
		PartnerReligion:      strPtr("Hindu"),
		PartnerCaste:         strPtr("Brahmin"),
		PartnerCountry:       strPtr("India"),
		PartnerLocation:      strPtr("Karnataka"),
		PartnerEducation:     strPtr("Masters"),
		PartnerOccupation:    strPtr("Engineer"),
		PartnerMaritalStatus: strPtr("Never Married"),
	}
}

// ==========================
// Score Tests
// ==========================

func TestScore_IdealCandidate(t *testing.T) {
	u := seeker()
	c := idealCandidate()

	score := Score(u, c)

	// religion 3 + caste 3 + country 2 + state 2 + education 2 +
	// occupation 2 + income 2 + age 2 + height 2 + 7 mutual bonuses +
	// 3 shared tokens at 0.5 + photo 1 + about 1 + active this week 2
	assert.Equal(t, 32.5, score)
}

func TestScore_Deterministic(t *testing.T) {
	u := seeker()
	c := idealCandidate()

	first := Score(u, c)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(u, c))
	}
}

func TestScore_EmptyProfiles(t *testing.T) {
	u := &profile.Profile{ID: 1, Gender: "Female"}
	c := &profile.Profile{ID: 2, Gender: "Male"}

	assert.Equal(t, 0.0, Score(u, c))
}

func TestScore_NilPreferenceNeverScores(t *testing.T) {
	u := seeker()
	u.PartnerReligion = nil
	c := idealCandidate()

	withPref := Score(seeker(), c)
	withoutPref := Score(u, c)

	assert.Equal(t, withPref-weightReligion, withoutPref)
}

func TestScore_AgeFactor(t *testing.T) {
	tests := []struct {
		name     string
		age      int
		expected float64
	}{
		{"inside range", 30, weightAgeInRange},
		{"lower bound", 28, weightAgeInRange},
		{"upper bound", 34, weightAgeInRange},
		{"just above range", 36, weightAgeNearRange},
		{"just below range", 25, weightAgeNearRange},
		{"far outside range", 45, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := seeker()
			c := &profile.Profile{ID: 2, Gender: "Male", DateOfBirth: birthDate(tt.age)}

			assert.Equal(t, tt.expected, scoreAge(u, c))
		})
	}
}

func TestScore_AgeFactor_MissingBirthDate(t *testing.T) {
	u := seeker()
	c := &profile.Profile{ID: 2, Gender: "Male"}

	assert.Equal(t, 0.0, scoreAge(u, c))
}

func TestScore_HeightFactor(t *testing.T) {
	tests := []struct {
		name     string
		height   *string
		expected float64
	}{
		{"inside range", strPtr(`5'8"`), weightHeightInRange},
		{"lower bound", strPtr(`5'6"`), weightHeightInRange},
		{"upper bound", strPtr(`6'0"`), weightHeightInRange},
		{"two inches below", strPtr(`5'4"`), weightHeightNear},
		{"three inches above", strPtr(`6'3"`), weightHeightNear},
		{"far outside", strPtr(`4'10"`), 0},
		{"unparseable", strPtr("180cm"), 0},
		{"missing", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := seeker()
			c := &profile.Profile{ID: 2, Gender: "Male", Height: tt.height}

			assert.Equal(t, tt.expected, scoreHeight(u, c))
		})
	}
}

func TestScore_RecentActivity(t *testing.T) {
	tests := []struct {
		name       string
		lastActive *time.Time
		expected   float64
	}{
		{"active yesterday", timePtr(time.Now().Add(-24 * time.Hour)), weightActiveWeek},
		{"active two weeks ago", timePtr(time.Now().Add(-14 * 24 * time.Hour)), weightActiveMonth},
		{"active two months ago", timePtr(time.Now().Add(-60 * 24 * time.Hour)), 0},
		{"never active", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &profile.Profile{ID: 2, LastActive: tt.lastActive}

			assert.Equal(t, tt.expected, scoreRecentActivity(seeker(), c))
		})
	}
}

// ==========================
// Height Parsing Tests
// ==========================

func TestParseHeight(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		inches int
		ok     bool
	}{
		{"typical", `5'10"`, 70, true},
		{"exact feet", `6'0"`, 72, true},
		{"short", `4'11"`, 59, true},
		{"metric", "178cm", 0, false},
		{"empty", "", 0, false},
		{"garbage", "tall", 0, false},
		{"feet only", "5'", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inches, ok := parseHeight(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.inches, inches)
		})
	}
}

// ==========================
// Token Tests
// ==========================

func TestSplitTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    *string
		expected []string
	}{
		{"simple list", strPtr("Reading, Cooking, Travel"), []string{"reading", "cooking", "travel"}},
		{"extra whitespace", strPtr("  Music ,  Yoga  "), []string{"music", "yoga"}},
		{"empty entries", strPtr("Music,,Yoga,"), []string{"music", "yoga"}},
		{"nil", nil, nil},
		{"empty string", strPtr(""), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitTokens(tt.input))
		})
	}
}

func TestSharedTokenCount(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *string
		expected int
	}{
		{"overlap", strPtr("Reading, Cooking, Travel"), strPtr("Travel, Cooking"), 2},
		{"case insensitive", strPtr("READING"), strPtr("reading"), 1},
		{"no overlap", strPtr("Reading"), strPtr("Swimming"), 0},
		{"duplicates count once", strPtr("Music"), strPtr("Music, music, MUSIC"), 1},
		{"nil side", nil, strPtr("Reading"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sharedTokenCount(tt.a, tt.b))
		})
	}
}

// ==========================
// Ranking Tests
// ==========================

func TestScoreAndRank_OrdersByScore(t *testing.T) {
	u := seeker()
	best := idealCandidate()

	weak := &profile.Profile{ID: 3, Gender: "Male", FirstName: "Amit"}

	ranked := ScoreAndRank(u, []*profile.Profile{weak, best})

	assert.Len(t, ranked, 2)
	assert.Equal(t, int64(2), ranked[0].Profile.ID)
	assert.Equal(t, int64(3), ranked[1].Profile.ID)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}

func TestScoreAndRank_TieBreakByLastActive(t *testing.T) {
	u := &profile.Profile{ID: 1, Gender: "Female"}

	older := &profile.Profile{ID: 2, Gender: "Male",
		LastActive: timePtr(time.Now().Add(-40 * 24 * time.Hour))}
	newer := &profile.Profile{ID: 3, Gender: "Male",
		LastActive: timePtr(time.Now().Add(-35 * 24 * time.Hour))}
	never := &profile.Profile{ID: 4, Gender: "Male"}

	ranked := ScoreAndRank(u, []*profile.Profile{never, older, newer})

	// All score zero; most recently active wins, nil last_active sorts last
	assert.Equal(t, int64(3), ranked[0].Profile.ID)
	assert.Equal(t, int64(2), ranked[1].Profile.ID)
	assert.Equal(t, int64(4), ranked[2].Profile.ID)
}

func TestScoreAndRank_StableForEqualCandidates(t *testing.T) {
	u := &profile.Profile{ID: 1, Gender: "Female"}
	active := timePtr(time.Now().Add(-40 * 24 * time.Hour))

	a := &profile.Profile{ID: 2, Gender: "Male", LastActive: active}
	b := &profile.Profile{ID: 3, Gender: "Male", LastActive: active}

	ranked := ScoreAndRank(u, []*profile.Profile{a, b})

	// Identical score and activity keep input order
	assert.Equal(t, int64(2), ranked[0].Profile.ID)
	assert.Equal(t, int64(3), ranked[1].Profile.ID)
}

// ==========================
// Percentage Tests
// ==========================

func TestMatchPercentage(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected int
	}{
		{"zero", 0, 0},
		{"half of reference", 5, 50},
		{"full reference", 10, 100},
		{"above reference caps at 100", 35.5, 100},
		{"rounds to nearest", 5.55, 56},
		{"negative clamps to zero", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct := MatchPercentage(tt.score)
			assert.Equal(t, tt.expected, pct)
			assert.GreaterOrEqual(t, pct, 0)
			assert.LessOrEqual(t, pct, 100)
		})
	}
}
