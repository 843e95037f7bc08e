// internal/match/scoring.go
// Compatibility scoring engine. Additive weighted factors over the requester's
// preferences, the candidate's own preferences (mutual bonuses), shared
// lifestyle tokens, profile completeness and activity recency.

package match

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Ecera-System/ESMatromonial-sub000/internal/profile"
)

// Factor weights. All scoring goes through the factor table below; tune here.
const (
	weightReligion   = 3.0
	weightCaste      = 3.0
	weightCountry    = 2.0
	weightState      = 2.0
	weightEducation  = 2.0
	weightOccupation = 2.0
	weightIncome     = 2.0

	weightAgeInRange    = 2.0
	weightAgeNearRange  = 1.0
	ageNearRangeYears   = 5
	weightHeightInRange = 2.0
	weightHeightNear    = 1.0
	heightNearInches    = 3

	weightMutual      = 1.0
	weightSharedToken = 0.5

	weightHasPhoto   = 1.0
	weightHasAboutMe = 1.0

	weightActiveWeek  = 2.0
	weightActiveMonth = 1.0

	// Reference maximum used to derive the display percentage. Presentation
	// only; raw scores routinely exceed it and the percentage is capped.
	maxReferenceScore = 10.0
)

// scoreFactor computes one additive contribution for a candidate
type scoreFactor struct {
	name  string
	score func(u, c *profile.Profile) float64
}

// scoreFactors is the declarative weight table consumed by Score.
// Order does not affect the result; the sum is what ranks candidates.
var scoreFactors = []scoreFactor{
	{"religion", preferenceMatch(weightReligion,
		func(u *profile.Profile) *string { return u.PartnerReligion },
		func(c *profile.Profile) *string { return c.Religion })},
	{"caste", preferenceMatch(weightCaste,
		func(u *profile.Profile) *string { return u.PartnerCaste },
		func(c *profile.Profile) *string { return c.Caste })},
	{"country", preferenceMatch(weightCountry,
		func(u *profile.Profile) *string { return u.PartnerCountry },
		func(c *profile.Profile) *string { return c.Country })},
	{"state", preferenceMatch(weightState,
		func(u *profile.Profile) *string { return u.PartnerLocation },
		func(c *profile.Profile) *string { return c.State })},
	{"education", preferenceMatch(weightEducation,
		func(u *profile.Profile) *string { return u.PartnerEducation },
		func(c *profile.Profile) *string { return c.Education })},
	{"occupation", preferenceMatch(weightOccupation,
		func(u *profile.Profile) *string { return u.PartnerOccupation },
		func(c *profile.Profile) *string { return c.Occupation })},
	{"income", preferenceMatch(weightIncome,
		func(u *profile.Profile) *string { return u.PartnerIncome },
		func(c *profile.Profile) *string { return c.AnnualIncome })},
	{"age", scoreAge},
	{"height", scoreHeight},
	{"mutual_religion", mutualMatch(
		func(c *profile.Profile) *string { return c.PartnerReligion },
		func(u *profile.Profile) *string { return u.Religion })},
	{"mutual_caste", mutualMatch(
		func(c *profile.Profile) *string { return c.PartnerCaste },
		func(u *profile.Profile) *string { return u.Caste })},
	{"mutual_country", mutualMatch(
		func(c *profile.Profile) *string { return c.PartnerCountry },
		func(u *profile.Profile) *string { return u.Country })},
	{"mutual_state", mutualMatch(
		func(c *profile.Profile) *string { return c.PartnerLocation },
		func(u *profile.Profile) *string { return u.State })},
	{"mutual_education", mutualMatch(
		func(c *profile.Profile) *string { return c.PartnerEducation },
		func(u *profile.Profile) *string { return u.Education })},
	{"mutual_occupation", mutualMatch(
		func(c *profile.Profile) *string { return c.PartnerOccupation },
		func(u *profile.Profile) *string { return u.Occupation })},
	{"mutual_marital_status", mutualMatch(
		func(c *profile.Profile) *string { return c.PartnerMaritalStatus },
		func(u *profile.Profile) *string { return u.MaritalStatus })},
	{"shared_hobbies", func(u, c *profile.Profile) float64 {
		return float64(sharedTokenCount(u.Hobbies, c.Hobbies)) * weightSharedToken
	}},
	{"shared_interests", func(u, c *profile.Profile) float64 {
		return float64(sharedTokenCount(u.Interests, c.Interests)) * weightSharedToken
	}},
	{"has_photo", func(u, c *profile.Profile) float64 {
		if len(c.Photos) > 0 {
			return weightHasPhoto
		}
		return 0
	}},
	{"has_about_me", func(u, c *profile.Profile) float64 {
		if c.AboutMe != nil && *c.AboutMe != "" {
			return weightHasAboutMe
		}
		return 0
	}},
	{"recent_activity", scoreRecentActivity},
}

// Score computes the raw additive compatibility score of a candidate for
// the requesting member. Deterministic for identical inputs.
func Score(u, c *profile.Profile) float64 {
	total := 0.0
	for _, f := range scoreFactors {
		total += f.score(u, c)
	}
	return total
}

// ScoreAndRank annotates each candidate with its score and sorts the pool:
// score descending, ties broken by last_active descending, further ties
// keep input order.
func ScoreAndRank(u *profile.Profile, candidates []*profile.Profile) []*ScoredCandidate {
	scored := make([]*ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, &ScoredCandidate{
			Profile: c,
			Score:   Score(u, c),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return lastActiveTime(scored[i].Profile).After(lastActiveTime(scored[j].Profile))
	})

	return scored
}

// MatchPercentage derives the bounded display percentage from a raw score
func MatchPercentage(score float64) int {
	if score < 0 {
		return 0
	}
	pct := int(score/maxReferenceScore*100 + 0.5)
	if pct > 100 {
		return 100
	}
	return pct
}

// preferenceMatch builds a factor awarding points when the requester's
// stated preference equals the candidate's attribute. Nil preference
// (no preference) never scores.
func preferenceMatch(points float64, pref func(*profile.Profile) *string, attr func(*profile.Profile) *string) func(u, c *profile.Profile) float64 {
	return func(u, c *profile.Profile) float64 {
		p := pref(u)
		a := attr(c)
		if p == nil || a == nil {
			return 0
		}
		if *p == *a {
			return points
		}
		return 0
	}
}

// mutualMatch builds a factor awarding points when the candidate's own
// preference matches the requester's attribute.
func mutualMatch(pref func(*profile.Profile) *string, attr func(*profile.Profile) *string) func(u, c *profile.Profile) float64 {
	return func(u, c *profile.Profile) float64 {
		p := pref(c)
		a := attr(u)
		if p == nil || a == nil {
			return 0
		}
		if *p == *a {
			return weightMutual
		}
		return 0
	}
}

// scoreAge awards full points inside the preferred range and partial points
// within five years of it. The two bonuses are mutually exclusive.
func scoreAge(u, c *profile.Profile) float64 {
	if u.PartnerAgeMin == nil || u.PartnerAgeMax == nil {
		return 0
	}
	age, ok := c.Age()
	if !ok {
		return 0
	}

	if age >= *u.PartnerAgeMin && age <= *u.PartnerAgeMax {
		return weightAgeInRange
	}
	if age >= *u.PartnerAgeMin-ageNearRangeYears && age <= *u.PartnerAgeMax+ageNearRangeYears {
		return weightAgeNearRange
	}
	return 0
}

// scoreHeight awards full points inside the preferred height range and
// partial points within three inches of it. Any unparseable height value
// contributes zero; a malformed field never excludes the candidate.
func scoreHeight(u, c *profile.Profile) float64 {
	if u.PartnerHeightMin == nil || u.PartnerHeightMax == nil || c.Height == nil {
		return 0
	}

	minInches, okMin := parseHeight(*u.PartnerHeightMin)
	maxInches, okMax := parseHeight(*u.PartnerHeightMax)
	candidateInches, okCand := parseHeight(*c.Height)
	if !okMin || !okMax || !okCand {
		return 0
	}

	if candidateInches >= minInches && candidateInches <= maxInches {
		return weightHeightInRange
	}
	if candidateInches >= minInches-heightNearInches && candidateInches <= maxInches+heightNearInches {
		return weightHeightNear
	}
	return 0
}

// scoreRecentActivity rewards candidates active within the last week, and
// less so within the last month.
func scoreRecentActivity(u, c *profile.Profile) float64 {
	if c.LastActive == nil {
		return 0
	}
	since := time.Since(*c.LastActive)
	if since < 7*24*time.Hour {
		return weightActiveWeek
	}
	if since < 30*24*time.Hour {
		return weightActiveMonth
	}
	return 0
}

// heightPattern matches the stored feet'inches" format, e.g. 5'10"
var heightPattern = regexp.MustCompile(`(\d+)'(\d+)"`)

// parseHeight converts a feet'inches" string to total inches
func parseHeight(s string) (int, bool) {
	parts := heightPattern.FindStringSubmatch(s)
	if parts == nil {
		return 0, false
	}
	feet, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	inches, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, false
	}
	return feet*12 + inches, true
}

// splitTokens normalizes a comma-delimited free-text list: split, trim,
// lowercase, drop empties. Isolated here so the representation can move to
// structured tags without touching the scorer.
func splitTokens(s *string) []string {
	if s == nil || *s == "" {
		return nil
	}
	parts := strings.Split(*s, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.ToLower(strings.TrimSpace(p))
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// sharedTokenCount counts tokens present in both lists
func sharedTokenCount(a, b *string) int {
	tokensA := splitTokens(a)
	if len(tokensA) == 0 {
		return 0
	}
	seen := make(map[string]bool, len(tokensA))
	for _, t := range tokensA {
		seen[t] = true
	}

	count := 0
	for _, t := range splitTokens(b) {
		if seen[t] {
			count++
			seen[t] = false // each shared token counts once
		}
	}
	return count
}

// lastActiveTime returns the candidate's last activity, zero when unknown
func lastActiveTime(p *profile.Profile) time.Time {
	if p.LastActive == nil {
		return time.Time{}
	}
	return *p.LastActive
}
