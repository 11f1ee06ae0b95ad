package discovery

import (
	"strings"

	"creatorlink/internal/models"
)

// Criteria are the optional discovery filters. A nil field means the axis
// is not filtered.
type Criteria struct {
	Search  *string
	Country *string
	City    *string
}

// NewCriteria treats empty strings as absent. Other values are kept as
// given, whitespace included.
func NewCriteria(search, country, city string) Criteria {
	return Criteria{
		Search:  optional(search),
		Country: optional(country),
		City:    optional(city),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// HasLocation reports whether a country or city filter is set.
func (c Criteria) HasLocation() bool {
	return c.Country != nil || c.City != nil
}

// Result is a creator profile annotated for display.
type Result struct {
	models.CreatorProfile
	Travels          []models.Travel `json:"travels"`
	IsTraveling      bool            `json:"is_traveling"`
	MatchedViaTravel bool            `json:"matched_via_travel"`
}

// Classification is the outcome of matching one creator against a
// location filter.
type Classification struct {
	Included         bool
	MatchedViaTravel bool
	VisibleTravels   []models.Travel
}

// MatchesSearch is a case-insensitive substring match on username or bio.
func MatchesSearch(p models.CreatorProfile, search *string) bool {
	if search == nil {
		return true
	}
	needle := strings.ToLower(*search)
	if strings.Contains(strings.ToLower(p.Username), needle) {
		return true
	}
	return p.Bio != nil && strings.Contains(strings.ToLower(*p.Bio), needle)
}

func matchesLocation(country, city string, c Criteria) bool {
	if c.Country != nil && country != *c.Country {
		return false
	}
	if c.City != nil && city != *c.City {
		return false
	}
	return true
}

// Classify matches r against the location criteria. r.Travels must hold
// only the creator's active travels.
//
// A travel match takes precedence over a home match for display: when any
// travel matches, the creator is flagged as matched via travel and only
// the matching travels stay visible, even if home matches too.
func Classify(r Result, c Criteria) Classification {
	matchesHome := matchesLocation(r.Country, r.City, c)

	matching := make([]models.Travel, 0, len(r.Travels))
	for _, t := range r.Travels {
		if matchesLocation(t.DestinationCountry, t.DestinationCity, c) {
			matching = append(matching, t)
		}
	}

	if len(matching) > 0 {
		return Classification{
			Included:         true,
			MatchedViaTravel: true,
			VisibleTravels:   matching,
		}
	}

	return Classification{
		Included:         matchesHome,
		MatchedViaTravel: false,
		VisibleTravels:   []models.Travel{},
	}
}

// Project applies a classification to the displayed result.
func Project(r Result, cls Classification) Result {
	r.MatchedViaTravel = cls.MatchedViaTravel
	r.Travels = cls.VisibleTravels
	return r
}

// Annotate attaches each creator's active travels without location
// filtering. is_traveling reflects every active travel, not only the ones
// left visible after filtering.
func Annotate(creators []models.CreatorProfile, travels []models.Travel, today models.Date) []Result {
	active := GroupActive(travels, today)

	results := make([]Result, 0, len(creators))
	for _, p := range creators {
		own := active[p.UserID]
		if own == nil {
			own = []models.Travel{}
		}
		results = append(results, Result{
			CreatorProfile:   p,
			Travels:          own,
			IsTraveling:      len(own) > 0,
			MatchedViaTravel: false,
		})
	}
	return results
}

// Filter runs discovery over a roster already ordered newest first. The
// output keeps that order.
func Filter(creators []models.CreatorProfile, travels []models.Travel, c Criteria, today models.Date) []Result {
	searched := creators
	if c.Search != nil {
		searched = make([]models.CreatorProfile, 0, len(creators))
		for _, p := range creators {
			if MatchesSearch(p, c.Search) {
				searched = append(searched, p)
			}
		}
	}

	results := Annotate(searched, travels, today)
	if !c.HasLocation() {
		return results
	}

	filtered := make([]Result, 0, len(results))
	for _, r := range results {
		cls := Classify(r, c)
		if !cls.Included {
			continue
		}
		filtered = append(filtered, Project(r, cls))
	}
	return filtered
}
