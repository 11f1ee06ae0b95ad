// Package discovery decides which creators a business sees when it browses
// by text and location, and which of their travels are shown.
//
// Everything here is pure: the caller fetches rows and supplies today's date.
package discovery

import "creatorlink/internal/models"

// VisibilityLeadDays is how long before its start date a travel makes a
// creator discoverable at the destination.
const VisibilityLeadDays = 30

// Window is the inclusive date range during which a travel is active.
type Window struct {
	From models.Date
	To   models.Date
}

// WindowOf returns [start - 30 days, end] for a travel.
func WindowOf(t models.Travel) Window {
	return Window{
		From: t.StartDate.AddDays(-VisibilityLeadDays),
		To:   t.EndDate,
	}
}

// Contains is inclusive at both ends.
func (w Window) Contains(day models.Date) bool {
	return !day.Before(w.From) && !day.After(w.To)
}

// IsActive reports whether the travel's visibility window contains today.
func IsActive(t models.Travel, today models.Date) bool {
	return WindowOf(t).Contains(today)
}

// ActiveRange gives the bounds a datastore query uses to preselect active
// travels: start_date <= LatestStart AND end_date >= EarliestEnd.
func ActiveRange(today models.Date) (latestStart, earliestEnd models.Date) {
	return today.AddDays(VisibilityLeadDays), today
}

// GroupActive keeps only active travels and groups them by creator,
// preserving input order within each creator.
func GroupActive(travels []models.Travel, today models.Date) map[string][]models.Travel {
	byCreator := make(map[string][]models.Travel)
	for _, t := range travels {
		if !IsActive(t, today) {
			continue
		}
		byCreator[t.CreatorID] = append(byCreator[t.CreatorID], t)
	}
	return byCreator
}
