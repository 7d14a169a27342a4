// Package ledger implements the core pipeline: recurrence expansion,
// currency normalization, monthly aggregation and budget alerts.
//
// All functions in this package are pure over their inputs, persistence
// and rendering are performed by the callers.
package ledger

import (
	"time"

	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/esp046-cyber/budget-tracker/internal/types"
	"github.com/google/uuid"
)

// OccurrenceKey identifies one materialized instance of a recurring
// template. Expansion never emits the same key twice.
type OccurrenceKey struct {
	TemplateID uuid.UUID
	Date       string
}

// NewOccurrenceKey returns the key for a template occurrence on a date.
// Only the calendar day is significant.
func NewOccurrenceKey(templateID uuid.UUID, date time.Time) OccurrenceKey {
	return OccurrenceKey{
		TemplateID: templateID,
		Date:       date.In(time.UTC).Format("2006-01-02"),
	}
}

// OccurrenceSet is the set of already-materialized occurrences.
type OccurrenceSet map[OccurrenceKey]struct{}

// Contains reports whether the set contains the key.
func (s OccurrenceSet) Contains(key OccurrenceKey) bool {
	_, ok := s[key]
	return ok
}

// Add adds a key to the set.
func (s OccurrenceSet) Add(key OccurrenceKey) {
	s[key] = struct{}{}
}

// MaterializedSet collects the occurrence keys of all materialized
// instances in the transaction list.
func MaterializedSet(transactions []models.Transaction) OccurrenceSet {
	set := make(OccurrenceSet)
	for _, transaction := range transactions {
		if transaction.OriginTemplateID == nil {
			continue
		}

		set.Add(NewOccurrenceKey(*transaction.OriginTemplateID, transaction.Date))
	}

	return set
}

// SkippedTemplate records a template that could not be expanded and the
// reason it was skipped. A skipped template never stops the expansion of
// the remaining templates.
type SkippedTemplate struct {
	TemplateID uuid.UUID `json:"templateId"`
	Reason     string    `json:"reason"`
}

// Expand materializes all due occurrences of the recurring templates up to
// and including asOf.
//
// For each template, the anchor date advances one cadence step at a time.
// Monthly steps are computed from the anchor, not from the previous
// occurrence, so an anchor on the 31st lands on the last day of shorter
// months and returns to the 31st afterwards.
//
// An occurrence is emitted only if its (template, date) key is not in
// materialized, which makes expansion idempotent: running it twice with
// identical inputs yields nothing the second time, and running it with a
// later asOf yields only the incremental occurrences.
//
// The input slices are never modified. The new instances are returned as a
// separate slice and merging them into a store is up to the caller.
func Expand(templates []models.Transaction, materialized OccurrenceSet, asOf time.Time) ([]models.Transaction, []SkippedTemplate) {
	instances := make([]models.Transaction, 0)
	skipped := make([]SkippedTemplate, 0)

	// Track keys emitted during this run so that duplicated templates in
	// the input cannot produce duplicated instances.
	emitted := make(OccurrenceSet)

	asOf = dateOnly(asOf)

	for _, template := range templates {
		if !template.IsTemplate() {
			continue
		}

		if err := checkTemplate(template); err != nil {
			skipped = append(skipped, SkippedTemplate{
				TemplateID: template.ID,
				Reason:     err.Error(),
			})
			continue
		}

		anchor := dateOnly(template.Date)

		for step := 1; ; step++ {
			candidate := occurrence(anchor, template.Recurrence, step)
			if candidate.After(asOf) {
				break
			}

			key := NewOccurrenceKey(template.ID, candidate)
			if materialized.Contains(key) || emitted.Contains(key) {
				continue
			}
			emitted.Add(key)

			instances = append(instances, newInstance(template, candidate))
		}
	}

	return instances, skipped
}

// occurrence returns the date of occurrence number step for an anchor and
// cadence. Step 0 is the anchor itself.
func occurrence(anchor time.Time, rule models.RecurrenceRule, step int) time.Time {
	switch rule {
	case models.RecurrenceDaily:
		return anchor.AddDate(0, 0, step)
	case models.RecurrenceWeekly:
		return anchor.AddDate(0, 0, 7*step)
	default:
		// monthly: advance whole months from the anchor and clamp the
		// anchor's day to the target month's length
		return types.MonthOf(anchor).AddDate(0, step).DayClamped(anchor.Day())
	}
}

// checkTemplate reports why a template cannot be expanded, if it cannot.
func checkTemplate(template models.Transaction) error {
	switch template.Recurrence {
	case models.RecurrenceDaily, models.RecurrenceWeekly, models.RecurrenceMonthly:
	default:
		return models.ErrInvalidRecurrenceRule
	}

	if !template.Amount.IsPositive() {
		return models.ErrAmountNotPositive
	}

	if template.Date.IsZero() {
		return errTemplateAnchorZero
	}

	return nil
}

// newInstance returns the materialized instance of a template for a date.
func newInstance(template models.Transaction, date time.Time) models.Transaction {
	templateID := template.ID

	return models.Transaction{
		Date:             date,
		Kind:             template.Kind,
		Amount:           template.Amount,
		CurrencyCode:     template.CurrencyCode,
		Category:         template.Category,
		Description:      template.Description,
		Recurrence:       models.RecurrenceNone,
		OriginTemplateID: &templateID,
	}
}

func dateOnly(t time.Time) time.Time {
	t = t.In(time.UTC)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
