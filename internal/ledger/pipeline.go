package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/esp046-cyber/budget-tracker/internal/types"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Pipeline runs the full ledger pass: read the store, expand recurring
// templates, persist the new instances, aggregate and evaluate alerts.
//
// A pass holds the pipeline mutex for its whole duration. The pass is not
// reentrant against a mutating store, so expansion, persistence and
// aggregation always see one consistent transaction set.
type Pipeline struct {
	db *gorm.DB
	mu sync.Mutex
}

// NewPipeline returns a pipeline reading from and writing to db.
func NewPipeline(db *gorm.DB) *Pipeline {
	return &Pipeline{db: db}
}

// Result is the output of one pipeline pass. Summaries and alerts are
// recomputed on every pass and never persisted.
type Result struct {
	Created   []models.Transaction          `json:"created"`   // Instances materialized by this pass
	Skipped   []SkippedTemplate             `json:"skipped"`   // Templates that could not be expanded
	Summaries map[types.Month]PeriodSummary `json:"summaries"` // Per-month aggregation
	Alerts    map[types.Month][]Alert       `json:"alerts"`    // Per-month limit evaluation
}

// Run executes one pass as of the given date.
//
// The new instances are persisted in a single database transaction. If the
// write fails, the pass is aborted with ErrStoreWrite and nothing is
// persisted, so in-memory and persisted state cannot diverge.
func (p *Pipeline) Run(asOf time.Time) (Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var transactions []models.Transaction
	err := p.db.Find(&transactions).Error
	if err != nil {
		return Result{}, err
	}

	templates := make([]models.Transaction, 0)
	for _, transaction := range transactions {
		if transaction.IsTemplate() {
			templates = append(templates, transaction)
		}
	}

	created, skipped := Expand(templates, MaterializedSet(transactions), asOf)

	for _, skip := range skipped {
		log.Warn().
			Str("template", skip.TemplateID.String()).
			Str("reason", skip.Reason).
			Msg("skipping recurring template")
	}

	if len(created) > 0 {
		err = p.db.Transaction(func(tx *gorm.DB) error {
			for i := range created {
				if err := tx.Create(&created[i]).Error; err != nil {
					return err
				}
			}

			return nil
		})
		if err != nil {
			return Result{}, fmt.Errorf("%w: %s", ErrStoreWrite, err.Error())
		}
	}

	var currencies []models.Currency
	err = p.db.Find(&currencies).Error
	if err != nil {
		return Result{}, err
	}

	summaries, err := Aggregate(append(transactions, created...), TableFromCurrencies(currencies))
	if err != nil {
		return Result{}, err
	}

	var limits []models.BudgetLimit
	err = p.db.Order("position ASC").Find(&limits).Error
	if err != nil {
		return Result{}, err
	}

	alerts := make(map[types.Month][]Alert, len(summaries))
	for month, summary := range summaries {
		alerts[month] = EvaluateAlerts(summary, limits)
	}

	log.Debug().
		Int("created", len(created)).
		Int("skipped", len(skipped)).
		Int("months", len(summaries)).
		Msg("pipeline pass complete")

	return Result{
		Created:   created,
		Skipped:   skipped,
		Summaries: summaries,
		Alerts:    alerts,
	}, nil
}
