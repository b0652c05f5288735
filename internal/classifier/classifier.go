// Package classifier assigns a taxonomy category to a product name.
//
// Keyword rules run first. When they are not confident, an optional AI step
// is consulted; any failure of that step is absorbed and the rule result is
// returned instead. Classify never fails.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/apperr"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/metrics"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/models"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/remote"
)

// EscalateAt is the rule confidence at or below which the AI step is asked.
const EscalateAt = 0.8

// AIStep classifies names the rules are unsure about.
type AIStep interface {
	Categorize(ctx context.Context, productName string) (models.ClassificationResult, error)
}

// Classifier combines the keyword rules with an optional AI step.
type Classifier struct {
	ai     AIStep
	logger *slog.Logger
}

// New creates a Classifier. ai may be nil, in which case only rules are used.
func New(ai AIStep, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{ai: ai, logger: logger}
}

// Classify returns the category of productName.
func (c *Classifier) Classify(ctx context.Context, productName string) models.ClassificationResult {
	result := ClassifyRules(productName)
	name := strings.TrimSpace(productName)

	if result.Confidence > EscalateAt || c.ai == nil || name == "" {
		metrics.ObserveClassification(metrics.SourceRules)
		return result
	}

	aiResult, err := c.categorize(ctx, name)
	if err != nil {
		err = &apperr.ClassificationUnavailableError{Err: err}
		c.logger.Debug("AI classification unavailable, using rules",
			"product", name,
			"category", result.Category,
			"error", err,
		)
		metrics.ObserveClassification(metrics.SourceFallback)
		return result
	}

	metrics.ObserveClassification(metrics.SourceAI)
	return aiResult
}

func (c *Classifier) categorize(ctx context.Context, name string) (res models.ClassificationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	res, err = c.ai.Categorize(ctx, name)
	if err != nil {
		return res, err
	}
	category, ok := models.ParseCategory(string(res.Category))
	if !ok {
		return res, fmt.Errorf("unknown category %q", res.Category)
	}
	res.Category = category
	res.Confidence = models.ClampConfidence(res.Confidence)
	if res.Reasoning == "" {
		res.Reasoning = "ai classification"
	}
	return res, nil
}

// RemoteAI is the AIStep backed by the categorizeProduct query.
type RemoteAI struct {
	api remote.API
}

// NewRemoteAI wraps api as an AIStep.
func NewRemoteAI(api remote.API) *RemoteAI {
	return &RemoteAI{api: api}
}

// Categorize implements AIStep.
func (r *RemoteAI) Categorize(ctx context.Context, productName string) (models.ClassificationResult, error) {
	res, err := r.api.CategorizeProduct(ctx, productName)
	if err != nil {
		return models.ClassificationResult{}, err
	}
	if res == nil {
		return models.ClassificationResult{}, errors.New("empty classification")
	}
	return *res, nil
}
