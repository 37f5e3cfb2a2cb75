package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/legacylearning/intake-api/internal/dto"
	appErrors "github.com/legacylearning/intake-api/pkg/errors"
	"github.com/legacylearning/intake-api/pkg/llm"
)

const (
	minDraftTextLen      = 50
	defaultMaxOutcomes   = 8
	defaultTargetModules = 6
)

type outlineDrafter interface {
	Draft(ctx context.Context, input llm.OutlineInput) (*llm.OutlineSuggestion, error)
}

// OutlineService validates draft requests and relays them to the LLM
// provider.
type OutlineService struct {
	drafter   outlineDrafter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewOutlineService constructs an OutlineService instance.
func NewOutlineService(drafter outlineDrafter, validate *validator.Validate, logger *zap.Logger) *OutlineService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &OutlineService{drafter: drafter, validator: validate, logger: logger}
}

// Draft returns suggested outcomes and module titles for the pasted
// source material.
func (s *OutlineService) Draft(ctx context.Context, req dto.OutlineDraftRequest) (*dto.OutlineDraftResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid draft payload")
	}
	if len(strings.TrimSpace(req.Text)) < minDraftTextLen {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Provide at least ~50 characters of text.")
	}

	maxOutcomes := req.MaxOutcomes
	if maxOutcomes <= 0 {
		maxOutcomes = defaultMaxOutcomes
	}
	targetModules := req.TargetModules
	if targetModules <= 0 {
		targetModules = defaultTargetModules
	}

	suggestion, err := s.drafter.Draft(ctx, llm.OutlineInput{
		Client:        req.Client,
		Scope:         req.Scope,
		Text:          req.Text,
		MaxOutcomes:   maxOutcomes,
		TargetModules: targetModules,
	})
	if err != nil {
		var upstream *llm.UpstreamError
		if errors.As(err, &upstream) {
			s.logger.Warn("outline provider rejected draft",
				zap.Int("status", upstream.StatusCode))
			return nil, appErrors.Upstream(err, "outline provider request failed")
		}
		return nil, appErrors.Upstream(err, "outline provider unreachable")
	}

	s.logger.Info("outline drafted",
		zap.Int("outcomes", len(suggestion.Outcomes)),
		zap.Int("modules", len(suggestion.Modules)))
	return &dto.OutlineDraftResponse{
		Outcomes: suggestion.Outcomes,
		Modules:  suggestion.Modules,
		Notes:    suggestion.Notes,
	}, nil
}
