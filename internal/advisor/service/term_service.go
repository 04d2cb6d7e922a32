package service

import (
	"context"
	"fmt"
	"strings"

	"invest-advisor/internal/advisor/repository"
	"invest-advisor/pkg/logger"
)

// TermService explains investment terms from the glossary dictionary.
type TermService interface {
	Explain(ctx context.Context, query string) string
}

type termService struct {
	log      *logger.Logger
	termRepo repository.InvestmentTermRepository
}

// NewTermService creates the glossary lookup service.
func NewTermService(log *logger.Logger, termRepo repository.InvestmentTermRepository) TermService {
	return &termService{log: log, termRepo: termRepo}
}

func (s *termService) Explain(ctx context.Context, query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return "Ask me about an investment term and I will try to define it."
	}

	term, err := s.termRepo.FindDefinition(ctx, query)
	if err != nil {
		s.log.Warn("Term lookup failed", logger.ErrorField(err))
		return "Sorry, the glossary is unavailable right now. Please try again later."
	}
	if term == nil {
		return fmt.Sprintf("I don't have a definition for %q yet. Try another term or check the spelling.", query)
	}
	return fmt.Sprintf("*%s*\n\n%s", term.Term, term.Definition)
}
