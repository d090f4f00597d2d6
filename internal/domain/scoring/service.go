package scoring

import (
	"errors"

	"github.com/phrazzld/mnemo-api/internal/domain"
)

// Common errors
var (
	ErrNilSession = errors.New("session cannot be nil")
	ErrNilParams  = errors.New("scoring params cannot be nil")
)

// Service defines the interface for scoring operations
type Service interface {
	// Score computes the final score of a completed session together with
	// the breakdown that reports it. Sessions that are not completed, or
	// that have no moves, score 0.
	Score(session *domain.Session) (float64, domain.ScoreBreakdown, error)

	// Breakdown explains the session's current telemetry, reporting the
	// stored final score or 0 when none has been computed yet. It does not
	// modify the session.
	Breakdown(session *domain.Session) (domain.ScoreBreakdown, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scoring service with default parameters
func NewDefaultService() (Service, error) {
	return NewServiceWithParams(NewDefaultParams())
}

// NewServiceWithParams creates a new scoring service with custom parameters
func NewServiceWithParams(params *Params) (Service, error) {
	if params == nil {
		return nil, ErrNilParams
	}
	return &defaultService{params: params}, nil
}

// Score implements Service.
func (s *defaultService) Score(session *domain.Session) (float64, domain.ScoreBreakdown, error) {
	if session == nil {
		return 0, domain.ScoreBreakdown{}, ErrNilSession
	}
	c := calculateComponents(session, s.params)
	return c.final, buildBreakdown(session, c, c.final), nil
}

// Breakdown implements Service.
func (s *defaultService) Breakdown(session *domain.Session) (domain.ScoreBreakdown, error) {
	if session == nil {
		return domain.ScoreBreakdown{}, ErrNilSession
	}
	var final float64
	if session.FinalScore != nil {
		final = *session.FinalScore
	}
	return buildBreakdown(session, calculateComponents(session, s.params), final), nil
}
