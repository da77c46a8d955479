// Package chat implements the slot-filling conversation that assembles a job
// request one field per turn.
package chat

import (
	"context"
	"time"

	"github.com/helprly/job-assistant/internal/catalog"
	"github.com/helprly/job-assistant/internal/helpers"
	"github.com/helprly/job-assistant/internal/observability/metrics"
	"github.com/helprly/job-assistant/pkg/logging"
)

const anonymousUser = "anonymous"

// Service drives the dialogue: it loads conversation state, applies the
// transition for the current step, and persists the result.
type Service struct {
	states       StateStore
	catalog      catalog.Repository
	helperSearch helpers.Repository
	metrics      *metrics.ChatMetrics
	logger       *logging.Logger
	now          func() time.Time
}

// NewService wires the dialogue service. metrics may be nil.
func NewService(states StateStore, categories catalog.Repository, helperSearch helpers.Repository, m *metrics.ChatMetrics, logger *logging.Logger) *Service {
	if states == nil {
		panic("chat: state store cannot be nil")
	}
	if categories == nil {
		panic("chat: catalog repository cannot be nil")
	}
	if helperSearch == nil {
		panic("chat: helpers repository cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		states:       states,
		catalog:      categories,
		helperSearch: helperSearch,
		metrics:      m,
		logger:       logger,
		now:          time.Now,
	}
}

// HandleTurn processes one user message for a conversation and returns the
// bot's reply. State is saved even when the turn made no progress; a failed
// save is logged and the reply still delivered.
func (s *Service) HandleTurn(ctx context.Context, message, conversationID, userID string) *Response {
	started := time.Now()

	state := s.loadOrCreate(ctx, conversationID, userID)
	fromStep := state.CurrentStep
	wasComplete := state.Data.IsComplete

	resp := s.process(ctx, state, message)

	state.LastMessage = message
	state.UpdatedAt = s.now()
	if err := s.states.Upsert(ctx, state); err != nil {
		s.logger.Warn("failed to save conversation state",
			"conversation_id", conversationID, "error", err)
	}

	outcome := "reprompt"
	if state.CurrentStep != fromStep {
		outcome = "advanced"
	}
	s.metrics.TurnProcessed(string(fromStep), outcome)
	s.metrics.ObserveTurnDuration(string(fromStep), time.Since(started))
	if state.Data.IsComplete && !wasComplete {
		s.metrics.ConversationCompleted()
	}

	return resp
}

// loadOrCreate fetches stored state or seeds a fresh conversation. Load
// failures fall back to a fresh conversation rather than failing the turn.
func (s *Service) loadOrCreate(ctx context.Context, conversationID, userID string) *State {
	state, err := s.states.Get(ctx, conversationID)
	if err != nil {
		s.logger.Warn("failed to load conversation state, starting fresh",
			"conversation_id", conversationID, "error", err)
		state = nil
	}
	if state != nil {
		if state.CurrentStep == "" {
			state.CurrentStep = StepJobCategory
		}
		return state
	}

	if userID == "" {
		userID = anonymousUser
	}
	categories, err := s.catalog.ListActiveCategories(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch job categories", "error", err)
		categories = nil
	}

	now := s.now()
	return &State{
		ConversationID: conversationID,
		UserID:         userID,
		CurrentStep:    StepJobCategory,
		Data: FormData{
			CurrentField:    string(StepJobCategory),
			NextField:       string(StepJobQuestions),
			QuestionAnswers: []QuestionAnswer{},
		},
		Categories:     categories,
		AskedQuestions: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// process applies step transitions until one produces a reply. A transition
// returning a nil response means its field was already satisfied and the same
// message should flow into the next step. The loop is bounded by the pipeline
// length so a cycle in persisted state cannot spin forever.
func (s *Service) process(ctx context.Context, state *State, message string) *Response {
	for i := 0; i <= len(fieldOrder); i++ {
		resp, next := s.transition(ctx, state, message)
		state.CurrentStep = next
		if resp != nil {
			resp.ExtractedData = state.Data.Clone()
			return resp
		}
	}

	s.logger.Error("transition loop did not settle",
		"conversation_id", state.ConversationID, "step", string(state.CurrentStep))
	return &Response{Message: apologyMessage}
}

// transition dispatches on the current step. An unrecognized step, for
// example from corrupted persisted state, restarts at jobCategory instead of
// failing the request.
func (s *Service) transition(ctx context.Context, state *State, message string) (*Response, Step) {
	switch state.CurrentStep {
	case StepJobCategory:
		return s.stepJobCategory(ctx, state, message)
	case StepJobPostingType:
		return s.stepJobPostingType(state, message)
	case StepHelperSelection:
		return s.stepHelperSelection(ctx, state, message)
	case StepJobQuestions:
		return s.stepJobQuestions(state, message)
	case StepPreferredDate:
		return s.stepPreferredDate(state, message)
	case StepPreferredTime:
		return s.stepPreferredTime(state, message)
	case StepLocation:
		return s.stepLocation(state, message)
	case StepDescription:
		return s.stepDescription(state, message)
	case StepTitle:
		return s.stepTitle(state)
	case StepComplete:
		return s.stepComplete(state)
	default:
		return nil, StepJobCategory
	}
}
