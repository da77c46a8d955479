package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helprly/job-assistant/internal/catalog"
	"github.com/helprly/job-assistant/internal/helpers"
	"github.com/helprly/job-assistant/pkg/logging"
)

type flakyStore struct {
	getErr    error
	upsertErr error
	saved     *State
}

func (f *flakyStore) Get(ctx context.Context, conversationID string) (*State, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return nil, nil
}

func (f *flakyStore) Upsert(ctx context.Context, state *State) error {
	f.saved = state
	return f.upsertErr
}

func newTestService(store StateStore, questions map[string][]catalog.Question, helperList []helpers.Helper) *Service {
	svc := NewService(
		store,
		catalog.NewInMemoryRepository(catalog.DefaultCategories(), questions),
		helpers.NewInMemoryRepository(helperList),
		nil,
		logging.New("error"),
	)
	svc.now = func() time.Time { return thursday }
	return svc
}

func mustLoad(t *testing.T, store StateStore, conversationID string) *State {
	t.Helper()
	state, err := store.Get(context.Background(), conversationID)
	require.NoError(t, err)
	require.NotNil(t, state)
	return state
}

func TestPublicConversationEndToEnd(t *testing.T) {
	store := NewMemoryStateStore()
	svc := newTestService(store, nil, nil)
	ctx := context.Background()

	messages := []string{"cleaning", "public", "tomorrow", "9am", "123 Main St", "please be thorough"}

	var last *Response
	var confidences []float64
	for _, msg := range messages {
		last = svc.HandleTurn(ctx, msg, "conv-1", "user-1")
		require.NotNil(t, last)
		require.NotNil(t, last.ExtractedData)
		confidences = append(confidences, last.ExtractedData.Confidence)
	}

	assert.True(t, last.ConversationComplete)
	require.NotEmpty(t, last.Buttons)
	assert.Equal(t, "Review & Submit", last.Buttons[0].Text)

	state := mustLoad(t, store, "conv-1")
	assert.Equal(t, StepComplete, state.CurrentStep)
	assert.True(t, state.Data.IsComplete)
	assert.Equal(t, "House Cleaning", state.Data.JobCategoryName)
	assert.Equal(t, "public", state.Data.JobPostingType)
	assert.Equal(t, "2024-03-15", state.Data.PreferredDate)
	assert.Equal(t, "09:00", state.Data.PreferredTime)
	assert.Equal(t, "123 Main St", state.Data.Location)
	assert.Equal(t, "House Cleaning Help in 123 Main St on Friday, March 15, 2024", state.Data.Title)

	for i := 1; i < len(confidences); i++ {
		assert.GreaterOrEqual(t, confidences[i], confidences[i-1])
	}
	assert.InDelta(t, 1.0, state.Data.Confidence, 0.0001)
}

func TestCompleteStepSelfLoops(t *testing.T) {
	store := NewMemoryStateStore()
	svc := newTestService(store, nil, nil)
	ctx := context.Background()

	for _, msg := range []string{"cleaning", "public", "tomorrow", "9am", "123 Main St", "please be thorough"} {
		svc.HandleTurn(ctx, msg, "conv-1", "")
	}

	resp := svc.HandleTurn(ctx, "what now?", "conv-1", "")
	assert.True(t, resp.ConversationComplete)
	assert.Contains(t, resp.Message, "is ready")
	require.Len(t, resp.Buttons, 2)
	assert.Equal(t, "Start New Request", resp.Buttons[1].Text)

	state := mustLoad(t, store, "conv-1")
	assert.Equal(t, StepComplete, state.CurrentStep)
}

func TestAlreadySetFieldShortCircuits(t *testing.T) {
	store := NewMemoryStateStore()
	svc := newTestService(store, nil, nil)
	ctx := context.Background()

	svc.HandleTurn(ctx, "cleaning", "conv-1", "")
	svc.HandleTurn(ctx, "public", "conv-1", "")
	svc.HandleTurn(ctx, "tomorrow", "conv-1", "")

	// The date is set, so a repeat flows into the time step instead of
	// re-extracting, and an unparseable time leaves state unchanged.
	resp := svc.HandleTurn(ctx, "tomorrow", "conv-1", "")
	assert.Contains(t, resp.Message, "What time")

	state := mustLoad(t, store, "conv-1")
	assert.Equal(t, "2024-03-15", state.Data.PreferredDate)
	assert.Empty(t, state.Data.PreferredTime)
	assert.Equal(t, StepPreferredTime, state.CurrentStep)
}

func TestRepromptLeavesStepUnchanged(t *testing.T) {
	store := NewMemoryStateStore()
	svc := newTestService(store, nil, nil)
	ctx := context.Background()

	resp := svc.HandleTurn(ctx, "asdf qwer", "conv-1", "")
	assert.Contains(t, resp.Message, "what type of service")

	state := mustLoad(t, store, "conv-1")
	assert.Equal(t, StepJobCategory, state.CurrentStep)
	assert.Zero(t, state.Data.Confidence)
}

func TestRequiredQuestionsFlow(t *testing.T) {
	store := NewMemoryStateStore()
	svc := newTestService(store, catalog.DefaultQuestions(), nil)
	ctx := context.Background()

	svc.HandleTurn(ctx, "cleaning", "conv-1", "")
	resp := svc.HandleTurn(ctx, "public", "conv-1", "")
	assert.Contains(t, resp.Message, "specific questions")

	resp = svc.HandleTurn(ctx, "ok", "conv-1", "")
	assert.Contains(t, resp.Message, "How many rooms need cleaning?")
	assert.Contains(t, resp.Message, "(e.g. 3 bedrooms and 2 bathrooms)")

	resp = svc.HandleTurn(ctx, "3 bedrooms and 2 bathrooms", "conv-1", "")
	assert.Contains(t, resp.Message, "cleaning supplies")

	resp = svc.HandleTurn(ctx, "please bring supplies", "conv-1", "")
	assert.Contains(t, resp.Message, "Thank you for those details!")

	state := mustLoad(t, store, "conv-1")
	assert.Equal(t, StepPreferredDate, state.CurrentStep)
	require.Len(t, state.Data.QuestionAnswers, 2)
	assert.Equal(t, "3 bedrooms and 2 bathrooms", state.Data.QuestionAnswers[0].Answer)
	assert.Equal(t, "please bring supplies", state.Data.QuestionAnswers[1].Answer)

	// The optional pets question is never asked.
	for _, a := range state.Data.QuestionAnswers {
		assert.NotEqual(t, "q-hc-pets", a.QuestionID)
	}

	resp = svc.HandleTurn(ctx, "tomorrow", "conv-1", "")
	assert.Contains(t, resp.Message, "Friday, March 15, 2024")
}

func TestPrivateFlowDisambiguation(t *testing.T) {
	helperList := []helpers.Helper{
		{ID: "h1", FullName: "John Smith", Rating: 4.9, CompletedJobs: 212, Specialties: []string{"House Cleaning", "Deep Cleaning", "Gardening"}},
		{ID: "h2", FullName: "Joanna Lee", Rating: 4.8, CompletedJobs: 143},
	}
	store := NewMemoryStateStore()
	svc := newTestService(store, nil, helperList)
	ctx := context.Background()

	svc.HandleTurn(ctx, "cleaning", "conv-1", "")
	resp := svc.HandleTurn(ctx, "private", "conv-1", "")
	assert.Contains(t, resp.Message, "name of the helper")

	resp = svc.HandleTurn(ctx, "jo", "conv-1", "")
	assert.Contains(t, resp.Message, "2 helpers")
	assert.Contains(t, resp.Message, "1. John Smith")
	assert.Contains(t, resp.Message, "2. Joanna Lee")

	// The candidate list survives the round trip through the store.
	state := mustLoad(t, store, "conv-1")
	require.Len(t, state.FoundHelpers, 2)

	resp = svc.HandleTurn(ctx, "John Smith", "conv-1", "")
	assert.Contains(t, resp.Message, "John Smith")
	assert.Contains(t, resp.Message, "will be invited")

	state = mustLoad(t, store, "conv-1")
	require.NotNil(t, state.Data.SelectedHelper)
	assert.Equal(t, "h1", state.Data.SelectedHelper.ID)
	assert.Empty(t, state.FoundHelpers)
	assert.Equal(t, StepJobQuestions, state.CurrentStep)
}

func TestPrivateFlowPartialNameFromList(t *testing.T) {
	helperList := []helpers.Helper{
		{ID: "h1", FullName: "John Smith", Rating: 4.9, CompletedJobs: 212},
		{ID: "h2", FullName: "Joanna Lee", Rating: 4.8, CompletedJobs: 143},
	}
	store := NewMemoryStateStore()
	svc := newTestService(store, nil, helperList)
	ctx := context.Background()

	svc.HandleTurn(ctx, "cleaning", "conv-1", "")
	svc.HandleTurn(ctx, "private", "conv-1", "")
	svc.HandleTurn(ctx, "jo", "conv-1", "")

	svc.HandleTurn(ctx, "john", "conv-1", "")

	state := mustLoad(t, store, "conv-1")
	require.NotNil(t, state.Data.SelectedHelper)
	assert.Equal(t, "h1", state.Data.SelectedHelper.ID)
}

func TestPrivateFlowSingleMatchAutoSelects(t *testing.T) {
	helperList := []helpers.Helper{
		{ID: "h1", FullName: "Maria Garcia", Rating: 4.9, CompletedJobs: 301},
	}
	store := NewMemoryStateStore()
	svc := newTestService(store, nil, helperList)
	ctx := context.Background()

	svc.HandleTurn(ctx, "cleaning", "conv-1", "")
	svc.HandleTurn(ctx, "private", "conv-1", "")
	resp := svc.HandleTurn(ctx, "maria", "conv-1", "")
	assert.Contains(t, resp.Message, "Maria Garcia")

	state := mustLoad(t, store, "conv-1")
	require.NotNil(t, state.Data.SelectedHelper)
	assert.Equal(t, "h1", state.Data.SelectedHelper.ID)
}

func TestPrivateFlowNoMatchReprompts(t *testing.T) {
	store := NewMemoryStateStore()
	svc := newTestService(store, nil, nil)
	ctx := context.Background()

	svc.HandleTurn(ctx, "cleaning", "conv-1", "")
	svc.HandleTurn(ctx, "private", "conv-1", "")
	resp := svc.HandleTurn(ctx, "zzz", "conv-1", "")
	assert.Contains(t, resp.Message, "couldn't find any helpers")

	state := mustLoad(t, store, "conv-1")
	assert.Equal(t, StepHelperSelection, state.CurrentStep)
}

func TestHelperSelectionPublicEscape(t *testing.T) {
	helperList := []helpers.Helper{
		{ID: "h1", FullName: "John Smith", Rating: 4.9, CompletedJobs: 212},
		{ID: "h2", FullName: "Joanna Lee", Rating: 4.8, CompletedJobs: 143},
	}
	store := NewMemoryStateStore()
	svc := newTestService(store, nil, helperList)
	ctx := context.Background()

	svc.HandleTurn(ctx, "cleaning", "conv-1", "")
	svc.HandleTurn(ctx, "private", "conv-1", "")
	svc.HandleTurn(ctx, "jo", "conv-1", "")

	resp := svc.HandleTurn(ctx, "public", "conv-1", "")
	assert.Contains(t, resp.Message, "public job")

	state := mustLoad(t, store, "conv-1")
	assert.Equal(t, "public", state.Data.JobPostingType)
	assert.Nil(t, state.Data.SelectedHelper)
	assert.Empty(t, state.FoundHelpers)
	assert.Equal(t, StepJobQuestions, state.CurrentStep)

	// The next message flows straight into date collection.
	resp = svc.HandleTurn(ctx, "tomorrow", "conv-1", "")
	assert.Contains(t, resp.Message, "Friday, March 15, 2024")
}

func TestUnknownStepResetsToJobCategory(t *testing.T) {
	store := NewMemoryStateStore()
	svc := newTestService(store, nil, nil)
	ctx := context.Background()

	err := store.Upsert(ctx, &State{
		ConversationID: "conv-1",
		UserID:         "user-1",
		CurrentStep:    Step("bogus"),
		Categories:     catalog.DefaultCategories(),
	})
	require.NoError(t, err)

	resp := svc.HandleTurn(ctx, "cleaning", "conv-1", "user-1")
	assert.Contains(t, resp.Message, "House Cleaning")

	state := mustLoad(t, store, "conv-1")
	assert.Equal(t, StepJobPostingType, state.CurrentStep)
}

func TestAnonymousUserDefault(t *testing.T) {
	store := NewMemoryStateStore()
	svc := newTestService(store, nil, nil)

	svc.HandleTurn(context.Background(), "cleaning", "conv-1", "")

	state := mustLoad(t, store, "conv-1")
	assert.Equal(t, "anonymous", state.UserID)
}

func TestSaveFailureStillDeliversReply(t *testing.T) {
	store := &flakyStore{upsertErr: errors.New("redis down")}
	svc := newTestService(store, nil, nil)

	resp := svc.HandleTurn(context.Background(), "cleaning", "conv-1", "")
	require.NotNil(t, resp)
	assert.Contains(t, resp.Message, "House Cleaning")
}

func TestLoadFailureStartsFresh(t *testing.T) {
	store := &flakyStore{getErr: errors.New("redis down")}
	svc := newTestService(store, nil, nil)

	resp := svc.HandleTurn(context.Background(), "cleaning", "conv-1", "")
	require.NotNil(t, resp)
	assert.Contains(t, resp.Message, "House Cleaning")
	require.NotNil(t, store.saved)
	assert.Equal(t, StepJobPostingType, store.saved.CurrentStep)
}
