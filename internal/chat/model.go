package chat

import (
	"time"

	"github.com/helprly/job-assistant/internal/catalog"
	"github.com/helprly/job-assistant/internal/helpers"
)

// Step names the field the conversation is currently collecting.
type Step string

const (
	StepJobCategory     Step = "jobCategory"
	StepJobPostingType  Step = "jobPostingType"
	StepHelperSelection Step = "helperSelection"
	StepJobQuestions    Step = "jobQuestions"
	StepPreferredDate   Step = "preferredDate"
	StepPreferredTime   Step = "preferredTime"
	StepLocation        Step = "location"
	StepDescription     Step = "description"
	StepTitle           Step = "title"
	StepComplete        Step = "complete"
)

// fieldOrder is the fixed collection sequence. helperSelection only applies
// to private postings; public postings pass straight through it.
var fieldOrder = []Step{
	StepJobCategory,
	StepJobPostingType,
	StepHelperSelection,
	StepJobQuestions,
	StepPreferredDate,
	StepPreferredTime,
	StepLocation,
	StepDescription,
	StepTitle,
}

// QuestionAnswer records one answered category question.
type QuestionAnswer struct {
	QuestionID string `json:"questionId"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
}

// FormData is the job-request form assembled across turns. Field names match
// the wire format the client form expects.
type FormData struct {
	JobCategoryID     string          `json:"jobCategoryId,omitempty"`
	JobCategoryName   string          `json:"jobCategoryName,omitempty"`
	JobPostingType    string          `json:"jobPostingType,omitempty"`
	SelectedHelper    *helpers.Helper `json:"selectedHelper,omitempty"`
	DefaultHourlyRate float64         `json:"defaultHourlyRate,omitempty"`
	PreferredDate     string          `json:"preferredDate,omitempty"`
	PreferredTime     string          `json:"preferredTime,omitempty"`
	Location          string          `json:"location,omitempty"`
	Description       string          `json:"description,omitempty"`
	Title             string          `json:"title,omitempty"`

	QuestionAnswers []QuestionAnswer `json:"jobQuestionAnswers"`

	CurrentField      string  `json:"currentField,omitempty"`
	NextField         string  `json:"nextField,omitempty"`
	CurrentQuestionID string  `json:"currentQuestionId,omitempty"`
	Confidence        float64 `json:"confidence"`
	IsComplete        bool    `json:"isComplete"`
}

// bumpConfidence adds delta to the progress score, capped at 1.0.
func (d *FormData) bumpConfidence(delta float64) {
	d.Confidence += delta
	if d.Confidence > 1.0 {
		d.Confidence = 1.0
	}
}

// Clone returns a deep copy safe to hand to the response encoder.
func (d *FormData) Clone() *FormData {
	out := *d
	if d.SelectedHelper != nil {
		helper := *d.SelectedHelper
		helper.Specialties = append([]string(nil), d.SelectedHelper.Specialties...)
		out.SelectedHelper = &helper
	}
	out.QuestionAnswers = append([]QuestionAnswer(nil), d.QuestionAnswers...)
	return &out
}

// State is one conversation's accumulated progress. It is loaded before each
// turn and saved after, so a conversation survives across requests.
type State struct {
	ConversationID string             `json:"conversationId"`
	UserID         string             `json:"userId"`
	CurrentStep    Step               `json:"currentStep"`
	Data           FormData           `json:"collectedData"`
	Categories     []catalog.Category `json:"jobCategories"`
	Questions      []catalog.Question `json:"jobQuestions"`
	FoundHelpers   []helpers.Helper   `json:"foundHelpers,omitempty"`
	AskedQuestions []string           `json:"askedQuestions"`
	LastMessage    string             `json:"lastMessage"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// Button is a UI affordance attached to a bot message.
type Button struct {
	Text   string         `json:"text"`
	Action string         `json:"action"`
	Data   map[string]any `json:"data,omitempty"`
}

// Response is the bot's reply for one turn.
type Response struct {
	Message              string    `json:"message"`
	Buttons              []Button  `json:"buttons,omitempty"`
	ExtractedData        *FormData `json:"extractedData,omitempty"`
	ConversationComplete bool      `json:"conversationComplete,omitempty"`
	Error                string    `json:"error,omitempty"`
}
