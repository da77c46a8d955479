package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/helprly/job-assistant/internal/helpers"
)

// Each step transition returns the reply for this turn plus the step the
// conversation should be on afterwards. A nil reply means the step's field
// was already satisfied and the dispatcher should run the next step with the
// same message.

func (s *Service) stepJobCategory(ctx context.Context, state *State, message string) (*Response, Step) {
	data := &state.Data
	if data.JobCategoryID != "" {
		return nil, StepJobPostingType
	}

	matched := MatchCategory(message, state.Categories)
	if matched == nil {
		names := make([]string, 0, 6)
		for _, c := range state.Categories {
			names = append(names, c.Name)
			if len(names) == 6 {
				break
			}
		}
		return &Response{
			Message: fmt.Sprintf("I'd be happy to help you! Could you please tell me what type of service you need? For example, I can help with: %s, and many others. What kind of help are you looking for?", strings.Join(names, ", ")),
		}, StepJobCategory
	}

	data.JobCategoryID = matched.ID
	data.JobCategoryName = matched.Name
	data.DefaultHourlyRate = matched.DefaultHourlyRate
	data.Confidence = 0.2
	data.CurrentField = string(StepJobCategory)
	data.NextField = string(StepJobPostingType)

	questions, err := s.catalog.ListCategoryQuestions(ctx, matched.ID)
	if err != nil {
		s.logger.Warn("failed to fetch category questions",
			"category_id", matched.ID, "error", err)
		questions = nil
	}
	state.Questions = questions

	return &Response{
		Message: fmt.Sprintf("Great! I understand you need help with %s. \n\nNow, would you like to post this as a **public job** (visible to all helpers) or a **private job** (invite a specific helper)?", matched.Name),
	}, StepJobPostingType
}

func (s *Service) stepJobPostingType(state *State, message string) (*Response, Step) {
	data := &state.Data
	if data.JobPostingType != "" {
		if data.JobPostingType == "private" {
			return nil, StepHelperSelection
		}
		return nil, StepJobQuestions
	}

	text := strings.ToLower(message)
	switch {
	case strings.Contains(text, "private") || strings.Contains(text, "specific") || strings.Contains(text, "invite"):
		data.JobPostingType = "private"
		data.bumpConfidence(0.1)
		data.CurrentField = string(StepJobPostingType)
		data.NextField = string(StepHelperSelection)
		return &Response{
			Message: fmt.Sprintf("Perfect! You want to invite a specific helper. Could you tell me the name of the helper you'd like to invite for this %s job?", data.JobCategoryName),
		}, StepHelperSelection

	case strings.Contains(text, "public") || strings.Contains(text, "all") || strings.Contains(text, "anyone"):
		data.JobPostingType = "public"
		data.bumpConfidence(0.1)
		data.CurrentField = string(StepJobPostingType)
		data.NextField = string(StepJobQuestions)

		msg := fmt.Sprintf("Perfect! This will be a public job visible to all helpers. When would you like this %s service done?", data.JobCategoryName)
		if len(state.Questions) > 0 {
			msg = fmt.Sprintf("Great! This will be a public job visible to all helpers. Let me ask you some specific questions about your %s needs.", data.JobCategoryName)
		}
		return &Response{Message: msg}, StepJobQuestions
	}

	return &Response{
		Message: "Would you like to post this as:\n\n**Public job** - Visible to all helpers who can apply\n**Private job** - Invite a specific helper you prefer\n\nPlease choose \"public\" or \"private\".",
	}, StepJobPostingType
}

func (s *Service) stepHelperSelection(ctx context.Context, state *State, message string) (*Response, Step) {
	data := &state.Data
	if data.SelectedHelper != nil {
		return nil, StepJobQuestions
	}

	trimmed := strings.TrimSpace(message)

	// The selection prompts advertise "public" as a way out of a private
	// posting, so honor it before treating the message as a helper name.
	if strings.Contains(strings.ToLower(trimmed), "public") {
		data.JobPostingType = "public"
		data.CurrentField = string(StepJobPostingType)
		data.NextField = string(StepJobQuestions)
		state.FoundHelpers = nil

		msg := fmt.Sprintf("No problem! This will be a public job visible to all helpers. When would you like this %s service done?", data.JobCategoryName)
		if len(state.Questions) > 0 {
			msg = fmt.Sprintf("No problem! This will be a public job visible to all helpers. Let me ask you some specific questions about your %s needs.", data.JobCategoryName)
		}
		return &Response{Message: msg}, StepJobQuestions
	}

	if len(state.FoundHelpers) > 0 {
		if selected := MatchHelperFromList(trimmed, state.FoundHelpers); selected != nil {
			return s.selectHelper(state, selected, "Excellent!", "Perfect!"), StepJobQuestions
		}
	}

	candidates, err := s.helperSearch.SearchByName(ctx, trimmed)
	if err != nil {
		s.logger.Warn("helper search failed", "name", trimmed, "error", err)
		candidates = nil
	}

	switch {
	case len(candidates) == 1:
		return s.selectHelper(state, &candidates[0], "Perfect!", "Excellent!"), StepJobQuestions

	case len(candidates) > 1:
		state.FoundHelpers = candidates
		return &Response{Message: formatHelperList(trimmed, candidates)}, StepHelperSelection

	default:
		return &Response{
			Message: fmt.Sprintf("I couldn't find any helpers matching %q. Could you try:\n\n• **Different spelling** or **partial name** (e.g., \"John\", \"Sarah\")\n• **Full first name** of the helper\n• Or say **\"public\"** to make this a public job instead", trimmed),
		}, StepHelperSelection
	}
}

// selectHelper records the chosen helper and prompts for whatever comes next.
// The lead word varies between the disambiguation and auto-select paths.
func (s *Service) selectHelper(state *State, h *helpers.Helper, withQuestionsLead, noQuestionsLead string) *Response {
	data := &state.Data
	helper := *h
	data.SelectedHelper = &helper
	data.bumpConfidence(0.15)
	data.CurrentField = string(StepHelperSelection)
	data.NextField = string(StepJobQuestions)
	state.FoundHelpers = nil

	if len(state.Questions) > 0 {
		return &Response{
			Message: fmt.Sprintf("%s I found **%s** and they'll be invited for this %s job. Let me ask you some specific questions about your needs.", withQuestionsLead, helper.FullName, data.JobCategoryName),
		}
	}
	return &Response{
		Message: fmt.Sprintf("%s **%s** will be invited for this %s job. When would you like this service done?", noQuestionsLead, helper.FullName, data.JobCategoryName),
	}
}

func formatHelperList(query string, candidates []helpers.Helper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I found **%d helpers** matching %q. Please choose one:\n\n", len(candidates), query)

	for i, h := range candidates {
		rating := "⭐ New helper"
		if h.Rating > 0 {
			rating = fmt.Sprintf("⭐ %.1f/5", h.Rating)
		}
		specialties := "Various services"
		if len(h.Specialties) > 0 {
			limit := min(len(h.Specialties), 2)
			specialties = strings.Join(h.Specialties[:limit], ", ")
		}
		fmt.Fprintf(&b, "**%d. %s**\n   %s • %d jobs completed\n   Specializes in: %s\n\n", i+1, h.FullName, rating, h.CompletedJobs, specialties)
	}

	b.WriteString("Please type the **full name** of the helper you'd like to invite, or say \"public\" to make this a public job instead.")
	return b.String()
}

func (s *Service) stepJobQuestions(state *State, message string) (*Response, Step) {
	data := &state.Data

	if len(state.Questions) == 0 {
		return nil, StepPreferredDate
	}

	// A question was asked last turn; record this message as its answer.
	if data.CurrentQuestionID != "" {
		for _, q := range state.Questions {
			if q.ID == data.CurrentQuestionID {
				data.QuestionAnswers = append(data.QuestionAnswers, QuestionAnswer{
					QuestionID: q.ID,
					Question:   q.Text,
					Answer:     message,
				})
				data.bumpConfidence(0.1)
				state.AskedQuestions = append(state.AskedQuestions, q.ID)
				break
			}
		}
		data.CurrentQuestionID = ""
	}

	answered := make(map[string]bool, len(data.QuestionAnswers))
	for _, a := range data.QuestionAnswers {
		answered[a.QuestionID] = true
	}

	for _, q := range state.Questions {
		if q.Required && !answered[q.ID] {
			data.CurrentQuestionID = q.ID
			data.CurrentField = string(StepJobQuestions)

			msg := q.Text
			if q.Placeholder != "" {
				msg += " (" + q.Placeholder + ")"
			}
			return &Response{Message: msg}, StepJobQuestions
		}
	}

	data.CurrentField = string(StepPreferredDate)
	data.NextField = string(StepPreferredTime)
	return &Response{
		Message: "Thank you for those details! When would you like this service? You can say something like 'tomorrow', 'next Monday', or give me a specific date.",
	}, StepPreferredDate
}

func (s *Service) stepPreferredDate(state *State, message string) (*Response, Step) {
	data := &state.Data
	if data.PreferredDate != "" {
		return nil, StepPreferredTime
	}

	date, ok := ExtractDate(message, s.now())
	if !ok {
		return &Response{
			Message: "I didn't quite catch the date. Could you tell me when you'd like this done? For example: 'tomorrow', 'this Friday', 'January 15th', etc.",
		}, StepPreferredDate
	}

	data.PreferredDate = date
	data.bumpConfidence(0.15)
	data.CurrentField = string(StepPreferredDate)
	data.NextField = string(StepPreferredTime)

	return &Response{
		Message: fmt.Sprintf("Perfect! I have %s scheduled. What time would work best for you? (e.g., '9 AM', 'afternoon', '2:30 PM')", FormatHumanDate(date)),
	}, StepPreferredTime
}

func (s *Service) stepPreferredTime(state *State, message string) (*Response, Step) {
	data := &state.Data
	if data.PreferredTime != "" {
		return nil, StepLocation
	}

	extracted, ok := ExtractTime(message)
	if !ok {
		return &Response{
			Message: "What time would work best for you? You can say something like '9 AM', '2:30 PM', 'morning', 'afternoon', etc.",
		}, StepPreferredTime
	}

	data.PreferredTime = extracted
	data.bumpConfidence(0.15)
	data.CurrentField = string(StepPreferredTime)
	data.NextField = string(StepLocation)

	return &Response{
		Message: fmt.Sprintf("Great! I have %s noted. Where should this service be provided? Please provide the address or location.", extracted),
	}, StepLocation
}

func (s *Service) stepLocation(state *State, message string) (*Response, Step) {
	data := &state.Data
	if data.Location != "" {
		return nil, StepDescription
	}

	trimmed := strings.TrimSpace(message)
	if len(trimmed) <= 3 {
		return &Response{
			Message: "Could you please provide the address or location where this service should be provided?",
		}, StepLocation
	}

	data.Location = trimmed
	data.bumpConfidence(0.15)
	data.CurrentField = string(StepLocation)
	data.NextField = string(StepDescription)

	return &Response{
		Message: fmt.Sprintf("Perfect! I have the location as: %s. Now, could you provide any additional details or special requirements for this %s job?", data.Location, data.JobCategoryName),
	}, StepDescription
}

func (s *Service) stepDescription(state *State, message string) (*Response, Step) {
	data := &state.Data
	if data.Description != "" {
		return nil, StepTitle
	}

	trimmed := strings.TrimSpace(message)
	if len(trimmed) <= 5 {
		return &Response{
			Message: "Could you provide some additional details about what you need help with? This will help potential helpers understand your requirements better.",
		}, StepDescription
	}

	data.Description = trimmed
	data.bumpConfidence(0.15)
	data.CurrentField = string(StepDescription)
	data.NextField = string(StepTitle)

	// The description was the last free-text field, so finish the form in
	// the same turn instead of burning another turn on the title.
	data.Title = GenerateTitle(data)
	data.bumpConfidence(0.2)
	data.IsComplete = true
	data.CurrentField = string(StepComplete)

	return &Response{
		Message:              fmt.Sprintf("Excellent! I have all the information I need. I've created a job request titled %q. Click below to review and submit your job request.", data.Title),
		ConversationComplete: true,
		Buttons: []Button{
			{Text: "Review & Submit", Action: "navigate_to_form", Data: map[string]any{"action": "submit"}},
		},
	}, StepComplete
}

// stepTitle is a fallback for states where the description path did not
// already finish the form.
func (s *Service) stepTitle(state *State) (*Response, Step) {
	data := &state.Data
	if data.Title == "" {
		data.Title = GenerateTitle(data)
		data.bumpConfidence(0.2)
	}
	data.IsComplete = true
	data.CurrentField = string(StepComplete)

	return &Response{
		Message:              fmt.Sprintf("Perfect! I've created your job request: %q. Everything looks good! Would you like to review and submit this job request?", data.Title),
		ConversationComplete: true,
		Buttons: []Button{
			{Text: "Review & Submit", Action: "navigate_to_form", Data: map[string]any{"action": "submit"}},
			{Text: "Make Changes", Action: "navigate_to_form", Data: map[string]any{"action": "edit"}},
		},
	}, StepComplete
}

func (s *Service) stepComplete(state *State) (*Response, Step) {
	return &Response{
		Message:              fmt.Sprintf("Your job request %q is ready! Use the buttons below to review and submit it.", state.Data.Title),
		ConversationComplete: true,
		Buttons: []Button{
			{Text: "Review & Submit", Action: "navigate_to_form", Data: map[string]any{"action": "submit"}},
			{Text: "Start New Request", Action: "restart_conversation", Data: map[string]any{}},
		},
	}, StepComplete
}
