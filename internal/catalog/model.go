package catalog

// Category is a job category offered on the platform.
type Category struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	DefaultHourlyRate float64 `json:"default_hourly_rate"`
}

// Question is a category-specific intake question.
type Question struct {
	ID          string `json:"id"`
	Text        string `json:"question_text"`
	Type        string `json:"question_type"`
	Required    bool   `json:"is_required"`
	Placeholder string `json:"placeholder_text"`
	Order       int    `json:"question_order"`
}
