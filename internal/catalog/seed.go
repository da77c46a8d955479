package catalog

// DefaultCategories returns the built-in category set used for database-less
// development runs. The migration seed mirrors this list.
func DefaultCategories() []Category {
	return []Category{
		{ID: "cat-child-care", Name: "Child Care", Description: "Babysitting and nanny services", DefaultHourlyRate: 22},
		{ID: "cat-cooking", Name: "Cooking", Description: "Meal preparation and private chef services", DefaultHourlyRate: 30},
		{ID: "cat-deep-cleaning", Name: "Deep Cleaning", Description: "Thorough top-to-bottom cleaning", DefaultHourlyRate: 35},
		{ID: "cat-elderly-care", Name: "Elderly Care", Description: "Companionship and senior assistance", DefaultHourlyRate: 28},
		{ID: "cat-gardening", Name: "Gardening", Description: "Lawn, yard and garden upkeep", DefaultHourlyRate: 27},
		{ID: "cat-house-cleaning", Name: "House Cleaning", Description: "Regular home cleaning", DefaultHourlyRate: 25},
		{ID: "cat-moving-help", Name: "Moving Help", Description: "Packing, lifting and relocation help", DefaultHourlyRate: 32},
		{ID: "cat-pet-care", Name: "Pet Care", Description: "Pet sitting and dog walking", DefaultHourlyRate: 20},
		{ID: "cat-tech-support", Name: "Tech Support", Description: "Computer and device troubleshooting", DefaultHourlyRate: 40},
		{ID: "cat-tutoring", Name: "Tutoring", Description: "Private lessons and homework help", DefaultHourlyRate: 35},
	}
}

// DefaultQuestions returns built-in category questions keyed by category id.
func DefaultQuestions() map[string][]Question {
	return map[string][]Question{
		"cat-house-cleaning": {
			{ID: "q-hc-rooms", Text: "How many rooms need cleaning?", Type: "text", Required: true, Placeholder: "e.g. 3 bedrooms and 2 bathrooms", Order: 1},
			{ID: "q-hc-supplies", Text: "Do you have cleaning supplies, or should the helper bring their own?", Type: "text", Required: true, Placeholder: "e.g. please bring supplies", Order: 2},
			{ID: "q-hc-pets", Text: "Are there any pets in the home?", Type: "text", Required: false, Placeholder: "e.g. one friendly dog", Order: 3},
		},
		"cat-pet-care": {
			{ID: "q-pc-type", Text: "What kind of pet needs care?", Type: "text", Required: true, Placeholder: "e.g. a golden retriever", Order: 1},
			{ID: "q-pc-walks", Text: "How many walks or visits per day?", Type: "text", Required: true, Placeholder: "e.g. two 30-minute walks", Order: 2},
		},
		"cat-moving-help": {
			{ID: "q-mh-size", Text: "Roughly how much needs to be moved?", Type: "text", Required: true, Placeholder: "e.g. a one-bedroom apartment", Order: 1},
			{ID: "q-mh-stairs", Text: "Are there stairs or elevator access at either location?", Type: "text", Required: false, Placeholder: "e.g. third floor walk-up", Order: 2},
		},
	}
}
