package helpers

// Helper is a worker profile surfaced during private-request helper selection.
type Helper struct {
	ID              string   `json:"id"`
	FullName        string   `json:"full_name"`
	ProfileImageURL string   `json:"profile_image_url"`
	Specialties     []string `json:"specialty_names"`
	Rating          float64  `json:"rating"`
	CompletedJobs   int      `json:"completed_jobs"`
}
