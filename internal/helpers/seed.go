package helpers

// DefaultHelpers returns the built-in helper profiles used for database-less
// development runs. The migration seed mirrors this list.
func DefaultHelpers() []Helper {
	return []Helper{
		{ID: "h-john-smith", FullName: "John Smith", Specialties: []string{"House Cleaning", "Deep Cleaning"}, Rating: 4.9, CompletedJobs: 212},
		{ID: "h-johanna-lee", FullName: "Johanna Lee", Specialties: []string{"Gardening"}, Rating: 4.8, CompletedJobs: 143},
		{ID: "h-jon-park", FullName: "Jon Park", Specialties: []string{"Tech Support"}, Rating: 4.7, CompletedJobs: 98},
		{ID: "h-maria-garcia", FullName: "Maria Garcia", Specialties: []string{"Cooking", "Elderly Care"}, Rating: 4.9, CompletedJobs: 301},
		{ID: "h-peter-okafor", FullName: "Peter Okafor", Specialties: []string{"Moving Help"}, Rating: 4.6, CompletedJobs: 77},
		{ID: "h-sara-novak", FullName: "Sara Novak", Specialties: []string{"Child Care", "Tutoring"}, Rating: 5.0, CompletedJobs: 164},
	}
}
