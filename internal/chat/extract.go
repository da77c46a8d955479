package chat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/helprly/job-assistant/internal/catalog"
	"github.com/helprly/job-assistant/internal/helpers"
)

const isoDateLayout = "2006-01-02"

var (
	numericDateRe = regexp.MustCompile(`(\d{1,2})[/\-](\d{1,2})[/\-](\d{2,4})`)
	clockTimeRe   = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
)

// weekdayNames maps user phrasing to weekdays, checked in this order.
// A three-letter abbreviation hit counts the same as the full name.
var weekdayNames = []struct {
	abbr string
	day  time.Weekday
}{
	{"mon", time.Monday},
	{"tue", time.Tuesday},
	{"wed", time.Wednesday},
	{"thu", time.Thursday},
	{"fri", time.Friday},
	{"sat", time.Saturday},
	{"sun", time.Sunday},
}

// categoryKeywords is the fallback trigger-word table used when no category
// name appears verbatim in the message. Scanned in this order, first hit wins.
var categoryKeywords = []struct {
	category string
	words    []string
}{
	{"House Cleaning", []string{"clean", "cleaning", "house", "home", "tidy", "sweep", "mop", "dust"}},
	{"Deep Cleaning", []string{"deep clean", "thorough", "deep", "spring clean"}},
	{"Gardening", []string{"garden", "gardening", "lawn", "plants", "yard", "landscaping", "grass", "weeds"}},
	{"Cooking", []string{"cook", "cooking", "meal", "chef", "food", "kitchen", "prepare"}},
	{"Elderly Care", []string{"elderly", "senior", "care", "companion", "old"}},
	{"Child Care", []string{"child", "kids", "baby", "babysit", "nanny", "children"}},
	{"Pet Care", []string{"pet", "dog", "cat", "animal", "walk", "sitting"}},
	{"Tutoring", []string{"tutor", "teach", "study", "homework", "lesson", "education"}},
	{"Tech Support", []string{"computer", "tech", "laptop", "phone", "repair", "fix"}},
	{"Moving Help", []string{"move", "moving", "relocate", "pack", "boxes"}},
}

// ExtractDate parses a free-text date relative to now. It recognizes "today",
// "tomorrow", weekday names (resolved to the next occurrence strictly after
// today) and numeric M/D/Y dates. Returns an ISO YYYY-MM-DD string.
func ExtractDate(message string, now time.Time) (string, bool) {
	text := strings.ToLower(message)

	if strings.Contains(text, "today") {
		return now.Format(isoDateLayout), true
	}
	if strings.Contains(text, "tomorrow") {
		return now.AddDate(0, 0, 1).Format(isoDateLayout), true
	}

	for _, w := range weekdayNames {
		if strings.Contains(text, w.abbr) {
			return nextWeekday(now, w.day).Format(isoDateLayout), true
		}
	}

	if m := numericDateRe.FindStringSubmatch(text); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		// time.Date normalizes overflow, so 13/45 would silently roll over.
		if d.Year() == year && d.Month() == time.Month(month) && d.Day() == day {
			return d.Format(isoDateLayout), true
		}
	}

	return "", false
}

// nextWeekday returns the next occurrence of target strictly after now.
// If now already falls on target it returns the date a week out.
func nextWeekday(now time.Time, target time.Weekday) time.Time {
	days := (int(target) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return now.AddDate(0, 0, days)
}

// ExtractTime parses a free-text time of day to zero-padded HH:MM. Named
// periods win over numeric patterns.
func ExtractTime(message string) (string, bool) {
	text := strings.ToLower(message)

	switch {
	case strings.Contains(text, "morning"):
		return "09:00", true
	case strings.Contains(text, "afternoon"):
		return "14:00", true
	case strings.Contains(text, "evening"):
		return "18:00", true
	case strings.Contains(text, "night"):
		return "20:00", true
	}

	m := clockTimeRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	ampm := strings.ToLower(m[3])

	if ampm != "" && (hour < 1 || hour > 12) {
		return "", false
	}
	if ampm == "pm" && hour != 12 {
		hour += 12
	}
	if ampm == "am" && hour == 12 {
		hour = 0
	}
	if hour > 23 || minute > 59 {
		return "", false
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

// MatchCategory finds the category a message refers to. Direct name substring
// matches win; otherwise the keyword table is scanned and the first matching
// trigger word picks its category by name from the active set.
func MatchCategory(message string, categories []catalog.Category) *catalog.Category {
	text := strings.ToLower(message)

	for i := range categories {
		if strings.Contains(text, strings.ToLower(categories[i].Name)) {
			return &categories[i]
		}
	}

	for _, entry := range categoryKeywords {
		for _, word := range entry.words {
			if strings.Contains(text, word) {
				for i := range categories {
					if categories[i].Name == entry.category {
						return &categories[i]
					}
				}
				return nil
			}
		}
	}

	return nil
}

// MatchHelperFromList resolves a typed name against a previously shown
// candidate list. Exact case-insensitive match first, then bidirectional
// substring containment.
func MatchHelperFromList(name string, candidates []helpers.Helper) *helpers.Helper {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}

	for i := range candidates {
		if strings.ToLower(candidates[i].FullName) == needle {
			return &candidates[i]
		}
	}

	for i := range candidates {
		full := strings.ToLower(candidates[i].FullName)
		if strings.Contains(full, needle) || strings.Contains(needle, full) {
			return &candidates[i]
		}
	}

	return nil
}

// GenerateTitle derives a job title from the collected fields.
func GenerateTitle(d *FormData) string {
	category := d.JobCategoryName
	if category == "" {
		category = "Service"
	}

	title := category + " Help"
	if d.Location != "" {
		title += " in " + strings.TrimSpace(strings.SplitN(d.Location, ",", 2)[0])
	}
	if d.PreferredDate != "" {
		title += " on " + FormatHumanDate(d.PreferredDate)
	}
	return title
}

// FormatHumanDate renders an ISO date like "Monday, January 2, 2006".
// Unparseable input is returned as-is.
func FormatHumanDate(iso string) string {
	d, err := time.Parse(isoDateLayout, iso)
	if err != nil {
		return iso
	}
	return d.Format("Monday, January 2, 2006")
}
