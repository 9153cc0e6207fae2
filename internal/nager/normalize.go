package nager

import (
	"fmt"
	"strings"

	"github.com/spec-kit/planner-service/internal/domain"
)

const maxSlugLen = 40

// Normalize converts a feed entry into an importable planner task. The
// owner is assigned by the caller. The same entry always normalizes to the
// same source id, which is what makes repeated imports idempotent.
func Normalize(item Holiday, countryCode string) domain.Task {
	title := item.LocalName
	if title == "" {
		title = item.Name
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Holiday"
	}

	date := item.Date
	if len(date) > 10 {
		date = date[:10]
	}

	country := strings.ToUpper(countryCode)
	return domain.Task{
		Title:  title,
		Date:   date,
		Type:   domain.TaskTypeHoliday,
		Status: domain.TaskStatusTodo,
		Source: domain.TaskSourceNager,
		Meta:   domain.TaskMeta{SourceID: SourceID(country, date, title)},
	}
}

// SourceID derives the dedup key for an imported holiday.
func SourceID(country, date, title string) string {
	return fmt.Sprintf("nager_%s_%s_%s", country, date, Slugify(title))
}

// Slugify lowers the title and collapses every run of non-alphanumerics
// into a single underscore, capped at 40 characters. Titles with no usable
// characters slug to "item".
func Slugify(s string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(s) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			b.WriteRune(r)
			pendingSep = false
		} else if !pendingSep {
			b.WriteByte('_')
			pendingSep = true
		}
	}

	slug := strings.Trim(b.String(), "_")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "_")
	}
	if slug == "" {
		slug = "item"
	}
	return slug
}
