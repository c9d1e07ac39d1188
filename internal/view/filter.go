// Package view holds the pure table-state logic behind the complaints list:
// filter composition, sorting, pagination and the reducers that keep the two
// charts and the table on one shared filter state.
package view

import (
	"sort"
	"strings"
	"time"

	"github.com/minhaalawais/fos-hrdd-software/internal/model"
	"github.com/minhaalawais/fos-hrdd-software/internal/utils"
)

// Filter is the single shared filter state consumed by the table, the doughnut
// and the bar chart.
type Filter struct {
	Status   string `json:"status" form:"status"`
	Category string `json:"category" form:"category"`
	Search   string `json:"search" form:"search"`
	Page     int    `json:"page" form:"page"`
	PageSize int    `json:"page_size" form:"page_size"`
}

// Apply filters and sorts the complaint list. The three predicates compose
// with AND; the result is ordered by entry date, newest first. The input slice
// is never mutated.
func Apply(complaints []model.Complaint, f Filter) []model.Complaint {
	filtered := make([]model.Complaint, 0, len(complaints))
	term := utils.NormalizeTerm(f.Search)
	for _, c := range complaints {
		if !matchesStatus(c, f.Status) {
			continue
		}
		if f.Category != "" && c.Categories != f.Category {
			continue
		}
		if term != "" && !matchesSearch(c, term) {
			continue
		}
		filtered = append(filtered, c)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return parseEntryDate(filtered[i].DateEntry).After(parseEntryDate(filtered[j].DateEntry))
	})

	return filtered
}

// The literal filter value "Bounced" also matches Bounced1: the two
// escalation-bounce statuses are one filterable bucket everywhere in the UI.
func matchesStatus(c model.Complaint, status string) bool {
	if status == "" {
		return true
	}
	if status == string(model.StatusBounced) {
		return c.Status == model.StatusBounced || c.Status == model.StatusBounced1
	}
	return string(c.Status) == status
}

func matchesSearch(c model.Complaint, term string) bool {
	for _, field := range []string{
		c.TicketNumber,
		c.EmployeeName,
		c.Categories,
		c.AdditionalComments,
		c.MobileNumber,
	} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

var entryDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseEntryDate is lenient about the upstream's date formats; an unparseable
// date sorts last rather than failing the whole view.
func parseEntryDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range entryDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
