package http

import (
	"net/url"
	"strconv"
	"time"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/ports"
)

const dueDateLayout = "2006-01-02"

// ParseTaskFilter reads the list/search parameters from the query string.
// Any invalid value (unparseable id or date, unknown search_in) drops the
// whole form: the caller gets the default non-archived, unfiltered view.
// This never returns an error to the caller.
func ParseTaskFilter(values url.Values, now time.Time) ports.TaskFilter {
	defaultFilter := ports.TaskFilter{Now: now}
	filter := ports.TaskFilter{Now: now}

	filter.SearchQuery = values.Get("search_query")
	filter.SearchIn = values.Get("search_in")
	if filter.SearchIn == "" {
		filter.SearchIn = entities.SearchInName
	}
	if !entities.ValidSearchIn(filter.SearchIn) {
		return defaultFilter
	}

	var ok bool
	if filter.CategoryID, ok = parseOptionalID(values.Get("category")); !ok {
		return defaultFilter
	}
	if filter.StatusID, ok = parseOptionalID(values.Get("status")); !ok {
		return defaultFilter
	}
	if filter.PriorityID, ok = parseOptionalID(values.Get("priority")); !ok {
		return defaultFilter
	}
	if filter.AssignedTo, ok = parseOptionalID(values.Get("assigned_to")); !ok {
		return defaultFilter
	}

	if filter.DueDateFrom, ok = parseOptionalDate(values.Get("due_date_from")); !ok {
		return defaultFilter
	}
	if filter.DueDateTo, ok = parseOptionalDate(values.Get("due_date_to")); !ok {
		return defaultFilter
	}

	if filter.ShowOverdue, ok = parseOptionalBool(values.Get("show_overdue")); !ok {
		return defaultFilter
	}
	if filter.ShowArchived, ok = parseOptionalBool(values.Get("show_archived")); !ok {
		return defaultFilter
	}

	return filter
}

// parsePage reads the page number; anything unusable falls back to page 1.
func parsePage(values url.Values) int {
	page, err := strconv.Atoi(values.Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func parseOptionalID(raw string) (*int64, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return nil, false
	}
	return &id, true
}

func parseOptionalDate(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	date, err := time.Parse(dueDateLayout, raw)
	if err != nil {
		return nil, false
	}
	return &date, true
}

func parseOptionalBool(raw string) (bool, bool) {
	switch raw {
	case "":
		return false, true
	case "true", "1", "on":
		return true, true
	case "false", "0", "off":
		return false, true
	default:
		return false, false
	}
}
