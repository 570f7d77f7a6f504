// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package handlers

import (
	"fmt"
	"strings"
	"time"
)

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// formatDate renders a date the way the frontend displays it,
// e.g. "25 décembre 2021".
func formatDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
}

// parseClientDate accepts the date formats the frontend sends: the French
// day-first form ("25/12/2021") or RFC 3339.
func parseClientDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("02/01/2006", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// previewLen is the length of the short description shown on list pages.
const previewLen = 30

// preview returns the first characters of a description for list views,
// with an ellipsis when truncated.
func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= previewLen {
		return s
	}
	return string(runes[:previewLen]) + "..."
}
