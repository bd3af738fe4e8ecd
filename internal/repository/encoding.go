package repository

import "strings"

// List-valued columns (activity types, days, time slots) are stored as
// comma-joined text. Values are lowercased on write so filter matching is
// case-insensitive.

func joinList(values []string) string {
	if len(values) == 0 {
		return ""
	}
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return strings.Join(cleaned, ",")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			values = append(values, p)
		}
	}
	return values
}
