package ai

import "strings"

func valueOrDefault(value string, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
