package usecase

import (
	"regexp"
	"strings"
)

const (
	SuffixIndividual = "@c.us"
	SuffixGroup      = "@g.us"
)

var nonDigit = regexp.MustCompile(`\D`)

// SanitizeDestination remove tudo que não for dígito ASCII.
func SanitizeDestination(to string) string {
	return nonDigit.ReplaceAllString(to, "")
}

func ChatID(digits string, isGroup bool) string {
	if isGroup {
		return digits + SuffixGroup
	}
	return digits + SuffixIndividual
}

func isTruthy(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}
