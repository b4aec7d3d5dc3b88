package demo

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9_]+@[A-Za-z0-9_]+\.[A-Za-z0-9_.]+$`)

// EmailValidator checks addresses of the form local@domain.tld where every
// part is made of letters, digits and underscores.
type EmailValidator struct{}

// IsValid reports whether email is a well-formed address.
func (EmailValidator) IsValid(email string) bool {
	if email == "" || !emailPattern.MatchString(email) {
		return false
	}
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return false
	}
	if !strings.Contains(domain, ".") {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return false
		}
	}
	return true
}

// FilterValid splits text on whitespace and returns the valid addresses in
// their original order.
func (v EmailValidator) FilterValid(text string) []string {
	valid := []string{}
	for _, field := range strings.Fields(text) {
		if v.IsValid(field) {
			valid = append(valid, field)
		}
	}
	return valid
}
