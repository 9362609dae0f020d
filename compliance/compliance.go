// Package compliance gatekeeps every mutating request before it reaches the
// paid integrations. All checks are pure; failures come back as 400-class
// httperr values with a human-readable message.
package compliance

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"campaignapi/httperr"
	"campaignapi/models"
)

// Statutory per-cycle contribution caps in whole dollars.
const (
	IndividualCap = 2500
	CorporateCap  = 1000
)

// MetadataMaxLen is Stripe's per-value metadata limit.
const MetadataMaxLen = 500

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateContributorType accepts exactly the two legal contributor types.
// Anything else is rejected, never coerced to a default.
func ValidateContributorType(raw string) (models.ContributorType, error) {
	switch models.ContributorType(raw) {
	case models.ContributorIndividual:
		return models.ContributorIndividual, nil
	case models.ContributorCorporate:
		return models.ContributorCorporate, nil
	}
	return "", httperr.InvalidInput(fmt.Sprintf("contributor type must be %q or %q", models.ContributorIndividual, models.ContributorCorporate))
}

// ContributionCap returns the statutory cap for the contributor type.
func ContributionCap(ctype models.ContributorType) int {
	if ctype == models.ContributorCorporate {
		return CorporateCap
	}
	return IndividualCap
}

// ValidateAmount enforces the statutory cap server-side. Client-side
// enforcement is advisory only.
func ValidateAmount(amount int, ctype models.ContributorType) error {
	if amount < 1 {
		return httperr.InvalidInput("amount must be a positive whole-dollar value")
	}
	if cap := ContributionCap(ctype); amount > cap {
		return httperr.InvalidInput(fmt.Sprintf("amount exceeds the $%d limit for %s contributions", cap, ctype))
	}
	return nil
}

// ValidateProfile checks the legally-mandated disclosure fields for the given
// contributor type.
func ValidateProfile(p *models.DonorProfile, ctype models.ContributorType) error {
	if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
		return httperr.InvalidInput("first and last name are required")
	}
	if !ValidEmail(p.Email) {
		return httperr.InvalidInput("a valid email address is required")
	}
	// Checked in order so the same omission always yields the same message.
	for _, field := range []struct {
		name, value string
	}{
		{"address", p.Address},
		{"city", p.City},
		{"state", p.State},
		{"zip", p.Zip},
	} {
		if strings.TrimSpace(field.value) == "" {
			return httperr.InvalidInput(field.name + " is required for contribution disclosure")
		}
	}

	switch ctype {
	case models.ContributorIndividual:
		if strings.TrimSpace(p.Employer) == "" || strings.TrimSpace(p.Occupation) == "" {
			return httperr.InvalidInput("employer and occupation are required for individual contributions")
		}
	case models.ContributorCorporate:
		if strings.TrimSpace(p.CorporateName) == "" || strings.TrimSpace(p.CorporateAuthorizer) == "" {
			return httperr.InvalidInput("corporate name and authorizing officer are required for corporate contributions")
		}
	}
	return nil
}

// ValidEmail applies a basic syntactic check; deliverability is not our problem.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// SanitizeMetadataValue replaces control characters with spaces (line breaks
// would otherwise allow header/metadata injection), collapses whitespace runs
// so word boundaries survive, and truncates to the provider's per-value limit.
// Idempotent: re-applying it never changes an already-sanitized value.
func SanitizeMetadataValue(value string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, value)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if utf8.RuneCountInString(cleaned) > MetadataMaxLen {
		cleaned = string([]rune(cleaned)[:MetadataMaxLen])
	}
	return strings.TrimSpace(cleaned)
}
