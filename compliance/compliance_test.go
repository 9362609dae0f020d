package compliance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"campaignapi/httperr"
	"campaignapi/models"
)

func validProfile(ctype models.ContributorType) models.DonorProfile {
	p := models.DonorProfile{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "555-0100",
		Address:   "12 Court St",
		City:      "Wilmington",
		State:     "DE",
		Zip:       "19801",
	}
	switch ctype {
	case models.ContributorIndividual:
		p.Employer = "Acme LLP"
		p.Occupation = "Attorney"
	case models.ContributorCorporate:
		p.CorporateName = "Acme LLP"
		p.CorporateAuthorizer = "John Smith"
	}
	return p
}

func TestValidateContributorType(t *testing.T) {
	ctype, err := ValidateContributorType("individual")
	assert.NoError(t, err)
	assert.Equal(t, models.ContributorIndividual, ctype)

	ctype, err = ValidateContributorType("corporate")
	assert.NoError(t, err)
	assert.Equal(t, models.ContributorCorporate, ctype)

	// No coercion or defaulting for anything else.
	for _, raw := range []string{"", "Individual", "INDIVIDUAL", "pac", "business", "corp"} {
		_, err := ValidateContributorType(raw)
		assert.Error(t, err, "expected rejection for %q", raw)
		assert.Equal(t, 400, httperr.From(err).Code)
	}
}

func TestValidateAmount_Caps(t *testing.T) {
	cases := []struct {
		amount int
		ctype  models.ContributorType
		ok     bool
	}{
		{1, models.ContributorIndividual, true},
		{2500, models.ContributorIndividual, true},
		{2501, models.ContributorIndividual, false},
		{1000, models.ContributorCorporate, true},
		{1001, models.ContributorCorporate, false},
		{1500, models.ContributorCorporate, false},
		{0, models.ContributorIndividual, false},
		{-5, models.ContributorCorporate, false},
	}
	for _, tc := range cases {
		err := ValidateAmount(tc.amount, tc.ctype)
		if tc.ok {
			assert.NoError(t, err, "amount=%d type=%s", tc.amount, tc.ctype)
		} else {
			assert.Error(t, err, "amount=%d type=%s", tc.amount, tc.ctype)
			assert.Equal(t, 400, httperr.From(err).Code)
		}
	}
}

func TestValidateProfile(t *testing.T) {
	p := validProfile(models.ContributorIndividual)
	assert.NoError(t, ValidateProfile(&p, models.ContributorIndividual))

	p = validProfile(models.ContributorCorporate)
	assert.NoError(t, ValidateProfile(&p, models.ContributorCorporate))
}

func TestValidateProfile_ConditionalDisclosure(t *testing.T) {
	p := validProfile(models.ContributorIndividual)
	p.Employer = ""
	assert.Error(t, ValidateProfile(&p, models.ContributorIndividual))

	p = validProfile(models.ContributorIndividual)
	p.Occupation = "  "
	assert.Error(t, ValidateProfile(&p, models.ContributorIndividual))

	p = validProfile(models.ContributorCorporate)
	p.CorporateAuthorizer = ""
	assert.Error(t, ValidateProfile(&p, models.ContributorCorporate))

	// Individual-only fields are not required for corporate and vice versa.
	p = validProfile(models.ContributorCorporate)
	p.Employer = ""
	p.Occupation = ""
	assert.NoError(t, ValidateProfile(&p, models.ContributorCorporate))
}

func TestValidateProfile_RequiredFields(t *testing.T) {
	for _, mutate := range []func(*models.DonorProfile){
		func(p *models.DonorProfile) { p.Email = "not-an-email" },
		func(p *models.DonorProfile) { p.Email = "" },
		func(p *models.DonorProfile) { p.FirstName = "" },
		func(p *models.DonorProfile) { p.Address = "" },
		func(p *models.DonorProfile) { p.City = "" },
		func(p *models.DonorProfile) { p.State = "" },
		func(p *models.DonorProfile) { p.Zip = "" },
	} {
		p := validProfile(models.ContributorIndividual)
		mutate(&p)
		assert.Error(t, ValidateProfile(&p, models.ContributorIndividual))
	}
}

func TestValidateProfile_StableErrorMessage(t *testing.T) {
	// Identical requests must get the identical message back.
	for i := 0; i < 20; i++ {
		p := validProfile(models.ContributorIndividual)
		p.Address = ""
		p.City = ""
		p.State = ""
		p.Zip = ""
		err := ValidateProfile(&p, models.ContributorIndividual)
		assert.EqualError(t, err, "address is required for contribution disclosure")
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("a@b.co"))
	assert.True(t, ValidEmail("first.last+tag@sub.domain.org"))
	assert.False(t, ValidEmail("missing-at.example.com"))
	assert.False(t, ValidEmail("spaces in@example.com"))
	assert.False(t, ValidEmail("no-tld@example"))
}

func TestSanitizeMetadataValue(t *testing.T) {
	assert.Equal(t, "Jane Doe", SanitizeMetadataValue("Jane\r\nDoe\n"))
	assert.Equal(t, "tab free", SanitizeMetadataValue("tab\tfree"))
	assert.Equal(t, "one two", SanitizeMetadataValue("one \r\n\t two"))

	long := strings.Repeat("x", 600)
	assert.Len(t, SanitizeMetadataValue(long), MetadataMaxLen)
}

func TestSanitizeMetadataValue_Idempotent(t *testing.T) {
	inputs := []string{
		"plain value",
		"with\r\nbreaks",
		strings.Repeat("y", 700),
		"  padded  ",
	}
	for _, in := range inputs {
		once := SanitizeMetadataValue(in)
		assert.Equal(t, once, SanitizeMetadataValue(once))
	}
}
