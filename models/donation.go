package models

import "time"

// ContributorType identifies who is legally making the contribution.
type ContributorType string

const (
	ContributorIndividual ContributorType = "individual"
	ContributorCorporate  ContributorType = "corporate"
)

// DonorProfile carries the disclosure fields collected on the pledge form.
// Employer/Occupation are required for individuals, CorporateName and
// CorporateAuthorizer for corporate contributors.
type DonorProfile struct {
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Address            string `json:"address"`
	City               string `json:"city"`
	State              string `json:"state"`
	Zip                string `json:"zip"`
	Employer           string `json:"employer,omitempty"`
	Occupation         string `json:"occupation,omitempty"`
	CorporateName      string `json:"corporateName,omitempty"`
	CorporateAuthorizer string `json:"corporateAuthorizer,omitempty"`
}

// FullName returns the donor display name used on receipts and in the ledger.
func (p *DonorProfile) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// ContributionRequest is the client-submitted checkout request body.
// Amount is in whole dollars.
type ContributionRequest struct {
	Amount          int          `json:"amount"`
	IsRecurring     bool         `json:"isRecurring"`
	ContributorType string       `json:"contributorType"`
	TierName        string       `json:"tierName,omitempty"`
	FormData        DonorProfile `json:"formData"`
}

// DonationRecord is one confirmed contribution as persisted in the ledger.
// Records are append-only; nothing in this service mutates or deletes them.
type DonationRecord struct {
	Amount          int             `json:"amount"`
	ContributorType ContributorType `json:"contributor_type"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Recurring       bool            `json:"recurring"`
	Status          string          `json:"status"`
	PaymentRef      string          `json:"payment_ref"`
	Timestamp       string          `json:"timestamp"`
}

// NewDonationRecord builds a confirmed record stamped with the current time.
func NewDonationRecord(amount int, ctype ContributorType, name, email string, recurring bool, paymentRef string) DonationRecord {
	return DonationRecord{
		Amount:          amount,
		ContributorType: ctype,
		Name:            name,
		Email:           email,
		Recurring:       recurring,
		Status:          "confirmed",
		PaymentRef:      paymentRef,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
}
