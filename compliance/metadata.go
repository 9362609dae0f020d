package compliance

import (
	"strconv"

	"campaignapi/models"
)

// Metadata keys attached to the checkout session. The session metadata is the
// only channel donor data survives the async boundary to the webhook, so the
// keys here and in DonationFromMetadata must stay in lockstep.
const (
	MetaAmount          = "amount"
	MetaRecurring       = "recurring"
	MetaContributorType = "contributor_type"
	MetaDonorName       = "donor_name"
	MetaDonorEmail      = "donor_email"
	MetaDonorPhone      = "donor_phone"
	MetaDonorAddress    = "donor_address"
	MetaDonorCity       = "donor_city"
	MetaDonorState      = "donor_state"
	MetaDonorZip        = "donor_zip"
	MetaEmployer        = "employer"
	MetaOccupation      = "occupation"
	MetaCorporateName   = "corporate_name"
	MetaCorporateAuth   = "corporate_authorizer"
	MetaTier            = "tier"
)

// BuildCheckoutMetadata flattens a validated contribution into the string map
// Stripe carries on the session. Every free-text value is sanitized here, once;
// the webhook re-reads these values without re-validating them.
func BuildCheckoutMetadata(amount int, ctype models.ContributorType, recurring bool, tier string, p *models.DonorProfile) map[string]string {
	md := map[string]string{
		MetaAmount:          strconv.Itoa(amount),
		MetaRecurring:       strconv.FormatBool(recurring),
		MetaContributorType: string(ctype),
		MetaDonorName:       SanitizeMetadataValue(p.FullName()),
		MetaDonorEmail:      SanitizeMetadataValue(p.Email),
		MetaDonorPhone:      SanitizeMetadataValue(p.Phone),
		MetaDonorAddress:    SanitizeMetadataValue(p.Address),
		MetaDonorCity:       SanitizeMetadataValue(p.City),
		MetaDonorState:      SanitizeMetadataValue(p.State),
		MetaDonorZip:        SanitizeMetadataValue(p.Zip),
		MetaTier:            SanitizeMetadataValue(tier),
	}
	switch ctype {
	case models.ContributorIndividual:
		md[MetaEmployer] = SanitizeMetadataValue(p.Employer)
		md[MetaOccupation] = SanitizeMetadataValue(p.Occupation)
	case models.ContributorCorporate:
		md[MetaCorporateName] = SanitizeMetadataValue(p.CorporateName)
		md[MetaCorporateAuth] = SanitizeMetadataValue(p.CorporateAuthorizer)
	}
	return md
}

// DonationFromMetadata reconstructs a ledger record from session or
// subscription metadata echoed back in a webhook event. Trusted replay: the
// values were sanitized at checkout-creation time and are not validated again.
func DonationFromMetadata(md map[string]string, paymentRef string, recurring bool) models.DonationRecord {
	amount, _ := strconv.Atoi(md[MetaAmount])
	return models.NewDonationRecord(
		amount,
		models.ContributorType(md[MetaContributorType]),
		md[MetaDonorName],
		md[MetaDonorEmail],
		recurring,
		paymentRef,
	)
}
