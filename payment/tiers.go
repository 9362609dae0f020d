package payment

// tierByAmount maps the suggested giving levels shown on the donation form to
// their labels.
var tierByAmount = map[int]string{
	10:   "Friend",
	25:   "Advocate",
	50:   "Supporter",
	100:  "Champion",
	250:  "Defender",
	500:  "Guardian",
	1000: "Benefactor",
	2500: "Chancellor's Circle",
}

// TierLabel resolves the tier name for a contribution: an explicit label from
// the form wins, then the fixed amount lookup, then "Custom".
func TierLabel(amount int, requested string) string {
	if requested != "" {
		return requested
	}
	if label, ok := tierByAmount[amount]; ok {
		return label
	}
	return "Custom"
}
