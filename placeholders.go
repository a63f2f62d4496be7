package coverletter

// Placeholder tokens recognized in templates.
const (
	TokenClientName   = "<<CLIENT_NAME>>"
	TokenCompany      = "<<COMPANY>>"
	TokenAddress      = "<<ADDRESS>>"
	TokenAddressLine1 = "<<ADDRESS_LINE_1>>"
	TokenAddressLine2 = "<<ADDRESS_LINE_2>>"
	TokenDate         = "<<DATE>>"
)

// Placeholders derives the token replacement map from client details.
// <<ADDRESS>> combines both address lines with a line break when the
// second line is present; the split forms map to the raw fields, so a
// template may use either convention.
func Placeholders(info ClientInfo) map[string]string {
	address := info.Address1
	if info.Address2 != "" {
		address = info.Address1 + "\n" + info.Address2
	}

	return map[string]string{
		TokenClientName:   info.Name,
		TokenCompany:      info.Company,
		TokenAddress:      address,
		TokenAddressLine1: info.Address1,
		TokenAddressLine2: info.Address2,
		TokenDate:         info.Date,
	}
}
