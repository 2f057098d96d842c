package consent

import "github.com/jhoicas/Consent-api/internal/domain/entity"

// disclosureTexts textos legales por versión. El texto se muestra tal cual al cliente (EE. UU.).
var disclosureTexts = map[string]string{
	entity.DisclosureTextVersion: "By submitting this form, you consent to receive automated SMS and voice " +
		"messages about your account, appointments, and service updates. Message " +
		"frequency varies. Message and data rates may apply. Reply STOP to opt out " +
		"or HELP for assistance. Consent is not a condition of purchase.",
}

// DisclosureText devuelve el texto legal de la versión indicada y si existe.
func DisclosureText(version string) (string, bool) {
	t, ok := disclosureTexts[version]
	return t, ok
}
