package consent

// Flow punto de contacto donde se captura el consentimiento.
type Flow struct {
	Channel string
	Label   string
}

// PortalCustomerID y PortalDefaultPhone registro fijo del flujo portal-settings.
const (
	PortalCustomerID   = "portal-customer"
	PortalDefaultPhone = "5558675309"
)

// Flows catálogo de flujos de captura, en el orden del menú de navegación.
var Flows = []Flow{
	{Channel: "invoice", Label: "Invoice"},
	{Channel: "checkout", Label: "Checkout"},
	{Channel: "warranty", Label: "Warranty Lookup"},
	{Channel: "contact-form", Label: "Contact Form"},
	{Channel: "chatbot", Label: "Chatbot"},
	{Channel: "churn-survey", Label: "Churn Survey"},
	{Channel: "account-creation", Label: "Account Creation"},
	{Channel: "portal-settings", Label: "Portal Settings"},
	{Channel: "in-person", Label: "In-Person Tablet"},
	{Channel: "appointment", Label: "Appointment"},
	{Channel: "intake-form", Label: "Intake Form"},
	{Channel: "check-in", Label: "Check-In"},
	{Channel: "qr", Label: "QR Landing"},
	{Channel: "rewards", Label: "Rewards"},
	{Channel: "feedback", Label: "Feedback"},
	{Channel: "wifi", Label: "WiFi Portal"},
}

// FlowCatalog implementa la consulta de flujos conocidos.
type FlowCatalog struct {
	byChannel map[string]Flow
}

// NewFlowCatalog construye el catálogo a partir de Flows.
func NewFlowCatalog() *FlowCatalog {
	m := make(map[string]Flow, len(Flows))
	for _, f := range Flows {
		m[f.Channel] = f
	}
	return &FlowCatalog{byChannel: m}
}

// Lookup devuelve el flujo del canal y si existe.
func (c *FlowCatalog) Lookup(channel string) (Flow, bool) {
	f, ok := c.byChannel[channel]
	return f, ok
}

// List devuelve los flujos en orden de menú.
func (c *FlowCatalog) List() []Flow {
	out := make([]Flow, len(Flows))
	copy(out, Flows)
	return out
}
