package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appconsent "github.com/jhoicas/Consent-api/internal/application/consent"
	"github.com/jhoicas/Consent-api/internal/domain"
	"github.com/jhoicas/Consent-api/internal/domain/entity"
)

// dateLayout formato de los filtros from/to (YYYY-MM-DD, UTC).
const dateLayout = "2006-01-02"

// parseFilter lee ?consent_state=&channel=&line_type=&from=&to=. Valores inválidos → domain.ErrInvalidInput.
func parseFilter(c *fiber.Ctx) (appconsent.Filter, error) {
	f := appconsent.Filter{
		ConsentState: entity.ConsentState(c.Query("consent_state")),
		Channel:      c.Query("channel"),
		LineType:     entity.VerificationResult(c.Query("line_type")),
	}
	if f.ConsentState != "" && !f.ConsentState.Valid() {
		return f, domain.ErrInvalidInput
	}
	if f.LineType != "" && !f.LineType.Valid() {
		return f, domain.ErrInvalidInput
	}
	var err error
	if f.DateFrom, err = parseDate(c.Query("from")); err != nil {
		return f, domain.ErrInvalidInput
	}
	if f.DateTo, err = parseDate(c.Query("to")); err != nil {
		return f, domain.ErrInvalidInput
	}
	return f, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
