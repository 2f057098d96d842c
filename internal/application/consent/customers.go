package consent

import (
	"context"
	"fmt"

	"github.com/jhoicas/Consent-api/internal/domain"
	"github.com/jhoicas/Consent-api/internal/domain/entity"
	"github.com/jhoicas/Consent-api/pkg/phone"
)

// GetCustomer busca un cliente por ID. Devuelve domain.ErrNotFound si no existe.
func (e *Engine) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	customers, err := e.repo.LoadCustomers(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

// UpsertCustomerByPhone devuelve el cliente con ese teléfono o lo crea sin consentimiento.
// Lo usa el chatbot para identificar al cliente antes de ofrecer el opt-in.
func (e *Engine) UpsertCustomerByPhone(ctx context.Context, phoneNumber string) (*entity.Customer, bool, error) {
	normalized := phone.Normalize(phoneNumber)
	customers, err := e.repo.LoadCustomers(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, c := range customers {
		if c.PhoneNumber == normalized {
			return c, false, nil
		}
	}
	customer := &entity.Customer{
		ID:           e.newID(),
		PhoneNumber:  normalized,
		ConsentState: entity.ConsentStateUnknown,
	}
	if err := e.repo.SaveCustomers(ctx, append(customers, customer)); err != nil {
		return nil, false, fmt.Errorf("consent: guardar cliente: %w", err)
	}
	return customer, true, nil
}

// EnsureCustomer devuelve el cliente con el ID indicado, creándolo con defaultPhone si no existe
// (registro fijo del portal de preferencias).
func (e *Engine) EnsureCustomer(ctx context.Context, id, defaultPhone string) (*entity.Customer, bool, error) {
	if id == "" {
		return nil, false, domain.ErrInvalidInput
	}
	customers, err := e.repo.LoadCustomers(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, c := range customers {
		if c.ID == id {
			return c, false, nil
		}
	}
	customer := &entity.Customer{
		ID:           id,
		PhoneNumber:  phone.Normalize(defaultPhone),
		ConsentState: entity.ConsentStateUnknown,
	}
	if err := e.repo.SaveCustomers(ctx, append(customers, customer)); err != nil {
		return nil, false, fmt.Errorf("consent: guardar cliente: %w", err)
	}
	return customer, true, nil
}

// ChangeCustomerPhone cambia el teléfono del cliente y reinicia su consentimiento.
// El nuevo número debe tener 10 dígitos.
func (e *Engine) ChangeCustomerPhone(ctx context.Context, id, phoneNumber string) (*entity.Customer, error) {
	if err := phone.Validate(phoneNumber); err != nil {
		return nil, domain.ErrInvalidPhone
	}
	customers, err := e.repo.LoadCustomers(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range customers {
		if c.ID != id {
			continue
		}
		c.PhoneNumber = phone.Truncate(phoneNumber)
		c.ResetConsent()
		if err := e.repo.SaveCustomers(ctx, customers); err != nil {
			return nil, fmt.Errorf("consent: guardar cliente: %w", err)
		}
		e.log.Info().Str("customer_id", id).Msg("teléfono actualizado, consentimiento reiniciado")
		return c, nil
	}
	return nil, domain.ErrNotFound
}

// IsOptedIn indica si el cliente tiene un opt-in vigente (válido o pendiente de verificación).
func IsOptedIn(c *entity.Customer) bool {
	if c == nil {
		return false
	}
	return c.ConsentState == entity.ConsentStateValid ||
		c.ConsentState == entity.ConsentStatePendingVerification
}

// RevokeFromPortal registra el opt-out del interruptor del portal.
// Si el cliente no tiene opt-in vigente devuelve domain.ErrConsentRequired:
// activar el consentimiento exige pasar por el formulario.
func (e *Engine) RevokeFromPortal(ctx context.Context, id, channel string) (*RecordResult, error) {
	customer, err := e.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if !IsOptedIn(customer) {
		return nil, domain.ErrConsentRequired
	}
	return e.RecordConsentEvent(ctx, RecordInput{
		Channel:     channel,
		PhoneNumber: customer.PhoneNumber,
		Action:      entity.ActionOptOut,
		CustomerID:  entity.StringPtr(customer.ID),
	})
}
