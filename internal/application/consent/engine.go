// Package consent contiene los casos de uso del motor de consentimiento: registro de
// eventos opt-in/opt-out, mantenimiento de clientes, resumen del dashboard y exportaciones.
//
// El motor no guarda estado propio: cada operación relee las listas del repositorio,
// deriva el nuevo estado y las vuelve a escribir. No hay bloqueo ni transacción entre
// la lectura y la escritura (último en escribir gana).
package consent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Consent-api/internal/domain"
	domainconsent "github.com/jhoicas/Consent-api/internal/domain/consent"
	"github.com/jhoicas/Consent-api/internal/domain/entity"
	"github.com/jhoicas/Consent-api/internal/domain/repository"
	"github.com/jhoicas/Consent-api/pkg/logger"
	"github.com/jhoicas/Consent-api/pkg/phone"
)

// TimestampLayout formato ISO-8601 de los eventos (UTC, milisegundos).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Engine motor de consentimiento.
type Engine struct {
	repo     repository.ConsentRepository
	verifier domainconsent.VerificationProvider
	reports  ConsentReportGenerator
	now      func() time.Time
	newID    func() string
	log      *logger.Logger
}

// Option configura el Engine.
type Option func(*Engine)

// WithVerifier reemplaza el proveedor de verificación por defecto (MockOracle).
func WithVerifier(v domainconsent.VerificationProvider) Option {
	return func(e *Engine) { e.verifier = v }
}

// WithClock fija el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator fija el generador de IDs (tests).
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// WithLogger inyecta el logger.
func WithLogger(log *logger.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithReportGenerator inyecta el generador del reporte PDF.
func WithReportGenerator(g ConsentReportGenerator) Option {
	return func(e *Engine) { e.reports = g }
}

// NewEngine construye el motor sobre el repositorio indicado.
func NewEngine(repo repository.ConsentRepository, opts ...Option) *Engine {
	e := &Engine{
		repo:     repo,
		verifier: domainconsent.NewMockOracle(),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.Component("consent-engine")
	return e
}

// RecordInput datos de una solicitud de consentimiento.
// Verification, si no es nil, sustituye al proveedor del motor en los opt-in.
type RecordInput struct {
	Channel      string
	PhoneNumber  string
	Action       entity.ConsentAction
	CustomerID   *string
	Verification domainconsent.VerificationProvider
}

// RecordResult evento creado y cliente afectado.
// Customer es nil cuando un opt-out no corresponde a ningún cliente conocido.
type RecordResult struct {
	Event    *entity.ConsentEvent
	Customer *entity.Customer
}

// RecordConsentEvent registra un opt-in u opt-out y actualiza (o crea) el cliente.
//
// Pasos:
//  1. Normaliza el teléfono a sus últimos 10 dígitos.
//  2. Relee eventos y clientes.
//  3. Resuelve el cliente por ID y luego por teléfono.
//  4. Determina la verificación: opt-in → proveedor; opt-out → la del último evento del cliente.
//  5. Si el teléfono cambió, reinicia el consentimiento del cliente antes de procesar el evento.
//  6. Agrega el evento; 7. actualiza o crea el cliente; 8. persiste ambas listas.
func (e *Engine) RecordConsentEvent(ctx context.Context, in RecordInput) (*RecordResult, error) {
	if !in.Action.Valid() {
		return nil, fmt.Errorf("consent: acción desconocida %q", in.Action)
	}
	phoneNumber := phone.Normalize(in.PhoneNumber)

	events, err := e.repo.LoadEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("consent: cargar eventos: %w", err)
	}
	customers, err := e.repo.LoadCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("consent: cargar clientes: %w", err)
	}

	customer, _ := domainconsent.ResolveCustomer(customers, in.CustomerID, phoneNumber)

	var verification entity.VerificationResult
	if in.Action == entity.ActionOptIn {
		provider := in.Verification
		if provider == nil {
			provider = e.verifier
		}
		verification, err = provider.Verify(ctx, phoneNumber)
		if err != nil {
			return nil, fmt.Errorf("consent: verificar línea: %w", err)
		}
	} else {
		var lastEventID *string
		if customer != nil {
			lastEventID = customer.LastConsentEventID
		}
		verification = domainconsent.DeriveOptOutVerification(events, lastEventID)
	}

	if customer != nil && customer.PhoneNumber != phoneNumber {
		e.log.Info().
			Str("customer_id", customer.ID).
			Msg("cambio de teléfono, se reinicia el consentimiento")
		customer.PhoneNumber = phoneNumber
		customer.ResetConsent()
	}

	seed := domainconsent.AnonymousSeed
	var customerID *string
	if customer != nil {
		seed = customer.ID
		customerID = entity.StringPtr(customer.ID)
	}
	event := &entity.ConsentEvent{
		ID:                    e.newID(),
		CustomerID:            customerID,
		PhoneNumber:           phoneNumber,
		Timestamp:             e.now().UTC().Format(TimestampLayout),
		IP:                    domainconsent.MockIPAddress(seed),
		Channel:               in.Channel,
		DisclosureTextVersion: entity.DisclosureTextVersion,
		VerificationResult:    verification,
		Action:                in.Action,
	}
	events = append(events, event)

	switch {
	case customer != nil:
		customer.LastConsentEventID = entity.StringPtr(event.ID)
		customer.ConsentState = domainconsent.DeriveConsentState(event.Action, verification)
	case in.Action == entity.ActionOptIn:
		id := e.newID()
		if in.CustomerID != nil && *in.CustomerID != "" {
			id = *in.CustomerID
		}
		customer = &entity.Customer{
			ID:                 id,
			PhoneNumber:        phoneNumber,
			ConsentState:       domainconsent.DeriveConsentState(event.Action, verification),
			LastConsentEventID: entity.StringPtr(event.ID),
		}
		customers = append(customers, customer)
		event.CustomerID = entity.StringPtr(customer.ID)
	}

	if err := e.repo.SaveEvents(ctx, events); err != nil {
		return nil, fmt.Errorf("consent: guardar eventos: %w", err)
	}
	if err := e.repo.SaveCustomers(ctx, customers); err != nil {
		return nil, fmt.Errorf("consent: guardar clientes: %w", err)
	}

	logEvt := e.log.Debug().
		Str("event_id", event.ID).
		Str("channel", event.Channel).
		Str("action", string(event.Action)).
		Str("verification", string(verification))
	if customer != nil {
		logEvt = logEvt.Str("customer_id", customer.ID).Str("consent_state", string(customer.ConsentState))
	}
	logEvt.Msg("evento de consentimiento registrado")

	return &RecordResult{Event: event, Customer: customer}, nil
}

// GetConsentEvents devuelve todos los eventos en orden de inserción.
func (e *Engine) GetConsentEvents(ctx context.Context) ([]*entity.ConsentEvent, error) {
	return e.repo.LoadEvents(ctx)
}

// SaveConsentEvents reemplaza la lista de eventos (sin validación).
func (e *Engine) SaveConsentEvents(ctx context.Context, events []*entity.ConsentEvent) error {
	return e.repo.SaveEvents(ctx, events)
}

// GetCustomers devuelve todos los clientes.
func (e *Engine) GetCustomers(ctx context.Context) ([]*entity.Customer, error) {
	return e.repo.LoadCustomers(ctx)
}

// SaveCustomers reemplaza la lista de clientes (sin validación).
func (e *Engine) SaveCustomers(ctx context.Context, customers []*entity.Customer) error {
	return e.repo.SaveCustomers(ctx, customers)
}

// GetConsentEvent busca un evento por ID; domain.ErrNotFound si no existe.
func (e *Engine) GetConsentEvent(ctx context.Context, id string) (*entity.ConsentEvent, error) {
	events, err := e.repo.LoadEvents(ctx)
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ClearAll borra eventos y clientes ("Clear demo data").
func (e *Engine) ClearAll(ctx context.Context) error {
	if err := e.repo.Clear(ctx); err != nil {
		return fmt.Errorf("consent: limpiar datos: %w", err)
	}
	e.log.Info().Msg("datos de consentimiento eliminados")
	return nil
}
