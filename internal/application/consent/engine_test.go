package consent_test

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconsent "github.com/jhoicas/Consent-api/internal/application/consent"
	"github.com/jhoicas/Consent-api/internal/domain"
	domainconsent "github.com/jhoicas/Consent-api/internal/domain/consent"
	"github.com/jhoicas/Consent-api/internal/domain/entity"
	"github.com/jhoicas/Consent-api/internal/infrastructure/kvrepo"
	"github.com/jhoicas/Consent-api/internal/infrastructure/memory"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, opts ...appconsent.Option) *appconsent.Engine {
	t.Helper()
	seq := 0
	base := []appconsent.Option{
		appconsent.WithClock(func() time.Time { return fixedNow }),
		appconsent.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	}
	repo := kvrepo.NewConsentRepository(memory.NewKVStore(), nil)
	return appconsent.NewEngine(repo, append(base, opts...)...)
}

func optIn(t *testing.T, e *appconsent.Engine, phoneNumber string, customerID *string) *appconsent.RecordResult {
	t.Helper()
	res, err := e.RecordConsentEvent(context.Background(), appconsent.RecordInput{
		Channel:     "checkout",
		PhoneNumber: phoneNumber,
		Action:      entity.ActionOptIn,
		CustomerID:  customerID,
	})
	require.NoError(t, err)
	return res
}

func TestRecord_OptInNumeroNuevoCreaClienteValido(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	res := optIn(t, e, "5551234567", nil)

	assert.Equal(t, "id-1", res.Event.ID)
	assert.Equal(t, entity.VerificationValid, res.Event.VerificationResult)
	assert.Equal(t, "2024-03-01T12:00:00.000Z", res.Event.Timestamp)
	assert.Equal(t, "192.168.173.191", res.Event.IP)
	assert.Equal(t, entity.DisclosureTextVersion, res.Event.DisclosureTextVersion)

	require.NotNil(t, res.Customer)
	assert.Equal(t, "id-2", res.Customer.ID)
	assert.Equal(t, entity.ConsentStateValid, res.Customer.ConsentState)
	require.NotNil(t, res.Customer.LastConsentEventID)
	assert.Equal(t, "id-1", *res.Customer.LastConsentEventID)
	require.NotNil(t, res.Event.CustomerID)
	assert.Equal(t, "id-2", *res.Event.CustomerID)

	customers, err := e.GetCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "5551234567", customers[0].PhoneNumber)

	events, err := e.GetConsentEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].CustomerID)
	assert.Equal(t, "id-2", *events[0].CustomerID)
}

func TestRecord_LineaFijaQuedaPendiente(t *testing.T) {
	e := newTestEngine(t)

	res := optIn(t, e, "555-123-1230", nil)

	assert.Equal(t, entity.VerificationLandline, res.Event.VerificationResult)
	assert.Equal(t, entity.ConsentStatePendingVerification, res.Customer.ConsentState)
	assert.Equal(t, "5551231230", res.Customer.PhoneNumber)
}

func TestRecord_OptOutCopiaVerificacionDelHistorial(t *testing.T) {
	e := newTestEngine(t)

	first := optIn(t, e, "5551234562", nil)
	require.Equal(t, entity.VerificationVoIP, first.Event.VerificationResult)

	res, err := e.RecordConsentEvent(context.Background(), appconsent.RecordInput{
		Channel:     "portal-settings",
		PhoneNumber: "5551234562",
		Action:      entity.ActionOptOut,
		CustomerID:  entity.StringPtr(first.Customer.ID),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.VerificationVoIP, res.Event.VerificationResult)
	assert.Equal(t, entity.ConsentStateRevoked, res.Customer.ConsentState)
	assert.Equal(t, first.Customer.ID, res.Customer.ID)
	assert.Equal(t, res.Event.ID, *res.Customer.LastConsentEventID)
}

func TestRecord_CambioDeTelefonoReiniciaYDerivaDeNuevo(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	first := optIn(t, e, "5551234567", nil)
	require.Equal(t, entity.ConsentStateValid, first.Customer.ConsentState)

	res := optIn(t, e, "5559876540", entity.StringPtr(first.Customer.ID))

	assert.Equal(t, first.Customer.ID, res.Customer.ID)
	assert.Equal(t, "5559876540", res.Customer.PhoneNumber)
	assert.Equal(t, entity.VerificationLandline, res.Event.VerificationResult)
	assert.Equal(t, entity.ConsentStatePendingVerification, res.Customer.ConsentState)
	assert.Equal(t, res.Event.ID, *res.Customer.LastConsentEventID)

	customers, err := e.GetCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestRecord_CambioDeTelefonoEnOptOutUsaVerificacionPrevia(t *testing.T) {
	e := newTestEngine(t)

	first := optIn(t, e, "5551234562", nil)
	res, err := e.RecordConsentEvent(context.Background(), appconsent.RecordInput{
		Channel:     "wifi",
		PhoneNumber: "5551110000",
		Action:      entity.ActionOptOut,
		CustomerID:  entity.StringPtr(first.Customer.ID),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.VerificationVoIP, res.Event.VerificationResult)
	assert.Equal(t, "5551110000", res.Customer.PhoneNumber)
	assert.Equal(t, entity.ConsentStateRevoked, res.Customer.ConsentState)
}

func TestRecord_OptOutDesconocidoNoCreaCliente(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	optIn(t, e, "5551234567", nil)

	res, err := e.RecordConsentEvent(ctx, appconsent.RecordInput{
		Channel:     "feedback",
		PhoneNumber: "5550000001",
		Action:      entity.ActionOptOut,
	})
	require.NoError(t, err)

	assert.Nil(t, res.Customer)
	assert.Nil(t, res.Event.CustomerID)
	assert.Equal(t, entity.VerificationValid, res.Event.VerificationResult)
	assert.Equal(t, "192.168.173.191", res.Event.IP)

	customers, err := e.GetCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
	events, err := e.GetConsentEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestRecord_ResuelvePorTelefonoSinID(t *testing.T) {
	e := newTestEngine(t)

	first := optIn(t, e, "5551234567", nil)
	second := optIn(t, e, "(555) 123-4567", nil)

	assert.Equal(t, first.Customer.ID, second.Customer.ID)
	assert.Equal(t, domainconsent.MockIPAddress(first.Customer.ID), second.Event.IP)
}

func TestRecord_IDSuministradoParaClienteNuevo(t *testing.T) {
	e := newTestEngine(t)

	res := optIn(t, e, "5551234567", entity.StringPtr(appconsent.PortalCustomerID))

	assert.Equal(t, appconsent.PortalCustomerID, res.Customer.ID)
	assert.Equal(t, appconsent.PortalCustomerID, *res.Event.CustomerID)
}

func TestRecord_VerificacionSuministradaSustituyeAlOraculo(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.RecordConsentEvent(context.Background(), appconsent.RecordInput{
		Channel:      "in-person",
		PhoneNumber:  "5551234567",
		Action:       entity.ActionOptIn,
		Verification: domainconsent.FixedVerification(entity.VerificationVoIP),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationVoIP, res.Event.VerificationResult)
	assert.Equal(t, entity.ConsentStatePendingVerification, res.Customer.ConsentState)
}

func TestRecord_AccionDesconocida(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.RecordConsentEvent(context.Background(), appconsent.RecordInput{
		Channel: "qr", PhoneNumber: "5551234567", Action: "maybe",
	})
	assert.Error(t, err)
}

func TestRecord_VerificacionIgualAlOraculoParaTodoDigito(t *testing.T) {
	e := newTestEngine(t)
	for d := 0; d <= 9; d++ {
		p := fmt.Sprintf("+1 555 000 000%d", d)
		res := optIn(t, e, p, nil)
		assert.Equal(t, fmt.Sprintf("555000000%d", d), res.Event.PhoneNumber)
		assert.Equal(t, domainconsent.LookupVerification(res.Event.PhoneNumber), res.Event.VerificationResult, p)
	}
}

type failingRepo struct{}

func (failingRepo) LoadEvents(context.Context) ([]*entity.ConsentEvent, error) {
	return nil, errors.New("db caída")
}
func (failingRepo) SaveEvents(context.Context, []*entity.ConsentEvent) error { return nil }
func (failingRepo) LoadCustomers(context.Context) ([]*entity.Customer, error) {
	return []*entity.Customer{}, nil
}
func (failingRepo) SaveCustomers(context.Context, []*entity.Customer) error { return nil }
func (failingRepo) Clear(context.Context) error                              { return nil }

func TestRecord_ErrorDeAlmacenamientoSePropaga(t *testing.T) {
	e := appconsent.NewEngine(failingRepo{})
	_, err := e.RecordConsentEvent(context.Background(), appconsent.RecordInput{
		Channel: "qr", PhoneNumber: "5551234567", Action: entity.ActionOptIn,
	})
	assert.ErrorContains(t, err, "db caída")
}

func TestSummarize_StoreVacio(t *testing.T) {
	e := newTestEngine(t)

	s, err := e.SummarizeCustomers(context.Background())
	require.NoError(t, err)

	assert.Empty(t, s.Customers)
	assert.Empty(t, s.Events)
	assert.Empty(t, s.ChannelCounts)
	assert.Len(t, s.ConsentStateCounts, 4)
	for _, st := range entity.ConsentStates {
		assert.Equal(t, 0, s.ConsentStateCounts[st], st)
	}
	assert.Len(t, s.VerificationCounts, 4)
	for _, v := range entity.VerificationResults {
		assert.Equal(t, 0, s.VerificationCounts[v], v)
	}
	assert.True(t, s.Rates.Valid.IsZero())
	assert.True(t, s.Rates.Pending.IsZero())
	assert.True(t, s.Rates.Revoked.IsZero())
}

func TestSummarize_CuentasYPorcentajes(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	optIn(t, e, "5551234567", nil)
	optIn(t, e, "5551234561", nil)
	optIn(t, e, "5551234560", nil)
	_, err := e.RecordConsentEvent(ctx, appconsent.RecordInput{
		Channel: "wifi", PhoneNumber: "5559999999", Action: entity.ActionOptOut,
	})
	require.NoError(t, err)

	s, err := e.SummarizeCustomers(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, s.ConsentStateCounts[entity.ConsentStateValid])
	assert.Equal(t, 1, s.ConsentStateCounts[entity.ConsentStatePendingVerification])
	assert.Equal(t, 0, s.ConsentStateCounts[entity.ConsentStateRevoked])
	assert.Equal(t, map[string]int{"checkout": 3, "wifi": 1}, s.ChannelCounts)
	assert.Equal(t, 3, s.VerificationCounts[entity.VerificationValid])
	assert.Equal(t, 1, s.VerificationCounts[entity.VerificationLandline])
	assert.Equal(t, "66.67", s.Rates.Valid.StringFixed(2))
	assert.Equal(t, "33.33", s.Rates.Pending.StringFixed(2))
	assert.Equal(t, "0.00", s.Rates.Revoked.StringFixed(2))
}

func TestExportCSV_FormatoExacto(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	require.NoError(t, e.SaveConsentEvents(ctx, []*entity.ConsentEvent{
		{
			ID: "e1", CustomerID: entity.StringPtr("c1"), PhoneNumber: "5551234567",
			Timestamp: "2024-03-01T12:00:00.000Z", IP: "192.168.1.7", Channel: `say "hi"`,
			DisclosureTextVersion: "v1", VerificationResult: entity.VerificationValid, Action: entity.ActionOptIn,
		},
		{
			ID: "e2", PhoneNumber: "5550000000",
			Timestamp: "2024-03-02T08:30:00.000Z", IP: "192.168.173.191", Channel: "wifi",
			DisclosureTextVersion: "v1", VerificationResult: entity.VerificationLandline, Action: entity.ActionOptOut,
		},
	}))

	out, err := e.ExportConsentEventsAsCSV(ctx)
	require.NoError(t, err)

	want := "id,customerId,phoneNumber,timestamp,ip,channel,disclosureTextVersion,verificationResult,action\n" +
		`"e1","c1","5551234567","2024-03-01T12:00:00.000Z","192.168.1.7","say ""hi""","v1","valid","opt-in"` + "\n" +
		`"e2","","5550000000","2024-03-02T08:30:00.000Z","192.168.173.191","wifi","v1","landline","opt-out"`
	assert.Equal(t, want, out)
}

func TestExportCSV_SoloCabeceraSinEventos(t *testing.T) {
	e := newTestEngine(t)
	out, err := e.ExportConsentEventsAsCSV(context.Background())
	require.NoError(t, err)
	assert.Equal(t, strings.Join(appconsent.CSVHeader, ","), out)
}

func TestExportCSV_IdaYVuelta(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	optIn(t, e, "5551234567", nil)
	optIn(t, e, "5551234562", nil)
	_, err := e.RecordConsentEvent(ctx, appconsent.RecordInput{
		Channel: `a,b "c"`, PhoneNumber: "5558887777", Action: entity.ActionOptOut,
	})
	require.NoError(t, err)

	out, err := e.ExportConsentEventsAsCSV(ctx)
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)

	events, err := e.GetConsentEvents(ctx)
	require.NoError(t, err)
	require.Len(t, records, len(events)+1)
	assert.Equal(t, appconsent.CSVHeader, records[0])
	for i, ev := range events {
		assert.Equal(t, []string{
			ev.ID, ev.CustomerIDOrEmpty(), ev.PhoneNumber, ev.Timestamp, ev.IP, ev.Channel,
			ev.DisclosureTextVersion, string(ev.VerificationResult), string(ev.Action),
		}, records[i+1])
	}
}

func TestCSVFilename(t *testing.T) {
	assert.Equal(t, "consent-events-2024-03-01T12:00:00.000Z.csv", appconsent.CSVFilename(fixedNow))
}

type stubReport struct {
	summary *appconsent.Summary
	at      time.Time
}

func (s *stubReport) GenerateConsentReport(_ context.Context, summary *appconsent.Summary, at time.Time) ([]byte, error) {
	s.summary, s.at = summary, at
	return []byte("%PDF-stub"), nil
}

func TestExportReportPDF(t *testing.T) {
	gen := &stubReport{}
	e := newTestEngine(t, appconsent.WithReportGenerator(gen))
	optIn(t, e, "5551234567", nil)

	pdf, name, err := e.ExportReportPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-stub"), pdf)
	assert.Equal(t, "consent-report-20240301-120000.pdf", name)
	require.NotNil(t, gen.summary)
	assert.Len(t, gen.summary.Events, 1)
	assert.Equal(t, fixedNow, gen.at)
}

func TestExportReportPDF_SinGenerador(t *testing.T) {
	e := newTestEngine(t)
	_, _, err := e.ExportReportPDF(context.Background())
	assert.ErrorIs(t, err, domain.ErrReportUnavailable)
}

func TestGetConsentEvent(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	res := optIn(t, e, "5551234567", nil)

	ev, err := e.GetConsentEvent(ctx, res.Event.ID)
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, res.Event.Channel, ev.Channel)

	ev, err = e.GetConsentEvent(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, ev)
}

func TestClearAll(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	optIn(t, e, "5551234567", nil)

	require.NoError(t, e.ClearAll(ctx))

	events, err := e.GetConsentEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
	customers, err := e.GetCustomers(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers)
}
