package kvrepo_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Consent-api/internal/domain/entity"
	"github.com/jhoicas/Consent-api/internal/domain/repository"
	"github.com/jhoicas/Consent-api/internal/infrastructure/kvrepo"
	"github.com/jhoicas/Consent-api/internal/infrastructure/memory"
	"github.com/jhoicas/Consent-api/pkg/logger"
)

func TestLoad_StoreVacioDevuelveListasVacias(t *testing.T) {
	repo := kvrepo.NewConsentRepository(memory.NewKVStore(), nil)
	ctx := context.Background()

	events, err := repo.LoadEvents(ctx)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)

	customers, err := repo.LoadCustomers(ctx)
	require.NoError(t, err)
	assert.NotNil(t, customers)
	assert.Empty(t, customers)
}

func TestSaveLoad_FormatoDelDocumento(t *testing.T) {
	store := memory.NewKVStore()
	repo := kvrepo.NewConsentRepository(store, nil)
	ctx := context.Background()

	require.NoError(t, repo.SaveEvents(ctx, []*entity.ConsentEvent{{
		ID:                    "e1",
		PhoneNumber:           "5551234567",
		Timestamp:             "2026-01-02T03:04:05.000Z",
		IP:                    "192.168.173.191",
		Channel:               "checkout",
		DisclosureTextVersion: "v1",
		VerificationResult:    entity.VerificationValid,
		Action:                entity.ActionOptOut,
	}}))

	raw, err := store.Get(ctx, repository.ConsentEventsKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"e1","customerId":null,"phoneNumber":"5551234567",
		"timestamp":"2026-01-02T03:04:05.000Z","ip":"192.168.173.191","channel":"checkout",
		"disclosureTextVersion":"v1","verificationResult":"valid","action":"opt-out"}]`, string(raw))

	events, err := repo.LoadEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].CustomerID)
	assert.Equal(t, entity.ActionOptOut, events[0].Action)
}

// Un documento corrupto se registra como warning y se trata como lista vacía.
func TestLoad_JSONCorruptoCaeAListaVacia(t *testing.T) {
	store := memory.NewKVStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, repository.CustomersKey, []byte(`{not json`)))
	require.NoError(t, store.Set(ctx, repository.ConsentEventsKey, []byte(`{"id":"objeto, no lista"}`)))

	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})
	repo := kvrepo.NewConsentRepository(store, log)

	customers, err := repo.LoadCustomers(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers)

	events, err := repo.LoadEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)

	assert.Contains(t, buf.String(), "documento corrupto")
	assert.Contains(t, buf.String(), repository.CustomersKey)
}

func TestLoad_DescartaNulls(t *testing.T) {
	store := memory.NewKVStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, repository.CustomersKey,
		[]byte(`[null,{"id":"c1","phoneNumber":"5551234567","consentState":"valid","lastConsentEventId":"e1"}]`)))

	customers, err := kvrepo.NewConsentRepository(store, nil).LoadCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "c1", customers[0].ID)
	require.NotNil(t, customers[0].LastConsentEventID)
	assert.Equal(t, "e1", *customers[0].LastConsentEventID)
}

func TestClear_BorraAmbosDocumentos(t *testing.T) {
	store := memory.NewKVStore()
	repo := kvrepo.NewConsentRepository(store, nil)
	ctx := context.Background()
	require.NoError(t, repo.SaveCustomers(ctx, []*entity.Customer{{ID: "c1"}}))
	require.NoError(t, repo.SaveEvents(ctx, []*entity.ConsentEvent{{ID: "e1"}}))

	require.NoError(t, repo.Clear(ctx))

	raw, err := store.Get(ctx, repository.CustomersKey)
	require.NoError(t, err)
	assert.Nil(t, raw)
	raw, err = store.Get(ctx, repository.ConsentEventsKey)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

// Sin store (equivalente a "sin contexto de cliente") todo es no-op.
func TestNilStore_NoOp(t *testing.T) {
	repo := kvrepo.NewConsentRepository(nil, nil)
	ctx := context.Background()
	require.NoError(t, repo.SaveCustomers(ctx, []*entity.Customer{{ID: "c1"}}))
	customers, err := repo.LoadCustomers(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers)
	assert.NoError(t, repo.Clear(ctx))
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("db caída") }
func (failingStore) Set(context.Context, string, []byte) error   { return errors.New("db caída") }
func (failingStore) Delete(context.Context, string) error        { return errors.New("db caída") }

// Los errores de E/S del store sí se propagan (a diferencia del JSON corrupto).
func TestErroresDeStoreSePropagan(t *testing.T) {
	repo := kvrepo.NewConsentRepository(failingStore{}, nil)
	ctx := context.Background()

	_, err := repo.LoadEvents(ctx)
	assert.ErrorContains(t, err, "db caída")
	assert.Error(t, repo.SaveCustomers(ctx, nil))
	assert.Error(t, repo.Clear(ctx))
}
