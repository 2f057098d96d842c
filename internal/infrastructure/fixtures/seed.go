// Package fixtures carga datos de demostración desde YAML y los registra a través del motor,
// de modo que clientes y estados quedan derivados igual que en una captura real.
package fixtures

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	appconsent "github.com/jhoicas/Consent-api/internal/application/consent"
	domainconsent "github.com/jhoicas/Consent-api/internal/domain/consent"
	"github.com/jhoicas/Consent-api/internal/domain/entity"
)

// Seed archivo de datos de demostración.
type Seed struct {
	Name        string       `yaml:"name"`
	Clear       bool         `yaml:"clear"` // borra los datos existentes antes de sembrar
	Submissions []Submission `yaml:"submissions"`
}

// Submission una captura de consentimiento, en orden.
type Submission struct {
	Channel      string `yaml:"channel"`
	Phone        string `yaml:"phone"`
	Action       string `yaml:"action"`                 // opt-in | opt-out (vacío = opt-in)
	CustomerID   string `yaml:"customer_id,omitempty"`  // opcional
	Verification string `yaml:"verification,omitempty"` // opcional; sustituye al oráculo
}

// Load lee y valida un archivo de semillas.
func Load(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leyendo semillas %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodifica y valida el YAML.
func Parse(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parseando semillas: %w", err)
	}
	for i := range s.Submissions {
		sub := &s.Submissions[i]
		if sub.Action == "" {
			sub.Action = string(entity.ActionOptIn)
		}
		if !entity.ConsentAction(sub.Action).Valid() {
			return nil, fmt.Errorf("submission %d: acción desconocida %q", i+1, sub.Action)
		}
		if sub.Verification != "" && !entity.VerificationResult(sub.Verification).Valid() {
			return nil, fmt.Errorf("submission %d: verificación desconocida %q", i+1, sub.Verification)
		}
		if sub.Channel == "" || sub.Phone == "" {
			return nil, fmt.Errorf("submission %d: channel y phone son requeridos", i+1)
		}
	}
	return &s, nil
}

// Apply registra cada submission con el motor. Devuelve cuántas se registraron.
func (s *Seed) Apply(ctx context.Context, engine *appconsent.Engine) (int, error) {
	if s.Clear {
		if err := engine.ClearAll(ctx); err != nil {
			return 0, err
		}
	}
	for i, sub := range s.Submissions {
		in := appconsent.RecordInput{
			Channel:     sub.Channel,
			PhoneNumber: sub.Phone,
			Action:      entity.ConsentAction(sub.Action),
		}
		if sub.CustomerID != "" {
			in.CustomerID = entity.StringPtr(sub.CustomerID)
		}
		if sub.Verification != "" {
			in.Verification = domainconsent.FixedVerification(sub.Verification)
		}
		if _, err := engine.RecordConsentEvent(ctx, in); err != nil {
			return i, fmt.Errorf("submission %d: %w", i+1, err)
		}
	}
	return len(s.Submissions), nil
}
