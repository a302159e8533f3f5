package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/fretehub/fretehub/internal/constants"
	"github.com/fretehub/fretehub/internal/models"

	"github.com/shopspring/decimal"
)

func TestBuildOfertaStatusContent(t *testing.T) {
	tests := []struct {
		name                string
		status              string
		wantSubjectContains []string
		wantBodyContains    []string
	}{
		{
			name:   "pendente",
			status: constants.OfertaStatusPendente,
			wantSubjectContains: []string{
				"Oferta recebida",
				"Carga SP-MG",
			},
			wantBodyContains: []string{
				"Carlos Mendes",
				"R$ 4500.00",
				"Sao Paulo/SP -> Belo Horizonte/MG",
			},
		},
		{
			name:   "aceita",
			status: constants.OfertaStatusAceita,
			wantSubjectContains: []string{
				"Oferta aceita",
			},
			wantBodyContains: []string{
				"foi aceita",
				"R$ 4500.00",
			},
		},
		{
			name:   "recusada",
			status: constants.OfertaStatusRecusada,
			wantSubjectContains: []string{
				"Oferta recusada",
			},
			wantBodyContains: []string{
				"foi recusada",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := OfertaStatusEmailInput{
				CargaTitulo:   "Carga SP-MG",
				Origem:        "Sao Paulo/SP",
				Destino:       "Belo Horizonte/MG",
				Valor:         models.NewMoneyFromDecimal(decimal.NewFromInt(4500)),
				Status:        tt.status,
				Transportador: "Carlos Mendes",
			}
			subject, body := buildOfertaStatusContent(input)
			for _, expected := range tt.wantSubjectContains {
				if !strings.Contains(subject, expected) {
					t.Fatalf("subject missing %q: %s", expected, subject)
				}
			}
			for _, expected := range tt.wantBodyContains {
				if !strings.Contains(body, expected) {
					t.Fatalf("body missing %q: %s", expected, body)
				}
			}
		})
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{constants.CargaStatusEmNegociacao, "em negociação"},
		{constants.CargaStatusEmTransporte, "em transporte"},
		{constants.CargaStatusCancelada, "cancelada"},
		{constants.CargaStatusAceita, "aceita"},
		{constants.OfertaStatusAceita, "aceita"},
		{constants.OfertaStatusCancelada, "cancelada"},
		{constants.OfertaStatusPendente, "recebida"},
		{constants.OfertaStatusRecusada, "recusada"},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.status); got != tt.want {
			t.Fatalf("statusLabel(%s) = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestSendDisabledEmailService(t *testing.T) {
	svc := NewEmailService(nil, "http://localhost:8080")
	err := svc.SendVerificacao("user@test.dev", "User", "token")
	if !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected disabled email service error, got: %v", err)
	}
}
