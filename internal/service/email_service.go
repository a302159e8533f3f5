package service

import (
	"bytes"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/fretehub/fretehub/internal/config"
	"github.com/fretehub/fretehub/internal/constants"
	"github.com/fretehub/fretehub/internal/models"
)

// EmailService sends plain-text notification mail over SMTP.
type EmailService struct {
	cfg     *config.EmailConfig
	baseURL string
}

// NewEmailService creates the email service. baseURL is the public site
// address used to build verification and reset links.
func NewEmailService(cfg *config.EmailConfig, baseURL string) *EmailService {
	return &EmailService{cfg: cfg, baseURL: strings.TrimRight(baseURL, "/")}
}

// SendVerificacao sends the account verification link.
func (s *EmailService) SendVerificacao(toEmail, nome, token string) error {
	subject := "FreteHub - Confirme seu cadastro"
	body := fmt.Sprintf(
		"Olá %s,\n\nConfirme seu cadastro acessando o link abaixo:\n\n%s/verificar-email?token=%s\n\nO link expira em %d horas.",
		nome, s.baseURL, token, constants.VerifyTokenExpireHours,
	)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendResetSenha sends the password reset link.
func (s *EmailService) SendResetSenha(toEmail, nome, token string) error {
	subject := "FreteHub - Redefinição de senha"
	body := fmt.Sprintf(
		"Olá %s,\n\nPara redefinir sua senha acesse o link abaixo:\n\n%s/redefinir-senha?token=%s\n\nO link expira em %d minutos. Se você não pediu a redefinição, ignore este email.",
		nome, s.baseURL, token, constants.ResetTokenExpireMinutes,
	)
	return s.sendTextEmail(toEmail, subject, body)
}

// OfertaStatusEmailInput holds the fields rendered into an offer status mail.
type OfertaStatusEmailInput struct {
	CargaTitulo   string
	Origem        string
	Destino       string
	Valor         models.Money
	Status        string
	Transportador string
}

// SendOfertaStatusEmail notifies the shipper or carrier about an offer event.
func (s *EmailService) SendOfertaStatusEmail(toEmail string, input OfertaStatusEmailInput) error {
	subject, body := buildOfertaStatusContent(input)
	return s.sendTextEmail(toEmail, subject, body)
}

// CargaStatusEmailInput holds the fields rendered into a load status mail.
type CargaStatusEmailInput struct {
	CargaTitulo string
	Origem      string
	Destino     string
	Status      string
}

// SendCargaStatusEmail notifies the counterpart about a load status change.
func (s *EmailService) SendCargaStatusEmail(toEmail string, input CargaStatusEmailInput) error {
	subject := fmt.Sprintf("FreteHub - Carga %q: %s", input.CargaTitulo, statusLabel(input.Status))
	body := fmt.Sprintf(
		"A carga %q (%s -> %s) mudou de situação: %s.",
		input.CargaTitulo, input.Origem, input.Destino, statusLabel(input.Status),
	)
	return s.sendTextEmail(toEmail, subject, body)
}

func buildOfertaStatusContent(input OfertaStatusEmailInput) (string, string) {
	label := statusLabel(input.Status)
	subject := fmt.Sprintf("FreteHub - Oferta %s: %s", label, input.CargaTitulo)
	var body string
	switch input.Status {
	case constants.OfertaStatusPendente:
		body = fmt.Sprintf(
			"O transportador %s fez uma oferta de R$ %s para a carga %q (%s -> %s).",
			input.Transportador, input.Valor.String(), input.CargaTitulo, input.Origem, input.Destino,
		)
	case constants.OfertaStatusAceita:
		body = fmt.Sprintf(
			"Sua oferta de R$ %s para a carga %q (%s -> %s) foi aceita.",
			input.Valor.String(), input.CargaTitulo, input.Origem, input.Destino,
		)
	case constants.OfertaStatusRecusada:
		body = fmt.Sprintf(
			"Sua oferta de R$ %s para a carga %q (%s -> %s) foi recusada.",
			input.Valor.String(), input.CargaTitulo, input.Origem, input.Destino,
		)
	default:
		body = fmt.Sprintf(
			"A oferta de R$ %s para a carga %q (%s -> %s) mudou de situação: %s.",
			input.Valor.String(), input.CargaTitulo, input.Origem, input.Destino, label,
		)
	}
	return subject, body
}

func statusLabel(status string) string {
	switch status {
	case constants.CargaStatusAberta:
		return "aberta"
	case constants.CargaStatusEmNegociacao:
		return "em negociação"
	case constants.CargaStatusAceita:
		return "aceita"
	case constants.CargaStatusEmTransporte:
		return "em transporte"
	case constants.CargaStatusEntregue:
		return "entregue"
	case constants.CargaStatusCancelada:
		return "cancelada"
	case constants.OfertaStatusPendente:
		return "recebida"
	case constants.OfertaStatusRecusada:
		return "recusada"
	default:
		return status
	}
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	return smtp.SendMail(addr, auth, s.cfg.From, []string{toEmail}, []byte(msg))
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}
