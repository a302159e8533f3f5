package service

import (
	"net/mail"
	"strings"
	"time"

	"github.com/fretehub/fretehub/internal/constants"
	"github.com/fretehub/fretehub/internal/logger"
	"github.com/fretehub/fretehub/internal/models"
	"github.com/fretehub/fretehub/internal/repository"

	"gorm.io/gorm"
)

// CadastroService registers accounts together with their role profile in a
// single transaction.
type CadastroService struct {
	usuarioRepo       repository.UsuarioRepository
	embarcadorRepo    repository.EmbarcadorRepository
	transportadorRepo repository.TransportadorRepository
	authService       *AuthService
	emailService      *EmailService
	tokens            TokenIssuer
}

// NewCadastroService creates the registration service.
func NewCadastroService(
	usuarioRepo repository.UsuarioRepository,
	embarcadorRepo repository.EmbarcadorRepository,
	transportadorRepo repository.TransportadorRepository,
	authService *AuthService,
	emailService *EmailService,
	tokens TokenIssuer,
) *CadastroService {
	return &CadastroService{
		usuarioRepo:       usuarioRepo,
		embarcadorRepo:    embarcadorRepo,
		transportadorRepo: transportadorRepo,
		authService:       authService,
		emailService:      emailService,
		tokens:            tokens,
	}
}

// RegisterUsuarioInput carries the shared account fields.
type RegisterUsuarioInput struct {
	Email         string
	Senha         string
	Nome          string
	Telefone      string
	Documento     string
	DocumentoTipo string
}

// RegisterEmbarcadorInput registers a shipper.
type RegisterEmbarcadorInput struct {
	RegisterUsuarioInput
	RazaoSocial            string
	NomeFantasia           string
	InscricaoEstadual      string
	Segmento               string
	Site                   string
	QuantidadeFuncionarios *int
	VolumeMedioCargas      *int
}

// RegisterTransportadorInput registers a carrier.
type RegisterTransportadorInput struct {
	RegisterUsuarioInput
	RazaoSocial       string
	NomeFantasia      string
	InscricaoEstadual string
	ANTT              string
	TipoTransportador string
	AnosExperiencia   *int
	PossuiFrota       bool
}

// RegisterEmbarcador creates the user and its shipper profile atomically.
func (s *CadastroService) RegisterEmbarcador(input RegisterEmbarcadorInput) (*models.Embarcador, error) {
	usuario, err := s.buildUsuario(input.RegisterUsuarioInput, constants.TipoUsuarioEmbarcador)
	if err != nil {
		return nil, err
	}

	embarcador := &models.Embarcador{
		RazaoSocial:            strings.TrimSpace(input.RazaoSocial),
		NomeFantasia:           strings.TrimSpace(input.NomeFantasia),
		InscricaoEstadual:      strings.TrimSpace(input.InscricaoEstadual),
		Segmento:               strings.TrimSpace(input.Segmento),
		Site:                   strings.TrimSpace(input.Site),
		QuantidadeFuncionarios: input.QuantidadeFuncionarios,
		VolumeMedioCargas:      input.VolumeMedioCargas,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		usuarioRepo := s.usuarioRepo.WithTx(tx)
		embarcadorRepo := s.embarcadorRepo.WithTx(tx)
		if err := usuarioRepo.Create(usuario); err != nil {
			return err
		}
		embarcador.UsuarioID = usuario.ID
		return embarcadorRepo.Create(embarcador)
	})
	if err != nil {
		return nil, err
	}

	embarcador.Usuario = usuario
	s.sendVerificacao(usuario)
	return embarcador, nil
}

// RegisterTransportador creates the user and its carrier profile atomically.
func (s *CadastroService) RegisterTransportador(input RegisterTransportadorInput) (*models.Transportador, error) {
	usuario, err := s.buildUsuario(input.RegisterUsuarioInput, constants.TipoUsuarioTransportador)
	if err != nil {
		return nil, err
	}

	tipo := strings.TrimSpace(input.TipoTransportador)
	switch tipo {
	case constants.TipoTransportadorAutonomo, constants.TipoTransportadorEmpresa, constants.TipoTransportadorCooperativa:
	case "":
		tipo = constants.TipoTransportadorAutonomo
	default:
		return nil, validationError("tipo_transportador", "unknown carrier type")
	}

	transportador := &models.Transportador{
		RazaoSocial:       strings.TrimSpace(input.RazaoSocial),
		NomeFantasia:      strings.TrimSpace(input.NomeFantasia),
		InscricaoEstadual: strings.TrimSpace(input.InscricaoEstadual),
		ANTT:              strings.TrimSpace(input.ANTT),
		TipoTransportador: tipo,
		AnosExperiencia:   input.AnosExperiencia,
		PossuiFrota:       input.PossuiFrota,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		usuarioRepo := s.usuarioRepo.WithTx(tx)
		transportadorRepo := s.transportadorRepo.WithTx(tx)
		if err := usuarioRepo.Create(usuario); err != nil {
			return err
		}
		transportador.UsuarioID = usuario.ID
		return transportadorRepo.Create(transportador)
	})
	if err != nil {
		return nil, err
	}

	transportador.Usuario = usuario
	s.sendVerificacao(usuario)
	return transportador, nil
}

func (s *CadastroService) buildUsuario(input RegisterUsuarioInput, tipoUsuario string) (*models.Usuario, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, validationError("email", "invalid email address")
	}
	nome := strings.TrimSpace(input.Nome)
	if nome == "" {
		return nil, validationError("nome", "nome is required")
	}
	docTipo := strings.ToLower(strings.TrimSpace(input.DocumentoTipo))
	if docTipo != constants.DocumentoTipoCPF && docTipo != constants.DocumentoTipoCNPJ {
		return nil, validationError("documento_tipo", "documento_tipo must be cpf or cnpj")
	}
	if err := s.authService.ValidatePassword(input.Senha); err != nil {
		return nil, err
	}

	existing, err := s.usuarioRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := s.authService.HashPassword(input.Senha)
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.NewToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expires := now.Add(constants.VerifyTokenExpireHours * time.Hour)
	return &models.Usuario{
		Email:              email,
		Senha:              hash,
		TipoUsuario:        tipoUsuario,
		Nome:               nome,
		Telefone:           strings.TrimSpace(input.Telefone),
		Documento:          strings.TrimSpace(input.Documento),
		DocumentoTipo:      docTipo,
		Verificado:         false,
		TokenVerificacao:   &token,
		DataExpiracaoToken: &expires,
		Ativo:              true,
	}, nil
}

func (s *CadastroService) sendVerificacao(usuario *models.Usuario) {
	if s.emailService == nil || usuario.TokenVerificacao == nil {
		return
	}
	if err := s.emailService.SendVerificacao(usuario.Email, usuario.Nome, *usuario.TokenVerificacao); err != nil {
		logger.Warnw("verificacao_email_failed",
			"usuario_id", usuario.ID,
			"error", err,
		)
	}
}
