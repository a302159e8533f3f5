package service

import (
	"strings"
	"time"

	"github.com/fretehub/fretehub/internal/constants"
	"github.com/fretehub/fretehub/internal/logger"
	"github.com/fretehub/fretehub/internal/models"
	"github.com/fretehub/fretehub/internal/repository"

	"gorm.io/gorm"
)

// UsuarioService handles account lifecycle: login, sessions, email
// verification and password reset.
type UsuarioService struct {
	usuarioRepo  repository.UsuarioRepository
	sessaoRepo   repository.SessaoRepository
	resetRepo    repository.ResetSenhaRepository
	authService  *AuthService
	emailService *EmailService
	tokens       TokenIssuer
}

// NewUsuarioService creates the account service.
func NewUsuarioService(
	usuarioRepo repository.UsuarioRepository,
	sessaoRepo repository.SessaoRepository,
	resetRepo repository.ResetSenhaRepository,
	authService *AuthService,
	emailService *EmailService,
	tokens TokenIssuer,
) *UsuarioService {
	return &UsuarioService{
		usuarioRepo:  usuarioRepo,
		sessaoRepo:   sessaoRepo,
		resetRepo:    resetRepo,
		authService:  authService,
		emailService: emailService,
		tokens:       tokens,
	}
}

// LoginResult is what a successful login returns.
type LoginResult struct {
	Usuario   *models.Usuario
	Token     string
	ExpiresAt time.Time
}

// Login authenticates by email and password and opens a session.
func (s *UsuarioService) Login(email, senha string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	usuario, err := s.usuarioRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, ErrInvalidCredentials
	}
	if !usuario.Ativo {
		return nil, ErrUserInactive
	}
	if err := s.authService.VerifyPassword(usuario.Senha, senha); err != nil {
		return nil, ErrInvalidCredentials
	}

	sessionToken, err := s.tokens.NewToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	sessao := &models.Sessao{
		UsuarioID:     usuario.ID,
		Token:         sessionToken,
		DataCriacao:   now,
		DataExpiracao: now.AddDate(0, 0, constants.SessionExpireDays),
	}
	if err := s.sessaoRepo.Create(sessao); err != nil {
		return nil, err
	}

	jwtToken, expiresAt, err := s.authService.GenerateJWT(usuario, sessionToken)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Usuario: usuario, Token: jwtToken, ExpiresAt: expiresAt}, nil
}

// Logout closes the session bound to the access token.
func (s *UsuarioService) Logout(sessionToken string) error {
	if strings.TrimSpace(sessionToken) == "" {
		return nil
	}
	return s.sessaoRepo.DeleteByToken(sessionToken)
}

// ValidateSession checks that a session exists and has not expired.
func (s *UsuarioService) ValidateSession(sessionToken string) (*models.Sessao, error) {
	sessao, err := s.sessaoRepo.GetByToken(sessionToken)
	if err != nil {
		return nil, err
	}
	if sessao == nil || time.Now().After(sessao.DataExpiracao) {
		return nil, ErrTokenInvalid
	}
	return sessao, nil
}

// GetByID fetches a user or ErrNotFound.
func (s *UsuarioService) GetByID(id uint) (*models.Usuario, error) {
	usuario, err := s.usuarioRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, ErrNotFound
	}
	return usuario, nil
}

// UpdateProfileInput carries the mutable account fields.
type UpdateProfileInput struct {
	Nome       *string
	Telefone   *string
	FotoPerfil *string
}

// UpdateProfile applies a partial update to the account fields a user may
// change. Email, document and user type stay fixed.
func (s *UsuarioService) UpdateProfile(id uint, input UpdateProfileInput) (*models.Usuario, error) {
	usuario, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Nome != nil {
		nome := strings.TrimSpace(*input.Nome)
		if nome == "" {
			return nil, validationError("nome", "nome is required")
		}
		updates["nome"] = nome
	}
	if input.Telefone != nil {
		updates["telefone"] = strings.TrimSpace(*input.Telefone)
	}
	if input.FotoPerfil != nil {
		updates["foto_perfil"] = strings.TrimSpace(*input.FotoPerfil)
	}
	if len(updates) == 0 {
		return nil, ErrNothingToUpdate
	}
	if err := s.usuarioRepo.Update(usuario.ID, updates); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// ChangePassword verifies the current password and sets a new one, closing
// every open session of the user.
func (s *UsuarioService) ChangePassword(id uint, senhaAtual, senhaNova string) error {
	usuario, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.authService.VerifyPassword(usuario.Senha, senhaAtual); err != nil {
		return ErrInvalidCredentials
	}
	if err := s.authService.ValidatePassword(senhaNova); err != nil {
		return err
	}
	hash, err := s.authService.HashPassword(senhaNova)
	if err != nil {
		return err
	}
	if err := s.usuarioRepo.Update(usuario.ID, map[string]interface{}{"senha": hash}); err != nil {
		return err
	}
	return s.sessaoRepo.DeleteByUsuario(usuario.ID)
}

// VerifyEmail confirms an account by its verification token.
func (s *UsuarioService) VerifyEmail(token string) error {
	usuario, err := s.usuarioRepo.GetByTokenVerificacao(strings.TrimSpace(token))
	if err != nil {
		return err
	}
	if usuario == nil {
		return ErrTokenInvalid
	}
	if usuario.DataExpiracaoToken != nil && time.Now().After(*usuario.DataExpiracaoToken) {
		return ErrTokenInvalid
	}
	return s.usuarioRepo.Update(usuario.ID, map[string]interface{}{
		"verificado":           true,
		"token_verificacao":    nil,
		"data_expiracao_token": nil,
	})
}

// RequestPasswordReset issues a reset token and mails the link. A missing
// account is answered the same way as a known one.
func (s *UsuarioService) RequestPasswordReset(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	usuario, err := s.usuarioRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if usuario == nil || !usuario.Ativo {
		return nil
	}

	if err := s.resetRepo.InvalidateByUsuario(usuario.ID); err != nil {
		return err
	}
	token, err := s.tokens.NewToken()
	if err != nil {
		return err
	}
	now := time.Now()
	reset := &models.ResetSenha{
		UsuarioID:     usuario.ID,
		Token:         token,
		DataCriacao:   now,
		DataExpiracao: now.Add(constants.ResetTokenExpireMinutes * time.Minute),
	}
	if err := s.resetRepo.Create(reset); err != nil {
		return err
	}

	if s.emailService != nil {
		if err := s.emailService.SendResetSenha(usuario.Email, usuario.Nome, token); err != nil {
			logger.Warnw("reset_senha_email_failed",
				"usuario_id", usuario.ID,
				"error", err,
			)
		}
	}
	return nil
}

// ResetPassword consumes a reset token and sets the new password, closing
// every open session of the user.
func (s *UsuarioService) ResetPassword(token, senhaNova string) error {
	reset, err := s.resetRepo.GetByToken(strings.TrimSpace(token))
	if err != nil {
		return err
	}
	if reset == nil || time.Now().After(reset.DataExpiracao) {
		return ErrTokenInvalid
	}
	if reset.Usado {
		return ErrTokenUsed
	}
	if err := s.authService.ValidatePassword(senhaNova); err != nil {
		return err
	}
	hash, err := s.authService.HashPassword(senhaNova)
	if err != nil {
		return err
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		usuarioRepo := s.usuarioRepo.WithTx(tx)
		resetRepo := s.resetRepo.WithTx(tx)
		sessaoRepo := s.sessaoRepo.WithTx(tx)
		if err := usuarioRepo.Update(reset.UsuarioID, map[string]interface{}{"senha": hash}); err != nil {
			return err
		}
		if err := resetRepo.MarkUsed(reset.ID); err != nil {
			return err
		}
		return sessaoRepo.DeleteByUsuario(reset.UsuarioID)
	})
	return err
}
