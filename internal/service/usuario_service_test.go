package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fretehub/fretehub/internal/config"
	"github.com/fretehub/fretehub/internal/constants"
	"github.com/fretehub/fretehub/internal/models"
	"github.com/fretehub/fretehub/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:   "test-secret-key-with-enough-entropy-0123456789",
			ExpireHours: 24,
		},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{
				MinLength:     8,
				RequireLower:  true,
				RequireNumber: true,
			},
		},
	}
}

type usuarioTestEnv struct {
	db      *gorm.DB
	svc     *UsuarioService
	auth    *AuthService
	usuario models.Usuario
}

func setupUsuarioServiceTest(t *testing.T, name string) *usuarioTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:usuario_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Usuario{}, &models.Sessao{}, &models.ResetSenha{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	auth := NewAuthService(testAuthConfig())
	svc := NewUsuarioService(
		repository.NewUsuarioRepository(db),
		repository.NewSessaoRepository(db),
		repository.NewResetSenhaRepository(db),
		auth,
		nil,
		NewRandomTokenIssuer(),
	)

	senha, err := auth.HashPassword("senha1234")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	usuario := models.Usuario{
		Email:       "user@test.dev",
		Senha:       senha,
		TipoUsuario: constants.TipoUsuarioEmbarcador,
		Nome:        "User",
		Ativo:       true,
	}
	if err := db.Create(&usuario).Error; err != nil {
		t.Fatalf("create usuario failed: %v", err)
	}
	return &usuarioTestEnv{db: db, svc: svc, auth: auth, usuario: usuario}
}

func TestLoginOpensSession(t *testing.T) {
	env := setupUsuarioServiceTest(t, "login")

	result, err := env.svc.Login("User@Test.dev ", "senha1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a jwt token")
	}

	claims, err := env.auth.ParseJWT(result.Token)
	if err != nil {
		t.Fatalf("parse jwt failed: %v", err)
	}
	if claims.UsuarioID != env.usuario.ID {
		t.Fatalf("expected claims for usuario %d, got %d", env.usuario.ID, claims.UsuarioID)
	}
	sessao, err := env.svc.ValidateSession(claims.Sessao)
	if err != nil {
		t.Fatalf("validate session failed: %v", err)
	}
	if sessao.UsuarioID != env.usuario.ID {
		t.Fatalf("session bound to wrong usuario: %d", sessao.UsuarioID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupUsuarioServiceTest(t, "wrong_password")

	if _, err := env.svc.Login("user@test.dev", "errada999"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got: %v", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	env := setupUsuarioServiceTest(t, "inactive")

	if err := env.db.Model(&models.Usuario{}).Where("id = ?", env.usuario.ID).
		Update("ativo", false).Error; err != nil {
		t.Fatalf("deactivate usuario failed: %v", err)
	}
	if _, err := env.svc.Login("user@test.dev", "senha1234"); !errors.Is(err, ErrUserInactive) {
		t.Fatalf("expected inactive user error, got: %v", err)
	}
}

func TestLogoutClosesSession(t *testing.T) {
	env := setupUsuarioServiceTest(t, "logout")

	result, err := env.svc.Login("user@test.dev", "senha1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, err := env.auth.ParseJWT(result.Token)
	if err != nil {
		t.Fatalf("parse jwt failed: %v", err)
	}
	if err := env.svc.Logout(claims.Sessao); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := env.svc.ValidateSession(claims.Sessao); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected invalid session after logout, got: %v", err)
	}
}

func TestVerifyEmailConsumesToken(t *testing.T) {
	env := setupUsuarioServiceTest(t, "verify")

	token := "verify-token-123"
	expira := time.Now().Add(constants.VerifyTokenExpireHours * time.Hour)
	if err := env.db.Model(&models.Usuario{}).Where("id = ?", env.usuario.ID).Updates(map[string]interface{}{
		"token_verificacao":    token,
		"data_expiracao_token": expira,
	}).Error; err != nil {
		t.Fatalf("seed token failed: %v", err)
	}

	if err := env.svc.VerifyEmail(token); err != nil {
		t.Fatalf("verify email failed: %v", err)
	}
	usuario, err := env.svc.GetByID(env.usuario.ID)
	if err != nil {
		t.Fatalf("reload usuario failed: %v", err)
	}
	if !usuario.Verificado || usuario.TokenVerificacao != nil {
		t.Fatalf("expected verified account with cleared token, got %+v", usuario)
	}
	if err := env.svc.VerifyEmail(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected invalid token on reuse, got: %v", err)
	}
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	env := setupUsuarioServiceTest(t, "verify_expired")

	token := "verify-token-expired"
	expira := time.Now().Add(-time.Hour)
	if err := env.db.Model(&models.Usuario{}).Where("id = ?", env.usuario.ID).Updates(map[string]interface{}{
		"token_verificacao":    token,
		"data_expiracao_token": expira,
	}).Error; err != nil {
		t.Fatalf("seed token failed: %v", err)
	}
	if err := env.svc.VerifyEmail(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected expired token to be rejected, got: %v", err)
	}
}

func TestResetPasswordSingleUse(t *testing.T) {
	env := setupUsuarioServiceTest(t, "reset")

	if err := env.svc.RequestPasswordReset("user@test.dev"); err != nil {
		t.Fatalf("request reset failed: %v", err)
	}
	var reset models.ResetSenha
	if err := env.db.Where("usuario_id = ?", env.usuario.ID).First(&reset).Error; err != nil {
		t.Fatalf("load reset token failed: %v", err)
	}

	if err := env.svc.ResetPassword(reset.Token, "novasenha99"); err != nil {
		t.Fatalf("reset password failed: %v", err)
	}
	if _, err := env.svc.Login("user@test.dev", "novasenha99"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if err := env.svc.ResetPassword(reset.Token, "outrasenha99"); !errors.Is(err, ErrTokenUsed) {
		t.Fatalf("expected used token error, got: %v", err)
	}
}

func TestRequestPasswordResetUnknownEmailSilent(t *testing.T) {
	env := setupUsuarioServiceTest(t, "reset_unknown")

	if err := env.svc.RequestPasswordReset("nobody@test.dev"); err != nil {
		t.Fatalf("expected silent success for unknown email, got: %v", err)
	}
	var count int64
	if err := env.db.Model(&models.ResetSenha{}).Count(&count).Error; err != nil {
		t.Fatalf("count reset tokens failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no reset token for unknown email, got %d", count)
	}
}

func TestChangePasswordClosesSessions(t *testing.T) {
	env := setupUsuarioServiceTest(t, "change_password")

	result, err := env.svc.Login("user@test.dev", "senha1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, err := env.auth.ParseJWT(result.Token)
	if err != nil {
		t.Fatalf("parse jwt failed: %v", err)
	}

	if err := env.svc.ChangePassword(env.usuario.ID, "senha1234", "novasenha99"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, err := env.svc.ValidateSession(claims.Sessao); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected old session closed, got: %v", err)
	}
	if _, err := env.svc.Login("user@test.dev", "novasenha99"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestChangePasswordWeakRejected(t *testing.T) {
	env := setupUsuarioServiceTest(t, "weak")

	if err := env.svc.ChangePassword(env.usuario.ID, "senha1234", "curta1"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected weak password error, got: %v", err)
	}
}
