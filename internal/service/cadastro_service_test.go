package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fretehub/fretehub/internal/constants"
	"github.com/fretehub/fretehub/internal/models"
	"github.com/fretehub/fretehub/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCadastroServiceTest(t *testing.T, name string) (*CadastroService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cadastro_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Usuario{}, &models.Embarcador{}, &models.Transportador{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewCadastroService(
		repository.NewUsuarioRepository(db),
		repository.NewEmbarcadorRepository(db),
		repository.NewTransportadorRepository(db),
		NewAuthService(testAuthConfig()),
		nil,
		NewRandomTokenIssuer(),
	)
	return svc, db
}

func registerInput(email string) RegisterUsuarioInput {
	return RegisterUsuarioInput{
		Email:         email,
		Senha:         "senha1234",
		Nome:          "Conta Teste",
		DocumentoTipo: constants.DocumentoTipoCNPJ,
		Documento:     "12345678000190",
	}
}

func TestRegisterEmbarcadorCreatesAccountAndProfile(t *testing.T) {
	svc, db := setupCadastroServiceTest(t, "embarcador")

	embarcador, err := svc.RegisterEmbarcador(RegisterEmbarcadorInput{
		RegisterUsuarioInput: registerInput("Shipper@Test.dev"),
		RazaoSocial:          "Distribuidora Teste LTDA",
	})
	if err != nil {
		t.Fatalf("register embarcador failed: %v", err)
	}
	if embarcador.Usuario == nil || embarcador.Usuario.Email != "shipper@test.dev" {
		t.Fatalf("expected lowered email, got %+v", embarcador.Usuario)
	}
	if embarcador.Usuario.TipoUsuario != constants.TipoUsuarioEmbarcador {
		t.Fatalf("expected embarcador account, got %s", embarcador.Usuario.TipoUsuario)
	}
	if embarcador.Usuario.Verificado {
		t.Fatalf("new account should start unverified")
	}
	if embarcador.Usuario.TokenVerificacao == nil || embarcador.Usuario.DataExpiracaoToken == nil {
		t.Fatalf("expected verification token to be issued")
	}

	var stored models.Embarcador
	if err := db.Where("usuario_id = ?", embarcador.Usuario.ID).First(&stored).Error; err != nil {
		t.Fatalf("profile not persisted: %v", err)
	}
}

func TestRegisterDuplicateEmailRejected(t *testing.T) {
	svc, _ := setupCadastroServiceTest(t, "duplicate")

	if _, err := svc.RegisterEmbarcador(RegisterEmbarcadorInput{
		RegisterUsuarioInput: registerInput("conta@test.dev"),
	}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	input := registerInput("conta@test.dev")
	input.DocumentoTipo = constants.DocumentoTipoCPF
	if _, err := svc.RegisterTransportador(RegisterTransportadorInput{
		RegisterUsuarioInput: input,
	}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected email exists error, got: %v", err)
	}
}

func TestRegisterTransportadorDefaultsTipo(t *testing.T) {
	svc, _ := setupCadastroServiceTest(t, "tipo")

	input := registerInput("carrier@test.dev")
	input.DocumentoTipo = constants.DocumentoTipoCPF
	transportador, err := svc.RegisterTransportador(RegisterTransportadorInput{
		RegisterUsuarioInput: input,
	})
	if err != nil {
		t.Fatalf("register transportador failed: %v", err)
	}
	if transportador.TipoTransportador != constants.TipoTransportadorAutonomo {
		t.Fatalf("expected autonomo default, got %s", transportador.TipoTransportador)
	}

	input.Email = "carrier2@test.dev"
	if _, err := svc.RegisterTransportador(RegisterTransportadorInput{
		RegisterUsuarioInput: input,
		TipoTransportador:    "frota-espacial",
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for unknown tipo, got: %v", err)
	}
}

func TestRegisterRejectsBadDocumentoTipo(t *testing.T) {
	svc, _ := setupCadastroServiceTest(t, "documento")

	input := registerInput("conta@test.dev")
	input.DocumentoTipo = "rg"
	if _, err := svc.RegisterEmbarcador(RegisterEmbarcadorInput{
		RegisterUsuarioInput: input,
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got: %v", err)
	}
}
