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

func setupEnderecoServiceTest(t *testing.T, name string) (*EnderecoService, uint) {
	t.Helper()
	dsn := fmt.Sprintf("file:endereco_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Usuario{}, &models.Endereco{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	usuario := models.Usuario{Email: "user@test.dev", Senha: "x", TipoUsuario: constants.TipoUsuarioEmbarcador, Nome: "User"}
	if err := db.Create(&usuario).Error; err != nil {
		t.Fatalf("create usuario failed: %v", err)
	}
	return NewEnderecoService(repository.NewEnderecoRepository(db)), usuario.ID
}

func enderecoInput(usuarioID uint, principal bool) CreateEnderecoInput {
	return CreateEnderecoInput{
		UsuarioID:  usuarioID,
		Tipo:       constants.EnderecoTipoComercial,
		CEP:        "01310-100",
		Logradouro: "Avenida Paulista",
		Numero:     "1000",
		Bairro:     "Bela Vista",
		Cidade:     "Sao Paulo",
		Estado:     "sp",
		Principal:  principal,
	}
}

func TestFirstEnderecoBecomesPrincipal(t *testing.T) {
	svc, usuarioID := setupEnderecoServiceTest(t, "first")

	endereco, err := svc.Create(enderecoInput(usuarioID, false))
	if err != nil {
		t.Fatalf("create endereco failed: %v", err)
	}
	if !endereco.Principal {
		t.Fatalf("expected first address to be principal")
	}
	if endereco.CEP != "01310100" || endereco.Estado != "SP" {
		t.Fatalf("expected normalized cep/estado, got %s/%s", endereco.CEP, endereco.Estado)
	}
}

func TestPromoteEnderecoDemotesCurrent(t *testing.T) {
	svc, usuarioID := setupEnderecoServiceTest(t, "promote")

	primeiro, err := svc.Create(enderecoInput(usuarioID, false))
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	segundo, err := svc.Create(enderecoInput(usuarioID, false))
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}
	if segundo.Principal {
		t.Fatalf("second address should not start as principal")
	}

	principal := true
	promovido, err := svc.Update(segundo.ID, usuarioID, UpdateEnderecoInput{Principal: &principal})
	if err != nil {
		t.Fatalf("promote failed: %v", err)
	}
	if !promovido.Principal {
		t.Fatalf("expected promoted address to be principal")
	}
	antigo, err := svc.GetByID(primeiro.ID, usuarioID)
	if err != nil {
		t.Fatalf("reload first failed: %v", err)
	}
	if antigo.Principal {
		t.Fatalf("expected old principal to be demoted")
	}
}

func TestUnsetOnlyPrincipalRejected(t *testing.T) {
	svc, usuarioID := setupEnderecoServiceTest(t, "unset")

	endereco, err := svc.Create(enderecoInput(usuarioID, true))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	principal := false
	if _, err := svc.Update(endereco.ID, usuarioID, UpdateEnderecoInput{Principal: &principal}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got: %v", err)
	}
}

func TestDeletePrincipalPromotesLowestID(t *testing.T) {
	svc, usuarioID := setupEnderecoServiceTest(t, "delete")

	primeiro, err := svc.Create(enderecoInput(usuarioID, false))
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	segundo, err := svc.Create(enderecoInput(usuarioID, false))
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}
	terceiro, err := svc.Create(enderecoInput(usuarioID, false))
	if err != nil {
		t.Fatalf("create third failed: %v", err)
	}

	if err := svc.Delete(primeiro.ID, usuarioID); err != nil {
		t.Fatalf("delete principal failed: %v", err)
	}

	promovido, err := svc.GetByID(segundo.ID, usuarioID)
	if err != nil {
		t.Fatalf("reload second failed: %v", err)
	}
	if !promovido.Principal {
		t.Fatalf("expected lowest remaining id to be promoted")
	}
	outro, err := svc.GetByID(terceiro.ID, usuarioID)
	if err != nil {
		t.Fatalf("reload third failed: %v", err)
	}
	if outro.Principal {
		t.Fatalf("expected third address to stay secondary")
	}
}

func TestGetEnderecoForeignOwnerNotFound(t *testing.T) {
	svc, usuarioID := setupEnderecoServiceTest(t, "owner")

	endereco, err := svc.Create(enderecoInput(usuarioID, false))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.GetByID(endereco.ID, usuarioID+99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for foreign owner, got: %v", err)
	}
}

func TestSetAsPrincipalSwapsFlag(t *testing.T) {
	svc, usuarioID := setupEnderecoServiceTest(t, "set_principal")

	primeiro, err := svc.Create(enderecoInput(usuarioID, false))
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	segundo, err := svc.Create(enderecoInput(usuarioID, false))
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}

	promoted, err := svc.SetAsPrincipal(segundo.ID, usuarioID)
	if err != nil {
		t.Fatalf("set as principal failed: %v", err)
	}
	if !promoted.Principal {
		t.Fatalf("expected promoted address to be principal")
	}
	antigo, err := svc.GetByID(primeiro.ID, usuarioID)
	if err != nil {
		t.Fatalf("reload first failed: %v", err)
	}
	if antigo.Principal {
		t.Fatalf("expected previous principal to be demoted")
	}

	again, err := svc.SetAsPrincipal(segundo.ID, usuarioID)
	if err != nil {
		t.Fatalf("repeat set as principal failed: %v", err)
	}
	if !again.Principal {
		t.Fatalf("expected promotion to be stable on repeat")
	}
}
