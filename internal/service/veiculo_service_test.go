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

func setupVeiculoServiceTest(t *testing.T, name string) (*VeiculoService, uint) {
	t.Helper()
	dsn := fmt.Sprintf("file:veiculo_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Usuario{}, &models.Transportador{}, &models.Veiculo{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	usuario := models.Usuario{Email: "carrier@test.dev", Senha: "x", TipoUsuario: constants.TipoUsuarioTransportador, Nome: "Carrier"}
	if err := db.Create(&usuario).Error; err != nil {
		t.Fatalf("create usuario failed: %v", err)
	}
	transportador := models.Transportador{UsuarioID: usuario.ID, TipoTransportador: constants.TipoTransportadorAutonomo}
	if err := db.Create(&transportador).Error; err != nil {
		t.Fatalf("create transportador failed: %v", err)
	}
	svc := NewVeiculoService(repository.NewVeiculoRepository(db), repository.NewTransportadorRepository(db))
	return svc, transportador.ID
}

func veiculoInput(transportadorID uint, placa string) CreateVeiculoInput {
	return CreateVeiculoInput{
		TransportadorID: transportadorID,
		Placa:           placa,
		Tipo:            constants.VeiculoTipoCaminhao,
		Marca:           "Volvo",
		Modelo:          "FH 460",
		Ano:             2021,
	}
}

func TestCreateVeiculoNormalizesPlaca(t *testing.T) {
	svc, transportadorID := setupVeiculoServiceTest(t, "normalize")

	veiculo, err := svc.Create(veiculoInput(transportadorID, "abc-1d23"))
	if err != nil {
		t.Fatalf("create veiculo failed: %v", err)
	}
	if veiculo.Placa != "ABC1D23" {
		t.Fatalf("expected normalized placa, got %s", veiculo.Placa)
	}
	if !veiculo.Ativo {
		t.Fatalf("expected new vehicle to be active")
	}
}

func TestCreateVeiculoDuplicatePlacaRejected(t *testing.T) {
	svc, transportadorID := setupVeiculoServiceTest(t, "duplicate")

	if _, err := svc.Create(veiculoInput(transportadorID, "ABC1D23")); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(veiculoInput(transportadorID, "abc1d23")); !errors.Is(err, ErrPlacaExists) {
		t.Fatalf("expected placa exists error, got: %v", err)
	}
}

func TestDeactivateFreesPlaca(t *testing.T) {
	svc, transportadorID := setupVeiculoServiceTest(t, "deactivate")

	veiculo, err := svc.Create(veiculoInput(transportadorID, "ABC1D23"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Deactivate(veiculo.ID, transportadorID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := svc.GetByID(veiculo.ID, transportadorID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deactivated vehicle to be hidden, got: %v", err)
	}
	if _, err := svc.Create(veiculoInput(transportadorID, "ABC1D23")); err != nil {
		t.Fatalf("expected freed placa to be reusable, got: %v", err)
	}
}

func TestUpdateVeiculoNothingToUpdate(t *testing.T) {
	svc, transportadorID := setupVeiculoServiceTest(t, "nothing")

	veiculo, err := svc.Create(veiculoInput(transportadorID, "ABC1D23"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Update(veiculo.ID, transportadorID, UpdateVeiculoInput{}); !errors.Is(err, ErrNothingToUpdate) {
		t.Fatalf("expected nothing to update, got: %v", err)
	}
}

func TestListVeiculosOnlyActive(t *testing.T) {
	svc, transportadorID := setupVeiculoServiceTest(t, "list")

	ativo, err := svc.Create(veiculoInput(transportadorID, "ABC1D23"))
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	desativado, err := svc.Create(veiculoInput(transportadorID, "XYZ9A88"))
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}
	if err := svc.Deactivate(desativado.ID, transportadorID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	veiculos, err := svc.ListByTransportador(transportadorID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(veiculos) != 1 || veiculos[0].ID != ativo.ID {
		t.Fatalf("expected only the active vehicle, got %+v", veiculos)
	}
}
