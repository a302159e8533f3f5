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

type cargaTestEnv struct {
	db            *gorm.DB
	svc           *CargaService
	embarcador    models.Embarcador
	transportador models.Transportador
}

func setupCargaServiceTest(t *testing.T, name string) *cargaTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:carga_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Usuario{},
		&models.Embarcador{},
		&models.Transportador{},
		&models.Carga{},
		&models.Oferta{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	env := &cargaTestEnv{
		db: db,
		svc: NewCargaService(
			repository.NewCargaRepository(db),
			repository.NewOfertaRepository(db),
			repository.NewEmbarcadorRepository(db),
			repository.NewTransportadorRepository(db),
			nil,
		),
	}

	shipper := models.Usuario{Email: "shipper@test.dev", Senha: "x", TipoUsuario: constants.TipoUsuarioEmbarcador, Nome: "Shipper"}
	carrier := models.Usuario{Email: "carrier@test.dev", Senha: "x", TipoUsuario: constants.TipoUsuarioTransportador, Nome: "Carrier"}
	for _, u := range []*models.Usuario{&shipper, &carrier} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("create usuario failed: %v", err)
		}
	}
	env.embarcador = models.Embarcador{UsuarioID: shipper.ID}
	env.transportador = models.Transportador{UsuarioID: carrier.ID, TipoTransportador: constants.TipoTransportadorAutonomo}
	if err := db.Create(&env.embarcador).Error; err != nil {
		t.Fatalf("create embarcador failed: %v", err)
	}
	if err := db.Create(&env.transportador).Error; err != nil {
		t.Fatalf("create transportador failed: %v", err)
	}
	return env
}

func (e *cargaTestEnv) createInput() CreateCargaInput {
	return CreateCargaInput{
		EmbarcadorID:   e.embarcador.ID,
		Titulo:         "Paletes SP-MG",
		TipoMercadoria: "geral",
		Peso:           2500,
		OrigemCEP:      "01310-100",
		OrigemCidade:   "Sao Paulo",
		OrigemEstado:   "sp",
		DestinoCEP:     "30110012",
		DestinoCidade:  "Belo Horizonte",
		DestinoEstado:  "MG",
		DataColeta:     time.Now().AddDate(0, 0, 3),
		DataEntrega:    time.Now().AddDate(0, 0, 5),
	}
}

func TestCreateCargaStartsOpen(t *testing.T) {
	env := setupCargaServiceTest(t, "create")

	carga, err := env.svc.Create(env.createInput())
	if err != nil {
		t.Fatalf("create carga failed: %v", err)
	}
	if carga.Status != constants.CargaStatusAberta {
		t.Fatalf("expected aberta, got %s", carga.Status)
	}
	if carga.OrigemCEP != "01310100" {
		t.Fatalf("expected normalized cep, got %s", carga.OrigemCEP)
	}
	if carga.OrigemEstado != "SP" {
		t.Fatalf("expected normalized estado, got %s", carga.OrigemEstado)
	}
}

func TestCreateCargaRejectsInvertedDates(t *testing.T) {
	env := setupCargaServiceTest(t, "dates")

	input := env.createInput()
	input.DataEntrega = input.DataColeta.AddDate(0, 0, -1)
	if _, err := env.svc.Create(input); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got: %v", err)
	}
}

func TestUpdateCargaOwnershipImmutable(t *testing.T) {
	env := setupCargaServiceTest(t, "immutable")

	carga, err := env.svc.Create(env.createInput())
	if err != nil {
		t.Fatalf("create carga failed: %v", err)
	}
	other := uint(42)
	_, err = env.svc.Update(carga.ID, env.embarcador.ID, UpdateCargaInput{EmbarcadorID: &other})
	if !errors.Is(err, ErrImmutableField) {
		t.Fatalf("expected immutable field error, got: %v", err)
	}
}

func TestUpdateCargaForeignShipperForbidden(t *testing.T) {
	env := setupCargaServiceTest(t, "foreign")

	carga, err := env.svc.Create(env.createInput())
	if err != nil {
		t.Fatalf("create carga failed: %v", err)
	}
	titulo := "Novo titulo"
	_, err = env.svc.Update(carga.ID, env.embarcador.ID+99, UpdateCargaInput{Titulo: &titulo})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden, got: %v", err)
	}
}

func TestUpdateCargaClosedRejected(t *testing.T) {
	env := setupCargaServiceTest(t, "update_closed")

	carga, err := env.svc.Create(env.createInput())
	if err != nil {
		t.Fatalf("create carga failed: %v", err)
	}
	if err := env.db.Model(&models.Carga{}).Where("id = ?", carga.ID).
		Update("status", constants.CargaStatusAceita).Error; err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	titulo := "Novo titulo"
	_, err = env.svc.Update(carga.ID, env.embarcador.ID, UpdateCargaInput{Titulo: &titulo})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got: %v", err)
	}
}

func TestCancelCargaRejectsPendingOfertas(t *testing.T) {
	env := setupCargaServiceTest(t, "cancel")

	carga, err := env.svc.Create(env.createInput())
	if err != nil {
		t.Fatalf("create carga failed: %v", err)
	}
	oferta := models.Oferta{
		CargaID:         carga.ID,
		TransportadorID: env.transportador.ID,
		Status:          constants.OfertaStatusPendente,
		DataOferta:      time.Now(),
	}
	if err := env.db.Create(&oferta).Error; err != nil {
		t.Fatalf("create oferta failed: %v", err)
	}
	if err := env.db.Model(&models.Carga{}).Where("id = ?", carga.ID).
		Update("status", constants.CargaStatusEmNegociacao).Error; err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	cancelada, err := env.svc.Cancel(carga.ID, env.embarcador.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelada.Status != constants.CargaStatusCancelada {
		t.Fatalf("expected cancelada, got %s", cancelada.Status)
	}
	var reloaded models.Oferta
	if err := env.db.First(&reloaded, oferta.ID).Error; err != nil {
		t.Fatalf("reload oferta failed: %v", err)
	}
	if reloaded.Status != constants.OfertaStatusRecusada || reloaded.DataResposta == nil {
		t.Fatalf("expected rejected oferta with resposta, got %+v", reloaded)
	}
}

func TestCancelDeliveredCargaRejected(t *testing.T) {
	env := setupCargaServiceTest(t, "cancel_delivered")

	carga, err := env.svc.Create(env.createInput())
	if err != nil {
		t.Fatalf("create carga failed: %v", err)
	}
	if err := env.db.Model(&models.Carga{}).Where("id = ?", carga.ID).
		Update("status", constants.CargaStatusEntregue).Error; err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if _, err := env.svc.Cancel(carga.ID, env.embarcador.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got: %v", err)
	}
}

func TestSetStatusTransportProgress(t *testing.T) {
	env := setupCargaServiceTest(t, "progress")

	carga, err := env.svc.Create(env.createInput())
	if err != nil {
		t.Fatalf("create carga failed: %v", err)
	}
	if err := env.db.Model(&models.Carga{}).Where("id = ?", carga.ID).Updates(map[string]interface{}{
		"status":           constants.CargaStatusAceita,
		"transportador_id": env.transportador.ID,
	}).Error; err != nil {
		t.Fatalf("bind transportador failed: %v", err)
	}

	if _, err := env.svc.SetStatus(carga.ID, env.transportador.ID, constants.CargaStatusEntregue); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid jump to entregue, got: %v", err)
	}
	if _, err := env.svc.SetStatus(carga.ID, env.transportador.ID+99, constants.CargaStatusEmTransporte); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for foreign carrier, got: %v", err)
	}

	emTransporte, err := env.svc.SetStatus(carga.ID, env.transportador.ID, constants.CargaStatusEmTransporte)
	if err != nil {
		t.Fatalf("set em_transporte failed: %v", err)
	}
	if emTransporte.Status != constants.CargaStatusEmTransporte {
		t.Fatalf("expected em_transporte, got %s", emTransporte.Status)
	}
	entregue, err := env.svc.SetStatus(carga.ID, env.transportador.ID, constants.CargaStatusEntregue)
	if err != nil {
		t.Fatalf("set entregue failed: %v", err)
	}
	if entregue.Status != constants.CargaStatusEntregue {
		t.Fatalf("expected entregue, got %s", entregue.Status)
	}
}

func TestListCargasHidesCanceledByDefault(t *testing.T) {
	env := setupCargaServiceTest(t, "list")

	aberta, err := env.svc.Create(env.createInput())
	if err != nil {
		t.Fatalf("create carga failed: %v", err)
	}
	input := env.createInput()
	input.Titulo = "Carga cancelada"
	cancelada, err := env.svc.Create(input)
	if err != nil {
		t.Fatalf("create second carga failed: %v", err)
	}
	if _, err := env.svc.Cancel(cancelada.ID, env.embarcador.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	cargas, total, err := env.svc.List(ListCargasInput{Page: 1, PageSize: 10, EmbarcadorID: env.embarcador.ID})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(cargas) != 1 || cargas[0].ID != aberta.ID {
		t.Fatalf("expected only the open carga, got total=%d cargas=%+v", total, cargas)
	}

	canceladas, total, err := env.svc.List(ListCargasInput{
		Page:         1,
		PageSize:     10,
		EmbarcadorID: env.embarcador.ID,
		Status:       constants.CargaStatusCancelada,
	})
	if err != nil {
		t.Fatalf("list canceled failed: %v", err)
	}
	if total != 1 || len(canceladas) != 1 || canceladas[0].ID != cancelada.ID {
		t.Fatalf("expected the canceled carga, got total=%d", total)
	}
}

func TestListCargasUnknownStatusRejected(t *testing.T) {
	env := setupCargaServiceTest(t, "list_status")

	if _, _, err := env.svc.List(ListCargasInput{Page: 1, PageSize: 10, Status: "viajando"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got: %v", err)
	}
}

func TestListCargasPagination(t *testing.T) {
	env := setupCargaServiceTest(t, "pagination")

	for i := 0; i < 5; i++ {
		input := env.createInput()
		input.Titulo = fmt.Sprintf("Carga %d", i)
		if _, err := env.svc.Create(input); err != nil {
			t.Fatalf("create carga %d failed: %v", i, err)
		}
	}

	primeira, total, err := env.svc.List(ListCargasInput{Page: 1, PageSize: 2, EmbarcadorID: env.embarcador.ID})
	if err != nil {
		t.Fatalf("list page 1 failed: %v", err)
	}
	if total != 5 || len(primeira) != 2 {
		t.Fatalf("expected total=5 page of 2, got total=%d len=%d", total, len(primeira))
	}

	ultima, total, err := env.svc.List(ListCargasInput{Page: 3, PageSize: 2, EmbarcadorID: env.embarcador.ID})
	if err != nil {
		t.Fatalf("list page 3 failed: %v", err)
	}
	if total != 5 || len(ultima) != 1 {
		t.Fatalf("expected last page of 1, got total=%d len=%d", total, len(ultima))
	}
	if ultima[0].ID == primeira[0].ID || ultima[0].ID == primeira[1].ID {
		t.Fatalf("expected pages to be disjoint")
	}
}

func TestListOpenForQuotingForcesAberta(t *testing.T) {
	env := setupCargaServiceTest(t, "quoting")

	aberta, err := env.svc.Create(env.createInput())
	if err != nil {
		t.Fatalf("create carga failed: %v", err)
	}
	input := env.createInput()
	input.Titulo = "Carga em negociacao"
	negociada, err := env.svc.Create(input)
	if err != nil {
		t.Fatalf("create second carga failed: %v", err)
	}
	if err := env.db.Model(&models.Carga{}).Where("id = ?", negociada.ID).
		Update("status", constants.CargaStatusEmNegociacao).Error; err != nil {
		t.Fatalf("move carga to negotiation failed: %v", err)
	}

	cargas, total, err := env.svc.ListOpenForQuoting(ListCargasInput{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list open for quoting failed: %v", err)
	}
	if total != 1 || len(cargas) != 1 || cargas[0].ID != aberta.ID {
		t.Fatalf("expected only the open carga, got total=%d", total)
	}
}
