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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ofertaTestEnv struct {
	db            *gorm.DB
	svc           *OfertaService
	embarcador    models.Embarcador
	transportador models.Transportador
	segundo       models.Transportador
	carga         models.Carga
}

func setupOfertaServiceTest(t *testing.T, name string) *ofertaTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:oferta_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
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

	env := &ofertaTestEnv{
		db: db,
		svc: NewOfertaService(
			repository.NewOfertaRepository(db),
			repository.NewCargaRepository(db),
			repository.NewTransportadorRepository(db),
			nil,
		),
	}

	shipper := models.Usuario{Email: "shipper@test.dev", Senha: "x", TipoUsuario: constants.TipoUsuarioEmbarcador, Nome: "Shipper"}
	carrier := models.Usuario{Email: "carrier@test.dev", Senha: "x", TipoUsuario: constants.TipoUsuarioTransportador, Nome: "Carrier"}
	carrier2 := models.Usuario{Email: "carrier2@test.dev", Senha: "x", TipoUsuario: constants.TipoUsuarioTransportador, Nome: "Carrier Two"}
	for _, u := range []*models.Usuario{&shipper, &carrier, &carrier2} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("create usuario failed: %v", err)
		}
	}

	env.embarcador = models.Embarcador{UsuarioID: shipper.ID}
	env.transportador = models.Transportador{UsuarioID: carrier.ID, TipoTransportador: constants.TipoTransportadorAutonomo}
	env.segundo = models.Transportador{UsuarioID: carrier2.ID, TipoTransportador: constants.TipoTransportadorEmpresa}
	if err := db.Create(&env.embarcador).Error; err != nil {
		t.Fatalf("create embarcador failed: %v", err)
	}
	if err := db.Create(&env.transportador).Error; err != nil {
		t.Fatalf("create transportador failed: %v", err)
	}
	if err := db.Create(&env.segundo).Error; err != nil {
		t.Fatalf("create segundo transportador failed: %v", err)
	}

	env.carga = models.Carga{
		EmbarcadorID:   env.embarcador.ID,
		Titulo:         "Carga teste",
		TipoMercadoria: "geral",
		Peso:           1000,
		OrigemCEP:      "01310100",
		OrigemCidade:   "Sao Paulo",
		OrigemEstado:   "SP",
		DestinoCEP:     "30110012",
		DestinoCidade:  "Belo Horizonte",
		DestinoEstado:  "MG",
		DataColeta:     time.Now().AddDate(0, 0, 5),
		DataEntrega:    time.Now().AddDate(0, 0, 7),
		Status:         constants.CargaStatusAberta,
	}
	if err := db.Create(&env.carga).Error; err != nil {
		t.Fatalf("create carga failed: %v", err)
	}
	return env
}

func (e *ofertaTestEnv) reloadCarga(t *testing.T) models.Carga {
	t.Helper()
	var carga models.Carga
	if err := e.db.First(&carga, e.carga.ID).Error; err != nil {
		t.Fatalf("reload carga failed: %v", err)
	}
	return carga
}

func TestCreateOfertaMovesCargaToNegotiation(t *testing.T) {
	env := setupOfertaServiceTest(t, "first_bid")

	oferta, err := env.svc.Create(CreateOfertaInput{
		CargaID:         env.carga.ID,
		TransportadorID: env.transportador.ID,
		Valor:           models.NewMoneyFromDecimal(decimal.NewFromInt(4500)),
	})
	if err != nil {
		t.Fatalf("create oferta failed: %v", err)
	}
	if oferta.Status != constants.OfertaStatusPendente {
		t.Fatalf("expected pendente, got %s", oferta.Status)
	}
	if carga := env.reloadCarga(t); carga.Status != constants.CargaStatusEmNegociacao {
		t.Fatalf("expected carga em_negociacao, got %s", carga.Status)
	}
}

func TestCreateOfertaDuplicateRejected(t *testing.T) {
	env := setupOfertaServiceTest(t, "duplicate")

	input := CreateOfertaInput{
		CargaID:         env.carga.ID,
		TransportadorID: env.transportador.ID,
		Valor:           models.NewMoneyFromDecimal(decimal.NewFromInt(4500)),
	}
	if _, err := env.svc.Create(input); err != nil {
		t.Fatalf("first oferta failed: %v", err)
	}
	input.Valor = models.NewMoneyFromDecimal(decimal.NewFromInt(4000))
	if _, err := env.svc.Create(input); !errors.Is(err, ErrDuplicateOferta) {
		t.Fatalf("expected duplicate oferta error, got: %v", err)
	}
}

func TestCreateOfertaRejectedOnClosedCarga(t *testing.T) {
	env := setupOfertaServiceTest(t, "closed")

	if err := env.db.Model(&models.Carga{}).Where("id = ?", env.carga.ID).
		Update("status", constants.CargaStatusAceita).Error; err != nil {
		t.Fatalf("update carga failed: %v", err)
	}
	_, err := env.svc.Create(CreateOfertaInput{
		CargaID:         env.carga.ID,
		TransportadorID: env.transportador.ID,
		Valor:           models.NewMoneyFromDecimal(decimal.NewFromInt(4500)),
	})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got: %v", err)
	}
}

func TestAcceptOfertaCascades(t *testing.T) {
	env := setupOfertaServiceTest(t, "accept")

	primeira, err := env.svc.Create(CreateOfertaInput{
		CargaID:         env.carga.ID,
		TransportadorID: env.transportador.ID,
		Valor:           models.NewMoneyFromDecimal(decimal.NewFromInt(4500)),
	})
	if err != nil {
		t.Fatalf("first oferta failed: %v", err)
	}
	segunda, err := env.svc.Create(CreateOfertaInput{
		CargaID:         env.carga.ID,
		TransportadorID: env.segundo.ID,
		Valor:           models.NewMoneyFromDecimal(decimal.NewFromInt(4800)),
	})
	if err != nil {
		t.Fatalf("second oferta failed: %v", err)
	}

	aceita, err := env.svc.Accept(primeira.ID, env.embarcador.ID)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if aceita.Status != constants.OfertaStatusAceita || aceita.DataResposta == nil {
		t.Fatalf("expected accepted oferta with resposta, got %+v", aceita)
	}

	carga := env.reloadCarga(t)
	if carga.Status != constants.CargaStatusAceita {
		t.Fatalf("expected carga aceita, got %s", carga.Status)
	}
	if carga.TransportadorID == nil || *carga.TransportadorID != env.transportador.ID {
		t.Fatalf("expected carga bound to transportador %d, got %v", env.transportador.ID, carga.TransportadorID)
	}

	var sibling models.Oferta
	if err := env.db.First(&sibling, segunda.ID).Error; err != nil {
		t.Fatalf("reload sibling failed: %v", err)
	}
	if sibling.Status != constants.OfertaStatusRecusada || sibling.DataResposta == nil {
		t.Fatalf("expected rejected sibling with resposta, got %+v", sibling)
	}
}

func TestAcceptOfertaIdempotent(t *testing.T) {
	env := setupOfertaServiceTest(t, "idempotent")

	oferta, err := env.svc.Create(CreateOfertaInput{
		CargaID:         env.carga.ID,
		TransportadorID: env.transportador.ID,
		Valor:           models.NewMoneyFromDecimal(decimal.NewFromInt(4500)),
	})
	if err != nil {
		t.Fatalf("create oferta failed: %v", err)
	}
	if _, err := env.svc.Accept(oferta.ID, env.embarcador.ID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	again, err := env.svc.Accept(oferta.ID, env.embarcador.ID)
	if err != nil {
		t.Fatalf("second accept should be a no-op, got: %v", err)
	}
	if again.Status != constants.OfertaStatusAceita {
		t.Fatalf("expected aceita, got %s", again.Status)
	}
}

func TestAcceptOfertaForeignShipperForbidden(t *testing.T) {
	env := setupOfertaServiceTest(t, "forbidden")

	oferta, err := env.svc.Create(CreateOfertaInput{
		CargaID:         env.carga.ID,
		TransportadorID: env.transportador.ID,
		Valor:           models.NewMoneyFromDecimal(decimal.NewFromInt(4500)),
	})
	if err != nil {
		t.Fatalf("create oferta failed: %v", err)
	}
	if _, err := env.svc.Accept(oferta.ID, env.embarcador.ID+99); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden, got: %v", err)
	}
}

func TestRejectLastPendingReopensCarga(t *testing.T) {
	env := setupOfertaServiceTest(t, "reject_reopen")

	oferta, err := env.svc.Create(CreateOfertaInput{
		CargaID:         env.carga.ID,
		TransportadorID: env.transportador.ID,
		Valor:           models.NewMoneyFromDecimal(decimal.NewFromInt(4500)),
	})
	if err != nil {
		t.Fatalf("create oferta failed: %v", err)
	}
	recusada, err := env.svc.Reject(oferta.ID, env.embarcador.ID)
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if recusada.Status != constants.OfertaStatusRecusada {
		t.Fatalf("expected recusada, got %s", recusada.Status)
	}
	if carga := env.reloadCarga(t); carga.Status != constants.CargaStatusAberta {
		t.Fatalf("expected carga reopened, got %s", carga.Status)
	}
}

func TestCancelOfertaKeepsNegotiationWithOtherBids(t *testing.T) {
	env := setupOfertaServiceTest(t, "cancel_keep")

	propria, err := env.svc.Create(CreateOfertaInput{
		CargaID:         env.carga.ID,
		TransportadorID: env.transportador.ID,
		Valor:           models.NewMoneyFromDecimal(decimal.NewFromInt(4500)),
	})
	if err != nil {
		t.Fatalf("first oferta failed: %v", err)
	}
	if _, err := env.svc.Create(CreateOfertaInput{
		CargaID:         env.carga.ID,
		TransportadorID: env.segundo.ID,
		Valor:           models.NewMoneyFromDecimal(decimal.NewFromInt(4700)),
	}); err != nil {
		t.Fatalf("second oferta failed: %v", err)
	}

	cancelada, err := env.svc.Cancel(propria.ID, env.transportador.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelada.Status != constants.OfertaStatusCancelada {
		t.Fatalf("expected cancelada, got %s", cancelada.Status)
	}
	if carga := env.reloadCarga(t); carga.Status != constants.CargaStatusEmNegociacao {
		t.Fatalf("expected carga still em_negociacao, got %s", carga.Status)
	}
}

func TestAcceptGuardedAgainstConcurrentCascade(t *testing.T) {
	env := setupOfertaServiceTest(t, "guarded")

	primeira, err := env.svc.Create(CreateOfertaInput{
		CargaID:         env.carga.ID,
		TransportadorID: env.transportador.ID,
		Valor:           models.NewMoneyFromDecimal(decimal.NewFromInt(4500)),
	})
	if err != nil {
		t.Fatalf("create first oferta failed: %v", err)
	}
	segunda, err := env.svc.Create(CreateOfertaInput{
		CargaID:         env.carga.ID,
		TransportadorID: env.segundo.ID,
		Valor:           models.NewMoneyFromDecimal(decimal.NewFromInt(4200)),
	})
	if err != nil {
		t.Fatalf("create second oferta failed: %v", err)
	}

	if _, err := env.svc.Accept(segunda.ID, env.embarcador.ID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	// an accept that read its prechecks before the cascade committed reaches
	// the guarded update; the status predicate must miss
	repo := repository.NewOfertaRepository(env.db)
	changed, err := repo.UpdateIfStatus(primeira.ID, constants.OfertaStatusPendente, map[string]interface{}{
		"status": constants.OfertaStatusAceita,
	})
	if err != nil {
		t.Fatalf("guarded update failed: %v", err)
	}
	if changed {
		t.Fatalf("expected guarded update to miss after the cascade")
	}

	cargaRepo := repository.NewCargaRepository(env.db)
	cargaChanged, err := cargaRepo.UpdateIfStatus(env.carga.ID, constants.CargaStatusEmNegociacao, map[string]interface{}{
		"status": constants.CargaStatusAceita,
	})
	if err != nil {
		t.Fatalf("guarded carga update failed: %v", err)
	}
	if cargaChanged {
		t.Fatalf("expected guarded carga update to miss after the cascade")
	}

	if _, err := env.svc.Accept(primeira.ID, env.embarcador.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for the losing accept, got: %v", err)
	}

	var aceitas int64
	if err := env.db.Model(&models.Oferta{}).
		Where("carga_id = ? AND status = ?", env.carga.ID, constants.OfertaStatusAceita).
		Count(&aceitas).Error; err != nil {
		t.Fatalf("count accepted offers failed: %v", err)
	}
	if aceitas != 1 {
		t.Fatalf("expected exactly one accepted offer, got %d", aceitas)
	}

	carga := env.reloadCarga(t)
	if carga.Status != constants.CargaStatusAceita || carga.TransportadorID == nil || *carga.TransportadorID != env.segundo.ID {
		t.Fatalf("expected carga bound to the winning carrier, got status=%s", carga.Status)
	}
}
