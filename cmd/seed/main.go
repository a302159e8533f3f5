package main

import (
	"time"

	"github.com/fretehub/fretehub/internal/config"
	"github.com/fretehub/fretehub/internal/constants"
	"github.com/fretehub/fretehub/internal/logger"
	"github.com/fretehub/fretehub/internal/models"
	"github.com/fretehub/fretehub/internal/service"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	auth := service.NewAuthService(cfg)
	senha, err := auth.HashPassword("fretehub123")
	if err != nil {
		stdLog.Fatalf("Failed to hash seed password: %v", err)
	}

	embarcadorUser := seedUsuario(stdLog, models.Usuario{
		Email:         "embarcador@fretehub.dev",
		Senha:         senha,
		TipoUsuario:   constants.TipoUsuarioEmbarcador,
		Nome:          "Distribuidora Horizonte",
		Telefone:      "11987650001",
		Documento:     "12345678000190",
		DocumentoTipo: constants.DocumentoTipoCNPJ,
		Verificado:    true,
	})
	transportadorUser := seedUsuario(stdLog, models.Usuario{
		Email:         "transportador@fretehub.dev",
		Senha:         senha,
		TipoUsuario:   constants.TipoUsuarioTransportador,
		Nome:          "Carlos Mendes",
		Telefone:      "31987650002",
		Documento:     "39053344705",
		DocumentoTipo: constants.DocumentoTipoCPF,
		Verificado:    true,
	})
	if embarcadorUser == nil || transportadorUser == nil {
		stdLog.Fatalf("Seed users missing, aborting")
	}

	funcionarios := 42
	volumeMedio := 120
	embarcador := models.Embarcador{
		UsuarioID:              embarcadorUser.ID,
		RazaoSocial:            "Distribuidora Horizonte LTDA",
		NomeFantasia:           "Horizonte",
		Segmento:               "alimentos",
		QuantidadeFuncionarios: &funcionarios,
		VolumeMedioCargas:      &volumeMedio,
	}
	if err := models.DB.Where("usuario_id = ?", embarcador.UsuarioID).FirstOrCreate(&embarcador).Error; err != nil {
		stdLog.Printf("Failed to seed embarcador: %v", err)
	}

	anos := 12
	transportador := models.Transportador{
		UsuarioID:         transportadorUser.ID,
		ANTT:              "12345678",
		TipoTransportador: constants.TipoTransportadorAutonomo,
		AnosExperiencia:   &anos,
		PossuiFrota:       true,
	}
	if err := models.DB.Where("usuario_id = ?", transportador.UsuarioID).FirstOrCreate(&transportador).Error; err != nil {
		stdLog.Printf("Failed to seed transportador: %v", err)
	}

	endereco := models.Endereco{
		UsuarioID:  embarcadorUser.ID,
		Tipo:       constants.EnderecoTipoComercial,
		CEP:        "01310100",
		Logradouro: "Avenida Paulista",
		Numero:     "1000",
		Bairro:     "Bela Vista",
		Cidade:     "Sao Paulo",
		Estado:     "SP",
		Principal:  true,
	}
	if err := models.DB.Where("usuario_id = ? AND cep = ?", endereco.UsuarioID, endereco.CEP).FirstOrCreate(&endereco).Error; err != nil {
		stdLog.Printf("Failed to seed endereco: %v", err)
	}

	capacidade := 14000.0
	veiculo := models.Veiculo{
		TransportadorID: transportador.ID,
		Placa:           "ABC1D23",
		Tipo:            constants.VeiculoTipoCaminhao,
		Marca:           "Volvo",
		Modelo:          "FH 460",
		Ano:             2021,
		CapacidadeKg:    &capacidade,
		Rastreado:       true,
		SeguroCarga:     true,
	}
	if err := models.DB.Where("placa = ? AND ativo = ?", veiculo.Placa, true).FirstOrCreate(&veiculo).Error; err != nil {
		stdLog.Printf("Failed to seed veiculo: %v", err)
	}

	frete := models.NewMoneyFromDecimal(decimal.NewFromInt(5200))
	carga := models.Carga{
		EmbarcadorID:   embarcador.ID,
		Titulo:         "Carga de alimentos secos SP-BH",
		Descricao:      "Paletes de alimentos nao pereciveis",
		TipoMercadoria: "alimentos",
		Peso:           8500,
		ValorFrete:     &frete,
		OrigemCEP:      "01310100",
		OrigemCidade:   "Sao Paulo",
		OrigemEstado:   "SP",
		DestinoCEP:     "30110012",
		DestinoCidade:  "Belo Horizonte",
		DestinoEstado:  "MG",
		DataColeta:     time.Now().AddDate(0, 0, 7),
		DataEntrega:    time.Now().AddDate(0, 0, 9),
		Status:         constants.CargaStatusAberta,
	}
	if err := models.DB.Where("embarcador_id = ? AND titulo = ?", carga.EmbarcadorID, carga.Titulo).FirstOrCreate(&carga).Error; err != nil {
		stdLog.Printf("Failed to seed carga: %v", err)
	}

	stdLog.Printf("Seed finished")
	stdLog.Printf("  shipper login: embarcador@fretehub.dev / fretehub123")
	stdLog.Printf("  carrier login: transportador@fretehub.dev / fretehub123")
}

func seedUsuario(stdLog interface{ Printf(string, ...interface{}) }, usuario models.Usuario) *models.Usuario {
	var existing models.Usuario
	if err := models.DB.Where("email = ?", usuario.Email).First(&existing).Error; err == nil {
		stdLog.Printf("Usuario already exists: %s", existing.Email)
		return &existing
	}
	if err := models.DB.Create(&usuario).Error; err != nil {
		stdLog.Printf("Failed to create usuario %s: %v", usuario.Email, err)
		return nil
	}
	stdLog.Printf("Created usuario: %s", usuario.Email)
	return &usuario
}
