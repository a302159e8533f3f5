package provider

import (
	"github.com/fretehub/fretehub/internal/cache"
	"github.com/fretehub/fretehub/internal/config"
	"github.com/fretehub/fretehub/internal/logger"
	"github.com/fretehub/fretehub/internal/models"
	"github.com/fretehub/fretehub/internal/queue"
	"github.com/fretehub/fretehub/internal/repository"
	"github.com/fretehub/fretehub/internal/service"
)

// Container wires repositories and services once at startup.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UsuarioRepo       repository.UsuarioRepository
	EmbarcadorRepo    repository.EmbarcadorRepository
	TransportadorRepo repository.TransportadorRepository
	EnderecoRepo      repository.EnderecoRepository
	VeiculoRepo       repository.VeiculoRepository
	CargaRepo         repository.CargaRepository
	OfertaRepo        repository.OfertaRepository
	SessaoRepo        repository.SessaoRepository
	ResetSenhaRepo    repository.ResetSenhaRepository

	// Services
	AuthService     *service.AuthService
	CaptchaService  *service.CaptchaService
	EmailService    *service.EmailService
	UsuarioService  *service.UsuarioService
	CadastroService *service.CadastroService
	PerfilService   *service.PerfilService
	EnderecoService *service.EnderecoService
	VeiculoService  *service.VeiculoService
	CargaService    *service.CargaService
	OfertaService   *service.OfertaService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UsuarioRepo = repository.NewUsuarioRepository(db)
	c.EmbarcadorRepo = repository.NewEmbarcadorRepository(db)
	c.TransportadorRepo = repository.NewTransportadorRepository(db)
	c.EnderecoRepo = repository.NewEnderecoRepository(db)
	c.VeiculoRepo = repository.NewVeiculoRepository(db)
	c.CargaRepo = repository.NewCargaRepository(db)
	c.OfertaRepo = repository.NewOfertaRepository(db)
	c.SessaoRepo = repository.NewSessaoRepository(db)
	c.ResetSenhaRepo = repository.NewResetSenhaRepository(db)
}

func (c *Container) initServices() {
	tokens := service.NewRandomTokenIssuer()

	c.AuthService = service.NewAuthService(c.Config)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.EmailService = service.NewEmailService(&c.Config.Email, c.Config.Server.PublicURL)
	c.UsuarioService = service.NewUsuarioService(c.UsuarioRepo, c.SessaoRepo, c.ResetSenhaRepo, c.AuthService, c.EmailService, tokens)
	c.CadastroService = service.NewCadastroService(c.UsuarioRepo, c.EmbarcadorRepo, c.TransportadorRepo, c.AuthService, c.EmailService, tokens)
	c.PerfilService = service.NewPerfilService(c.EmbarcadorRepo, c.TransportadorRepo)
	c.EnderecoService = service.NewEnderecoService(c.EnderecoRepo)
	c.VeiculoService = service.NewVeiculoService(c.VeiculoRepo, c.TransportadorRepo)
	c.CargaService = service.NewCargaService(c.CargaRepo, c.OfertaRepo, c.EmbarcadorRepo, c.TransportadorRepo, c.QueueClient)
	c.OfertaService = service.NewOfertaService(c.OfertaRepo, c.CargaRepo, c.TransportadorRepo, c.QueueClient)
}
