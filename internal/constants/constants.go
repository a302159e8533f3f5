package constants

// Load (carga) status constants
const (
	CargaStatusAberta       = "aberta"
	CargaStatusEmNegociacao = "em_negociacao"
	CargaStatusAceita       = "aceita"
	CargaStatusEmTransporte = "em_transporte"
	CargaStatusEntregue     = "entregue"
	CargaStatusCancelada    = "cancelada"
)

// Offer (oferta) status constants
const (
	OfertaStatusPendente  = "pendente"
	OfertaStatusAceita    = "aceita"
	OfertaStatusRecusada  = "recusada"
	OfertaStatusCancelada = "cancelada"
)

// User type constants
const (
	TipoUsuarioEmbarcador    = "embarcador"
	TipoUsuarioTransportador = "transportador"
)

// Document type constants
const (
	DocumentoTipoCPF  = "cpf"
	DocumentoTipoCNPJ = "cnpj"
)

// Carrier type constants
const (
	TipoTransportadorAutonomo    = "autonomo"
	TipoTransportadorEmpresa     = "empresa"
	TipoTransportadorCooperativa = "cooperativa"
)

// Address type constants
const (
	EnderecoTipoResidencial = "residencial"
	EnderecoTipoComercial   = "comercial"
	EnderecoTipoEntrega     = "entrega"
	EnderecoTipoCobranca    = "cobranca"
	EnderecoTipoOutro       = "outro"
)

// Vehicle type constants
const (
	VeiculoTipoCaminhao = "caminhao"
	VeiculoTipoCarreta  = "carreta"
	VeiculoTipoVan      = "van"
	VeiculoTipoOutro    = "outro"
)

// Token lifetime constants
const (
	VerifyTokenExpireHours  = 24
	ResetTokenExpireMinutes = 60
	SessionExpireDays       = 30
)

// Queue constants
const (
	QueueDefault          = "default"
	TaskOfertaStatusEmail = "oferta:status_email"
	TaskCargaStatusEmail  = "carga:status_email"
)

// Notification event constants
const (
	NotificacaoOfertaRecebida = "oferta_recebida"
	NotificacaoOfertaAceita   = "oferta_aceita"
	NotificacaoOfertaRecusada = "oferta_recusada"
	NotificacaoCargaCancelada = "carga_cancelada"
)

// Captcha scene constants
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
	CaptchaSceneLogin    = "login"
)

// Default cache key prefix
const (
	RedisPrefixDefault = "fh"
)
