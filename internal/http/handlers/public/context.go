package public

import (
	"strconv"

	handlershared "github.com/fretehub/fretehub/internal/http/handlers/shared"
	"github.com/fretehub/fretehub/internal/http/response"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func getUsuarioID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "usuario_id")
}

// getEmbarcadorID reads the shipper profile id resolved by the role
// middleware.
func getEmbarcadorID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "embarcador_id")
}

// getTransportadorID reads the carrier profile id resolved by the role
// middleware.
func getTransportadorID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "transportador_id")
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return handlershared.NormalizePagination(page, pageSize)
}
