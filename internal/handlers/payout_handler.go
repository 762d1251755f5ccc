package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cromados/barberia/internal/httperr"
	"github.com/cromados/barberia/internal/httpresp"
	ucpayout "github.com/cromados/barberia/internal/usecase/payout"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PayoutHandler expone la calculadora de liquidaciones del panel.
type PayoutHandler struct {
	calculate *ucpayout.Calculate
}

func NewPayoutHandler(calculate *ucpayout.Calculate) *PayoutHandler {
	return &PayoutHandler{calculate: calculate}
}

// Calculate responde GET /admin/payouts?from=yyyy-MM-dd&to=yyyy-MM-dd.
func (h *PayoutHandler) Calculate(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")

	out, err := h.calculate.Execute(c.Request.Context(), from, to)
	if err != nil {
		if httperr.BusinessCode(err) == "invalid_range" {
			httperr.BadRequest(c, "invalid_range", "Rango de fechas inválido.")
			return
		}
		httperr.Internal(c, "failed_to_calculate_payouts", "Error al calcular las liquidaciones.")
		return
	}

	httpresp.List(c, out)
}
