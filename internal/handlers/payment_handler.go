package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cromados/barberia/internal/httperr"
	"github.com/cromados/barberia/internal/httpresp"
	"github.com/cromados/barberia/internal/payments"
	"github.com/cromados/barberia/internal/usecase/checkout"
	ucpayment "github.com/cromados/barberia/internal/usecase/payment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PaymentHandler struct {
	checkout *checkout.CreateCheckout
	webhook  *ucpayment.ProcessWebhook
	mp       *payments.Client
	log      zerolog.Logger
}

func NewPaymentHandler(
	checkoutUC *checkout.CreateCheckout,
	webhookUC *ucpayment.ProcessWebhook,
	mp *payments.Client,
	log zerolog.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		checkout: checkoutUC,
		webhook:  webhookUC,
		mp:       mp,
		log:      log,
	}
}

////////////////////////////////////////////////////////
// CHECKOUT
////////////////////////////////////////////////////////

func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	var req checkout.CreateCheckoutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	out, err := h.checkout.Execute(c.Request.Context(), req)
	if err != nil {
		switch httperr.BusinessCode(err) {
		case "slot_taken":
			httperr.Conflict(c, "slot_taken", "El horario ya no está disponible.")
		case "branch_not_found", "barber_not_found", "service_not_found",
			"barber_not_in_branch", "service_is_add_on", "add_on_not_found":
			httperr.BadRequest(c, httperr.BusinessCode(err), "Datos de la reserva inválidos.")
		case "session_count_mismatch":
			httperr.BadRequest(c, "session_count_mismatch", "Cantidad de sesiones incorrecta.")
		default:
			httperr.Internal(c, "checkout_failed", "No se pudo iniciar el pago.")
		}
		return
	}

	httpresp.OK(c, out)
}

////////////////////////////////////////////////////////
// WEBHOOK
////////////////////////////////////////////////////////

// Webhook recibe las notificaciones de Mercado Pago. La firma del header
// x-signature se valida antes de tocar cualquier dato. Siempre que la
// notificación sea auténtica se responde 200: un 5xx haría que la pasarela
// reintente indefinidamente un pago que nunca va a procesar distinto.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	dataID := c.Query("data.id")
	if dataID == "" {
		dataID = c.Query("id")
	}

	xSignature := c.GetHeader("x-signature")
	xRequestID := c.GetHeader("x-request-id")

	if !h.mp.ValidateWebhookSignature(xSignature, xRequestID, dataID) {
		httperr.Unauthorized(c, "invalid_signature", "Firma inválida.")
		return
	}

	paymentID, err := strconv.Atoi(dataID)
	if err != nil {
		httperr.BadRequest(c, "invalid_payment_id", "Identificador de pago inválido.")
		return
	}

	if err := h.webhook.Execute(c.Request.Context(), paymentID); err != nil {
		// Error transitorio (pasarela o base de datos): 500 para que la
		// notificación se reintente.
		httperr.Internal(c, "webhook_failed", "No se pudo procesar el pago.")
		return
	}

	c.Status(http.StatusOK)
}
