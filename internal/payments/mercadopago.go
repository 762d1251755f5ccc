// Package payments envuelve el SDK de Mercado Pago: creación de
// preferencias de checkout y lectura de pagos para el webhook.
package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"context"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/rs/zerolog"

	"github.com/cromados/barberia/internal/httperr"
)

type Client struct {
	cfg           *config.Config
	webhookSecret string

	frontBase string
	backBase  string

	log zerolog.Logger
}

func NewClient(accessToken, webhookSecret, frontBase, backBase string, log zerolog.Logger) (*Client, error) {
	if accessToken == "" {
		return nil, httperr.ErrBusiness("mp_token_missing")
	}
	if webhookSecret == "" {
		// Sin secreto no se pueden validar webhooks y cualquiera podría
		// confirmar pagos. Mejor negarse a arrancar.
		return nil, httperr.ErrBusiness("mp_webhook_secret_missing")
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &Client{
		cfg:           cfg,
		webhookSecret: webhookSecret,
		frontBase:     frontBase,
		backBase:      backBase,
		log:           log,
	}, nil
}

type PreferenceInput struct {
	Title    string
	Amount   int // ARS, monto a cobrar online
	Metadata map[string]any
}

// CreatePreference crea la preferencia y devuelve la URL de redirección.
// El pago sucede entero del lado de Mercado Pago; acá solo se entrega el
// init point y el resto lo resuelve el webhook.
func (c *Client) CreatePreference(ctx context.Context, in PreferenceInput) (string, error) {
	if in.Amount < 1 {
		return "", httperr.ErrBusiness("invalid_amount")
	}

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      in.Title,
				Quantity:   1,
				UnitPrice:  float64(in.Amount),
				CurrencyID: "ARS",
			},
		},
		Metadata: in.Metadata,
	}

	if c.frontBase != "" {
		req.BackURLs = &preference.BackURLsRequest{
			Success: c.frontBase + "/pago/success",
			Pending: c.frontBase + "/pago/pending",
			Failure: c.frontBase + "/pago/failure",
		}
		// Mercado Pago rechaza autoReturn hacia URLs no https (localhost).
		if strings.HasPrefix(c.frontBase, "https://") {
			req.AutoReturn = "approved"
		}
	}

	if c.backBase != "" {
		req.NotificationURL = c.backBase + "/api/payments/webhook"
	}

	client := preference.NewClient(c.cfg)
	pref, err := client.Create(ctx, req)
	if err != nil {
		c.log.Error().Err(err).Msg("mp: preference create failed")
		return "", httperr.ErrBusiness("mp_preference_failed")
	}

	initPoint := pref.InitPoint
	if initPoint == "" {
		initPoint = pref.SandboxInitPoint
	}
	if initPoint == "" {
		return "", httperr.ErrBusiness("mp_missing_init_point")
	}

	return initPoint, nil
}

type PaymentInfo struct {
	ID       int
	Status   string
	Metadata map[string]any
}

func (c *Client) GetPayment(ctx context.Context, id int) (*PaymentInfo, error) {
	client := payment.NewClient(c.cfg)

	p, err := client.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &PaymentInfo{
		ID:       p.ID,
		Status:   p.Status,
		Metadata: p.Metadata,
	}, nil
}

// ValidateWebhookSignature verifica el header x-signature
// ("ts=<timestamp>,v1=<hmac>") contra el manifest documentado
// "id:<data.id>;request-id:<x-request-id>;ts:<ts>;" firmado con el secreto
// del webhook.
func (c *Client) ValidateWebhookSignature(xSignature, xRequestID, dataID string) bool {
	if xSignature == "" || xRequestID == "" || dataID == "" {
		return false
	}

	var ts, v1 string
	for _, part := range strings.Split(xSignature, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "ts":
			ts = kv[1]
		case "v1":
			v1 = kv[1]
		}
	}
	if ts == "" || v1 == "" {
		return false
	}

	manifest := "id:" + strings.ToLower(dataID) + ";request-id:" + xRequestID + ";ts:" + ts + ";"
	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(v1)) {
		c.log.Error().Str("request_id", xRequestID).Msg("mp: webhook signature mismatch")
		return false
	}
	return true
}
