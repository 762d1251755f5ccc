package checkout

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cromados/barberia/internal/domain/reservation"
	"github.com/cromados/barberia/internal/httperr"
	"github.com/cromados/barberia/internal/infra/hold"
	"github.com/cromados/barberia/internal/payments"
)

// ======================================================
// INPUT
// ======================================================

type SessionInput struct {
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	Time     string `json:"time" binding:"required"` // HH:mm
	AddOnIDs []uint `json:"add_on_ids"`
}

type CreateCheckoutInput struct {
	BranchID  uint           `json:"branch_id" binding:"required"`
	BarberID  uint           `json:"barber_id" binding:"required"`
	ServiceID uint           `json:"service_id" binding:"required"`
	Sessions  []SessionInput `json:"sessions" binding:"required,min=1"`

	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerAge   int    `json:"customer_age" binding:"required"`

	Deposit bool `json:"deposit"`
}

type CreateCheckoutOutput struct {
	InitPoint string `json:"init_point"`
	Total     int    `json:"total"`
	PayNow    int    `json:"pay_now"`
}

// PreferenceCreator abstrae la pasarela de pago para poder testear el caso
// de uso sin red.
type PreferenceCreator interface {
	CreatePreference(ctx context.Context, in payments.PreferenceInput) (string, error)
}

// ======================================================
// USE CASE
// ======================================================

// CreateCheckout valida el borrador completo del cliente, recalcula el
// precio del lado del servidor, toma holds transitorios sobre los horarios
// elegidos y crea la preferencia de pago. Los turnos recién se crean cuando
// el webhook confirma el pago.
type CreateCheckout struct {
	repo  reservation.Repository
	holds *hold.Store
	prefs PreferenceCreator
	log   zerolog.Logger
}

func NewCreateCheckout(
	repo reservation.Repository,
	holds *hold.Store,
	prefs PreferenceCreator,
	log zerolog.Logger,
) *CreateCheckout {
	return &CreateCheckout{repo: repo, holds: holds, prefs: prefs, log: log}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateCheckout) Execute(
	ctx context.Context,
	in CreateCheckoutInput,
) (*CreateCheckoutOutput, error) {

	// --------------------------------------------------
	// Entidades
	// --------------------------------------------------
	branch, err := uc.repo.GetBranchByID(ctx, in.BranchID)
	if err != nil {
		return nil, httperr.ErrBusiness("branch_not_found")
	}

	barber, err := uc.repo.GetBarberByID(ctx, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}
	if barber.BranchID != branch.ID {
		return nil, httperr.ErrBusiness("barber_not_in_branch")
	}

	service, err := uc.repo.GetServiceByID(ctx, in.ServiceID)
	if err != nil || !service.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if service.AddOn {
		return nil, httperr.ErrBusiness("service_is_add_on")
	}

	// --------------------------------------------------
	// Plan de sesiones: exactamente las del servicio
	// --------------------------------------------------
	wanted := service.Sessions
	if wanted < 1 {
		wanted = 1
	}
	if len(in.Sessions) != wanted {
		return nil, httperr.ErrBusiness("session_count_mismatch")
	}

	// --------------------------------------------------
	// Precio total (servidor manda, nunca el cliente)
	// --------------------------------------------------
	total := service.Price
	for _, s := range in.Sessions {
		for _, id := range s.AddOnIDs {
			add, err := uc.repo.GetServiceByID(ctx, id)
			if err != nil || !add.AddOn {
				return nil, httperr.ErrBusiness("add_on_not_found")
			}
			total += add.Price
		}
	}

	payNow := total
	if in.Deposit {
		// Seña del 50%, redondeo half-up.
		payNow = (total + 1) / 2
	}

	// --------------------------------------------------
	// Horarios: libres y tomados con hold hasta el pago
	// --------------------------------------------------
	owner := uuid.NewString()
	var held []SessionInput

	release := func() {
		for _, s := range held {
			if err := uc.holds.Release(ctx, in.BarberID, s.Date, s.Time); err != nil {
				uc.log.Warn().Err(err).Msg("checkout: hold release failed")
			}
		}
	}

	for _, s := range in.Sessions {
		if err := uc.repo.AssertSlotFree(ctx, in.BarberID, s.Date, s.Time); err != nil {
			release()
			return nil, err
		}

		ok, err := uc.holds.TryHold(ctx, in.BarberID, s.Date, s.Time, owner)
		if err != nil {
			uc.log.Warn().Err(err).Msg("checkout: hold store unavailable")
		} else if !ok {
			release()
			return nil, httperr.ErrBusiness("slot_taken")
		} else {
			held = append(held, s)
		}
	}

	// --------------------------------------------------
	// Preferencia de pago
	// --------------------------------------------------
	sessionsJSON, err := json.Marshal(in.Sessions)
	if err != nil {
		release()
		return nil, err
	}

	metadata := map[string]any{
		"branch_id":      in.BranchID,
		"barber_id":      in.BarberID,
		"service_id":     in.ServiceID,
		"customer_name":  in.CustomerName,
		"customer_phone": in.CustomerPhone,
		"customer_age":   in.CustomerAge,
		"deposit":        in.Deposit,
		"total":          total,
		"pay_now":        payNow,
		"sessions":       string(sessionsJSON),
		"hold_owner":     owner,
	}

	title := fmt.Sprintf("Reserva %s - %s (%s)", service.Name, barber.Name, branch.Name)

	initPoint, err := uc.prefs.CreatePreference(ctx, payments.PreferenceInput{
		Title:    title,
		Amount:   payNow,
		Metadata: metadata,
	})
	if err != nil {
		release()
		return nil, err
	}

	uc.log.Info().
		Uint("barber_id", in.BarberID).
		Int("sessions", len(in.Sessions)).
		Int("total", total).
		Int("pay_now", payNow).
		Bool("deposit", in.Deposit).
		Msg("checkout: preference created")

	return &CreateCheckoutOutput{
		InitPoint: initPoint,
		Total:     total,
		PayNow:    payNow,
	}, nil
}
