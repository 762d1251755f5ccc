package reservation

import (
	"context"

	"github.com/cromados/barberia/internal/audit"
	domain "github.com/cromados/barberia/internal/domain/reservation"
	"github.com/cromados/barberia/internal/domain/schedule"
	"github.com/cromados/barberia/internal/httperr"
	"github.com/cromados/barberia/internal/infra/cache"
	"github.com/cromados/barberia/internal/models"
)

// BlockSlot marca un horario como ocupado sin pago de por medio
// (turnos tomados por teléfono o en el mostrador).
type BlockSlot struct {
	repo  domain.Repository
	slots *cache.AvailabilitySource
	audit *audit.Dispatcher
}

func NewBlockSlot(
	repo domain.Repository,
	slots *cache.AvailabilitySource,
	audit *audit.Dispatcher,
) *BlockSlot {
	return &BlockSlot{
		repo:  repo,
		slots: slots,
		audit: audit,
	}
}

func (uc *BlockSlot) Execute(
	ctx context.Context,
	adminID uint,
	barberID uint,
	date string,
	timeStr string,
) (*models.SlotBlock, error) {

	if schedule.ParseClock(timeStr) < 0 {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	if _, err := uc.repo.GetBarberByID(ctx, barberID); err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	if err := uc.repo.AssertSlotFree(ctx, barberID, date, timeStr); err != nil {
		return nil, err
	}

	block := &models.SlotBlock{
		BarberID: barberID,
		Date:     date,
		Time:     timeStr,
	}
	if err := uc.repo.CreateSlotBlock(ctx, block); err != nil {
		return nil, err
	}

	uc.slots.Invalidate(ctx, barberID, date)

	uc.audit.Dispatch(audit.Entry{
		UserID:   &adminID,
		Action:   "slot_blocked",
		Entity:   "slot_block",
		EntityID: block.ID,
		Detail:   date + " " + timeStr,
	})

	return block, nil
}

// UnblockSlot libera un horario bloqueado manualmente.
type UnblockSlot struct {
	repo  domain.Repository
	slots *cache.AvailabilitySource
	audit *audit.Dispatcher
}

func NewUnblockSlot(
	repo domain.Repository,
	slots *cache.AvailabilitySource,
	audit *audit.Dispatcher,
) *UnblockSlot {
	return &UnblockSlot{
		repo:  repo,
		slots: slots,
		audit: audit,
	}
}

func (uc *UnblockSlot) Execute(
	ctx context.Context,
	adminID uint,
	barberID uint,
	date string,
	timeStr string,
) error {

	if err := uc.repo.DeleteSlotBlock(ctx, barberID, date, timeStr); err != nil {
		return httperr.ErrBusiness("block_not_found")
	}

	uc.slots.Invalidate(ctx, barberID, date)

	uc.audit.Dispatch(audit.Entry{
		UserID: &adminID,
		Action: "slot_unblocked",
		Entity: "slot_block",
		Detail: date + " " + timeStr,
	})

	return nil
}
