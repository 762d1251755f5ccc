package reservation

import (
	"context"

	"github.com/cromados/barberia/internal/audit"
	domain "github.com/cromados/barberia/internal/domain/reservation"
	"github.com/cromados/barberia/internal/httperr"
	"github.com/cromados/barberia/internal/infra/cache"
	"github.com/cromados/barberia/internal/models"
	"github.com/cromados/barberia/internal/timezone"
)

type CancelBooking struct {
	repo  domain.Repository
	slots *cache.AvailabilitySource
	audit *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	slots *cache.AvailabilitySource,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		slots: slots,
		audit: audit,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	adminID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := timezone.Now()
	if err := domain.Cancel(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.slots.Invalidate(ctx, b.BarberID, b.Date)

	uc.audit.Dispatch(audit.Entry{
		UserID:   &adminID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: b.ID,
		Detail:   b.Date + " " + b.Time,
	})

	return b, nil
}
