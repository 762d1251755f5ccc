package reservation

import (
	"context"

	domain "github.com/cromados/barberia/internal/domain/reservation"
	"github.com/cromados/barberia/internal/dto"
)

type ListBookingsByMonth struct {
	repo domain.Repository
}

func NewListBookingsByMonth(
	repo domain.Repository,
) *ListBookingsByMonth {
	return &ListBookingsByMonth{
		repo: repo,
	}
}

func (uc *ListBookingsByMonth) Execute(
	ctx context.Context,
	year int,
	month int,
	barberID uint,
) ([]dto.BookingListDTO, error) {

	bookings, err := uc.repo.ListBookingsByMonth(ctx, year, month, barberID)
	if err != nil {
		return nil, err
	}

	return toListDTO(bookings), nil
}
