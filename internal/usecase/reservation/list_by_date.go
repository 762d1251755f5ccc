package reservation

import (
	"context"

	domain "github.com/cromados/barberia/internal/domain/reservation"
	"github.com/cromados/barberia/internal/dto"
	"github.com/cromados/barberia/internal/models"
)

type ListBookingsByDate struct {
	repo domain.Repository
}

func NewListBookingsByDate(
	repo domain.Repository,
) *ListBookingsByDate {
	return &ListBookingsByDate{
		repo: repo,
	}
}

func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	date string,
	barberID uint,
) ([]dto.BookingListDTO, error) {

	bookings, err := uc.repo.ListBookingsByDate(ctx, date, barberID)
	if err != nil {
		return nil, err
	}

	return toListDTO(bookings), nil
}

func toListDTO(bookings []models.Booking) []dto.BookingListDTO {
	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:               b.ID,
			BarberID:         b.BarberID,
			BarberName:       b.Barber.Name,
			ServiceName:      b.Service.Name,
			Date:             b.Date,
			Time:             b.Time,
			CustomerName:     b.CustomerName,
			CustomerPhone:    b.CustomerPhone,
			Status:           b.Status,
			PaymentConfirmed: b.PaymentConfirmed,
			Deposit:          b.Deposit,
			AmountPaid:       b.AmountPaid,
			AmountCash:       b.AmountCash,
			GroupID:          b.GroupID,
			AddOns:           b.AddOns,
		})
	}
	return out
}
