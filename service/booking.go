package service

import (
	"context"
	"fmt"
	"time"

	"apartment_rent/repository"
	"apartment_rent/types"
	"apartment_rent/utils/errDefs"
	"apartment_rent/utils/querybuilder"
)

const minimalStay = 24 * time.Hour

var sortableBookingColumns = map[string]bool{
	repository.EntityId:        true,
	repository.BookingCheckIn:  true,
	repository.BookingCheckOut: true,
	repository.BookingPrice:    true,
}

type BookingService struct {
	Repo *repository.Repo
}

func nights(stay time.Duration) int64 {
	n := int64(stay / minimalStay)
	if stay%minimalStay != 0 {
		n++
	}
	return n
}

// CreateBooking books an available apartment and takes it off the market in
// the same unit of work.
func (s *BookingService) CreateBooking(ctx context.Context, data *types.BookingPostData) (*types.Booking, error) {
	checkIn, err := types.ParseISO8601Date(data.CheckIn)
	if err != nil {
		return nil, err
	}
	stay, err := types.ParseISO8601Duration(data.Stay, minimalStay)
	if err != nil {
		return nil, err
	}
	booking := &types.Booking{
		CheckIn:     checkIn,
		CheckOut:    checkIn.Add(stay),
		AccountId:   data.AccountId,
		ApartmentId: data.ApartmentId,
		State:       true,
	}

	err = inTransaction(ctx, s.Repo, func(ctx context.Context, tx repository.Executor) error {
		account, err := s.Repo.Accounts.Get(ctx, tx, data.AccountId)
		if err != nil {
			return err
		}
		if account == nil {
			return notFound("account", data.AccountId)
		}
		apartment, err := s.Repo.Apartments.Get(ctx, tx, data.ApartmentId)
		if err != nil {
			return err
		}
		if apartment == nil {
			return notFound("apartment", data.ApartmentId)
		}
		if !apartment.State {
			return fmt.Errorf("%w: apartment %d is not available", errDefs.ErrConflict, apartment.Id)
		}

		booking.Price = apartment.Price * nights(stay)
		if err = validate(booking); err != nil {
			return err
		}
		ok, err := s.Repo.Bookings.Insert(ctx, tx, booking)
		if err == nil && !ok {
			err = fmt.Errorf("%w: booking was not stored", errDefs.ErrInternalServerError)
		}
		if err != nil {
			return err
		}

		apartment.State = false
		ok, err = s.Repo.Apartments.Update(ctx, tx, apartment)
		return stored(ok, err, "apartment", apartment.Id)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) FindBooking(ctx context.Context, id int64) (*types.Booking, error) {
	booking, err := repository.Run(ctx, s.Repo.Tx, func(ctx context.Context, tx repository.Executor) (*types.Booking, error) {
		return s.Repo.Bookings.Get(ctx, tx, id)
	})
	if err == nil && booking == nil {
		err = notFound("booking", id)
	}
	return booking, err
}

func (s *BookingService) bookingQuery(filter types.BookingFilter) (querybuilder.Query, error) {
	b := s.Repo.Bookings.Query()
	if filter.AccountId != 0 {
		b.WhereField("booking."+repository.BookingAccountId, filter.AccountId)
	}
	if filter.ApartmentId != 0 {
		b.WhereField("booking."+repository.BookingApartmentId, filter.ApartmentId)
	}
	if filter.OnlyActive {
		b.WhereField("booking."+repository.EntityState, true)
	}
	if filter.SortBy != "" {
		if !sortableBookingColumns[filter.SortBy] {
			return querybuilder.Query{}, fmt.Errorf("%w: bookings can not be sorted by %q", errDefs.ErrInvalidArgument, filter.SortBy)
		}
		b.OrderBy("booking."+filter.SortBy, filter.Desc)
	}
	return b.OrderBy("booking."+repository.EntityId, false).
		Limit(filter.Window.CurrentRecord, filter.Window.RecordsPerPage).
		Build()
}

// FindFewBookings returns one page of the bookings matching filter.
func (s *BookingService) FindFewBookings(ctx context.Context, filter types.BookingFilter) ([]*types.Booking, error) {
	q, err := s.bookingQuery(filter)
	if err != nil {
		return nil, err
	}
	return repository.Run(ctx, s.Repo.Tx, func(ctx context.Context, tx repository.Executor) ([]*types.Booking, error) {
		return s.Repo.Bookings.GetWithDynamicQuery(ctx, tx, q)
	})
}

func (s *BookingService) FindBookingsOfAccount(ctx context.Context, accountId int64) ([]*types.Booking, error) {
	return repository.Run(ctx, s.Repo.Tx, func(ctx context.Context, tx repository.Executor) ([]*types.Booking, error) {
		return s.Repo.Bookings.GetByAccount(ctx, tx, accountId)
	})
}

func (s *BookingService) UpdateBooking(ctx context.Context, booking *types.Booking) error {
	if err := validate(booking); err != nil {
		return err
	}
	return inTransaction(ctx, s.Repo, func(ctx context.Context, tx repository.Executor) error {
		ok, err := s.Repo.Bookings.Update(ctx, tx, booking)
		return stored(ok, err, "booking", booking.Id)
	})
}

// CancelBooking marks the booking cancelled and puts its apartment back on
// the market.
func (s *BookingService) CancelBooking(ctx context.Context, id int64) (*types.Booking, error) {
	return repository.Run(ctx, s.Repo.Tx, func(ctx context.Context, tx repository.Executor) (*types.Booking, error) {
		booking, err := s.Repo.Bookings.Get(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if booking == nil {
			return nil, notFound("booking", id)
		}
		if !booking.State {
			return nil, fmt.Errorf("%w: booking %d is already cancelled", errDefs.ErrConflict, id)
		}
		booking.State = false
		ok, err := s.Repo.Bookings.Update(ctx, tx, booking)
		if err = stored(ok, err, "booking", id); err != nil {
			return nil, err
		}

		apartment, err := s.Repo.Apartments.Get(ctx, tx, booking.ApartmentId)
		if err != nil || apartment == nil {
			return booking, err
		}
		apartment.State = true
		ok, err = s.Repo.Apartments.Update(ctx, tx, apartment)
		return booking, stored(ok, err, "apartment", apartment.Id)
	})
}

func (s *BookingService) DeleteBooking(ctx context.Context, id int64) error {
	return inTransaction(ctx, s.Repo, func(ctx context.Context, tx repository.Executor) error {
		ok, err := s.Repo.Bookings.Delete(ctx, tx, id)
		return stored(ok, err, "booking", id)
	})
}
