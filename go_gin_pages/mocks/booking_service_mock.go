package mocks

import (
	"context"

	"apartment_rent/types"
)

type BookingServiceMock struct {
	CreateBookingFn   func(*types.BookingPostData) (*types.Booking, error)
	FindBookingFn     func(int64) (*types.Booking, error)
	FindFewBookingsFn func(types.BookingFilter) ([]*types.Booking, error)
	CancelBookingFn   func(int64) (*types.Booking, error)
}

func (m *BookingServiceMock) CreateBooking(_ context.Context, data *types.BookingPostData) (*types.Booking, error) {
	return m.CreateBookingFn(data)
}

func (m *BookingServiceMock) FindBooking(_ context.Context, id int64) (*types.Booking, error) {
	return m.FindBookingFn(id)
}

func (m *BookingServiceMock) FindFewBookings(_ context.Context, filter types.BookingFilter) ([]*types.Booking, error) {
	return m.FindFewBookingsFn(filter)
}

func (m *BookingServiceMock) CancelBooking(_ context.Context, id int64) (*types.Booking, error) {
	return m.CancelBookingFn(id)
}
