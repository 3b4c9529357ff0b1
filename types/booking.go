package types

import "time"

type Booking struct {
	Id          int64     `json:"id"`
	CheckIn     time.Time `json:"checkIn" validate:"required"`
	CheckOut    time.Time `json:"checkOut" validate:"required,gtfield=CheckIn"`
	Price       int64     `json:"price" validate:"gte=0"`
	AccountId   int64     `json:"accountId" validate:"required"`
	ApartmentId int64     `json:"apartmentId" validate:"required"`
	// State is false once the booking is cancelled.
	State bool `json:"state"`
}

type BookingPostData struct {
	CheckIn     ISO8601Date     `json:"checkIn" binding:"required"`
	Stay        ISO8601Duration `json:"stay" binding:"required"`
	AccountId   int64           `json:"accountId" binding:"required"`
	ApartmentId int64           `json:"apartmentId" binding:"required"`
}

// BookingFilter narrows and orders a page of bookings. Zero ids match any.
type BookingFilter struct {
	Window      Window
	AccountId   int64
	ApartmentId int64
	OnlyActive  bool
	SortBy      string
	Desc        bool
}
