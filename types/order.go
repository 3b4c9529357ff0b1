package types

import "time"

// Order is a tenant's request for an apartment that a manager answers later.
type Order struct {
	Id              int64     `json:"id"`
	GuestsNumber    int       `json:"guestsNumber" validate:"gte=1"`
	RoomsNumber     int       `json:"roomsNumber" validate:"gte=1"`
	ApartmentClass  string    `json:"apartmentClass" validate:"required,oneof=economy standard lux"`
	CheckIn         time.Time `json:"checkIn" validate:"required"`
	CheckOut        time.Time `json:"checkOut" validate:"required,gtfield=CheckIn"`
	ManagerResponse string    `json:"managerResponse"`
	AccountId       int64     `json:"accountId" validate:"required"`
	ApartmentId     *int64    `json:"apartmentId"`
	State           bool      `json:"state"`
}
