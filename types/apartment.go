package types

type Apartment struct {
	Id              int64  `json:"id"`
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description"`
	ImageURL        string `json:"imageURL"`
	Address         string `json:"address" validate:"required"`
	MaxGuestsNumber int    `json:"maxGuestsNumber" validate:"gte=1"`
	RoomsNumber     int    `json:"roomsNumber" validate:"gte=1"`
	ApartmentClass  string `json:"apartmentClass" validate:"required,oneof=economy standard lux"`
	Price           int64  `json:"price" validate:"gte=0"`
	// State is true while the apartment can be booked.
	State bool `json:"state"`
}
