package mocks

import (
	"context"

	"apartment_rent/types"
)

type ApartmentServiceMock struct {
	CreateApartmentFn         func(*types.Apartment) error
	FindApartmentFn           func(int64) (*types.Apartment, error)
	FindFewApartmentsFn       func(types.Window) ([]*types.Apartment, error)
	FindFewApartmentsSortedFn func(window types.Window, column string, desc bool) ([]*types.Apartment, error)
	FindBookedApartmentsFn    func(accountId int64, window types.Window) ([]*types.Apartment, error)
	UpdateApartmentFn         func(*types.Apartment) error
	DisableApartmentFn        func(int64) error
	DeleteApartmentFn         func(int64) error
	CountApartmentsFn         func() (int64, error)
}

func (m *ApartmentServiceMock) CreateApartment(_ context.Context, apartment *types.Apartment) error {
	return m.CreateApartmentFn(apartment)
}

func (m *ApartmentServiceMock) FindApartment(_ context.Context, id int64) (*types.Apartment, error) {
	return m.FindApartmentFn(id)
}

func (m *ApartmentServiceMock) FindFewApartments(_ context.Context, window types.Window) ([]*types.Apartment, error) {
	return m.FindFewApartmentsFn(window)
}

func (m *ApartmentServiceMock) FindFewApartmentsSorted(_ context.Context, window types.Window, column string, desc bool) ([]*types.Apartment, error) {
	return m.FindFewApartmentsSortedFn(window, column, desc)
}

func (m *ApartmentServiceMock) FindBookedApartments(_ context.Context, accountId int64, window types.Window) ([]*types.Apartment, error) {
	return m.FindBookedApartmentsFn(accountId, window)
}

func (m *ApartmentServiceMock) UpdateApartment(_ context.Context, apartment *types.Apartment) error {
	return m.UpdateApartmentFn(apartment)
}

func (m *ApartmentServiceMock) DisableApartment(_ context.Context, id int64) error {
	return m.DisableApartmentFn(id)
}

func (m *ApartmentServiceMock) DeleteApartment(_ context.Context, id int64) error {
	return m.DeleteApartmentFn(id)
}

func (m *ApartmentServiceMock) CountApartments(_ context.Context) (int64, error) {
	if m.CountApartmentsFn != nil {
		return m.CountApartmentsFn()
	}
	return 0, nil
}
