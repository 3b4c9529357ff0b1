package service

import (
	"context"

	"apartment_rent/repository"
	"apartment_rent/types"
)

type ApartmentService struct {
	Repo *repository.Repo
}

func (s *ApartmentService) CreateApartment(ctx context.Context, apartment *types.Apartment) error {
	if err := validate(apartment); err != nil {
		return err
	}
	return inTransaction(ctx, s.Repo, func(ctx context.Context, tx repository.Executor) error {
		ok, err := s.Repo.Apartments.Insert(ctx, tx, apartment)
		return stored(ok, err, "apartment", apartment.Id)
	})
}

func (s *ApartmentService) FindApartment(ctx context.Context, id int64) (*types.Apartment, error) {
	apartment, err := repository.Run(ctx, s.Repo.Tx, func(ctx context.Context, tx repository.Executor) (*types.Apartment, error) {
		return s.Repo.Apartments.Get(ctx, tx, id)
	})
	if err == nil && apartment == nil {
		err = notFound("apartment", id)
	}
	return apartment, err
}

func (s *ApartmentService) FindAllApartments(ctx context.Context) ([]*types.Apartment, error) {
	return repository.Run(ctx, s.Repo.Tx, func(ctx context.Context, tx repository.Executor) ([]*types.Apartment, error) {
		return s.Repo.Apartments.GetAll(ctx, tx)
	})
}

func (s *ApartmentService) FindFewApartments(ctx context.Context, window types.Window) ([]*types.Apartment, error) {
	return repository.Run(ctx, s.Repo.Tx, func(ctx context.Context, tx repository.Executor) ([]*types.Apartment, error) {
		return s.Repo.Apartments.GetFew(ctx, tx, window.CurrentRecord, window.RecordsPerPage)
	})
}

func (s *ApartmentService) FindFewApartmentsSorted(ctx context.Context, window types.Window, column string, desc bool) ([]*types.Apartment, error) {
	return repository.Run(ctx, s.Repo.Tx, func(ctx context.Context, tx repository.Executor) ([]*types.Apartment, error) {
		return s.Repo.Apartments.GetFewSorted(ctx, tx, column, desc, window.CurrentRecord, window.RecordsPerPage)
	})
}

// FindBookedApartments lists each apartment the account has an active booking for once.
func (s *ApartmentService) FindBookedApartments(ctx context.Context, accountId int64, window types.Window) ([]*types.Apartment, error) {
	return repository.Run(ctx, s.Repo.Tx, func(ctx context.Context, tx repository.Executor) ([]*types.Apartment, error) {
		return s.Repo.Apartments.GetUniqueApartmentsWhichAreBooked(ctx, tx, accountId, window.CurrentRecord, window.RecordsPerPage)
	})
}

func (s *ApartmentService) UpdateApartment(ctx context.Context, apartment *types.Apartment) error {
	if err := validate(apartment); err != nil {
		return err
	}
	return inTransaction(ctx, s.Repo, func(ctx context.Context, tx repository.Executor) error {
		ok, err := s.Repo.Apartments.Update(ctx, tx, apartment)
		return stored(ok, err, "apartment", apartment.Id)
	})
}

// DisableApartment takes the apartment off the market without deleting it.
func (s *ApartmentService) DisableApartment(ctx context.Context, id int64) error {
	return inTransaction(ctx, s.Repo, func(ctx context.Context, tx repository.Executor) error {
		apartment, err := s.Repo.Apartments.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		if apartment == nil {
			return notFound("apartment", id)
		}
		apartment.State = false
		ok, err := s.Repo.Apartments.Update(ctx, tx, apartment)
		return stored(ok, err, "apartment", id)
	})
}

func (s *ApartmentService) DeleteApartment(ctx context.Context, id int64) error {
	return inTransaction(ctx, s.Repo, func(ctx context.Context, tx repository.Executor) error {
		ok, err := s.Repo.Apartments.Delete(ctx, tx, id)
		return stored(ok, err, "apartment", id)
	})
}

func (s *ApartmentService) CountApartments(ctx context.Context) (int64, error) {
	return repository.Run(ctx, s.Repo.Tx, func(ctx context.Context, tx repository.Executor) (int64, error) {
		return s.Repo.Apartments.Count(ctx, tx)
	})
}
