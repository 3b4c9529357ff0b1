package service

import (
	"context"
	"fmt"

	"apartment_rent/repository"
	"apartment_rent/types"
	"apartment_rent/utils/errDefs"
)

type OrderService struct {
	Repo *repository.Repo
}

func (s *OrderService) CreateOrder(ctx context.Context, order *types.Order) error {
	order.ManagerResponse = ""
	order.ApartmentId = nil
	order.State = true
	if err := validate(order); err != nil {
		return err
	}
	return inTransaction(ctx, s.Repo, func(ctx context.Context, tx repository.Executor) error {
		account, err := s.Repo.Accounts.Get(ctx, tx, order.AccountId)
		if err != nil {
			return err
		}
		if account == nil {
			return notFound("account", order.AccountId)
		}
		ok, err := s.Repo.Orders.Insert(ctx, tx, order)
		if err == nil && !ok {
			err = fmt.Errorf("%w: order was not stored", errDefs.ErrInternalServerError)
		}
		return err
	})
}

func (s *OrderService) FindFewOrders(ctx context.Context, window types.Window) ([]*types.Order, error) {
	return repository.Run(ctx, s.Repo.Tx, func(ctx context.Context, tx repository.Executor) ([]*types.Order, error) {
		return s.Repo.Orders.GetFew(ctx, tx, window.CurrentRecord, window.RecordsPerPage)
	})
}

// FindOpenOrders pages through the orders no manager has answered yet.
func (s *OrderService) FindOpenOrders(ctx context.Context, window types.Window) ([]*types.Order, error) {
	return repository.Run(ctx, s.Repo.Tx, func(ctx context.Context, tx repository.Executor) ([]*types.Order, error) {
		return s.Repo.Orders.GetOpen(ctx, tx, window.CurrentRecord, window.RecordsPerPage)
	})
}

func (s *OrderService) FindOrdersOfAccount(ctx context.Context, accountId int64) ([]*types.Order, error) {
	return repository.Run(ctx, s.Repo.Tx, func(ctx context.Context, tx repository.Executor) ([]*types.Order, error) {
		return s.Repo.Orders.GetByAccount(ctx, tx, accountId)
	})
}

// RespondToOrder records the manager's answer and, when given, the apartment
// offered for it.
func (s *OrderService) RespondToOrder(ctx context.Context, id int64, response string, apartmentId *int64) (*types.Order, error) {
	return repository.Run(ctx, s.Repo.Tx, func(ctx context.Context, tx repository.Executor) (*types.Order, error) {
		order, err := s.Repo.Orders.Get(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, notFound("order", id)
		}
		if apartmentId != nil {
			apartment, err := s.Repo.Apartments.Get(ctx, tx, *apartmentId)
			if err != nil {
				return nil, err
			}
			if apartment == nil {
				return nil, notFound("apartment", *apartmentId)
			}
		}
		order.ManagerResponse = response
		order.ApartmentId = apartmentId
		if err = validate(order); err != nil {
			return nil, err
		}
		ok, err := s.Repo.Orders.Update(ctx, tx, order)
		return order, stored(ok, err, "order", id)
	})
}

func (s *OrderService) UpdateOrder(ctx context.Context, order *types.Order) error {
	if err := validate(order); err != nil {
		return err
	}
	return inTransaction(ctx, s.Repo, func(ctx context.Context, tx repository.Executor) error {
		ok, err := s.Repo.Orders.Update(ctx, tx, order)
		return stored(ok, err, "order", order.Id)
	})
}

func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	return inTransaction(ctx, s.Repo, func(ctx context.Context, tx repository.Executor) error {
		ok, err := s.Repo.Orders.Delete(ctx, tx, id)
		return stored(ok, err, "order", id)
	})
}
