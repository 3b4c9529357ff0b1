package mocks

import (
	"context"

	"apartment_rent/types"
)

type OrderServiceMock struct {
	CreateOrderFn         func(*types.Order) error
	FindOpenOrdersFn      func(types.Window) ([]*types.Order, error)
	FindOrdersOfAccountFn func(int64) ([]*types.Order, error)
	RespondToOrderFn      func(id int64, response string, apartmentId *int64) (*types.Order, error)
}

func (m *OrderServiceMock) CreateOrder(_ context.Context, order *types.Order) error {
	return m.CreateOrderFn(order)
}

func (m *OrderServiceMock) FindOpenOrders(_ context.Context, window types.Window) ([]*types.Order, error) {
	return m.FindOpenOrdersFn(window)
}

func (m *OrderServiceMock) FindOrdersOfAccount(_ context.Context, accountId int64) ([]*types.Order, error) {
	return m.FindOrdersOfAccountFn(accountId)
}

func (m *OrderServiceMock) RespondToOrder(_ context.Context, id int64, response string, apartmentId *int64) (*types.Order, error) {
	return m.RespondToOrderFn(id, response, apartmentId)
}
