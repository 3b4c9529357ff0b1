package repository

import (
	"context"

	"apartment_rent/types"
	"apartment_rent/utils/querybuilder"

	"github.com/sirupsen/logrus"
)

const (
	OrderGuestsNumber    = "guests_number"
	OrderRoomsNumber     = "rooms_number"
	OrderApartmentClass  = "apartment_class"
	OrderCheckIn         = "check_in"
	OrderCheckOut        = "check_out"
	OrderManagerResponse = "manager_response"
	OrderAccountId       = "account_id"
	OrderApartmentId     = "apartment_id"
)

func bindOrder(o *types.Order) []any {
	return []any{
		o.GuestsNumber,
		o.RoomsNumber,
		o.ApartmentClass,
		o.CheckIn,
		o.CheckOut,
		o.ManagerResponse,
		o.AccountId,
		o.ApartmentId,
		o.State,
	}
}

var orderMapping = Mapping[types.Order]{
	// "order" is reserved in every dialect
	Table:    "apartment_order",
	IDColumn: EntityId,
	Columns: []string{
		OrderGuestsNumber,
		OrderRoomsNumber,
		OrderApartmentClass,
		OrderCheckIn,
		OrderCheckOut,
		OrderManagerResponse,
		OrderAccountId,
		OrderApartmentId,
		EntityState,
	},
	BindInsert: bindOrder,
	BindUpdate: func(o *types.Order) []any {
		return append(bindOrder(o), o.Id)
	},
	Extract: func(row Scanner) (*types.Order, error) {
		o := new(types.Order)
		err := row.Scan(
			&o.Id, &o.GuestsNumber, &o.RoomsNumber, &o.ApartmentClass, &o.CheckIn, &o.CheckOut,
			&o.ManagerResponse, &o.AccountId, &o.ApartmentId, &o.State,
		)
		return o, err
	},
	ApplyGeneratedKey: func(id int64, o *types.Order) {
		o.Id = id
	},
}

type OrderDAO struct {
	*Engine[types.Order]
}

func NewOrderDAO(dialect querybuilder.Dialect, log logrus.FieldLogger, metrics *Metrics) *OrderDAO {
	return &OrderDAO{Engine: NewEngine(orderMapping, dialect, log, metrics)}
}

// GetOpen lists orders still waiting for a manager response, oldest first.
func (d *OrderDAO) GetOpen(ctx context.Context, ex Executor, offset int, count int) ([]*types.Order, error) {
	q, err := d.Query().
		WhereField("apartment_order."+EntityState, true).
		WhereField("apartment_order."+OrderManagerResponse, "").
		OrderBy("apartment_order."+EntityId, false).
		Limit(offset, count).
		Build()
	if err != nil {
		return nil, err
	}
	return d.GetWithDynamicQuery(ctx, ex, q)
}

func (d *OrderDAO) GetByAccount(ctx context.Context, ex Executor, accountId int64) ([]*types.Order, error) {
	q, err := d.Query().
		WhereField("apartment_order."+OrderAccountId, accountId).
		OrderBy("apartment_order."+EntityId, true).
		Build()
	if err != nil {
		return nil, err
	}
	return d.GetWithDynamicQuery(ctx, ex, q)
}
