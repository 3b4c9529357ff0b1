package repository

import (
	"context"

	"apartment_rent/types"
	"apartment_rent/utils/querybuilder"

	"github.com/sirupsen/logrus"
)

const (
	BookingCheckIn     = "check_in"
	BookingCheckOut    = "check_out"
	BookingPrice       = "price"
	BookingAccountId   = "account_id"
	BookingApartmentId = "apartment_id"
)

func bindBooking(b *types.Booking) []any {
	return []any{b.CheckIn, b.CheckOut, b.Price, b.AccountId, b.ApartmentId, b.State}
}

var bookingMapping = Mapping[types.Booking]{
	Table:      "booking",
	IDColumn:   EntityId,
	Columns:    []string{BookingCheckIn, BookingCheckOut, BookingPrice, BookingAccountId, BookingApartmentId, EntityState},
	BindInsert: bindBooking,
	BindUpdate: func(b *types.Booking) []any {
		return append(bindBooking(b), b.Id)
	},
	Extract: func(row Scanner) (*types.Booking, error) {
		b := new(types.Booking)
		err := row.Scan(&b.Id, &b.CheckIn, &b.CheckOut, &b.Price, &b.AccountId, &b.ApartmentId, &b.State)
		return b, err
	},
	ApplyGeneratedKey: func(id int64, b *types.Booking) {
		b.Id = id
	},
}

type BookingDAO struct {
	*Engine[types.Booking]
}

func NewBookingDAO(dialect querybuilder.Dialect, log logrus.FieldLogger, metrics *Metrics) *BookingDAO {
	return &BookingDAO{Engine: NewEngine(bookingMapping, dialect, log, metrics)}
}

func (d *BookingDAO) GetByAccount(ctx context.Context, ex Executor, accountId int64) ([]*types.Booking, error) {
	q, err := d.Query().
		WhereField("booking."+BookingAccountId, accountId).
		OrderBy("booking."+BookingCheckIn, true).
		Build()
	if err != nil {
		return nil, err
	}
	return d.GetWithDynamicQuery(ctx, ex, q)
}
