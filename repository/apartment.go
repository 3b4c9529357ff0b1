package repository

import (
	"context"
	"fmt"

	"apartment_rent/types"
	"apartment_rent/utils/errDefs"
	"apartment_rent/utils/querybuilder"

	"github.com/sirupsen/logrus"
)

const (
	ApartmentTitle          = "title"
	ApartmentDescription    = "description"
	ApartmentImageURL       = "image_url"
	ApartmentAddress        = "address"
	ApartmentMaxGuestNumber = "max_guests_number"
	ApartmentRoomsNumber    = "rooms_number"
	ApartmentClass          = "apartment_class"
	ApartmentPrice          = "price"
)

// joins the bookings of one account onto apartment
const uniqueApartmentsWhichAreBooked = "JOIN %s b ON b.apartment_id = apartment.id AND b.account_id = ? AND b.state = ?"

func bindApartment(a *types.Apartment) []any {
	return []any{
		a.Title,
		a.Description,
		a.ImageURL,
		a.Address,
		a.MaxGuestsNumber,
		a.RoomsNumber,
		a.ApartmentClass,
		a.Price,
		a.State,
	}
}

var apartmentMapping = Mapping[types.Apartment]{
	Table:    "apartment",
	IDColumn: EntityId,
	Columns: []string{
		ApartmentTitle,
		ApartmentDescription,
		ApartmentImageURL,
		ApartmentAddress,
		ApartmentMaxGuestNumber,
		ApartmentRoomsNumber,
		ApartmentClass,
		ApartmentPrice,
		EntityState,
	},
	BindInsert: bindApartment,
	BindUpdate: func(a *types.Apartment) []any {
		return append(bindApartment(a), a.Id)
	},
	Extract: func(row Scanner) (*types.Apartment, error) {
		a := new(types.Apartment)
		err := row.Scan(
			&a.Id, &a.Title, &a.Description, &a.ImageURL, &a.Address,
			&a.MaxGuestsNumber, &a.RoomsNumber, &a.ApartmentClass, &a.Price, &a.State,
		)
		return a, err
	},
	ApplyGeneratedKey: func(id int64, a *types.Apartment) {
		a.Id = id
	},
}

var sortableApartmentColumns = map[string]bool{
	EntityId:                true,
	ApartmentTitle:          true,
	ApartmentMaxGuestNumber: true,
	ApartmentRoomsNumber:    true,
	ApartmentClass:          true,
	ApartmentPrice:          true,
}

type ApartmentDAO struct {
	*Engine[types.Apartment]
}

func NewApartmentDAO(dialect querybuilder.Dialect, log logrus.FieldLogger, metrics *Metrics) *ApartmentDAO {
	return &ApartmentDAO{Engine: NewEngine(apartmentMapping, dialect, log, metrics)}
}

// GetUniqueApartmentsWhichAreBooked lists, once each, the apartments the
// account holds an active booking for, windowed like GetFew.
func (d *ApartmentDAO) GetUniqueApartmentsWhichAreBooked(ctx context.Context, ex Executor, accountId int64, offset int, count int) ([]*types.Apartment, error) {
	q, err := d.Query().
		Distinct().
		WithDynamicClause(uniqueApartmentsWhichAreBooked, bookingMapping.Table).
		Bind(accountId, true).
		OrderBy("apartment."+EntityId, false).
		Limit(offset, count).
		Build()
	if err != nil {
		return nil, err
	}
	return d.GetWithDynamicQuery(ctx, ex, q)
}

// GetFewSorted windows the apartments ordered by column, ties broken by id.
func (d *ApartmentDAO) GetFewSorted(ctx context.Context, ex Executor, column string, desc bool, offset int, count int) ([]*types.Apartment, error) {
	if !sortableApartmentColumns[column] {
		return nil, fmt.Errorf("%w: apartments can not be sorted by %q", errDefs.ErrInvalidArgument, column)
	}
	q, err := d.Query().
		OrderBy("apartment."+column, desc).
		OrderBy("apartment."+EntityId, false).
		Limit(offset, count).
		Build()
	if err != nil {
		return nil, err
	}
	return d.GetWithDynamicQuery(ctx, ex, q)
}
