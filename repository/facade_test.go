package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"apartment_rent/repository"
	"apartment_rent/types"
	"apartment_rent/utils/querybuilder"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestBookingsOfAccount(t *testing.T) {
	db, mock := setupMock(t)
	dao := repository.NewBookingDAO(querybuilder.Postgres, quietLogger(), nil)
	checkIn := time.Date(2026, 7, 1, 14, 0, 0, 0, time.UTC)

	query := regexp.QuoteMeta(`SELECT booking.id, booking.check_in, booking.check_out, booking.price, booking.account_id, ` +
		`booking.apartment_id, booking.state FROM booking WHERE booking.account_id = $1 ORDER BY booking.check_in DESC`)
	mock.ExpectQuery(query).WithArgs(4).WillReturnRows(
		sqlmock.NewRows([]string{"id", "check_in", "check_out", "price", "account_id", "apartment_id", "state"}).
			AddRow(2, checkIn, checkIn.AddDate(0, 0, 3), 360, 4, 7, true),
	)

	bookings, err := dao.GetByAccount(context.Background(), db, 4)
	require.NoError(t, err)
	require.Equal(t, []*types.Booking{{
		Id: 2, CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 3), Price: 360, AccountId: 4, ApartmentId: 7, State: true,
	}}, bookings)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertBooking(t *testing.T) {
	db, mock := setupMock(t)
	dao := repository.NewBookingDAO(querybuilder.MySQL, quietLogger(), nil)
	checkIn := time.Date(2026, 7, 1, 14, 0, 0, 0, time.UTC)
	booking := types.Booking{CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 2), Price: 240, AccountId: 4, ApartmentId: 7, State: true}

	query := regexp.QuoteMeta(`INSERT INTO booking (check_in, check_out, price, account_id, apartment_id, state) VALUES (?, ?, ?, ?, ?, ?)`)
	mock.ExpectExec(query).WithArgs(booking.CheckIn, booking.CheckOut, booking.Price, booking.AccountId, booking.ApartmentId, booking.State).
		WillReturnResult(sqlmock.NewResult(31, 1))

	ok, err := dao.Insert(context.Background(), db, &booking)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(31), booking.Id)
}

func TestOpenOrders(t *testing.T) {
	db, mock := setupMock(t)
	dao := repository.NewOrderDAO(querybuilder.Postgres, quietLogger(), nil)
	checkIn := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	columns := []string{"id", "guests_number", "rooms_number", "apartment_class", "check_in", "check_out",
		"manager_response", "account_id", "apartment_id", "state"}

	query := regexp.QuoteMeta(`FROM apartment_order WHERE apartment_order.state = $1 AND apartment_order.manager_response = $2 ` +
		`ORDER BY apartment_order.id LIMIT $3 OFFSET $4`)
	mock.ExpectQuery(query).WithArgs(true, "", 8, 8).WillReturnRows(
		sqlmock.NewRows(columns).AddRow(11, 2, 1, "economy", checkIn, checkIn.AddDate(0, 0, 5), "", 4, nil, true),
	)

	orders, err := dao.GetOpen(context.Background(), db, 9, 8)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Nil(t, orders[0].ApartmentId)
	require.Equal(t, "economy", orders[0].ApartmentClass)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountByLogin(t *testing.T) {
	db, mock := setupMock(t)
	dao := repository.NewAccountDAO(querybuilder.Postgres, quietLogger(), nil)

	query := regexp.QuoteMeta(`FROM account WHERE account.login = $1 ORDER BY account.id`)
	mock.ExpectQuery(query).WithArgs("guest@example.com").WillReturnRows(
		sqlmock.NewRows([]string{"id", "login", "password", "first_name", "last_name", "role", "state"}).
			AddRow(4, "guest@example.com", "hash", "Ann", "Lee", "User", true),
	)

	account, err := dao.GetByLogin(context.Background(), db, "guest@example.com")
	require.NoError(t, err)
	require.Equal(t, &types.Account{
		Id: 4, Login: "guest@example.com", Password: "hash", FirstName: "Ann", LastName: "Lee", Role: types.UserRole, State: true,
	}, account)
}
