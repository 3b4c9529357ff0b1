package service_test

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"testing"

	"apartment_rent/repository"
	"apartment_rent/service"
	"apartment_rent/types"
	"apartment_rent/utils/querybuilder"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

type services struct {
	repo       *repository.Repo
	accounts   *service.AccountService
	apartments *service.ApartmentService
	bookings   *service.BookingService
	orders     *service.OrderService
}

func setupServices(t *testing.T) services {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "rent.db") +
		"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_txlock=immediate&_time_format=sqlite"
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)
	r := repository.NewRepo(repository.NewDatabase(db, querybuilder.SQLite), log, nil)
	require.NoError(t, r.PrepareSchema(context.Background()))

	return services{
		repo:       r,
		accounts:   &service.AccountService{Repo: r},
		apartments: &service.ApartmentService{Repo: r},
		bookings:   &service.BookingService{Repo: r},
		orders:     &service.OrderService{Repo: r},
	}
}

func newApartment(title string, price int64) *types.Apartment {
	return &types.Apartment{
		Title:           title,
		Description:     "Bright and quiet",
		Address:         "7 Harbour Lane",
		MaxGuestsNumber: 3,
		RoomsNumber:     1,
		ApartmentClass:  "economy",
		Price:           price,
		State:           true,
	}
}

func createAccount(t *testing.T, s services, login string) *types.Account {
	t.Helper()
	account, err := s.accounts.CreateAccount(context.Background(), &types.AccountPostData{
		Login:        login,
		Password:     "correct horse battery",
		SamePassword: "correct horse battery",
		FirstName:    "Ann",
		LastName:     "Lee",
	})
	require.NoError(t, err)
	return account
}

func createApartment(t *testing.T, s services, title string, price int64) *types.Apartment {
	t.Helper()
	apartment := newApartment(title, price)
	require.NoError(t, s.apartments.CreateApartment(context.Background(), apartment))
	return apartment
}

func firstPage(t *testing.T) types.Window {
	w, err := types.NewWindow(1, types.DefaultRecordsPerPage)
	require.NoError(t, err)
	return w
}
