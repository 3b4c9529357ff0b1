package repository_test

import (
	"database/sql"
	"database/sql/driver"
	"io"
	"testing"

	"apartment_rent/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const apartmentColumnList = "title, description, image_url, address, max_guests_number, rooms_number, apartment_class, price, state"

var apartmentColumns = []string{
	"id", "title", "description", "image_url", "address",
	"max_guests_number", "rooms_number", "apartment_class", "price", "state",
}

func setupMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func sampleApartment(title string) types.Apartment {
	return types.Apartment{
		Title:           title,
		Description:     "Two rooms facing the river",
		ImageURL:        "https://img.example.com/" + title + ".png",
		Address:         "1 Quay Street",
		MaxGuestsNumber: 4,
		RoomsNumber:     2,
		ApartmentClass:  "standard",
		Price:           120,
		State:           true,
	}
}

func apartmentArgs(a types.Apartment) []any {
	return []any{
		a.Title, a.Description, a.ImageURL, a.Address,
		a.MaxGuestsNumber, a.RoomsNumber, a.ApartmentClass, a.Price, a.State,
	}
}

func addApartmentRow(rows *sqlmock.Rows, a types.Apartment) *sqlmock.Rows {
	return rows.AddRow(toDriverValues(append([]any{a.Id}, apartmentArgs(a)...))...)
}

func toDriverValues(values []any) []driver.Value {
	converted := make([]driver.Value, len(values))
	for i, v := range values {
		converted[i] = v
	}
	return converted
}
