package go_gin_pages

import (
	"context"
	"fmt"
	"net/http"

	"apartment_rent/types"
	"apartment_rent/utils/errDefs"

	"github.com/gin-gonic/gin"
)

type BookingService interface {
	CreateBooking(ctx context.Context, data *types.BookingPostData) (*types.Booking, error)
	FindBooking(ctx context.Context, id int64) (*types.Booking, error)
	FindFewBookings(ctx context.Context, filter types.BookingFilter) ([]*types.Booking, error)
	CancelBooking(ctx context.Context, id int64) (*types.Booking, error)
}

type bookingHandler struct {
	svc            BookingService
	recordsPerPage int
}

func NewBookingHandler(svc BookingService, recordsPerPage int) *bookingHandler {
	return &bookingHandler{svc: svc, recordsPerPage: recordsPerPage}
}

func (bh *bookingHandler) filterFromQuery(c *gin.Context) (filter types.BookingFilter, err error) {
	if filter.Window, err = windowFromQuery(c, bh.recordsPerPage); err != nil {
		return
	}
	accountId, err := intQuery(c, "accountId", 0)
	if err != nil {
		return
	}
	apartmentId, err := intQuery(c, "apartmentId", 0)
	if err != nil {
		return
	}
	filter.AccountId = int64(accountId)
	filter.ApartmentId = int64(apartmentId)
	filter.OnlyActive = c.Query("active") == "true"
	filter.SortBy = c.Query("sort")
	filter.Desc = c.Query("desc") == "true"
	return
}

func (bh *bookingHandler) GetBookingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := bh.filterFromQuery(c)
		if err != nil {
			returnError(c, err)
			return
		}
		bookings, err := bh.svc.FindFewBookings(c.Request.Context(), filter)
		if err != nil {
			returnError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
	}
}

func (bh *bookingHandler) GetBookingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := int64Param(c, "id")
		if err != nil {
			returnError(c, err)
			return
		}
		booking, err := bh.svc.FindBooking(c.Request.Context(), id)
		if err != nil {
			returnError(c, err)
			return
		}
		c.JSON(http.StatusOK, booking)
	}
}

func (bh *bookingHandler) PostBookingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var data types.BookingPostData
		if err := c.ShouldBindJSON(&data); err != nil {
			returnError(c, fmt.Errorf("%w: %v", errDefs.ErrBadRequest, err.Error()))
			return
		}
		booking, err := bh.svc.CreateBooking(c.Request.Context(), &data)
		if err != nil {
			returnError(c, err)
			return
		}
		c.JSON(http.StatusCreated, booking)
	}
}

// DeleteBookingHandler cancels; the booking row is kept.
func (bh *bookingHandler) DeleteBookingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := int64Param(c, "id")
		if err != nil {
			returnError(c, err)
			return
		}
		booking, err := bh.svc.CancelBooking(c.Request.Context(), id)
		if err != nil {
			returnError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, booking)
	}
}

func (bh *bookingHandler) prepareBooking(route *gin.RouterGroup, guard func(gin.HandlerFunc) gin.HandlerFunc) {
	route.GET("", guard(bh.GetBookingsHandler()))
	route.GET("/:id", guard(bh.GetBookingHandler()))
	route.POST("", guard(bh.PostBookingHandler()))
	route.DELETE("/:id", guard(bh.DeleteBookingHandler()))
}
