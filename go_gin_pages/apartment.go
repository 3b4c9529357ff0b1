package go_gin_pages

import (
	"context"
	"fmt"
	"net/http"

	"apartment_rent/types"
	"apartment_rent/utils/errDefs"

	"github.com/gin-gonic/gin"
)

type ApartmentService interface {
	CreateApartment(ctx context.Context, apartment *types.Apartment) error
	FindApartment(ctx context.Context, id int64) (*types.Apartment, error)
	FindFewApartments(ctx context.Context, window types.Window) ([]*types.Apartment, error)
	FindFewApartmentsSorted(ctx context.Context, window types.Window, column string, desc bool) ([]*types.Apartment, error)
	FindBookedApartments(ctx context.Context, accountId int64, window types.Window) ([]*types.Apartment, error)
	UpdateApartment(ctx context.Context, apartment *types.Apartment) error
	DisableApartment(ctx context.Context, id int64) error
	DeleteApartment(ctx context.Context, id int64) error
	CountApartments(ctx context.Context) (int64, error)
}

type apartmentHandler struct {
	svc            ApartmentService
	recordsPerPage int
}

func NewApartmentHandler(svc ApartmentService, recordsPerPage int) *apartmentHandler {
	return &apartmentHandler{svc: svc, recordsPerPage: recordsPerPage}
}

// GetApartmentsHandler serves one page, optionally sorted with `sort` and `desc`
// or restricted to the apartments an account booked with `bookedBy`.
func (ah *apartmentHandler) GetApartmentsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		window, err := windowFromQuery(c, ah.recordsPerPage)
		if err != nil {
			returnError(c, err)
			return
		}
		ctx := c.Request.Context()

		var apartments []*types.Apartment
		switch {
		case c.Query("bookedBy") != "":
			var accountId int
			if accountId, err = intQuery(c, "bookedBy", 0); err != nil {
				returnError(c, err)
				return
			}
			apartments, err = ah.svc.FindBookedApartments(ctx, int64(accountId), window)
		case c.Query("sort") != "":
			apartments, err = ah.svc.FindFewApartmentsSorted(ctx, window, c.Query("sort"), c.Query("desc") == "true")
		default:
			apartments, err = ah.svc.FindFewApartments(ctx, window)
		}
		if err != nil {
			returnError(c, err)
			return
		}

		total, err := ah.svc.CountApartments(ctx)
		if err != nil {
			returnError(c, err)
			return
		}
		pageHeaders(c, total, window)
		c.JSON(http.StatusOK, apartments)
	}
}

func (ah *apartmentHandler) GetApartmentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := int64Param(c, "id")
		if err != nil {
			returnError(c, err)
			return
		}
		apartment, err := ah.svc.FindApartment(c.Request.Context(), id)
		if err != nil {
			returnError(c, err)
			return
		}
		c.JSON(http.StatusOK, apartment)
	}
}

func (ah *apartmentHandler) PostApartmentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var data types.Apartment
		if err := c.ShouldBindJSON(&data); err != nil {
			returnError(c, fmt.Errorf("%w: %v", errDefs.ErrBadRequest, err.Error()))
			return
		}
		data.Id = 0
		if err := ah.svc.CreateApartment(c.Request.Context(), &data); err != nil {
			returnError(c, err)
			return
		}
		c.JSON(http.StatusCreated, data)
	}
}

func (ah *apartmentHandler) PutApartmentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := int64Param(c, "id")
		if err != nil {
			returnError(c, err)
			return
		}
		var data types.Apartment
		if err := c.ShouldBindJSON(&data); err != nil {
			returnError(c, fmt.Errorf("%w: %v", errDefs.ErrBadRequest, err.Error()))
			return
		}
		data.Id = id
		if err := ah.svc.UpdateApartment(c.Request.Context(), &data); err != nil {
			returnError(c, err)
			return
		}
		c.JSON(http.StatusOK, data)
	}
}

// DeleteApartmentHandler removes the row, or only disables the apartment
// when `soft=true` is given.
func (ah *apartmentHandler) DeleteApartmentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := int64Param(c, "id")
		if err != nil {
			returnError(c, err)
			return
		}
		if c.Query("soft") == "true" {
			err = ah.svc.DisableApartment(c.Request.Context(), id)
		} else {
			err = ah.svc.DeleteApartment(c.Request.Context(), id)
		}
		if err != nil {
			returnError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, nil)
	}
}

func (ah *apartmentHandler) prepareApartment(route *gin.RouterGroup, guard func(gin.HandlerFunc) gin.HandlerFunc) {
	route.GET("", guard(ah.GetApartmentsHandler()))
	route.GET("/:id", guard(ah.GetApartmentHandler()))
	route.POST("", guard(ah.PostApartmentHandler()))
	route.PUT("/:id", guard(ah.PutApartmentHandler()))
	route.DELETE("/:id", guard(ah.DeleteApartmentHandler()))
}
