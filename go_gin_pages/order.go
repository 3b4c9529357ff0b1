package go_gin_pages

import (
	"context"
	"fmt"
	"net/http"

	"apartment_rent/types"
	"apartment_rent/utils/errDefs"

	"github.com/gin-gonic/gin"
)

type OrderService interface {
	CreateOrder(ctx context.Context, order *types.Order) error
	FindOpenOrders(ctx context.Context, window types.Window) ([]*types.Order, error)
	FindOrdersOfAccount(ctx context.Context, accountId int64) ([]*types.Order, error)
	RespondToOrder(ctx context.Context, id int64, response string, apartmentId *int64) (*types.Order, error)
}

type orderResponseData struct {
	ManagerResponse string `json:"managerResponse" binding:"required"`
	ApartmentId     *int64 `json:"apartmentId"`
}

type orderHandler struct {
	svc            OrderService
	recordsPerPage int
}

func NewOrderHandler(svc OrderService, recordsPerPage int) *orderHandler {
	return &orderHandler{svc: svc, recordsPerPage: recordsPerPage}
}

// GetOrdersHandler lists the orders of `accountId`, or a page of open orders without it.
func (oh *orderHandler) GetOrdersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountId, err := intQuery(c, "accountId", 0)
		if err != nil {
			returnError(c, err)
			return
		}
		var orders []*types.Order
		if accountId > 0 {
			orders, err = oh.svc.FindOrdersOfAccount(c.Request.Context(), int64(accountId))
		} else {
			var window types.Window
			if window, err = windowFromQuery(c, oh.recordsPerPage); err != nil {
				returnError(c, err)
				return
			}
			orders, err = oh.svc.FindOpenOrders(c.Request.Context(), window)
		}
		if err != nil {
			returnError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func (oh *orderHandler) PostOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var data types.Order
		if err := c.ShouldBindJSON(&data); err != nil {
			returnError(c, fmt.Errorf("%w: %v", errDefs.ErrBadRequest, err.Error()))
			return
		}
		if err := oh.svc.CreateOrder(c.Request.Context(), &data); err != nil {
			returnError(c, err)
			return
		}
		c.JSON(http.StatusCreated, data)
	}
}

func (oh *orderHandler) PatchOrderResponseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := int64Param(c, "id")
		if err != nil {
			returnError(c, err)
			return
		}
		var data orderResponseData
		if err := c.ShouldBindJSON(&data); err != nil {
			returnError(c, fmt.Errorf("%w: %v", errDefs.ErrBadRequest, err.Error()))
			return
		}
		order, err := oh.svc.RespondToOrder(c.Request.Context(), id, data.ManagerResponse, data.ApartmentId)
		if err != nil {
			returnError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func (oh *orderHandler) prepareOrder(route *gin.RouterGroup, guard func(gin.HandlerFunc) gin.HandlerFunc) {
	route.GET("", guard(oh.GetOrdersHandler()))
	route.POST("", guard(oh.PostOrderHandler()))
	route.PATCH("/:id/response", guard(oh.PatchOrderResponseHandler()))
}
