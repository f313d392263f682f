package controller

import (
	"github.com/alimikegami/bulknest-server/internal/dto"
	"github.com/alimikegami/bulknest-server/internal/service"
	"github.com/alimikegami/bulknest-server/pkg/response"
	"github.com/alimikegami/bulknest-server/pkg/utils"
	"github.com/labstack/echo/v4"
)

type OrderController struct {
	service service.OrderService
}

func CreateOrderController(g *echo.Group, service service.OrderService, isLoggedIn echo.MiddlewareFunc) {
	c := OrderController{
		service: service,
	}
	g.GET("/orders/:email", c.GetOrders, isLoggedIn)
	g.GET("/seller-orders/:email", c.GetSellerOrders, isLoggedIn)
	g.POST("/orders/:email", c.PlaceOrder, isLoggedIn)
	g.DELETE("/orders/:id", c.DeleteOrder, isLoggedIn)
}

func (c *OrderController) GetOrders(e echo.Context) error {
	data, err := c.service.GetOrdersByEmail(e.Request().Context(), utils.ExtractTokenEmail(e), e.Param("email"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *OrderController) GetSellerOrders(e echo.Context) error {
	data, err := c.service.GetSellerOrders(e.Request().Context(), utils.ExtractTokenEmail(e), e.Param("email"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *OrderController) PlaceOrder(e echo.Context) error {
	payload := dto.OrderRequest{}
	if err := bindAndValidate(e, &payload, "PlaceOrder"); err != nil {
		return writeRequestError(e, err)
	}

	data, err := c.service.PlaceOrder(e.Request().Context(), utils.ExtractTokenEmail(e), e.Param("email"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "Order placed successfully", data)
}

func (c *OrderController) DeleteOrder(e echo.Context) error {
	data, err := c.service.DeleteOrder(e.Request().Context(), utils.ExtractTokenEmail(e), e.QueryParam("email"), e.Param("id"), e.QueryParam("type"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}
