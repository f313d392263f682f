package controller

import (
	"strconv"

	"github.com/alimikegami/bulknest-server/internal/dto"
	"github.com/alimikegami/bulknest-server/internal/service"
	"github.com/alimikegami/bulknest-server/pkg/errs"
	"github.com/alimikegami/bulknest-server/pkg/response"
	"github.com/alimikegami/bulknest-server/pkg/utils"
	"github.com/labstack/echo/v4"
)

type ProductController struct {
	service service.ProductService
}

func CreateProductController(g *echo.Group, service service.ProductService, isLoggedIn echo.MiddlewareFunc) {
	c := ProductController{
		service: service,
	}
	g.GET("/products", c.GetProducts)
	g.GET("/categories/:category", c.GetProductsByCategory, isLoggedIn)
	g.GET("/product/:id", c.GetProductByID, isLoggedIn)
	g.GET("/myProducts/:email", c.GetMyProducts, isLoggedIn)
	g.POST("/products/:email", c.AddProduct, isLoggedIn)
	g.PATCH("/product/:id", c.UpdateProduct, isLoggedIn)
	g.DELETE("/product/:id", c.DeleteProduct, isLoggedIn)
}

func (c *ProductController) GetProducts(e echo.Context) error {
	availableOnly := false
	if raw := e.QueryParam("available"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return response.WriteErrorResponse(e, errs.ErrClient, []response.ValidationError{{Field: "available", Tag: "boolean"}})
		}
		availableOnly = parsed
	}

	data, err := c.service.GetProducts(e.Request().Context(), availableOnly)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *ProductController) GetProductsByCategory(e echo.Context) error {
	data, err := c.service.GetProductsByCategory(e.Request().Context(), utils.ExtractTokenEmail(e), e.QueryParam("email"), e.Param("category"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *ProductController) GetProductByID(e echo.Context) error {
	data, err := c.service.GetProductByID(e.Request().Context(), utils.ExtractTokenEmail(e), e.QueryParam("email"), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *ProductController) GetMyProducts(e echo.Context) error {
	data, err := c.service.GetProductsByOwner(e.Request().Context(), utils.ExtractTokenEmail(e), e.Param("email"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *ProductController) AddProduct(e echo.Context) error {
	payload := dto.ProductRequest{}
	if err := bindAndValidate(e, &payload, "AddProduct"); err != nil {
		return writeRequestError(e, err)
	}

	data, err := c.service.AddProduct(e.Request().Context(), utils.ExtractTokenEmail(e), e.Param("email"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "Product created", data)
}

func (c *ProductController) UpdateProduct(e echo.Context) error {
	payload := dto.ProductPatchRequest{}
	if err := bindAndValidate(e, &payload, "UpdateProduct"); err != nil {
		return writeRequestError(e, err)
	}

	err := c.service.UpdateProduct(e.Request().Context(), utils.ExtractTokenEmail(e), e.QueryParam("email"), e.Param("id"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Product updated", nil)
}

func (c *ProductController) DeleteProduct(e echo.Context) error {
	err := c.service.DeleteProduct(e.Request().Context(), utils.ExtractTokenEmail(e), e.QueryParam("email"), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Product deleted", nil)
}
