package controller

import (
	"net/http"

	"github.com/alimikegami/bulknest-server/internal/dto"
	"github.com/alimikegami/bulknest-server/internal/service"
	"github.com/alimikegami/bulknest-server/pkg/response"
	"github.com/labstack/echo/v4"
)

type UserController struct {
	service service.UserService
}

func CreateUserController(g *echo.Group, service service.UserService) {
	c := UserController{
		service: service,
	}
	g.POST("/user", c.UpsertUser)
	g.GET("/user/role/:email", c.GetRole)
}

func (c *UserController) UpsertUser(e echo.Context) error {
	payload := dto.UserRequest{}
	if err := bindAndValidate(e, &payload, "UpsertUser"); err != nil {
		return writeRequestError(e, err)
	}

	user, created, err := c.service.UpsertOnLogin(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	if created {
		return response.WriteCreatedResponse(e, "User created", user)
	}

	return response.WriteSuccessResponseWithStatus(e, http.StatusOK, "Last login updated", user)
}

func (c *UserController) GetRole(e echo.Context) error {
	data, err := c.service.GetRole(e.Request().Context(), e.Param("email"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}
