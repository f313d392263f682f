package controller

import (
	"github.com/alimikegami/bulknest-server/pkg/errs"
	"github.com/alimikegami/bulknest-server/pkg/response"
	"github.com/alimikegami/bulknest-server/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

func bindAndValidate(e echo.Context, payload interface{}, component string) error {
	if err := e.Bind(payload); err != nil {
		log.Ctx(e.Request().Context()).Warn().Err(err).Str("component", component).Msg("")
		return errs.ErrClient
	}

	return e.Validate(payload)
}

// writeRequestError reports validator failures field by field and anything
// else through the usual error mapping.
func writeRequestError(e echo.Context, err error) error {
	fields := utils.FieldErrors(err)
	if fields == nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	validationErrors := make([]response.ValidationError, 0, len(fields))
	for _, f := range fields {
		validationErrors = append(validationErrors, response.ValidationError{Field: f.Field, Tag: f.Tag})
	}

	return response.WriteErrorResponse(e, errs.ErrClient, validationErrors)
}
