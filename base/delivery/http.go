package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nftmarket/goapi/domain"
	"github.com/nftmarket/goapi/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

// MakeJsonResp writes the json envelope. When data is an error the status
// is corrected according to the marketplace error taxonomy.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		switch {
		case errors.Is(err, domain.ErrNotFound) || errors.Is(err, query.ErrNotFound) || errors.Is(err, domain.ErrNotListed):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrCallerNotAuthorized):
			status = http.StatusUnauthorized
		case errors.Is(err, domain.ErrAlreadyListed):
			status = http.StatusConflict
		case errors.Is(err, domain.ErrInvalidListing) || errors.Is(err, domain.ErrInsufficientFunds) || errors.Is(err, domain.ErrBadParamInput):
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrTransferFailed):
			status = http.StatusBadGateway
		}
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
