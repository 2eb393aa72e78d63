package transport

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"goldenPalmDash/internal/modules/dashboard/application/usecase"
	"goldenPalmDash/internal/modules/dashboard/domain"
)

type BookingHandler struct {
	uc     *usecase.BookingUseCase
	errors *ErrorMapper
}

func NewBookingHandler(uc *usecase.BookingUseCase, mapper *ErrorMapper) *BookingHandler {
	if mapper == nil {
		mapper = NewErrorMapper()
	}
	return &BookingHandler{uc: uc, errors: mapper}
}

// Submit takes the public booking form. On success the page navigates to the confirmation.
func (h *BookingHandler) Submit(c echo.Context) error {
	var form domain.BookingForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking form")
	}

	confirmation, err := h.uc.Submit(c.Request().Context(), sessionOf(c), form)
	if err == nil {
		return c.JSON(http.StatusCreated, confirmation)
	}

	var failed *usecase.BookingFailedError
	if errors.As(err, &failed) {
		info := h.errors.mapper.Map(failed.Err)
		return c.JSON(info.Status, errorBody{Error: failed.Message})
	}
	return h.errors.Respond(c, err)
}
