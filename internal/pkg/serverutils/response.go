package serverutils

import (
	"errors"
	"strings"

	"github.com/Dushime20/urutibiz-backend-sub001/pkg/booking"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type Response[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Code:    fiber.StatusOK,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) Response[any] {
	return Response[any]{
		Code:    code,
		Message: message,
	}
}

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts the first failure
// into the domain's validation error so the error handler maps it to 400.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return &booking.ValidationError{
				Field:  strings.ToLower(first.Field()),
				Reason: "failed on rule '" + first.Tag() + "'",
			}
		}
		return err
	}
	return nil
}

// ErrorHandlerMiddleware translates domain errors into HTTP responses.
// Busy maps to 503 with a Retry-After hint because the caller lost a
// short-lived serialization race, not a business rule.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var (
			validationErr *booking.ValidationError
			conflictErr   *booking.ConflictError
			transitionErr *booking.InvalidTransitionError
			pricingErr    *booking.PricingConfigError
		)

		switch {
		case errors.As(err, &validationErr):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, validationErr.Error()))
		case errors.As(err, &conflictErr):
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(fiber.StatusConflict, conflictErr.Error()))
		case errors.As(err, &transitionErr):
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse(fiber.StatusUnprocessableEntity, transitionErr.Error()))
		case errors.As(err, &pricingErr):
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "pricing configuration error"))
		case errors.Is(err, booking.ErrBusy):
			ctx.Set("Retry-After", "1")
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse(fiber.StatusServiceUnavailable, "resource is busy, retry shortly"))
		case errors.Is(err, booking.ErrForbidden):
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(fiber.StatusForbidden, "forbidden"))
		case errors.Is(err, booking.ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, "not found"))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
	}
}
