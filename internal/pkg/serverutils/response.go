// FILE: internal/pkg/serverutils/response.go
// JSON response envelopes shared by all controllers
package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Response[T any] struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Code:    fiber.StatusOK,
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) Response[any] {
	return Response[any]{
		Code:    code,
		Status:  "error",
		Message: message,
	}
}

// ErrorResponseWithData is for errors the client acts on, like a quota
// denial that should render an upsell modal.
func ErrorResponseWithData[T any](code int, message string, data T) Response[T] {
	return Response[T]{
		Code:    code,
		Status:  "error",
		Message: message,
		Data:    data,
	}
}

// ErrorHandlerMiddleware catches errors bubbling out of handlers and maps
// them to the standard envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
