package common

import (
	"errors"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// DataError is an HTTP error that carries structured detail rendered in the
// data field of ErrorResponse. It unwraps to a *fiber.Error so status-aware
// middleware sees the right code.
type DataError struct {
	status *fiber.Error
	Data   interface{}
}

// NewDataError creates a DataError with the default message for code.
func NewDataError(code int, data interface{}) *DataError {
	return &DataError{status: fiber.NewError(code), Data: data}
}

// Error implements the error interface.
func (e *DataError) Error() string { return e.status.Message }

// Unwrap exposes the underlying fiber error.
func (e *DataError) Unwrap() error { return e.status }

// ErrorHandler renders every unhandled error as an ErrorResponse.
func ErrorHandler(c *fiber.Ctx, err error) error {
	resp := ErrorResponse{
		Error:      true,
		StatusCode: fiber.StatusInternalServerError,
		Message:    err.Error(),
	}

	var de *DataError
	if errors.As(err, &de) {
		resp.Data = de.Data
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		resp.StatusCode = fe.Code
		resp.Message = fe.Message
	}

	return c.Status(resp.StatusCode).JSON(resp)
}

// NewApp creates a Fiber application with the shared JSON codec and error
// handler, plus panic recovery and permissive CORS.
func NewApp(name string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               name,
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	return app
}
