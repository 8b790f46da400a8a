package middleware

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// QueryParamsKey is the Locals key holding the parsed query struct.
const QueryParamsKey = "queryParams"

var validate = validator.New()

// ValidateQuery parses the query string into a fresh T on every request,
// validates it, and stores the *T under QueryParamsKey.
func ValidateQuery[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := new(T)
		if err := c.QueryParser(params); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid query parameters",
				"msg":   err.Error(),
			})
		}

		if err := validate.Struct(params); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return err
			}
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "Invalid query parameters",
				"fields": fields,
			})
		}

		c.Locals(QueryParamsKey, params)
		return c.Next()
	}
}

// QueryParams returns the struct stored by ValidateQuery.
func QueryParams[T any](c *fiber.Ctx) *T {
	if p, ok := c.Locals(QueryParamsKey).(*T); ok {
		return p
	}
	return new(T)
}
