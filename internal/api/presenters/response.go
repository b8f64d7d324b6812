package presenters

import (
	"errors"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/logging"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const messageInternalError = "internal server error"

type Response struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	if statusCode == fiber.StatusNoContent {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes the error envelope. Server errors are logged and
// their details are not sent to the client.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}

	if statusCode >= fiber.StatusInternalServerError {
		logging.Error().
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg(message)
		res.Error = messageInternalError
		return c.Status(statusCode).JSON(res)
	}

	if err != nil {
		res.Error = err.Error()
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			res.Errors = verr.Fields
		}
	}
	return c.Status(statusCode).JSON(res)
}

// Fail writes err with the status StatusFor picks for it.
func Fail(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, StatusFor(err), message, err)
}

var (
	unauthorizedErrors = []error{
		domain.ErrUnauthorized,
		domain.ErrTokenNotFound,
		domain.ErrTokenInvalid,
		domain.ErrTokenExpired,
		domain.ErrTokenRevoked,
	}

	forbiddenErrors = []error{
		domain.ErrUserNotAllowed,
		domain.ErrUnauthorizedRecipeAccess,
	}

	notFoundErrors = []error{
		domain.ErrUserNotFound,
		domain.ErrRecipeNotFound,
		domain.ErrIngredientNotFound,
		domain.ErrShortLinkNotFound,
	}

	badRequestErrors = []error{
		domain.ErrParseUUID,
		domain.ErrUnknownFields,
		domain.ErrEmailAlreadyExists,
		domain.ErrUsernameAlreadyExists,
		domain.ErrInvalidCredentials,
		domain.ErrWrongPassword,
		domain.ErrSamePassword,
		domain.ErrNoAvatar,
		domain.ErrInvalidImage,
		domain.ErrSelfSubscription,
		domain.ErrAlreadySubscribed,
		domain.ErrSubscriptionNotFound,
		domain.ErrIngredientAlreadyExists,
		domain.ErrNoIngredients,
		domain.ErrDuplicateIngredients,
		domain.ErrUnknownIngredient,
		domain.ErrImageRequired,
		domain.ErrAlreadyFavourited,
		domain.ErrNotFavourited,
		domain.ErrAlreadyInCart,
		domain.ErrNotInCart,
		domain.ErrShortLinkTooLong,
		gorm.ErrDuplicatedKey,
	}
)

// StatusFor maps service errors onto HTTP status codes. Unknown errors are
// server errors.
func StatusFor(err error) int {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return fiber.StatusBadRequest
	}
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return ferr.Code
	}

	switch {
	case isAny(err, unauthorizedErrors):
		return fiber.StatusUnauthorized
	case isAny(err, forbiddenErrors):
		return fiber.StatusForbidden
	case isAny(err, notFoundErrors):
		return fiber.StatusNotFound
	case isAny(err, badRequestErrors):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
