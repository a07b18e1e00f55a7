package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"uctools/services"
)

// HandlePasswordGenerate handles POST /api/password.
// Validation failures return the Spanish message the generator widget shows
// inline.
func HandlePasswordGenerate() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		spec := services.PasswordSpec{}
		if err := e.BindBody(&spec); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		}

		password, err := services.GeneratePassword(spec)
		if err != nil {
			if isPasswordInputError(err) {
				return e.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
			}
			log.Printf("password: HandlePasswordGenerate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "Something went wrong"})
		}

		return e.JSON(http.StatusOK, map[string]any{"password": password})
	}
}

// isPasswordInputError distinguishes user-correctable errors from entropy
// source failures.
func isPasswordInputError(err error) bool {
	var lengthErr *services.LengthError
	return errors.Is(err, services.ErrNoClassSelected) || errors.As(err, &lengthErr)
}
