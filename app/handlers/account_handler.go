package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/aveline-studio/go-storefront/app/helpers"
	"github.com/aveline-studio/go-storefront/app/middlewares"
	"github.com/aveline-studio/go-storefront/app/models"
	"github.com/aveline-studio/go-storefront/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
)

type UpdateAccountRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=2"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword" validate:"omitempty,min=6"`
}

type AccountHandler struct {
	render    *render.Render
	validator *validator.Validate
	userRepo  repositories.UserRepositoryImpl
}

func NewAccountHandler(renderer *render.Render, validate *validator.Validate, userRepo repositories.UserRepositoryImpl) *AccountHandler {
	return &AccountHandler{render: renderer, validator: validate, userRepo: userRepo}
}

// UpdateAccount patches the caller's profile. A password change additionally
// requires the current password.
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	sessionUser := middlewares.UserFromContext(r.Context())
	if sessionUser == nil {
		h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}
	if sessionUser.ID == models.AdminUserID {
		// The env-credential admin has no users row to update.
		h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Admin account is configured via environment"})
		return
	}

	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON body"})
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  "Validation failed",
				"fields": helpers.FormatValidationErrors(validationErrors),
			})
			return
		}
		h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid payload"})
		return
	}

	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Current password is required"})
			return
		}
		user, err := h.userRepo.FindByID(r.Context(), sessionUser.ID)
		if err != nil || user == nil {
			log.Printf("UpdateAccount: failed to load user %s: %v", sessionUser.ID, err)
			h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update account"})
			return
		}
		if !helpers.PasswordCompare(user.Password, []byte(req.CurrentPassword)) {
			h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Current password is incorrect"})
			return
		}
		newHash := helpers.HashPassword(req.NewPassword)
		if newHash == "" {
			h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update account"})
			return
		}
		if err := h.userRepo.UpdatePassword(r.Context(), sessionUser.ID, newHash); err != nil {
			log.Printf("UpdateAccount: failed to update password for %s: %v", sessionUser.ID, err)
			h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update account"})
			return
		}
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if len(fields) > 0 {
		if err := h.userRepo.UpdateProfileFields(r.Context(), sessionUser.ID, fields); err != nil {
			log.Printf("UpdateAccount: failed to update profile for %s: %v", sessionUser.ID, err)
			h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update account"})
			return
		}
	}

	h.render.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
