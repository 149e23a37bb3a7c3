package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/franciscosanchezn/pizzaone-api/internal/config"
	"github.com/franciscosanchezn/pizzaone-api/internal/models"
)

// PreferencesController exposes the storefront UI preferences
type PreferencesController struct {
	store *config.PreferencesStore
}

func NewPreferencesController(store *config.PreferencesStore) *PreferencesController {
	return &PreferencesController{store: store}
}

// GetPreferences godoc
// @Summary Get preferences
// @Description Get the theme and the last customer used
// @Tags preferences
// @Produce json
// @Success 200 {object} config.Preferences
// @Router /api/v1/preferences [get]
func (pc *PreferencesController) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, pc.store.Get())
}

// SetTheme godoc
// @Summary Set theme
// @Description Switch between the light and dark theme
// @Tags preferences
// @Accept json
// @Produce json
// @Param theme body object{theme=string} true "light or dark"
// @Success 200 {object} config.Preferences
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /api/v1/preferences/theme [put]
func (pc *PreferencesController) SetTheme(c *gin.Context) {
	var req struct {
		Theme string `json:"theme" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := pc.store.SetTheme(req.Theme); err != nil {
		_ = c.Error(err)
		if errors.Is(err, config.ErrInvalidTheme) {
			c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Validation failed",
				map[string]interface{}{"theme": err.Error()}))
			return
		}
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to save preferences"))
		return
	}
	c.JSON(http.StatusOK, pc.store.Get())
}
