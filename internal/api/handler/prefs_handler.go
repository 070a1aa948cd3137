package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mealops/kitchen-system/internal/infrastructure/localstore"
)

// PrefsHandler exposes the device preferences kept in the key-value store.
type PrefsHandler struct {
	prefs *localstore.Preferences
}

func NewPrefsHandler(prefs *localstore.Preferences) *PrefsHandler {
	return &PrefsHandler{prefs: prefs}
}

type languageBody struct {
	Language string `json:"language" validate:"required,min=2,max=8"`
}

// GetLanguage returns the stored UI language.
//
// @Summary      Get UI language
// @Tags         prefs
// @Produce      json
// @Success      200  {object}  languageBody
// @Router       /api/prefs/language [get]
func (h *PrefsHandler) GetLanguage(c echo.Context) error {
	lang, err := h.prefs.Language(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, languageBody{Language: lang})
}

// SetLanguage stores the UI language.
//
// @Summary      Set UI language
// @Tags         prefs
// @Accept       json
// @Produce      json
// @Param        body  body      languageBody  true  "Language code"
// @Success      200   {object}  languageBody
// @Failure      400   {object}  map[string]string
// @Router       /api/prefs/language [put]
func (h *PrefsHandler) SetLanguage(c echo.Context) error {
	var body languageBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.prefs.SetLanguage(c.Request().Context(), body.Language); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, body)
}
