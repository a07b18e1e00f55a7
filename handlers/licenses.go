package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"uctools/services"
)

// HandleLicenseRecommend handles GET /api/licenses/recommendation.
// Query parameters: product, payment, userType, userCount.
func HandleLicenseRecommend() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q := e.Request.URL.Query()

		rec := services.RecommendLicense(
			q.Get("product"),
			q.Get("payment"),
			q.Get("userType"),
			q.Get("userCount"),
		)
		if rec == nil {
			return e.JSON(http.StatusBadRequest, map[string]any{
				"error": "product, payment and userType are required",
			})
		}

		return e.JSON(http.StatusOK, rec)
	}
}
