package plans

import (
	"net/http"

	"redacao-app/database"
	"redacao-app/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

type planView struct {
	plans.Plan
	EffectiveTier string `json:"effective_tier"`
}

func ListPlans(c *gin.Context) {
	var plansList []plans.Plan
	if err := database.DB.
		Where("active = ?", true).
		Order("price_brl ASC").
		Find(&plansList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}

	out := make([]planView, 0, len(plansList))
	for i := range plansList {
		out = append(out, planView{
			Plan:          plansList[i],
			EffectiveTier: plans.PlanTier(&plansList[i]),
		})
	}
	c.JSON(http.StatusOK, out)
}
