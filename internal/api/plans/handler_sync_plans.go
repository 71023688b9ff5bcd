package plans

import (
	"net/http"
	"os"
	"strconv"

	"redacao-app/database"
	"redacao-app/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/price"
)

// SyncPlansFromStripe pulls the recurring prices of the platform product
// and upserts local plan rows by stripe price id. Tier, duration and
// credits come from price metadata so staff manage them in one place.
func SyncPlansFromStripe(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	targetProductID := os.Getenv("STRIPE_PLATFORM_PRODUCT_ID")

	params := &stripe.PriceListParams{}
	params.Active = stripe.Bool(true)
	params.Type = stripe.String("recurring")
	params.AddExpand("data.product")

	it := price.List(params)

	synced := 0
	created := 0
	updated := 0
	skipped := 0

	for it.Next() {
		p := it.Price()

		if !p.Active || p.Recurring == nil || p.Product == nil || !p.Product.Active {
			skipped++
			continue
		}

		if targetProductID != "" && p.Product.ID != targetProductID {
			skipped++
			continue
		}

		if string(p.Currency) != "brl" {
			skipped++
			continue
		}

		if p.Metadata != nil && p.Metadata["visible"] == "false" {
			skipped++
			continue
		}

		amount := float64(p.UnitAmount) / 100.0

		displayName := p.Product.Name
		tier := ""
		durationDays := 30
		monthlyCredits := 0
		if p.Metadata != nil {
			if v := p.Metadata["plan"]; v != "" {
				displayName = v
				tier = v
			} else if v := p.Metadata["tier"]; v != "" {
				tier = v
			}
			if v := p.Metadata["duration_days"]; v != "" {
				if n, err := strconv.Atoi(v); err == nil && n > 0 {
					durationDays = n
				}
			}
			if v := p.Metadata["monthly_credits"]; v != "" {
				if n, err := strconv.Atoi(v); err == nil && n >= 0 {
					monthlyCredits = n
				}
			}
		}

		priceID := p.ID

		var existing plans.Plan
		err := database.DB.Where("stripe_price_id = ?", priceID).First(&existing).Error

		if err != nil {
			plan := plans.Plan{
				Name:           displayName,
				Tier:           tier,
				PriceBRL:       amount,
				DurationDays:   durationDays,
				MonthlyCredits: monthlyCredits,
				StripePriceID:  &priceID,
				Interval:       string(p.Recurring.Interval),
				Active:         true,
			}
			if err := database.DB.Create(&plan).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan", "details": err.Error()})
				return
			}
			created++
		} else {
			existing.Name = displayName
			existing.PriceBRL = amount
			existing.DurationDays = durationDays
			existing.MonthlyCredits = monthlyCredits
			existing.Interval = string(p.Recurring.Interval)
			if tier != "" {
				existing.Tier = tier
			}

			if err := database.DB.Save(&existing).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan", "details": err.Error()})
				return
			}
			updated++
		}

		synced++
	}

	if err := it.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch Stripe prices", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"synced":  synced,
		"created": created,
		"updated": updated,
		"skipped": skipped,
	})
}
