package stripewebhooks

import (
	"errors"
	"fmt"
	"time"

	"redacao-app/config"
	"redacao-app/database"
	"redacao-app/internal/domain/subscriptions"

	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// handleSubscriptionUpdated moves the local expiry to the new billing
// period end. Renewals arrive as this event too, so this is what keeps a
// paying student's access open month after month.
func handleSubscriptionUpdated(stripeSub *stripe.Subscription) error {
	if stripeSub.ID == "" || stripeSub.CurrentPeriodEnd == 0 {
		return nil
	}

	var sub subscriptions.Subscription
	err := database.DB.Where("stripe_subscription_id = ?", stripeSub.ID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Nothing local to update; acknowledge so Stripe stops retrying.
		return nil
	}
	if err != nil {
		return err
	}

	periodEnd := time.Unix(stripeSub.CurrentPeriodEnd, 0).In(config.Location)
	if periodEnd.Equal(sub.ExpiryDate) {
		return nil
	}

	if err := database.DB.Model(&sub).
		Update("expiry_date", periodEnd).Error; err != nil {
		return err
	}

	database.DB.Create(&subscriptions.Change{
		SubscriptionID: sub.ID,
		Description:    fmt.Sprintf("Expiry moved to %s by Stripe", periodEnd.Format("2006-01-02")),
		ChangedBy:      "stripe",
	})

	return nil
}
