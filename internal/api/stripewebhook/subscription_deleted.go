package stripewebhooks

import (
	"errors"
	"fmt"

	"redacao-app/config"
	"redacao-app/database"
	"redacao-app/internal/domain/subscriptions"
	stripestatus "redacao-app/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// handleSubscriptionDeleted closes the local subscription. Access already
// paid for stays open until the stored expiry; a cancellation mid-period
// only stops future renewals from extending it.
func handleSubscriptionDeleted(stripeSub *stripe.Subscription) error {
	if stripeSub.ID == "" {
		return nil
	}

	var sub subscriptions.Subscription
	err := database.DB.Where("stripe_subscription_id = ?", stripeSub.ID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	now := config.Now()
	if sub.ExpiryDate.After(now) && stripeSub.CancelAtPeriodEnd {
		// Paid through the period; leave the expiry where it is.
		return nil
	}

	if sub.ExpiryDate.After(now) {
		if err := database.DB.Model(&sub).Update("expiry_date", now).Error; err != nil {
			return err
		}
	}

	status := string(stripeSub.Status)
	database.DB.Create(&subscriptions.Change{
		SubscriptionID: sub.ID,
		Description:    fmt.Sprintf("Subscription canceled on Stripe (%s)", stripestatus.NormalizeStripeStatus(&status)),
		ChangedBy:      "stripe",
	})

	return nil
}
