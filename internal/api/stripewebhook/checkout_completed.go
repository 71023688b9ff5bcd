package stripewebhooks

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"redacao-app/config"
	"redacao-app/database"
	"redacao-app/internal/domain/credits"
	"redacao-app/internal/domain/plans"
	"redacao-app/internal/domain/subscriptions"
	"redacao-app/internal/domain/users"

	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/subscription"
	"gorm.io/gorm"
)

// handleCheckoutSessionCompleted opens a subscription for the paying user.
// The row it writes is the same shape staff-created subscriptions use, so
// everything downstream (status derivation, history, the paywall) treats
// both origins identically.
func handleCheckoutSessionCompleted(session *stripe.CheckoutSession) error {
	fullSession, err := checkoutsession.Get(session.ID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Expand: []*string{
				stripe.String("subscription"),
				stripe.String("customer"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to fetch expanded checkout session: %w", err)
	}

	if fullSession.Subscription == nil || fullSession.Subscription.ID == "" {
		return errors.New("checkout session missing subscription")
	}
	stripeSubID := fullSession.Subscription.ID

	subData, err := subscription.Get(stripeSubID, nil)
	if err != nil || subData == nil || subData.Items == nil || len(subData.Items.Data) == 0 || subData.Items.Data[0].Price == nil {
		return fmt.Errorf("failed to fetch subscription items: %w", err)
	}

	userID, err := userIDFromSubscriptionOrRef(subData, fullSession.ClientReferenceID)
	if err != nil {
		return err
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	priceID := subData.Items.Data[0].Price.ID
	var plan plans.Plan
	if err := database.DB.Where("stripe_price_id = ?", priceID).First(&plan).Error; err != nil {
		return fmt.Errorf("plan not found for stripe price_id=%s: %w", priceID, err)
	}

	// Stripe retries webhooks; an existing row for this stripe sub means
	// this event was already handled.
	var existing subscriptions.Subscription
	err = database.DB.Where("stripe_subscription_id = ?", stripeSubID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	start := config.Now()
	expiry := start.AddDate(0, 0, plan.DurationDays)
	if subData.CurrentPeriodEnd > 0 {
		expiry = time.Unix(subData.CurrentPeriodEnd, 0).In(config.Location)
	}

	sub := subscriptions.Subscription{
		UserID:               user.ID,
		PlanID:               plan.ID,
		StartDate:            start,
		ExpiryDate:           expiry,
		StripeSubscriptionID: &stripeSubID,
	}
	if err := database.DB.Create(&sub).Error; err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	database.DB.Create(&subscriptions.Change{
		SubscriptionID: sub.ID,
		Description:    fmt.Sprintf("Subscription opened via checkout: plan %s until %s", plan.Name, expiry.Format("2006-01-02")),
		ChangedBy:      "stripe",
	})

	if plan.MonthlyCredits > 0 {
		if err := database.DB.Model(&users.User{}).
			Where("id = ?", user.ID).
			Update("credits", gorm.Expr("credits + ?", plan.MonthlyCredits)).Error; err == nil {
			database.DB.Create(&credits.Entry{
				UserID:     user.ID,
				Delta:      plan.MonthlyCredits,
				Reason:     credits.ReasonPlanGrant,
				AdjustedBy: "stripe",
			})
		}
	}

	if fullSession.Customer != nil && fullSession.Customer.ID != "" &&
		(user.StripeCustomerID == nil || *user.StripeCustomerID != fullSession.Customer.ID) {
		database.DB.Model(&users.User{}).
			Where("id = ?", user.ID).
			Update("stripe_customer_id", fullSession.Customer.ID)
	}

	return nil
}

func userIDFromSubscriptionOrRef(sub *stripe.Subscription, clientRef string) (uint, error) {
	userIDStr := ""
	if sub.Metadata != nil {
		userIDStr = sub.Metadata["user_id"]
	}
	if userIDStr == "" {
		userIDStr = clientRef
	}
	if userIDStr == "" {
		return 0, errors.New("missing user_id (metadata.user_id or client_reference_id)")
	}

	uid64, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user_id %q: %w", userIDStr, err)
	}
	return uint(uid64), nil
}
