package checkout

import (
	"testing"

	"github.com/Bishesh-P/coffee-alpico-sub000/cart"
	"github.com/Bishesh-P/coffee-alpico-sub000/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextForwardPath(t *testing.T) {
	path := []struct {
		from  Step
		event Event
		to    Step
	}{
		{StepVariants, EventVariantsComplete, StepShipping},
		{StepShipping, EventShippingSubmitted, StepConfirmation},
		{StepConfirmation, EventConfirmed, StepPlatform},
		{StepPlatform, EventOnlinePlatformSelected, StepPayment},
		{StepPayment, EventPaymentAcknowledged, StepReceipt},
		{StepReceipt, EventReceiptUploaded, StepSuccess},
		{StepPlatform, EventCashOnDeliverySelected, StepSuccess},
	}
	for _, p := range path {
		got, err := Next(p.from, p.event)
		require.NoError(t, err, "%s on %s", p.event, p.from)
		assert.Equal(t, p.to, got)
	}
}

func TestNextBackTargets(t *testing.T) {
	back := map[Step]Step{
		StepConfirmation: StepShipping,
		StepPlatform:     StepConfirmation,
		StepPayment:      StepPlatform,
		StepReceipt:      StepPayment,
	}
	for from, want := range back {
		got, err := Next(from, EventBack)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.True(t, CanGoBack(from))
	}

	for _, from := range []Step{StepVariants, StepShipping, StepSuccess} {
		got, err := Next(from, EventBack)
		assert.ErrorIs(t, err, ErrIllegalTransition)
		assert.Equal(t, from, got)
		assert.False(t, CanGoBack(from))
	}
}

func TestNextRejectsSkippingSteps(t *testing.T) {
	illegal := []struct {
		from  Step
		event Event
	}{
		{StepShipping, EventConfirmed},
		{StepVariants, EventShippingSubmitted},
		{StepConfirmation, EventOnlinePlatformSelected},
		{StepPayment, EventReceiptUploaded},
		{StepSuccess, EventConfirmed},
		{StepShipping, EventVariantsComplete},
	}
	for _, tt := range illegal {
		_, err := Next(tt.from, tt.event)
		assert.ErrorIs(t, err, ErrIllegalTransition, "%s on %s", tt.event, tt.from)
	}
}

func TestEntryStep(t *testing.T) {
	withVariants := models.Product{
		ID:       1,
		Price:    decimal.NewFromInt(500),
		Variants: []models.Variant{{ID: "a", Price: decimal.NewFromInt(100)}},
	}
	plain := models.Product{ID: 2, Price: decimal.NewFromInt(300)}

	c := cart.New()
	c.Add(plain, 1, "", nil)
	assert.Equal(t, StepShipping, EntryStep(c))

	c.Add(withVariants, 1, "", &withVariants.Variants[0])
	assert.Equal(t, StepShipping, EntryStep(c))

	c.Add(withVariants, 1, "", nil)
	assert.Equal(t, StepVariants, EntryStep(c))
}

func TestParsePlatform(t *testing.T) {
	p, ok := ParsePlatform(" CashOnDelivery ")
	require.True(t, ok)
	assert.Equal(t, PlatformCashOnDelivery, p)
	assert.False(t, p.IsOnline())

	p, ok = ParsePlatform("esewa")
	require.True(t, ok)
	assert.True(t, p.IsOnline())
	assert.Equal(t, "eSewa", p.DisplayName())

	_, ok = ParsePlatform("paypal")
	assert.False(t, ok)
}

func TestValidateShipping(t *testing.T) {
	err := ValidateShipping(models.ShippingForm{Email: "not-an-email", City: "Kathmandu"})
	require.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "invalid email address", verr.Fields["email"])
	assert.Equal(t, "required", verr.Fields["first_name"])
	assert.NotContains(t, verr.Fields, "city")
	assert.Len(t, verr.Fields, 7)

	assert.NoError(t, ValidateShipping(validForm("Kathmandu")))
}

func TestValidateShippingIgnoresWhitespace(t *testing.T) {
	form := validForm("  ")
	form.LastName = "\t"
	form.Email = "  asha@example.com  "

	err := ValidateShipping(form)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"city": "required", "last_name": "required"}, verr.Fields)

	form = validForm(" Pokhara ")
	form.Email = " asha@example.com "
	assert.NoError(t, ValidateShipping(form))
}
