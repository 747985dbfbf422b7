package checkout

import (
	"fmt"
	"time"

	"github.com/Bishesh-P/coffee-alpico-sub000/cart"
)

// Step is a checkout state.
type Step string

const (
	StepVariants     Step = "variants"
	StepShipping     Step = "shipping"
	StepConfirmation Step = "confirmation"
	StepPlatform     Step = "platform"
	StepPayment      Step = "payment"
	StepReceipt      Step = "receipt"
	StepSuccess      Step = "success"
)

// Event drives a step change.
type Event string

const (
	EventVariantsComplete       Event = "variants_complete"
	EventShippingSubmitted      Event = "shipping_submitted"
	EventConfirmed              Event = "confirmed"
	EventCashOnDeliverySelected Event = "cash_on_delivery_selected"
	EventOnlinePlatformSelected Event = "online_platform_selected"
	EventPaymentAcknowledged    Event = "payment_acknowledged"
	EventReceiptUploaded        Event = "receipt_uploaded"
	EventBack                   Event = "back"
)

// VariantAutoAdvanceDelay is how long the variants step lingers once every
// variant is chosen.
const VariantAutoAdvanceDelay = time.Second

type transition struct {
	from  Step
	event Event
}

// transitions is the complete table. Anything missing is illegal; in
// particular variants is never a back target and success is terminal.
var transitions = map[transition]Step{
	{StepVariants, EventVariantsComplete}:       StepShipping,
	{StepShipping, EventShippingSubmitted}:      StepConfirmation,
	{StepConfirmation, EventConfirmed}:          StepPlatform,
	{StepPlatform, EventCashOnDeliverySelected}: StepSuccess,
	{StepPlatform, EventOnlinePlatformSelected}: StepPayment,
	{StepPayment, EventPaymentAcknowledged}:     StepReceipt,
	{StepReceipt, EventReceiptUploaded}:         StepSuccess,

	{StepConfirmation, EventBack}: StepShipping,
	{StepPlatform, EventBack}:     StepConfirmation,
	{StepPayment, EventBack}:      StepPlatform,
	{StepReceipt, EventBack}:      StepPayment,
}

// Next is the pure transition function.
func Next(from Step, event Event) (Step, error) {
	to, ok := transitions[transition{from, event}]
	if !ok {
		return from, fmt.Errorf("%w: %s on %s", ErrIllegalTransition, event, from)
	}
	return to, nil
}

// CanGoBack reports whether the back event is legal from step.
func CanGoBack(step Step) bool {
	_, ok := transitions[transition{step, EventBack}]
	return ok
}

// EntryStep is variants when some line still needs a variant, else shipping.
func EntryStep(c *cart.Cart) Step {
	if c.NeedsVariants() {
		return StepVariants
	}
	return StepShipping
}
