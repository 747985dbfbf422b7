package checkout

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrIllegalTransition  = errors.New("illegal checkout transition")
	ErrTransitionInFlight = errors.New("another checkout step is still in progress")
	ErrNoCheckout         = errors.New("no checkout in progress")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrVariantsPending    = errors.New("select a variant for every item first")
	ErrUnknownPlatform    = errors.New("unknown payment platform")
	ErrUnknownVariant     = errors.New("unknown product variant")
	ErrNoReceiptFile      = errors.New("no receipt file selected")
	ErrValidation         = errors.New("invalid input")
	ErrPersistence        = errors.New("could not save order")
	ErrOrderIDConflict    = errors.New("order id belongs to another session")
	ErrNoSnapshot         = errors.New("no completed order found")
)

// ValidationError lists the offending fields by name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid input: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
