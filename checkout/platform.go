package checkout

import "strings"

// Platform is a payment option offered on the platform step.
type Platform string

const (
	PlatformESewa          Platform = "esewa"
	PlatformKhalti         Platform = "khalti"
	PlatformFonepay        Platform = "fonepay"
	PlatformBankTransfer   Platform = "bank_transfer"
	PlatformCashOnDelivery Platform = "cashondelivery"
)

var platformNames = map[Platform]string{
	PlatformESewa:          "eSewa",
	PlatformKhalti:         "Khalti",
	PlatformFonepay:        "Fonepay",
	PlatformBankTransfer:   "Bank Transfer",
	PlatformCashOnDelivery: "Cash on Delivery",
}

// ParsePlatform accepts a platform key in any case.
func ParsePlatform(key string) (Platform, bool) {
	p := Platform(strings.ToLower(strings.TrimSpace(key)))
	_, ok := platformNames[p]
	return p, ok
}

// IsOnline is true for every platform that goes through payment and receipt.
func (p Platform) IsOnline() bool {
	return p != PlatformCashOnDelivery
}

func (p Platform) DisplayName() string {
	if name, ok := platformNames[p]; ok {
		return name
	}
	return string(p)
}
