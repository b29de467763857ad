package usecase

import (
	"encoding/base64"
	"strings"
	"time"
	"unicode"
)

// gatewayTimeZone is the local time zone the gateway expects timestamps in.
var gatewayTimeZone = mustLoadLocation("Africa/Nairobi")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		// Fall back to the fixed EAT offset when tzdata is unavailable.
		return time.FixedZone("EAT", 3*60*60)
	}
	return loc
}

// NormalizePhone normalizes an MSISDN to the 2547XXXXXXXX format the gateway
// expects. It strips all non-digit characters and rewrites the common local
// formats; anything else passes through unchanged for the gateway to reject.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case strings.HasPrefix(digits, "0") && len(digits) == 10:
		return "254" + digits[1:]
	case strings.HasPrefix(digits, "7") && len(digits) == 9:
		return "254" + digits
	case strings.HasPrefix(digits, "254") && len(digits) == 12:
		return digits
	}

	return digits
}

// STKPassword derives the STK push password: base64 of the short code,
// passkey, and timestamp concatenated. Stable for fixed inputs.
func STKPassword(shortCode, passkey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortCode + passkey + timestamp))
}

// GatewayTimestamp formats an instant as YYYYMMDDHHMMSS in the gateway's
// local time zone.
func GatewayTimestamp(t time.Time) string {
	return t.In(gatewayTimeZone).Format("20060102150405")
}
