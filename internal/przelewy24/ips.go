package przelewy24

// gatewayIPs is the fixed set of addresses Przelewy24 sends notifications
// from. Checking membership is defense in depth only; it must never replace
// signature verification.
var gatewayIPs = map[string]struct{}{
	"91.216.191.181": {},
	"91.216.191.182": {},
	"91.216.191.183": {},
	"91.216.191.184": {},
	"91.216.191.185": {},
}

// IsGatewayIP reports whether ip is a known Przelewy24 origin address.
func IsGatewayIP(ip string) bool {
	_, ok := gatewayIPs[ip]
	return ok
}
