package przelewy24

// Base URLs selected once at construction.
const (
	ProductionURL = "https://secure.przelewy24.pl"
	SandboxURL    = "https://sandbox.przelewy24.pl"
)

// REST endpoints, relative to baseURL + "/api/v1". The trnRequest path is the
// one exception: it lives directly under the base URL and is only used to
// build the payer redirect link.
const (
	endpointTestAccess          = "/testAccess"
	endpointTransactionRegister = "/transaction/register"
	endpointTransactionRequest  = "/trnRequest"
	endpointTransactionVerify   = "/transaction/verify"
	endpointRefund              = "/transaction/refund"
	endpointTransactionDetails  = "/transaction/by/sessionId"
	endpointPaymentMethods      = "/payment/methods"
	endpointOfflineTransaction  = "/transaction/registerOffline"
	endpointSplitPayment        = "/transaction/register/splitpayment"
	endpointRefundsByOrderID    = "/refund/by/orderId"
	endpointCardChargeWith3DS   = "/card/chargeWith3ds"
	endpointCardCharge          = "/card/charge"
	endpointCardChargeDirect    = "/card/chargeDirect"
	endpointBlikChargeByCode    = "/paymentMethod/blik/chargeByCode"
	endpointBlikChargeByAlias   = "/paymentMethod/blik/chargeByAlias"
	endpointBlikAliases         = "/paymentMethod/blik/aliases"
	endpointBlikAliasesCustom   = "/paymentMethod/blik/aliases/custom"
)
