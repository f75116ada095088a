package przelewy24

// Order describes a payment intent. SessionID is chosen by the merchant and
// must be unique per attempt; Amount is in minor units (grosz for PLN).
// Optional fields are passed through to the gateway untouched.
type Order struct {
	SessionID        string `json:"sessionId"`
	Amount           int    `json:"amount"`
	Currency         string `json:"currency"`
	Description      string `json:"description"`
	Email            string `json:"email"`
	Client           string `json:"client,omitempty"`
	Address          string `json:"address,omitempty"`
	Zip              string `json:"zip,omitempty"`
	City             string `json:"city,omitempty"`
	Country          string `json:"country,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Language         string `json:"language,omitempty"`
	Method           int    `json:"method,omitempty"`
	URLReturn        string `json:"urlReturn"`
	URLStatus        string `json:"urlStatus,omitempty"`
	TimeLimit        int    `json:"timeLimit,omitempty"`
	Channel          int    `json:"channel,omitempty"`
	WaitForResult    bool   `json:"waitForResult,omitempty"`
	RegulationAccept bool   `json:"regulationAccept,omitempty"`
	Shipping         int    `json:"shipping,omitempty"`
	TransferLabel    string `json:"transferLabel,omitempty"`
	MethodRefID      string `json:"methodRefId,omitempty"`
}

// Transaction is the result of a successful registration. Token is issued by
// the gateway; Link is derived client-side and is where the payer must be
// redirected.
type Transaction struct {
	Token string `json:"token"`
	Link  string `json:"link"`
}

// Verification is the exact quadruple the gateway requires to confirm a
// transaction. SessionID, Amount and Currency must match the original order.
type Verification struct {
	SessionID string `json:"sessionId"`
	OrderID   int    `json:"orderId"`
	Amount    int    `json:"amount"`
	Currency  string `json:"currency"`
}

// TransactionNotification is the gateway-originated payment status callback.
type TransactionNotification struct {
	MerchantID   int    `json:"merchantId"`
	PosID        int    `json:"posId"`
	SessionID    string `json:"sessionId"`
	Amount       int    `json:"amount"`
	OriginAmount int    `json:"originAmount"`
	Currency     string `json:"currency"`
	OrderID      int    `json:"orderId"`
	MethodID     int    `json:"methodId"`
	Statement    string `json:"statement"`
	Sign         string `json:"sign"`
}

// TransactionDetails is the full gateway-side record for a session.
type TransactionDetails struct {
	Statement         string `json:"statement"`
	OrderID           int    `json:"orderId"`
	SessionID         string `json:"sessionId"`
	Status            int    `json:"status"`
	Amount            int    `json:"amount"`
	Currency          string `json:"currency"`
	Date              string `json:"date"`
	DateOfTransaction string `json:"dateOfTransaction"`
	ClientEmail       string `json:"clientEmail"`
	AccountMD5        string `json:"accountMD5"`
	PaymentMethod     int    `json:"paymentMethod"`
	Description       string `json:"description"`
	ClientName        string `json:"clientName"`
	ClientAddress     string `json:"clientAddress"`
	ClientCity        string `json:"clientCity"`
	ClientPostcode    string `json:"clientPostcode"`
	BatchID           int    `json:"batchId"`
	Fee               string `json:"fee"`
}

// OfflineTransaction holds the bank-transfer details for an offline
// registration.
type OfflineTransaction struct {
	OrderID          int    `json:"orderId"`
	SessionID        string `json:"sessionId"`
	Amount           int    `json:"amount"`
	Statement        string `json:"statement"`
	IBAN             string `json:"iban"`
	IBANOwner        string `json:"ibanOwner"`
	IBANOwnerAddress string `json:"ibanOwnerAddress"`
}

// SplitPaymentDetails carries the VAT split for a split-payment order.
type SplitPaymentDetails struct {
	VATAmount     int    `json:"vatAmount"`
	InvoiceNumber string `json:"invoiceNumber"`
	NIP           string `json:"nip"`
	IBAN          string `json:"iban,omitempty"`
}

// SplitPaymentOrder is an Order extended with split-payment details.
type SplitPaymentOrder struct {
	Order
	SplitPaymentDetails SplitPaymentDetails `json:"splitPaymentDetails"`
}

// PaymentMethod describes one payment channel offered by the gateway.
type PaymentMethod struct {
	Name              string            `json:"name"`
	ID                int               `json:"id"`
	Group             string            `json:"group"`
	Subgroup          string            `json:"subgroup"`
	Status            bool              `json:"status"`
	ImgURL            string            `json:"imgUrl"`
	MobileImgURL      string            `json:"mobileImgUrl"`
	Mobile            bool              `json:"mobile"`
	AvailabilityHours AvailabilityHours `json:"availabilityHours"`
}

type AvailabilityHours struct {
	MondayToFriday string `json:"mondayToFriday"`
	Saturday       string `json:"saturday"`
	Sunday         string `json:"sunday"`
}

// PaymentMethodsOptions narrows a payment methods listing to a given amount
// and currency.
type PaymentMethodsOptions struct {
	Amount   int
	Currency string
}
