package przelewy24

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Client talks to the Przelewy24 REST API. It holds only immutable
// configuration after construction, so any number of goroutines may share
// one instance. The client never retries; a failed exchange is surfaced
// immediately.
type Client struct {
	merchantID int
	posID      int
	apiKey     string
	crcKey     string
	baseURL    string
	httpClient *http.Client
}

// Config configures a Client. PosID defaults to MerchantID when zero.
// APIKey authenticates the transport (basic auth); CRCKey is used only
// inside signature computation and is never transmitted.
type Config struct {
	MerchantID int
	PosID      int
	APIKey     string
	CRCKey     string
	Sandbox    bool
	Timeout    time.Duration
}

// New creates a Przelewy24 client against the production or sandbox
// environment.
func New(cfg Config) *Client {
	if cfg.PosID == 0 {
		cfg.PosID = cfg.MerchantID
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	baseURL := ProductionURL
	if cfg.Sandbox {
		baseURL = SandboxURL
	}
	return &Client{
		merchantID: cfg.MerchantID,
		posID:      cfg.PosID,
		apiKey:     cfg.APIKey,
		crcKey:     cfg.CRCKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// BaseURL returns the environment base URL selected at construction.
func (c *Client) BaseURL() string { return c.baseURL }

// TestAccess checks that the configured credentials are accepted.
func (c *Client) TestAccess(ctx context.Context) (bool, error) {
	var ok bool
	if apiErr := c.do(ctx, http.MethodGet, endpointTestAccess, nil, "test access failed", &ok); apiErr != nil {
		return false, apiErr
	}
	return ok, nil
}

type registerRequest struct {
	MerchantID int `json:"merchantId"`
	PosID      int `json:"posId"`
	Order
	Sign string `json:"sign"`
}

type tokenData struct {
	Token string `json:"token"`
}

// RegisterTransaction signs and submits a transaction registration and
// returns the gateway token together with the derived redirect link. Order
// validity (amount bounds, currency support, session collisions) is judged
// by the gateway and surfaced verbatim, never re-checked locally.
func (c *Client) RegisterTransaction(ctx context.Context, order Order) (*Transaction, error) {
	sign := signPayload(registerSign{
		SessionID:  order.SessionID,
		MerchantID: c.merchantID,
		Amount:     order.Amount,
		Currency:   order.Currency,
		CRC:        c.crcKey,
	})
	req := registerRequest{
		MerchantID: c.merchantID,
		PosID:      c.posID,
		Order:      order,
		Sign:       sign,
	}
	var data tokenData
	if apiErr := c.do(ctx, http.MethodPost, endpointTransactionRegister, req, "transaction registration failed", &data); apiErr != nil {
		return nil, apiErr
	}
	return &Transaction{
		Token: data.Token,
		Link:  c.baseURL + endpointTransactionRequest + "/" + data.Token,
	}, nil
}

type verifyRequest struct {
	MerchantID int `json:"merchantId"`
	PosID      int `json:"posId"`
	Verification
	Sign string `json:"sign"`
}

// verificationStatusSuccess is the literal marker the gateway returns for a
// confirmed transaction.
const verificationStatusSuccess = "success"

// VerifyTransaction signs and submits a verification. It returns true only
// when the gateway confirms the quadruple; false with a nil error is the
// gateway rejecting it, a non-nil error is a transport or envelope failure.
func (c *Client) VerifyTransaction(ctx context.Context, v Verification) (bool, error) {
	sign := signPayload(verifySign{
		SessionID: v.SessionID,
		OrderID:   v.OrderID,
		Amount:    v.Amount,
		Currency:  v.Currency,
		CRC:       c.crcKey,
	})
	req := verifyRequest{
		MerchantID:   c.merchantID,
		PosID:        c.posID,
		Verification: v,
		Sign:         sign,
	}
	var data struct {
		Status string `json:"status"`
	}
	if apiErr := c.do(ctx, http.MethodPut, endpointTransactionVerify, req, "transaction verification failed", &data); apiErr != nil {
		return false, apiErr
	}
	return data.Status == verificationStatusSuccess, nil
}

// Refund submits a refund batch. No signature is required. Per-item
// outcomes are returned as-is; the call does not fail just because some
// items were refused.
func (c *Client) Refund(ctx context.Context, req RefundRequest) ([]RefundResult, error) {
	var results []RefundResult
	if apiErr := c.do(ctx, http.MethodPost, endpointRefund, req, "refund failed", &results); apiErr != nil {
		return nil, apiErr
	}
	return results, nil
}

// TransactionDetails fetches the gateway-side record for a session.
func (c *Client) TransactionDetails(ctx context.Context, sessionID string) (*TransactionDetails, error) {
	var details TransactionDetails
	path := endpointTransactionDetails + "/" + url.PathEscape(sessionID)
	if apiErr := c.do(ctx, http.MethodGet, path, nil, "failed to get transaction details", &details); apiErr != nil {
		return nil, apiErr
	}
	return &details, nil
}

// PaymentMethods lists payment methods for a language, optionally narrowed
// to an amount and currency.
func (c *Client) PaymentMethods(ctx context.Context, lang string, opts *PaymentMethodsOptions) ([]PaymentMethod, error) {
	path := endpointPaymentMethods + "/" + url.PathEscape(lang)
	if opts != nil {
		q := url.Values{}
		if opts.Currency != "" {
			q.Set("currency", opts.Currency)
		}
		if opts.Amount > 0 {
			q.Set("amount", strconv.Itoa(opts.Amount))
		}
		if len(q) > 0 {
			path += "?" + q.Encode()
		}
	}
	var methods []PaymentMethod
	if apiErr := c.do(ctx, http.MethodGet, path, nil, "failed to list payment methods", &methods); apiErr != nil {
		return nil, apiErr
	}
	return methods, nil
}

// RegisterOfflineTransaction converts a previously registered transaction
// into an offline bank transfer. The security boundary is the token; no new
// signature is produced.
func (c *Client) RegisterOfflineTransaction(ctx context.Context, token string) (*OfflineTransaction, error) {
	req := map[string]string{"token": token}
	var offline OfflineTransaction
	if apiErr := c.do(ctx, http.MethodPost, endpointOfflineTransaction, req, "failed to register offline transaction", &offline); apiErr != nil {
		return nil, apiErr
	}
	return &offline, nil
}

type splitPaymentRequest struct {
	MerchantID int `json:"merchantId"`
	PosID      int `json:"posId"`
	SplitPaymentOrder
}

// RegisterSplitPayment registers a split-payment (VAT) transaction. The
// merchant and POS identifiers are merged into the payload; no signature is
// defined for this operation.
func (c *Client) RegisterSplitPayment(ctx context.Context, order SplitPaymentOrder) (*Transaction, error) {
	req := splitPaymentRequest{
		MerchantID:        c.merchantID,
		PosID:             c.posID,
		SplitPaymentOrder: order,
	}
	var data tokenData
	if apiErr := c.do(ctx, http.MethodPost, endpointSplitPayment, req, "split payment registration failed", &data); apiErr != nil {
		return nil, apiErr
	}
	return &Transaction{
		Token: data.Token,
		Link:  c.baseURL + endpointTransactionRequest + "/" + data.Token,
	}, nil
}

// RefundsByOrderID fetches the refund history for a gateway order.
func (c *Client) RefundsByOrderID(ctx context.Context, orderID int) (*TransactionWithRefunds, error) {
	var out TransactionWithRefunds
	path := endpointRefundsByOrderID + "/" + strconv.Itoa(orderID)
	if apiErr := c.do(ctx, http.MethodGet, path, nil, "failed to get refunds by order id", &out); apiErr != nil {
		return nil, apiErr
	}
	return &out, nil
}

// ChargeCard3DS charges a tokenized card with 3D Secure; the payer must
// follow the returned redirect URL.
func (c *Client) ChargeCard3DS(ctx context.Context, token string) (*ChargeCard3DSResult, error) {
	req := map[string]string{"token": token}
	var out ChargeCard3DSResult
	if apiErr := c.do(ctx, http.MethodPost, endpointCardChargeWith3DS, req, "card charge with 3ds failed", &out); apiErr != nil {
		return nil, apiErr
	}
	return &out, nil
}

// ChargeCard charges a tokenized card without 3D Secure.
func (c *Client) ChargeCard(ctx context.Context, token string) (*ChargeCardResult, error) {
	req := map[string]string{"token": token}
	var out ChargeCardResult
	if apiErr := c.do(ctx, http.MethodPost, endpointCardCharge, req, "card charge failed", &out); apiErr != nil {
		return nil, apiErr
	}
	return &out, nil
}

// ChargeCardDirect charges raw card data. RedirectURL is set when the
// issuer demands 3DS authentication.
func (c *Client) ChargeCardDirect(ctx context.Context, params ChargeCardDirectParams) (*ChargeCard3DSResult, error) {
	var out ChargeCard3DSResult
	if apiErr := c.do(ctx, http.MethodPost, endpointCardChargeDirect, params, "direct card charge failed", &out); apiErr != nil {
		return nil, apiErr
	}
	return &out, nil
}

// ChargeBlikByCode charges a registered transaction with a customer-typed
// BLIK code.
func (c *Client) ChargeBlikByCode(ctx context.Context, params ChargeBlikByCodeParams) (*ChargeBlikResult, error) {
	var out ChargeBlikResult
	if apiErr := c.do(ctx, http.MethodPost, endpointBlikChargeByCode, params, "blik charge by code failed", &out); apiErr != nil {
		return nil, apiErr
	}
	return &out, nil
}

// ChargeBlikByAlias charges a registered transaction via a stored alias.
func (c *Client) ChargeBlikByAlias(ctx context.Context, params ChargeBlikByAliasParams) (*ChargeBlikResult, error) {
	var out ChargeBlikResult
	if apiErr := c.do(ctx, http.MethodPost, endpointBlikChargeByAlias, params, "blik charge by alias failed", &out); apiErr != nil {
		return nil, apiErr
	}
	return &out, nil
}

// BlikAliasesByEmail lists the BLIK aliases stored for a customer email.
func (c *Client) BlikAliasesByEmail(ctx context.Context, email string) ([]BlikAlias, error) {
	var aliases []BlikAlias
	path := endpointBlikAliases + "/" + url.PathEscape(email)
	if apiErr := c.do(ctx, http.MethodGet, path, nil, "failed to get blik aliases", &aliases); apiErr != nil {
		return nil, apiErr
	}
	return aliases, nil
}

// BlikAliasesByEmailCustom lists aliases registered with custom
// aliasValue/aliasLabel fields.
func (c *Client) BlikAliasesByEmailCustom(ctx context.Context, email string) ([]BlikAlias, error) {
	var aliases []BlikAlias
	path := endpointBlikAliasesCustom + "/" + url.PathEscape(email)
	if apiErr := c.do(ctx, http.MethodGet, path, nil, "failed to get custom blik aliases", &aliases); apiErr != nil {
		return nil, apiErr
	}
	return aliases, nil
}

// do performs one request/response exchange against base/api/v1 and unwraps
// the envelope into out. payload is encoded with HTML escaping disabled so
// the bytes on the wire match the bytes that entered the signature.
func (c *Client) do(ctx context.Context, method, path string, payload any, fallback string, out any) *Error {
	var body io.Reader
	if payload != nil {
		buf := &bytes.Buffer{}
		enc := json.NewEncoder(buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(payload); err != nil {
			return transportError(fallback, err)
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/v1"+path, body)
	if err != nil {
		return transportError(fallback, err)
	}
	req.SetBasicAuth(strconv.Itoa(c.posID), c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug().
		Str("gateway", "przelewy24").
		Str("method", method).
		Str("path", path).
		Msg("making gateway request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().
			Str("gateway", "przelewy24").
			Str("path", path).
			Err(err).
			Msg("gateway request failed")
		return transportError(fallback, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(fallback, err)
	}

	log.Debug().
		Str("gateway", "przelewy24").
		Int("status_code", resp.StatusCode).
		Int("body_length", len(raw)).
		Msg("received gateway response")

	return unwrap(resp.StatusCode, raw, fallback, out)
}
