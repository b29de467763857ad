// Package usecase implements the gateway client: OAuth token acquisition, the
// outbound payment operations, and the security credential encryption they
// depend on. Every operation returns the uniform result envelope; no failure
// mode surfaces as an error to the caller.
package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jameskabz/mpesa/internal/config"
	"github.com/jameskabz/mpesa/internal/gateway/domain"
)

// Gateway calls run on the request path with short timeouts; a timeout
// surfaces through the same envelope path as a non-2xx response.
const (
	tokenTimeout     = 15 * time.Second
	operationTimeout = 20 * time.Second
)

// Client performs the outbound gateway operations.
type Client struct {
	config      *config.Provider
	encryptor   CredentialEncryptor
	logger      *slog.Logger
	tokenClient *http.Client
	opClient    *http.Client
}

// NewClient creates a new gateway Client.
func NewClient(cfg *config.Provider, encryptor CredentialEncryptor, logger *slog.Logger) *Client {
	return &Client{
		config:      cfg,
		encryptor:   encryptor,
		logger:      logger,
		tokenClient: &http.Client{Timeout: tokenTimeout},
		opClient:    &http.Client{Timeout: operationTimeout},
	}
}

// GetAccessToken requests an OAuth access token using the configured consumer
// key and secret. The configuration is checked before any network call.
func (c *Client) GetAccessToken(ctx context.Context) domain.Result {
	consumerKey := c.config.GetString("consumer_key", "")
	consumerSecret := c.config.GetString("consumer_secret", "")

	if consumerKey == "" || consumerSecret == "" {
		return domain.ErrorResult("Missing MPESA_CONSUMER_KEY or MPESA_CONSUMER_SECRET.", 400)
	}

	url := c.baseURL() + c.endpoints().Token + "?grant_type=client_credentials"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return c.transportFailure(err)
	}
	req.SetBasicAuth(consumerKey, consumerSecret)

	resp, err := c.tokenClient.Do(req)
	if err != nil {
		return c.transportFailure(err)
	}
	defer resp.Body.Close()

	return formatResponse(resp)
}

// STKPush initiates a gateway prompt on the payer's phone to authorize a
// payment.
func (c *Client) STKPush(ctx context.Context, input domain.STKPushInput) domain.Result {
	token, failure, ok := c.accessToken(ctx)
	if !ok {
		return failure
	}

	shortCode := c.config.GetString("credentials.stk.short_code", "")
	passkey := c.config.GetString("credentials.stk.passkey", "")
	if shortCode == "" || passkey == "" {
		return domain.ErrorResult("Missing MPESA_STK_SHORT_CODE or MPESA_STK_PASSKEY.", 400)
	}

	timestamp := input.Timestamp
	if timestamp == "" {
		timestamp = GatewayTimestamp(time.Now())
	}
	phone := NormalizePhone(input.Phone)
	callbackURL := firstNonEmpty(
		input.CallbackURL,
		c.config.GetString("credentials.stk.callback_url", ""),
		c.config.GetString("callbacks.stk", ""),
	)

	body := map[string]any{
		"BusinessShortCode": shortCode,
		"Password":          STKPassword(shortCode, passkey, timestamp),
		"Timestamp":         timestamp,
		"TransactionType": firstNonEmpty(
			input.TransactionType,
			c.config.GetString("credentials.stk.transaction_type", ""),
			"CustomerPayBillOnline",
		),
		"Amount":      amountOrDefault(input.Amount),
		"PartyA":      phone,
		"PartyB":      firstNonEmpty(input.PartyB, shortCode),
		"PhoneNumber": phone,
		"CallBackURL": callbackURL,
		"AccountReference": firstNonEmpty(
			input.AccountReference,
			c.config.GetString("credentials.stk.account_reference", ""),
			"Mpesa Test",
		),
		"TransactionDesc": firstNonEmpty(
			input.TransactionDesc,
			c.config.GetString("credentials.stk.transaction_desc", ""),
			"STK Push Test",
		),
	}

	return c.post(ctx, token, c.endpoints().STKPush, body)
}

// STKQuery queries the status of a previous STK push by CheckoutRequestID.
func (c *Client) STKQuery(ctx context.Context, input domain.STKQueryInput) domain.Result {
	token, failure, ok := c.accessToken(ctx)
	if !ok {
		return failure
	}

	shortCode := c.config.GetString("credentials.stk.short_code", "")
	passkey := c.config.GetString("credentials.stk.passkey", "")
	if shortCode == "" || passkey == "" {
		return domain.ErrorResult("Missing MPESA_STK_SHORT_CODE or MPESA_STK_PASSKEY.", 400)
	}

	if input.CheckoutRequestID == "" {
		return domain.ErrorResult("Missing checkout_request_id.", 400)
	}

	timestamp := input.Timestamp
	if timestamp == "" {
		timestamp = GatewayTimestamp(time.Now())
	}

	body := map[string]any{
		"BusinessShortCode": shortCode,
		"Password":          STKPassword(shortCode, passkey, timestamp),
		"Timestamp":         timestamp,
		"CheckoutRequestID": input.CheckoutRequestID,
	}

	return c.post(ctx, token, c.endpoints().STKQuery, body)
}

// B2C sends a business-to-customer payment.
func (c *Client) B2C(ctx context.Context, input domain.B2CInput) domain.Result {
	token, failure, ok := c.accessToken(ctx)
	if !ok {
		return failure
	}

	shortCode := c.config.GetString("credentials.b2c.short_code", "")
	initiator := c.config.GetString("credentials.b2c.initiator_name", "")
	securityCredential, credFailure, ok := c.b2cSecurityCredential(shortCode, initiator)
	if !ok {
		return credFailure
	}

	phone := NormalizePhone(input.Phone)

	body := map[string]any{
		"InitiatorName":      initiator,
		"SecurityCredential": securityCredential,
		"CommandID": firstNonEmpty(
			input.CommandID,
			c.config.GetString("credentials.b2c.command_id", ""),
			"BusinessPayment",
		),
		"Amount":          amountOrDefault(input.Amount),
		"PartyA":          shortCode,
		"PartyB":          phone,
		"Remarks":         firstNonEmpty(input.Remarks, "B2C Payment"),
		"QueueTimeOutURL": c.b2cTimeoutURL(),
		"ResultURL":       c.b2cResultURL(),
		"Occasion":        firstNonEmpty(input.Occasion, "Mpesa Test"),
		"OriginatorConversationID": firstNonEmpty(
			input.OriginatorConversationID,
			uuid.NewString(),
		),
	}

	return c.post(ctx, token, c.endpoints().B2C, body)
}

// ValidatedB2C sends a B2C payment with national ID validation.
func (c *Client) ValidatedB2C(ctx context.Context, input domain.ValidatedB2CInput) domain.Result {
	token, failure, ok := c.accessToken(ctx)
	if !ok {
		return failure
	}

	shortCode := c.config.GetString("credentials.b2c.short_code", "")
	initiator := c.config.GetString("credentials.b2c.initiator_name", "")
	securityCredential, credFailure, ok := c.b2cSecurityCredential(shortCode, initiator)
	if !ok {
		return credFailure
	}

	if input.IDNumber == "" {
		return domain.ErrorResult("Missing id_number for validated B2C.", 400)
	}

	phone := NormalizePhone(input.Phone)

	body := map[string]any{
		"InitiatorName":      initiator,
		"SecurityCredential": securityCredential,
		"CommandID": firstNonEmpty(
			input.CommandID,
			c.config.GetString("credentials.b2c.command_id", ""),
			"BusinessPayment",
		),
		"Amount":  amountOrDefault(input.Amount),
		"PartyA":  shortCode,
		"PartyB":  phone,
		"Remarks": firstNonEmpty(input.Remarks, "B2C Payment"),
		"Occasion": input.Occasion,
		"OriginatorConversationID": firstNonEmpty(
			input.OriginatorConversationID,
			uuid.NewString(),
		),
		"IDType":          firstNonEmpty(input.IDType, "01"),
		"IDNumber":        input.IDNumber,
		"ResultURL":       c.b2cResultURL(),
		"QueueTimeOutURL": c.b2cTimeoutURL(),
	}

	return c.post(ctx, token, c.endpoints().B2CValidated, body)
}

// C2BRegisterURLs registers the C2B validation and confirmation URLs.
func (c *Client) C2BRegisterURLs(ctx context.Context, input domain.C2BRegisterInput) domain.Result {
	token, failure, ok := c.accessToken(ctx)
	if !ok {
		return failure
	}

	shortCode := firstNonEmpty(input.ShortCode, c.config.GetString("credentials.c2b.short_code", ""))
	confirmationURL := firstNonEmpty(
		input.ConfirmationURL,
		c.config.GetString("credentials.c2b.confirmation_url", ""),
		c.config.GetString("callbacks.c2b_confirmation", ""),
	)
	validationURL := firstNonEmpty(
		input.ValidationURL,
		c.config.GetString("credentials.c2b.validation_url", ""),
		c.config.GetString("callbacks.c2b_validation", ""),
	)

	if shortCode == "" || confirmationURL == "" || validationURL == "" {
		return domain.ErrorResult("Missing C2B short code, confirmation_url, or validation_url.", 400)
	}

	body := map[string]any{
		"ShortCode": shortCode,
		"ResponseType": firstNonEmpty(
			input.ResponseType,
			c.config.GetString("credentials.c2b.response_type", ""),
			"Completed",
		),
		"ConfirmationURL": confirmationURL,
		"ValidationURL":   validationURL,
	}

	return c.post(ctx, token, c.endpoints().C2BRegister, body)
}

// C2BSimulate simulates a customer-to-business payment (sandbox only).
func (c *Client) C2BSimulate(ctx context.Context, input domain.C2BSimulateInput) domain.Result {
	token, failure, ok := c.accessToken(ctx)
	if !ok {
		return failure
	}

	shortCode := firstNonEmpty(input.ShortCode, c.config.GetString("credentials.c2b.short_code", ""))
	if shortCode == "" {
		return domain.ErrorResult("Missing C2B short code.", 400)
	}

	body := map[string]any{
		"ShortCode": shortCode,
		"CommandID": firstNonEmpty(input.CommandID, "CustomerPayBillOnline"),
		"Amount":    int(amountOrDefault(input.Amount)),
		"Msisdn":    NormalizePhone(input.Phone),
	}
	if input.BillRefNumber != "" {
		body["BillRefNumber"] = input.BillRefNumber
	}

	return c.post(ctx, token, c.endpoints().C2BSimulate, body)
}

// TransactionStatus queries the status of a transaction.
func (c *Client) TransactionStatus(ctx context.Context, input domain.TransactionStatusInput) domain.Result {
	token, failure, ok := c.accessToken(ctx)
	if !ok {
		return failure
	}

	if input.ShortCode == "" || input.TransactionID == "" || input.IdentifierType == "" || input.Remarks == "" {
		return domain.ErrorResult("Missing short_code, transaction_id, identifier_type, or remarks.", 400)
	}

	initiator, securityCredential, credFailure, ok := c.privilegedCredentials(input.InitiatorName, input.SecurityCredential)
	if !ok {
		return credFailure
	}
	if initiator == "" || securityCredential == "" {
		return domain.ErrorResult("Missing initiator_name or security_credential for transaction status query.", 400)
	}

	body := map[string]any{
		"Initiator":          initiator,
		"SecurityCredential": securityCredential,
		"CommandID":          "TransactionStatusQuery",
		"TransactionID":      input.TransactionID,
		"PartyA":             input.ShortCode,
		"IdentifierType":     input.IdentifierType,
		"Remarks":            input.Remarks,
		"Occasion":           input.Occasion,
		"ResultURL": firstNonEmpty(
			input.ResultURL,
			c.config.GetString("callbacks.transaction_status_result", ""),
		),
		"QueueTimeOutURL": firstNonEmpty(
			input.TimeoutURL,
			c.config.GetString("callbacks.transaction_status_timeout", ""),
		),
	}

	return c.post(ctx, token, c.endpoints().TransactionStatus, body)
}

// AccountBalance queries the account balance of a short code.
func (c *Client) AccountBalance(ctx context.Context, input domain.AccountBalanceInput) domain.Result {
	token, failure, ok := c.accessToken(ctx)
	if !ok {
		return failure
	}

	if input.ShortCode == "" || input.IdentifierType == "" || input.Remarks == "" {
		return domain.ErrorResult("Missing short_code, identifier_type, or remarks.", 400)
	}

	initiator, securityCredential, credFailure, ok := c.privilegedCredentials(input.InitiatorName, input.SecurityCredential)
	if !ok {
		return credFailure
	}
	if initiator == "" || securityCredential == "" {
		return domain.ErrorResult("Missing initiator_name or security_credential for account balance.", 400)
	}

	body := map[string]any{
		"Initiator":          initiator,
		"SecurityCredential": securityCredential,
		"CommandID":          "AccountBalance",
		"PartyA":             input.ShortCode,
		"IdentifierType":     input.IdentifierType,
		"Remarks":            input.Remarks,
		"ResultURL": firstNonEmpty(
			input.ResultURL,
			c.config.GetString("callbacks.account_balance_result", ""),
		),
		"QueueTimeOutURL": firstNonEmpty(
			input.TimeoutURL,
			c.config.GetString("callbacks.account_balance_timeout", ""),
		),
	}

	return c.post(ctx, token, c.endpoints().AccountBalance, body)
}

// Reversal reverses a completed transaction.
func (c *Client) Reversal(ctx context.Context, input domain.ReversalInput) domain.Result {
	token, failure, ok := c.accessToken(ctx)
	if !ok {
		return failure
	}

	if input.ShortCode == "" || input.TransactionID == "" || input.Amount == 0 || input.Remarks == "" {
		return domain.ErrorResult("Missing short_code, transaction_id, amount, or remarks.", 400)
	}

	initiator, securityCredential, credFailure, ok := c.privilegedCredentials(input.InitiatorName, input.SecurityCredential)
	if !ok {
		return credFailure
	}
	if initiator == "" || securityCredential == "" {
		return domain.ErrorResult("Missing initiator_name or security_credential for reversal.", 400)
	}

	body := map[string]any{
		"Initiator":              initiator,
		"SecurityCredential":     securityCredential,
		"CommandID":              "TransactionReversal",
		"TransactionID":          input.TransactionID,
		"Amount":                 input.Amount,
		"ReceiverParty":          input.ShortCode,
		"RecieverIdentifierType": firstNonEmpty(input.IdentifierType, "11"),
		"Remarks":                input.Remarks,
		"Occasion":               input.Occasion,
		"ResultURL": firstNonEmpty(
			input.ResultURL,
			c.config.GetString("callbacks.reversal_result", ""),
		),
		"QueueTimeOutURL": firstNonEmpty(
			input.TimeoutURL,
			c.config.GetString("callbacks.reversal_timeout", ""),
		),
	}

	return c.post(ctx, token, c.endpoints().Reversal, body)
}

// accessToken acquires a fresh token for an operation. On failure the
// operation short-circuits with a failure envelope carrying the token
// failure's status; no partial attempt reaches the operation endpoint.
func (c *Client) accessToken(ctx context.Context) (string, domain.Result, bool) {
	tokenResult := c.GetAccessToken(ctx)
	token := tokenResult.DataString("access_token")

	if !tokenResult.OK || token == "" {
		status := tokenResult.Status
		if status == 0 {
			status = 400
		}
		return "", domain.ErrorResult("Failed to get access token.", status), false
	}

	return token, domain.Result{}, true
}

// b2cSecurityCredential resolves the B2C initiator identity and security
// credential, encrypting the initiator password on demand when no pre-shared
// credential is configured.
func (c *Client) b2cSecurityCredential(shortCode, initiator string) (string, domain.Result, bool) {
	initiatorPassword := c.config.GetString("credentials.b2c.initiator_password", "")
	securityCredential := c.config.GetString("credentials.b2c.security_credential", "")

	if shortCode == "" || initiator == "" || (initiatorPassword == "" && securityCredential == "") {
		return "", domain.ErrorResult(
			"Missing MPESA_B2C_SHORT_CODE, MPESA_B2C_INITIATOR, and either MPESA_B2C_INITIATOR_PASSWORD or MPESA_B2C_SECURITY_CREDENTIAL.",
			400,
		), false
	}

	if securityCredential == "" && initiatorPassword != "" {
		encrypted, err := c.encryptor.Encrypt(initiatorPassword)
		if err != nil {
			return "", domain.ErrorResult(err.Error(), 400), false
		}
		securityCredential = encrypted
	}

	return securityCredential, domain.Result{}, true
}

// privilegedCredentials resolves the initiator identity and security
// credential for the utility operations (transaction status, account balance,
// reversal). Explicit input values win over the B2C configuration; the
// initiator password is encrypted on demand when no credential is available.
func (c *Client) privilegedCredentials(explicitInitiator, explicitCredential string) (string, string, domain.Result, bool) {
	initiator := firstNonEmpty(explicitInitiator, c.config.GetString("credentials.b2c.initiator_name", ""))
	securityCredential := firstNonEmpty(explicitCredential, c.config.GetString("credentials.b2c.security_credential", ""))
	initiatorPassword := c.config.GetString("credentials.b2c.initiator_password", "")

	if securityCredential == "" && initiatorPassword != "" {
		encrypted, err := c.encryptor.Encrypt(initiatorPassword)
		if err != nil {
			return "", "", domain.ErrorResult(err.Error(), 400), false
		}
		securityCredential = encrypted
	}

	return initiator, securityCredential, domain.Result{}, true
}

// b2cResultURL resolves the B2C result callback URL.
func (c *Client) b2cResultURL() string {
	return firstNonEmpty(
		c.config.GetString("credentials.b2c.result_url", ""),
		c.config.GetString("callbacks.b2c_result", ""),
	)
}

// b2cTimeoutURL resolves the B2C queue timeout callback URL.
func (c *Client) b2cTimeoutURL() string {
	return firstNonEmpty(
		c.config.GetString("credentials.b2c.timeout_url", ""),
		c.config.GetString("callbacks.b2c_timeout", ""),
	)
}

// post sends an operation request with bearer auth and normalizes the
// response into the envelope.
func (c *Client) post(ctx context.Context, token, path string, body map[string]any) domain.Result {
	payload, err := json.Marshal(body)
	if err != nil {
		return c.transportFailure(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL()+path, bytes.NewReader(payload))
	if err != nil {
		return c.transportFailure(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.opClient.Do(req)
	if err != nil {
		return c.transportFailure(err)
	}
	defer resp.Body.Close()

	return formatResponse(resp)
}

// baseURL returns the configured gateway base URL without a trailing slash.
func (c *Client) baseURL() string {
	return strings.TrimRight(c.config.GetString("base_url", "https://sandbox.safaricom.co.ke"), "/")
}

// endpoints returns the endpoint set for the configured environment.
func (c *Client) endpoints() domain.EndpointSet {
	return domain.Endpoints(domain.ParseEnvironment(c.config.GetString("env", "sandbox")))
}

// transportFailure folds a transport-level error (timeout, connection
// failure) into the envelope; it is never raised to the caller.
func (c *Client) transportFailure(err error) domain.Result {
	c.logger.Warn("gateway request failed", slog.Any("error", err))
	message := err.Error()
	return domain.Result{
		OK:    false,
		Error: &message,
	}
}

// formatResponse normalizes an HTTP response into the envelope. On failure
// the error is extracted from the body's errorMessage/error/message fields
// when present and the raw body is retained for diagnostics.
func formatResponse(resp *http.Response) domain.Result {
	raw, _ := io.ReadAll(resp.Body)

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		data = nil
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	result := domain.Result{
		OK:     ok,
		Status: resp.StatusCode,
		Data:   data,
	}

	if !ok {
		for _, key := range []string{"errorMessage", "error", "message"} {
			if msg, found := data[key].(string); found && msg != "" {
				result.Error = &msg
				break
			}
		}
		body := string(raw)
		result.Body = &body
	}

	return result
}

// firstNonEmpty returns the first non-empty value, expressing the
// payload-over-config-over-default precedence.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// amountOrDefault applies the gateway's minimum test amount when unset.
func amountOrDefault(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
