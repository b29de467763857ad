package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jameskabz/mpesa/internal/config"
	"github.com/jameskabz/mpesa/internal/gateway/domain"
)

// stubGateway records the operation request it receives and serves a token
// plus a canned operation response.
type stubGateway struct {
	server *httptest.Server

	tokenStatus int
	tokenBody   string

	opStatus int
	opBody   string

	lastPath    string
	lastPayload map[string]any
	lastAuth    string
	opCalls     int
}

func newStubGateway(t *testing.T) *stubGateway {
	t.Helper()

	stub := &stubGateway{
		tokenStatus: http.StatusOK,
		tokenBody:   `{"access_token":"test-token","expires_in":"3599"}`,
		opStatus:    http.StatusOK,
		opBody:      `{"ResponseCode":"0","ResponseDescription":"Accepted"}`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(stub.tokenStatus)
		io.WriteString(w, stub.tokenBody)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		stub.opCalls++
		stub.lastPath = r.URL.Path
		stub.lastAuth = r.Header.Get("Authorization")
		stub.lastPayload = map[string]any{}
		_ = json.NewDecoder(r.Body).Decode(&stub.lastPayload)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(stub.opStatus)
		io.WriteString(w, stub.opBody)
	})

	stub.server = httptest.NewServer(mux)
	t.Cleanup(stub.server.Close)

	return stub
}

func newTestClient(stub *stubGateway, values map[string]any) *Client {
	if values == nil {
		values = map[string]any{}
	}
	if stub != nil {
		values["base_url"] = stub.server.URL
	}
	if _, ok := values["consumer_key"]; !ok {
		values["consumer_key"] = "key"
	}
	if _, ok := values["consumer_secret"]; !ok {
		values["consumer_secret"] = "secret"
	}

	cfg := config.NewProvider(values)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewClient(cfg, NewEncryptor(cfg), logger)
}

func stkValues() map[string]any {
	return map[string]any{
		"credentials": map[string]any{
			"stk": map[string]any{
				"short_code":   "174379",
				"passkey":      "passkey",
				"callback_url": "https://example.com/stk/callback",
			},
		},
	}
}

func b2cValues() map[string]any {
	return map[string]any{
		"credentials": map[string]any{
			"b2c": map[string]any{
				"short_code":          "600000",
				"initiator_name":      "testapi",
				"security_credential": "preshared-credential",
			},
		},
		"callbacks": map[string]any{
			"b2c_result":  "https://example.com/b2c/result",
			"b2c_timeout": "https://example.com/b2c/timeout",
		},
	}
}

func TestClient_GetAccessToken(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, nil)

	result := client.GetAccessToken(context.Background())

	assert.True(t, result.OK)
	assert.Equal(t, http.StatusOK, result.Status)
	assert.Equal(t, "test-token", result.DataString("access_token"))
	assert.Nil(t, result.Error)
	assert.Nil(t, result.Body)
}

func TestClient_GetAccessTokenMissingCredentials(t *testing.T) {
	client := newTestClient(nil, map[string]any{
		"consumer_key":    "",
		"consumer_secret": "",
		// Unresolvable host proves no network call is attempted.
		"base_url": "http://gateway.invalid",
	})

	result := client.GetAccessToken(context.Background())

	assert.False(t, result.OK)
	assert.Equal(t, 400, result.Status)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Missing MPESA_CONSUMER_KEY or MPESA_CONSUMER_SECRET.", *result.Error)
}

func TestClient_GetAccessTokenDenied(t *testing.T) {
	stub := newStubGateway(t)
	stub.tokenStatus = http.StatusUnauthorized
	stub.tokenBody = `{"errorCode":"404.001.03","errorMessage":"Invalid Access Token"}`
	client := newTestClient(stub, nil)

	result := client.GetAccessToken(context.Background())

	assert.False(t, result.OK)
	assert.Equal(t, http.StatusUnauthorized, result.Status)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Invalid Access Token", *result.Error)
	require.NotNil(t, result.Body)
	assert.Contains(t, *result.Body, "404.001.03")
}

func TestClient_GetAccessTokenTransportFailure(t *testing.T) {
	client := newTestClient(nil, map[string]any{
		"base_url": "http://gateway.invalid",
	})

	result := client.GetAccessToken(context.Background())

	assert.False(t, result.OK)
	assert.Equal(t, 0, result.Status)
	require.NotNil(t, result.Error)
	assert.NotEmpty(t, *result.Error)
}

func TestClient_STKPush(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, stkValues())

	result := client.STKPush(context.Background(), domain.STKPushInput{
		Phone:     "0712345678",
		Amount:    100,
		Timestamp: "20220101120000",
	})

	assert.True(t, result.OK)
	assert.Equal(t, "/mpesa/stkpush/v1/processrequest", stub.lastPath)
	assert.Equal(t, "Bearer test-token", stub.lastAuth)

	assert.Equal(t, "174379", stub.lastPayload["BusinessShortCode"])
	assert.Equal(t, STKPassword("174379", "passkey", "20220101120000"), stub.lastPayload["Password"])
	assert.Equal(t, "254712345678", stub.lastPayload["PartyA"])
	assert.Equal(t, "254712345678", stub.lastPayload["PhoneNumber"])
	assert.Equal(t, "174379", stub.lastPayload["PartyB"])
	assert.Equal(t, float64(100), stub.lastPayload["Amount"])
	assert.Equal(t, "CustomerPayBillOnline", stub.lastPayload["TransactionType"])
	assert.Equal(t, "https://example.com/stk/callback", stub.lastPayload["CallBackURL"])
	assert.Equal(t, "Mpesa Test", stub.lastPayload["AccountReference"])
	assert.Equal(t, "STK Push Test", stub.lastPayload["TransactionDesc"])
}

func TestClient_STKPushDefaults(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, stkValues())

	result := client.STKPush(context.Background(), domain.STKPushInput{Phone: "0712345678"})

	assert.True(t, result.OK)
	assert.Equal(t, float64(1), stub.lastPayload["Amount"])
	assert.Len(t, stub.lastPayload["Timestamp"], 14)
}

func TestClient_STKPushCallbackPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		opConfig string
		global   string
		expected string
	}{
		{
			name:     "payload wins",
			input:    "https://payload.example.com",
			opConfig: "https://op.example.com",
			global:   "https://global.example.com",
			expected: "https://payload.example.com",
		},
		{
			name:     "operation config over global",
			opConfig: "https://op.example.com",
			global:   "https://global.example.com",
			expected: "https://op.example.com",
		},
		{
			name:     "global fallback",
			global:   "https://global.example.com",
			expected: "https://global.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newStubGateway(t)
			client := newTestClient(stub, map[string]any{
				"credentials": map[string]any{
					"stk": map[string]any{
						"short_code":   "174379",
						"passkey":      "passkey",
						"callback_url": tt.opConfig,
					},
				},
				"callbacks": map[string]any{
					"stk": tt.global,
				},
			})

			result := client.STKPush(context.Background(), domain.STKPushInput{
				Phone:       "0712345678",
				CallbackURL: tt.input,
			})

			assert.True(t, result.OK)
			assert.Equal(t, tt.expected, stub.lastPayload["CallBackURL"])
		})
	}
}

func TestClient_STKPushMissingConfig(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, nil)

	result := client.STKPush(context.Background(), domain.STKPushInput{Phone: "0712345678"})

	assert.False(t, result.OK)
	assert.Equal(t, 400, result.Status)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Missing MPESA_STK_SHORT_CODE or MPESA_STK_PASSKEY.", *result.Error)
	assert.Zero(t, stub.opCalls)
}

func TestClient_STKPushTokenFailureShortCircuits(t *testing.T) {
	stub := newStubGateway(t)
	stub.tokenStatus = http.StatusUnauthorized
	stub.tokenBody = `{"errorMessage":"Invalid credentials"}`
	client := newTestClient(stub, stkValues())

	result := client.STKPush(context.Background(), domain.STKPushInput{Phone: "0712345678"})

	assert.False(t, result.OK)
	assert.Equal(t, http.StatusUnauthorized, result.Status)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Failed to get access token.", *result.Error)
	assert.Zero(t, stub.opCalls)
}

func TestClient_STKQuery(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, stkValues())

	result := client.STKQuery(context.Background(), domain.STKQueryInput{
		CheckoutRequestID: "ws_CO_123",
		Timestamp:         "20220101120000",
	})

	assert.True(t, result.OK)
	assert.Equal(t, "/mpesa/stkpushquery/v1/query", stub.lastPath)
	assert.Equal(t, "ws_CO_123", stub.lastPayload["CheckoutRequestID"])
	assert.Equal(t, STKPassword("174379", "passkey", "20220101120000"), stub.lastPayload["Password"])
}

func TestClient_STKQueryMissingCheckoutRequestID(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, stkValues())

	result := client.STKQuery(context.Background(), domain.STKQueryInput{})

	assert.False(t, result.OK)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Missing checkout_request_id.", *result.Error)
	assert.Zero(t, stub.opCalls)
}

func TestClient_B2C(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, b2cValues())

	result := client.B2C(context.Background(), domain.B2CInput{
		Phone:   "0712345678",
		Amount:  250,
		Remarks: "Salary",
	})

	assert.True(t, result.OK)
	assert.Equal(t, "/mpesa/b2c/v3/paymentrequest", stub.lastPath)
	assert.Equal(t, "testapi", stub.lastPayload["InitiatorName"])
	assert.Equal(t, "preshared-credential", stub.lastPayload["SecurityCredential"])
	assert.Equal(t, "BusinessPayment", stub.lastPayload["CommandID"])
	assert.Equal(t, "600000", stub.lastPayload["PartyA"])
	assert.Equal(t, "254712345678", stub.lastPayload["PartyB"])
	assert.Equal(t, float64(250), stub.lastPayload["Amount"])
	assert.Equal(t, "Salary", stub.lastPayload["Remarks"])
	assert.Equal(t, "https://example.com/b2c/result", stub.lastPayload["ResultURL"])
	assert.Equal(t, "https://example.com/b2c/timeout", stub.lastPayload["QueueTimeOutURL"])
	assert.NotEmpty(t, stub.lastPayload["OriginatorConversationID"])
}

func TestClient_B2CProductionPath(t *testing.T) {
	stub := newStubGateway(t)
	values := b2cValues()
	values["env"] = "production"
	client := newTestClient(stub, values)

	result := client.B2C(context.Background(), domain.B2CInput{Phone: "0712345678"})

	assert.True(t, result.OK)
	assert.Equal(t, "/mpesa/b2c/v1/paymentrequest", stub.lastPath)
}

func TestClient_B2CCommandIDPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		opConfig string
		expected string
	}{
		{
			name:     "payload wins",
			input:    "SalaryPayment",
			opConfig: "PromotionPayment",
			expected: "SalaryPayment",
		},
		{
			name:     "operation config over default",
			opConfig: "PromotionPayment",
			expected: "PromotionPayment",
		},
		{
			name:     "built-in default",
			expected: "BusinessPayment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newStubGateway(t)
			client := newTestClient(stub, map[string]any{
				"credentials": map[string]any{
					"b2c": map[string]any{
						"short_code":          "600000",
						"initiator_name":      "testapi",
						"security_credential": "preshared-credential",
						"command_id":          tt.opConfig,
					},
				},
			})

			result := client.B2C(context.Background(), domain.B2CInput{
				Phone:     "0712345678",
				CommandID: tt.input,
			})

			assert.True(t, result.OK)
			assert.Equal(t, tt.expected, stub.lastPayload["CommandID"])

			result = client.ValidatedB2C(context.Background(), domain.ValidatedB2CInput{
				Phone:     "0712345678",
				IDNumber:  "12345678",
				CommandID: tt.input,
			})

			assert.True(t, result.OK)
			assert.Equal(t, tt.expected, stub.lastPayload["CommandID"])
		})
	}
}

func TestClient_B2CMissingConfig(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, nil)

	result := client.B2C(context.Background(), domain.B2CInput{Phone: "0712345678"})

	assert.False(t, result.OK)
	require.NotNil(t, result.Error)
	assert.Equal(t,
		"Missing MPESA_B2C_SHORT_CODE, MPESA_B2C_INITIATOR, and either MPESA_B2C_INITIATOR_PASSWORD or MPESA_B2C_SECURITY_CREDENTIAL.",
		*result.Error)
	assert.Zero(t, stub.opCalls)
}

func TestClient_B2CEncryptsPasswordOnDemand(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, map[string]any{
		"credentials": map[string]any{
			"b2c": map[string]any{
				"short_code":         "600000",
				"initiator_name":     "testapi",
				"initiator_password": "secret",
			},
		},
	})

	// No credential configured and no certificate on disk: the on-demand
	// encryption fails before any operation call.
	result := client.B2C(context.Background(), domain.B2CInput{Phone: "0712345678"})

	assert.False(t, result.OK)
	assert.Equal(t, 400, result.Status)
	require.NotNil(t, result.Error)
	assert.Contains(t, *result.Error, "certificate file not found")
	assert.Zero(t, stub.opCalls)
}

func TestClient_ValidatedB2C(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, b2cValues())

	result := client.ValidatedB2C(context.Background(), domain.ValidatedB2CInput{
		Phone:    "0712345678",
		Amount:   100,
		IDNumber: "12345678",
	})

	assert.True(t, result.OK)
	assert.Equal(t, "/mpesa/b2cvalidate/v2/paymentrequest", stub.lastPath)
	assert.Equal(t, "01", stub.lastPayload["IDType"])
	assert.Equal(t, "12345678", stub.lastPayload["IDNumber"])
}

func TestClient_ValidatedB2CMissingIDNumber(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, b2cValues())

	result := client.ValidatedB2C(context.Background(), domain.ValidatedB2CInput{Phone: "0712345678"})

	assert.False(t, result.OK)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Missing id_number for validated B2C.", *result.Error)
	assert.Zero(t, stub.opCalls)
}

func TestClient_C2BRegisterURLs(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, map[string]any{
		"credentials": map[string]any{
			"c2b": map[string]any{
				"short_code":       "600000",
				"confirmation_url": "https://example.com/c2b/confirmation",
				"validation_url":   "https://example.com/c2b/validation",
			},
		},
	})

	result := client.C2BRegisterURLs(context.Background(), domain.C2BRegisterInput{})

	assert.True(t, result.OK)
	assert.Equal(t, "/mpesa/c2b/v2/registerurl", stub.lastPath)
	assert.Equal(t, "600000", stub.lastPayload["ShortCode"])
	assert.Equal(t, "Completed", stub.lastPayload["ResponseType"])
	assert.Equal(t, "https://example.com/c2b/confirmation", stub.lastPayload["ConfirmationURL"])
	assert.Equal(t, "https://example.com/c2b/validation", stub.lastPayload["ValidationURL"])
}

func TestClient_C2BRegisterURLsMissingConfig(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, nil)

	result := client.C2BRegisterURLs(context.Background(), domain.C2BRegisterInput{})

	assert.False(t, result.OK)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Missing C2B short code, confirmation_url, or validation_url.", *result.Error)
	assert.Zero(t, stub.opCalls)
}

func TestClient_C2BSimulate(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, map[string]any{
		"credentials": map[string]any{
			"c2b": map[string]any{
				"short_code": "600000",
			},
		},
	})

	result := client.C2BSimulate(context.Background(), domain.C2BSimulateInput{
		Phone:         "0712345678",
		Amount:        75,
		BillRefNumber: "INV-001",
	})

	assert.True(t, result.OK)
	assert.Equal(t, "/mpesa/c2b/v1/simulate", stub.lastPath)
	assert.Equal(t, "CustomerPayBillOnline", stub.lastPayload["CommandID"])
	// Whole-number amount on the wire.
	assert.Equal(t, float64(75), stub.lastPayload["Amount"])
	assert.Equal(t, "254712345678", stub.lastPayload["Msisdn"])
	assert.Equal(t, "INV-001", stub.lastPayload["BillRefNumber"])
}

func TestClient_C2BSimulateOmitsEmptyBillRef(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, map[string]any{
		"credentials": map[string]any{
			"c2b": map[string]any{
				"short_code": "600000",
			},
		},
	})

	result := client.C2BSimulate(context.Background(), domain.C2BSimulateInput{Phone: "0712345678"})

	assert.True(t, result.OK)
	assert.NotContains(t, stub.lastPayload, "BillRefNumber")
}

func TestClient_TransactionStatus(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, map[string]any{
		"credentials": map[string]any{
			"b2c": map[string]any{
				"initiator_name":      "testapi",
				"security_credential": "preshared-credential",
			},
		},
		"callbacks": map[string]any{
			"transaction_status_result":  "https://example.com/status/result",
			"transaction_status_timeout": "https://example.com/status/timeout",
		},
	})

	result := client.TransactionStatus(context.Background(), domain.TransactionStatusInput{
		ShortCode:      "600000",
		TransactionID:  "OEI2AK4Q16",
		IdentifierType: "4",
		Remarks:        "Check",
	})

	assert.True(t, result.OK)
	assert.Equal(t, "/mpesa/transactionstatus/v1/query", stub.lastPath)
	assert.Equal(t, "TransactionStatusQuery", stub.lastPayload["CommandID"])
	assert.Equal(t, "testapi", stub.lastPayload["Initiator"])
	assert.Equal(t, "OEI2AK4Q16", stub.lastPayload["TransactionID"])
	assert.Equal(t, "https://example.com/status/result", stub.lastPayload["ResultURL"])
	assert.Equal(t, "https://example.com/status/timeout", stub.lastPayload["QueueTimeOutURL"])
}

func TestClient_TransactionStatusMissingFields(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, b2cValues())

	result := client.TransactionStatus(context.Background(), domain.TransactionStatusInput{
		ShortCode: "600000",
	})

	assert.False(t, result.OK)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Missing short_code, transaction_id, identifier_type, or remarks.", *result.Error)
	assert.Zero(t, stub.opCalls)
}

func TestClient_TransactionStatusMissingCredentials(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, nil)

	result := client.TransactionStatus(context.Background(), domain.TransactionStatusInput{
		ShortCode:      "600000",
		TransactionID:  "OEI2AK4Q16",
		IdentifierType: "4",
		Remarks:        "Check",
	})

	assert.False(t, result.OK)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Missing initiator_name or security_credential for transaction status query.", *result.Error)
	assert.Zero(t, stub.opCalls)
}

func TestClient_AccountBalance(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, b2cValues())

	result := client.AccountBalance(context.Background(), domain.AccountBalanceInput{
		ShortCode:      "600000",
		IdentifierType: "4",
		Remarks:        "Balance check",
		ResultURL:      "https://example.com/balance/result",
		TimeoutURL:     "https://example.com/balance/timeout",
	})

	assert.True(t, result.OK)
	assert.Equal(t, "/mpesa/accountbalance/v1/query", stub.lastPath)
	assert.Equal(t, "AccountBalance", stub.lastPayload["CommandID"])
	assert.Equal(t, "600000", stub.lastPayload["PartyA"])
	assert.Equal(t, "https://example.com/balance/result", stub.lastPayload["ResultURL"])
}

func TestClient_AccountBalanceMissingCredentials(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, nil)

	result := client.AccountBalance(context.Background(), domain.AccountBalanceInput{
		ShortCode:      "600000",
		IdentifierType: "4",
		Remarks:        "Balance check",
	})

	assert.False(t, result.OK)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Missing initiator_name or security_credential for account balance.", *result.Error)
	assert.Zero(t, stub.opCalls)
}

func TestClient_Reversal(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, b2cValues())

	result := client.Reversal(context.Background(), domain.ReversalInput{
		ShortCode:     "600000",
		TransactionID: "OEI2AK4Q16",
		Amount:        100,
		Remarks:       "Wrong recipient",
	})

	assert.True(t, result.OK)
	assert.Equal(t, "/mpesa/reversal/v1/request", stub.lastPath)
	assert.Equal(t, "TransactionReversal", stub.lastPayload["CommandID"])
	assert.Equal(t, "600000", stub.lastPayload["ReceiverParty"])
	assert.Equal(t, "11", stub.lastPayload["RecieverIdentifierType"])
	assert.Equal(t, float64(100), stub.lastPayload["Amount"])
}

func TestClient_ReversalMissingFields(t *testing.T) {
	stub := newStubGateway(t)
	client := newTestClient(stub, b2cValues())

	result := client.Reversal(context.Background(), domain.ReversalInput{
		ShortCode: "600000",
		Amount:    100,
	})

	assert.False(t, result.OK)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Missing short_code, transaction_id, amount, or remarks.", *result.Error)
	assert.Zero(t, stub.opCalls)
}

func TestClient_OperationGatewayError(t *testing.T) {
	stub := newStubGateway(t)
	stub.opStatus = http.StatusInternalServerError
	stub.opBody = `{"errorCode":"500.001.1001","errorMessage":"Unable to lock subscriber"}`
	client := newTestClient(stub, stkValues())

	result := client.STKPush(context.Background(), domain.STKPushInput{Phone: "0712345678"})

	assert.False(t, result.OK)
	assert.Equal(t, http.StatusInternalServerError, result.Status)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Unable to lock subscriber", *result.Error)
	require.NotNil(t, result.Body)
	assert.Contains(t, *result.Body, "500.001.1001")
	assert.Equal(t, "Unable to lock subscriber", result.ErrorMessage())
}

func TestClient_OperationNonJSONErrorBody(t *testing.T) {
	stub := newStubGateway(t)
	stub.opStatus = http.StatusBadGateway
	stub.opBody = `<html>Bad Gateway</html>`
	client := newTestClient(stub, stkValues())

	result := client.STKPush(context.Background(), domain.STKPushInput{Phone: "0712345678"})

	assert.False(t, result.OK)
	assert.Equal(t, http.StatusBadGateway, result.Status)
	assert.Nil(t, result.Error)
	require.NotNil(t, result.Body)
	assert.Contains(t, *result.Body, "Bad Gateway")
}

func TestFormatResponseErrorKeyFallback(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "errorMessage first",
			body:     `{"errorMessage":"primary","error":"secondary","message":"tertiary"}`,
			expected: "primary",
		},
		{
			name:     "error second",
			body:     `{"error":"secondary","message":"tertiary"}`,
			expected: "secondary",
		},
		{
			name:     "message last",
			body:     `{"message":"tertiary"}`,
			expected: "tertiary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newStubGateway(t)
			stub.opStatus = http.StatusBadRequest
			stub.opBody = tt.body
			client := newTestClient(stub, stkValues())

			result := client.STKPush(context.Background(), domain.STKPushInput{Phone: "0712345678"})

			require.NotNil(t, result.Error)
			assert.Equal(t, tt.expected, *result.Error)
		})
	}
}
