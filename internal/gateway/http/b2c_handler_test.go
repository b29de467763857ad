package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gatewayDomain "github.com/jameskabz/mpesa/internal/gateway/domain"
	"github.com/jameskabz/mpesa/internal/gateway/http/dto"
	recordDomain "github.com/jameskabz/mpesa/internal/record/domain"
)

func setupB2CHandler(result gatewayDomain.Result) (*B2CHandler, *stubGateway, *fakeRecorder) {
	gateway := &stubGateway{result: result}
	recorder := &fakeRecorder{}
	handler := NewB2CHandler(gateway, recorder, testConfigProvider(), testLogger())
	return handler, gateway, recorder
}

func TestB2CHandler_SendHandler(t *testing.T) {
	t.Run("Success_RecordsConfiguredParties", func(t *testing.T) {
		handler, gateway, recorder := setupB2CHandler(successResult())

		request := dto.B2CRequest{
			Phone:   "254712345678",
			Amount:  1500,
			Remarks: "Salary payment",
		}

		c, w := createTestContext(http.MethodPost, "/mpesa/b2c/send", request)
		handler.SendHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"B2C"}, gateway.calls)

		require.Len(t, recorder.outbound, 1)
		record := recorder.outbound[0]
		assert.Equal(t, recordDomain.RequestTypeB2C, record.Type)
		assert.Equal(t, recordDomain.RequestStatusPending, record.Status)
		require.NotNil(t, record.CommandID)
		assert.Equal(t, "BusinessPayment", *record.CommandID)
		require.NotNil(t, record.PartyA)
		assert.Equal(t, "600999", *record.PartyA)
		require.NotNil(t, record.PartyB)
		assert.Equal(t, "254712345678", *record.PartyB)
		require.NotNil(t, record.ConversationID)
		assert.Equal(t, "AG_20191219_00005797af5d7d75f652", *record.ConversationID)
		require.NotNil(t, record.TransactionID)
		assert.Equal(t, "NLJ7RT61SV", *record.TransactionID)
	})

	t.Run("GatewayFailure_RecordsFailedRequest", func(t *testing.T) {
		errMsg := "Request failed."
		handler, _, recorder := setupB2CHandler(gatewayDomain.Result{
			OK:     false,
			Status: 500,
			Error:  &errMsg,
		})

		request := dto.B2CRequest{
			Phone:  "254712345678",
			Amount: 1500,
		}

		c, w := createTestContext(http.MethodPost, "/mpesa/b2c/send", request)
		handler.SendHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		require.Len(t, recorder.outbound, 1)
		record := recorder.outbound[0]
		assert.Equal(t, recordDomain.RequestStatusFailed, record.Status)
		assert.Nil(t, record.ConversationID)
		assert.Equal(t, "Request failed.", record.ResponsePayload["error"])
	})

	t.Run("Error_MissingPhone", func(t *testing.T) {
		handler, gateway, recorder := setupB2CHandler(successResult())

		request := dto.B2CRequest{Amount: 1500}

		c, w := createTestContext(http.MethodPost, "/mpesa/b2c/send", request)
		handler.SendHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Empty(t, gateway.calls)
		assert.Empty(t, recorder.outbound)
	})
}

func TestB2CHandler_ValidatedHandler(t *testing.T) {
	t.Run("Success_NoRecordWritten", func(t *testing.T) {
		handler, gateway, recorder := setupB2CHandler(successResult())

		request := dto.ValidatedB2CRequest{
			Phone:    "254712345678",
			Amount:   1500,
			Remarks:  "Refund",
			IDNumber: "12345678",
		}

		c, w := createTestContext(http.MethodPost, "/mpesa/b2c/validated", request)
		handler.ValidatedHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"ValidatedB2C"}, gateway.calls)
		assert.Empty(t, recorder.outbound)
	})

	t.Run("Error_MissingIDNumber", func(t *testing.T) {
		handler, gateway, _ := setupB2CHandler(successResult())

		request := dto.ValidatedB2CRequest{
			Phone:   "254712345678",
			Amount:  1500,
			Remarks: "Refund",
		}

		c, w := createTestContext(http.MethodPost, "/mpesa/b2c/validated", request)
		handler.ValidatedHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "id_number")
		assert.Empty(t, gateway.calls)
	})
}
