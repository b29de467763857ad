// Package dto provides data transfer objects for the gateway operation endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/jameskabz/mpesa/internal/gateway/domain"
	customValidation "github.com/jameskabz/mpesa/internal/validation"
)

// STKPushRequest contains the parameters for initiating an STK push.
type STKPushRequest struct {
	Phone            string  `json:"phone"`
	Amount           float64 `json:"amount"`
	AccountReference string  `json:"account_reference"`
	TransactionDesc  string  `json:"transaction_desc"`
	CallbackURL      string  `json:"callback_url"`
	TransactionType  string  `json:"transaction_type"`
	PartyB           string  `json:"party_b"`
}

// Validate checks if the STK push request is valid.
func (r *STKPushRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Phone, validation.Required, customValidation.PhoneNumber),
		validation.Field(&r.Amount, validation.Required, validation.Min(1.0)),
		validation.Field(&r.AccountReference, validation.Length(0, 50)),
		validation.Field(&r.TransactionDesc, validation.Length(0, 200)),
		validation.Field(&r.CallbackURL, validation.When(r.CallbackURL != "", customValidation.AbsoluteURL)),
		validation.Field(&r.TransactionType, validation.Length(0, 50)),
		validation.Field(&r.PartyB, validation.Length(0, 20)),
	)
}

// ToInput maps the request to the gateway input.
func (r *STKPushRequest) ToInput() domain.STKPushInput {
	return domain.STKPushInput{
		Phone:            r.Phone,
		Amount:           r.Amount,
		AccountReference: r.AccountReference,
		TransactionDesc:  r.TransactionDesc,
		CallbackURL:      r.CallbackURL,
		TransactionType:  r.TransactionType,
		PartyB:           r.PartyB,
	}
}

// STKQueryRequest contains the parameters for querying an STK push by its
// checkout request ID.
type STKQueryRequest struct {
	CheckoutRequestID string `json:"checkout_request_id"`
	Timestamp         string `json:"timestamp"`
}

// Validate checks if the STK query request is valid.
func (r *STKQueryRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CheckoutRequestID, validation.Required, customValidation.NotBlank),
	)
}

// ToInput maps the request to the gateway input.
func (r *STKQueryRequest) ToInput() domain.STKQueryInput {
	return domain.STKQueryInput{
		CheckoutRequestID: r.CheckoutRequestID,
		Timestamp:         r.Timestamp,
	}
}

// B2CRequest contains the parameters for sending a B2C payment.
type B2CRequest struct {
	Phone                    string  `json:"phone"`
	Amount                   float64 `json:"amount"`
	Remarks                  string  `json:"remarks"`
	Occasion                 string  `json:"occasion"`
	OriginatorConversationID string  `json:"originator_conversation_id"`
}

// Validate checks if the B2C request is valid.
func (r *B2CRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Phone, validation.Required, customValidation.PhoneNumber),
		validation.Field(&r.Amount, validation.Required, validation.Min(1.0)),
		validation.Field(&r.Remarks, validation.Length(0, 200)),
		validation.Field(&r.Occasion, validation.Length(0, 200)),
		validation.Field(&r.OriginatorConversationID, validation.Length(0, 100)),
	)
}

// ToInput maps the request to the gateway input.
func (r *B2CRequest) ToInput() domain.B2CInput {
	return domain.B2CInput{
		Phone:                    r.Phone,
		Amount:                   r.Amount,
		Remarks:                  r.Remarks,
		Occasion:                 r.Occasion,
		OriginatorConversationID: r.OriginatorConversationID,
	}
}

// ValidatedB2CRequest contains the parameters for a B2C payment with national
// ID validation.
type ValidatedB2CRequest struct {
	Phone                    string  `json:"phone"`
	Amount                   float64 `json:"amount"`
	Remarks                  string  `json:"remarks"`
	IDNumber                 string  `json:"id_number"`
	IDType                   string  `json:"id_type"`
	Occasion                 string  `json:"occasion"`
	OriginatorConversationID string  `json:"originator_conversation_id"`
	CommandID                string  `json:"command_id"`
}

// Validate checks if the validated B2C request is valid.
func (r *ValidatedB2CRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Phone, validation.Required, customValidation.PhoneNumber),
		validation.Field(&r.Amount, validation.Required, validation.Min(1.0)),
		validation.Field(&r.Remarks, validation.Required, customValidation.NotBlank, validation.Length(0, 200)),
		validation.Field(&r.IDNumber, validation.Required, customValidation.NotBlank, validation.Length(0, 20)),
		validation.Field(&r.IDType, validation.Length(0, 5)),
		validation.Field(&r.Occasion, validation.Length(0, 200)),
		validation.Field(&r.OriginatorConversationID, validation.Length(0, 100)),
		validation.Field(&r.CommandID, validation.Length(0, 50)),
	)
}

// ToInput maps the request to the gateway input.
func (r *ValidatedB2CRequest) ToInput() domain.ValidatedB2CInput {
	return domain.ValidatedB2CInput{
		Phone:                    r.Phone,
		Amount:                   r.Amount,
		Remarks:                  r.Remarks,
		IDNumber:                 r.IDNumber,
		IDType:                   r.IDType,
		Occasion:                 r.Occasion,
		OriginatorConversationID: r.OriginatorConversationID,
		CommandID:                r.CommandID,
	}
}

// C2BRegisterRequest contains the parameters for registering C2B URLs.
// All fields are optional; configuration supplies the rest.
type C2BRegisterRequest struct {
	ShortCode       string `json:"short_code"`
	ConfirmationURL string `json:"confirmation_url"`
	ValidationURL   string `json:"validation_url"`
	ResponseType    string `json:"response_type"`
}

// Validate checks if the C2B register request is valid.
func (r *C2BRegisterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ShortCode, validation.Length(0, 20)),
		validation.Field(&r.ConfirmationURL, validation.When(r.ConfirmationURL != "", customValidation.AbsoluteURL)),
		validation.Field(&r.ValidationURL, validation.When(r.ValidationURL != "", customValidation.AbsoluteURL)),
		validation.Field(&r.ResponseType, validation.Length(0, 20)),
	)
}

// ToInput maps the request to the gateway input.
func (r *C2BRegisterRequest) ToInput() domain.C2BRegisterInput {
	return domain.C2BRegisterInput{
		ShortCode:       r.ShortCode,
		ConfirmationURL: r.ConfirmationURL,
		ValidationURL:   r.ValidationURL,
		ResponseType:    r.ResponseType,
	}
}

// C2BSimulateRequest contains the parameters for simulating a C2B payment.
type C2BSimulateRequest struct {
	Phone         string  `json:"phone"`
	Amount        float64 `json:"amount"`
	ShortCode     string  `json:"short_code"`
	CommandID     string  `json:"command_id"`
	BillRefNumber string  `json:"bill_ref_number"`
}

// Validate checks if the C2B simulate request is valid.
func (r *C2BSimulateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Phone, validation.Required, customValidation.PhoneNumber),
		validation.Field(&r.Amount, validation.Required, validation.Min(1.0)),
		validation.Field(&r.ShortCode, validation.Length(0, 20)),
		validation.Field(&r.CommandID, validation.Length(0, 50)),
		validation.Field(&r.BillRefNumber, validation.Length(0, 100)),
	)
}

// ToInput maps the request to the gateway input.
func (r *C2BSimulateRequest) ToInput() domain.C2BSimulateInput {
	return domain.C2BSimulateInput{
		Phone:         r.Phone,
		Amount:        r.Amount,
		ShortCode:     r.ShortCode,
		CommandID:     r.CommandID,
		BillRefNumber: r.BillRefNumber,
	}
}

// TransactionStatusRequest contains the parameters for a transaction status query.
type TransactionStatusRequest struct {
	ShortCode          string `json:"short_code"`
	TransactionID      string `json:"transaction_id"`
	IdentifierType     string `json:"identifier_type"`
	Remarks            string `json:"remarks"`
	ResultURL          string `json:"result_url"`
	TimeoutURL         string `json:"timeout_url"`
	Occasion           string `json:"occasion"`
	InitiatorName      string `json:"initiator_name"`
	SecurityCredential string `json:"security_credential"`
}

// Validate checks if the transaction status request is valid.
func (r *TransactionStatusRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ShortCode, validation.Required, customValidation.NotBlank),
		validation.Field(&r.TransactionID, validation.Required, customValidation.NotBlank),
		validation.Field(&r.IdentifierType, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Remarks, validation.Required, customValidation.NotBlank, validation.Length(0, 200)),
		validation.Field(&r.ResultURL, validation.When(r.ResultURL != "", customValidation.AbsoluteURL)),
		validation.Field(&r.TimeoutURL, validation.When(r.TimeoutURL != "", customValidation.AbsoluteURL)),
		validation.Field(&r.Occasion, validation.Length(0, 200)),
		validation.Field(&r.InitiatorName, validation.Length(0, 50)),
	)
}

// ToInput maps the request to the gateway input.
func (r *TransactionStatusRequest) ToInput() domain.TransactionStatusInput {
	return domain.TransactionStatusInput{
		ShortCode:          r.ShortCode,
		TransactionID:      r.TransactionID,
		IdentifierType:     r.IdentifierType,
		Remarks:            r.Remarks,
		ResultURL:          r.ResultURL,
		TimeoutURL:         r.TimeoutURL,
		Occasion:           r.Occasion,
		InitiatorName:      r.InitiatorName,
		SecurityCredential: r.SecurityCredential,
	}
}

// AccountBalanceRequest contains the parameters for an account balance query.
type AccountBalanceRequest struct {
	ShortCode          string `json:"short_code"`
	IdentifierType     string `json:"identifier_type"`
	Remarks            string `json:"remarks"`
	ResultURL          string `json:"result_url"`
	TimeoutURL         string `json:"timeout_url"`
	InitiatorName      string `json:"initiator_name"`
	SecurityCredential string `json:"security_credential"`
}

// Validate checks if the account balance request is valid.
func (r *AccountBalanceRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ShortCode, validation.Required, customValidation.NotBlank),
		validation.Field(&r.IdentifierType, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Remarks, validation.Required, customValidation.NotBlank, validation.Length(0, 200)),
		validation.Field(&r.ResultURL, validation.When(r.ResultURL != "", customValidation.AbsoluteURL)),
		validation.Field(&r.TimeoutURL, validation.When(r.TimeoutURL != "", customValidation.AbsoluteURL)),
		validation.Field(&r.InitiatorName, validation.Length(0, 50)),
	)
}

// ToInput maps the request to the gateway input.
func (r *AccountBalanceRequest) ToInput() domain.AccountBalanceInput {
	return domain.AccountBalanceInput{
		ShortCode:          r.ShortCode,
		IdentifierType:     r.IdentifierType,
		Remarks:            r.Remarks,
		ResultURL:          r.ResultURL,
		TimeoutURL:         r.TimeoutURL,
		InitiatorName:      r.InitiatorName,
		SecurityCredential: r.SecurityCredential,
	}
}

// ReversalRequest contains the parameters for reversing a transaction.
type ReversalRequest struct {
	ShortCode          string  `json:"short_code"`
	TransactionID      string  `json:"transaction_id"`
	Amount             float64 `json:"amount"`
	Remarks            string  `json:"remarks"`
	ResultURL          string  `json:"result_url"`
	TimeoutURL         string  `json:"timeout_url"`
	Occasion           string  `json:"occasion"`
	IdentifierType     string  `json:"identifier_type"`
	InitiatorName      string  `json:"initiator_name"`
	SecurityCredential string  `json:"security_credential"`
}

// Validate checks if the reversal request is valid.
func (r *ReversalRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ShortCode, validation.Required, customValidation.NotBlank),
		validation.Field(&r.TransactionID, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Amount, validation.Required, validation.Min(1.0)),
		validation.Field(&r.Remarks, validation.Required, customValidation.NotBlank, validation.Length(0, 200)),
		validation.Field(&r.ResultURL, validation.When(r.ResultURL != "", customValidation.AbsoluteURL)),
		validation.Field(&r.TimeoutURL, validation.When(r.TimeoutURL != "", customValidation.AbsoluteURL)),
		validation.Field(&r.Occasion, validation.Length(0, 200)),
		validation.Field(&r.IdentifierType, validation.Length(0, 5)),
		validation.Field(&r.InitiatorName, validation.Length(0, 50)),
	)
}

// ToInput maps the request to the gateway input.
func (r *ReversalRequest) ToInput() domain.ReversalInput {
	return domain.ReversalInput{
		ShortCode:          r.ShortCode,
		TransactionID:      r.TransactionID,
		Amount:             r.Amount,
		Remarks:            r.Remarks,
		ResultURL:          r.ResultURL,
		TimeoutURL:         r.TimeoutURL,
		Occasion:           r.Occasion,
		IdentifierType:     r.IdentifierType,
		InitiatorName:      r.InitiatorName,
		SecurityCredential: r.SecurityCredential,
	}
}
