package domain

// Operation inputs use the zero value to mean "not supplied"; the client
// resolves each field with the precedence: explicit input value, then
// operation-scoped configuration, then global callback configuration, then
// built-in default.

// STKPushInput carries the caller-supplied fields for an STK push.
type STKPushInput struct {
	Phone            string
	Amount           float64
	AccountReference string
	TransactionDesc  string
	CallbackURL      string
	TransactionType  string
	PartyB           string
	Timestamp        string
}

// STKQueryInput carries the caller-supplied fields for an STK status query.
type STKQueryInput struct {
	CheckoutRequestID string
	Timestamp         string
}

// B2CInput carries the caller-supplied fields for a B2C payment.
type B2CInput struct {
	Phone                    string
	Amount                   float64
	Remarks                  string
	Occasion                 string
	OriginatorConversationID string
	CommandID                string
}

// ValidatedB2CInput carries the caller-supplied fields for a B2C payment with
// national ID validation.
type ValidatedB2CInput struct {
	Phone                    string
	Amount                   float64
	Remarks                  string
	Occasion                 string
	OriginatorConversationID string
	CommandID                string
	IDNumber                 string
	IDType                   string
}

// C2BRegisterInput carries the caller-supplied fields for C2B URL registration.
type C2BRegisterInput struct {
	ShortCode       string
	ConfirmationURL string
	ValidationURL   string
	ResponseType    string
}

// C2BSimulateInput carries the caller-supplied fields for a sandbox C2B
// payment simulation.
type C2BSimulateInput struct {
	Phone         string
	Amount        float64
	ShortCode     string
	CommandID     string
	BillRefNumber string
}

// TransactionStatusInput carries the caller-supplied fields for a transaction
// status query.
type TransactionStatusInput struct {
	ShortCode          string
	TransactionID      string
	IdentifierType     string
	Remarks            string
	Occasion           string
	ResultURL          string
	TimeoutURL         string
	InitiatorName      string
	SecurityCredential string
}

// AccountBalanceInput carries the caller-supplied fields for an account
// balance query.
type AccountBalanceInput struct {
	ShortCode          string
	IdentifierType     string
	Remarks            string
	ResultURL          string
	TimeoutURL         string
	InitiatorName      string
	SecurityCredential string
}

// ReversalInput carries the caller-supplied fields for a transaction reversal.
type ReversalInput struct {
	ShortCode          string
	TransactionID      string
	Amount             float64
	Remarks            string
	Occasion           string
	IdentifierType     string
	ResultURL          string
	TimeoutURL         string
	InitiatorName      string
	SecurityCredential string
}
