package domain

// Environment selects the gateway deployment the client talks to.
type Environment string

// Supported environments.
const (
	EnvironmentSandbox    Environment = "sandbox"
	EnvironmentProduction Environment = "production"
)

// ParseEnvironment maps a configuration string to an Environment, defaulting
// to sandbox for anything unrecognized.
func ParseEnvironment(s string) Environment {
	if s == string(EnvironmentProduction) {
		return EnvironmentProduction
	}
	return EnvironmentSandbox
}

// EndpointSet holds the per-operation request paths, relative to the base URL.
type EndpointSet struct {
	Token             string
	STKPush           string
	STKQuery          string
	B2C               string
	B2CValidated      string
	C2BRegister       string
	C2BSimulate       string
	TransactionStatus string
	AccountBalance    string
	Reversal          string
}

// endpointsByEnvironment encodes the per-environment paths as data. The B2C
// payment path version differs between sandbox and production; this is a
// documented gateway API inconsistency, not something the client infers.
var endpointsByEnvironment = map[Environment]EndpointSet{
	EnvironmentSandbox: {
		Token:             "/oauth/v1/generate",
		STKPush:           "/mpesa/stkpush/v1/processrequest",
		STKQuery:          "/mpesa/stkpushquery/v1/query",
		B2C:               "/mpesa/b2c/v3/paymentrequest",
		B2CValidated:      "/mpesa/b2cvalidate/v2/paymentrequest",
		C2BRegister:       "/mpesa/c2b/v2/registerurl",
		C2BSimulate:       "/mpesa/c2b/v1/simulate",
		TransactionStatus: "/mpesa/transactionstatus/v1/query",
		AccountBalance:    "/mpesa/accountbalance/v1/query",
		Reversal:          "/mpesa/reversal/v1/request",
	},
	EnvironmentProduction: {
		Token:             "/oauth/v1/generate",
		STKPush:           "/mpesa/stkpush/v1/processrequest",
		STKQuery:          "/mpesa/stkpushquery/v1/query",
		B2C:               "/mpesa/b2c/v1/paymentrequest",
		B2CValidated:      "/mpesa/b2cvalidate/v2/paymentrequest",
		C2BRegister:       "/mpesa/c2b/v2/registerurl",
		C2BSimulate:       "/mpesa/c2b/v1/simulate",
		TransactionStatus: "/mpesa/transactionstatus/v1/query",
		AccountBalance:    "/mpesa/accountbalance/v1/query",
		Reversal:          "/mpesa/reversal/v1/request",
	},
}

// Endpoints returns the endpoint set for the given environment.
func Endpoints(env Environment) EndpointSet {
	if set, ok := endpointsByEnvironment[env]; ok {
		return set
	}
	return endpointsByEnvironment[EnvironmentSandbox]
}
