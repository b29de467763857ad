package commands

import (
	"fmt"
	"io"

	"github.com/jameskabz/mpesa/internal/config"
	gatewayUseCase "github.com/jameskabz/mpesa/internal/gateway/usecase"
)

// RunGenerateCredential encrypts an initiator password with the daraja public
// certificate for the configured environment and prints the resulting security
// credential. When password is empty the configured B2C initiator password is
// used instead.
func RunGenerateCredential(password string, w io.Writer) error {
	cfg := config.Load()
	encryptor := gatewayUseCase.NewEncryptor(cfg.Mpesa)

	credential, err := encryptor.Encrypt(password)
	if err != nil {
		return fmt.Errorf("failed to generate security credential: %w", err)
	}

	fmt.Fprintln(w, "# Security Credential Configuration")
	fmt.Fprintln(w, "# Copy this environment variable to your .env file or secrets manager")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "MPESA_B2C_SECURITY_CREDENTIAL=\"%s\"\n", credential)

	return nil
}
