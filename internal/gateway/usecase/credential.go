package usecase

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"os"

	"github.com/jameskabz/mpesa/internal/config"
	"github.com/jameskabz/mpesa/internal/gateway/domain"

	apperrors "github.com/jameskabz/mpesa/internal/errors"
)

// Default certificate locations per environment, relative to the working
// directory, overridable through cert_paths configuration.
const (
	defaultSandboxCertPath    = "storage/certs/SandboxCertificate.cer"
	defaultProductionCertPath = "storage/certs/ProductionCertificate.cer"
)

// CredentialEncryptor produces the gateway security credential: the initiator
// password RSA-encrypted with the gateway's public certificate and base64
// encoded. Required by disbursement and query operations that move funds or
// access account data.
type CredentialEncryptor interface {
	Encrypt(initiatorPassword string) (string, error)
}

// Encryptor is the certificate-file-backed CredentialEncryptor.
type Encryptor struct {
	config *config.Provider
}

// NewEncryptor creates a new Encryptor resolving the certificate and password
// from gateway configuration.
func NewEncryptor(cfg *config.Provider) *Encryptor {
	return &Encryptor{
		config: cfg,
	}
}

// Encrypt encrypts the initiator password with RSA PKCS#1 v1.5 padding using
// the public key of the configured X.509 certificate for the active
// environment, returning the ciphertext base64-encoded. When the password
// argument is empty it falls back to the configured initiator password.
//
// The PKCS#1 padding is randomized, so output is not repeatable for the same
// input.
func (e *Encryptor) Encrypt(initiatorPassword string) (string, error) {
	if initiatorPassword == "" {
		initiatorPassword = e.config.GetString("credentials.b2c.initiator_password", "")
	}
	if initiatorPassword == "" {
		return "", apperrors.Wrap(apperrors.ErrConfiguration, "initiator password is not set in config or parameter")
	}

	certPath := e.CertificatePath()
	if _, err := os.Stat(certPath); err != nil {
		return "", apperrors.Wrapf(apperrors.ErrCertificateNotFound, "certificate file not found at %s", certPath)
	}

	certData, err := os.ReadFile(certPath)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrCertificateNotFound, "failed to read certificate at %s", certPath)
	}

	publicKey, err := parseRSAPublicKey(certData)
	if err != nil {
		return "", err
	}

	encrypted, err := rsa.EncryptPKCS1v15(rand.Reader, publicKey, []byte(initiatorPassword))
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrEncryption, err.Error())
	}

	return base64.StdEncoding.EncodeToString(encrypted), nil
}

// CertificatePath resolves the certificate file for the active environment.
func (e *Encryptor) CertificatePath() string {
	env := domain.ParseEnvironment(e.config.GetString("env", "sandbox"))
	if env == domain.EnvironmentProduction {
		return e.config.GetString("cert_paths.production", defaultProductionCertPath)
	}
	return e.config.GetString("cert_paths.sandbox", defaultSandboxCertPath)
}

// parseRSAPublicKey extracts the RSA public key from PEM or raw DER
// certificate bytes.
func parseRSAPublicKey(certData []byte) (*rsa.PublicKey, error) {
	der := certData
	if block, _ := pem.Decode(certData); block != nil {
		der = block.Bytes
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidCertificate, "could not load public key from certificate")
	}

	publicKey, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, apperrors.Wrap(apperrors.ErrInvalidCertificate, "certificate does not contain an RSA public key")
	}

	return publicKey, nil
}
