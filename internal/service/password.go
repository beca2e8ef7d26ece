package service

import (
	"encoding/base64"
	"errors"

	"github.com/google/uuid"
)

// User-facing errors, surfaced directly in storefront forms.
var (
	ErrInvalidCredentials = errors.New("Credenciales incorrectas. Verifica tu correo y contraseña.")
	ErrEmailTaken         = errors.New("Este correo ya está registrado.")
	ErrCustomerNotFound   = errors.New("Cliente no encontrado.")
	ErrEmptyCart          = errors.New("El carrito está vacío.")
	ErrOrderNotFound      = errors.New("Pedido no encontrado.")
	ErrInvalidStatus      = errors.New("Estado de pedido inválido.")
)

// encodePassword applies the storefront's legacy reversible encoding. It is
// NOT a cryptographic hash; it is preserved so credentials written by earlier
// revisions keep comparing equal. Replace here, in one place, when a real
// scheme lands.
func encodePassword(plain string) string {
	return base64.StdEncoding.EncodeToString([]byte(plain))
}

// passwordMatches compares a plaintext password against its stored encoding.
func passwordMatches(plain, encoded string) bool {
	return encodePassword(plain) == encoded
}

// newToken mints an opaque session token.
func newToken() string {
	return uuid.New().String()
}
