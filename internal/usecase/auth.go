package usecase

import "crypto/subtle"

// Authorize é no-op quando nenhum segredo foi configurado.
func Authorize(secret, callerKey string) error {
	if secret == "" {
		return nil
	}
	if callerKey == "" || subtle.ConstantTimeCompare([]byte(callerKey), []byte(secret)) != 1 {
		return ErrUnauthorized
	}
	return nil
}
