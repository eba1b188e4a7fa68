package service

import "golang.org/x/crypto/bcrypt"

// PasswordService — хеширование паролей. DefaultCost = 10, это стандарт.
type PasswordService interface {
	Hash(plain string) (string, error)
	Compare(plain, hash string) bool
}

type passwordService struct{}

func NewPasswordService() PasswordService {
	return &passwordService{}
}

func (s *passwordService) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *passwordService) Compare(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
