package service

import (
	"strings"

	"github.com/threadly-dev/threadly/internal/domain"
	"github.com/threadly-dev/threadly/internal/errors"
	"github.com/threadly-dev/threadly/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(username domain.Username, password string) (string, error)
	Login(username domain.Username, password string) (string, error)
	UsernameAvailable(username domain.Username) (bool, error)
	Account(id domain.AccountId) (domain.Account, error)
}

type Auth struct {
	storage AuthStorage
	jwt     Jwt
}

type AuthStorage interface {
	SaveAccount(username domain.Username, passHash string) (domain.AccountId, error)
	AccountByUsername(username domain.Username) (domain.Account, error)
	AccountById(id domain.AccountId) (domain.Account, error)
	UsernameTaken(username domain.Username) (bool, error)
}

type Jwt interface {
	NewToken(account domain.Account) (string, error)
}

func NewAuth(storage AuthStorage, jwt Jwt) *Auth {
	return &Auth{storage, jwt}
}

// Register creates the account (with its moderation profile and base
// capabilities) and logs it in. A taken username surfaces as a duplicate
// outcome from storage; the ordering state of the forum is untouched either
// way.
func (a *Auth) Register(username domain.Username, password string) (string, error) {
	username = strings.TrimSpace(username)

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return "", err
	}

	id, err := a.storage.SaveAccount(username, string(passHash))
	if err != nil {
		return "", err
	}

	account, err := a.storage.AccountById(id)
	if err != nil {
		return "", err
	}

	logger.Log.Info("account registered", "account", id, "username", username)
	return a.jwt.NewToken(account)
}

func (a *Auth) Login(username domain.Username, password string) (string, error) {
	account, err := a.storage.AccountByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.IsNotFound(err) {
			// Do not leak which of the two was wrong.
			return "", errors.Forbidden("Invalid username or password")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PassHash), []byte(password)); err != nil {
		return "", errors.Forbidden("Invalid username or password")
	}

	return a.jwt.NewToken(account)
}

func (a *Auth) UsernameAvailable(username domain.Username) (bool, error) {
	taken, err := a.storage.UsernameTaken(strings.TrimSpace(username))
	if err != nil {
		return false, err
	}
	return !taken, nil
}

func (a *Auth) Account(id domain.AccountId) (domain.Account, error) {
	return a.storage.AccountById(id)
}
