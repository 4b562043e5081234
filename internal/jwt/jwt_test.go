package jwt

import (
	"testing"
	"time"

	"github.com/threadly-dev/threadly/internal/domain"
)

var secretKey = "testJwtKey"
var account = domain.Account{
	Id:           1,
	Username:     "tester",
	Capabilities: domain.Capabilities{domain.CapCreateThread, domain.CapPinThreads},
}

func TestDecodeTokenCorrect(t *testing.T) {
	j := New(secretKey, 10*time.Second)
	token, err := j.NewToken(account)
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := j.DecodeToken(token)
	if err != nil {
		t.Fatal(err)
	}

	got, err := AccountFromToken(decoded)
	if err != nil {
		t.Fatal(err)
	}
	if got.Id != 1 {
		t.Errorf("uid = %d, want 1", got.Id)
	}
	if got.Username != "tester" {
		t.Errorf("username = %q, want tester", got.Username)
	}
	if !got.Capabilities.Has(domain.CapPinThreads) {
		t.Errorf("capabilities %v missing %s", got.Capabilities, domain.CapPinThreads)
	}
	if got.Capabilities.Has(domain.CapBanUsers) {
		t.Errorf("capabilities %v should not contain %s", got.Capabilities, domain.CapBanUsers)
	}
}

func TestDecodeTokenExpired(t *testing.T) {
	j := New(secretKey, -time.Second)
	token, err := j.NewToken(account)
	if err != nil {
		t.Fatal(err)
	}

	if _, err = j.DecodeToken(token); err == nil {
		t.Errorf("we shouldn't decode expired token")
	}
}

func TestDecodeTokenInvalidSecretKey(t *testing.T) {
	token, err := New(secretKey, 10*time.Second).NewToken(account)
	if err != nil {
		t.Fatal(err)
	}

	if _, err = New("invalidSecret", 10*time.Second).DecodeToken(token); err == nil {
		t.Errorf("we shouldn't decode token with invalid secret")
	}
}
