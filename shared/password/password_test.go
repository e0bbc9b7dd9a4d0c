package password_test

import (
	"testing"

	"cohost/shared/password"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash() failed: %v", err)
	}

	if hash == "s3cret-pass" {
		t.Error("Hash() returned the plaintext password")
	}

	if err := password.Verify("s3cret-pass", hash); err != nil {
		t.Errorf("Verify() rejected the correct password: %v", err)
	}

	if err := password.Verify("wrong-pass", hash); err == nil {
		t.Error("Verify() accepted a wrong password")
	}
}

func TestHashEmptyPassword(t *testing.T) {
	if _, err := password.Hash(""); err == nil {
		t.Error("Hash() accepted an empty password")
	}
}

func TestVerifyEmptyInputs(t *testing.T) {
	if err := password.Verify("", "hash"); err == nil {
		t.Error("Verify() accepted an empty password")
	}

	if err := password.Verify("pass", ""); err == nil {
		t.Error("Verify() accepted an empty hash")
	}
}
