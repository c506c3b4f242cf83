package auth

import "testing"

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plaintext")
	}

	ok, err := CheckPassword(hash, "s3cret-pass")
	if err != nil {
		t.Fatalf("CheckPassword() error = %v", err)
	}
	if !ok {
		t.Error("correct password should verify")
	}

	ok, err = CheckPassword(hash, "wrong-pass")
	if err != nil {
		t.Fatalf("CheckPassword() error = %v", err)
	}
	if ok {
		t.Error("wrong password should not verify")
	}
}

func TestCheckPasswordInvalidHash(t *testing.T) {
	if _, err := CheckPassword("not-a-bcrypt-hash", "whatever"); err == nil {
		t.Error("malformed hash should be an error, not a mismatch")
	}
}
