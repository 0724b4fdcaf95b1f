package services

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestRegisterHashesPasswordAndNormalizesEmail(t *testing.T) {
	env := newTestEnv(t)

	guest, err := env.guests.Register(RegisterGuestInput{
		FullName: "Uri Usher",
		Email:    "  Uri.Usher@Example.COM ",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if guest.Email != "uri.usher@example.com" {
		t.Errorf("email = %q, want lowercased and trimmed", guest.Email)
	}
	if guest.Password == "correct horse battery" {
		t.Fatal("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(guest.Password), []byte("correct horse battery")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	input := RegisterGuestInput{
		FullName: "Vic Voss",
		Email:    "vic@example.com",
		Password: "secret-password",
	}
	if _, err := env.guests.Register(input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := env.guests.Register(input); !errors.Is(err, ErrValidation) {
		t.Fatalf("duplicate email: got %v, want ErrValidation", err)
	}
}

func TestRegistrationIsAtomicWithCardSeeding(t *testing.T) {
	env := newTestEnv(t)

	guest, err := env.guests.Register(RegisterGuestInput{
		FullName: "Wes Wade",
		Email:    "wes@example.com",
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	cards, err := env.wallet.GetCards(guest.ID)
	if err != nil {
		t.Fatalf("GetCards: %v", err)
	}
	if len(cards) != 1 || !cards[0].IsDefault {
		t.Fatalf("expected one default card after registration, got %+v", cards)
	}
}
