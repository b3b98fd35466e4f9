package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGet(t *testing.T) {
	gokeyring.MockInit()
	creds := Default()

	want := "postgres://tester@localhost:5432/habits?sslmode=disable"
	if err := creds.Set(want); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	got, err := creds.Get()
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != want {
		t.Errorf("Get() = %q, want %q", got, want)
	}
}

func TestSetEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := Default().Set(""); err == nil {
		t.Error("Set(\"\") should return an error")
	}
}

func TestGetMissing(t *testing.T) {
	gokeyring.MockInit()

	creds := Credentials{Service: "habits-test", User: "nobody"}
	if _, err := creds.Get(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	gokeyring.MockInit()
	creds := Default()

	if err := creds.Set("host=localhost dbname=habits"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := creds.Delete(); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := creds.Get(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete() error = %v, want ErrNotFound", err)
	}
	if err := creds.Delete(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestUnavailable(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("dbus not running"))
	defer gokeyring.MockInit()

	creds := Default()
	if creds.Available() {
		t.Error("Available() = true with a failing keyring")
	}
	if _, err := creds.Get(); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("Get() error = %v, want ErrKeyringUnavailable", err)
	}
}

func TestAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !Default().Available() {
		t.Error("Available() = false with mock keyring")
	}
}
