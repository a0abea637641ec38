package validator_test

import (
	"testing"

	"github.com/okarpenko/water-meter-bot/internal/validator"
)

const testMaxMetersPerUser = 3

func TestAccountNumber_Valid(t *testing.T) {
	v := validator.NewValidator(testMaxMetersPerUser)

	account, err := v.AccountNumber("  123456  ")
	if err != nil {
		t.Fatalf("Expected valid account number, got error: %v", err)
	}
	if account != "123456" {
		t.Errorf("Expected '123456', got '%s'", account)
	}
}

func TestAccountNumber_RejectsLetters(t *testing.T) {
	v := validator.NewValidator(testMaxMetersPerUser)

	if _, err := v.AccountNumber("12a456"); err == nil {
		t.Error("Expected error for account number with letters")
	}
}

func TestAccountNumber_RejectsEmpty(t *testing.T) {
	v := validator.NewValidator(testMaxMetersPerUser)

	if _, err := v.AccountNumber("   "); err == nil {
		t.Error("Expected error for empty account number")
	}
}

func TestFullName_Valid(t *testing.T) {
	v := validator.NewValidator(testMaxMetersPerUser)

	name, err := v.FullName(" Іваненко Іван Іванович ")
	if err != nil {
		t.Fatalf("Expected valid full name, got error: %v", err)
	}
	if name != "Іваненко Іван Іванович" {
		t.Errorf("Expected trimmed name, got '%s'", name)
	}
}

func TestFullName_TooShort(t *testing.T) {
	v := validator.NewValidator(testMaxMetersPerUser)

	if _, err := v.FullName("Ів"); err == nil {
		t.Error("Expected error for a two-rune name")
	}
}

func TestMetersCount_Valid(t *testing.T) {
	v := validator.NewValidator(testMaxMetersPerUser)

	count, err := v.MetersCount(" 2 ")
	if err != nil {
		t.Fatalf("Expected valid meters count, got error: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2, got %d", count)
	}
}

func TestMetersCount_AboveLimit(t *testing.T) {
	v := validator.NewValidator(testMaxMetersPerUser)

	if _, err := v.MetersCount("4"); err == nil {
		t.Error("Expected error for count above the limit")
	}
}

func TestMetersCount_Zero(t *testing.T) {
	v := validator.NewValidator(testMaxMetersPerUser)

	if _, err := v.MetersCount("0"); err == nil {
		t.Error("Expected error for zero count")
	}
}

func TestMetersCount_NotANumber(t *testing.T) {
	v := validator.NewValidator(testMaxMetersPerUser)

	if _, err := v.MetersCount("два"); err == nil {
		t.Error("Expected error for non-numeric count")
	}
}

func TestReadingValue_Valid(t *testing.T) {
	v := validator.NewValidator(testMaxMetersPerUser)

	value, err := v.ReadingValue("1250")
	if err != nil {
		t.Fatalf("Expected valid reading, got error: %v", err)
	}
	if value != 1250 {
		t.Errorf("Expected 1250, got %d", value)
	}
}

func TestReadingValue_Zero(t *testing.T) {
	v := validator.NewValidator(testMaxMetersPerUser)

	value, err := v.ReadingValue("0")
	if err != nil {
		t.Fatalf("Expected zero to be a valid reading, got error: %v", err)
	}
	if value != 0 {
		t.Errorf("Expected 0, got %d", value)
	}
}

func TestReadingValue_Negative(t *testing.T) {
	v := validator.NewValidator(testMaxMetersPerUser)

	if _, err := v.ReadingValue("-5"); err == nil {
		t.Error("Expected error for negative reading")
	}
}

func TestReadingValue_Fractional(t *testing.T) {
	v := validator.NewValidator(testMaxMetersPerUser)

	if _, err := v.ReadingValue("12.5"); err == nil {
		t.Error("Expected error for fractional reading")
	}
}

func TestNormalizePhone_Plain(t *testing.T) {
	phone, err := validator.NormalizePhone("380501234567")
	if err != nil {
		t.Fatalf("Expected valid phone, got error: %v", err)
	}
	if phone != "+380501234567" {
		t.Errorf("Expected '+380501234567', got '%s'", phone)
	}
}

func TestNormalizePhone_Formatted(t *testing.T) {
	phone, err := validator.NormalizePhone("+38 (050) 123-45-67")
	if err != nil {
		t.Fatalf("Expected valid phone, got error: %v", err)
	}
	if phone != "+380501234567" {
		t.Errorf("Expected '+380501234567', got '%s'", phone)
	}
}

func TestNormalizePhone_WrongCountry(t *testing.T) {
	if _, err := validator.NormalizePhone("+490501234567"); err == nil {
		t.Error("Expected error for non-Ukrainian number")
	}
}

func TestNormalizePhone_TooShort(t *testing.T) {
	if _, err := validator.NormalizePhone("+38050123"); err == nil {
		t.Error("Expected error for short number")
	}
}

func TestNormalizePhone_Empty(t *testing.T) {
	if _, err := validator.NormalizePhone("  "); err == nil {
		t.Error("Expected error for empty input")
	}
}
