package services

import (
	"errors"
	"strings"
	"testing"
)

func countAnyOf(s, chars string) int {
	count := 0
	for _, c := range s {
		if strings.ContainsRune(chars, c) {
			count++
		}
	}
	return count
}

func TestGeneratePasswordLength(t *testing.T) {
	tests := []struct {
		name     string
		spec     PasswordSpec
		expected int
	}{
		{"plain", PasswordSpec{Length: 12, Lowercase: true, Uppercase: true, Numbers: true, Symbols: true}, 12},
		{"auto secure raises floor", PasswordSpec{Length: 8, AutoSecure: true}, 19},
		{"auto secure keeps longer", PasswordSpec{Length: 25, AutoSecure: true}, 25},
		{"single class", PasswordSpec{Length: 6, Numbers: true}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			password, err := GeneratePassword(tt.spec)
			if err != nil {
				t.Fatalf("GeneratePassword failed: %v", err)
			}
			if len(password) != tt.expected {
				t.Errorf("length = %d, expected %d", len(password), tt.expected)
			}
		})
	}
}

func TestGeneratePasswordIncludesEnabledClasses(t *testing.T) {
	for i := 0; i < 20; i++ {
		password, err := GeneratePassword(PasswordSpec{Length: 19, AutoSecure: true})
		if err != nil {
			t.Fatalf("GeneratePassword failed: %v", err)
		}
		for _, chars := range []string{lowerChars, upperChars, numberChars, symbolChars} {
			if countAnyOf(password, chars) == 0 {
				t.Fatalf("password %q missing class %q", password, chars[:5])
			}
		}
	}
}

func TestGeneratePasswordRestrictsPool(t *testing.T) {
	password, err := GeneratePassword(PasswordSpec{Length: 30, Numbers: true})
	if err != nil {
		t.Fatalf("GeneratePassword failed: %v", err)
	}
	if countAnyOf(password, numberChars) != len(password) {
		t.Errorf("password %q has characters outside the numbers pool", password)
	}
}

func TestGeneratePasswordNoClassSelected(t *testing.T) {
	_, err := GeneratePassword(PasswordSpec{Length: 10})
	if !errors.Is(err, ErrNoClassSelected) {
		t.Errorf("expected ErrNoClassSelected, got %v", err)
	}
}

func TestGeneratePasswordTooShort(t *testing.T) {
	_, err := GeneratePassword(PasswordSpec{Length: 2, Lowercase: true, Uppercase: true, Numbers: true})
	if err == nil {
		t.Fatal("expected minimum length error")
	}
	expected := "La longitud mínima debe ser al menos 3 para incluir todas las categorías seleccionadas."
	if err.Error() != expected {
		t.Errorf("error = %q, expected %q", err.Error(), expected)
	}
}

func TestGeneratePasswordTooShortWithIncludedPattern(t *testing.T) {
	_, err := GeneratePassword(PasswordSpec{
		Length: 4, Lowercase: true, Uppercase: true,
		Pattern: "abc", PatternMode: PatternIncluded, PatternPosition: PatternStart,
	})
	if err == nil {
		t.Fatal("expected minimum length error")
	}
	if !strings.Contains(err.Error(), "el patrón y") {
		t.Errorf("error %q should mention the pattern", err.Error())
	}
	if !strings.Contains(err.Error(), "al menos 5") {
		t.Errorf("error %q should require length 5", err.Error())
	}
}

func TestGeneratePasswordPatternPlacement(t *testing.T) {
	base := PasswordSpec{Length: 12, Lowercase: true, Numbers: true, Pattern: "XYZ-"}

	t.Run("additional extends length", func(t *testing.T) {
		spec := base
		spec.PatternMode = PatternAdditional
		spec.PatternPosition = PatternStart
		password, err := GeneratePassword(spec)
		if err != nil {
			t.Fatalf("GeneratePassword failed: %v", err)
		}
		if !strings.HasPrefix(password, "XYZ-") {
			t.Errorf("password %q should start with pattern", password)
		}
		if len(password) != 12+len("XYZ-") {
			t.Errorf("length = %d, expected pattern to extend the requested length", len(password))
		}
	})

	t.Run("included counts against length", func(t *testing.T) {
		spec := base
		spec.PatternMode = PatternIncluded
		spec.PatternPosition = PatternEnd
		password, err := GeneratePassword(spec)
		if err != nil {
			t.Fatalf("GeneratePassword failed: %v", err)
		}
		if !strings.HasSuffix(password, "XYZ-") {
			t.Errorf("password %q should end with pattern", password)
		}
		if len(password) != 12 {
			t.Errorf("length = %d, expected 12", len(password))
		}
	})

	t.Run("middle splits random part", func(t *testing.T) {
		spec := base
		spec.PatternMode = PatternAdditional
		spec.PatternPosition = PatternMiddle
		password, err := GeneratePassword(spec)
		if err != nil {
			t.Fatalf("GeneratePassword failed: %v", err)
		}
		if idx := strings.Index(password, "XYZ-"); idx != 6 {
			t.Errorf("pattern at index %d of %q, expected midpoint 6", idx, password)
		}
	})
}
