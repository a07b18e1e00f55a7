package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// Character classes a generated password can draw from.
const (
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars = "0123456789"
	symbolChars = "!@#$%^*()_+-=[]{};:,.?"
)

// autoSecureMinLength is the floor enforced when auto-secure mode is on.
const autoSecureMinLength = 19

// PatternMode controls whether a custom pattern counts against the requested
// length ("included") or extends it ("additional").
type PatternMode string

const (
	PatternIncluded   PatternMode = "included"
	PatternAdditional PatternMode = "additional"
)

// PatternPosition places the custom pattern within the result.
type PatternPosition string

const (
	PatternStart  PatternPosition = "start"
	PatternMiddle PatternPosition = "middle"
	PatternEnd    PatternPosition = "end"
)

// ErrNoClassSelected is returned when no character class is enabled.
// The message is shown verbatim to the user.
var ErrNoClassSelected = errors.New("Seleccione al menos una opción")

// LengthError is returned when the requested length cannot fit one character
// of each enabled class (plus the pattern, in included mode).
type LengthError struct {
	Minimum         int
	IncludesPattern bool
}

func (e *LengthError) Error() string {
	patternNote := ""
	if e.IncludesPattern {
		patternNote = "el patrón y "
	}
	return fmt.Sprintf(
		"La longitud mínima debe ser al menos %d para incluir %stodas las categorías seleccionadas.",
		e.Minimum, patternNote)
}

// PasswordSpec describes a password generation request.
type PasswordSpec struct {
	Length     int  `json:"length"`
	Lowercase  bool `json:"lowercase"`
	Uppercase  bool `json:"uppercase"`
	Numbers    bool `json:"numbers"`
	Symbols    bool `json:"symbols"`
	AutoSecure bool `json:"autoSecure"`

	Pattern         string          `json:"pattern"`
	PatternMode     PatternMode     `json:"patternMode"`
	PatternPosition PatternPosition `json:"patternPosition"`
}

// GeneratePassword produces a random password honoring the spec. Each enabled
// class contributes at least one character; auto-secure forces every class and
// a minimum length of 19.
func GeneratePassword(spec PasswordSpec) (string, error) {
	effectiveLength := spec.Length
	if spec.AutoSecure && effectiveLength < autoSecureMinLength {
		effectiveLength = autoSecureMinLength
	}

	patternLength := len(spec.Pattern)
	randomPartLength := effectiveLength
	if spec.Pattern != "" && spec.PatternMode != PatternAdditional {
		randomPartLength = effectiveLength - patternLength
		if randomPartLength < 0 {
			randomPartLength = 0
		}
	}

	var pool string
	var forced []byte
	classes := []struct {
		enabled bool
		chars   string
	}{
		{spec.AutoSecure || spec.Lowercase, lowerChars},
		{spec.AutoSecure || spec.Uppercase, upperChars},
		{spec.AutoSecure || spec.Numbers, numberChars},
		{spec.AutoSecure || spec.Symbols, symbolChars},
	}
	for _, class := range classes {
		if !class.enabled {
			continue
		}
		pool += class.chars
		c, err := randomChar(class.chars)
		if err != nil {
			return "", err
		}
		forced = append(forced, c)
	}

	if pool == "" {
		return "", ErrNoClassSelected
	}

	if randomPartLength < len(forced) {
		lengthErr := &LengthError{Minimum: len(forced)}
		if spec.Pattern != "" && spec.PatternMode != PatternAdditional {
			lengthErr.Minimum += patternLength
			lengthErr.IncludesPattern = true
		}
		return "", lengthErr
	}

	chars := make([]byte, 0, randomPartLength)
	chars = append(chars, forced...)
	for i := len(forced); i < randomPartLength; i++ {
		c, err := randomChar(pool)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	if err := shuffleBytes(chars); err != nil {
		return "", err
	}

	randomPart := string(chars)
	if spec.Pattern == "" {
		return randomPart, nil
	}

	switch spec.PatternPosition {
	case PatternEnd:
		return randomPart + spec.Pattern, nil
	case PatternMiddle:
		mid := len(randomPart) / 2
		return randomPart[:mid] + spec.Pattern + randomPart[mid:], nil
	default:
		return spec.Pattern + randomPart, nil
	}
}

func randomChar(pool string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(pool))))
	if err != nil {
		return 0, fmt.Errorf("random char: %w", err)
	}
	return pool[n.Int64()], nil
}

// shuffleBytes performs a Fisher-Yates shuffle so the forced class characters
// do not cluster at the front.
func shuffleBytes(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("shuffle: %w", err)
		}
		j := n.Int64()
		b[i], b[j] = b[j], b[i]
	}
	return nil
}
