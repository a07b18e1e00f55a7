package services

import (
	"fmt"
	"math"
	"strings"
)

var spanishUnits = []string{
	"", "Uno", "Dos", "Tres", "Cuatro", "Cinco", "Seis", "Siete", "Ocho", "Nueve",
	"Diez", "Once", "Doce", "Trece", "Catorce", "Quince", "Dieciséis",
	"Diecisiete", "Dieciocho", "Diecinueve", "Veinte", "Veintiuno", "Veintidós",
	"Veintitrés", "Veinticuatro", "Veinticinco", "Veintiséis", "Veintisiete",
	"Veintiocho", "Veintinueve",
}

var spanishTens = []string{
	"", "", "", "Treinta", "Cuarenta", "Cincuenta", "Sesenta", "Setenta",
	"Ochenta", "Noventa",
}

var spanishHundreds = []string{
	"", "Ciento", "Doscientos", "Trescientos", "Cuatrocientos", "Quinientos",
	"Seiscientos", "Setecientos", "Ochocientos", "Novecientos",
}

// AmountToWords converts a monetary amount into Spanish words as printed on
// quotes, e.g. 1234.56 MXN becomes
// "Mil Doscientos Treinta Y Cuatro Pesos 56/100 M.N.".
// USD amounts use "Dólares" and the "/100 USD" suffix instead.
func AmountToWords(amount float64, currency Currency) string {
	if amount < 0 {
		amount = 0
	}

	intPart := int64(amount)
	cents := int64(math.Round((amount - float64(intPart)) * 100))
	if cents >= 100 {
		intPart++
		cents -= 100
	}

	var unit string
	switch {
	case currency == CurrencyUSD && intPart == 1:
		unit = "Dólar"
	case currency == CurrencyUSD:
		unit = "Dólares"
	case intPart == 1:
		unit = "Peso"
	default:
		unit = "Pesos"
	}

	suffix := "M.N."
	if currency == CurrencyUSD {
		suffix = "USD"
	}

	words := apocopate(convertToSpanishWords(intPart))

	return fmt.Sprintf("%s %s %02d/100 %s", words, unit, cents, suffix)
}

// convertToSpanishWords spells out a non-negative integer in Spanish.
func convertToSpanishWords(n int64) string {
	if n == 0 {
		return "Cero"
	}

	var parts []string

	if n >= 1000000 {
		millions := n / 1000000
		if millions == 1 {
			parts = append(parts, "Un Millón")
		} else {
			parts = append(parts, apocopate(convertToSpanishWords(millions))+" Millones")
		}
		n %= 1000000
	}

	if n >= 1000 {
		thousands := n / 1000
		if thousands == 1 {
			parts = append(parts, "Mil")
		} else {
			parts = append(parts, apocopate(convertToSpanishWords(thousands))+" Mil")
		}
		n %= 1000
	}

	if n > 0 {
		parts = append(parts, convertBelowThousand(n))
	}

	return strings.Join(parts, " ")
}

func convertBelowThousand(n int64) string {
	if n == 100 {
		return "Cien"
	}

	var parts []string

	if n >= 100 {
		parts = append(parts, spanishHundreds[n/100])
		n %= 100
	}

	switch {
	case n == 0:
	case n < 30:
		parts = append(parts, spanishUnits[n])
	default:
		tens := spanishTens[n/10]
		if n%10 == 0 {
			parts = append(parts, tens)
		} else {
			parts = append(parts, tens+" Y "+spanishUnits[n%10])
		}
	}

	return strings.Join(parts, " ")
}

// apocopate shortens a trailing "Uno" before a masculine noun ("Veintiún
// Mil", "Treinta Y Un Millones").
func apocopate(words string) string {
	if words == "Veintiuno" {
		return "Veintiún"
	}
	if strings.HasSuffix(words, " Veintiuno") {
		return strings.TrimSuffix(words, " Veintiuno") + " Veintiún"
	}
	if words == "Uno" {
		return "Un"
	}
	if strings.HasSuffix(words, " Uno") {
		return strings.TrimSuffix(words, " Uno") + " Un"
	}
	return words
}
