// Package taxid valida y normaliza identificaciones tributarias colombianas (NIT).
package taxid

import (
	"fmt"
	"strings"
	"unicode"
)

// pesos del dígito de verificación (módulo 11), aplicados de derecha a izquierda sobre la base.
var nitWeights = [15]int{3, 7, 13, 17, 19, 23, 29, 37, 41, 43, 47, 53, 59, 67, 71}

// CheckDigit calcula el dígito de verificación de la base de un NIT (solo dígitos, máximo 15).
func CheckDigit(base string) (byte, error) {
	digits := extractDigits(base)
	if len(digits) == 0 || len(digits) > len(nitWeights) {
		return 0, fmt.Errorf("la base del NIT debe tener entre 1 y %d dígitos", len(nitWeights))
	}
	var sum int
	for i := 0; i < len(digits); i++ {
		d := digits[len(digits)-1-i]
		sum += int(d-'0') * nitWeights[i]
	}
	remainder := sum % 11
	if remainder == 0 || remainder == 1 {
		return byte('0' + remainder), nil
	}
	return byte('0' + (11 - remainder)), nil
}

// Validate acepta cualquier identificación sin guion (cédulas, pasaportes, NIT sin DV).
// Si viene en forma "base-dv" ("900.123.456-7"), el dígito de verificación debe ser correcto.
func Validate(taxID string) error {
	taxID = strings.TrimSpace(taxID)
	i := strings.LastIndex(taxID, "-")
	if i < 0 {
		return nil
	}
	base, dv := taxID[:i], strings.TrimSpace(taxID[i+1:])
	if len(dv) != 1 || !unicode.IsDigit(rune(dv[0])) {
		return fmt.Errorf("NIT %q: el dígito de verificación debe ser un número", taxID)
	}
	expected, err := CheckDigit(base)
	if err != nil {
		return fmt.Errorf("NIT %q: %w", taxID, err)
	}
	if dv[0] != expected {
		return fmt.Errorf("NIT %q: dígito de verificación inválido, se esperaba %c", taxID, expected)
	}
	return nil
}

// Normalize quita puntos y espacios: "900.123.456 - 7" -> "900123456-7".
func Normalize(taxID string) string {
	var b strings.Builder
	for _, r := range taxID {
		if r == '.' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
