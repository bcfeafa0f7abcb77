// Package taxid normaliza y valida documentos de identificación colombianos:
// cédula (solo dígitos) y NIT con dígito de verificación (módulo 11 DIAN).
package taxid

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalid documento mal formado o con dígito de verificación incorrecto.
var ErrInvalid = errors.New("documento de identificación inválido")

const (
	minDigits = 4
	maxDigits = 12
	nitBase   = 9
)

// pesos DIAN para los 9 dígitos base del NIT, de izquierda a derecha.
var nitWeights = [nitBase]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// Normalize quita puntos y espacios. Un documento con guion se trata como NIT
// "base-DV" y se verifica el dígito; sin guion se acepta como cédula.
//
//	"900.123.456-8" -> "900123456-8"
//	" 1.020.304 "   -> "1020304"
func Normalize(raw string) (string, error) {
	s := strings.NewReplacer(".", "", " ", "", ",", "").Replace(strings.TrimSpace(raw))
	base, dv, isNIT := strings.Cut(s, "-")
	if !allDigits(base) || len(base) < minDigits || len(base) > maxDigits {
		return "", fmt.Errorf("%w: %q", ErrInvalid, raw)
	}
	if !isNIT {
		return base, nil
	}
	if len(base) != nitBase || len(dv) != 1 || !allDigits(dv) {
		return "", fmt.Errorf("%w: el NIT debe tener 9 dígitos y un dígito de verificación", ErrInvalid)
	}
	want := VerificationDigit(base)
	if dv[0] != want {
		return "", fmt.Errorf("%w: dígito de verificación esperado %c, recibido %s", ErrInvalid, want, dv)
	}
	return base + "-" + dv, nil
}

// VerificationDigit calcula el dígito de verificación de un NIT de 9 dígitos.
func VerificationDigit(base string) byte {
	var sum int
	for i := 0; i < nitBase && i < len(base); i++ {
		sum += int(base[i]-'0') * nitWeights[i]
	}
	r := sum % 11
	if r == 0 || r == 1 {
		return byte('0' + r)
	}
	return byte('0' + (11 - r))
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
