// Package timezone convierte entre offsets en minutos y su forma ±HH:MM.
//
// El offset de IST es -330 en JS y 330 en Android, pero para convertir
// horas en SQL hay que usar el timezone del server (+05:30 para IST).
// Por eso ambas funciones aceptan invertir el signo según quién llame.
package timezone

import (
	"fmt"
	"strconv"
	"strings"
)

// Format devuelve el timezone en forma ±HH:MM a partir de un offset en
// minutos (ej: 330 -> "+05:30"). Un offset 0 cae al fallback "+00:00".
func Format(offset int, invertSign bool) string {
	if offset == 0 {
		return "+00:00"
	}
	o := offset
	if o < 0 {
		o = -o
	}
	positive := offset >= 0
	if invertSign {
		positive = !positive
	}
	sign := "-"
	if positive {
		sign = "+"
	}
	return fmt.Sprintf("%s%02d:%02d", sign, o/60, o%60)
}

// Offset devuelve el offset en minutos a partir de un string ±HH:MM
// (ej: "+05:30" -> 330). Si el string no se puede parsear, devuelve 0.
func Offset(s string, invertSign bool) int {
	if s == "" {
		return 0
	}
	sign := 1
	switch s[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0
	}
	parts := strings.SplitN(s[1:], ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	if invertSign {
		sign = -sign
	}
	return sign * (h*60 + m)
}
