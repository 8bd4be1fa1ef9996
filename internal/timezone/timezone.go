// Package timezone resolve os fusos usados pela agenda da clínica.
// A grade de horários e a regra de antecedência operam no fuso local
// da unidade, não em UTC.
package timezone

import "time"

// DefaultTimezone é o fuso da matriz; vale quando a unidade não tem
// fuso próprio configurado.
const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location devolve a localização do fuso pedido; valor desconhecido ou
// vazio cai no fuso da matriz, nunca em UTC.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

// Now devolve o relógio no fuso da matriz.
func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

// NowIn devolve o relógio no fuso da unidade.
func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
