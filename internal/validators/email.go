package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid verifica no cadastro se o domínio do e-mail do
// paciente resolve (MX ou A/AAAA). Lembretes de consulta e receitas
// são enviados por e-mail, então um domínio inexistente é recusado já
// no registro.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
