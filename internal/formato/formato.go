// Package formato concentra a formatação numérica brasileira usada pelo
// sistema (milhar com ponto, decimal com vírgula) e os parsers inversos.
package formato

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatNumber formata um número no padrão brasileiro (00.000,00).
// Valores não numéricos (NaN/Inf) voltam como "0,00".
func FormatNumber(valor float64, casas int) string {
	if math.IsNaN(valor) || math.IsInf(valor, 0) {
		return "0,00"
	}
	d := decimal.NewFromFloat(valor).Round(int32(casas))
	return paraBrasileiro(d.StringFixed(int32(casas)))
}

// FormatUSD formata um valor em dólar ($ 00.000,00).
func FormatUSD(valor float64) string {
	return "$ " + FormatNumber(valor, 2)
}

// FormatRMB formata um valor em renminbi (¥ 00.000,00).
func FormatRMB(valor float64) string {
	return "¥ " + FormatNumber(valor, 2)
}

// FormatBRL formata um valor em real (R$ 00.000,00).
func FormatBRL(valor float64) string {
	return "R$ " + FormatNumber(valor, 2)
}

// ParseFormattedNumber converte uma string formatada brasileira em número.
// Remove símbolos de moeda e espaços; sem vírgula, pontos são tratados como
// separadores de milhar. Entrada vazia ou inválida vira 0, nunca erro.
func ParseFormattedNumber(texto string) float64 {
	limpo := strings.Map(func(r rune) rune {
		switch r {
		case '$', '¥', 'R', ' ', '\t', '\n':
			return -1
		}
		return r
	}, texto)

	if limpo == "" {
		return 0
	}

	if !strings.Contains(limpo, ",") {
		limpo = strings.ReplaceAll(limpo, ".", "")
	} else {
		limpo = strings.ReplaceAll(limpo, ".", "")
		limpo = strings.Replace(limpo, ",", ".", 1)
	}

	d, err := decimal.NewFromString(limpo)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

// FormatNCM formata um código NCM no padrão 0000.00.00. Entrada sem
// dígitos volta como "N/A".
func FormatNCM(valor string) string {
	digitos := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, valor)

	switch {
	case len(digitos) == 0:
		return "N/A"
	case len(digitos) <= 4:
		return preencherZeros(digitos, 4)
	case len(digitos) <= 6:
		return digitos[:4] + "." + preencherZeros(digitos[4:], 2)
	default:
		if len(digitos) > 8 {
			digitos = digitos[:8]
		}
		return digitos[:4] + "." + digitos[4:6] + "." + preencherZeros(digitos[6:], 2)
	}
}

// FormatInteger formata sem decimais com separador de milhares.
// NaN/Inf voltam como "N/A" (entrada ausente no formulário).
func FormatInteger(valor float64) string {
	if math.IsNaN(valor) || math.IsInf(valor, 0) {
		return "N/A"
	}
	d := decimal.NewFromFloat(valor).Round(0)
	return paraBrasileiro(d.StringFixed(0))
}

// FormatWeight formata um peso com 2 decimais e separação brasileira.
// NaN/Inf voltam como "N/A".
func FormatWeight(valor float64) string {
	if math.IsNaN(valor) || math.IsInf(valor, 0) {
		return "N/A"
	}
	d := decimal.NewFromFloat(valor).Round(2)
	return paraBrasileiro(d.StringFixed(2))
}

// paraBrasileiro troca a convenção en-US de um decimal já arredondado
// ("1234.56") pela brasileira ("1.234,56").
func paraBrasileiro(s string) string {
	negativo := strings.HasPrefix(s, "-")
	if negativo {
		s = s[1:]
	}

	inteira, fracao, temFracao := strings.Cut(s, ".")

	var b strings.Builder
	if negativo {
		b.WriteByte('-')
	}
	for i, d := range inteira {
		if i > 0 && (len(inteira)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	if temFracao {
		b.WriteByte(',')
		b.WriteString(fracao)
	}
	return b.String()
}

func preencherZeros(s string, tam int) string {
	for len(s) < tam {
		s = "0" + s
	}
	return s
}
