// Package calculo implementa os campos derivados do pedido. As contas são
// feitas em decimal para não acumular ruído binário em valores monetários
// com duas casas.
package calculo

import (
	"math"

	"github.com/shopspring/decimal"
)

// OrderQtyUn calcula a quantidade total em unidades (caixas × unid/caixa).
func OrderQtyUn(orderQtyBox, unitCtn float64) float64 {
	return multiplicar(orderQtyBox, unitCtn)
}

// TotalRmb calcula o valor total em RMB (quantidade × preço unitário).
func TotalRmb(orderQtyUn, unitPriceRmb float64) float64 {
	return multiplicar(orderQtyUn, unitPriceRmb)
}

// TotalPesoLiq calcula o peso líquido total (NW × caixas).
func TotalPesoLiq(nw, orderQtyBox float64) float64 {
	return multiplicar(nw, orderQtyBox)
}

// TotalPesoBruto calcula o peso bruto total (GW × caixas).
func TotalPesoBruto(gw, orderQtyBox float64) float64 {
	return multiplicar(gw, orderQtyBox)
}

// CbmTotal calcula a cubagem total (CBM unitário × caixas).
func CbmTotal(cbm, orderQtyBox float64) float64 {
	return multiplicar(cbm, orderQtyBox)
}

// multiplicar trata NaN/Inf como zero: entrada ausente nunca propaga NaN
// para um campo persistido.
func multiplicar(a, b float64) float64 {
	a = sanear(a)
	b = sanear(b)
	r, _ := decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b)).Float64()
	return r
}

func sanear(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
