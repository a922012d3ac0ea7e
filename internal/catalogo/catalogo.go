// Package catalogo consulta a base externa de produtos (somente leitura).
// A base devolve documentos com casing irregular (camelCase e UPPER_SNAKE
// misturados); a normalização acontece uma única vez, aqui na borda.
package catalogo

import "context"

// ProdutoExterno é a forma normalizada de um item do catálogo externo.
type ProdutoExterno struct {
	ID         string
	Referencia string

	NomeRaviProfit string
	Ncm            string
	Fabrica        string
	ItemNo         string
	Description    string
	Name           string
	Remark         string
	Obs            string
	Unit           string
	NomeDiNb       string
	NomeInvoiceEn  string
	Marca          string
	LinhaCotacoes  string
	Dun            string
	Cest           string
	Ean            string
	CodRavi        string
	ObsPedido      string

	UnitCtn        float64
	UnitPriceRmb   float64
	ValorInvoiceUs float64
	PesoUnitario   float64
	Nw             float64
	Gw             float64
	Cbm            float64
	Moq            float64
	QtMinVenda     float64
	UsKg           float64
	UsKgMin        float64
	CbmTotal       float64
	TotalPesoLiq   float64
	TotalPesoBruto float64
	TotalInvoice   float64
	L              float64
	W              float64
	H              float64
}

// Catalogo é a consulta de referência na base externa. Resultado vazio é o
// sinal de "não encontrado"; erro só em falha de transporte.
type Catalogo interface {
	// BuscarPorReferencia devolve os itens cuja referência casa com o
	// termo (exata primeiro, prefixo como fallback). Termo com menos de
	// 2 caracteres devolve lista vazia sem consultar a base.
	BuscarPorReferencia(ctx context.Context, termo string) ([]ProdutoExterno, error)
}
