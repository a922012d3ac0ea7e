package catalogo

import (
	"context"
	"strings"
)

// Mock é o catálogo simulado para desenvolvimento sem a base externa.
type Mock struct {
	Produtos []ProdutoExterno
}

// NewMock cria um catálogo simulado já semeado.
func NewMock() *Mock {
	return &Mock{Produtos: []ProdutoExterno{
		{ID: "ext-1", Referencia: "REF001", NomeRaviProfit: "Produto Externo 1", Description: "Descrição do produto externo 1", Marca: "Categoria A", UnitPriceRmb: 150, QtMinVenda: 50},
		{ID: "ext-2", Referencia: "REF002", NomeRaviProfit: "Produto Externo 2", Description: "Descrição do produto externo 2", Marca: "Categoria B", UnitPriceRmb: 200, QtMinVenda: 30},
		{ID: "ext-3", Referencia: "REF003", NomeRaviProfit: "Produto Externo 3", Description: "Descrição do produto externo 3", Marca: "Categoria C", UnitPriceRmb: 300, QtMinVenda: 20},
		{ID: "ext-4", Referencia: "TEST001", NomeRaviProfit: "Produto Teste Externo", Description: "Produto de teste para vinculação", Marca: "Teste", UnitPriceRmb: 100, QtMinVenda: 100},
		{ID: "ext-5", Referencia: "DEMO001", NomeRaviProfit: "Produto Demo", Description: "Produto para demonstração", Marca: "Demo", UnitPriceRmb: 75, QtMinVenda: 25},
	}}
}

func (m *Mock) BuscarPorReferencia(_ context.Context, termo string) ([]ProdutoExterno, error) {
	termo = strings.ToUpper(strings.TrimSpace(termo))
	if len(termo) < 2 {
		return []ProdutoExterno{}, nil
	}

	var exatos, porPrefixo []ProdutoExterno
	for _, p := range m.Produtos {
		ref := strings.ToUpper(p.Referencia)
		switch {
		case ref == termo:
			exatos = append(exatos, p)
		case strings.HasPrefix(ref, termo):
			porPrefixo = append(porPrefixo, p)
		}
	}
	if len(exatos) > 0 {
		return exatos, nil
	}
	return porPrefixo, nil
}
