package catalogo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ClienteHTTP consulta o catálogo externo via HTTP. A base expõe
// GET {base}/produtos?referencia=TERMO devolvendo um array de documentos
// JSON de esquema frouxo.
type ClienteHTTP struct {
	BaseURL string
	Cliente *http.Client
}

func NewClienteHTTP(baseURL string) *ClienteHTTP {
	return &ClienteHTTP{BaseURL: strings.TrimSuffix(baseURL, "/"), Cliente: http.DefaultClient}
}

func (c *ClienteHTTP) BuscarPorReferencia(ctx context.Context, termo string) ([]ProdutoExterno, error) {
	termo = strings.TrimSpace(termo)
	if len(termo) < 2 {
		return []ProdutoExterno{}, nil
	}
	termo = strings.ToUpper(termo)

	endereco := fmt.Sprintf("%s/produtos?referencia=%s", c.BaseURL, url.QueryEscape(termo))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endereco, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Cliente.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar base externa: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return []ProdutoExterno{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("base externa respondeu %d", resp.StatusCode)
	}

	var documentos []map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&documentos); err != nil {
		return nil, fmt.Errorf("resposta inválida da base externa: %w", err)
	}

	produtos := make([]ProdutoExterno, 0, len(documentos))
	for _, doc := range documentos {
		produtos = append(produtos, Normalizar(doc))
	}

	// Referência exata vem na frente; o restante é o fallback por prefixo.
	exatos := make([]ProdutoExterno, 0, len(produtos))
	demais := make([]ProdutoExterno, 0, len(produtos))
	for _, p := range produtos {
		if strings.EqualFold(p.Referencia, termo) {
			exatos = append(exatos, p)
		} else {
			demais = append(demais, p)
		}
	}
	return append(exatos, demais...), nil
}

// Normalizar converte um documento de esquema frouxo no tipo normalizado,
// aceitando as duas grafias de cada campo.
func Normalizar(doc map[string]json.RawMessage) ProdutoExterno {
	return ProdutoExterno{
		ID:         texto(doc, "id", "ID"),
		Referencia: texto(doc, "referencia", "REF", "REFERENCIA"),

		NomeRaviProfit: texto(doc, "nomeRaviProfit", "NOME", "DESCRICAO"),
		Ncm:            texto(doc, "ncm", "NCM"),
		Fabrica:        texto(doc, "fabrica", "FABRICA"),
		ItemNo:         texto(doc, "itemNo", "ITEM_NO"),
		Description:    texto(doc, "description", "DESCRIPTION"),
		Name:           texto(doc, "name", "NAME"),
		Remark:         texto(doc, "remark", "REMARK"),
		Obs:            texto(doc, "obs", "OBS"),
		Unit:           texto(doc, "unit", "UNIT"),
		NomeDiNb:       texto(doc, "nomeDiNb", "NOME_DI_NB"),
		NomeInvoiceEn:  texto(doc, "nomeInvoiceEn", "NOME_INVOICE_EN"),
		Marca:          texto(doc, "marca", "MARCA"),
		LinhaCotacoes:  texto(doc, "linhaCotacoes", "LINHA_COTACOES"),
		Dun:            texto(doc, "dun", "DUN"),
		Cest:           texto(doc, "cest", "CEST"),
		Ean:            texto(doc, "ean", "EAN"),
		CodRavi:        texto(doc, "codRavi", "COD_RAVI"),
		ObsPedido:      texto(doc, "obsPedido", "OBS_PEDIDO"),

		UnitCtn:        numero(doc, "unitCtn", "UNIT_CTN"),
		UnitPriceRmb:   numero(doc, "unitPriceRmb", "UNIT_PRICE_RMB", "PRECO"),
		ValorInvoiceUs: numero(doc, "valorInvoiceUsd", "VALOR_INVOICE_USD"),
		PesoUnitario:   numero(doc, "pesoUnitario", "PESO_UNITARIO"),
		Nw:             numero(doc, "nw", "NW"),
		Gw:             numero(doc, "gw", "GW"),
		Cbm:            numero(doc, "cbm", "CBM"),
		Moq:            numero(doc, "moq", "MOQ"),
		QtMinVenda:     numero(doc, "qtMinVenda", "QT_MIN_VENDA", "STOCK"),
		UsKg:           numero(doc, "usKg", "US_KG"),
		UsKgMin:        numero(doc, "usKgMin", "US_KG_MIN"),
		CbmTotal:       numero(doc, "cbmTotal", "CBM_TOTAL"),
		TotalPesoLiq:   numero(doc, "totalPesoLiq", "TOTAL_PESO_LIQ"),
		TotalPesoBruto: numero(doc, "totalPesoBruto", "TOTAL_PESO_BRUTO"),
		TotalInvoice:   numero(doc, "totalInvoice", "TOTAL_INVOICE"),
		L:              numero(doc, "l", "L"),
		W:              numero(doc, "w", "W"),
		H:              numero(doc, "h", "H"),
	}
}

// texto resolve a primeira chave presente, aceitando string ou número no
// documento de origem.
func texto(doc map[string]json.RawMessage, chaves ...string) string {
	for _, chave := range chaves {
		bruto, ok := doc[chave]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(bruto, &s); err == nil {
			if s != "" {
				return s
			}
			continue
		}
		var f float64
		if err := json.Unmarshal(bruto, &f); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	return ""
}

// numero resolve a primeira chave presente, aceitando número ou string
// numérica no documento de origem.
func numero(doc map[string]json.RawMessage, chaves ...string) float64 {
	for _, chave := range chaves {
		bruto, ok := doc[chave]
		if !ok {
			continue
		}
		var f float64
		if err := json.Unmarshal(bruto, &f); err == nil {
			if f != 0 {
				return f
			}
			continue
		}
		var s string
		if err := json.Unmarshal(bruto, &s); err == nil {
			if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && v != 0 {
				return v
			}
		}
	}
	return 0
}
