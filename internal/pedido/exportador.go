package pedido

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gustavo-devfull/controle-pedidos/internal/calculo"
	"github.com/gustavo-devfull/controle-pedidos/internal/formato"
	"github.com/gustavo-devfull/controle-pedidos/internal/produto"
)

// ErrSemProdutos sinaliza que não há produto em "Gerar Pedido" para
// exportar; a operação vira no-op com aviso ao usuário.
var ErrSemProdutos = errors.New(`não há produtos com status "Gerar Pedido" para exportar`)

const nomeAba = "Pedido"

// Altura alvo das fotos na planilha, em pixels. A linha acompanha
// (1 pixel ≈ 0,75 ponto).
const alturaFotoPx = 250

var cabecalhos = []string{
	"Foto", "Referência", "Fabrica", "ITEM NO", "DESCRIPTION", "NAME", "REMARK", "OBS",
	"CTNS", "UNIT/CTN", "QTY", "UNIT PRICE RMB", "UNIT", "AMOUNT RMB", "L", "W", "H",
	"CBM", "CBM TOTAL", "G.W", "G.T.W", "N.W", "N.T.W", "Peso (N) unitario (kg)",
	"Nome invoice (EN)", "NCM", "Data do pedido", "Lote", "Valor invoice U$",
	"Cores/modelos", "Obs BRASIL",
}

var largurasColunas = []float64{
	25, 12, 15, 10, 30, 20, 20, 20, 8, 10, 8, 15, 8, 15, 8, 8, 8,
	10, 12, 8, 10, 8, 10, 20, 20, 12, 12, 10, 15, 15, 20,
}

// Planilha é o artefato final do pedido, pronto para download.
type Planilha struct {
	Nome     string
	Conteudo []byte

	Exportados      int
	ImagensBaixadas int
}

// Exportador monta a planilha de pedido de fabricação.
type Exportador struct {
	Produtos *produto.Repository
	Imagens  *BaixadorImagens
}

func NewExportador(produtos *produto.Repository, imagens *BaixadorImagens) *Exportador {
	return &Exportador{Produtos: produtos, Imagens: imagens}
}

// GerarPedido exporta os produtos em "Gerar Pedido" e, só depois da
// planilha pronta, avança cada um deles para "Fabricação" com a data de
// geração carimbada. Falha na montagem da planilha aborta tudo sem mexer
// em status.
func (e *Exportador) GerarPedido(ctx context.Context) (*Planilha, error) {
	todos, err := e.Produtos.Listar()
	if err != nil {
		return nil, err
	}

	var selecionados []produto.Produto
	for _, p := range todos {
		if p.Status == produto.StatusGerarPedido {
			selecionados = append(selecionados, p)
		}
	}
	if len(selecionados) == 0 {
		return nil, ErrSemProdutos
	}

	referencias := make([]string, len(selecionados))
	for i, p := range selecionados {
		referencias[i] = p.Referencia
	}
	imagens := e.Imagens.BaixarTodas(ctx, referencias)
	log.Printf("pedido: %d/%d imagens baixadas", len(imagens), len(selecionados))

	conteudo, err := e.montarPlanilha(selecionados, imagens)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar planilha: %w", err)
	}

	// Daqui em diante a planilha existe; o avanço de status é efeito do
	// sucesso da exportação.
	agora := time.Now()
	for _, p := range selecionados {
		if err := e.Produtos.MarcarPedidoGerado(p.ID, agora); err != nil {
			log.Printf("pedido: erro ao avançar status do produto %s: %v", p.Referencia, err)
		}
	}

	return &Planilha{
		Nome:            fmt.Sprintf("Pedido_%s.xlsx", agora.Format("2006-01-02")),
		Conteudo:        conteudo,
		Exportados:      len(selecionados),
		ImagensBaixadas: len(imagens),
	}, nil
}

func (e *Exportador) montarPlanilha(produtos []produto.Produto, imagens map[int]Imagem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", nomeAba); err != nil {
		return nil, err
	}

	if err := e.escreverCabecalho(f); err != nil {
		return nil, err
	}

	estiloNumerico, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: ponteiro("#,##0.00"),
		Alignment:    &excelize.Alignment{Horizontal: "center", Vertical: "middle"},
	})
	if err != nil {
		return nil, err
	}

	for i, p := range produtos {
		linha := i + 2
		if err := e.escreverLinha(f, linha, p, estiloNumerico); err != nil {
			return nil, err
		}

		img, ok := imagens[i]
		if !ok {
			// Sem foto a célula fica vazia e a linha mantém a altura padrão
			// da exportação.
			if err := f.SetRowHeight(nomeAba, linha, alturaFotoPx*0.75); err != nil {
				return nil, err
			}
			continue
		}
		if err := e.inserirImagem(f, linha, img); err != nil {
			return nil, err
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func (e *Exportador) escreverCabecalho(f *excelize.File) error {
	for i, titulo := range cabecalhos {
		celula, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(nomeAba, celula, titulo); err != nil {
			return err
		}

		coluna, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(nomeAba, coluna, coluna, largurasColunas[i]); err != nil {
			return err
		}
	}

	estilo, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1E3A8A"}},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "middle"},
	})
	if err != nil {
		return err
	}

	ultima, err := excelize.CoordinatesToCellName(len(cabecalhos), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(nomeAba, "A1", ultima, estilo); err != nil {
		return err
	}
	return f.SetRowHeight(nomeAba, 1, 30)
}

func (e *Exportador) escreverLinha(f *excelize.File, linha int, p produto.Produto, estiloNumerico int) error {
	// Derivados recalculados na hora quando o registro vier com valor
	// zerado, todos sobre CTNS (caixas).
	ctns := p.OrderQtyBox
	orderQtyUn := p.OrderQtyUn
	if orderQtyUn == 0 {
		orderQtyUn = calculo.OrderQtyUn(p.OrderQtyBox, p.UnitCtn)
	}
	totalRmb := p.TotalRmb
	if totalRmb == 0 {
		totalRmb = calculo.TotalRmb(orderQtyUn, p.UnitPriceRmb)
	}
	cbmTotal := p.CbmTotal
	if cbmTotal == 0 {
		cbmTotal = calculo.CbmTotal(p.Cbm, ctns)
	}
	totalPesoBruto := p.TotalPesoBruto
	if totalPesoBruto == 0 {
		totalPesoBruto = calculo.TotalPesoBruto(p.Gw, ctns)
	}
	totalPesoLiq := p.TotalPesoLiq
	if totalPesoLiq == 0 {
		totalPesoLiq = calculo.TotalPesoLiq(p.Nw, ctns)
	}

	valores := []any{
		"", // Foto
		p.Referencia,
		p.Fabrica,
		p.ItemNo,
		p.Description,
		p.Name,
		p.Remark,
		p.Obs,
		p.OrderQtyBox,
		p.UnitCtn,
		orderQtyUn,
		p.UnitPriceRmb,
		p.Unit,
		formato.FormatRMB(totalRmb),
		p.L,
		p.W,
		p.H,
		p.Cbm,
		cbmTotal,
		p.Gw,
		totalPesoBruto,
		p.Nw,
		totalPesoLiq,
		p.PesoUnitario,
		p.NomeInvoiceEn,
		p.Ncm,
		dataBrasileira(p.DataPedido),
		p.Lote,
		p.ValorInvoiceUs,
		"", // Cores/modelos
		p.ObsPedido,
	}

	for i, v := range valores {
		celula, err := excelize.CoordinatesToCellName(i+1, linha)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(nomeAba, celula, v); err != nil {
			return err
		}
	}

	// UNIT PRICE RMB, CBM TOTAL, G.T.W e N.T.W saem como número com duas
	// casas; AMOUNT RMB já foi gravado como moeda formatada.
	for _, coluna := range []int{12, 19, 21, 23} {
		celula, err := excelize.CoordinatesToCellName(coluna, linha)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(nomeAba, celula, celula, estiloNumerico); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exportador) inserirImagem(f *excelize.File, linha int, img Imagem) error {
	escala := float64(alturaFotoPx) / float64(img.Altura)
	larguraFinal := float64(img.Largura) * escala

	celula, err := excelize.CoordinatesToCellName(1, linha)
	if err != nil {
		return err
	}
	err = f.AddPictureFromBytes(nomeAba, celula, &excelize.Picture{
		Extension: ".jpg",
		File:      img.Bytes,
		Format: &excelize.GraphicOptions{
			ScaleX:      escala,
			ScaleY:      escala,
			Positioning: "oneCell",
		},
	})
	if err != nil {
		return err
	}

	if err := f.SetRowHeight(nomeAba, linha, alturaFotoPx*0.75); err != nil {
		return err
	}

	// Alarga a coluna de fotos se a imagem for mais larga que ela.
	larguraColuna := math.Max(largurasColunas[0], math.Round(larguraFinal*0.14))
	atual, err := f.GetColWidth(nomeAba, "A")
	if err != nil {
		return err
	}
	if larguraColuna > atual {
		return f.SetColWidth(nomeAba, "A", "A", larguraColuna)
	}
	return nil
}

func dataBrasileira(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}

func ponteiro(s string) *string { return &s }
