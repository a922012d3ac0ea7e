package produto

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gustavo-devfull/controle-pedidos/internal/catalogo"
)

// Sincronizador mantém os produtos vinculados alinhados com a base externa.
type Sincronizador struct {
	Repo     *Repository
	Catalogo catalogo.Catalogo

	// Pausa entre itens do lote para não sobrecarregar a base externa.
	Pausa time.Duration
}

func NewSincronizador(repo *Repository, cat catalogo.Catalogo) *Sincronizador {
	return &Sincronizador{Repo: repo, Catalogo: cat, Pausa: 100 * time.Millisecond}
}

// ResultadoSincronizacao resume uma rodada de verificação em lote.
type ResultadoSincronizacao struct {
	Atualizados int `json:"updatedCount"`
	Erros       int `json:"errorCount"`
	Verificados int `json:"totalChecked"`
}

// SincronizarComBaseExterna aplica os dados externos sobre o produto
// atualizável da referência, preservando os campos de dono local (status,
// container, eta, orderQtyBox, lote, dataPedido). Sem produto atualizável,
// cria um novo em Desenvolvimento com quantidades zeradas.
func (s *Sincronizador) SincronizarComBaseExterna(referencia string, externo catalogo.ProdutoExterno) (uint, error) {
	existente, err := s.Repo.BuscarAtualizavelPorReferencia(referencia)
	if err != nil {
		return 0, err
	}

	agora := time.Now()

	if existente != nil {
		aplicarExterno(existente, externo)
		existente.ProdutoExternoID = externo.ID
		existente.ProdutoExternoRef = externo.Referencia
		existente.ProdutoExternoNome = primeiroTexto(externo.NomeRaviProfit, externo.Name)
		existente.ProdutoExternoPreco = externo.UnitPriceRmb
		existente.ProdutoExternoCategoria = externo.Marca
		existente.ProdutoExternoStock = externo.QtMinVenda
		if existente.VinculadoEm == nil {
			existente.VinculadoEm = &agora
		}
		if existente.VinculadoPor == "" {
			existente.VinculadoPor = "sistema"
		}
		existente.LastSyncDate = &agora
		existente.Recalcular()
		if err := s.Repo.DB.Save(existente).Error; err != nil {
			return 0, err
		}
		return existente.ID, nil
	}

	novo := &Produto{
		Referencia:   externo.Referencia,
		Status:       StatusDesenvolvimento,
		OrderQtyBox:  0,
		DataPedido:   agora.Format("2006-01-02"),
		VinculadoEm:  &agora,
		VinculadoPor: "sistema",
		LastSyncDate: &agora,

		ProdutoExternoID:        externo.ID,
		ProdutoExternoRef:       externo.Referencia,
		ProdutoExternoNome:      primeiroTexto(externo.NomeRaviProfit, externo.Name),
		ProdutoExternoPreco:     externo.UnitPriceRmb,
		ProdutoExternoCategoria: externo.Marca,
		ProdutoExternoStock:     externo.QtMinVenda,
	}
	aplicarExterno(novo, externo)
	return s.Repo.Criar(novo)
}

// VerificarESincronizarTodos percorre os produtos ativos não fechados,
// consulta a base externa e sincroniza só quem tem diferença relevante.
// Falha de um item conta no resultado e não derruba o lote.
func (s *Sincronizador) VerificarESincronizarTodos(ctx context.Context) (ResultadoSincronizacao, error) {
	produtos, err := s.Repo.Listar()
	if err != nil {
		return ResultadoSincronizacao{}, err
	}

	resultado := ResultadoSincronizacao{Verificados: len(produtos)}

	for _, p := range produtos {
		if p.Referencia == "" || p.Fechado() {
			continue
		}

		externos, err := s.Catalogo.BuscarPorReferencia(ctx, p.Referencia)
		if err != nil {
			log.Printf("sincronização: erro ao verificar produto %s: %v", p.Referencia, err)
			resultado.Erros++
			continue
		}
		if len(externos) == 0 {
			log.Printf("sincronização: produto %s não encontrado na base externa", p.Referencia)
			continue
		}

		if MudancaRelevante(&p, externos[0]) {
			if _, err := s.SincronizarComBaseExterna(p.Referencia, externos[0]); err != nil {
				log.Printf("sincronização: erro ao atualizar produto %s: %v", p.Referencia, err)
				resultado.Erros++
			} else {
				resultado.Atualizados++
			}
		}

		time.Sleep(s.Pausa)
	}

	log.Printf("sincronização concluída: %d atualizados, %d erros, %d verificados",
		resultado.Atualizados, resultado.Erros, resultado.Verificados)
	return resultado, nil
}

// VincularExterno vincula um produto a um item do catálogo: aplica o
// mapeamento de campos, registra os valores associados e trava os campos
// preenchidos pela base externa.
func (s *Sincronizador) VincularExterno(id uint, externo catalogo.ProdutoExterno) (*Produto, error) {
	p, err := s.Repo.BuscarPorID(id)
	if err != nil {
		return nil, err
	}

	mapeamento := map[string]any{
		"referencia":     externo.Referencia,
		"nomeRaviProfit": externo.NomeRaviProfit,
		"ncm":            externo.Ncm,
		"unitCtn":        externo.UnitCtn,
		"unitPriceRmb":   externo.UnitPriceRmb,
		"pesoUnitario":   externo.PesoUnitario,
		"nw":             externo.Nw,
		"gw":             externo.Gw,
		"cbm":            externo.Cbm,
		"fabrica":        externo.Fabrica,
		"itemNo":         externo.ItemNo,
		"description":    externo.Description,
		"name":           externo.Name,
		"remark":         externo.Remark,
		"obs":            externo.Obs,
		"unit":           externo.Unit,
		"l":              externo.L,
		"w":              externo.W,
		"h":              externo.H,
		"nomeInvoiceEn":  externo.NomeInvoiceEn,
	}

	var bloqueados CamposBloqueados
	for campo, valor := range mapeamento {
		switch v := valor.(type) {
		case string:
			if v != "" {
				bloqueados = append(bloqueados, campo)
			}
		case float64:
			if v != 0 {
				bloqueados = append(bloqueados, campo)
			}
		}
	}

	agora := time.Now()
	aplicarExterno(p, externo)
	p.Referencia = externo.Referencia
	p.CamposAssociados = CamposAssociados(mapeamento)
	p.CamposBloqueados = bloqueados
	p.ProdutoExternoID = externo.ID
	p.ProdutoExternoRef = externo.Referencia
	p.ProdutoExternoNome = primeiroTexto(externo.NomeRaviProfit, externo.Name)
	p.ProdutoExternoPreco = externo.UnitPriceRmb
	p.ProdutoExternoCategoria = externo.Marca
	p.ProdutoExternoStock = externo.QtMinVenda
	p.VinculadoEm = &agora
	p.VinculadoPor = "sistema"
	p.Recalcular()

	if err := s.Repo.DB.Save(p).Error; err != nil {
		return nil, fmt.Errorf("erro ao vincular produto: %w", err)
	}
	return p, nil
}

// MudancaRelevante compara o conjunto fixo de campos entre o produto local
// e o espelho externo, como strings normalizadas. Qualquer campo diferente
// já pede sincronização completa.
func MudancaRelevante(p *Produto, externo catalogo.ProdutoExterno) bool {
	pares := [][2]string{
		{p.NomeRaviProfit, externo.NomeRaviProfit},
		{p.Ncm, externo.Ncm},
		{num(p.UnitCtn), num(externo.UnitCtn)},
		{num(p.UnitPriceRmb), num(externo.UnitPriceRmb)},
		{num(p.ValorInvoiceUs), num(externo.ValorInvoiceUs)},
		{num(p.PesoUnitario), num(externo.PesoUnitario)},
		{num(p.Nw), num(externo.Nw)},
		{num(p.Gw), num(externo.Gw)},
		{num(p.Cbm), num(externo.Cbm)},
		{p.Marca, externo.Marca},
		{p.LinhaCotacoes, externo.LinhaCotacoes},
		{num(p.Moq), num(externo.Moq)},
		{num(p.QtMinVenda), num(externo.QtMinVenda)},
		{p.NomeDiNb, externo.NomeDiNb},
		{p.Dun, externo.Dun},
		{p.Cest, externo.Cest},
		{p.Ean, externo.Ean},
		{p.CodRavi, externo.CodRavi},
		{p.ObsPedido, externo.ObsPedido},
		{p.Description, externo.Description},
		{p.Remark, externo.Remark},
		{p.Obs, externo.Obs},
		{num(p.L), num(externo.L)},
		{num(p.W), num(externo.W)},
		{num(p.H), num(externo.H)},
		{p.Unit, externo.Unit},
		{p.Fabrica, externo.Fabrica},
		{p.ItemNo, externo.ItemNo},
		{p.Name, externo.Name},
		{p.NomeInvoiceEn, externo.NomeInvoiceEn},
		{num(p.UsKg), num(externo.UsKg)},
		{num(p.UsKgMin), num(externo.UsKgMin)},
	}

	for _, par := range pares {
		if par[0] != par[1] {
			return true
		}
	}
	return false
}

// aplicarExterno copia os campos de origem externa sobre o produto,
// mantendo o valor local quando o externo vier vazio. Campos de dono
// local (status, container, eta, orderQtyBox, lote, dataPedido) não são
// tocados aqui.
func aplicarExterno(p *Produto, e catalogo.ProdutoExterno) {
	p.NomeRaviProfit = primeiroTexto(e.NomeRaviProfit, p.NomeRaviProfit)
	p.Ncm = primeiroTexto(e.Ncm, p.Ncm)
	p.Fabrica = primeiroTexto(e.Fabrica, p.Fabrica)
	p.ItemNo = primeiroTexto(e.ItemNo, p.ItemNo)
	p.Description = primeiroTexto(e.Description, p.Description)
	p.Name = primeiroTexto(e.Name, p.Name)
	p.Remark = primeiroTexto(e.Remark, p.Remark)
	p.Obs = primeiroTexto(e.Obs, p.Obs)
	p.Unit = primeiroTexto(e.Unit, p.Unit)
	p.NomeDiNb = primeiroTexto(e.NomeDiNb, p.NomeDiNb)
	p.NomeInvoiceEn = primeiroTexto(e.NomeInvoiceEn, p.NomeInvoiceEn)
	p.Marca = primeiroTexto(e.Marca, p.Marca)
	p.LinhaCotacoes = primeiroTexto(e.LinhaCotacoes, p.LinhaCotacoes)
	p.Dun = primeiroTexto(e.Dun, p.Dun)
	p.Cest = primeiroTexto(e.Cest, p.Cest)
	p.Ean = primeiroTexto(e.Ean, p.Ean)
	p.CodRavi = primeiroTexto(e.CodRavi, p.CodRavi)
	p.ObsPedido = primeiroTexto(e.ObsPedido, p.ObsPedido)

	p.UnitCtn = primeiroNumero(e.UnitCtn, p.UnitCtn)
	p.UnitPriceRmb = primeiroNumero(e.UnitPriceRmb, p.UnitPriceRmb)
	p.ValorInvoiceUs = primeiroNumero(e.ValorInvoiceUs, p.ValorInvoiceUs)
	p.PesoUnitario = primeiroNumero(e.PesoUnitario, p.PesoUnitario)
	p.Nw = primeiroNumero(e.Nw, p.Nw)
	p.Gw = primeiroNumero(e.Gw, p.Gw)
	p.Cbm = primeiroNumero(e.Cbm, p.Cbm)
	p.Moq = primeiroNumero(e.Moq, p.Moq)
	p.QtMinVenda = primeiroNumero(e.QtMinVenda, p.QtMinVenda)
	p.UsKg = primeiroNumero(e.UsKg, p.UsKg)
	p.UsKgMin = primeiroNumero(e.UsKgMin, p.UsKgMin)
	p.TotalInvoice = primeiroNumero(e.TotalInvoice, p.TotalInvoice)
	p.L = primeiroNumero(e.L, p.L)
	p.W = primeiroNumero(e.W, p.W)
	p.H = primeiroNumero(e.H, p.H)
}

func primeiroTexto(valores ...string) string {
	for _, v := range valores {
		if v != "" {
			return v
		}
	}
	return ""
}

func primeiroNumero(valores ...float64) float64 {
	for _, v := range valores {
		if v != 0 {
			return v
		}
	}
	return 0
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
