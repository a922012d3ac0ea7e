// Package painel expõe os agregados do painel inicial: contagens por
// status e totais gerais dos produtos ativos.
package painel

import (
	"encoding/json"
	"net/http"

	"github.com/gustavo-devfull/controle-pedidos/internal/container"
	"github.com/gustavo-devfull/controle-pedidos/internal/produto"
)

// ResumoDTO é a resposta de GET /painel/resumo.
type ResumoDTO struct {
	TotalProdutos   int `json:"totalProdutos"`
	Desenvolvimento int `json:"desenvolvimento"`
	GerarPedido     int `json:"gerarPedido"`
	Fabricacao      int `json:"fabricacao"`
	Embarcado       int `json:"embarcado"`
	Nacionalizado   int `json:"nacionalizado"`

	TotalContainers int `json:"totalContainers"`

	TotalRmb       float64 `json:"totalRmb"`
	TotalInvoiceUs float64 `json:"totalInvoiceUs"`
	TotalGw        float64 `json:"totalGw"`
	TotalCbm       float64 `json:"totalCbm"`
}

type Handler struct {
	Produtos   *produto.Repository
	Containers *container.Repository
}

func NewHandler(produtos *produto.Repository, containers *container.Repository) *Handler {
	return &Handler{Produtos: produtos, Containers: containers}
}

// GET /painel/resumo
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	produtos, err := h.Produtos.Listar()
	if err != nil {
		http.Error(w, "Erro ao buscar produtos", http.StatusInternalServerError)
		return
	}
	containers, err := h.Containers.Listar()
	if err != nil {
		http.Error(w, "Erro ao buscar containers", http.StatusInternalServerError)
		return
	}

	resumo := ResumoDTO{
		TotalProdutos:   len(produtos),
		TotalContainers: len(containers),
	}
	for _, p := range produtos {
		switch p.Status {
		case produto.StatusDesenvolvimento:
			resumo.Desenvolvimento++
		case produto.StatusGerarPedido:
			resumo.GerarPedido++
		case produto.StatusFabricacao:
			resumo.Fabricacao++
		case produto.StatusEmbarcado:
			resumo.Embarcado++
		case produto.StatusNacionalizado:
			resumo.Nacionalizado++
		}
		resumo.TotalRmb += p.TotalRmb
		resumo.TotalInvoiceUs += p.ValorInvoiceUs
		resumo.TotalGw += p.Gw
		resumo.TotalCbm += p.Cbm
	}

	json.NewEncoder(w).Encode(resumo)
}
