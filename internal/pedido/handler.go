package pedido

import (
	"errors"
	"fmt"
	"net/http"
)

type Handler struct {
	Exportador *Exportador
}

func NewHandler(exportador *Exportador) *Handler {
	return &Handler{Exportador: exportador}
}

// POST /pedidos/gerar
// Devolve a planilha como anexo; o avanço de status já aconteceu quando a
// resposta começa a ser escrita.
func (h *Handler) GerarPedido(w http.ResponseWriter, r *http.Request) {
	planilha, err := h.Exportador.GerarPedido(r.Context())
	if errors.Is(err, ErrSemProdutos) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, "Erro ao gerar planilha do pedido", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", planilha.Nome))
	w.Header().Set("X-Produtos-Exportados", fmt.Sprint(planilha.Exportados))
	w.Header().Set("X-Imagens-Inseridas", fmt.Sprint(planilha.ImagensBaixadas))
	w.Write(planilha.Conteudo)
}
