package catalogo

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	Catalogo Catalogo
}

func NewHandler(cat Catalogo) *Handler {
	return &Handler{Catalogo: cat}
}

// GET /catalogo?ref=TERMO
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	termo := r.URL.Query().Get("ref")

	produtos, err := h.Catalogo.BuscarPorReferencia(r.Context(), termo)
	if err != nil {
		http.Error(w, "Erro ao consultar base externa", http.StatusBadGateway)
		return
	}
	json.NewEncoder(w).Encode(produtos)
}
