package container

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// POST /containers
func (h *Handler) CriarContainer(w http.ResponseWriter, r *http.Request) {
	var c Container
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if c.NumeroContainer == "" {
		http.Error(w, "Número do container é obrigatório", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Criar(&c); err != nil {
		http.Error(w, "Erro ao criar container", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// GET /containers
func (h *Handler) ListarContainers(w http.ResponseWriter, r *http.Request) {
	containers, err := h.Repo.Listar()
	if err != nil {
		http.Error(w, "Erro ao buscar containers", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(containers)
}

// GET /containers/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		http.Error(w, "ID de container inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.BuscarPorID(id)
	if err != nil {
		http.Error(w, "Container não encontrado", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(c)
}

// PUT /containers/{id}
func (h *Handler) AtualizarContainer(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		http.Error(w, "ID de container inválido", http.StatusBadRequest)
		return
	}

	var c Container
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Atualizar(id, &c); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Container não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao atualizar container", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(c)
}

// DELETE /containers/{id}
func (h *Handler) ExcluirContainer(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		http.Error(w, "ID de container inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Excluir(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Container não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao excluir container", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /containers/{id}/duplicar
func (h *Handler) DuplicarContainer(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		http.Error(w, "ID de container inválido", http.StatusBadRequest)
		return
	}

	var corpo struct {
		NumeroContainer string `json:"numeroContainer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&corpo); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	novo, err := h.Repo.Duplicar(id, corpo.NumeroContainer)
	switch {
	case errors.Is(err, ErrNumeroObrigatorio), errors.Is(err, ErrNumeroDuplicado):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "Container não encontrado", http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, "Erro ao duplicar container", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(novo)
}

// GET /containers/{numero}/produtos
func (h *Handler) ListarProdutosDoContainer(w http.ResponseWriter, r *http.Request) {
	numero := mux.Vars(r)["numero"]
	produtos, err := h.Repo.ProdutosDoContainer(numero)
	if err != nil {
		http.Error(w, "Erro ao buscar produtos do container", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(produtos)
}

// GET /containers/{numero}/total-rmb
func (h *Handler) TotalRmb(w http.ResponseWriter, r *http.Request) {
	numero := mux.Vars(r)["numero"]
	total, err := h.Repo.TotalRmbCalculado(numero)
	if err != nil {
		http.Error(w, "Erro ao calcular total RMB", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]float64{"totalRmb": total})
}

// POST /containers/reparar-ids
func (h *Handler) RepararIDs(w http.ResponseWriter, r *http.Request) {
	corrigiu, err := h.Repo.CorrigirRegistrosSemID()
	if err != nil {
		http.Error(w, "Erro ao corrigir containers", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]bool{"corrigido": corrigiu})
}

func idDaRota(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	return uint(id), err
}
