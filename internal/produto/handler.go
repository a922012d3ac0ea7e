package produto

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gustavo-devfull/controle-pedidos/internal/catalogo"
	"gorm.io/gorm"
)

type Handler struct {
	Repo          *Repository
	Status        *ServicoStatus
	Sincronizador *Sincronizador
}

func NewHandler(repo *Repository, status *ServicoStatus, sinc *Sincronizador) *Handler {
	return &Handler{Repo: repo, Status: status, Sincronizador: sinc}
}

// POST /produtos
func (h *Handler) CriarProduto(w http.ResponseWriter, r *http.Request) {
	var p Produto
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	if _, err := h.Repo.Criar(&p); err != nil {
		http.Error(w, "Erro ao criar produto", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// GET /produtos
func (h *Handler) ListarProdutos(w http.ResponseWriter, r *http.Request) {
	produtos, err := h.Repo.Listar()
	if err != nil {
		http.Error(w, "Erro ao buscar produtos", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(produtos)
}

// GET /produtos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		http.Error(w, "ID de produto inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.BuscarPorID(id)
	if err != nil {
		http.Error(w, "Produto não encontrado", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(p)
}

// PUT /produtos/{id}
func (h *Handler) AtualizarProduto(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		http.Error(w, "ID de produto inválido", http.StatusBadRequest)
		return
	}

	var campos map[string]any
	if err := json.NewDecoder(r.Body).Decode(&campos); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	p, err := h.Status.AtualizarCampos(id, campos)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Produto não encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Erro ao atualizar produto", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(p)
}

// DELETE /produtos/{id}
func (h *Handler) ExcluirProduto(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		http.Error(w, "ID de produto inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Excluir(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Produto não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao excluir produto", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PUT /produtos/{id}/status
func (h *Handler) MudarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		http.Error(w, "ID de produto inválido", http.StatusBadRequest)
		return
	}

	var corpo MudancaStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&corpo); err != nil || corpo.Status == "" {
		http.Error(w, "Status inválido", http.StatusBadRequest)
		return
	}

	situacao, p, err := h.Status.MudarStatus(id, corpo.Status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Produto não encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Erro ao atualizar status", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(RespostaStatusDTO{Situacao: situacao, Produto: p})
}

// POST /produtos/{id}/embarque
func (h *Handler) ConfirmarEmbarque(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		http.Error(w, "ID de produto inválido", http.StatusBadRequest)
		return
	}

	var corpo ConfirmacaoEmbarqueDTO
	if err := json.NewDecoder(r.Body).Decode(&corpo); err != nil || corpo.NumeroContainer == "" {
		http.Error(w, "Número de container obrigatório", http.StatusBadRequest)
		return
	}

	p, err := h.Status.ConfirmarEmbarque(id, corpo.NumeroContainer)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Produto não encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	json.NewEncoder(w).Encode(p)
}

// GET /produtos/{id}/historico
func (h *Handler) ListarHistorico(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		http.Error(w, "ID de produto inválido", http.StatusBadRequest)
		return
	}

	historico, err := h.Repo.HistoricoDoProduto(id)
	if err != nil {
		http.Error(w, "Erro ao buscar histórico", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(historico)
}

// POST /produtos/{id}/vincular
func (h *Handler) VincularExterno(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		http.Error(w, "ID de produto inválido", http.StatusBadRequest)
		return
	}

	// O corpo chega no esquema frouxo da base externa.
	var doc map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	p, err := h.Sincronizador.VincularExterno(id, catalogo.Normalizar(doc))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Produto não encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Erro ao vincular produto", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(p)
}

// POST /produtos/{id}/desvincular
func (h *Handler) Desvincular(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		http.Error(w, "ID de produto inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.Desvincular(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Produto não encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Erro ao desvincular produto", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(p)
}

// POST /sincronizacao
func (h *Handler) SincronizarTodos(w http.ResponseWriter, r *http.Request) {
	resultado, err := h.Sincronizador.VerificarESincronizarTodos(r.Context())
	if err != nil {
		http.Error(w, "Erro ao sincronizar produtos", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(resultado)
}

func idDaRota(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	return uint(id), err
}
