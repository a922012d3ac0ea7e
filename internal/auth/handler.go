package auth

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	Repo   *Repository
	Tokens *Tokens
}

func NewHandler(repo *Repository, tokens *Tokens) *Handler {
	return &Handler{Repo: repo, Tokens: tokens}
}

type credenciaisDTO struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var corpo credenciaisDTO
	if err := json.NewDecoder(r.Body).Decode(&corpo); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	usuario, err := h.Repo.BuscarPorEmail(corpo.Email)
	if err != nil || !CheckSenha(usuario.Senha, corpo.Senha) {
		http.Error(w, "Credenciais inválidas", http.StatusUnauthorized)
		return
	}

	token, err := h.Tokens.Gerar(usuario.ID)
	if err != nil {
		http.Error(w, "Erro ao gerar token", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"token":   token,
		"usuario": usuario,
	})
}

// POST /usuarios
func (h *Handler) CriarUsuario(w http.ResponseWriter, r *http.Request) {
	var corpo struct {
		Nome  string `json:"nome"`
		Email string `json:"email"`
		Senha string `json:"senha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&corpo); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if corpo.Email == "" || corpo.Senha == "" {
		http.Error(w, "Email e senha são obrigatórios", http.StatusBadRequest)
		return
	}

	hash, err := HashSenha(corpo.Senha)
	if err != nil {
		http.Error(w, "Erro ao processar senha", http.StatusInternalServerError)
		return
	}

	usuario := Usuario{Nome: corpo.Nome, Email: corpo.Email, Senha: hash}
	if err := h.Repo.Criar(&usuario); err != nil {
		http.Error(w, "Erro ao criar usuário", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(usuario)
}
