package produto

// MudancaStatusDTO é o corpo de PUT /produtos/{id}/status.
type MudancaStatusDTO struct {
	Status string `json:"status"`
}

// ConfirmacaoEmbarqueDTO é o corpo de POST /produtos/{id}/embarque.
type ConfirmacaoEmbarqueDTO struct {
	NumeroContainer string `json:"numeroContainer"`
}

// RespostaStatusDTO devolve o desfecho da primeira fase da mudança de
// status; Produto vem preenchido só quando a mudança foi concluída.
type RespostaStatusDTO struct {
	Situacao SituacaoEmbarque `json:"situacao"`
	Produto  *Produto         `json:"produto,omitempty"`
}
