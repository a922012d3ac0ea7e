package produto

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Repository dá acesso aos produtos vinculados e ao histórico de status.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Criar insere um produto ativo com os campos derivados já consistentes.
func (r *Repository) Criar(p *Produto) (uint, error) {
	p.Ativo = true
	if p.Status == "" {
		p.Status = StatusDesenvolvimento
	}
	p.Recalcular()
	if err := r.DB.Create(p).Error; err != nil {
		return 0, err
	}
	return p.ID, nil
}

// Listar retorna os produtos ativos, do mais recente para o mais antigo.
func (r *Repository) Listar() ([]Produto, error) {
	var produtos []Produto
	err := r.DB.Where("ativo = ?", true).Order("created_at DESC").Find(&produtos).Error
	return produtos, err
}

// BuscarPorID resolve um produto ativo; gorm.ErrRecordNotFound se o id não
// apontar para um registro ativo.
func (r *Repository) BuscarPorID(id uint) (*Produto, error) {
	var p Produto
	if err := r.DB.Where("ativo = ?", true).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Atualizar mescla campos parciais (chaves JSON) sobre o produto. Campos
// bloqueados pela vinculação externa são descartados em silêncio, e os
// campos derivados são recalculados na mesma gravação. O mapa do chamador
// não é alterado.
func (r *Repository) Atualizar(id uint, campos map[string]any) (*Produto, error) {
	p, err := r.BuscarPorID(id)
	if err != nil {
		return nil, err
	}

	// Identidade, ciclo de vida e status não passam pela edição comum;
	// status só muda pelo fluxo de embarque (ServicoStatus) ou pela
	// geração de pedido.
	permitidos := make(map[string]any, len(campos))
	for campo, valor := range campos {
		switch campo {
		case "id", "createdAt", "updatedAt", "isActive", "deletedAt", "status":
			continue
		}
		if !p.PodeEditar(campo) {
			continue
		}
		permitidos[campo] = valor
	}

	bruto, err := json.Marshal(permitidos)
	if err != nil {
		return nil, fmt.Errorf("campos inválidos: %w", err)
	}
	if err := json.Unmarshal(bruto, p); err != nil {
		return nil, fmt.Errorf("campos inválidos: %w", err)
	}

	p.Recalcular()
	if err := r.DB.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// Excluir faz a exclusão lógica: o registro permanece com ativo=false.
func (r *Repository) Excluir(id uint) error {
	p, err := r.BuscarPorID(id)
	if err != nil {
		return err
	}
	agora := time.Now()
	p.Ativo = false
	p.ExcluidoEm = &agora
	return r.DB.Save(p).Error
}

// BuscarPorReferencia lista todos os produtos ativos com a referência, em
// qualquer status.
func (r *Repository) BuscarPorReferencia(referencia string) ([]Produto, error) {
	var produtos []Produto
	err := r.DB.Where("ativo = ? AND referencia = ?", true, referencia).Find(&produtos).Error
	return produtos, err
}

// BuscarAtualizavelPorReferencia devolve o primeiro produto ativo da
// referência que ainda não esteja fechado (Embarcado/Nacionalizado).
// nil sem erro quando não há candidato; o chamador cria um novo.
func (r *Repository) BuscarAtualizavelPorReferencia(referencia string) (*Produto, error) {
	var p Produto
	err := r.DB.
		Where("ativo = ? AND referencia = ? AND status NOT IN ?",
			true, referencia, []string{StatusEmbarcado, StatusNacionalizado}).
		First(&p).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// AtualizarStatus muda o status sem registrar histórico. Usado nas
// transições comuns da esteira; a entrada em Embarcado/Nacionalizado
// passa por RegistrarTransicaoStatus.
func (r *Repository) AtualizarStatus(id uint, novoStatus string) error {
	p, err := r.BuscarPorID(id)
	if err != nil {
		return err
	}
	p.Status = novoStatus
	return r.DB.Save(p).Error
}

// RegistrarTransicaoStatus grava o registro de auditoria com a fotografia
// completa do produto e em seguida aplica o novo status. Chamado
// exatamente nas entradas em Embarcado e Nacionalizado.
func (r *Repository) RegistrarTransicaoStatus(id uint, fotografia Produto, novoStatus, statusAnterior string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		agora := time.Now()
		registro := HistoricoStatus{
			ProdutoID:      id,
			DadosProduto:   fotografia,
			StatusAnterior: statusAnterior,
			NovoStatus:     novoStatus,
			DataMudanca:    agora,
		}
		if err := tx.Create(&registro).Error; err != nil {
			return err
		}

		var p Produto
		if err := tx.Where("ativo = ?", true).First(&p, id).Error; err != nil {
			return err
		}
		p.Status = novoStatus
		p.LastStatusChange = &agora
		return tx.Save(&p).Error
	})
}

// MarcarPedidoGerado avança o produto para Fabricação com a data de
// geração do pedido carimbada. Caminho interno do exportador; a edição
// comum não aceita mudança de status.
func (r *Repository) MarcarPedidoGerado(id uint, quando time.Time) error {
	p, err := r.BuscarPorID(id)
	if err != nil {
		return err
	}
	p.Status = StatusFabricacao
	p.DataGeracaoPedido = quando.Format(time.RFC3339)
	return r.DB.Save(p).Error
}

// HistoricoDoProduto lista o histórico de um produto, mudança mais recente
// primeiro.
func (r *Repository) HistoricoDoProduto(produtoID uint) ([]HistoricoStatus, error) {
	var historico []HistoricoStatus
	err := r.DB.Where("produto_id = ?", produtoID).
		Order("data_mudanca DESC").Find(&historico).Error
	return historico, err
}

// Desvincular remove a vinculação externa e destrava os campos.
func (r *Repository) Desvincular(id uint) (*Produto, error) {
	p, err := r.BuscarPorID(id)
	if err != nil {
		return nil, err
	}
	p.ProdutoExternoID = ""
	p.ProdutoExternoRef = ""
	p.ProdutoExternoNome = ""
	p.ProdutoExternoPreco = 0
	p.ProdutoExternoCategoria = ""
	p.ProdutoExternoStock = 0
	p.VinculadoEm = nil
	p.VinculadoPor = ""
	p.CamposAssociados = nil
	p.CamposBloqueados = CamposBloqueados{}
	if err := r.DB.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}
