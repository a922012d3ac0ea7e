package produto

import (
	"time"

	"github.com/gustavo-devfull/controle-pedidos/internal/calculo"
)

// Status de um pedido ao longo da esteira de importação.
const (
	StatusDesenvolvimento = "Desenvolvimento"
	StatusGerarPedido     = "Gerar Pedido"
	StatusFabricacao      = "Fabricação"
	StatusEmbarcado       = "Embarcado"
	StatusNacionalizado   = "Nacionalizado"
)

// CamposAssociados guarda os valores vindos da base externa no momento da
// vinculação, indexados pelo nome do campo.
type CamposAssociados map[string]any

// CamposBloqueados lista os campos travados para edição local enquanto o
// produto estiver vinculado à base externa.
type CamposBloqueados []string

// Produto é um item de pedido de importação.
type Produto struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Referencia string `gorm:"index" json:"referencia"`

	// Identificação
	NomeRaviProfit string  `json:"nomeRaviProfit"`
	Ncm            string  `json:"ncm"`
	Fabrica        string  `json:"fabrica"`
	ItemNo         string  `json:"itemNo"`
	Description    string  `json:"description"`
	Name           string  `json:"name"`
	Remark         string  `json:"remark"`
	Obs            string  `json:"obs"`
	Unit           string  `json:"unit"`
	NomeDiNb       string  `json:"nomeDiNb"`
	NomeInvoiceEn  string  `json:"nomeInvoiceEn"`
	Marca          string  `json:"marca"`
	LinhaCotacoes  string  `json:"linhaCotacoes"`
	Dun            string  `json:"dun"`
	Cest           string  `json:"cest"`
	Ean            string  `json:"ean"`
	CodRavi        string  `json:"codRavi"`
	ObsPedido      string  `json:"obsPedido"`
	Moq            float64 `json:"moq"`
	QtMinVenda     float64 `json:"qtMinVenda"`

	// Quantidades
	OrderQtyBox float64 `json:"orderQtyBox"`
	UnitCtn     float64 `json:"unitCtn"`
	OrderQtyUn  float64 `json:"orderQtyUn"`

	// Preços
	UnitPriceRmb   float64 `json:"unitPriceRmb"`
	TotalRmb       float64 `json:"totalRmb"`
	ValorInvoiceUs float64 `json:"valorInvoiceUs"`
	TotalInvoice   float64 `json:"totalInvoice"`

	// Pesos
	PesoUnitario   float64 `json:"pesoUnitario"`
	Nw             float64 `json:"nw"`
	TotalPesoLiq   float64 `json:"totalPesoLiq"`
	Gw             float64 `json:"gw"`
	TotalPesoBruto float64 `json:"totalPesoBruto"`
	UsKg           float64 `json:"usKg"`
	UsKgMin        float64 `json:"usKgMin"`

	// Volume e dimensões
	Cbm      float64 `json:"cbm"`
	CbmTotal float64 `json:"cbmTotal"`
	L        float64 `json:"l"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`

	// Logística
	Status            string `gorm:"index" json:"status"`
	Container         string `gorm:"index" json:"container"`
	Eta               string `json:"eta"`
	Lote              string `json:"lote"`
	DataPedido        string `json:"dataPedido"`
	DataGeracaoPedido string `json:"dataGeracaoPedido"`

	// Vinculação com a base externa
	ProdutoExternoID        string           `json:"produtoExternoId"`
	ProdutoExternoRef       string           `json:"produtoExternoRef"`
	ProdutoExternoNome      string           `json:"produtoExternoNome"`
	ProdutoExternoPreco     float64          `json:"produtoExternoPreco"`
	ProdutoExternoCategoria string           `json:"produtoExternoCategoria"`
	ProdutoExternoStock     float64          `json:"produtoExternoStock"`
	VinculadoEm             *time.Time       `json:"vinculadoEm"`
	VinculadoPor            string           `json:"vinculadoPor"`
	CamposAssociados        CamposAssociados `gorm:"serializer:json" json:"camposAssociados"`
	CamposBloqueados        CamposBloqueados `gorm:"serializer:json" json:"camposBloqueados"`

	// Ciclo de vida
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	Ativo            bool       `gorm:"index" json:"isActive"`
	ExcluidoEm       *time.Time `json:"deletedAt"`
	LastStatusChange *time.Time `json:"lastStatusChange"`
	LastSyncDate     *time.Time `json:"lastSyncDate"`
}

func (Produto) TableName() string { return "produtos_vinculados" }

// PodeEditar diz se um campo (nome JSON) aceita edição local. Campos
// travados pela vinculação externa só mudam por sincronização ou
// desvinculação.
func (p *Produto) PodeEditar(campo string) bool {
	for _, bloqueado := range p.CamposBloqueados {
		if bloqueado == campo {
			return false
		}
	}
	return true
}

// Vinculado informa se o produto está vinculado à base externa.
func (p *Produto) Vinculado() bool { return p.ProdutoExternoID != "" }

// Fechado informa se o produto está num status final para fins de
// sincronização (Embarcado/Nacionalizado não recebem mais atualização).
func (p *Produto) Fechado() bool {
	return p.Status == StatusEmbarcado || p.Status == StatusNacionalizado
}

// Recalcular refaz todos os campos derivados a partir dos campos base.
// Deve rodar em toda atualização que toque orderQtyBox, unitCtn,
// unitPriceRmb, nw, gw ou cbm; valor derivado velho é defeito.
func (p *Produto) Recalcular() {
	p.OrderQtyUn = calculo.OrderQtyUn(p.OrderQtyBox, p.UnitCtn)
	p.TotalRmb = calculo.TotalRmb(p.OrderQtyUn, p.UnitPriceRmb)
	p.TotalPesoLiq = calculo.TotalPesoLiq(p.Nw, p.OrderQtyBox)
	p.TotalPesoBruto = calculo.TotalPesoBruto(p.Gw, p.OrderQtyBox)
	p.CbmTotal = calculo.CbmTotal(p.Cbm, p.OrderQtyBox)
}

// HistoricoStatus é o registro de auditoria criado quando um produto entra
// em Embarcado ou Nacionalizado. Nunca é alterado nem removido.
type HistoricoStatus struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ProdutoID      uint      `gorm:"index" json:"productId"`
	DadosProduto   Produto   `gorm:"serializer:json" json:"productData"`
	StatusAnterior string    `json:"previousStatus"`
	NovoStatus     string    `json:"newStatus"`
	DataMudanca    time.Time `json:"statusChangeDate"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (HistoricoStatus) TableName() string { return "historico_status_produtos" }
