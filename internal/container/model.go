package container

import "time"

// Container é um embarque marítimo com seus custos associados. O campo
// RegistroID espelha a chave primária e existe só por causa de registros
// antigos gravados sem ele; ver CorrigirRegistrosSemID.
type Container struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	RegistroID      *uint  `json:"registroId"`
	NumeroContainer string `gorm:"index" json:"numeroContainer"`

	Agente        string  `json:"agente"`
	Exportador    string  `json:"exportador"`
	TipoContainer string  `json:"tipoContainer"`
	Etd           string  `json:"etd"`
	Eta           string  `json:"eta"`
	DiasViagem    float64 `json:"diasViagem"`
	DataPedido    string  `json:"dataPedido"`
	Complemento   string  `json:"complemento"`

	// Frete e volumes
	ValorFreteUsd float64 `json:"valorFreteUsd"`
	CbmNominal    float64 `json:"cbmNominal"`
	CbmPedido     float64 `json:"cbmPedido"`
	CbmPckList    float64 `json:"cbmPckList"`
	Perda         float64 `json:"perda"`
	FretePorM3    float64 `json:"fretePorM3"`

	// Pesos
	Gwt       float64 `json:"gwt"`
	Nwt       float64 `json:"nwt"`
	PesoTotal float64 `json:"pesoTotal"`

	// Totais monetários
	TotalUsd        float64 `json:"totalUsd"`
	TotalInvoiceUsd float64 `json:"totalInvoiceUsd"`
	UsdParaRmb      float64 `json:"usdParaRmb"`
	UsdChina        float64 `json:"usdChina"`
	UsdDi           float64 `json:"usdDi"`
	UsdFrete        float64 `json:"usdFrete"`

	// Taxas e despesas de nacionalização
	TaxaSiscomex         float64 `json:"taxaSiscomex"`
	MarinhaMercante      float64 `json:"marinhaMercante"`
	Sda                  float64 `json:"sda"`
	Armazenagem          float64 `json:"armazenagem"`
	Despachante          float64 `json:"despachante"`
	Expediente           float64 `json:"expediente"`
	FreteRodoviario      float64 `json:"freteRodoviario"`
	DiferencaCambioFrete float64 `json:"diferencaCambioFrete"`

	// Agente marítimo
	HandlingUsd                float64 `json:"handlingUsd"`
	Capatazia                  float64 `json:"capatazia"`
	BlFee                      float64 `json:"blFee"`
	TrsTaxaRegistroSiscargaUsd float64 `json:"trsTaxaRegistroSiscargaUsd"`
	DropOffUsd                 float64 `json:"dropOffUsd"`
	DesconsolidacaoUsd         float64 `json:"desconsolidacaoUsd"`
	IspsUsd                    float64 `json:"ispsUsd"`
	LogisticChargeUsd          float64 `json:"logisticChargeUsd"`
	TotalAgenteMaritimo        float64 `json:"totalAgenteMaritimo"`
	InLandCharge               float64 `json:"inLandCharge"`

	Comissoes            float64 `json:"comissoes"`
	CustoTotalChinaRmb   float64 `json:"custoTotalChinaRmb"`
	InvoiceMaisFrete     float64 `json:"invoiceMaisFrete"`
	VlrEstimadoLiberacao float64 `json:"vlrEstimadoLiberacao"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Container) TableName() string { return "containers" }
