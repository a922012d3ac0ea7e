package produto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func bancoDeTeste(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Produto{}, &HistoricoStatus{}))
	return db
}

func TestCriarPreencheDerivadosEAtivo(t *testing.T) {
	repo := NewRepository(bancoDeTeste(t))

	id, err := repo.Criar(&Produto{
		Referencia:   "REF001",
		OrderQtyBox:  50,
		UnitCtn:      12,
		UnitPriceRmb: 3.35,
		Nw:           2.5,
		Gw:           3,
		Cbm:          0.082,
	})
	require.NoError(t, err)

	p, err := repo.BuscarPorID(id)
	require.NoError(t, err)
	assert.True(t, p.Ativo)
	assert.Equal(t, StatusDesenvolvimento, p.Status)
	assert.Equal(t, 600.0, p.OrderQtyUn)
	assert.Equal(t, 2010.0, p.TotalRmb)
	assert.Equal(t, 125.0, p.TotalPesoLiq)
	assert.Equal(t, 150.0, p.TotalPesoBruto)
	assert.InDelta(t, 4.1, p.CbmTotal, 1e-9)
}

func TestListarMaisRecentePrimeiroESemExcluidos(t *testing.T) {
	repo := NewRepository(bancoDeTeste(t))

	antigo := &Produto{Referencia: "ANTIGO", CreatedAt: time.Now().Add(-time.Hour)}
	recente := &Produto{Referencia: "RECENTE", CreatedAt: time.Now()}
	excluido := &Produto{Referencia: "EXCLUIDO", CreatedAt: time.Now().Add(-time.Minute)}

	_, err := repo.Criar(antigo)
	require.NoError(t, err)
	_, err = repo.Criar(recente)
	require.NoError(t, err)
	idExcluido, err := repo.Criar(excluido)
	require.NoError(t, err)
	require.NoError(t, repo.Excluir(idExcluido))

	produtos, err := repo.Listar()
	require.NoError(t, err)
	require.Len(t, produtos, 2)
	assert.Equal(t, "RECENTE", produtos[0].Referencia)
	assert.Equal(t, "ANTIGO", produtos[1].Referencia)
}

func TestAtualizarDescartaCamposBloqueadosERecalcula(t *testing.T) {
	repo := NewRepository(bancoDeTeste(t))

	id, err := repo.Criar(&Produto{
		Referencia:       "REF001",
		UnitPriceRmb:     10,
		OrderQtyBox:      1,
		UnitCtn:          1,
		CamposBloqueados: CamposBloqueados{"unitPriceRmb"},
	})
	require.NoError(t, err)

	p, err := repo.Atualizar(id, map[string]any{
		"unitPriceRmb": 999.0, // travado pela vinculação, deve ser ignorado
		"orderQtyBox":  5.0,
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, p.UnitPriceRmb)
	assert.Equal(t, 5.0, p.OrderQtyBox)
	assert.Equal(t, 5.0, p.OrderQtyUn)
	assert.Equal(t, 50.0, p.TotalRmb)
}

func TestAtualizarIgnoraCamposDeCicloDeVida(t *testing.T) {
	repo := NewRepository(bancoDeTeste(t))

	id, err := repo.Criar(&Produto{Referencia: "REF001"})
	require.NoError(t, err)

	p, err := repo.Atualizar(id, map[string]any{
		"id":       999,
		"isActive": false,
		"lote":     "L-42",
	})
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.True(t, p.Ativo)
	assert.Equal(t, "L-42", p.Lote)
}

func TestAtualizarIgnoraStatus(t *testing.T) {
	repo := NewRepository(bancoDeTeste(t))

	id, err := repo.Criar(&Produto{Referencia: "REF001", Status: StatusFabricacao})
	require.NoError(t, err)

	// Status só muda pelo fluxo de embarque; na edição comum é descartado.
	p, err := repo.Atualizar(id, map[string]any{
		"status": StatusEmbarcado,
		"lote":   "L-1",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusFabricacao, p.Status)
	assert.Equal(t, "L-1", p.Lote)

	historico, err := repo.HistoricoDoProduto(id)
	require.NoError(t, err)
	assert.Empty(t, historico)
}

func TestAtualizarNaoMexeNoMapaDoChamador(t *testing.T) {
	repo := NewRepository(bancoDeTeste(t))

	id, err := repo.Criar(&Produto{
		Referencia:       "REF001",
		CamposBloqueados: CamposBloqueados{"unitPriceRmb"},
	})
	require.NoError(t, err)

	campos := map[string]any{
		"id":           999,
		"status":       StatusEmbarcado,
		"unitPriceRmb": 999.0,
		"lote":         "L-1",
	}
	_, err = repo.Atualizar(id, campos)
	require.NoError(t, err)

	// O filtro de campos trabalha numa cópia.
	assert.Len(t, campos, 4)
	assert.Contains(t, campos, "status")
	assert.Contains(t, campos, "unitPriceRmb")
}

func TestExcluirEhLogico(t *testing.T) {
	repo := NewRepository(bancoDeTeste(t))

	id, err := repo.Criar(&Produto{Referencia: "REF001"})
	require.NoError(t, err)
	require.NoError(t, repo.Excluir(id))

	_, err = repo.BuscarPorID(id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// O registro continua na tabela, apenas inativo.
	var total int64
	require.NoError(t, repo.DB.Model(&Produto{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)

	var p Produto
	require.NoError(t, repo.DB.First(&p, id).Error)
	assert.False(t, p.Ativo)
	assert.NotNil(t, p.ExcluidoEm)
}

func TestMarcarPedidoGerado(t *testing.T) {
	repo := NewRepository(bancoDeTeste(t))

	id, err := repo.Criar(&Produto{Referencia: "REF001", Status: StatusGerarPedido})
	require.NoError(t, err)
	require.NoError(t, repo.MarcarPedidoGerado(id, time.Now()))

	p, err := repo.BuscarPorID(id)
	require.NoError(t, err)
	assert.Equal(t, StatusFabricacao, p.Status)
	assert.NotEmpty(t, p.DataGeracaoPedido)
}

func TestBuscarAtualizavelIgnoraFechados(t *testing.T) {
	repo := NewRepository(bancoDeTeste(t))

	_, err := repo.Criar(&Produto{Referencia: "REF001", Status: StatusEmbarcado})
	require.NoError(t, err)
	_, err = repo.Criar(&Produto{Referencia: "REF001", Status: StatusNacionalizado})
	require.NoError(t, err)

	p, err := repo.BuscarAtualizavelPorReferencia("REF001")
	require.NoError(t, err)
	assert.Nil(t, p)

	id, err := repo.Criar(&Produto{Referencia: "REF001", Status: StatusFabricacao})
	require.NoError(t, err)

	p, err = repo.BuscarAtualizavelPorReferencia("REF001")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, id, p.ID)
}

func TestDesvincularDestravaCampos(t *testing.T) {
	repo := NewRepository(bancoDeTeste(t))

	id, err := repo.Criar(&Produto{
		Referencia:        "REF001",
		ProdutoExternoID:  "ext-1",
		ProdutoExternoRef: "REF001",
		CamposAssociados:  CamposAssociados{"ncm": "12345678"},
		CamposBloqueados:  CamposBloqueados{"ncm", "unitPriceRmb"},
	})
	require.NoError(t, err)

	p, err := repo.Desvincular(id)
	require.NoError(t, err)
	assert.False(t, p.Vinculado())
	assert.Empty(t, p.CamposBloqueados)
	assert.True(t, p.PodeEditar("ncm"))
}

func TestHistoricoMaisRecentePrimeiro(t *testing.T) {
	repo := NewRepository(bancoDeTeste(t))

	id, err := repo.Criar(&Produto{Referencia: "REF001", Status: StatusFabricacao})
	require.NoError(t, err)

	p, err := repo.BuscarPorID(id)
	require.NoError(t, err)
	require.NoError(t, repo.RegistrarTransicaoStatus(id, *p, StatusEmbarcado, StatusFabricacao))

	p, err = repo.BuscarPorID(id)
	require.NoError(t, err)
	assert.Equal(t, StatusEmbarcado, p.Status)
	assert.NotNil(t, p.LastStatusChange)

	require.NoError(t, repo.RegistrarTransicaoStatus(id, *p, StatusNacionalizado, StatusEmbarcado))

	historico, err := repo.HistoricoDoProduto(id)
	require.NoError(t, err)
	require.Len(t, historico, 2)
	assert.Equal(t, StatusNacionalizado, historico[0].NovoStatus)
	assert.Equal(t, StatusEmbarcado, historico[1].NovoStatus)
	// A fotografia guarda o produto como estava antes da mudança.
	assert.Equal(t, StatusFabricacao, historico[1].DadosProduto.Status)
}
