package produto

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavo-devfull/controle-pedidos/internal/catalogo"
)

func sincronizadorDeTeste(t *testing.T) (*Sincronizador, *Repository) {
	t.Helper()
	repo := NewRepository(bancoDeTeste(t))
	s := NewSincronizador(repo, catalogo.NewMock())
	s.Pausa = 0
	return s, repo
}

func TestSincronizarCriaNovoEmDesenvolvimento(t *testing.T) {
	s, repo := sincronizadorDeTeste(t)

	externo := catalogo.ProdutoExterno{
		ID:             "ext-1",
		Referencia:     "REF001",
		NomeRaviProfit: "Produto Externo 1",
		UnitPriceRmb:   150,
		UnitCtn:        24,
	}
	id, err := s.SincronizarComBaseExterna("REF001", externo)
	require.NoError(t, err)

	p, err := repo.BuscarPorID(id)
	require.NoError(t, err)
	assert.Equal(t, StatusDesenvolvimento, p.Status)
	assert.Equal(t, 0.0, p.OrderQtyBox)
	assert.Equal(t, "ext-1", p.ProdutoExternoID)
	assert.Equal(t, 150.0, p.UnitPriceRmb)
	assert.NotEmpty(t, p.DataPedido)
	assert.NotNil(t, p.LastSyncDate)
}

func TestSincronizarPreservaCamposDeDonoLocal(t *testing.T) {
	s, repo := sincronizadorDeTeste(t)

	id, err := repo.Criar(&Produto{
		Referencia:   "REF001",
		Status:       StatusFabricacao,
		Container:    "CONT001",
		Eta:          "2026-10-01",
		OrderQtyBox:  80,
		Lote:         "L-7",
		DataPedido:   "2026-08-15",
		UnitPriceRmb: 100,
		UnitCtn:      10,
	})
	require.NoError(t, err)

	_, err = s.SincronizarComBaseExterna("REF001", catalogo.ProdutoExterno{
		ID:           "ext-1",
		Referencia:   "REF001",
		UnitPriceRmb: 150,
	})
	require.NoError(t, err)

	p, err := repo.BuscarPorID(id)
	require.NoError(t, err)
	assert.Equal(t, StatusFabricacao, p.Status)
	assert.Equal(t, "CONT001", p.Container)
	assert.Equal(t, "2026-10-01", p.Eta)
	assert.Equal(t, 80.0, p.OrderQtyBox)
	assert.Equal(t, "L-7", p.Lote)
	assert.Equal(t, "2026-08-15", p.DataPedido)
	// O preço externo entra e os derivados acompanham.
	assert.Equal(t, 150.0, p.UnitPriceRmb)
	assert.Equal(t, 800.0, p.OrderQtyUn)
	assert.Equal(t, 120000.0, p.TotalRmb)
}

func TestVerificarTodosSemDiferencaNaoAtualiza(t *testing.T) {
	s, repo := sincronizadorDeTeste(t)

	// Três produtos espelhando exatamente o catálogo simulado: nenhuma
	// diferença relevante, nenhuma atualização.
	espelhos := []Produto{
		{Referencia: "REF001", NomeRaviProfit: "Produto Externo 1", Description: "Descrição do produto externo 1", Marca: "Categoria A", UnitPriceRmb: 150, QtMinVenda: 50},
		{Referencia: "REF002", NomeRaviProfit: "Produto Externo 2", Description: "Descrição do produto externo 2", Marca: "Categoria B", UnitPriceRmb: 200, QtMinVenda: 30},
		{Referencia: "REF003", NomeRaviProfit: "Produto Externo 3", Description: "Descrição do produto externo 3", Marca: "Categoria C", UnitPriceRmb: 300, QtMinVenda: 20},
	}
	for i := range espelhos {
		_, err := repo.Criar(&espelhos[i])
		require.NoError(t, err)
	}

	resultado, err := s.VerificarESincronizarTodos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ResultadoSincronizacao{Atualizados: 0, Erros: 0, Verificados: 3}, resultado)
}

func TestVerificarTodosEhIdempotente(t *testing.T) {
	s, repo := sincronizadorDeTeste(t)

	_, err := repo.Criar(&Produto{Referencia: "REF001"})
	require.NoError(t, err)

	primeiro, err := s.VerificarESincronizarTodos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, primeiro.Atualizados)

	// Depois da primeira rodada o local espelha o externo: nada a fazer.
	segundo, err := s.VerificarESincronizarTodos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, segundo.Atualizados)
	assert.Equal(t, 0, segundo.Erros)
}

func TestVerificarTodosPulaFechadosESemReferencia(t *testing.T) {
	s, repo := sincronizadorDeTeste(t)

	_, err := repo.Criar(&Produto{Referencia: "REF001", Status: StatusEmbarcado})
	require.NoError(t, err)
	_, err = repo.Criar(&Produto{Referencia: ""})
	require.NoError(t, err)

	resultado, err := s.VerificarESincronizarTodos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ResultadoSincronizacao{Atualizados: 0, Erros: 0, Verificados: 2}, resultado)
}

func TestVincularExternoTravaSomenteCamposPreenchidos(t *testing.T) {
	s, repo := sincronizadorDeTeste(t)

	id, err := repo.Criar(&Produto{Referencia: "LOCAL", OrderQtyBox: 10})
	require.NoError(t, err)

	externo := catalogo.ProdutoExterno{
		ID:             "ext-9",
		Referencia:     "REF009",
		NomeRaviProfit: "Item Vinculado",
		Ncm:            "12345678",
		UnitPriceRmb:   42,
		UnitCtn:        6,
	}
	p, err := s.VincularExterno(id, externo)
	require.NoError(t, err)

	assert.True(t, p.Vinculado())
	assert.Equal(t, "REF009", p.Referencia)
	assert.ElementsMatch(t, CamposBloqueados{"referencia", "nomeRaviProfit", "ncm", "unitPriceRmb", "unitCtn"}, p.CamposBloqueados)
	assert.False(t, p.PodeEditar("ncm"))
	// Campo externo vazio continua editável.
	assert.True(t, p.PodeEditar("fabrica"))
	assert.Equal(t, "12345678", p.CamposAssociados["ncm"])
	// Derivados refeitos com os valores vinculados.
	assert.Equal(t, 60.0, p.OrderQtyUn)
	assert.Equal(t, 2520.0, p.TotalRmb)
	assert.NotNil(t, p.VinculadoEm)
}

func TestMudancaRelevante(t *testing.T) {
	p := &Produto{NomeRaviProfit: "Produto Externo 1", UnitPriceRmb: 150}
	mesmo := catalogo.ProdutoExterno{NomeRaviProfit: "Produto Externo 1", UnitPriceRmb: 150}
	assert.False(t, MudancaRelevante(p, mesmo))

	diferente := mesmo
	diferente.UnitPriceRmb = 151
	assert.True(t, MudancaRelevante(p, diferente))
}
