package produto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// consultaFixa devolve sempre o mesmo conjunto de containers.
type consultaFixa struct {
	containers map[string]DadosContainer
}

func (c consultaFixa) BuscarPorNumero(numero string) (*DadosContainer, error) {
	if dados, ok := c.containers[numero]; ok {
		return &dados, nil
	}
	return nil, nil
}

func (c consultaFixa) HaContainers() (bool, error) {
	return len(c.containers) > 0, nil
}

func servicoDeTeste(t *testing.T, containers map[string]DadosContainer) (*ServicoStatus, *Repository) {
	t.Helper()
	repo := NewRepository(bancoDeTeste(t))
	return NewServicoStatus(repo, consultaFixa{containers: containers}), repo
}

func TestAtualizarCamposEspelhaEtaDoContainer(t *testing.T) {
	s, repo := servicoDeTeste(t, map[string]DadosContainer{
		"CONT001": {Numero: "CONT001", Eta: "2026-10-01"},
	})

	id, err := repo.Criar(&Produto{Referencia: "REF001", Status: StatusFabricacao})
	require.NoError(t, err)

	p, err := s.AtualizarCampos(id, map[string]any{"container": "CONT001"})
	require.NoError(t, err)
	assert.Equal(t, "CONT001", p.Container)
	assert.Equal(t, "2026-10-01", p.Eta)

	// Container removido zera o ETA.
	p, err = s.AtualizarCampos(id, map[string]any{"container": ""})
	require.NoError(t, err)
	assert.Empty(t, p.Container)
	assert.Empty(t, p.Eta)

	// Container desconhecido não deixa ETA velho para trás.
	p, err = s.AtualizarCampos(id, map[string]any{"container": "CONT999"})
	require.NoError(t, err)
	assert.Equal(t, "CONT999", p.Container)
	assert.Empty(t, p.Eta)
}

func TestAtualizarCamposSemContainerNaoTocaEta(t *testing.T) {
	s, repo := servicoDeTeste(t, nil)

	id, err := repo.Criar(&Produto{
		Referencia: "REF001",
		Container:  "CONT001",
		Eta:        "2026-10-01",
	})
	require.NoError(t, err)

	p, err := s.AtualizarCampos(id, map[string]any{"lote": "L-1"})
	require.NoError(t, err)
	assert.Equal(t, "CONT001", p.Container)
	assert.Equal(t, "2026-10-01", p.Eta)
	assert.Equal(t, "L-1", p.Lote)
}

func TestMudarStatusTransicaoComum(t *testing.T) {
	s, repo := servicoDeTeste(t, nil)

	id, err := repo.Criar(&Produto{Referencia: "REF001", Status: StatusDesenvolvimento})
	require.NoError(t, err)

	situacao, p, err := s.MudarStatus(id, StatusGerarPedido)
	require.NoError(t, err)
	assert.Equal(t, EmbarqueConcluido, situacao)
	assert.Equal(t, StatusGerarPedido, p.Status)

	// Transição comum não gera histórico.
	historico, err := repo.HistoricoDoProduto(id)
	require.NoError(t, err)
	assert.Empty(t, historico)
}

func TestMudarStatusEmbarcadoComContainerGeraHistorico(t *testing.T) {
	s, repo := servicoDeTeste(t, nil)

	id, err := repo.Criar(&Produto{
		Referencia: "REF001",
		Status:     StatusFabricacao,
		Container:  "CONT001",
	})
	require.NoError(t, err)

	situacao, p, err := s.MudarStatus(id, StatusEmbarcado)
	require.NoError(t, err)
	assert.Equal(t, EmbarqueConcluido, situacao)
	assert.Equal(t, StatusEmbarcado, p.Status)
	assert.NotNil(t, p.LastStatusChange)

	historico, err := repo.HistoricoDoProduto(id)
	require.NoError(t, err)
	require.Len(t, historico, 1)
	assert.Equal(t, StatusFabricacao, historico[0].StatusAnterior)
	assert.Equal(t, StatusEmbarcado, historico[0].NovoStatus)
	assert.Equal(t, StatusFabricacao, historico[0].DadosProduto.Status)
}

func TestMudarStatusMesmoStatusNaoDuplicaHistorico(t *testing.T) {
	s, repo := servicoDeTeste(t, nil)

	id, err := repo.Criar(&Produto{
		Referencia: "REF001",
		Status:     StatusEmbarcado,
		Container:  "CONT001",
	})
	require.NoError(t, err)

	_, _, err = s.MudarStatus(id, StatusEmbarcado)
	require.NoError(t, err)

	historico, err := repo.HistoricoDoProduto(id)
	require.NoError(t, err)
	assert.Empty(t, historico)
}

func TestMudarStatusEmbarcadoSemContainerFicaPendente(t *testing.T) {
	s, repo := servicoDeTeste(t, map[string]DadosContainer{
		"CONT001": {Numero: "CONT001", Eta: "2026-10-01"},
	})

	id, err := repo.Criar(&Produto{Referencia: "REF001", Status: StatusFabricacao})
	require.NoError(t, err)

	situacao, p, err := s.MudarStatus(id, StatusEmbarcado)
	require.NoError(t, err)
	assert.Equal(t, EmbarquePendenteContainer, situacao)
	assert.Nil(t, p)

	// Nada foi persistido na primeira fase.
	atual, err := repo.BuscarPorID(id)
	require.NoError(t, err)
	assert.Equal(t, StatusFabricacao, atual.Status)
	historico, err := repo.HistoricoDoProduto(id)
	require.NoError(t, err)
	assert.Empty(t, historico)
}

func TestMudarStatusEmbarcadoSemContainersCadastrados(t *testing.T) {
	s, repo := servicoDeTeste(t, nil)

	id, err := repo.Criar(&Produto{Referencia: "REF001", Status: StatusFabricacao})
	require.NoError(t, err)

	situacao, _, err := s.MudarStatus(id, StatusEmbarcado)
	require.NoError(t, err)
	assert.Equal(t, EmbarqueSemContainers, situacao)
}

func TestConfirmarEmbarqueAssociaContainerEConclui(t *testing.T) {
	s, repo := servicoDeTeste(t, map[string]DadosContainer{
		"CONT001": {Numero: "CONT001", Eta: "2026-10-01"},
	})

	id, err := repo.Criar(&Produto{Referencia: "REF001", Status: StatusFabricacao})
	require.NoError(t, err)

	p, err := s.ConfirmarEmbarque(id, "CONT001")
	require.NoError(t, err)
	assert.Equal(t, StatusEmbarcado, p.Status)
	assert.Equal(t, "CONT001", p.Container)
	assert.Equal(t, "2026-10-01", p.Eta)

	historico, err := repo.HistoricoDoProduto(id)
	require.NoError(t, err)
	require.Len(t, historico, 1)
	assert.Equal(t, StatusFabricacao, historico[0].StatusAnterior)
}

func TestConfirmarEmbarqueContainerInexistente(t *testing.T) {
	s, repo := servicoDeTeste(t, map[string]DadosContainer{
		"CONT001": {Numero: "CONT001"},
	})

	id, err := repo.Criar(&Produto{Referencia: "REF001", Status: StatusFabricacao})
	require.NoError(t, err)

	_, err = s.ConfirmarEmbarque(id, "CONT999")
	assert.ErrorContains(t, err, "não encontrado")
}
