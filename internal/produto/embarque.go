package produto

import (
	"fmt"
)

// DadosContainer é o recorte de container que o fluxo de embarque precisa.
type DadosContainer struct {
	Numero string
	Eta    string
}

// ConsultaContainers abstrai a consulta de containers para não acoplar este
// pacote ao repositório de containers. BuscarPorNumero devolve nil sem erro
// quando o número não existe.
type ConsultaContainers interface {
	BuscarPorNumero(numero string) (*DadosContainer, error)
	HaContainers() (bool, error)
}

// SituacaoEmbarque é o resultado da primeira fase de uma mudança de status.
type SituacaoEmbarque string

const (
	// EmbarqueConcluido: a mudança de status foi persistida.
	EmbarqueConcluido SituacaoEmbarque = "concluido"
	// EmbarquePendenteContainer: entrar em Embarcado exige escolher um
	// container antes; nada foi persistido.
	EmbarquePendenteContainer SituacaoEmbarque = "pendente-container"
	// EmbarqueSemContainers: não há container cadastrado para associar;
	// nada foi persistido.
	EmbarqueSemContainers SituacaoEmbarque = "sem-containers"
)

// ServicoStatus aplica mudanças de status respeitando as regras de
// embarque e de histórico.
type ServicoStatus struct {
	Repo       *Repository
	Containers ConsultaContainers
}

func NewServicoStatus(repo *Repository, containers ConsultaContainers) *ServicoStatus {
	return &ServicoStatus{Repo: repo, Containers: containers}
}

// AtualizarCampos aplica uma edição parcial sobre o produto. Quando o
// campo container é editado o ETA do produto espelha o do container
// escolhido; container removido ou desconhecido zera o ETA, que nunca
// fica apontando para um container antigo.
func (s *ServicoStatus) AtualizarCampos(id uint, campos map[string]any) (*Produto, error) {
	numero, presente := campos["container"]
	if !presente {
		return s.Repo.Atualizar(id, campos)
	}

	copia := make(map[string]any, len(campos)+1)
	for campo, valor := range campos {
		copia[campo] = valor
	}

	copia["eta"] = ""
	if nome, _ := numero.(string); nome != "" {
		c, err := s.Containers.BuscarPorNumero(nome)
		if err != nil {
			return nil, err
		}
		if c != nil {
			copia["eta"] = c.Eta
		}
	}
	return s.Repo.Atualizar(id, copia)
}

// MudarStatus é a primeira fase. Para Embarcado sem container associado
// nada é persistido: o chamador recebe a pendência e segue para
// ConfirmarEmbarque. Entradas em Embarcado/Nacionalizado gravam histórico;
// as demais transições só atualizam o status.
func (s *ServicoStatus) MudarStatus(id uint, novoStatus string) (SituacaoEmbarque, *Produto, error) {
	p, err := s.Repo.BuscarPorID(id)
	if err != nil {
		return "", nil, err
	}
	statusAnterior := p.Status

	if novoStatus == StatusEmbarcado && p.Container == "" {
		existem, err := s.Containers.HaContainers()
		if err != nil {
			return "", nil, err
		}
		if !existem {
			return EmbarqueSemContainers, nil, nil
		}
		return EmbarquePendenteContainer, nil, nil
	}

	if err := s.aplicar(p, novoStatus, statusAnterior); err != nil {
		return "", nil, err
	}

	atualizado, err := s.Repo.BuscarPorID(id)
	if err != nil {
		return "", nil, err
	}
	return EmbarqueConcluido, atualizado, nil
}

// ConfirmarEmbarque é a segunda fase: associa o container escolhido,
// espelha o ETA dele no produto e conclui a transição para Embarcado.
func (s *ServicoStatus) ConfirmarEmbarque(id uint, numeroContainer string) (*Produto, error) {
	p, err := s.Repo.BuscarPorID(id)
	if err != nil {
		return nil, err
	}

	c, err := s.Containers.BuscarPorNumero(numeroContainer)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("container %s não encontrado", numeroContainer)
	}

	statusAnterior := p.Status
	p.Container = c.Numero
	p.Eta = c.Eta
	if err := s.Repo.DB.Save(p).Error; err != nil {
		return nil, err
	}

	if err := s.aplicar(p, StatusEmbarcado, statusAnterior); err != nil {
		return nil, err
	}
	return s.Repo.BuscarPorID(id)
}

func (s *ServicoStatus) aplicar(p *Produto, novoStatus, statusAnterior string) error {
	entradaAuditada := (novoStatus == StatusEmbarcado || novoStatus == StatusNacionalizado) &&
		statusAnterior != novoStatus
	if entradaAuditada {
		return s.Repo.RegistrarTransicaoStatus(p.ID, *p, novoStatus, statusAnterior)
	}
	return s.Repo.AtualizarStatus(p.ID, novoStatus)
}
