package container

import (
	"errors"
	"fmt"
	"time"

	"github.com/gustavo-devfull/controle-pedidos/internal/produto"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// Erros de validação do fluxo de duplicação, checados antes de qualquer
// gravação.
var (
	ErrNumeroObrigatorio = errors.New("número do container é obrigatório")
	ErrNumeroDuplicado   = errors.New("já existe um container com esse número")
)

// Repository dá acesso aos containers. Exclusão aqui é física: container
// não tem exclusão lógica.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Criar(c *Container) error {
	if err := r.DB.Create(c).Error; err != nil {
		return err
	}
	// Espelha a chave no campo legado para registros novos já nascerem
	// consistentes.
	registro := c.ID
	c.RegistroID = &registro
	return r.DB.Save(c).Error
}

// Listar retorna os containers do mais recente para o mais antigo.
func (r *Repository) Listar() ([]Container, error) {
	var containers []Container
	err := r.DB.Order("created_at DESC").Find(&containers).Error
	return containers, err
}

func (r *Repository) BuscarPorID(id uint) (*Container, error) {
	var c Container
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// Atualizar substitui os campos do container preservando identidade e data
// de criação. O id é obrigatório.
func (r *Repository) Atualizar(id uint, novosDados *Container) error {
	if id == 0 {
		return ErrNumeroObrigatorio
	}
	existente, err := r.BuscarPorID(id)
	if err != nil {
		return err
	}
	novosDados.ID = existente.ID
	novosDados.RegistroID = existente.RegistroID
	novosDados.CreatedAt = existente.CreatedAt
	return r.DB.Save(novosDados).Error
}

// Excluir remove o registro de vez.
func (r *Repository) Excluir(id uint) error {
	existente, err := r.BuscarPorID(id)
	if err != nil {
		return err
	}
	return r.DB.Delete(existente).Error
}

// BuscarPorNumero devolve nil sem erro quando o número não existe.
func (r *Repository) BuscarPorNumero(numero string) (*Container, error) {
	var c Container
	err := r.DB.Where("numero_container = ?", numero).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Duplicar cria um container novo copiando todos os campos do original,
// exceto identidade, ETD/ETA e data do pedido. O número novo não pode
// colidir (sem diferenciar maiúsculas) com um container existente.
func (r *Repository) Duplicar(origemID uint, novoNumero string) (*Container, error) {
	if novoNumero == "" {
		return nil, ErrNumeroObrigatorio
	}

	origem, err := r.BuscarPorID(origemID)
	if err != nil {
		return nil, err
	}

	var colisoes int64
	if err := r.DB.Model(&Container{}).
		Where("LOWER(numero_container) = LOWER(?)", novoNumero).
		Count(&colisoes).Error; err != nil {
		return nil, err
	}
	if colisoes > 0 {
		return nil, ErrNumeroDuplicado
	}

	var novo Container
	if err := copier.Copy(&novo, origem); err != nil {
		return nil, fmt.Errorf("erro ao copiar container: %w", err)
	}
	novo.ID = 0
	novo.RegistroID = nil
	novo.NumeroContainer = novoNumero
	novo.Etd = ""
	novo.Eta = ""
	novo.DataPedido = time.Now().Format("2006-01-02")
	novo.CreatedAt = time.Time{}
	novo.UpdatedAt = time.Time{}

	if err := r.Criar(&novo); err != nil {
		return nil, err
	}
	return &novo, nil
}

// CorrigirRegistrosSemID reescreve o campo legado registro_id nos
// containers que ficaram sem ele por um caminho de gravação antigo.
// Devolve se houve conserto. Registros novos nunca precisam disso.
func (r *Repository) CorrigirRegistrosSemID() (bool, error) {
	var pendentes []Container
	if err := r.DB.Where("registro_id IS NULL").Find(&pendentes).Error; err != nil {
		return false, err
	}

	for i := range pendentes {
		registro := pendentes[i].ID
		pendentes[i].RegistroID = &registro
		if err := r.DB.Save(&pendentes[i]).Error; err != nil {
			return false, err
		}
	}
	return len(pendentes) > 0, nil
}

// ProdutosDoContainer lista os produtos ativos associados ao número do
// container. A associação é pelo valor exato do campo container do
// produto; não há integridade referencial no banco.
func (r *Repository) ProdutosDoContainer(numero string) ([]produto.Produto, error) {
	var produtos []produto.Produto
	err := r.DB.Where("ativo = ? AND container = ?", true, numero).Find(&produtos).Error
	return produtos, err
}

// TotalRmbCalculado soma o totalRmb dos produtos do container no momento
// da leitura. O valor não é gravado no container para não divergir dos
// produtos.
func (r *Repository) TotalRmbCalculado(numero string) (float64, error) {
	var total float64
	err := r.DB.Model(&produto.Produto{}).
		Where("ativo = ? AND container = ?", true, numero).
		Select("COALESCE(SUM(total_rmb), 0)").
		Scan(&total).Error
	return total, err
}

// ConsultaParaEmbarque adapta o repositório à consulta que o fluxo de
// embarque dos produtos precisa.
type ConsultaParaEmbarque struct {
	Repo *Repository
}

func (c ConsultaParaEmbarque) BuscarPorNumero(numero string) (*produto.DadosContainer, error) {
	encontrado, err := c.Repo.BuscarPorNumero(numero)
	if err != nil || encontrado == nil {
		return nil, err
	}
	return &produto.DadosContainer{Numero: encontrado.NumeroContainer, Eta: encontrado.Eta}, nil
}

func (c ConsultaParaEmbarque) HaContainers() (bool, error) {
	var quantidade int64
	if err := c.Repo.DB.Model(&Container{}).Count(&quantidade).Error; err != nil {
		return false, err
	}
	return quantidade > 0, nil
}
