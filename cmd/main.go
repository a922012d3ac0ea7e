package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gustavo-devfull/controle-pedidos/internal/auth"
	"github.com/gustavo-devfull/controle-pedidos/internal/catalogo"
	"github.com/gustavo-devfull/controle-pedidos/internal/config"
	"github.com/gustavo-devfull/controle-pedidos/internal/container"
	"github.com/gustavo-devfull/controle-pedidos/internal/painel"
	"github.com/gustavo-devfull/controle-pedidos/internal/pedido"
	"github.com/gustavo-devfull/controle-pedidos/internal/produto"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado, usando variáveis do ambiente")
	}

	cfg, err := config.Carregar()
	if err != nil {
		log.Fatal("Erro na configuração:", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := db.AutoMigrate(
		&produto.Produto{},
		&produto.HistoricoStatus{},
		&container.Container{},
		&auth.Usuario{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	// Catálogo externo (real ou simulado)
	var cat catalogo.Catalogo
	if cfg.UsarCatalogoMock {
		log.Println("Catálogo externo em modo simulado")
		cat = catalogo.NewMock()
	} else {
		cat = catalogo.NewClienteHTTP(cfg.CatalogoURL)
	}

	// Repositórios e serviços
	produtoRepo := produto.NewRepository(db)
	containerRepo := container.NewRepository(db)
	usuarioRepo := auth.NewRepository(db)
	tokens := auth.NewTokens(cfg.JWTSecret)

	servicoStatus := produto.NewServicoStatus(produtoRepo, container.ConsultaParaEmbarque{Repo: containerRepo})
	sincronizador := produto.NewSincronizador(produtoRepo, cat)
	exportador := pedido.NewExportador(produtoRepo, pedido.NewBaixadorImagens(cfg.ImagensBaseURL))

	// Handlers
	produtoHandler := produto.NewHandler(produtoRepo, servicoStatus, sincronizador)
	containerHandler := container.NewHandler(containerRepo)
	catalogoHandler := catalogo.NewHandler(cat)
	pedidoHandler := pedido.NewHandler(exportador)
	painelHandler := painel.NewHandler(produtoRepo, containerRepo)
	authHandler := auth.NewHandler(usuarioRepo, tokens)

	// Router
	r := mux.NewRouter()

	r.HandleFunc("/login", authHandler.Login).Methods("POST")

	api := r.NewRoute().Subrouter()
	api.Use(tokens.Middleware)

	// Criar usuário exige um usuário já autenticado; o primeiro operador
	// é semeado direto no banco.
	api.HandleFunc("/usuarios", authHandler.CriarUsuario).Methods("POST")

	// Rotas de produtos
	api.HandleFunc("/produtos", produtoHandler.CriarProduto).Methods("POST")
	api.HandleFunc("/produtos", produtoHandler.ListarProdutos).Methods("GET")
	api.HandleFunc("/produtos/{id}", produtoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/produtos/{id}", produtoHandler.AtualizarProduto).Methods("PUT")
	api.HandleFunc("/produtos/{id}", produtoHandler.ExcluirProduto).Methods("DELETE")
	api.HandleFunc("/produtos/{id}/status", produtoHandler.MudarStatus).Methods("PUT")
	api.HandleFunc("/produtos/{id}/embarque", produtoHandler.ConfirmarEmbarque).Methods("POST")
	api.HandleFunc("/produtos/{id}/historico", produtoHandler.ListarHistorico).Methods("GET")
	api.HandleFunc("/produtos/{id}/vincular", produtoHandler.VincularExterno).Methods("POST")
	api.HandleFunc("/produtos/{id}/desvincular", produtoHandler.Desvincular).Methods("POST")
	api.HandleFunc("/sincronizacao", produtoHandler.SincronizarTodos).Methods("POST")

	// Rotas de containers
	api.HandleFunc("/containers", containerHandler.CriarContainer).Methods("POST")
	api.HandleFunc("/containers", containerHandler.ListarContainers).Methods("GET")
	api.HandleFunc("/containers/reparar-ids", containerHandler.RepararIDs).Methods("POST")
	api.HandleFunc("/containers/{id:[0-9]+}", containerHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/containers/{id:[0-9]+}", containerHandler.AtualizarContainer).Methods("PUT")
	api.HandleFunc("/containers/{id:[0-9]+}", containerHandler.ExcluirContainer).Methods("DELETE")
	api.HandleFunc("/containers/{id:[0-9]+}/duplicar", containerHandler.DuplicarContainer).Methods("POST")
	api.HandleFunc("/containers/{numero}/produtos", containerHandler.ListarProdutosDoContainer).Methods("GET")
	api.HandleFunc("/containers/{numero}/total-rmb", containerHandler.TotalRmb).Methods("GET")

	// Catálogo externo, geração de pedido e painel
	api.HandleFunc("/catalogo", catalogoHandler.Buscar).Methods("GET")
	api.HandleFunc("/pedidos/gerar", pedidoHandler.GerarPedido).Methods("POST")
	api.HandleFunc("/painel/resumo", painelHandler.Resumo).Methods("GET")

	manipulador := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	// Inicia servidor
	fmt.Printf("Servidor rodando em http://localhost:%s\n", cfg.PortaHTTP)
	log.Fatal(http.ListenAndServe(":"+cfg.PortaHTTP, manipulador))
}
