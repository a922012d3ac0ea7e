package pedido

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Imagem é uma foto de produto já baixada, com as dimensões originais.
type Imagem struct {
	Bytes   []byte
	Largura int
	Altura  int
}

// BaixadorImagens busca as fotos dos produtos no host de imagens, pelo
// padrão {base}/{referencia}.jpg.
type BaixadorImagens struct {
	BaseURL string
	Cliente *http.Client
}

func NewBaixadorImagens(baseURL string) *BaixadorImagens {
	return &BaixadorImagens{BaseURL: strings.TrimSuffix(baseURL, "/"), Cliente: http.DefaultClient}
}

// BaixarTodas busca as imagens de todas as referências em paralelo.
// O resultado é indexado pela posição da referência; falha de download ou
// de decodificação vira ausência no mapa, nunca erro: 404 no host de
// imagens é esperado.
func (b *BaixadorImagens) BaixarTodas(ctx context.Context, referencias []string) map[int]Imagem {
	resultados := make([]*Imagem, len(referencias))

	g, ctx := errgroup.WithContext(ctx)
	for i, ref := range referencias {
		i, ref := i, ref
		g.Go(func() error {
			img, err := b.baixar(ctx, ref)
			if err != nil {
				log.Printf("pedido: imagem de %s indisponível: %v", ref, err)
				return nil
			}
			resultados[i] = img
			return nil
		})
	}
	_ = g.Wait()

	imagens := make(map[int]Imagem, len(referencias))
	for i, img := range resultados {
		if img != nil {
			imagens[i] = *img
		}
	}
	return imagens
}

func (b *BaixadorImagens) baixar(ctx context.Context, referencia string) (*Imagem, error) {
	if referencia == "" {
		return nil, fmt.Errorf("referência vazia")
	}

	endereco := fmt.Sprintf("%s/%s.jpg", b.BaseURL, referencia)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endereco, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.Cliente.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	dados, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(dados))
	if err != nil {
		return nil, fmt.Errorf("imagem inválida: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("dimensões inválidas %dx%d", cfg.Width, cfg.Height)
	}

	return &Imagem{Bytes: dados, Largura: cfg.Width, Altura: cfg.Height}, nil
}
