package calculo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderQtyUn(t *testing.T) {
	assert.Equal(t, 600.0, OrderQtyUn(50, 12))
	assert.Equal(t, 0.0, OrderQtyUn(0, 12))
	assert.Equal(t, 0.0, OrderQtyUn(math.NaN(), 12))
}

func TestTotalRmb(t *testing.T) {
	// 600 unidades a ¥ 3,35; a conta em decimal evita 2009.9999...
	assert.Equal(t, 2010.0, TotalRmb(600, 3.35))
	assert.Equal(t, 0.0, TotalRmb(600, math.Inf(1)))
}

func TestPesosEVolume(t *testing.T) {
	assert.Equal(t, 125.0, TotalPesoLiq(2.5, 50))
	assert.Equal(t, 150.0, TotalPesoBruto(3.0, 50))
	assert.InDelta(t, 4.1, CbmTotal(0.082, 50), 1e-9)
}
