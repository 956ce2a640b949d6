package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }

func descuentoVigente() *Descuento {
	return &Descuento{
		ID:          1,
		Codigo:      "VERANO20",
		Tipo:        DescuentoPorcentaje,
		Valor:       20,
		FechaInicio: fecha(2026, 1, 1),
		FechaFin:    fecha(2026, 12, 31),
		Activo:      true,
	}
}

func TestCalcularDescuentoPorcentaje(t *testing.T) {
	hoy := fecha(2026, 6, 15)

	d := descuentoVigente()
	assert.Equal(t, 200.0, d.CalcularDescuento(1000, hoy))

	// El tope de descuento limita el porcentaje
	d.MontoMaximoDescuento = ptrFloat(50)
	assert.Equal(t, 50.0, d.CalcularDescuento(1000, hoy))
}

func TestCalcularDescuentoMontoFijo(t *testing.T) {
	hoy := fecha(2026, 6, 15)

	d := descuentoVigente()
	d.Tipo = DescuentoMontoFijo
	d.Valor = 150

	assert.Equal(t, 150.0, d.CalcularDescuento(1000, hoy))

	// Nunca descuenta más que la base
	assert.Equal(t, 100.0, d.CalcularDescuento(100, hoy))
}

func TestCalcularDescuentoMontoMinimo(t *testing.T) {
	hoy := fecha(2026, 6, 15)

	d := descuentoVigente()
	d.MontoMinimo = ptrFloat(500)

	assert.Equal(t, 0.0, d.CalcularDescuento(499.99, hoy))
	assert.Equal(t, 100.0, d.CalcularDescuento(500, hoy))
}

func TestCalcularDescuentoBaseInvalida(t *testing.T) {
	hoy := fecha(2026, 6, 15)
	d := descuentoVigente()

	assert.Equal(t, 0.0, d.CalcularDescuento(0, hoy))
	assert.Equal(t, 0.0, d.CalcularDescuento(-100, hoy))
}

func TestEsValido(t *testing.T) {
	hoy := fecha(2026, 6, 15)

	d := descuentoVigente()
	assert.True(t, d.EsValido(hoy))

	inactivo := descuentoVigente()
	inactivo.Activo = false
	assert.False(t, inactivo.EsValido(hoy))

	fueraDeVigencia := descuentoVigente()
	assert.False(t, fueraDeVigencia.EsValido(fecha(2027, 1, 1)))
	assert.False(t, fueraDeVigencia.EsValido(fecha(2025, 12, 31)))

	// Los límites de vigencia son inclusivos
	assert.True(t, descuentoVigente().EsValido(fecha(2026, 1, 1)))
	assert.True(t, descuentoVigente().EsValido(fecha(2026, 12, 31)))
}

func TestEsValidoUsosAgotados(t *testing.T) {
	hoy := fecha(2026, 6, 15)

	d := descuentoVigente()
	d.UsosMaximos = ptrInt(5)
	d.UsosActuales = 4
	assert.True(t, d.EsValido(hoy))

	d.UsosActuales = 5
	assert.False(t, d.EsValido(hoy))
	assert.Equal(t, 0.0, d.CalcularDescuento(1000, hoy))
}

func TestNormalizarCodigo(t *testing.T) {
	assert.Equal(t, "VERANO20", NormalizarCodigo("  verano20 "))
	assert.Equal(t, "", NormalizarCodigo("   "))
}

func TestParseTipoDescuento(t *testing.T) {
	tipo, err := ParseTipoDescuento("porcentaje")
	assert.NoError(t, err)
	assert.Equal(t, DescuentoPorcentaje, tipo)

	_, err = ParseTipoDescuento("CUPON")
	assert.Error(t, err)
	assert.NotNil(t, IsValidationError(err))
}
