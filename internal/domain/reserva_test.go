package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fecha(anio int, mes time.Month, dia int) time.Time {
	return time.Date(anio, mes, dia, 0, 0, 0, 0, time.UTC)
}

func TestHayTraslape(t *testing.T) {
	casos := []struct {
		nombre   string
		inicio1  time.Time
		fin1     time.Time
		inicio2  time.Time
		fin2     time.Time
		traslape bool
	}{
		{
			nombre:  "rangos idénticos",
			inicio1: fecha(2026, 3, 10), fin1: fecha(2026, 3, 15),
			inicio2: fecha(2026, 3, 10), fin2: fecha(2026, 3, 15),
			traslape: true,
		},
		{
			nombre:  "cruce parcial",
			inicio1: fecha(2026, 3, 10), fin1: fecha(2026, 3, 15),
			inicio2: fecha(2026, 3, 14), fin2: fecha(2026, 3, 20),
			traslape: true,
		},
		{
			nombre:  "día de salida igual al de entrada",
			inicio1: fecha(2026, 3, 10), fin1: fecha(2026, 3, 15),
			inicio2: fecha(2026, 3, 15), fin2: fecha(2026, 3, 20),
			traslape: true,
		},
		{
			nombre:  "uno contenido en el otro",
			inicio1: fecha(2026, 3, 10), fin1: fecha(2026, 3, 20),
			inicio2: fecha(2026, 3, 12), fin2: fecha(2026, 3, 14),
			traslape: true,
		},
		{
			nombre:  "rangos separados",
			inicio1: fecha(2026, 3, 10), fin1: fecha(2026, 3, 15),
			inicio2: fecha(2026, 3, 16), fin2: fecha(2026, 3, 20),
			traslape: false,
		},
		{
			nombre:  "segundo rango antes del primero",
			inicio1: fecha(2026, 3, 10), fin1: fecha(2026, 3, 15),
			inicio2: fecha(2026, 3, 1), fin2: fecha(2026, 3, 9),
			traslape: false,
		},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.traslape, HayTraslape(c.inicio1, c.fin1, c.inicio2, c.fin2))
			// La relación es simétrica
			assert.Equal(t, c.traslape, HayTraslape(c.inicio2, c.fin2, c.inicio1, c.fin1))
		})
	}
}

func TestCalcularDiasEstadia(t *testing.T) {
	assert.Equal(t, 5, CalcularDiasEstadia(fecha(2026, 3, 10), fecha(2026, 3, 15)))
	assert.Equal(t, 1, CalcularDiasEstadia(fecha(2026, 3, 10), fecha(2026, 3, 11)))

	// Misma fecha de entrada y salida: se cobra una noche
	assert.Equal(t, 1, CalcularDiasEstadia(fecha(2026, 3, 10), fecha(2026, 3, 10)))
}

func TestCalcularTotalPagar(t *testing.T) {
	assert.Equal(t, 750.0, CalcularTotalPagar(150.0, 5))
	assert.Equal(t, 150.0, CalcularTotalPagar(150.0, 1))
}

func TestPuedeTransicionarA(t *testing.T) {
	casos := []struct {
		desde     EstadoReserva
		hacia     EstadoReserva
		permitida bool
	}{
		{ReservaPendiente, ReservaActiva, true},
		{ReservaPendiente, ReservaCancelada, true},
		{ReservaPendiente, ReservaFinalizada, true},
		{ReservaActiva, ReservaFinalizada, true},
		{ReservaActiva, ReservaCancelada, true},
		{ReservaActiva, ReservaActiva, false},
		{ReservaFinalizada, ReservaActiva, false},
		{ReservaFinalizada, ReservaCancelada, false},
		{ReservaFinalizada, ReservaFinalizada, true},
		{ReservaCancelada, ReservaActiva, false},
		{ReservaCancelada, ReservaFinalizada, false},
		{ReservaCancelada, ReservaCancelada, false},
	}

	for _, c := range casos {
		assert.Equal(t, c.permitida, c.desde.PuedeTransicionarA(c.hacia),
			"%s -> %s", c.desde, c.hacia)
	}
}

func TestParseEstadoReserva(t *testing.T) {
	estado, err := ParseEstadoReserva("  pendiente ")
	assert.NoError(t, err)
	assert.Equal(t, ReservaPendiente, estado)

	_, err = ParseEstadoReserva("RESERVADA")
	assert.Error(t, err)
	assert.NotNil(t, IsValidationError(err))
}

func TestTotalServicios(t *testing.T) {
	reserva := &Reserva{
		Servicios: []ReservaServicio{
			{ServicioID: 1, Nombre: "Desayuno", Precio: 25},
			{ServicioID: 2, Nombre: "Spa", Precio: 80},
		},
	}
	assert.Equal(t, 105.0, reserva.TotalServicios())

	vacia := &Reserva{}
	assert.Equal(t, 0.0, vacia.TotalServicios())
}
