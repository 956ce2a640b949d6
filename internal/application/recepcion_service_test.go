package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxito7/gestion-hotelera/internal/domain"
)

func reservaParaCheckIn(t *testing.T, e *entornoPrueba, inicio, fin time.Time) *domain.Reserva {
	t.Helper()
	h := habitacionEstandar(e)
	reserva, err := e.reservaService.CrearOActualizarReserva(reservaEjemplo(h.ID, inicio, fin))
	require.NoError(t, err)
	return reserva
}

func TestRealizarCheckIn(t *testing.T) {
	e := nuevoEntorno(fecha(2026, 3, 10))
	reserva := reservaParaCheckIn(t, e, fecha(2026, 3, 10), fecha(2026, 3, 15))

	activa, err := e.recepcionService.RealizarCheckIn(reserva.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.ReservaActiva, activa.Estado)
	require.NotNil(t, activa.FechaCheckinReal)

	habitacion, err := e.habitacionRepo.GetHabitacionByID(reserva.HabitacionID)
	require.NoError(t, err)
	assert.Equal(t, domain.HabitacionOcupada, habitacion.Estado)

	assert.Contains(t, e.auditoria.tipos(), "CHECKIN_RESERVA")
	assert.Contains(t, e.notificador.tipos(), "CHECKIN")
}

func TestRealizarCheckInAntesDeFechaInicio(t *testing.T) {
	e := nuevoEntorno(fecha(2026, 3, 5))
	reserva := reservaParaCheckIn(t, e, fecha(2026, 3, 10), fecha(2026, 3, 15))

	_, err := e.recepcionService.RealizarCheckIn(reserva.ID)
	require.Error(t, err)
	assert.NotNil(t, domain.IsStateError(err))
	assert.Contains(t, err.Error(), "fecha de inicio")
}

func TestRealizarCheckInReservaNoPendiente(t *testing.T) {
	e := nuevoEntorno(fecha(2026, 3, 10))
	reserva := reservaParaCheckIn(t, e, fecha(2026, 3, 10), fecha(2026, 3, 15))

	_, err := e.recepcionService.RealizarCheckIn(reserva.ID)
	require.NoError(t, err)

	// Un segundo check-in de la misma reserva es una transición ilegal
	_, err = e.recepcionService.RealizarCheckIn(reserva.ID)
	require.Error(t, err)
	assert.NotNil(t, domain.IsStateError(err))

	// Tampoco sobre una reserva cancelada
	cancelada := reservaParaCheckIn(t, e, fecha(2026, 3, 20), fecha(2026, 3, 25))
	require.NoError(t, e.reservaService.CancelarReserva(cancelada.ID, "RECEPCIONISTA"))
	_, err = e.recepcionService.RealizarCheckIn(cancelada.ID)
	require.Error(t, err)
	assert.NotNil(t, domain.IsStateError(err))
}

func TestRealizarCheckOut(t *testing.T) {
	e := nuevoEntorno(fecha(2026, 3, 10))
	reserva := reservaParaCheckIn(t, e, fecha(2026, 3, 10), fecha(2026, 3, 15))

	_, err := e.recepcionService.RealizarCheckIn(reserva.ID)
	require.NoError(t, err)

	finalizada, err := e.recepcionService.RealizarCheckOut(reserva.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.ReservaFinalizada, finalizada.Estado)
	require.NotNil(t, finalizada.FechaCheckoutReal)

	habitacion, err := e.habitacionRepo.GetHabitacionByID(reserva.HabitacionID)
	require.NoError(t, err)
	assert.Equal(t, domain.HabitacionDisponible, habitacion.Estado)

	// La salida dispara la notificación de check-out y la encuesta
	tipos := e.notificador.tipos()
	assert.Contains(t, tipos, "CHECKOUT")
	assert.Contains(t, tipos, "ENCUESTA")
}

func TestRealizarCheckOutReservaPendiente(t *testing.T) {
	e := nuevoEntorno(fecha(2026, 3, 10))
	reserva := reservaParaCheckIn(t, e, fecha(2026, 3, 10), fecha(2026, 3, 15))

	_, err := e.recepcionService.RealizarCheckOut(reserva.ID)
	require.Error(t, err)
	assert.NotNil(t, domain.IsStateError(err))
	assert.Contains(t, err.Error(), "activas")
}

func TestLlegadasYSalidasDelDia(t *testing.T) {
	e := nuevoEntorno(fecha(2026, 3, 10))

	llega := reservaParaCheckIn(t, e, fecha(2026, 3, 10), fecha(2026, 3, 15))

	h2 := e.habitacionRepo.agregar(domain.Habitacion{
		Numero: "102", Tipo: "SIMPLE", PrecioPorNoche: 90, Estado: domain.HabitacionDisponible,
	})
	sale, err := e.reservaService.CrearOActualizarReserva(
		reservaEjemplo(h2.ID, fecha(2026, 3, 5), fecha(2026, 3, 10)))
	require.NoError(t, err)
	require.NoError(t, e.reservaRepo.UpdateReservaEstado(sale.ID, domain.ReservaActiva))

	llegadas, err := e.recepcionService.LlegadasHoy()
	require.NoError(t, err)
	require.Len(t, llegadas, 1)
	assert.Equal(t, llega.ID, llegadas[0].ID)

	salidas, err := e.recepcionService.SalidasHoy()
	require.NoError(t, err)
	require.Len(t, salidas, 1)
	assert.Equal(t, sale.ID, salidas[0].ID)
}

func TestOcupacionActual(t *testing.T) {
	e := nuevoEntorno(fecha(2026, 3, 10))
	reserva := reservaParaCheckIn(t, e, fecha(2026, 3, 10), fecha(2026, 3, 15))

	ocupadas, err := e.recepcionService.OcupacionActual()
	require.NoError(t, err)
	assert.Equal(t, 1, ocupadas)

	_, err = e.recepcionService.RealizarCheckIn(reserva.ID)
	require.NoError(t, err)

	ocupadas, err = e.recepcionService.OcupacionActual()
	require.NoError(t, err)
	assert.Equal(t, 1, ocupadas)
}
