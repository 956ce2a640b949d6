package domain

import (
	"time"
)

// EstadoReserva representa el estado de una reserva dentro de su ciclo de vida.
type EstadoReserva string

const (
	ReservaPendiente  EstadoReserva = "PENDIENTE"
	ReservaActiva     EstadoReserva = "ACTIVA"
	ReservaFinalizada EstadoReserva = "FINALIZADA"
	ReservaCancelada  EstadoReserva = "CANCELADA"
)

// ParseEstadoReserva convierte un texto al estado correspondiente,
// ignorando mayúsculas/minúsculas y espacios.
func ParseEstadoReserva(texto string) (EstadoReserva, error) {
	switch normalizar(texto) {
	case string(ReservaPendiente):
		return ReservaPendiente, nil
	case string(ReservaActiva):
		return ReservaActiva, nil
	case string(ReservaFinalizada):
		return ReservaFinalizada, nil
	case string(ReservaCancelada):
		return ReservaCancelada, nil
	default:
		return "", NewValidationError("estado de reserva no válido: %s", texto)
	}
}

// EsViva indica si la reserva ocupa la habitación para efectos de
// disponibilidad (pendiente o activa).
func (e EstadoReserva) EsViva() bool {
	return e == ReservaPendiente || e == ReservaActiva
}

// EsTerminal indica si la reserva ya no admite transiciones.
func (e EstadoReserva) EsTerminal() bool {
	return e == ReservaFinalizada || e == ReservaCancelada
}

// PuedeTransicionarA valida la tabla de transiciones del ciclo de vida.
func (e EstadoReserva) PuedeTransicionarA(destino EstadoReserva) bool {
	switch destino {
	case ReservaActiva:
		return e == ReservaPendiente
	case ReservaFinalizada:
		// Finalizar es idempotente: cualquier estado no cancelado puede llegar
		return e != ReservaCancelada
	case ReservaCancelada:
		return e == ReservaPendiente || e == ReservaActiva
	}
	return false
}

// Reserva representa una reserva de habitación.
type Reserva struct {
	ID                int               `json:"id"`
	ClienteID         int               `json:"clienteId"`
	HabitacionID      int               `json:"habitacionId"`
	FechaInicio       time.Time         `json:"fechaInicio"`
	FechaFin          time.Time         `json:"fechaFin"`
	Estado            EstadoReserva     `json:"estado"`
	TotalPagar        float64           `json:"totalPagar"`
	DescuentoID       *int              `json:"descuentoId,omitempty"`
	MontoDescuento    float64           `json:"montoDescuento"`
	FechaCheckinReal  *time.Time        `json:"fechaCheckinReal,omitempty"`
	FechaCheckoutReal *time.Time        `json:"fechaCheckoutReal,omitempty"`
	Servicios         []ReservaServicio `json:"servicios,omitempty"`
}

// ReservaServicio representa un servicio adicional contratado en la reserva,
// con una opción libre elegida por el cliente (p.ej. horario del desayuno).
type ReservaServicio struct {
	ServicioID int     `json:"servicioId"`
	Nombre     string  `json:"nombre"`
	Precio     float64 `json:"precio"`
	Opcion     string  `json:"opcion,omitempty"`
}

// TotalServicios suma el precio de los servicios contratados.
func (r *Reserva) TotalServicios() float64 {
	total := 0.0
	for _, s := range r.Servicios {
		total += s.Precio
	}
	return total
}

// HayTraslape determina si dos rangos de fechas se cruzan, con límites
// inclusivos en ambos extremos: el día de salida de una reserva no queda
// disponible para otra.
func HayTraslape(inicio1, fin1, inicio2, fin2 time.Time) bool {
	return !inicio1.After(fin2) && !fin1.Before(inicio2)
}

// CalcularDiasEstadia retorna las noches facturables entre dos fechas.
// Nunca retorna menos de 1: una estadía de cero días se cobra como una noche.
func CalcularDiasEstadia(inicio, fin time.Time) int {
	dias := int(fin.Sub(inicio).Hours() / 24)
	if dias < 1 {
		return 1
	}
	return dias
}

// CalcularTotalPagar calcula el precio base de la estadía.
func CalcularTotalPagar(precioPorNoche float64, dias int) float64 {
	return precioPorNoche * float64(dias)
}

// ReservaRepository define las operaciones disponibles con las reservas
type ReservaRepository interface {
	// GetReservaByID obtiene una reserva por su ID
	GetReservaByID(id int) (*Reserva, error)
	// GuardarConVerificacion inserta o actualiza la reserva dentro de una
	// transacción que bloquea la habitación y re-verifica el traslape de
	// fechas. Retorna ConflictError si otra reserva viva ocupa el rango.
	GuardarConVerificacion(reserva *Reserva) error
	// FindConflictivas retorna las reservas vivas de la habitación que se
	// traslapan con el rango dado, excluyendo la reserva indicada (0 = ninguna),
	// en orden de inserción.
	FindConflictivas(habitacionID int, inicio, fin time.Time, excluirID int) ([]Reserva, error)
	// UpdateReservaEstado actualiza solo el estado de una reserva
	UpdateReservaEstado(id int, estado EstadoReserva) error
	// RegistrarCheckIn marca la reserva como activa y estampa el momento real de entrada
	RegistrarCheckIn(id int, momento time.Time) error
	// RegistrarCheckOut marca la reserva como finalizada y estampa la salida
	// real solo si aún no fue registrada
	RegistrarCheckOut(id int, momento time.Time) error
	// AplicarDescuento asocia el descuento a la reserva e incrementa su uso en
	// una sola transacción. Retorna StateError si la reserva ya tiene descuento
	// o si los usos del código se agotaron.
	AplicarDescuento(reservaID int, descuentoID int, monto float64) error
	// AsignarServicios reemplaza los servicios contratados de la reserva
	AsignarServicios(reservaID int, servicios []ReservaServicio) error
	// GetReservasCliente obtiene todas las reservas de un cliente
	GetReservasCliente(clienteID int) ([]Reserva, error)
	// GetLlegadas obtiene reservas pendientes cuya fecha de inicio es la indicada
	GetLlegadas(fecha time.Time) ([]Reserva, error)
	// GetSalidas obtiene reservas activas cuya fecha de fin es la indicada
	GetSalidas(fecha time.Time) ([]Reserva, error)
	// FinalizarExpiradas finaliza reservas activas cuya fecha de fin ya pasó.
	// Retorna la cantidad de reservas afectadas.
	FinalizarExpiradas(hoy time.Time) (int, error)
}
