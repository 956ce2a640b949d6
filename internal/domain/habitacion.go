package domain

import "time"

// EstadoHabitacion representa el estado operativo de una habitación.
type EstadoHabitacion string

const (
	HabitacionDisponible    EstadoHabitacion = "DISPONIBLE"
	HabitacionOcupada       EstadoHabitacion = "OCUPADA"
	HabitacionMantenimiento EstadoHabitacion = "MANTENIMIENTO"
)

// ParseEstadoHabitacion convierte un texto al estado correspondiente.
// Un texto vacío se interpreta como DISPONIBLE.
func ParseEstadoHabitacion(texto string) (EstadoHabitacion, error) {
	switch normalizar(texto) {
	case "":
		return HabitacionDisponible, nil
	case string(HabitacionDisponible):
		return HabitacionDisponible, nil
	case string(HabitacionOcupada):
		return HabitacionOcupada, nil
	case string(HabitacionMantenimiento):
		return HabitacionMantenimiento, nil
	default:
		return "", NewValidationError("estado de habitación no válido: %s", texto)
	}
}

// EsMantenimiento indica si la habitación está fuera de servicio.
// El mantenimiento nunca es sobrescrito por la sincronización automática.
func (e EstadoHabitacion) EsMantenimiento() bool {
	return e == HabitacionMantenimiento
}

// Habitacion representa una habitación del hotel.
type Habitacion struct {
	ID             int              `json:"id"`
	Numero         string           `json:"numero"`
	Tipo           string           `json:"tipo"`
	PrecioPorNoche float64          `json:"precioPorNoche"`
	Estado         EstadoHabitacion `json:"estado"`
}

// HabitacionRepository define las operaciones de datos de habitaciones
type HabitacionRepository interface {
	// GetHabitacionByID obtiene una habitación por su ID
	GetHabitacionByID(id int) (*Habitacion, error)
	// GetHabitacionByNumero obtiene una habitación por su número único
	GetHabitacionByNumero(numero string) (*Habitacion, error)
	// GetAllHabitaciones retorna todas las habitaciones
	GetAllHabitaciones() ([]Habitacion, error)
	// CreateHabitacion crea una nueva habitación
	CreateHabitacion(h *Habitacion) error
	// UpdateHabitacion actualiza los datos de una habitación
	UpdateHabitacion(h *Habitacion) error
	// UpdateEstado actualiza solo el estado de una habitación
	UpdateEstado(id int, estado EstadoHabitacion) error
	// ContarOcupadas cuenta las habitaciones con una reserva viva que cubre
	// la fecha indicada. Consulta de agregación para reportes, fuera del
	// camino por-transición del sincronizador.
	ContarOcupadas(fecha time.Time) (int, error)
}
