package application

import (
	"fmt"
	"log"
	"time"

	"github.com/Maxito7/gestion-hotelera/internal/domain"
)

// HabitacionService administra las habitaciones y deriva su estado a partir
// de las transiciones de reservas. El estado MANTENIMIENTO solo se fija o
// retira de forma explícita y nunca es sobrescrito por la sincronización.
type HabitacionService struct {
	repo      domain.HabitacionRepository
	auditoria domain.AuditoriaSink
}

func NewHabitacionService(repo domain.HabitacionRepository, auditoria domain.AuditoriaSink) *HabitacionService {
	return &HabitacionService{
		repo:      repo,
		auditoria: auditoria,
	}
}

// BuscarHabitacionPorID obtiene una habitación por su ID
func (s *HabitacionService) BuscarHabitacionPorID(id int) (*domain.Habitacion, error) {
	return s.repo.GetHabitacionByID(id)
}

// GetAllHabitaciones retorna todas las habitaciones
func (s *HabitacionService) GetAllHabitaciones() ([]domain.Habitacion, error) {
	return s.repo.GetAllHabitaciones()
}

// CrearHabitacion registra una habitación nueva con número único.
func (s *HabitacionService) CrearHabitacion(h *domain.Habitacion) error {
	if err := s.validarHabitacion(h); err != nil {
		return err
	}

	existente, err := s.repo.GetHabitacionByNumero(h.Numero)
	if err != nil && domain.IsNotFoundError(err) == nil {
		return fmt.Errorf("error al verificar número de habitación: %w", err)
	}
	if existente != nil {
		return domain.NewValidationError("el número de habitación '%s' ya está en uso", h.Numero)
	}

	if h.Estado == "" {
		h.Estado = domain.HabitacionDisponible
	}

	if err := s.repo.CreateHabitacion(h); err != nil {
		return err
	}

	s.auditoria.RegistrarAccion("CREACION_HABITACION",
		fmt.Sprintf("Nueva habitación registrada: #%s (%s, $%.2f)", h.Numero, h.Tipo, h.PrecioPorNoche),
		"Habitacion", h.ID)

	log.Printf("Habitación creada: ID=%d, Número=%s", h.ID, h.Numero)
	return nil
}

// ActualizarHabitacion actualiza los datos de una habitación existente.
func (s *HabitacionService) ActualizarHabitacion(h *domain.Habitacion) error {
	if err := s.validarHabitacion(h); err != nil {
		return err
	}

	existente, err := s.repo.GetHabitacionByID(h.ID)
	if err != nil {
		return err
	}

	if existente.Numero != h.Numero {
		otra, err := s.repo.GetHabitacionByNumero(h.Numero)
		if err != nil && domain.IsNotFoundError(err) == nil {
			return fmt.Errorf("error al verificar número de habitación: %w", err)
		}
		if otra != nil && otra.ID != h.ID {
			return domain.NewValidationError("el número de habitación '%s' ya está en uso", h.Numero)
		}
	}

	if err := s.repo.UpdateHabitacion(h); err != nil {
		return err
	}

	s.auditoria.RegistrarAccion("ACTUALIZACION_HABITACION",
		fmt.Sprintf("Habitación #%s (ID: %d) actualizada. Nuevo estado: %s", h.Numero, h.ID, h.Estado),
		"Habitacion", h.ID)

	return nil
}

// ActualizarEstadoHabitacion cambia el estado de forma explícita (incluye
// poner o quitar mantenimiento).
func (s *HabitacionService) ActualizarEstadoHabitacion(id int, estado domain.EstadoHabitacion) error {
	habitacion, err := s.repo.GetHabitacionByID(id)
	if err != nil {
		return err
	}

	estadoAnterior := habitacion.Estado
	if err := s.repo.UpdateEstado(id, estado); err != nil {
		return err
	}

	s.auditoria.RegistrarAccion("CAMBIO_ESTADO_HABITACION",
		fmt.Sprintf("Estado de habitación #%s (ID: %d) cambiado de '%s' a '%s'",
			habitacion.Numero, id, estadoAnterior, estado),
		"Habitacion", id)

	return nil
}

// SincronizarEstadoPorReserva recalcula el estado de la habitación tras una
// transición de reserva. Como las reservas vivas de una habitación nunca se
// traslapan, la ocupación en cualquier instante es inequívoca y basta una
// actualización condicional, sin re-agregar sobre todas las reservas.
func (s *HabitacionService) SincronizarEstadoPorReserva(reserva *domain.Reserva, hoy time.Time) error {
	habitacion, err := s.repo.GetHabitacionByID(reserva.HabitacionID)
	if err != nil {
		return err
	}
	if habitacion.Estado.EsMantenimiento() {
		return nil
	}

	switch {
	case reserva.Estado.EsViva() && !reserva.FechaInicio.After(hoy):
		return s.repo.UpdateEstado(habitacion.ID, domain.HabitacionOcupada)
	case reserva.Estado.EsViva():
		// Reserva pendiente con inicio futuro: la habitación sigue libre hoy
		return s.repo.UpdateEstado(habitacion.ID, domain.HabitacionDisponible)
	default:
		return s.repo.UpdateEstado(habitacion.ID, domain.HabitacionDisponible)
	}
}

// LiberarHabitacion deja la habitación disponible, salvo que esté en
// mantenimiento.
func (s *HabitacionService) LiberarHabitacion(id int) error {
	habitacion, err := s.repo.GetHabitacionByID(id)
	if err != nil {
		return err
	}
	if habitacion.Estado.EsMantenimiento() {
		return nil
	}
	return s.repo.UpdateEstado(id, domain.HabitacionDisponible)
}

// OcuparHabitacion marca la habitación como ocupada, salvo mantenimiento.
func (s *HabitacionService) OcuparHabitacion(id int) error {
	habitacion, err := s.repo.GetHabitacionByID(id)
	if err != nil {
		return err
	}
	if habitacion.Estado.EsMantenimiento() {
		return nil
	}
	return s.repo.UpdateEstado(id, domain.HabitacionOcupada)
}

// ContarOcupadasAhora cuenta las habitaciones ocupadas en la fecha dada.
// Agregación para reportes; no forma parte del camino por-transición.
func (s *HabitacionService) ContarOcupadasAhora(fecha time.Time) (int, error) {
	return s.repo.ContarOcupadas(fecha)
}

func (s *HabitacionService) validarHabitacion(h *domain.Habitacion) error {
	if h == nil {
		return domain.NewValidationError("la habitación no puede ser nula")
	}
	if h.Numero == "" {
		return domain.NewValidationError("el número de habitación es requerido")
	}
	if h.PrecioPorNoche <= 0 {
		return domain.NewValidationError("el precio por noche debe ser mayor a 0")
	}
	return nil
}
