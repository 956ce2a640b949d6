package application

import (
	"fmt"
	"log"

	"github.com/Maxito7/gestion-hotelera/internal/domain"
)

// RecepcionService orquesta el check-in y el check-out. Reutiliza las reglas
// de transición del ciclo de vida de reservas, con precondiciones más
// estrictas sobre fecha y estado, y dispara las notificaciones de llegada,
// salida y encuesta post-estadía.
type RecepcionService struct {
	reservaRepo       domain.ReservaRepository
	habitacionService *HabitacionService
	clienteRepo       domain.ClienteRepository
	auditoria         domain.AuditoriaSink
	notificador       domain.Notificador
	reloj             domain.Reloj
}

func NewRecepcionService(
	reservaRepo domain.ReservaRepository,
	habitacionService *HabitacionService,
	clienteRepo domain.ClienteRepository,
	auditoria domain.AuditoriaSink,
	notificador domain.Notificador,
	reloj domain.Reloj,
) *RecepcionService {
	return &RecepcionService{
		reservaRepo:       reservaRepo,
		habitacionService: habitacionService,
		clienteRepo:       clienteRepo,
		auditoria:         auditoria,
		notificador:       notificador,
		reloj:             reloj,
	}
}

// RealizarCheckIn registra la llegada del huésped: la reserva debe estar
// pendiente y su fecha de inicio ya alcanzada.
func (s *RecepcionService) RealizarCheckIn(reservaID int) (*domain.Reserva, error) {
	reserva, err := s.reservaRepo.GetReservaByID(reservaID)
	if err != nil {
		return nil, err
	}

	if reserva.Estado != domain.ReservaPendiente {
		return nil, domain.NewStateError("solo se puede realizar check-in de reservas pendientes")
	}
	hoy := s.reloj.Hoy()
	if reserva.FechaInicio.After(hoy) {
		return nil, domain.NewStateError("no se puede realizar check-in antes de la fecha de inicio de la reserva")
	}

	if err := s.reservaRepo.RegistrarCheckIn(reservaID, s.reloj.Ahora()); err != nil {
		return nil, err
	}

	if err := s.habitacionService.OcuparHabitacion(reserva.HabitacionID); err != nil {
		log.Printf("Error al marcar habitación %d como ocupada: %v", reserva.HabitacionID, err)
	}

	s.auditoria.RegistrarAccion("CHECKIN_RESERVA",
		fmt.Sprintf("Check-in realizado para la reserva (ID: %d)", reservaID),
		"Reserva", reservaID)

	s.notificarCheckIn(reserva)

	log.Printf("Check-in realizado para reserva ID=%d", reservaID)
	return s.reservaRepo.GetReservaByID(reservaID)
}

// RealizarCheckOut registra la salida del huésped: la reserva debe estar
// activa. Finaliza la reserva, libera la habitación y envía la notificación
// de salida junto con la encuesta post-estadía.
func (s *RecepcionService) RealizarCheckOut(reservaID int) (*domain.Reserva, error) {
	reserva, err := s.reservaRepo.GetReservaByID(reservaID)
	if err != nil {
		return nil, err
	}

	if reserva.Estado != domain.ReservaActiva {
		return nil, domain.NewStateError("solo se puede realizar check-out de reservas activas")
	}

	if err := s.reservaRepo.RegistrarCheckOut(reservaID, s.reloj.Ahora()); err != nil {
		return nil, err
	}

	if err := s.habitacionService.LiberarHabitacion(reserva.HabitacionID); err != nil {
		log.Printf("Error al liberar habitación %d: %v", reserva.HabitacionID, err)
	}

	s.auditoria.RegistrarAccion("CHECKOUT_RESERVA",
		fmt.Sprintf("Check-out realizado para la reserva (ID: %d)", reservaID),
		"Reserva", reservaID)

	s.notificarCheckOut(reserva)

	log.Printf("Check-out realizado para reserva ID=%d", reservaID)
	return s.reservaRepo.GetReservaByID(reservaID)
}

// LlegadasHoy retorna las reservas pendientes que inician hoy.
func (s *RecepcionService) LlegadasHoy() ([]domain.Reserva, error) {
	return s.reservaRepo.GetLlegadas(s.reloj.Hoy())
}

// SalidasHoy retorna las reservas activas que terminan hoy.
func (s *RecepcionService) SalidasHoy() ([]domain.Reserva, error) {
	return s.reservaRepo.GetSalidas(s.reloj.Hoy())
}

// OcupacionActual cuenta las habitaciones ocupadas hoy.
func (s *RecepcionService) OcupacionActual() (int, error) {
	return s.habitacionService.ContarOcupadasAhora(s.reloj.Hoy())
}

func (s *RecepcionService) notificarCheckIn(reserva *domain.Reserva) {
	cliente, err := s.clienteRepo.GetClienteByID(reserva.ClienteID)
	if err != nil || cliente.Email == "" {
		return
	}
	s.notificador.EnviarNotificacionCheckIn(cliente.Email, cliente.Nombres, reserva.ID)
}

func (s *RecepcionService) notificarCheckOut(reserva *domain.Reserva) {
	cliente, err := s.clienteRepo.GetClienteByID(reserva.ClienteID)
	if err != nil || cliente.Email == "" {
		return
	}
	hoy := s.reloj.Hoy()
	s.notificador.EnviarNotificacionCheckOut(cliente.Email, cliente.Nombres, reserva.ID)
	s.notificador.EnviarEncuestaPostEstadia(cliente.Email, cliente.Nombres, reserva.ID, hoy)
}
