package application

import (
	"fmt"
	"log"
	"time"

	"github.com/Maxito7/gestion-hotelera/internal/domain"
)

// ReservaService gobierna el ciclo de vida de las reservas: creación y
// actualización con verificación de disponibilidad, cancelación, finalización
// y aplicación de descuentos.
type ReservaService struct {
	reservaRepo       domain.ReservaRepository
	habitacionService *HabitacionService
	descuentoRepo     domain.DescuentoRepository
	servicioRepo      domain.ServicioRepository
	clienteRepo       domain.ClienteRepository
	pagoRepo          domain.PagoRepository
	auditoria         domain.AuditoriaSink
	notificador       domain.Notificador
	reloj             domain.Reloj
}

// NewReservaService crea una nueva instancia del servicio de reservas
func NewReservaService(
	reservaRepo domain.ReservaRepository,
	habitacionService *HabitacionService,
	descuentoRepo domain.DescuentoRepository,
	servicioRepo domain.ServicioRepository,
	clienteRepo domain.ClienteRepository,
	pagoRepo domain.PagoRepository,
	auditoria domain.AuditoriaSink,
	notificador domain.Notificador,
	reloj domain.Reloj,
) *ReservaService {
	return &ReservaService{
		reservaRepo:       reservaRepo,
		habitacionService: habitacionService,
		descuentoRepo:     descuentoRepo,
		servicioRepo:      servicioRepo,
		clienteRepo:       clienteRepo,
		pagoRepo:          pagoRepo,
		auditoria:         auditoria,
		notificador:       notificador,
		reloj:             reloj,
	}
}

// CrearOActualizarReserva valida la reserva, verifica disponibilidad de la
// habitación, calcula el total de la estadía y la persiste. Al actualizar una
// reserva existente la verificación de traslape excluye su propio ID, y el
// estado solo cambia por una transición válida del ciclo de vida: una
// actualización sin estado conserva el almacenado, y una reserva en estado
// terminal ya no se modifica.
func (s *ReservaService) CrearOActualizarReserva(reserva *domain.Reserva) (*domain.Reserva, error) {
	if err := s.validarReserva(reserva); err != nil {
		return nil, err
	}

	esNueva := reserva.ID == 0
	if !esNueva {
		existente, err := s.reservaRepo.GetReservaByID(reserva.ID)
		if err != nil {
			return nil, err
		}
		if existente.Estado.EsTerminal() {
			return nil, domain.NewStateError("no se puede modificar una reserva en estado %s", existente.Estado)
		}
		if reserva.Estado == "" {
			reserva.Estado = existente.Estado
		} else if reserva.Estado != existente.Estado && !existente.Estado.PuedeTransicionarA(reserva.Estado) {
			return nil, domain.NewStateError("no se puede cambiar una reserva de %s a %s",
				existente.Estado, reserva.Estado)
		}
	}

	habitacion, err := s.habitacionService.BuscarHabitacionPorID(reserva.HabitacionID)
	if err != nil {
		return nil, err
	}
	if habitacion.Estado.EsMantenimiento() {
		return nil, domain.NewValidationError("la habitación está en mantenimiento y no puede ser reservada")
	}

	// Verificación previa para dar un error con detalle del conflicto. La
	// verificación autoritativa ocurre dentro de la transacción de guardado.
	conflictivas, err := s.reservaRepo.FindConflictivas(
		reserva.HabitacionID, reserva.FechaInicio, reserva.FechaFin, reserva.ID)
	if err != nil {
		return nil, fmt.Errorf("error al verificar disponibilidad: %w", err)
	}
	if len(conflictivas) > 0 {
		return nil, domain.NewConflictError(&conflictivas[0])
	}

	dias := domain.CalcularDiasEstadia(reserva.FechaInicio, reserva.FechaFin)
	reserva.TotalPagar = domain.CalcularTotalPagar(habitacion.PrecioPorNoche, dias)

	if reserva.Estado == "" {
		reserva.Estado = domain.ReservaPendiente
	}

	if err := s.reservaRepo.GuardarConVerificacion(reserva); err != nil {
		return nil, err
	}

	if err := s.habitacionService.SincronizarEstadoPorReserva(reserva, s.reloj.Hoy()); err != nil {
		log.Printf("Error al sincronizar estado de habitación %d: %v", reserva.HabitacionID, err)
	}

	s.auditoria.RegistrarAccion("CREACION_O_ACTUALIZACION_RESERVA",
		fmt.Sprintf("Reserva creada o actualizada (ID: %d) para cliente %d", reserva.ID, reserva.ClienteID),
		"Reserva", reserva.ID)

	if esNueva {
		s.enviarConfirmacion(reserva)
	}

	log.Printf("Reserva creada/actualizada: ID=%d, Cliente=%d, Habitación=%d",
		reserva.ID, reserva.ClienteID, reserva.HabitacionID)

	return reserva, nil
}

// EstaDisponible verifica si una habitación está libre en el rango dado,
// excluyendo la reserva indicada (0 = ninguna). Lectura pura, sin efectos:
// retorna false ante conflicto en lugar de error, y el llamador decide si
// construye un ConflictError con el detalle.
func (s *ReservaService) EstaDisponible(habitacionID int, inicio, fin time.Time, excluirID int) (bool, error) {
	if !inicio.Before(fin) {
		return false, domain.NewValidationError("la fecha de inicio debe ser anterior a la fecha de fin")
	}
	conflictivas, err := s.reservaRepo.FindConflictivas(habitacionID, inicio, fin, excluirID)
	if err != nil {
		return false, fmt.Errorf("error al verificar disponibilidad: %w", err)
	}
	return len(conflictivas) == 0, nil
}

// CancelarReserva cancela una reserva pendiente o activa. Una reserva con
// pago registrado no puede cancelarse, y el rol CLIENTE nunca está permitido:
// la cancelación se gestiona en recepción.
func (s *ReservaService) CancelarReserva(id int, rolUsuario string) error {
	reserva, err := s.reservaRepo.GetReservaByID(id)
	if err != nil {
		return err
	}

	if domain.EsRolCliente(rolUsuario) {
		return domain.NewStateError(
			"usted no puede cancelar su reserva; acérquese a recepción para generar la cancelación")
	}

	pago, err := s.pagoRepo.GetPagoByReservaID(id)
	if err != nil {
		return fmt.Errorf("error al verificar pago de la reserva: %w", err)
	}
	if pago != nil {
		return domain.NewStateError(
			"no se puede cancelar una reserva que ya tiene pago; use finalizar en su lugar")
	}

	if !reserva.Estado.PuedeTransicionarA(domain.ReservaCancelada) {
		return domain.NewStateError("no se puede cancelar una reserva en estado %s", reserva.Estado)
	}

	if err := s.reservaRepo.UpdateReservaEstado(id, domain.ReservaCancelada); err != nil {
		return err
	}

	if err := s.habitacionService.LiberarHabitacion(reserva.HabitacionID); err != nil {
		log.Printf("Error al liberar habitación %d: %v", reserva.HabitacionID, err)
	}

	s.auditoria.RegistrarAccion("CANCELACION_RESERVA",
		fmt.Sprintf("Reserva cancelada por %s (ID: %d)", rolUsuario, id),
		"Reserva", id)

	log.Printf("Reserva cancelada: ID=%d", id)
	return nil
}

// FinalizarReserva marca la reserva como finalizada y libera la habitación.
// Es idempotente: finalizar una reserva ya finalizada no tiene efecto.
func (s *ReservaService) FinalizarReserva(id int) error {
	reserva, err := s.reservaRepo.GetReservaByID(id)
	if err != nil {
		return err
	}

	if reserva.Estado == domain.ReservaFinalizada {
		return nil
	}
	if !reserva.Estado.PuedeTransicionarA(domain.ReservaFinalizada) {
		return domain.NewStateError("no se puede finalizar una reserva en estado %s", reserva.Estado)
	}

	estadoAnterior := reserva.Estado
	if err := s.reservaRepo.RegistrarCheckOut(id, s.reloj.Ahora()); err != nil {
		return err
	}

	if err := s.habitacionService.LiberarHabitacion(reserva.HabitacionID); err != nil {
		log.Printf("Error al liberar habitación %d: %v", reserva.HabitacionID, err)
	}

	s.auditoria.RegistrarAccion("FINALIZACION_RESERVA",
		fmt.Sprintf("Reserva finalizada (ID: %d) - Estado anterior: %s", id, estadoAnterior),
		"Reserva", id)

	log.Printf("Reserva finalizada: ID=%d, Estado anterior=%s", id, estadoAnterior)
	return nil
}

// AplicarDescuento aplica un código de descuento a la reserva. Es una
// operación única por reserva; el incremento de usos del código es atómico
// en el repositorio para no sobrepasar los usos máximos bajo concurrencia.
func (s *ReservaService) AplicarDescuento(reservaID int, codigo string) (*domain.Reserva, error) {
	reserva, err := s.reservaRepo.GetReservaByID(reservaID)
	if err != nil {
		return nil, err
	}

	if reserva.DescuentoID != nil {
		return nil, domain.NewStateError("la reserva ya tiene un descuento aplicado")
	}

	descuento, err := s.descuentoRepo.GetDescuentoByCodigo(domain.NormalizarCodigo(codigo))
	if err != nil {
		return nil, err
	}

	hoy := s.reloj.Hoy()
	montoTotal := reserva.TotalPagar + reserva.TotalServicios()
	montoDescuento := descuento.CalcularDescuento(montoTotal, hoy)
	if montoDescuento <= 0 {
		return nil, domain.NewValidationError("código de descuento inválido, expirado o no aplicable")
	}

	if err := s.reservaRepo.AplicarDescuento(reservaID, descuento.ID, montoDescuento); err != nil {
		return nil, err
	}

	s.auditoria.RegistrarAccion("APLICACION_DESCUENTO",
		fmt.Sprintf("Descuento %s aplicado a la reserva (ID: %d) por %.2f", descuento.Codigo, reservaID, montoDescuento),
		"Reserva", reservaID)

	log.Printf("Descuento aplicado a reserva ID=%d, Código=%s, Monto=%.2f",
		reservaID, descuento.Codigo, montoDescuento)

	return s.reservaRepo.GetReservaByID(reservaID)
}

// AsignarServicios reemplaza los servicios adicionales de una reserva. Las
// opciones se emparejan por posición con los IDs.
func (s *ReservaService) AsignarServicios(reservaID int, servicioIDs []int, opciones []string) (*domain.Reserva, error) {
	reserva, err := s.reservaRepo.GetReservaByID(reservaID)
	if err != nil {
		return nil, err
	}
	if reserva.Estado.EsTerminal() {
		return nil, domain.NewStateError("no se pueden asignar servicios a una reserva en estado %s", reserva.Estado)
	}

	servicios, err := s.servicioRepo.GetServiciosByIDs(servicioIDs)
	if err != nil {
		return nil, err
	}
	porID := make(map[int]domain.Servicio, len(servicios))
	for _, servicio := range servicios {
		porID[servicio.ID] = servicio
	}

	// Las opciones siguen el orden de la solicitud, no el del repositorio
	asignados := make([]domain.ReservaServicio, 0, len(servicioIDs))
	vistos := make(map[int]bool, len(servicioIDs))
	for i, servicioID := range servicioIDs {
		if vistos[servicioID] {
			return nil, domain.NewValidationError("el servicio %d está repetido en la solicitud", servicioID)
		}
		vistos[servicioID] = true

		servicio, ok := porID[servicioID]
		if !ok {
			return nil, domain.NewNotFoundError("servicio", servicioID)
		}

		rs := domain.ReservaServicio{
			ServicioID: servicio.ID,
			Nombre:     servicio.Nombre,
			Precio:     servicio.Precio,
		}
		if i < len(opciones) {
			rs.Opcion = opciones[i]
		}
		asignados = append(asignados, rs)
	}

	if err := s.reservaRepo.AsignarServicios(reservaID, asignados); err != nil {
		return nil, err
	}

	s.auditoria.RegistrarAccion("ASIGNACION_SERVICIOS_RESERVA",
		fmt.Sprintf("Servicios actualizados para la reserva ID: %d", reservaID),
		"Reserva", reservaID)

	return s.reservaRepo.GetReservaByID(reservaID)
}

// GetReservaByID obtiene una reserva por su ID
func (s *ReservaService) GetReservaByID(id int) (*domain.Reserva, error) {
	return s.reservaRepo.GetReservaByID(id)
}

// GetReservasCliente obtiene todas las reservas de un cliente
func (s *ReservaService) GetReservasCliente(clienteID int) ([]domain.Reserva, error) {
	return s.reservaRepo.GetReservasCliente(clienteID)
}

// CalcularTotalConServicios retorna la base de la estadía más los servicios,
// el monto sobre el que se evalúan descuentos y pagos.
func (s *ReservaService) CalcularTotalConServicios(reserva *domain.Reserva) float64 {
	return reserva.TotalPagar + reserva.TotalServicios()
}

func (s *ReservaService) validarReserva(reserva *domain.Reserva) error {
	if reserva == nil {
		return domain.NewValidationError("la reserva no puede ser nula")
	}
	if reserva.ClienteID <= 0 {
		return domain.NewValidationError("la reserva debe tener un cliente asignado")
	}
	if reserva.HabitacionID <= 0 {
		return domain.NewValidationError("la reserva debe tener una habitación asignada")
	}
	if reserva.FechaInicio.IsZero() || reserva.FechaFin.IsZero() {
		return domain.NewValidationError("las fechas de inicio y fin son obligatorias")
	}
	if !reserva.FechaInicio.Before(reserva.FechaFin) {
		return domain.NewValidationError("la fecha de inicio debe ser anterior a la fecha de fin")
	}
	return nil
}

func (s *ReservaService) enviarConfirmacion(reserva *domain.Reserva) {
	cliente, err := s.clienteRepo.GetClienteByID(reserva.ClienteID)
	if err != nil {
		log.Printf("Error al obtener cliente %d para email de confirmación: %v", reserva.ClienteID, err)
		return
	}
	if cliente.Email == "" {
		return
	}
	s.notificador.EnviarConfirmacionReserva(cliente.Email, cliente.Nombres, reserva)
}
