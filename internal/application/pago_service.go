package application

import (
	"fmt"
	"log"
	"math"

	"github.com/Maxito7/gestion-hotelera/internal/domain"
	"github.com/google/uuid"
)

// PagoService registra el resultado del pago de una reserva. El cobro en sí
// ocurre fuera de este núcleo; aquí solo se calcula y persiste el desglose:
// total = max(0, base + servicios - descuento).
type PagoService struct {
	pagoRepo    domain.PagoRepository
	reservaRepo domain.ReservaRepository
	clienteRepo domain.ClienteRepository
	auditoria   domain.AuditoriaSink
	notificador domain.Notificador
	reloj       domain.Reloj
}

func NewPagoService(
	pagoRepo domain.PagoRepository,
	reservaRepo domain.ReservaRepository,
	clienteRepo domain.ClienteRepository,
	auditoria domain.AuditoriaSink,
	notificador domain.Notificador,
	reloj domain.Reloj,
) *PagoService {
	return &PagoService{
		pagoRepo:    pagoRepo,
		reservaRepo: reservaRepo,
		clienteRepo: clienteRepo,
		auditoria:   auditoria,
		notificador: notificador,
		reloj:       reloj,
	}
}

// ProcesarPago registra el pago de la reserva. Si la reserva ya tiene un
// pago se retorna el existente sin crear otro (idempotente por reserva).
func (s *PagoService) ProcesarPago(reservaID int, metodo domain.MetodoPago) (*domain.Pago, error) {
	reserva, err := s.reservaRepo.GetReservaByID(reservaID)
	if err != nil {
		return nil, err
	}

	existente, err := s.pagoRepo.GetPagoByReservaID(reservaID)
	if err != nil {
		return nil, fmt.Errorf("error al verificar pago existente: %w", err)
	}
	if existente != nil {
		log.Printf("La reserva %d ya tiene un pago registrado (ID=%d)", reservaID, existente.ID)
		return existente, nil
	}

	if metodo == "" {
		metodo = domain.PagoTarjeta
	}

	base := reserva.TotalPagar
	servicios := reserva.TotalServicios()
	descuento := reserva.MontoDescuento
	total := math.Max(0, base+servicios-descuento)

	pago := &domain.Pago{
		ReservaID:      reservaID,
		MontoBase:      base,
		MontoServicios: servicios,
		MontoDescuento: descuento,
		MontoTotal:     total,
		Metodo:         metodo,
		Estado:         domain.PagoCompletado,
		Referencia:     uuid.NewString(),
		FechaPago:      s.reloj.Ahora(),
	}

	if err := s.pagoRepo.CreatePago(pago); err != nil {
		return nil, fmt.Errorf("error al registrar pago: %w", err)
	}

	s.auditoria.RegistrarAccion("REGISTRO_PAGO",
		fmt.Sprintf("Pago registrado para la reserva (ID: %d) por %.2f, referencia %s",
			reservaID, total, pago.Referencia),
		"Pago", pago.ID)

	s.notificarPago(reserva, pago)

	log.Printf("Pago procesado - Reserva ID=%d, Total=%.2f, Referencia=%s",
		reservaID, total, pago.Referencia)

	return pago, nil
}

// GetPagoByReservaID obtiene el pago de una reserva, o nil si no existe.
func (s *PagoService) GetPagoByReservaID(reservaID int) (*domain.Pago, error) {
	return s.pagoRepo.GetPagoByReservaID(reservaID)
}

func (s *PagoService) notificarPago(reserva *domain.Reserva, pago *domain.Pago) {
	cliente, err := s.clienteRepo.GetClienteByID(reserva.ClienteID)
	if err != nil || cliente.Email == "" {
		return
	}
	s.notificador.EnviarNotificacionPago(cliente.Email, cliente.Nombres, reserva.ID,
		pago.MontoTotal, string(pago.Metodo))
}
