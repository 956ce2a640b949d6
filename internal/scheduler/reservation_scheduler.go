package scheduler

import (
	"log"
	"time"

	"github.com/Maxito7/gestion-hotelera/internal/domain"
)

type ReservationScheduler struct {
	reservaRepo domain.ReservaRepository
	reloj       domain.Reloj
	ticker      *time.Ticker
}

// NewReservationScheduler crea una nueva instancia del scheduler de reservas
func NewReservationScheduler(reservaRepo domain.ReservaRepository, reloj domain.Reloj) *ReservationScheduler {
	return &ReservationScheduler{
		reservaRepo: reservaRepo,
		reloj:       reloj,
	}
}

// Start inicia el scheduler que finaliza reservas vencidas cada 24 horas
func (s *ReservationScheduler) Start() {
	log.Println("🕐 Scheduler de reservas iniciado - Se ejecutará cada 24 horas")

	// Ejecutar inmediatamente al iniciar
	s.FinalizarReservasVencidas()

	// Programar ejecución cada 24 horas a las 00:01 AM
	now := time.Now()
	nextRun := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 1, 0, 0, now.Location())
	durationUntilNextRun := time.Until(nextRun)

	log.Printf("⏰ Próxima ejecución programada: %s", nextRun.Format("2006-01-02 15:04:05"))

	time.AfterFunc(durationUntilNextRun, func() {
		s.FinalizarReservasVencidas()

		// Luego ejecutar cada 24 horas
		s.ticker = time.NewTicker(24 * time.Hour)
		go func() {
			for range s.ticker.C {
				s.FinalizarReservasVencidas()
			}
		}()
	})
}

// Stop detiene el scheduler
func (s *ReservationScheduler) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
		log.Println("🛑 Scheduler de reservas detenido")
	}
}

// FinalizarReservasVencidas finaliza las reservas activas cuya fecha de fin ya pasó
func (s *ReservationScheduler) FinalizarReservasVencidas() {
	log.Println("🔄 Ejecutando finalización de reservas vencidas...")

	cantidad, err := s.reservaRepo.FinalizarExpiradas(s.reloj.Hoy())
	if err != nil {
		log.Printf("❌ Error finalizando reservas vencidas: %v", err)
		return
	}

	if cantidad > 0 {
		log.Printf("✅ %d reservas vencidas finalizadas", cantidad)
	} else {
		log.Println("✅ No hay reservas vencidas pendientes de finalizar")
	}
}
