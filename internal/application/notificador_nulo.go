package application

import (
	"log"
	"time"

	"github.com/Maxito7/gestion-hotelera/internal/domain"
)

// NotificadorNulo descarta las notificaciones. Se usa cuando el cliente de
// email no pudo inicializarse: el servicio sigue operando sin correos.
type NotificadorNulo struct{}

func (NotificadorNulo) EnviarConfirmacionReserva(email, nombre string, reserva *domain.Reserva) {
	log.Printf("Email deshabilitado: confirmación de reserva %d no enviada a %s", reserva.ID, email)
}

func (NotificadorNulo) EnviarNotificacionCheckIn(email, nombre string, reservaID int) {
	log.Printf("Email deshabilitado: notificación de check-in de reserva %d no enviada a %s", reservaID, email)
}

func (NotificadorNulo) EnviarNotificacionCheckOut(email, nombre string, reservaID int) {
	log.Printf("Email deshabilitado: notificación de check-out de reserva %d no enviada a %s", reservaID, email)
}

func (NotificadorNulo) EnviarEncuestaPostEstadia(email, nombre string, reservaID int, fecha time.Time) {
	log.Printf("Email deshabilitado: encuesta de reserva %d no enviada a %s", reservaID, email)
}

func (NotificadorNulo) EnviarNotificacionPago(email, nombre string, reservaID int, montoTotal float64, metodo string) {
	log.Printf("Email deshabilitado: comprobante de pago de reserva %d no enviado a %s", reservaID, email)
}
