package domain

import "time"

// Reloj abstrae la fecha/hora actual para que los servicios sean
// verificables sin depender del reloj del sistema.
type Reloj interface {
	// Ahora retorna el instante actual
	Ahora() time.Time
	// Hoy retorna la fecha actual truncada a medianoche UTC
	Hoy() time.Time
}

// RelojSistema es el reloj de producción.
type RelojSistema struct{}

func (RelojSistema) Ahora() time.Time {
	return time.Now()
}

func (RelojSistema) Hoy() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// AuditoriaSink recibe los eventos de auditoría emitidos por los servicios.
// Las implementaciones son best-effort: un fallo se registra en el log y
// nunca interrumpe la operación principal.
type AuditoriaSink interface {
	RegistrarAccion(tipoAccion, detalle, entidad string, entidadID int)
}

// Notificador envía las notificaciones al cliente. Igual que la auditoría,
// los fallos se registran pero no se propagan.
type Notificador interface {
	EnviarConfirmacionReserva(email, nombre string, reserva *Reserva)
	EnviarNotificacionCheckIn(email, nombre string, reservaID int)
	EnviarNotificacionCheckOut(email, nombre string, reservaID int)
	EnviarEncuestaPostEstadia(email, nombre string, reservaID int, fecha time.Time)
	EnviarNotificacionPago(email, nombre string, reservaID int, montoTotal float64, metodo string)
}

// AuditoriaRegistro es una entrada persistida de auditoría.
type AuditoriaRegistro struct {
	ID         int       `json:"id"`
	TipoAccion string    `json:"tipoAccion"`
	Detalle    string    `json:"detalle"`
	Entidad    string    `json:"entidad"`
	EntidadID  int       `json:"entidadId"`
	Fecha      time.Time `json:"fecha"`
}
