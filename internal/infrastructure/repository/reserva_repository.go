package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Maxito7/gestion-hotelera/internal/domain"
)

type reservaRepository struct {
	db *sql.DB
}

// NewReservaRepository crea una nueva instancia del repositorio de reservas
func NewReservaRepository(db *sql.DB) domain.ReservaRepository {
	return &reservaRepository{db: db}
}

const reservaColumnas = `
	r.reservation_id,
	r.client_id,
	r.room_id,
	r.start_date,
	r.end_date,
	r.status,
	r.total_price,
	r.discount_id,
	r.discount_amount,
	r.checkin_at,
	r.checkout_at
`

func scanReserva(row interface{ Scan(...any) error }) (*domain.Reserva, error) {
	reserva := &domain.Reserva{}
	err := row.Scan(
		&reserva.ID,
		&reserva.ClienteID,
		&reserva.HabitacionID,
		&reserva.FechaInicio,
		&reserva.FechaFin,
		&reserva.Estado,
		&reserva.TotalPagar,
		&reserva.DescuentoID,
		&reserva.MontoDescuento,
		&reserva.FechaCheckinReal,
		&reserva.FechaCheckoutReal,
	)
	if err != nil {
		return nil, err
	}
	return reserva, nil
}

// GetReservaByID obtiene una reserva por su ID con sus servicios
func (r *reservaRepository) GetReservaByID(id int) (*domain.Reserva, error) {
	query := `
		SELECT ` + reservaColumnas + `
		FROM reservation r
		WHERE r.reservation_id = $1
	`

	reserva, err := scanReserva(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewNotFoundError("reserva", id)
		}
		return nil, fmt.Errorf("error al obtener reserva: %w", err)
	}

	servicios, err := r.getServiciosDeReserva(id)
	if err != nil {
		return nil, err
	}
	reserva.Servicios = servicios

	return reserva, nil
}

// GuardarConVerificacion inserta o actualiza la reserva en una transacción
// que bloquea la fila de la habitación y re-verifica el traslape de fechas.
// El bloqueo serializa a todos los escritores de la misma habitación, por lo
// que la verificación y el guardado son atómicos frente a reservas
// concurrentes. El esquema además lleva una restricción de exclusión sobre
// (room_id, rango de fechas) como respaldo.
func (r *reservaRepository) GuardarConVerificacion(reserva *domain.Reserva) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("error al iniciar transacción: %w", err)
	}
	defer tx.Rollback()

	var habitacionID int
	err = tx.QueryRow(`SELECT room_id FROM room WHERE room_id = $1 FOR UPDATE`,
		reserva.HabitacionID).Scan(&habitacionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.NewNotFoundError("habitación", reserva.HabitacionID)
		}
		return fmt.Errorf("error al bloquear habitación: %w", err)
	}

	conflicto, err := buscarConflictiva(tx, reserva.HabitacionID, reserva.FechaInicio, reserva.FechaFin, reserva.ID)
	if err != nil {
		return err
	}
	if conflicto != nil {
		return domain.NewConflictError(conflicto)
	}

	if reserva.ID == 0 {
		query := `
			INSERT INTO reservation (
				client_id,
				room_id,
				start_date,
				end_date,
				status,
				total_price,
				discount_id,
				discount_amount
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING reservation_id
		`
		err = tx.QueryRow(query,
			reserva.ClienteID,
			reserva.HabitacionID,
			reserva.FechaInicio,
			reserva.FechaFin,
			reserva.Estado,
			reserva.TotalPagar,
			reserva.DescuentoID,
			reserva.MontoDescuento,
		).Scan(&reserva.ID)
		if err != nil {
			return fmt.Errorf("error al crear reserva: %w", err)
		}
	} else {
		query := `
			UPDATE reservation SET
				client_id = $1,
				room_id = $2,
				start_date = $3,
				end_date = $4,
				status = $5,
				total_price = $6
			WHERE reservation_id = $7
		`
		result, err := tx.Exec(query,
			reserva.ClienteID,
			reserva.HabitacionID,
			reserva.FechaInicio,
			reserva.FechaFin,
			reserva.Estado,
			reserva.TotalPagar,
			reserva.ID,
		)
		if err != nil {
			return fmt.Errorf("error al actualizar reserva: %w", err)
		}
		filas, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("error al verificar filas afectadas: %w", err)
		}
		if filas == 0 {
			return domain.NewNotFoundError("reserva", reserva.ID)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error al confirmar transacción: %w", err)
	}

	return nil
}

// FindConflictivas retorna las reservas vivas que se traslapan con el rango,
// con límites inclusivos, en orden de inserción.
func (r *reservaRepository) FindConflictivas(habitacionID int, inicio, fin time.Time, excluirID int) ([]domain.Reserva, error) {
	query := `
		SELECT ` + reservaColumnas + `
		FROM reservation r
		WHERE r.room_id = $1
		AND r.status IN ('PENDIENTE', 'ACTIVA')
		AND r.start_date <= $3
		AND r.end_date >= $2
		AND r.reservation_id <> $4
		ORDER BY r.reservation_id
	`

	rows, err := r.db.Query(query, habitacionID, inicio, fin, excluirID)
	if err != nil {
		return nil, fmt.Errorf("error al buscar reservas conflictivas: %w", err)
	}
	defer rows.Close()

	return escanearReservas(rows)
}

// UpdateReservaEstado actualiza el estado de una reserva
func (r *reservaRepository) UpdateReservaEstado(id int, estado domain.EstadoReserva) error {
	result, err := r.db.Exec(`UPDATE reservation SET status = $1 WHERE reservation_id = $2`, estado, id)
	if err != nil {
		return fmt.Errorf("error al actualizar estado de reserva: %w", err)
	}

	filas, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar filas afectadas: %w", err)
	}
	if filas == 0 {
		return domain.NewNotFoundError("reserva", id)
	}

	return nil
}

// RegistrarCheckIn marca la reserva como activa y estampa la entrada real
func (r *reservaRepository) RegistrarCheckIn(id int, momento time.Time) error {
	query := `
		UPDATE reservation
		SET status = $1, checkin_at = $2
		WHERE reservation_id = $3
	`
	result, err := r.db.Exec(query, domain.ReservaActiva, momento, id)
	if err != nil {
		return fmt.Errorf("error al registrar check-in: %w", err)
	}

	filas, _ := result.RowsAffected()
	if filas == 0 {
		return domain.NewNotFoundError("reserva", id)
	}
	return nil
}

// RegistrarCheckOut marca la reserva como finalizada; la salida real solo se
// estampa si aún no fue registrada
func (r *reservaRepository) RegistrarCheckOut(id int, momento time.Time) error {
	query := `
		UPDATE reservation
		SET status = $1, checkout_at = COALESCE(checkout_at, $2)
		WHERE reservation_id = $3
	`
	result, err := r.db.Exec(query, domain.ReservaFinalizada, momento, id)
	if err != nil {
		return fmt.Errorf("error al registrar check-out: %w", err)
	}

	filas, _ := result.RowsAffected()
	if filas == 0 {
		return domain.NewNotFoundError("reserva", id)
	}
	return nil
}

// AplicarDescuento asocia el descuento e incrementa su contador de usos en
// una sola transacción. Ambas actualizaciones son condicionales: la reserva
// no debe tener descuento previo y los usos no deben estar agotados. Las
// filas afectadas deciden el resultado, sin leer-y-escribir por separado.
func (r *reservaRepository) AplicarDescuento(reservaID int, descuentoID int, monto float64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("error al iniciar transacción: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE discount
		SET current_uses = current_uses + 1
		WHERE discount_id = $1
		AND active
		AND (max_uses IS NULL OR current_uses < max_uses)
	`, descuentoID)
	if err != nil {
		return fmt.Errorf("error al incrementar uso del descuento: %w", err)
	}
	filas, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar filas afectadas: %w", err)
	}
	if filas == 0 {
		return domain.NewStateError("el descuento ya no tiene usos disponibles")
	}

	result, err = tx.Exec(`
		UPDATE reservation
		SET discount_id = $1, discount_amount = $2
		WHERE reservation_id = $3
		AND discount_id IS NULL
	`, descuentoID, monto, reservaID)
	if err != nil {
		return fmt.Errorf("error al aplicar descuento a la reserva: %w", err)
	}
	filas, err = result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar filas afectadas: %w", err)
	}
	if filas == 0 {
		return domain.NewStateError("la reserva ya tiene un descuento aplicado")
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error al confirmar transacción: %w", err)
	}

	return nil
}

// AsignarServicios reemplaza los servicios contratados de la reserva
func (r *reservaRepository) AsignarServicios(reservaID int, servicios []domain.ReservaServicio) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("error al iniciar transacción: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM reservation_service WHERE reservation_id = $1`, reservaID); err != nil {
		return fmt.Errorf("error al limpiar servicios de la reserva: %w", err)
	}

	for _, servicio := range servicios {
		_, err := tx.Exec(`
			INSERT INTO reservation_service (reservation_id, service_id, price, option)
			VALUES ($1, $2, $3, $4)
		`, reservaID, servicio.ServicioID, servicio.Precio, servicio.Opcion)
		if err != nil {
			return fmt.Errorf("error al asignar servicio %d: %w", servicio.ServicioID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error al confirmar transacción: %w", err)
	}

	return nil
}

// GetReservasCliente obtiene todas las reservas de un cliente
func (r *reservaRepository) GetReservasCliente(clienteID int) ([]domain.Reserva, error) {
	query := `
		SELECT ` + reservaColumnas + `
		FROM reservation r
		WHERE r.client_id = $1
		ORDER BY r.start_date DESC
	`

	rows, err := r.db.Query(query, clienteID)
	if err != nil {
		return nil, fmt.Errorf("error al obtener reservas del cliente: %w", err)
	}
	defer rows.Close()

	return escanearReservas(rows)
}

// GetLlegadas obtiene reservas pendientes que inician en la fecha dada
func (r *reservaRepository) GetLlegadas(fecha time.Time) ([]domain.Reserva, error) {
	query := `
		SELECT ` + reservaColumnas + `
		FROM reservation r
		WHERE r.start_date = $1 AND r.status = 'PENDIENTE'
		ORDER BY r.reservation_id
	`

	rows, err := r.db.Query(query, fecha)
	if err != nil {
		return nil, fmt.Errorf("error al obtener llegadas: %w", err)
	}
	defer rows.Close()

	return escanearReservas(rows)
}

// GetSalidas obtiene reservas activas que terminan en la fecha dada
func (r *reservaRepository) GetSalidas(fecha time.Time) ([]domain.Reserva, error) {
	query := `
		SELECT ` + reservaColumnas + `
		FROM reservation r
		WHERE r.end_date = $1 AND r.status = 'ACTIVA'
		ORDER BY r.reservation_id
	`

	rows, err := r.db.Query(query, fecha)
	if err != nil {
		return nil, fmt.Errorf("error al obtener salidas: %w", err)
	}
	defer rows.Close()

	return escanearReservas(rows)
}

// FinalizarExpiradas finaliza reservas activas cuya fecha de fin ya pasó
func (r *reservaRepository) FinalizarExpiradas(hoy time.Time) (int, error) {
	query := `
		UPDATE reservation
		SET status = 'FINALIZADA', checkout_at = COALESCE(checkout_at, NOW())
		WHERE status = 'ACTIVA' AND end_date < $1
	`

	result, err := r.db.Exec(query, hoy)
	if err != nil {
		return 0, fmt.Errorf("error al finalizar reservas expiradas: %w", err)
	}

	filas, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error al verificar filas afectadas: %w", err)
	}

	return int(filas), nil
}

func (r *reservaRepository) getServiciosDeReserva(reservaID int) ([]domain.ReservaServicio, error) {
	query := `
		SELECT rs.service_id, s.name, rs.price, rs.option
		FROM reservation_service rs
		INNER JOIN service s ON s.service_id = rs.service_id
		WHERE rs.reservation_id = $1
		ORDER BY rs.service_id
	`

	rows, err := r.db.Query(query, reservaID)
	if err != nil {
		return nil, fmt.Errorf("error al obtener servicios de la reserva: %w", err)
	}
	defer rows.Close()

	var servicios []domain.ReservaServicio
	for rows.Next() {
		var rs domain.ReservaServicio
		if err := rows.Scan(&rs.ServicioID, &rs.Nombre, &rs.Precio, &rs.Opcion); err != nil {
			return nil, fmt.Errorf("error al escanear servicio: %w", err)
		}
		servicios = append(servicios, rs)
	}

	return servicios, rows.Err()
}

func buscarConflictiva(tx *sql.Tx, habitacionID int, inicio, fin time.Time, excluirID int) (*domain.Reserva, error) {
	query := `
		SELECT ` + reservaColumnas + `
		FROM reservation r
		WHERE r.room_id = $1
		AND r.status IN ('PENDIENTE', 'ACTIVA')
		AND r.start_date <= $3
		AND r.end_date >= $2
		AND r.reservation_id <> $4
		ORDER BY r.reservation_id
		LIMIT 1
	`

	conflicto, err := scanReserva(tx.QueryRow(query, habitacionID, inicio, fin, excluirID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al verificar traslape de fechas: %w", err)
	}
	return conflicto, nil
}

func escanearReservas(rows *sql.Rows) ([]domain.Reserva, error) {
	var reservas []domain.Reserva
	for rows.Next() {
		reserva, err := scanReserva(rows)
		if err != nil {
			return nil, fmt.Errorf("error al escanear reserva: %w", err)
		}
		reservas = append(reservas, *reserva)
	}
	return reservas, rows.Err()
}
