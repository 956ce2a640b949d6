package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Maxito7/gestion-hotelera/internal/domain"
)

type habitacionRepository struct {
	db *sql.DB
}

// NewHabitacionRepository crea una nueva instancia del repositorio de habitaciones
func NewHabitacionRepository(db *sql.DB) domain.HabitacionRepository {
	return &habitacionRepository{db: db}
}

// GetHabitacionByID obtiene una habitación por su ID
func (r *habitacionRepository) GetHabitacionByID(id int) (*domain.Habitacion, error) {
	query := `
		SELECT room_id, number, type, price_per_night, status
		FROM room
		WHERE room_id = $1
	`

	h := &domain.Habitacion{}
	err := r.db.QueryRow(query, id).Scan(&h.ID, &h.Numero, &h.Tipo, &h.PrecioPorNoche, &h.Estado)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewNotFoundError("habitación", id)
		}
		return nil, fmt.Errorf("error al obtener habitación: %w", err)
	}

	return h, nil
}

// GetHabitacionByNumero obtiene una habitación por su número único
func (r *habitacionRepository) GetHabitacionByNumero(numero string) (*domain.Habitacion, error) {
	query := `
		SELECT room_id, number, type, price_per_night, status
		FROM room
		WHERE number = $1
	`

	h := &domain.Habitacion{}
	err := r.db.QueryRow(query, numero).Scan(&h.ID, &h.Numero, &h.Tipo, &h.PrecioPorNoche, &h.Estado)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewNotFoundError("habitación", numero)
		}
		return nil, fmt.Errorf("error al obtener habitación: %w", err)
	}

	return h, nil
}

// GetAllHabitaciones retorna todas las habitaciones
func (r *habitacionRepository) GetAllHabitaciones() ([]domain.Habitacion, error) {
	query := `
		SELECT room_id, number, type, price_per_night, status
		FROM room
		ORDER BY room_id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error al obtener habitaciones: %w", err)
	}
	defer rows.Close()

	var habitaciones []domain.Habitacion
	for rows.Next() {
		var h domain.Habitacion
		if err := rows.Scan(&h.ID, &h.Numero, &h.Tipo, &h.PrecioPorNoche, &h.Estado); err != nil {
			return nil, fmt.Errorf("error al escanear habitación: %w", err)
		}
		habitaciones = append(habitaciones, h)
	}

	return habitaciones, rows.Err()
}

// CreateHabitacion crea una nueva habitación
func (r *habitacionRepository) CreateHabitacion(h *domain.Habitacion) error {
	query := `
		INSERT INTO room (number, type, price_per_night, status)
		VALUES ($1, $2, $3, $4)
		RETURNING room_id
	`

	err := r.db.QueryRow(query, h.Numero, h.Tipo, h.PrecioPorNoche, h.Estado).Scan(&h.ID)
	if err != nil {
		return fmt.Errorf("error al crear habitación: %w", err)
	}

	return nil
}

// UpdateHabitacion actualiza los datos de una habitación
func (r *habitacionRepository) UpdateHabitacion(h *domain.Habitacion) error {
	query := `
		UPDATE room
		SET number = $1, type = $2, price_per_night = $3, status = $4
		WHERE room_id = $5
	`

	result, err := r.db.Exec(query, h.Numero, h.Tipo, h.PrecioPorNoche, h.Estado, h.ID)
	if err != nil {
		return fmt.Errorf("error al actualizar habitación: %w", err)
	}

	filas, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar filas afectadas: %w", err)
	}
	if filas == 0 {
		return domain.NewNotFoundError("habitación", h.ID)
	}

	return nil
}

// UpdateEstado actualiza solo el estado de una habitación
func (r *habitacionRepository) UpdateEstado(id int, estado domain.EstadoHabitacion) error {
	result, err := r.db.Exec(`UPDATE room SET status = $1 WHERE room_id = $2`, estado, id)
	if err != nil {
		return fmt.Errorf("error al actualizar estado de habitación: %w", err)
	}

	filas, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar filas afectadas: %w", err)
	}
	if filas == 0 {
		return domain.NewNotFoundError("habitación", id)
	}

	return nil
}

// ContarOcupadas cuenta habitaciones con una reserva viva cubriendo la fecha
func (r *habitacionRepository) ContarOcupadas(fecha time.Time) (int, error) {
	query := `
		SELECT COUNT(DISTINCT r.room_id)
		FROM reservation r
		WHERE r.status IN ('PENDIENTE', 'ACTIVA')
		AND r.start_date <= $1
		AND r.end_date >= $1
	`

	var total int
	if err := r.db.QueryRow(query, fecha).Scan(&total); err != nil {
		return 0, fmt.Errorf("error al contar habitaciones ocupadas: %w", err)
	}

	return total, nil
}
