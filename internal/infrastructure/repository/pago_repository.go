package repository

import (
	"database/sql"
	"fmt"

	"github.com/Maxito7/gestion-hotelera/internal/domain"
)

type pagoRepository struct {
	db *sql.DB
}

// NewPagoRepository crea una nueva instancia del repositorio de pagos
func NewPagoRepository(db *sql.DB) domain.PagoRepository {
	return &pagoRepository{db: db}
}

// CreatePago crea un nuevo pago. La columna reservation_id es única: una
// reserva tiene a lo sumo un pago.
func (r *pagoRepository) CreatePago(pago *domain.Pago) error {
	query := `
		INSERT INTO payment (
			reservation_id,
			base_amount,
			services_amount,
			discount_amount,
			total_amount,
			method,
			status,
			reference,
			paid_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING payment_id
	`

	err := r.db.QueryRow(query,
		pago.ReservaID,
		pago.MontoBase,
		pago.MontoServicios,
		pago.MontoDescuento,
		pago.MontoTotal,
		pago.Metodo,
		pago.Estado,
		pago.Referencia,
		pago.FechaPago,
	).Scan(&pago.ID)
	if err != nil {
		return fmt.Errorf("error al crear pago: %w", err)
	}

	return nil
}

// GetPagoByReservaID obtiene el pago de una reserva, o nil si no existe
func (r *pagoRepository) GetPagoByReservaID(reservaID int) (*domain.Pago, error) {
	query := `
		SELECT
			payment_id,
			reservation_id,
			base_amount,
			services_amount,
			discount_amount,
			total_amount,
			method,
			status,
			reference,
			paid_at
		FROM payment
		WHERE reservation_id = $1
	`

	pago := &domain.Pago{}
	err := r.db.QueryRow(query, reservaID).Scan(
		&pago.ID,
		&pago.ReservaID,
		&pago.MontoBase,
		&pago.MontoServicios,
		&pago.MontoDescuento,
		&pago.MontoTotal,
		&pago.Metodo,
		&pago.Estado,
		&pago.Referencia,
		&pago.FechaPago,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al obtener pago: %w", err)
	}

	return pago, nil
}
