package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Maxito7/gestion-hotelera/internal/domain"
)

type descuentoRepository struct {
	db *sql.DB
}

// NewDescuentoRepository crea una nueva instancia del repositorio de descuentos
func NewDescuentoRepository(db *sql.DB) domain.DescuentoRepository {
	return &descuentoRepository{db: db}
}

const descuentoColumnas = `
	discount_id,
	code,
	description,
	kind,
	value,
	min_amount,
	max_discount_amount,
	start_date,
	end_date,
	max_uses,
	current_uses,
	active,
	created_at
`

func scanDescuento(row interface{ Scan(...any) error }) (*domain.Descuento, error) {
	d := &domain.Descuento{}
	err := row.Scan(
		&d.ID,
		&d.Codigo,
		&d.Descripcion,
		&d.Tipo,
		&d.Valor,
		&d.MontoMinimo,
		&d.MontoMaximoDescuento,
		&d.FechaInicio,
		&d.FechaFin,
		&d.UsosMaximos,
		&d.UsosActuales,
		&d.Activo,
		&d.FechaCreacion,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// GetDescuentoByID obtiene un descuento por su ID
func (r *descuentoRepository) GetDescuentoByID(id int) (*domain.Descuento, error) {
	query := `SELECT ` + descuentoColumnas + ` FROM discount WHERE discount_id = $1`

	d, err := scanDescuento(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewNotFoundError("descuento", id)
		}
		return nil, fmt.Errorf("error al obtener descuento: %w", err)
	}

	return d, nil
}

// GetDescuentoByCodigo busca un descuento por su código normalizado
func (r *descuentoRepository) GetDescuentoByCodigo(codigo string) (*domain.Descuento, error) {
	query := `SELECT ` + descuentoColumnas + ` FROM discount WHERE code = $1`

	d, err := scanDescuento(r.db.QueryRow(query, domain.NormalizarCodigo(codigo)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewNotFoundError("descuento", codigo)
		}
		return nil, fmt.Errorf("error al obtener descuento: %w", err)
	}

	return d, nil
}

// CreateDescuento crea un nuevo descuento
func (r *descuentoRepository) CreateDescuento(d *domain.Descuento) error {
	query := `
		INSERT INTO discount (
			code,
			description,
			kind,
			value,
			min_amount,
			max_discount_amount,
			start_date,
			end_date,
			max_uses,
			current_uses,
			active,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, $10, NOW())
		RETURNING discount_id, created_at
	`

	err := r.db.QueryRow(query,
		d.Codigo,
		d.Descripcion,
		d.Tipo,
		d.Valor,
		d.MontoMinimo,
		d.MontoMaximoDescuento,
		d.FechaInicio,
		d.FechaFin,
		d.UsosMaximos,
		d.Activo,
	).Scan(&d.ID, &d.FechaCreacion)
	if err != nil {
		return fmt.Errorf("error al crear descuento: %w", err)
	}

	return nil
}

// UpdateDescuento actualiza un descuento existente. Los usos actuales no se
// tocan aquí: solo cambian por la redención atómica.
func (r *descuentoRepository) UpdateDescuento(d *domain.Descuento) error {
	query := `
		UPDATE discount SET
			code = $1,
			description = $2,
			kind = $3,
			value = $4,
			min_amount = $5,
			max_discount_amount = $6,
			start_date = $7,
			end_date = $8,
			max_uses = $9,
			active = $10
		WHERE discount_id = $11
	`

	result, err := r.db.Exec(query,
		d.Codigo,
		d.Descripcion,
		d.Tipo,
		d.Valor,
		d.MontoMinimo,
		d.MontoMaximoDescuento,
		d.FechaInicio,
		d.FechaFin,
		d.UsosMaximos,
		d.Activo,
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("error al actualizar descuento: %w", err)
	}

	filas, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar filas afectadas: %w", err)
	}
	if filas == 0 {
		return domain.NewNotFoundError("descuento", d.ID)
	}

	return nil
}

// GetDescuentosVigentes retorna los descuentos activos, dentro de vigencia y
// con usos disponibles
func (r *descuentoRepository) GetDescuentosVigentes(hoy time.Time) ([]domain.Descuento, error) {
	query := `
		SELECT ` + descuentoColumnas + `
		FROM discount
		WHERE active
		AND start_date <= $1
		AND end_date >= $1
		AND (max_uses IS NULL OR current_uses < max_uses)
		ORDER BY code
	`

	rows, err := r.db.Query(query, hoy)
	if err != nil {
		return nil, fmt.Errorf("error al obtener descuentos vigentes: %w", err)
	}
	defer rows.Close()

	var descuentos []domain.Descuento
	for rows.Next() {
		d, err := scanDescuento(rows)
		if err != nil {
			return nil, fmt.Errorf("error al escanear descuento: %w", err)
		}
		descuentos = append(descuentos, *d)
	}

	return descuentos, rows.Err()
}
