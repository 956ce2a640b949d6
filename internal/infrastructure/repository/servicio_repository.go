package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/Maxito7/gestion-hotelera/internal/domain"
)

type servicioRepository struct {
	db *sql.DB
}

// NewServicioRepository crea una nueva instancia del repositorio de servicios
func NewServicioRepository(db *sql.DB) domain.ServicioRepository {
	return &servicioRepository{db: db}
}

// GetAllServicios retorna todos los servicios activos
func (r *servicioRepository) GetAllServicios() ([]domain.Servicio, error) {
	query := `
		SELECT service_id, name, description, price, active
		FROM service
		WHERE active
		ORDER BY service_id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error al obtener servicios: %w", err)
	}
	defer rows.Close()

	return escanearServicios(rows)
}

// GetServiciosByIDs obtiene los servicios activos con los IDs indicados
func (r *servicioRepository) GetServiciosByIDs(ids []int) ([]domain.Servicio, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT service_id, name, description, price, active
		FROM service
		WHERE active AND service_id = ANY($1)
		ORDER BY service_id
	`

	rows, err := r.db.Query(query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("error al obtener servicios: %w", err)
	}
	defer rows.Close()

	return escanearServicios(rows)
}

func escanearServicios(rows *sql.Rows) ([]domain.Servicio, error) {
	var servicios []domain.Servicio
	for rows.Next() {
		var s domain.Servicio
		if err := rows.Scan(&s.ID, &s.Nombre, &s.Descripcion, &s.Precio, &s.Activo); err != nil {
			return nil, fmt.Errorf("error al escanear servicio: %w", err)
		}
		servicios = append(servicios, s)
	}
	return servicios, rows.Err()
}
