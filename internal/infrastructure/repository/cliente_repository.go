package repository

import (
	"database/sql"
	"fmt"

	"github.com/Maxito7/gestion-hotelera/internal/domain"
)

type clienteRepository struct {
	db *sql.DB
}

// NewClienteRepository crea una nueva instancia del repositorio de clientes
func NewClienteRepository(db *sql.DB) domain.ClienteRepository {
	return &clienteRepository{db: db}
}

// GetClienteByID obtiene un cliente por su ID
func (r *clienteRepository) GetClienteByID(id int) (*domain.Cliente, error) {
	query := `SELECT client_id, full_name, dni, email FROM client WHERE client_id = $1`

	c := &domain.Cliente{}
	err := r.db.QueryRow(query, id).Scan(&c.ID, &c.Nombres, &c.Dni, &c.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewNotFoundError("cliente", id)
		}
		return nil, fmt.Errorf("error al obtener cliente: %w", err)
	}

	return c, nil
}

// GetClienteByDni obtiene un cliente por su documento
func (r *clienteRepository) GetClienteByDni(dni string) (*domain.Cliente, error) {
	query := `SELECT client_id, full_name, dni, email FROM client WHERE dni = $1`

	c := &domain.Cliente{}
	err := r.db.QueryRow(query, dni).Scan(&c.ID, &c.Nombres, &c.Dni, &c.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewNotFoundError("cliente", dni)
		}
		return nil, fmt.Errorf("error al obtener cliente: %w", err)
	}

	return c, nil
}
