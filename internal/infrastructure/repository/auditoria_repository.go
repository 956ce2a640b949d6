package repository

import (
	"database/sql"
	"log"

	"github.com/Maxito7/gestion-hotelera/internal/domain"
)

type auditoriaRepository struct {
	db *sql.DB
}

// NewAuditoriaRepository crea el sumidero de auditoría respaldado en base de
// datos. Es best-effort: un fallo al registrar se loguea y nunca interrumpe
// la operación que lo emitió.
func NewAuditoriaRepository(db *sql.DB) domain.AuditoriaSink {
	return &auditoriaRepository{db: db}
}

// RegistrarAccion persiste una entrada de auditoría
func (r *auditoriaRepository) RegistrarAccion(tipoAccion, detalle, entidad string, entidadID int) {
	query := `
		INSERT INTO audit_log (action_type, detail, entity, entity_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	if _, err := r.db.Exec(query, tipoAccion, detalle, entidad, entidadID); err != nil {
		log.Printf("Error al registrar auditoría (%s, %s #%d): %v", tipoAccion, entidad, entidadID, err)
	}
}
