package application

import (
	"fmt"
	"log"

	"github.com/Maxito7/gestion-hotelera/internal/domain"
)

// DescuentoService administra los códigos de descuento.
type DescuentoService struct {
	repo      domain.DescuentoRepository
	auditoria domain.AuditoriaSink
	reloj     domain.Reloj
}

func NewDescuentoService(repo domain.DescuentoRepository, auditoria domain.AuditoriaSink, reloj domain.Reloj) *DescuentoService {
	return &DescuentoService{
		repo:      repo,
		auditoria: auditoria,
		reloj:     reloj,
	}
}

// CrearDescuento registra un descuento nuevo con código único normalizado.
func (s *DescuentoService) CrearDescuento(d *domain.Descuento) error {
	if err := s.validarDescuento(d); err != nil {
		return err
	}

	d.Codigo = domain.NormalizarCodigo(d.Codigo)
	if err := s.validarCodigoUnico(d.Codigo, 0); err != nil {
		return err
	}

	if err := s.repo.CreateDescuento(d); err != nil {
		return err
	}

	s.auditoria.RegistrarAccion("CREACION_DESCUENTO",
		fmt.Sprintf("Descuento creado: %s (%s %.2f)", d.Codigo, d.Tipo, d.Valor),
		"Descuento", d.ID)

	log.Printf("Descuento creado: ID=%d, Código=%s", d.ID, d.Codigo)
	return nil
}

// ActualizarDescuento actualiza un descuento existente, verificando unicidad
// del código si cambió.
func (s *DescuentoService) ActualizarDescuento(d *domain.Descuento) error {
	if d == nil || d.ID == 0 {
		return domain.NewValidationError("el descuento y su ID son obligatorios")
	}
	if err := s.validarDescuento(d); err != nil {
		return err
	}

	existente, err := s.repo.GetDescuentoByID(d.ID)
	if err != nil {
		return err
	}

	d.Codigo = domain.NormalizarCodigo(d.Codigo)
	if existente.Codigo != d.Codigo {
		if err := s.validarCodigoUnico(d.Codigo, d.ID); err != nil {
			return err
		}
	}

	if err := s.repo.UpdateDescuento(d); err != nil {
		return err
	}

	log.Printf("Descuento actualizado: ID=%d, Código=%s", d.ID, d.Codigo)
	return nil
}

// BuscarPorCodigo busca un descuento por su código.
func (s *DescuentoService) BuscarPorCodigo(codigo string) (*domain.Descuento, error) {
	if domain.NormalizarCodigo(codigo) == "" {
		return nil, domain.NewValidationError("el código del descuento es obligatorio")
	}
	return s.repo.GetDescuentoByCodigo(domain.NormalizarCodigo(codigo))
}

// ObtenerVigentes retorna los descuentos redimibles hoy.
func (s *DescuentoService) ObtenerVigentes() ([]domain.Descuento, error) {
	return s.repo.GetDescuentosVigentes(s.reloj.Hoy())
}

func (s *DescuentoService) validarDescuento(d *domain.Descuento) error {
	if d == nil {
		return domain.NewValidationError("el descuento no puede ser nulo")
	}
	if domain.NormalizarCodigo(d.Codigo) == "" {
		return domain.NewValidationError("el código del descuento es obligatorio")
	}
	if d.Valor <= 0 {
		return domain.NewValidationError("el valor del descuento debe ser positivo")
	}
	if d.FechaInicio.IsZero() || d.FechaFin.IsZero() {
		return domain.NewValidationError("las fechas de inicio y fin son obligatorias")
	}
	if d.FechaInicio.After(d.FechaFin) {
		return domain.NewValidationError("la fecha de inicio debe ser anterior a la fecha de fin")
	}
	if _, err := domain.ParseTipoDescuento(string(d.Tipo)); err != nil {
		return err
	}
	return nil
}

func (s *DescuentoService) validarCodigoUnico(codigo string, excluirID int) error {
	existente, err := s.repo.GetDescuentoByCodigo(codigo)
	if err != nil {
		if domain.IsNotFoundError(err) != nil {
			return nil
		}
		return err
	}
	if existente != nil && existente.ID != excluirID {
		return domain.NewValidationError("ya existe un descuento con el código %s", codigo)
	}
	return nil
}
