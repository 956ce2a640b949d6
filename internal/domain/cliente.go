package domain

// Cliente representa la referencia ligera a un cliente del hotel.
// El directorio completo de clientes vive fuera de este núcleo; aquí solo
// se consume lo necesario para verificar pertenencia y notificar.
type Cliente struct {
	ID      int    `json:"id"`
	Nombres string `json:"nombres"`
	Dni     string `json:"dni"`
	Email   string `json:"email"`
}

// RolCliente es el rol de usuario final. Un cliente no puede cancelar sus
// propias reservas; la cancelación siempre la media el personal.
const RolCliente = "CLIENTE"

// EsRolCliente indica si el rol dado corresponde a un cliente final.
// Acepta las variantes "CLIENTE" y "ROLE_CLIENTE" sin distinguir mayúsculas.
func EsRolCliente(rol string) bool {
	r := normalizar(rol)
	return r == RolCliente || r == "ROLE_CLIENTE"
}

// ClienteRepository define las operaciones con clientes
type ClienteRepository interface {
	// GetClienteByID obtiene un cliente por su ID
	GetClienteByID(id int) (*Cliente, error)
	// GetClienteByDni obtiene un cliente por su documento
	GetClienteByDni(dni string) (*Cliente, error)
}

// Servicio representa un servicio adicional del hotel (desayuno, spa, etc.)
type Servicio struct {
	ID          int     `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion"`
	Precio      float64 `json:"precio"`
	Activo      bool    `json:"activo"`
}

// ServicioRepository define la interfaz para operaciones de datos de servicios
type ServicioRepository interface {
	// GetAllServicios retorna todos los servicios activos
	GetAllServicios() ([]Servicio, error)
	// GetServiciosByIDs obtiene los servicios con los IDs indicados
	GetServiciosByIDs(ids []int) ([]Servicio, error)
}
