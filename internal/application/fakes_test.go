package application

import (
	"sort"
	"time"

	"github.com/Maxito7/gestion-hotelera/internal/domain"
)

// Dobles en memoria para los servicios de aplicación. Replican el contrato de
// los repositorios reales, incluida la verificación de traslape dentro del
// guardado y la aplicación condicional de descuentos.

type relojFijo struct {
	ahora time.Time
}

func (r relojFijo) Ahora() time.Time { return r.ahora }
func (r relojFijo) Hoy() time.Time {
	return time.Date(r.ahora.Year(), r.ahora.Month(), r.ahora.Day(), 0, 0, 0, 0, time.UTC)
}

type accionAuditada struct {
	Tipo      string
	Detalle   string
	Entidad   string
	EntidadID int
}

type auditoriaMemoria struct {
	acciones []accionAuditada
}

func (a *auditoriaMemoria) RegistrarAccion(tipoAccion, detalle, entidad string, entidadID int) {
	a.acciones = append(a.acciones, accionAuditada{tipoAccion, detalle, entidad, entidadID})
}

func (a *auditoriaMemoria) tipos() []string {
	tipos := make([]string, 0, len(a.acciones))
	for _, acc := range a.acciones {
		tipos = append(tipos, acc.Tipo)
	}
	return tipos
}

type notificacion struct {
	Tipo      string
	Email     string
	ReservaID int
}

type notificadorMemoria struct {
	enviadas []notificacion
}

func (n *notificadorMemoria) EnviarConfirmacionReserva(email, nombre string, reserva *domain.Reserva) {
	n.enviadas = append(n.enviadas, notificacion{"CONFIRMACION", email, reserva.ID})
}

func (n *notificadorMemoria) EnviarNotificacionCheckIn(email, nombre string, reservaID int) {
	n.enviadas = append(n.enviadas, notificacion{"CHECKIN", email, reservaID})
}

func (n *notificadorMemoria) EnviarNotificacionCheckOut(email, nombre string, reservaID int) {
	n.enviadas = append(n.enviadas, notificacion{"CHECKOUT", email, reservaID})
}

func (n *notificadorMemoria) EnviarEncuestaPostEstadia(email, nombre string, reservaID int, fecha time.Time) {
	n.enviadas = append(n.enviadas, notificacion{"ENCUESTA", email, reservaID})
}

func (n *notificadorMemoria) EnviarNotificacionPago(email, nombre string, reservaID int, montoTotal float64, metodo string) {
	n.enviadas = append(n.enviadas, notificacion{"PAGO", email, reservaID})
}

func (n *notificadorMemoria) tipos() []string {
	tipos := make([]string, 0, len(n.enviadas))
	for _, env := range n.enviadas {
		tipos = append(tipos, env.Tipo)
	}
	return tipos
}

// --- Repositorio de reservas en memoria ---

type reservaRepoMemoria struct {
	reservas  map[int]*domain.Reserva
	siguiente int

	// Replica la transacción del repositorio real: el uso del descuento se
	// incrementa junto con la asociación a la reserva.
	descuentos *descuentoRepoMemoria
}

func nuevoReservaRepoMemoria() *reservaRepoMemoria {
	return &reservaRepoMemoria{
		reservas:  make(map[int]*domain.Reserva),
		siguiente: 1,
	}
}

func (r *reservaRepoMemoria) copiar(reserva *domain.Reserva) *domain.Reserva {
	copia := *reserva
	copia.Servicios = append([]domain.ReservaServicio(nil), reserva.Servicios...)
	return &copia
}

func (r *reservaRepoMemoria) GetReservaByID(id int) (*domain.Reserva, error) {
	reserva, ok := r.reservas[id]
	if !ok {
		return nil, domain.NewNotFoundError("reserva", id)
	}
	return r.copiar(reserva), nil
}

func (r *reservaRepoMemoria) GuardarConVerificacion(reserva *domain.Reserva) error {
	conflictivas, err := r.FindConflictivas(reserva.HabitacionID, reserva.FechaInicio, reserva.FechaFin, reserva.ID)
	if err != nil {
		return err
	}
	if len(conflictivas) > 0 {
		return domain.NewConflictError(&conflictivas[0])
	}

	if reserva.ID == 0 {
		reserva.ID = r.siguiente
		r.siguiente++
	} else if _, ok := r.reservas[reserva.ID]; !ok {
		return domain.NewNotFoundError("reserva", reserva.ID)
	}

	r.reservas[reserva.ID] = r.copiar(reserva)
	return nil
}

func (r *reservaRepoMemoria) FindConflictivas(habitacionID int, inicio, fin time.Time, excluirID int) ([]domain.Reserva, error) {
	var conflictivas []domain.Reserva
	for _, reserva := range r.reservas {
		if reserva.HabitacionID != habitacionID || reserva.ID == excluirID {
			continue
		}
		if !reserva.Estado.EsViva() {
			continue
		}
		if domain.HayTraslape(reserva.FechaInicio, reserva.FechaFin, inicio, fin) {
			conflictivas = append(conflictivas, *r.copiar(reserva))
		}
	}
	sort.Slice(conflictivas, func(i, j int) bool { return conflictivas[i].ID < conflictivas[j].ID })
	return conflictivas, nil
}

func (r *reservaRepoMemoria) UpdateReservaEstado(id int, estado domain.EstadoReserva) error {
	reserva, ok := r.reservas[id]
	if !ok {
		return domain.NewNotFoundError("reserva", id)
	}
	reserva.Estado = estado
	return nil
}

func (r *reservaRepoMemoria) RegistrarCheckIn(id int, momento time.Time) error {
	reserva, ok := r.reservas[id]
	if !ok {
		return domain.NewNotFoundError("reserva", id)
	}
	reserva.Estado = domain.ReservaActiva
	reserva.FechaCheckinReal = &momento
	return nil
}

func (r *reservaRepoMemoria) RegistrarCheckOut(id int, momento time.Time) error {
	reserva, ok := r.reservas[id]
	if !ok {
		return domain.NewNotFoundError("reserva", id)
	}
	reserva.Estado = domain.ReservaFinalizada
	if reserva.FechaCheckoutReal == nil {
		reserva.FechaCheckoutReal = &momento
	}
	return nil
}

func (r *reservaRepoMemoria) AplicarDescuento(reservaID int, descuentoID int, monto float64) error {
	reserva, ok := r.reservas[reservaID]
	if !ok {
		return domain.NewNotFoundError("reserva", reservaID)
	}
	if reserva.DescuentoID != nil {
		return domain.NewStateError("la reserva ya tiene un descuento aplicado")
	}
	if r.descuentos != nil {
		if err := r.descuentos.incrementarUso(descuentoID); err != nil {
			return err
		}
	}
	reserva.DescuentoID = &descuentoID
	reserva.MontoDescuento = monto
	return nil
}

func (r *reservaRepoMemoria) AsignarServicios(reservaID int, servicios []domain.ReservaServicio) error {
	reserva, ok := r.reservas[reservaID]
	if !ok {
		return domain.NewNotFoundError("reserva", reservaID)
	}
	reserva.Servicios = append([]domain.ReservaServicio(nil), servicios...)
	return nil
}

func (r *reservaRepoMemoria) GetReservasCliente(clienteID int) ([]domain.Reserva, error) {
	var reservas []domain.Reserva
	for _, reserva := range r.reservas {
		if reserva.ClienteID == clienteID {
			reservas = append(reservas, *r.copiar(reserva))
		}
	}
	sort.Slice(reservas, func(i, j int) bool { return reservas[i].ID < reservas[j].ID })
	return reservas, nil
}

func (r *reservaRepoMemoria) GetLlegadas(fecha time.Time) ([]domain.Reserva, error) {
	var reservas []domain.Reserva
	for _, reserva := range r.reservas {
		if reserva.Estado == domain.ReservaPendiente && reserva.FechaInicio.Equal(fecha) {
			reservas = append(reservas, *r.copiar(reserva))
		}
	}
	sort.Slice(reservas, func(i, j int) bool { return reservas[i].ID < reservas[j].ID })
	return reservas, nil
}

func (r *reservaRepoMemoria) GetSalidas(fecha time.Time) ([]domain.Reserva, error) {
	var reservas []domain.Reserva
	for _, reserva := range r.reservas {
		if reserva.Estado == domain.ReservaActiva && reserva.FechaFin.Equal(fecha) {
			reservas = append(reservas, *r.copiar(reserva))
		}
	}
	sort.Slice(reservas, func(i, j int) bool { return reservas[i].ID < reservas[j].ID })
	return reservas, nil
}

func (r *reservaRepoMemoria) FinalizarExpiradas(hoy time.Time) (int, error) {
	finalizadas := 0
	for _, reserva := range r.reservas {
		if reserva.Estado == domain.ReservaActiva && reserva.FechaFin.Before(hoy) {
			reserva.Estado = domain.ReservaFinalizada
			finalizadas++
		}
	}
	return finalizadas, nil
}

// --- Repositorio de habitaciones en memoria ---

type habitacionRepoMemoria struct {
	habitaciones map[int]*domain.Habitacion
	siguiente    int
}

func nuevoHabitacionRepoMemoria() *habitacionRepoMemoria {
	return &habitacionRepoMemoria{
		habitaciones: make(map[int]*domain.Habitacion),
		siguiente:    1,
	}
}

func (r *habitacionRepoMemoria) agregar(h domain.Habitacion) *domain.Habitacion {
	if h.ID == 0 {
		h.ID = r.siguiente
		r.siguiente++
	}
	copia := h
	r.habitaciones[h.ID] = &copia
	devuelta := copia
	return &devuelta
}

func (r *habitacionRepoMemoria) GetHabitacionByID(id int) (*domain.Habitacion, error) {
	h, ok := r.habitaciones[id]
	if !ok {
		return nil, domain.NewNotFoundError("habitación", id)
	}
	copia := *h
	return &copia, nil
}

func (r *habitacionRepoMemoria) GetHabitacionByNumero(numero string) (*domain.Habitacion, error) {
	for _, h := range r.habitaciones {
		if h.Numero == numero {
			copia := *h
			return &copia, nil
		}
	}
	return nil, domain.NewNotFoundError("habitación", numero)
}

func (r *habitacionRepoMemoria) GetAllHabitaciones() ([]domain.Habitacion, error) {
	var habitaciones []domain.Habitacion
	for _, h := range r.habitaciones {
		habitaciones = append(habitaciones, *h)
	}
	sort.Slice(habitaciones, func(i, j int) bool { return habitaciones[i].ID < habitaciones[j].ID })
	return habitaciones, nil
}

func (r *habitacionRepoMemoria) CreateHabitacion(h *domain.Habitacion) error {
	creada := r.agregar(*h)
	h.ID = creada.ID
	return nil
}

func (r *habitacionRepoMemoria) UpdateHabitacion(h *domain.Habitacion) error {
	if _, ok := r.habitaciones[h.ID]; !ok {
		return domain.NewNotFoundError("habitación", h.ID)
	}
	copia := *h
	r.habitaciones[h.ID] = &copia
	return nil
}

func (r *habitacionRepoMemoria) UpdateEstado(id int, estado domain.EstadoHabitacion) error {
	h, ok := r.habitaciones[id]
	if !ok {
		return domain.NewNotFoundError("habitación", id)
	}
	h.Estado = estado
	return nil
}

func (r *habitacionRepoMemoria) ContarOcupadas(fecha time.Time) (int, error) {
	ocupadas := 0
	for _, h := range r.habitaciones {
		if h.Estado == domain.HabitacionOcupada {
			ocupadas++
		}
	}
	return ocupadas, nil
}

// --- Repositorio de descuentos en memoria ---

type descuentoRepoMemoria struct {
	descuentos map[int]*domain.Descuento
	siguiente  int
}

func nuevoDescuentoRepoMemoria() *descuentoRepoMemoria {
	return &descuentoRepoMemoria{
		descuentos: make(map[int]*domain.Descuento),
		siguiente:  1,
	}
}

func (r *descuentoRepoMemoria) agregar(d domain.Descuento) *domain.Descuento {
	if d.ID == 0 {
		d.ID = r.siguiente
		r.siguiente++
	}
	copia := d
	r.descuentos[d.ID] = &copia
	return &copia
}

func (r *descuentoRepoMemoria) GetDescuentoByID(id int) (*domain.Descuento, error) {
	d, ok := r.descuentos[id]
	if !ok {
		return nil, domain.NewNotFoundError("descuento", id)
	}
	copia := *d
	return &copia, nil
}

func (r *descuentoRepoMemoria) GetDescuentoByCodigo(codigo string) (*domain.Descuento, error) {
	for _, d := range r.descuentos {
		if d.Codigo == codigo {
			copia := *d
			return &copia, nil
		}
	}
	return nil, domain.NewNotFoundError("descuento", codigo)
}

func (r *descuentoRepoMemoria) CreateDescuento(d *domain.Descuento) error {
	creado := r.agregar(*d)
	d.ID = creado.ID
	return nil
}

func (r *descuentoRepoMemoria) UpdateDescuento(d *domain.Descuento) error {
	if _, ok := r.descuentos[d.ID]; !ok {
		return domain.NewNotFoundError("descuento", d.ID)
	}
	copia := *d
	r.descuentos[d.ID] = &copia
	return nil
}

func (r *descuentoRepoMemoria) GetDescuentosVigentes(hoy time.Time) ([]domain.Descuento, error) {
	var vigentes []domain.Descuento
	for _, d := range r.descuentos {
		if d.EsValido(hoy) {
			vigentes = append(vigentes, *d)
		}
	}
	sort.Slice(vigentes, func(i, j int) bool { return vigentes[i].ID < vigentes[j].ID })
	return vigentes, nil
}

// incrementarUso simula la actualización condicional del repositorio real
func (r *descuentoRepoMemoria) incrementarUso(id int) error {
	d, ok := r.descuentos[id]
	if !ok {
		return domain.NewNotFoundError("descuento", id)
	}
	if !d.Activo || (d.UsosMaximos != nil && d.UsosActuales >= *d.UsosMaximos) {
		return domain.NewStateError("el descuento ya no tiene usos disponibles")
	}
	d.UsosActuales++
	return nil
}

// --- Otros repositorios en memoria ---

type servicioRepoMemoria struct {
	servicios []domain.Servicio
}

func (r *servicioRepoMemoria) GetAllServicios() ([]domain.Servicio, error) {
	return append([]domain.Servicio(nil), r.servicios...), nil
}

func (r *servicioRepoMemoria) GetServiciosByIDs(ids []int) ([]domain.Servicio, error) {
	var encontrados []domain.Servicio
	for _, id := range ids {
		for _, s := range r.servicios {
			if s.ID == id && s.Activo {
				encontrados = append(encontrados, s)
			}
		}
	}
	return encontrados, nil
}

type clienteRepoMemoria struct {
	clientes map[int]*domain.Cliente
}

func (r *clienteRepoMemoria) GetClienteByID(id int) (*domain.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, domain.NewNotFoundError("cliente", id)
	}
	return c, nil
}

func (r *clienteRepoMemoria) GetClienteByDni(dni string) (*domain.Cliente, error) {
	for _, c := range r.clientes {
		if c.Dni == dni {
			return c, nil
		}
	}
	return nil, domain.NewNotFoundError("cliente", dni)
}

type pagoRepoMemoria struct {
	pagos     map[int]*domain.Pago
	siguiente int
}

func nuevoPagoRepoMemoria() *pagoRepoMemoria {
	return &pagoRepoMemoria{
		pagos:     make(map[int]*domain.Pago),
		siguiente: 1,
	}
}

func (r *pagoRepoMemoria) CreatePago(pago *domain.Pago) error {
	pago.ID = r.siguiente
	r.siguiente++
	copia := *pago
	r.pagos[pago.ReservaID] = &copia
	return nil
}

func (r *pagoRepoMemoria) GetPagoByReservaID(reservaID int) (*domain.Pago, error) {
	pago, ok := r.pagos[reservaID]
	if !ok {
		return nil, nil
	}
	copia := *pago
	return &copia, nil
}

// --- Entorno de prueba compartido ---

type entornoPrueba struct {
	reservaRepo    *reservaRepoMemoria
	habitacionRepo *habitacionRepoMemoria
	descuentoRepo  *descuentoRepoMemoria
	servicioRepo   *servicioRepoMemoria
	clienteRepo    *clienteRepoMemoria
	pagoRepo       *pagoRepoMemoria
	auditoria      *auditoriaMemoria
	notificador    *notificadorMemoria
	reloj          relojFijo

	habitacionService *HabitacionService
	reservaService    *ReservaService
	recepcionService  *RecepcionService
	pagoService       *PagoService
	descuentoService  *DescuentoService
}

func nuevoEntorno(hoy time.Time) *entornoPrueba {
	e := &entornoPrueba{
		reservaRepo:    nuevoReservaRepoMemoria(),
		habitacionRepo: nuevoHabitacionRepoMemoria(),
		descuentoRepo:  nuevoDescuentoRepoMemoria(),
		servicioRepo:   &servicioRepoMemoria{},
		clienteRepo:    &clienteRepoMemoria{clientes: make(map[int]*domain.Cliente)},
		pagoRepo:       nuevoPagoRepoMemoria(),
		auditoria:      &auditoriaMemoria{},
		notificador:    &notificadorMemoria{},
		reloj:          relojFijo{ahora: hoy},
	}
	e.reservaRepo.descuentos = e.descuentoRepo

	e.habitacionService = NewHabitacionService(e.habitacionRepo, e.auditoria)
	e.reservaService = NewReservaService(
		e.reservaRepo, e.habitacionService, e.descuentoRepo, e.servicioRepo,
		e.clienteRepo, e.pagoRepo, e.auditoria, e.notificador, e.reloj)
	e.recepcionService = NewRecepcionService(
		e.reservaRepo, e.habitacionService, e.clienteRepo, e.auditoria, e.notificador, e.reloj)
	e.pagoService = NewPagoService(
		e.pagoRepo, e.reservaRepo, e.clienteRepo, e.auditoria, e.notificador, e.reloj)
	e.descuentoService = NewDescuentoService(e.descuentoRepo, e.auditoria, e.reloj)

	e.clienteRepo.clientes[1] = &domain.Cliente{
		ID:      1,
		Nombres: "María Fernández",
		Dni:     "45879632",
		Email:   "maria@example.com",
	}

	return e
}
