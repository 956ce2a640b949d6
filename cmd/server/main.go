package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/lib/pq"

	"github.com/Maxito7/gestion-hotelera/internal/application"
	"github.com/Maxito7/gestion-hotelera/internal/config"
	"github.com/Maxito7/gestion-hotelera/internal/domain"
	"github.com/Maxito7/gestion-hotelera/internal/email"
	"github.com/Maxito7/gestion-hotelera/internal/infrastructure/repository"
	handlers "github.com/Maxito7/gestion-hotelera/internal/interfaces/http"
	"github.com/Maxito7/gestion-hotelera/internal/scheduler"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.GetDBConnString())
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Error pinging database: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		ExposeHeaders:    "Content-Length",
		MaxAge:           86400,
	}))

	reloj := domain.RelojSistema{}

	// Auditoría (best-effort, respaldada en base de datos)
	auditoria := repository.NewAuditoriaRepository(db)

	// Email Client
	var notificador domain.Notificador
	emailClient, err := email.NewClient(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.SMTPFromName,
		cfg.SMTPFromEmail,
	)
	if err != nil {
		log.Printf("Warning: Email client initialization failed: %v", err)
		notificador = application.NotificadorNulo{}
	} else {
		notificador = emailClient
	}

	// Habitaciones
	habitacionRepo := repository.NewHabitacionRepository(db)
	habitacionService := application.NewHabitacionService(habitacionRepo, auditoria)
	habitacionHandler := handlers.NewHabitacionHandler(habitacionService)

	// Descuentos
	descuentoRepo := repository.NewDescuentoRepository(db)
	descuentoService := application.NewDescuentoService(descuentoRepo, auditoria, reloj)
	descuentoHandler := handlers.NewDescuentoHandler(descuentoService)

	// Reservas
	clienteRepo := repository.NewClienteRepository(db)
	servicioRepo := repository.NewServicioRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	reservaRepo := repository.NewReservaRepository(db)
	reservaService := application.NewReservaService(
		reservaRepo, habitacionService, descuentoRepo, servicioRepo,
		clienteRepo, pagoRepo, auditoria, notificador, reloj)
	reservaHandler := handlers.NewReservaHandler(reservaService)

	// Recepción
	recepcionService := application.NewRecepcionService(
		reservaRepo, habitacionService, clienteRepo, auditoria, notificador, reloj)
	recepcionHandler := handlers.NewRecepcionHandler(recepcionService)

	// Pagos
	pagoService := application.NewPagoService(
		pagoRepo, reservaRepo, clienteRepo, auditoria, notificador, reloj)
	pagoHandler := handlers.NewPagoHandler(pagoService)

	// Límite de creación de reservas: 10 solicitudes por minuto por IP
	limiter := application.NewRateLimiter(1*time.Minute, 10)
	limitarReservas := func(c *fiber.Ctx) error {
		if permitido, err := limiter.Permitir(c.IP()); !permitido {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Next()
	}

	api := app.Group("/api")

	// Rutas de habitaciones
	habitaciones := api.Group("/habitaciones")
	habitaciones.Get("/", habitacionHandler.GetAllHabitaciones)
	habitaciones.Get("/:id", habitacionHandler.GetHabitacionByID)
	habitaciones.Post("/", habitacionHandler.CreateHabitacion)
	habitaciones.Put("/:id", habitacionHandler.UpdateHabitacion)
	habitaciones.Patch("/:id/estado", habitacionHandler.UpdateEstado)

	// Rutas de reservas
	reservas := api.Group("/reservas")
	reservas.Post("/", limitarReservas, reservaHandler.CreateReserva)
	reservas.Get("/:id", reservaHandler.GetReservaByID)
	reservas.Put("/:id", reservaHandler.UpdateReserva)
	reservas.Get("/cliente/:clienteId", reservaHandler.GetReservasCliente)
	reservas.Post("/:id/cancelar", reservaHandler.CancelarReserva)
	reservas.Post("/:id/finalizar", reservaHandler.FinalizarReserva)
	reservas.Post("/:id/descuento", reservaHandler.AplicarDescuento)
	reservas.Put("/:id/servicios", reservaHandler.AsignarServicios)
	reservas.Post("/verificar-disponibilidad", reservaHandler.VerificarDisponibilidad)
	reservas.Post("/:id/pago", pagoHandler.ProcesarPago)
	reservas.Get("/:id/pago", pagoHandler.GetPagoByReserva)

	// Rutas de recepción
	recepcion := api.Group("/recepcion")
	recepcion.Post("/reservas/:id/checkin", recepcionHandler.CheckIn)
	recepcion.Post("/reservas/:id/checkout", recepcionHandler.CheckOut)
	recepcion.Get("/llegadas", recepcionHandler.Llegadas)
	recepcion.Get("/salidas", recepcionHandler.Salidas)
	recepcion.Get("/ocupacion", recepcionHandler.Ocupacion)

	// Rutas de descuentos
	descuentos := api.Group("/descuentos")
	descuentos.Post("/", descuentoHandler.CreateDescuento)
	descuentos.Put("/:id", descuentoHandler.UpdateDescuento)
	descuentos.Get("/vigentes", descuentoHandler.GetDescuentosVigentes)
	descuentos.Get("/:codigo", descuentoHandler.GetDescuentoByCodigo)

	// Scheduler de finalización de reservas vencidas
	reservationScheduler := scheduler.NewReservationScheduler(reservaRepo, reloj)
	go reservationScheduler.Start()
	defer reservationScheduler.Stop()

	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
