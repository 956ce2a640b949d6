package email

import (
	"crypto/tls"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/Maxito7/gestion-hotelera/internal/domain"
)

// Client es el cliente de correo electrónico. Implementa domain.Notificador:
// todos los envíos son best-effort y los fallos solo se registran en el log.
type Client struct {
	host      string
	port      int
	user      string
	password  string
	fromName  string
	fromEmail string
}

// NewClient crea una nueva instancia del cliente de email
func NewClient(host, portStr, user, password, fromName, fromEmail string) (*Client, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("puerto SMTP inválido: %w", err)
	}

	return &Client{
		host:      host,
		port:      port,
		user:      user,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}, nil
}

// SendEmail envía un correo electrónico
func (c *Client) SendEmail(to, subject, htmlBody string) error {
	m := mail.NewMsg()

	if err := m.From(fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)); err != nil {
		return fmt.Errorf("error al configurar remitente: %w", err)
	}
	if err := m.To(to); err != nil {
		return fmt.Errorf("error al configurar destinatario: %w", err)
	}

	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(c.host,
		mail.WithPort(c.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.user),
		mail.WithPassword(c.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTLSConfig(&tls.Config{
			ServerName: c.host,
		}),
	)
	if err != nil {
		return fmt.Errorf("error al crear cliente SMTP (host=%s port=%d): %w", c.host, c.port, err)
	}

	if err := client.DialAndSend(m); err != nil {
		return fmt.Errorf("error al enviar correo (host=%s port=%d): %w", c.host, c.port, err)
	}

	return nil
}

// EnviarConfirmacionReserva envía el correo de confirmación de la reserva
func (c *Client) EnviarConfirmacionReserva(email, nombre string, reserva *domain.Reserva) {
	subject := fmt.Sprintf("Confirmación de Reserva #%d - %s", reserva.ID, c.fromName)

	htmlBody := fmt.Sprintf(`
		%s
		<p>Estimado/a %s,</p>
		<p>Su reserva ha sido registrada exitosamente. A continuación los detalles:</p>
		<div class="details">
			<p><strong>Número de Reserva:</strong> #%d</p>
			<p><strong>Entrada:</strong> %s</p>
			<p><strong>Salida:</strong> %s</p>
			<p><strong>Estado:</strong> %s</p>
			<p class="total"><strong>Total:</strong> $%.2f</p>
		</div>
		%s`,
		encabezadoHTML("¡Reserva Registrada!"),
		nombre,
		reserva.ID,
		reserva.FechaInicio.Format("02/01/2006"),
		reserva.FechaFin.Format("02/01/2006"),
		reserva.Estado,
		reserva.TotalPagar,
		pieHTML(),
	)

	c.enviar(email, subject, htmlBody, "confirmación de reserva")
}

// EnviarNotificacionCheckIn envía la notificación de llegada
func (c *Client) EnviarNotificacionCheckIn(email, nombre string, reservaID int) {
	subject := fmt.Sprintf("Bienvenido/a - Check-in Reserva #%d", reservaID)

	htmlBody := fmt.Sprintf(`
		%s
		<p>Estimado/a %s,</p>
		<p>Su check-in de la reserva #%d se registró correctamente.
		¡Le deseamos una excelente estadía!</p>
		%s`,
		encabezadoHTML("¡Bienvenido/a!"),
		nombre,
		reservaID,
		pieHTML(),
	)

	c.enviar(email, subject, htmlBody, "notificación de check-in")
}

// EnviarNotificacionCheckOut envía la notificación de salida
func (c *Client) EnviarNotificacionCheckOut(email, nombre string, reservaID int) {
	subject := fmt.Sprintf("Gracias por su visita - Check-out Reserva #%d", reservaID)

	htmlBody := fmt.Sprintf(`
		%s
		<p>Estimado/a %s,</p>
		<p>Su check-out de la reserva #%d se registró correctamente.
		Gracias por hospedarse con nosotros.</p>
		%s`,
		encabezadoHTML("¡Hasta pronto!"),
		nombre,
		reservaID,
		pieHTML(),
	)

	c.enviar(email, subject, htmlBody, "notificación de check-out")
}

// EnviarEncuestaPostEstadia envía la invitación a la encuesta de satisfacción
func (c *Client) EnviarEncuestaPostEstadia(email, nombre string, reservaID int, fecha time.Time) {
	subject := "Encuesta de Satisfacción - Tu Opinión es Importante"

	htmlBody := fmt.Sprintf(`
		%s
		<p>Estimado/a %s,</p>
		<p>Esperamos que haya disfrutado su estadía finalizada el %s.
		Nos encantaría conocer su opinión sobre la reserva #%d:
		por favor complete nuestra breve encuesta de satisfacción.</p>
		%s`,
		encabezadoHTML("¡Gracias por su estadía!"),
		nombre,
		fecha.Format("02/01/2006"),
		reservaID,
		pieHTML(),
	)

	c.enviar(email, subject, htmlBody, "encuesta post-estadía")
}

// EnviarNotificacionPago envía el comprobante del pago registrado
func (c *Client) EnviarNotificacionPago(email, nombre string, reservaID int, montoTotal float64, metodo string) {
	subject := fmt.Sprintf("Pago Registrado - Reserva #%d", reservaID)

	htmlBody := fmt.Sprintf(`
		%s
		<p>Estimado/a %s,</p>
		<p>Registramos el pago de su reserva #%d.</p>
		<div class="details">
			<p><strong>Método:</strong> %s</p>
			<p class="total"><strong>Total pagado:</strong> $%.2f</p>
		</div>
		%s`,
		encabezadoHTML("Pago Registrado"),
		nombre,
		reservaID,
		metodo,
		montoTotal,
		pieHTML(),
	)

	c.enviar(email, subject, htmlBody, "notificación de pago")
}

func (c *Client) enviar(email, subject, htmlBody, descripcion string) {
	if err := c.SendEmail(email, subject, htmlBody); err != nil {
		log.Printf("Error al enviar %s a %s: %v", descripcion, email, err)
	}
}

func encabezadoHTML(titulo string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="es">
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); color: white; padding: 30px 20px; text-align: center; }
		.details { background-color: #f8f9fa; border-left: 4px solid #667eea; padding: 15px; margin: 15px 0; }
		.total { font-size: 18px; color: #4CAF50; }
		.footer { text-align: center; padding: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header"><h1>%s</h1></div>
		<div class="content">`, titulo)
}

func pieHTML() string {
	return `
		</div>
		<div class="footer">
			<p>Este es un correo automático, por favor no responder.</p>
		</div>
	</div>
</body>
</html>`
}
