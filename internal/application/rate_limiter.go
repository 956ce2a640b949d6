package application

import (
	"fmt"
	"sync"
	"time"
)

// RateLimiter limita las solicitudes de creación de reservas por origen,
// con ventanas de tiempo fijas. Estado compartido explícito protegido por
// mutex; una goroutine de limpieza elimina ventanas vencidas.
type RateLimiter struct {
	ventanas map[string]*ventanaLimite
	mu       sync.Mutex
	duracion time.Duration
	limite   int
}

type ventanaLimite struct {
	conteo int
	vence  time.Time
}

// NewRateLimiter crea un rate limiter con la ventana y el límite dados.
func NewRateLimiter(duracion time.Duration, limite int) *RateLimiter {
	rl := &RateLimiter{
		ventanas: make(map[string]*ventanaLimite),
		duracion: duracion,
		limite:   limite,
	}

	go rl.limpiezaPeriodica()

	return rl
}

// Permitir verifica si se admite una solicitud para el origen dado (IP).
func (rl *RateLimiter) Permitir(origen string) (bool, error) {
	if origen == "" {
		origen = "anonimo"
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	ahora := time.Now()
	ventana, existe := rl.ventanas[origen]

	if !existe || ahora.After(ventana.vence) {
		rl.ventanas[origen] = &ventanaLimite{
			conteo: 1,
			vence:  ahora.Add(rl.duracion),
		}
		return true, nil
	}

	if ventana.conteo >= rl.limite {
		restante := ventana.vence.Sub(ahora)
		return false, fmt.Errorf("límite de solicitudes excedido; intente de nuevo en %v", restante.Round(time.Second))
	}

	ventana.conteo++
	return true, nil
}

func (rl *RateLimiter) limpiezaPeriodica() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		ahora := time.Now()
		for origen, ventana := range rl.ventanas {
			if ahora.After(ventana.vence) {
				delete(rl.ventanas, origen)
			}
		}
		rl.mu.Unlock()
	}
}
