package entity

import "time"

// Estados del cliente.
const (
	ClientStatusActivo     = "activo"
	ClientStatusSuspendido = "suspendido"
	ClientStatusCancelado  = "cancelado"
)

// Client suscriptor del servicio. Stratum (estrato 1..6) condiciona el IVA de internet.
type Client struct {
	ID             string
	Identification string // cédula o NIT, único
	Name           string
	Stratum        int
	Email          string
	Phone          string
	Address        string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
