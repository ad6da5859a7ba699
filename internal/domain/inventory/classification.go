package inventory

// Classification indica si un bulto tiene entrada y/o salida registradas.
// Un uso correcto nunca produce ambas, pero datos heredados pueden tenerlas;
// en ese caso se aplican los dos efectos.
type Classification struct {
	HasEntry bool
	HasExit  bool
}

// State nombra el estado del bulto en el ciclo de stock.
type State string

const (
	StateNoMovement State = "sin_movimiento"
	StateHasEntry   State = "con_entrada"
	StateHasExit    State = "con_salida"
	StateBoth       State = "entrada_y_salida"
)

// State devuelve el estado correspondiente a la clasificación.
func (c Classification) State() State {
	switch {
	case c.HasEntry && c.HasExit:
		return StateBoth
	case c.HasEntry:
		return StateHasEntry
	case c.HasExit:
		return StateHasExit
	default:
		return StateNoMovement
	}
}

// Effect es el cambio de stock que produce una unidad de un detalle del bulto:
// +1 por la entrada, -1 por la salida. Con ambas el efecto neto es 0.
func (c Classification) Effect() int {
	e := 0
	if c.HasEntry {
		e++
	}
	if c.HasExit {
		e--
	}
	return e
}

// Affects indica si los detalles del bulto impactan el stock.
func (c Classification) Affects() bool {
	return c.HasEntry || c.HasExit
}
