package inventory

import "sort"

// Line es la vista mínima de un detalle de bulto que necesita la proyección.
type Line struct {
	ProductID string
	Quantity  int
}

// Shortage describe un producto cuyo saldo proyectado sería negativo.
type Shortage struct {
	ProductID string
	Current   int
	Projected int
}

// Projection acumula deltas de stock por producto para validar una operación completa
// (revertir lo anterior y aplicar lo nuevo) antes de escribir nada.
type Projection struct {
	deltas map[string]int
	order  []string
}

// NewProjection crea una proyección vacía.
func NewProjection() *Projection {
	return &Projection{deltas: make(map[string]int)}
}

// Add suma delta al producto. Los productos se recuerdan en orden de aparición.
func (p *Projection) Add(productID string, delta int) {
	if _, ok := p.deltas[productID]; !ok {
		p.order = append(p.order, productID)
	}
	p.deltas[productID] += delta
}

// Apply suma sign*Quantity de cada línea (sign +1 aplica una entrada, -1 una salida).
func (p *Projection) Apply(lines []Line, sign int) {
	for _, l := range lines {
		p.Add(l.ProductID, sign*l.Quantity)
	}
}

// Revert deshace el efecto de las líneas con el signo dado.
func (p *Projection) Revert(lines []Line, sign int) {
	p.Apply(lines, -sign)
}

// ProductIDs devuelve todos los productos afectados, ordenados para bloquear filas
// siempre en el mismo orden.
func (p *Projection) ProductIDs() []string {
	ids := make([]string, len(p.order))
	copy(ids, p.order)
	sort.Strings(ids)
	return ids
}

// Delta devuelve el cambio neto acumulado para el producto.
func (p *Projection) Delta(productID string) int {
	return p.deltas[productID]
}

// Changes devuelve los productos con delta neto distinto de cero, en orden estable.
func (p *Projection) Changes() []Change {
	var out []Change
	for _, id := range p.ProductIDs() {
		if d := p.deltas[id]; d != 0 {
			out = append(out, Change{ProductID: id, Delta: d})
		}
	}
	return out
}

// Change cambio neto de stock de un producto.
type Change struct {
	ProductID string
	Delta     int
}

// Shortages compara los saldos actuales con los proyectados y devuelve los productos
// que quedarían en negativo. current debe contener todos los productos afectados.
func (p *Projection) Shortages(current map[string]int) []Shortage {
	var out []Shortage
	for _, id := range p.ProductIDs() {
		cur := current[id]
		if projected := cur + p.deltas[id]; projected < 0 {
			out = append(out, Shortage{ProductID: id, Current: cur, Projected: projected})
		}
	}
	return out
}
