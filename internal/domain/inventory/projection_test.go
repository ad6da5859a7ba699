package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/domain/inventory"
)

func TestClassification_Effect(t *testing.T) {
	assert.Equal(t, 0, inventory.Classification{}.Effect())
	assert.Equal(t, 1, inventory.Classification{HasEntry: true}.Effect())
	assert.Equal(t, -1, inventory.Classification{HasExit: true}.Effect())
	assert.Equal(t, 0, inventory.Classification{HasEntry: true, HasExit: true}.Effect())
	assert.Equal(t, inventory.StateBoth, inventory.Classification{HasEntry: true, HasExit: true}.State())
	assert.False(t, inventory.Classification{}.Affects())
}

// Editar una entrada sin cambiar el bulto debe producir delta neto cero.
func TestProjection_RevertirYAplicarMismasLineas(t *testing.T) {
	lines := []inventory.Line{{ProductID: "a", Quantity: 10}, {ProductID: "b", Quantity: 3}}
	p := inventory.NewProjection()
	p.Revert(lines, 1)
	p.Apply(lines, 1)

	assert.Empty(t, p.Changes())
	assert.Empty(t, p.Shortages(map[string]int{"a": 0, "b": 0}))
}

func TestProjection_DetectaFaltantes(t *testing.T) {
	p := inventory.NewProjection()
	p.Apply([]inventory.Line{{ProductID: "a", Quantity: 100}}, -1)
	p.Apply([]inventory.Line{{ProductID: "b", Quantity: 1}}, -1)

	shortages := p.Shortages(map[string]int{"a": 5, "b": 1})
	if assert.Len(t, shortages, 1) {
		assert.Equal(t, "a", shortages[0].ProductID)
		assert.Equal(t, 5, shortages[0].Current)
		assert.Equal(t, -95, shortages[0].Projected)
	}
}

// El saldo se evalúa sobre el neto: revertir 10 y aplicar 20 de salida con stock 15 es válido.
func TestProjection_EvaluaSobreSaldoRevertido(t *testing.T) {
	p := inventory.NewProjection()
	p.Revert([]inventory.Line{{ProductID: "a", Quantity: 10}}, -1)
	p.Apply([]inventory.Line{{ProductID: "a", Quantity: 20}}, -1)

	assert.Equal(t, -10, p.Delta("a"))
	assert.Empty(t, p.Shortages(map[string]int{"a": 15}))
	assert.Len(t, p.Shortages(map[string]int{"a": 9}), 1)
}

func TestProjection_ProductIDsOrdenados(t *testing.T) {
	p := inventory.NewProjection()
	p.Add("c", 1)
	p.Add("a", 1)
	p.Add("b", 0)
	assert.Equal(t, []string{"a", "b", "c"}, p.ProductIDs())
	assert.Equal(t, []inventory.Change{{ProductID: "a", Delta: 1}, {ProductID: "c", Delta: 1}}, p.Changes())
}
