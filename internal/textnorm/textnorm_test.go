package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "press banca inclinado", Fold("  Press Banca Inclinado "))
	assert.Equal(t, "dia", Fold("Día"))
	assert.Equal(t, "seccion", Fold("Sección"))
	assert.Equal(t, "", Fold("   "))

	// Folding is idempotent.
	assert.Equal(t, Fold("Día"), Fold(Fold("Día")))
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", Email(" Ana@Example.COM "))
}

func TestEmailKey(t *testing.T) {
	assert.Equal(t, "ana_example_com", EmailKey("Ana@example.com"))
}

func TestID(t *testing.T) {
	assert.Equal(t, "press_banca_inclinado", ID("Press Banca Inclinado"))
	assert.Equal(t, "remo_t_bar", ID("Remo T-Bar"))
	assert.Equal(t, "extension_cuadriceps", ID("Extensión Cuádriceps"))
}
