package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseCatalog_UTF8(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>
<catalogo>
  <institucion nombre=" Hospital San José " ciudad="Bogotá" telefono="601 555 0101">
    <descripcion>Tercer nivel</descripcion>
  </institucion>
  <institucion nombre="" ciudad="Sin nombre"/>
  <institucion nombre="Colegio Mayor"/>
</catalogo>`

	items, err := parseCatalog(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Hospital San José", items[0].Name)
	require.NotNil(t, items[0].City)
	assert.Equal(t, "Bogotá", *items[0].City)
	require.NotNil(t, items[0].Description)
	assert.Equal(t, "Tercer nivel", *items[0].Description)
	assert.Nil(t, items[0].Email)

	assert.Equal(t, "Colegio Mayor", items[1].Name)
	assert.Nil(t, items[1].City)
}

func TestParseCatalog_ISO88591(t *testing.T) {
	src := `<?xml version="1.0" encoding="ISO-8859-1"?>
<catalogo><institucion nombre="Clínica Señora" ciudad="Medellín"/></catalogo>`
	encoded, err := charmap.ISO8859_1.NewEncoder().String(src)
	require.NoError(t, err)

	items, err := parseCatalog(bytes.NewBufferString(encoded))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Clínica Señora", items[0].Name)
	assert.Equal(t, "Medellín", *items[0].City)
}

func TestParseCatalog_XMLInvalido(t *testing.T) {
	_, err := parseCatalog(strings.NewReader("<catalogo><institucion"))
	assert.Error(t, err)
}
