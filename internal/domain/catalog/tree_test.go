package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/domain/catalog"
)

func ptr(v int64) *int64 { return &v }

func rec(id int64, parent *int64) catalog.Record[int64] {
	return catalog.Record[int64]{ID: id, ParentID: parent, Value: id}
}

func TestBuildChain_RaizAHoja(t *testing.T) {
	chain := catalog.BuildChain([]catalog.Record[int64]{
		rec(1, nil),
		rec(2, ptr(1)),
	})

	require.NotNil(t, chain)
	assert.Equal(t, int64(1), chain.Value)
	require.NotNil(t, chain.Next)
	assert.Equal(t, int64(2), chain.Next.Value)
	assert.Nil(t, chain.Next.Next, "la cadena debe terminar en la categoría consultada")
}

// La consulta recursiva devuelve primero la hoja; el orden de entrada no importa.
func TestBuildChain_OrdenHojaPrimero(t *testing.T) {
	chain := catalog.BuildChain([]catalog.Record[int64]{
		rec(7, ptr(4)),
		rec(4, ptr(3)),
		rec(3, nil),
	})

	assert.Equal(t, []int64{3, 4, 7}, chain.Values())
	assert.Len(t, chain.Values(), 3)
}

func TestBuildChain_SoloRaiz(t *testing.T) {
	chain := catalog.BuildChain([]catalog.Record[int64]{rec(5, nil)})

	require.NotNil(t, chain)
	assert.Equal(t, []int64{5}, chain.Values())
	assert.Nil(t, chain.Next)
}

func TestBuildChain_Vacia(t *testing.T) {
	assert.Nil(t, catalog.BuildChain[int64](nil))
	assert.Empty(t, catalog.BuildChain[int64](nil).Values())
}

func TestBuildChain_SinRaiz(t *testing.T) {
	chain := catalog.BuildChain([]catalog.Record[int64]{
		rec(2, ptr(1)),
		rec(3, ptr(2)),
	})
	assert.Nil(t, chain, "sin registro raíz no hay cadena")
}

// Dos hijos del mismo padre (entrada mal formada): gana el primero.
func TestBuildChain_PadreDuplicado_GanaElPrimero(t *testing.T) {
	chain := catalog.BuildChain([]catalog.Record[int64]{
		rec(1, nil),
		rec(2, ptr(1)),
		rec(3, ptr(1)),
	})

	assert.Equal(t, []int64{1, 2}, chain.Values())
}

func TestBuildChain_DosRaices_GanaLaPrimera(t *testing.T) {
	chain := catalog.BuildChain([]catalog.Record[int64]{
		rec(9, nil),
		rec(1, nil),
		rec(2, ptr(1)),
	})

	assert.Equal(t, []int64{9}, chain.Values())
}

// Un ID repetido que apunta a un descendiente no debe generar un ciclo infinito.
func TestBuildChain_CicloSeCorta(t *testing.T) {
	chain := catalog.BuildChain([]catalog.Record[int64]{
		rec(1, nil),
		rec(2, ptr(1)),
		rec(1, ptr(2)),
	})

	assert.Equal(t, []int64{1, 2}, chain.Values())
}
