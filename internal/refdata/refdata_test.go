package refdata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Numéro de commande,Code agence,Statut,Classification,HRBP
54,LV2-LV2,N2 - Niveau 2 (4B +),04B - 225,Gabrielle Humbert
646,LV2-LV2,N1 - Niveau 1 (2A / 4A),03B - 195 Equipe,Houria Gherras
`

func TestParseCSV(t *testing.T) {
	table, err := ParseCSV(strings.NewReader(sampleCSV), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, "Numéro de commande", table.KeyColumn())

	// Keys are normalized at load time.
	rec, err := table.Resolve("000646")
	require.NoError(t, err)
	assert.Equal(t, "000646", rec.OrderID)
	assert.Equal(t, "LV2-LV2", rec.AgencyCode)
	assert.Equal(t, "N1 - Niveau 1 (2A / 4A)", rec.Status)
	assert.Equal(t, "03B - 195 Equipe", rec.Classification)
	assert.Equal(t, "Houria Gherras", rec.HRBP)
}

func TestParseCSVSemicolonDelimiter(t *testing.T) {
	csv := `Num commande;Code agence;Statut;Classification;HRBP
54;LV2-LV2;N2 - Niveau 2 (4B +);04B - 225;Gabrielle Humbert
`
	table, err := ParseCSV(strings.NewReader(csv), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, table.Len())
	assert.Equal(t, "Num commande", table.KeyColumn())

	_, err = table.Resolve("000054")
	assert.NoError(t, err)
}

func TestParseCSVColumnOrderIrrelevant(t *testing.T) {
	csv := `HRBP,Statut,NUMERO COMMANDE,Classification,Code agence,Commentaire
Houria Gherras,N1 - Niveau 1 (2A / 4A),646,03B - 195 Equipe,LV2-LV2,ignoré
`
	table, err := ParseCSV(strings.NewReader(csv), nil)
	require.NoError(t, err)

	rec, err := table.Resolve("000646")
	require.NoError(t, err)
	assert.Equal(t, "Houria Gherras", rec.HRBP)
	assert.Equal(t, "N1 - Niveau 1 (2A / 4A)", rec.Status)
}

func TestParseCSVMissingColumn(t *testing.T) {
	csv := `Numéro de commande,Code agence,Classification,HRBP
54,LV2-LV2,04B - 225,Gabrielle Humbert
`
	_, err := ParseCSV(strings.NewReader(csv), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Statut")
}

func TestParseCSVNoKeyColumn(t *testing.T) {
	csv := `Identifiant,Code agence,Statut,Classification,HRBP
54,LV2-LV2,N2,04B,Gabrielle Humbert
`
	_, err := ParseCSV(strings.NewReader(csv), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order-number column")
}

func TestParseCSVSkipsEmptyAndKeylessRows(t *testing.T) {
	csv := `Numéro de commande,Code agence,Statut,Classification,HRBP
54,LV2-LV2,N2 - Niveau 2 (4B +),04B - 225,Gabrielle Humbert
,,,,
,LV2-LV2,N1,03B,Houria Gherras
`
	table, err := ParseCSV(strings.NewReader(csv), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestResolveNotFound(t *testing.T) {
	table, err := ParseCSV(strings.NewReader(sampleCSV), nil)
	require.NoError(t, err)

	_, err = table.Resolve("000999")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestDuplicateKeysFirstRowWins(t *testing.T) {
	records := []Record{
		{OrderID: "646", HRBP: "First Row"},
		{OrderID: "000646", HRBP: "Second Row"},
	}
	table := NewTable(records, "", nil)

	assert.Equal(t, []string{"000646"}, table.Duplicates())

	rec, err := table.Resolve("000646")
	require.NoError(t, err)
	assert.Equal(t, "First Row", rec.HRBP)
}

func TestRecordIsComplete(t *testing.T) {
	rec := Record{
		OrderID:        "000054",
		AgencyCode:     "LV2-LV2",
		Status:         "N2 - Niveau 2 (4B +)",
		Classification: "04B - 225",
		HRBP:           "Gabrielle Humbert",
	}
	assert.True(t, rec.IsComplete())

	rec.HRBP = ""
	assert.False(t, rec.IsComplete())
}

func TestDemoTable(t *testing.T) {
	table := DemoTable()
	assert.Equal(t, 2, table.Len())
	assert.Empty(t, table.Duplicates())

	rec, err := table.Resolve("000054")
	require.NoError(t, err)
	assert.Equal(t, "Gabrielle Humbert", rec.HRBP)
	assert.True(t, rec.IsComplete())
}
