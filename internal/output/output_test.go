package output

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/foerdercheck/internal/catalog"
	"github.com/vijay-prabhu/foerdercheck/internal/eligibility"
	"github.com/vijay-prabhu/foerdercheck/internal/profile"
	"github.com/vijay-prabhu/foerdercheck/internal/program"
)

func sampleResults() []eligibility.ProgramResult {
	return []eligibility.ProgramResult{
		{
			ID:       "wohngeld",
			Title:    "Wohngeld",
			Category: program.CategoryHousing,
			Priority: 8,
			Verdict: eligibility.Verdict{
				Eligible:   eligibility.Eligible,
				Confidence: 1,
				Amount:     650,
				Reason:     "Kriterien erfüllt.",
			},
		},
		{
			ID:       "kindergeld",
			Title:    "Kindergeld",
			Category: program.CategoryFamily,
			Priority: 9,
			Verdict: eligibility.Verdict{
				Eligible:    eligibility.Indeterminate,
				Confidence:  0.5,
				Reason:      "Weitere Daten erforderlich für eine genaue Prüfung.",
				MissingData: []string{profile.FieldChildrenCount},
			},
		},
	}
}

func TestOutputTo_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputTo(&buf, FormatJSON, sampleResults()))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Wohngeld", decoded[0]["titel"])

	verdict := decoded[1]["eligibility"].(map[string]interface{})
	assert.Equal(t, "indeterminate", verdict["eligible"])
}

func TestOutputTo_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, OutputTo(&buf, "xml", sampleResults()))
}

func TestTableTo(t *testing.T) {
	seed, err := catalog.Seed()
	require.NoError(t, err)

	tests := []struct {
		name string
		data interface{}
		want []string
	}{
		{"results", sampleResults(), []string{"Wohngeld", "needs data", "Anzahl Kinder"}},
		{"result detail", &sampleResults()[1], []string{"Program:     Kindergeld", "Missing data:", "- Anzahl Kinder"}},
		{"stats", eligibility.GetStats(sampleResults()), []string{"Programs checked:       2", "Anzahl Kinder"}},
		{"programs", seed, []string{"wohngeld", "income,housing"}},
		{"program detail", &seed[0], []string{"renters only", "single 1500.00 EUR"}},
		{"categories", catalog.Categories(seed), []string{"Familie & Kinder"}},
		{"empty results", []eligibility.ProgramResult{}, []string{"No programs evaluated."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, TableTo(&buf, tt.data))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestTableTo_Unsupported(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, TableTo(&buf, 42))
}

func TestCSVTo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSVTo(&buf, ExportRows("anna", sampleResults())))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, []string{"anna", "wohngeld", "Wohngeld", "Wohnen & Miete", "8", "eligible", "1.00", "650.00", "Kriterien erfüllt.", ""}, records[1])
	assert.Equal(t, "Anzahl Kinder", records[2][9])
}

func TestWordWrap(t *testing.T) {
	wrapped := wordWrap("eins zwei drei vier", 9)
	assert.Equal(t, "eins zwei\ndrei vier", wrapped)
	assert.Equal(t, "", wordWrap(strings.Repeat(" ", 20), 5))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Wohngeld", truncate("Wohngeld", 10))
	assert.Equal(t, "Bürge...", truncate("Bürgergeld-Antrag", 8))
}
