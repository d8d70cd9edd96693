package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Employee", "Present"},
		Rows: []map[string]string{
			{"Employee": "Aziz Karimov", "Present": "20"},
			{"Employee": "Dilnoza, R.", "Present": "18"},
		},
	}
}

func TestRenderCSV(t *testing.T) {
	out, err := RenderCSV(sampleDataset())
	require.NoError(t, err)

	assert.Equal(t, "Employee,Present\nAziz Karimov,20\n\"Dilnoza, R.\",18\n", string(out))
}

func TestRenderCSV_NoHeaders(t *testing.T) {
	_, err := RenderCSV(Dataset{})
	assert.ErrorIs(t, err, ErrNoHeaders)
}

func TestRenderPDF(t *testing.T) {
	out, err := RenderPDF(sampleDataset(), "Monthly Attendance")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRender_Dispatch(t *testing.T) {
	f, err := Render(FormatCSV, sampleDataset(), "", "attendance-2024-03")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", f.ContentType)
	assert.Equal(t, "attendance-2024-03.csv", f.Filename)

	f, err = Render(FormatPDF, sampleDataset(), "t", "attendance-2024-03")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", f.ContentType)
	assert.Equal(t, "attendance-2024-03.pdf", f.Filename)

	_, err = Render(Format("xlsx"), sampleDataset(), "", "x")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	_, err = ParseFormat("doc")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
