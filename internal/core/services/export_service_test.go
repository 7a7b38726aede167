package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gad-officerhub/internal/core/domain"
)

func TestParseExportFormat(t *testing.T) {
	f, err := ParseExportFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseExportFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseExportFormat("docx")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRenderCSV(t *testing.T) {
	svc := NewExportService()
	out, err := svc.Render(FormatCSV, "States", []string{"ID", "Name"}, [][]string{
		{"1", "Kerala"},
		{"2", "Tamil Nadu"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ID,Name\n1,Kerala\n2,Tamil Nadu\n", string(out))
}

func TestRenderXLSXAndPDFProduceDocuments(t *testing.T) {
	svc := NewExportService()
	headers := []string{"ID", "Name", "Active"}
	rows := [][]string{{"1", "Kerala", "true"}}

	xlsx, err := svc.Render(FormatXLSX, "States", headers, rows)
	require.NoError(t, err)
	// XLSX files are zip archives.
	require.True(t, len(xlsx) > 4)
	assert.Equal(t, "PK", string(xlsx[:2]))

	pdf, err := svc.Render(FormatPDF, "States", headers, rows)
	require.NoError(t, err)
	require.True(t, len(pdf) > 5)
	assert.Equal(t, "%PDF-", string(pdf[:5]))
}
