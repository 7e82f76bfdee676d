package feed_test

import (
	"bytes"
	"testing"

	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/config"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportXLSX(t *testing.T) {
	entries := []feed.Entry{
		{Title: "Maktoob 1", Kind: "maktoobs", Canonical: "2024-03-20", Shamsi: "1403-01-01", Hijri: "1445-09-10"},
		{Title: "Draft", Kind: "maktoobs"},
	}

	var buf bytes.Buffer
	require.NoError(t, feed.ExportXLSX(&buf, entries, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{config.ReportSheetName}, f.GetSheetList())

	rows, err := f.GetRows(config.ReportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, config.ReportHeaders, rows[0])
	assert.Equal(t, []string{"Maktoob 1", "maktoobs", "2024-03-20", "1403-01-01", "1445-09-10"}, rows[1])
	assert.Equal(t, []string{"Draft", "maktoobs", "N/A", "N/A", "N/A"}, rows[2])
}

func TestExportXLSX_LocalizedHeaders(t *testing.T) {
	headers := []string{"عنوان", "نوع", "میلادی", "شمسی", "قمری"}

	var buf bytes.Buffer
	require.NoError(t, feed.ExportXLSX(&buf, nil, headers))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(config.ReportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, headers, rows[0])

	// A header list of the wrong size falls back to English.
	buf.Reset()
	require.NoError(t, feed.ExportXLSX(&buf, nil, []string{"only one"}))
	f2, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f2.Close() }()
	rows, err = f2.GetRows(config.ReportSheetName)
	require.NoError(t, err)
	assert.Equal(t, config.ReportHeaders, rows[0])
}
