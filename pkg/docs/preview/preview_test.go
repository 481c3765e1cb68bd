package preview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExtractPlain(t *testing.T) {
	got := Extract("notes.txt", []byte("Hello world\nLine 2"))
	assert.Equal(t, "Hello world\nLine 2", got)
}

func TestExtractBinary(t *testing.T) {
	got := Extract("blob.bin", []byte{0x00, 0x01, 0x02, 'a'})
	assert.Empty(t, got)
}

func TestExtractClipsLongText(t *testing.T) {
	got := Extract("big.md", []byte(strings.Repeat("a", 5000)))
	assert.Len(t, []rune(got), 512)
}

func TestExtractHTML(t *testing.T) {
	html := `<html><head><title>T</title></head><body>
		<main><h1>Heading</h1><p>First paragraph.</p><li>Item</li></main>
		</body></html>`
	got := Extract("page.html", []byte(html))
	assert.Equal(t, "Heading\nFirst paragraph.\nItem", got)
}

func TestExtractExcel(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "Title")
	f.SetCellValue("Sheet1", "A2", "Value 1")
	f.SetCellValue("Sheet1", "B2", "Value 2")
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)

	got := Extract("data.xlsx", buf.Bytes())
	assert.Equal(t, "Title\nValue 1\tValue 2", got)
}

func TestExtractCorruptExcel(t *testing.T) {
	got := Extract("data.xlsx", []byte("not a spreadsheet"))
	assert.Empty(t, got)
}
