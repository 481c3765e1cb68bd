// Package preview extracts a short plain-text preview from an uploaded
// document for the local registry. Extraction is best-effort: anything that
// cannot be read degrades to an empty preview, never to an error.
package preview

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"
)

const maxRunes = 512

func Extract(name string, data []byte) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return clip(fromExcel(data))
	case ".html", ".htm":
		return clip(fromHTML(data))
	default:
		return clip(fromPlain(data))
	}
}

func fromExcel(data []byte) string {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	defer f.Close()

	var buf strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		for _, row := range rows {
			buf.WriteString(strings.Join(row, "\t"))
			buf.WriteByte('\n')
			if buf.Len() > maxRunes*4 {
				return buf.String()
			}
		}
	}
	return buf.String()
}

func fromHTML(data []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	var parts []string
	sel := doc.Find("main, article")
	if sel.Length() == 0 {
		sel = doc.Selection
	}
	sel.Find("h1,h2,h3,p,li").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, "\n")
}

func fromPlain(data []byte) string {
	if bytes.IndexByte(data, 0) >= 0 {
		// binary payload, nothing readable to show
		return ""
	}
	return strings.ToValidUTF8(string(data), "�")
}

func clip(s string) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) > maxRunes {
		return string(r[:maxRunes])
	}
	return s
}
