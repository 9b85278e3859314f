package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

func readPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("not a zip: %v", err)
	}
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				t.Fatal(err)
			}
			defer rc.Close()
			b, err := io.ReadAll(rc)
			if err != nil {
				t.Fatal(err)
			}
			return string(b)
		}
	}
	t.Fatalf("part %q missing", name)
	return ""
}

func TestBytesHasRequiredParts(t *testing.T) {
	d := New()
	d.Paragraph("hello", Style{Bold: true})
	data, err := d.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	for _, part := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/_rels/document.xml.rels",
	} {
		readPart(t, data, part)
	}
	doc := readPart(t, data, "word/document.xml")
	if !strings.Contains(doc, "hello") {
		t.Error("paragraph text missing")
	}
	if !strings.Contains(doc, "<w:b/>") {
		t.Error("bold run property missing")
	}
}

func TestParagraphEscapesXML(t *testing.T) {
	d := New()
	d.Paragraph(`a < b & "c"`, Style{})
	data, err := d.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	doc := readPart(t, data, "word/document.xml")
	if strings.Contains(doc, "a < b") {
		t.Error("text not escaped")
	}
	if !strings.Contains(doc, "a &lt; b &amp;") {
		t.Errorf("escaped text missing: %s", doc)
	}
}

func TestFooterWiring(t *testing.T) {
	d := New()
	d.Paragraph("body", Style{})
	d.Footer("Model 1")
	data, err := d.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	footer := readPart(t, data, "word/footer1.xml")
	if !strings.Contains(footer, "Model 1") {
		t.Errorf("footer = %s", footer)
	}
	rels := readPart(t, data, "word/_rels/document.xml.rels")
	if !strings.Contains(rels, "footer1.xml") {
		t.Error("footer relationship missing")
	}
	doc := readPart(t, data, "word/document.xml")
	if !strings.Contains(doc, "footerReference") {
		t.Error("footer reference missing from section properties")
	}
	types := readPart(t, data, "[Content_Types].xml")
	if !strings.Contains(types, "footer1.xml") {
		t.Error("footer content type override missing")
	}
}

func TestInlineImageParts(t *testing.T) {
	d := New()
	png := []byte{0x89, 'P', 'N', 'G'}
	d.InlineImage(png, ".png", "Pic", 914400, 914400, 0, 0)
	data, err := d.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	media := readPart(t, data, "word/media/image1.png")
	if media != string(png) {
		t.Error("media bytes altered")
	}
	rels := readPart(t, data, "word/_rels/document.xml.rels")
	if !strings.Contains(rels, "media/image1.png") {
		t.Error("image relationship missing")
	}
	doc := readPart(t, data, "word/document.xml")
	if !strings.Contains(doc, "wp:inline") {
		t.Error("inline drawing missing")
	}
}

func TestAnchorImageBehindText(t *testing.T) {
	d := New()
	d.AnchorImage([]byte("img"), "jpg", "Logo", 731520, 731520, 100, 200)
	data, err := d.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	readPart(t, data, "word/media/image1.jpeg")
	doc := readPart(t, data, "word/document.xml")
	if !strings.Contains(doc, `behindDoc="1"`) {
		t.Error("anchor not behind text")
	}
}

func TestTableCells(t *testing.T) {
	d := New()
	d.Table([][]Cell{
		{{Text: "left", Bold: true}, {Text: "mid", Width: 2500, Justify: "center"}, {Text: "right"}},
		{{Text: "span", Span: 2}, {Text: "tail"}},
	})
	data, err := d.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	doc := readPart(t, data, "word/document.xml")
	for _, want := range []string{
		"left", "mid", "right", "span", "tail",
		`<w:gridSpan w:val="2"/>`,
		`<w:tcW w:w="2500" w:type="pct"/>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}
