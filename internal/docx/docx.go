// Package docx writes minimal WordprocessingML packages: paragraphs, one
// header table, inline/anchored images, a page footer and section
// properties. It covers exactly what exam documents need and nothing else.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// EMU per inch, the unit DrawingML measures extents in.
const EMUPerInch int64 = 914400

type Document struct {
	body   []string
	rels   []relationship
	media  []mediaPart
	footer string

	pageBorderSize  int
	pageBorderSpace int
	pageMargin      int

	docPrID int
}

type relationship struct {
	ID     string
	Type   string
	Target string
}

type mediaPart struct {
	Name        string // e.g. media/image1.png
	ContentType string
	Data        []byte
}

func New() *Document { return &Document{} }

// Style controls paragraph rendering. Zero values inherit document defaults.
type Style struct {
	Bold          bool
	Size          int    // half-points
	Font          string // ascii + hAnsi font name
	Justify       string // left|center|right
	SpacingBefore string // twips
	SpacingAfter  string // twips
	LineSpacing   string // twips, auto rule
}

func (d *Document) Paragraph(text string, st Style) {
	d.body = append(d.body, paragraphXML(text, st))
}

// Separator renders an empty paragraph with a bottom border of the given
// eighth-point size.
func (d *Document) Separator(size int) {
	d.body = append(d.body, fmt.Sprintf(
		`<w:p><w:pPr><w:pBdr><w:bottom w:val="single" w:sz="%d" w:space="1" w:color="000000"/></w:pBdr>`+
			`<w:spacing w:before="0" w:after="0" w:line="100" w:lineRule="auto"/></w:pPr></w:p>`, size))
}

// Cell is one header-table cell. Width is in fiftieths of a percent
// (5000 = 100%); zero means auto.
type Cell struct {
	Text         string
	Bold         bool
	Span         int
	Width        int
	Justify      string
	SpacingAfter string
}

// Table renders a centered full-width table in the fixed header style.
func (d *Document) Table(rows [][]Cell) {
	var b strings.Builder
	b.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="5000" w:type="pct"/><w:jc w:val="center"/></w:tblPr>`)
	for _, row := range rows {
		b.WriteString(`<w:tr>`)
		for _, c := range row {
			b.WriteString(`<w:tc><w:tcPr>`)
			if c.Width > 0 {
				fmt.Fprintf(&b, `<w:tcW w:w="%d" w:type="pct"/>`, c.Width)
			} else {
				b.WriteString(`<w:tcW w:w="0" w:type="auto"/>`)
			}
			if c.Span > 1 {
				fmt.Fprintf(&b, `<w:gridSpan w:val="%d"/>`, c.Span)
			}
			b.WriteString(`<w:vAlign w:val="center"/></w:tcPr>`)
			after := c.SpacingAfter
			if after == "" {
				after = "50"
			}
			b.WriteString(paragraphXML(c.Text, Style{
				Bold:          c.Bold,
				Size:          26,
				Font:          "Times New Roman",
				Justify:       c.Justify,
				SpacingBefore: "50",
				SpacingAfter:  after,
				LineSpacing:   "240",
			}))
			b.WriteString(`</w:tc>`)
		}
		b.WriteString(`</w:tr>`)
	}
	b.WriteString(`</w:tbl>`)
	d.body = append(d.body, b.String())
}

// Footer sets a single right-aligned footer line shown on every page.
func (d *Document) Footer(text string) {
	d.footer = fmt.Sprintf(
		`<w:p><w:pPr><w:jc w:val="right"/></w:pPr><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`,
		esc(text))
}

// PageLayout sets uniform page borders (eighth-points, border space in
// points) and margins (twips) emitted with the section properties.
func (d *Document) PageLayout(borderSize, borderSpace, margin int) {
	d.pageBorderSize = borderSize
	d.pageBorderSpace = borderSpace
	d.pageMargin = margin
}

// Bytes assembles the package.
func (d *Document) Bytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	write := func(name, content string) error {
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = w.Write([]byte(content))
		return err
	}

	if err := write("[Content_Types].xml", d.contentTypesXML()); err != nil {
		return nil, err
	}
	if err := write("_rels/.rels", rootRelsXML); err != nil {
		return nil, err
	}
	if err := write("word/_rels/document.xml.rels", d.documentRelsXML()); err != nil {
		return nil, err
	}
	if err := write("word/document.xml", d.documentXML()); err != nil {
		return nil, err
	}
	if d.footer != "" {
		if err := write("word/footer1.xml", footerHeaderXML+d.footer+footerFooterXML); err != nil {
			return nil, err
		}
	}
	for _, m := range d.media {
		w, err := zw.Create("word/" + m.Name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(m.Data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Document) documentXML() string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document` +
		` xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
		` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
		` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
		`><w:body>`)
	for _, p := range d.body {
		b.WriteString(p)
	}
	b.WriteString(d.sectPrXML())
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func (d *Document) sectPrXML() string {
	var b strings.Builder
	b.WriteString(`<w:sectPr>`)
	if d.footer != "" {
		fmt.Fprintf(&b, `<w:footerReference w:type="default" r:id="%s"/>`, d.footerRelID())
	}
	// A4
	b.WriteString(`<w:pgSz w:w="11906" w:h="16838"/>`)
	if d.pageMargin > 0 {
		m := d.pageMargin
		fmt.Fprintf(&b, `<w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="708" w:footer="708" w:gutter="0"/>`, m, m, m, m)
	}
	if d.pageBorderSize > 0 {
		for _, side := range []string{"top", "left", "bottom", "right"} {
			if side == "top" {
				b.WriteString(`<w:pgBorders w:offsetFrom="text">`)
			}
			fmt.Fprintf(&b, `<w:%s w:val="single" w:sz="%d" w:space="%d" w:color="000000"/>`,
				side, d.pageBorderSize, d.pageBorderSpace)
			if side == "right" {
				b.WriteString(`</w:pgBorders>`)
			}
		}
	}
	b.WriteString(`</w:sectPr>`)
	return b.String()
}

func (d *Document) footerRelID() string {
	for _, r := range d.rels {
		if r.Type == relTypeFooter {
			return r.ID
		}
	}
	id := fmt.Sprintf("rId%d", len(d.rels)+1)
	d.rels = append(d.rels, relationship{ID: id, Type: relTypeFooter, Target: "footer1.xml"})
	return id
}

func (d *Document) documentRelsXML() string {
	if d.footer != "" {
		d.footerRelID() // ensure registered
	}
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, r := range d.rels {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s"/>`, r.ID, r.Type, r.Target)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func (d *Document) contentTypesXML() string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Default Extension="png" ContentType="image/png"/>` +
		`<Default Extension="jpeg" ContentType="image/jpeg"/>` +
		`<Default Extension="jpg" ContentType="image/jpeg"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	if d.footer != "" {
		b.WriteString(`<Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>`)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

const (
	relTypeFooter = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	relTypeImage  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

const rootRelsXML = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const footerHeaderXML = xml.Header +
	`<w:ftr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`

const footerFooterXML = `</w:ftr>`

func paragraphXML(text string, st Style) string {
	var b strings.Builder
	b.WriteString(`<w:p><w:pPr>`)
	if st.Justify != "" && st.Justify != "left" {
		fmt.Fprintf(&b, `<w:jc w:val="%s"/>`, st.Justify)
	}
	if st.SpacingBefore != "" || st.SpacingAfter != "" || st.LineSpacing != "" {
		b.WriteString(`<w:spacing`)
		if st.SpacingBefore != "" {
			fmt.Fprintf(&b, ` w:before="%s"`, st.SpacingBefore)
		}
		if st.SpacingAfter != "" {
			fmt.Fprintf(&b, ` w:after="%s"`, st.SpacingAfter)
		}
		if st.LineSpacing != "" {
			fmt.Fprintf(&b, ` w:line="%s" w:lineRule="auto"`, st.LineSpacing)
		}
		b.WriteString(`/>`)
	}
	b.WriteString(`</w:pPr><w:r>`)
	if st.Bold || st.Size > 0 || st.Font != "" {
		b.WriteString(`<w:rPr>`)
		if st.Font != "" {
			fmt.Fprintf(&b, `<w:rFonts w:ascii="%s" w:hAnsi="%s"/>`, esc(st.Font), esc(st.Font))
		}
		if st.Bold {
			b.WriteString(`<w:b/>`)
		}
		if st.Size > 0 {
			fmt.Fprintf(&b, `<w:sz w:val="%d"/>`, st.Size)
		}
		b.WriteString(`</w:rPr>`)
	}
	fmt.Fprintf(&b, `<w:t xml:space="preserve">%s</w:t></w:r></w:p>`, esc(text))
	return b.String()
}

func esc(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
