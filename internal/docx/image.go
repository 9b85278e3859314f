package docx

import (
	"fmt"
	"strings"
)

// addMedia registers image bytes as a package part and returns its
// relationship id.
func (d *Document) addMedia(data []byte, ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	ctype := "image/png"
	if ext == "jpg" || ext == "jpeg" {
		ctype = "image/jpeg"
	} else {
		ext = "png"
	}
	name := fmt.Sprintf("media/image%d.%s", len(d.media)+1, ext)
	id := fmt.Sprintf("rId%d", len(d.rels)+1)
	d.media = append(d.media, mediaPart{Name: name, ContentType: ctype, Data: data})
	d.rels = append(d.rels, relationship{ID: id, Type: relTypeImage, Target: name})
	return id
}

// InlineImage places an image in its own paragraph. cx/cy are EMUs; offX and
// offY shift the picture within its frame.
func (d *Document) InlineImage(data []byte, ext, name string, cx, cy, offX, offY int64) {
	relID := d.addMedia(data, ext)
	d.docPrID++
	pic := pictureXML(relID, name, cx, cy, offX, offY)
	d.body = append(d.body, fmt.Sprintf(
		`<w:p><w:pPr><w:spacing w:before="0" w:after="0" w:line="0" w:lineRule="auto"/></w:pPr><w:r><w:drawing>`+
			`<wp:inline distT="0" distB="0" distL="0" distR="0">`+
			`<wp:extent cx="%d" cy="%d"/>`+
			`<wp:effectExtent l="0" t="0" r="0" b="0"/>`+
			`<wp:docPr id="%d" name="%s"/>`+
			`<wp:cNvGraphicFramePr><a:graphicFrameLocks xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" noChangeAspect="1"/></wp:cNvGraphicFramePr>`+
			`%s`+
			`</wp:inline></w:drawing></w:r></w:p>`,
		cx, cy, d.docPrID, esc(name), pic))
}

// AnchorImage floats an image behind the text at the given offsets from the
// margin (x) and the anchoring paragraph (y).
func (d *Document) AnchorImage(data []byte, ext, name string, cx, cy, posX, posY int64) {
	relID := d.addMedia(data, ext)
	d.docPrID++
	pic := pictureXML(relID, name, cx, cy, 0, 0)
	d.body = append(d.body, fmt.Sprintf(
		`<w:p><w:pPr><w:jc w:val="center"/><w:spacing w:before="0" w:after="0" w:line="0" w:lineRule="auto"/></w:pPr><w:r><w:drawing>`+
			`<wp:anchor distT="0" distB="0" distL="0" distR="0" simplePos="0" relativeHeight="0" behindDoc="1" locked="0" layoutInCell="1" allowOverlap="1">`+
			`<wp:simplePos x="0" y="0"/>`+
			`<wp:positionH relativeFrom="margin"><wp:posOffset>%d</wp:posOffset></wp:positionH>`+
			`<wp:positionV relativeFrom="paragraph"><wp:posOffset>%d</wp:posOffset></wp:positionV>`+
			`<wp:extent cx="%d" cy="%d"/>`+
			`<wp:effectExtent l="0" t="0" r="0" b="0"/>`+
			`<wp:wrapNone/>`+
			`<wp:docPr id="%d" name="%s"/>`+
			`<wp:cNvGraphicFramePr><a:graphicFrameLocks xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" noChangeAspect="1"/></wp:cNvGraphicFramePr>`+
			`%s`+
			`</wp:anchor></w:drawing></w:r></w:p>`,
		posX, posY, cx, cy, d.docPrID, esc(name), pic))
}

func pictureXML(relID, name string, cx, cy, offX, offY int64) string {
	return fmt.Sprintf(
		`<a:graphic xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">`+
			`<a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
			`<pic:pic xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
			`<pic:nvPicPr><pic:cNvPr id="0" name="%s"/><pic:cNvPicPr/></pic:nvPicPr>`+
			`<pic:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
			`<pic:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
			`</pic:pic></a:graphicData></a:graphic>`,
		esc(name), relID, offX, offY, cx, cy)
}
