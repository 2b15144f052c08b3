package docx

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

var imageContentTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
}

// pixelsPerInch is used to size pictures when no width is requested.
const pixelsPerInch = 96

// AddPicture appends a paragraph holding an inline picture. A width of 0
// keeps the native size; otherwise height follows the aspect ratio.
func (d *Document) AddPicture(imagePath string, widthIn float64) (*Paragraph, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, err
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported image %s: %w", filepath.Base(imagePath), err)
	}
	contentType, ok := imageContentTypes[format]
	if !ok {
		return nil, fmt.Errorf("unsupported image format %s", format)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("image %s has no pixels", filepath.Base(imagePath))
	}

	ext := format
	if ext == "jpeg" {
		ext = "jpg"
	}
	if err := d.pkg.EnsureDefault(ext, contentType); err != nil {
		return nil, err
	}
	part := d.pkg.NextPartName("word/media/image", "."+ext)
	d.pkg.SetBytes(part, data)
	rID, err := d.pkg.AddRelationship(d.mainPart, RelImage, relativeTarget(d.mainPart, part), false)
	if err != nil {
		return nil, err
	}

	cx := int64(cfg.Width) * EMUPerInch / pixelsPerInch
	cy := int64(cfg.Height) * EMUPerInch / pixelsPerInch
	if widthIn > 0 {
		cx = InchesToEMU(widthIn)
		cy = cx * int64(cfg.Height) / int64(cfg.Width)
	}

	root := d.xml.Root()
	ensureNamespace(root, "r", NSRelationships)
	ensureNamespace(root, "wp", NSDrawingWP)
	ensureNamespace(root, "a", NSDrawingMain)
	ensureNamespace(root, "pic", NSPicture)

	id := d.nextDrawingID()
	name := filepath.Base(imagePath)
	p := d.AddParagraph("")
	r := p.el.CreateElement("w:r")
	r.AddChild(inlineDrawing(id, name, rID, cx, cy))
	return p, nil
}

func (d *Document) nextDrawingID() int {
	next := 1
	for _, dp := range d.body().FindElements(".//docPr") {
		if v, err := strconv.Atoi(dp.SelectAttrValue("id", "")); err == nil && v >= next {
			next = v + 1
		}
	}
	return next
}

func inlineDrawing(id int, name, rID string, cx, cy int64) *etree.Element {
	sid := strconv.Itoa(id)
	scx, scy := strconv.FormatInt(cx, 10), strconv.FormatInt(cy, 10)
	name = strings.ReplaceAll(name, `"`, "")

	drawing := etree.NewElement("w:drawing")
	inline := drawing.CreateElement("wp:inline")
	for _, k := range []string{"distT", "distB", "distL", "distR"} {
		inline.CreateAttr(k, "0")
	}
	extent := inline.CreateElement("wp:extent")
	extent.CreateAttr("cx", scx)
	extent.CreateAttr("cy", scy)
	docPr := inline.CreateElement("wp:docPr")
	docPr.CreateAttr("id", sid)
	docPr.CreateAttr("name", "Picture "+sid)
	docPr.CreateAttr("descr", name)
	inline.CreateElement("wp:cNvGraphicFramePr").
		CreateElement("a:graphicFrameLocks").CreateAttr("noChangeAspect", "1")

	graphicData := inline.CreateElement("a:graphic").CreateElement("a:graphicData")
	graphicData.CreateAttr("uri", NSPicture)
	pic := graphicData.CreateElement("pic:pic")

	nvPicPr := pic.CreateElement("pic:nvPicPr")
	cNvPr := nvPicPr.CreateElement("pic:cNvPr")
	cNvPr.CreateAttr("id", "0")
	cNvPr.CreateAttr("name", name)
	nvPicPr.CreateElement("pic:cNvPicPr")

	blipFill := pic.CreateElement("pic:blipFill")
	blipFill.CreateElement("a:blip").CreateAttr("r:embed", rID)
	blipFill.CreateElement("a:stretch").CreateElement("a:fillRect")

	spPr := pic.CreateElement("pic:spPr")
	xfrm := spPr.CreateElement("a:xfrm")
	off := xfrm.CreateElement("a:off")
	off.CreateAttr("x", "0")
	off.CreateAttr("y", "0")
	ext := xfrm.CreateElement("a:ext")
	ext.CreateAttr("cx", scx)
	ext.CreateAttr("cy", scy)
	spPr.CreateElement("a:prstGeom").CreateAttr("prst", "rect")
	return drawing
}

// Pictures counts the inline pictures in the body.
func (d *Document) Pictures() int {
	n := 0
	for _, e := range d.body().FindElements(".//inline") {
		if e.Space == "wp" {
			n++
		}
	}
	return n
}
