package docx

import (
	"fmt"
	"strings"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const blankContentTypes = xmlHeader + `<Types xmlns="` + NSContentTypes + `">` +
	`<Default Extension="rels" ContentType="` + CTRels + `"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="` + CTDocument + `"/>` +
	`<Override PartName="/word/styles.xml" ContentType="` + CTStyles + `"/>` +
	`<Override PartName="/word/settings.xml" ContentType="` + CTSettings + `"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="` + CTCoreProps + `"/>` +
	`</Types>`

const blankPackageRels = xmlHeader + `<Relationships xmlns="` + NSPackageRels + `">` +
	`<Relationship Id="rId1" Type="` + RelOfficeDocument + `" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="` + RelCoreProps + `" Target="docProps/core.xml"/>` +
	`</Relationships>`

const blankDocumentRels = xmlHeader + `<Relationships xmlns="` + NSPackageRels + `">` +
	`<Relationship Id="rId1" Type="` + RelStyles + `" Target="styles.xml"/>` +
	`<Relationship Id="rId2" Type="` + RelSettings + `" Target="settings.xml"/>` +
	`</Relationships>`

const blankDocument = xmlHeader + `<w:document xmlns:w="` + NSWordML + `" xmlns:r="` + NSRelationships +
	`" xmlns:wp="` + NSDrawingWP + `" xmlns:a="` + NSDrawingMain + `" xmlns:pic="` + NSPicture + `">` +
	`<w:body><w:sectPr>` +
	`<w:pgSz w:w="12240" w:h="15840"/>` +
	`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/>` +
	`<w:cols w:space="720"/><w:docGrid w:linePitch="360"/>` +
	`</w:sectPr></w:body></w:document>`

const blankSettings = xmlHeader + `<w:settings xmlns:w="` + NSWordML + `">` +
	`<w:zoom w:percent="100"/><w:defaultTabStop w:val="720"/><w:characterSpacingControl w:val="doNotCompress"/>` +
	`<w:compat><w:compatSetting w:name="compatibilityMode" w:uri="http://schemas.microsoft.com/office/word" w:val="15"/></w:compat>` +
	`</w:settings>`

const blankCoreProps = xmlHeader + `<cp:coreProperties xmlns:cp="` + NSCoreProps + `" xmlns:dc="` + NSDublinCore +
	`" xmlns:dcterms="` + NSDCTerms + `" xmlns:xsi="` + NSXSI + `"></cp:coreProperties>`

const blankFootnotes = xmlHeader + `<w:footnotes xmlns:w="` + NSWordML + `" xmlns:r="` + NSRelationships + `">` +
	`<w:footnote w:type="separator" w:id="-1"><w:p><w:r><w:separator/></w:r></w:p></w:footnote>` +
	`<w:footnote w:type="continuationSeparator" w:id="0"><w:p><w:r><w:continuationSeparator/></w:r></w:p></w:footnote>` +
	`</w:footnotes>`

const blankEndnotes = xmlHeader + `<w:endnotes xmlns:w="` + NSWordML + `" xmlns:r="` + NSRelationships + `">` +
	`<w:endnote w:type="separator" w:id="-1"><w:p><w:r><w:separator/></w:r></w:p></w:endnote>` +
	`<w:endnote w:type="continuationSeparator" w:id="0"><w:p><w:r><w:continuationSeparator/></w:r></w:p></w:endnote>` +
	`</w:endnotes>`

const blankHeaderFooter = xmlHeader + `<w:%s xmlns:w="` + NSWordML + `" xmlns:r="` + NSRelationships + `"></w:%s>`

// builtinStyle describes a style this package can add to any document on
// demand. body holds the pPr/rPr/tblPr children.
type builtinStyle struct {
	id        string
	name      string
	kind      string
	basedOn   string
	next      string
	isDefault bool
	body      string
}

func (b builtinStyle) xml() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<w:style w:type="%s" w:styleId="%s"`, b.kind, b.id)
	if b.isDefault {
		sb.WriteString(` w:default="1"`)
	}
	fmt.Fprintf(&sb, `><w:name w:val="%s"/>`, b.name)
	if b.basedOn != "" {
		fmt.Fprintf(&sb, `<w:basedOn w:val="%s"/>`, b.basedOn)
	}
	if b.next != "" {
		fmt.Fprintf(&sb, `<w:next w:val="%s"/>`, b.next)
	}
	sb.WriteString(`<w:qFormat/>`)
	sb.WriteString(b.body)
	sb.WriteString(`</w:style>`)
	return sb.String()
}

var headingSizes = []int{32, 28, 26, 24, 22, 22, 22, 22, 22}

var builtinStyles = func() []builtinStyle {
	styles := []builtinStyle{
		{id: "Normal", name: "Normal", kind: "paragraph", isDefault: true},
		{id: "DefaultParagraphFont", name: "Default Paragraph Font", kind: "character", isDefault: true},
		{id: "TableNormal", name: "Normal Table", kind: "table", isDefault: true,
			body: `<w:tblPr><w:tblInd w:w="0" w:type="dxa"/><w:tblCellMar><w:top w:w="0" w:type="dxa"/><w:left w:w="108" w:type="dxa"/><w:bottom w:w="0" w:type="dxa"/><w:right w:w="108" w:type="dxa"/></w:tblCellMar></w:tblPr>`},
		{id: "Title", name: "Title", kind: "paragraph", basedOn: "Normal", next: "Normal",
			body: `<w:pPr><w:spacing w:after="240"/><w:contextualSpacing/></w:pPr><w:rPr><w:sz w:val="56"/><w:szCs w:val="56"/></w:rPr>`},
		{id: "Subtitle", name: "Subtitle", kind: "paragraph", basedOn: "Normal", next: "Normal",
			body: `<w:rPr><w:i/><w:color w:val="595959"/><w:sz w:val="30"/><w:szCs w:val="30"/></w:rPr>`},
	}
	for level := 1; level <= 9; level++ {
		sz := headingSizes[level-1]
		styles = append(styles, builtinStyle{
			id: fmt.Sprintf("Heading%d", level), name: fmt.Sprintf("heading %d", level),
			kind: "paragraph", basedOn: "Normal", next: "Normal",
			body: fmt.Sprintf(`<w:pPr><w:keepNext/><w:keepLines/><w:spacing w:before="240" w:after="60"/><w:outlineLvl w:val="%d"/></w:pPr>`+
				`<w:rPr><w:b/><w:bCs/><w:sz w:val="%d"/><w:szCs w:val="%d"/></w:rPr>`, level-1, sz, sz),
		})
	}
	styles = append(styles,
		builtinStyle{id: "Caption", name: "caption", kind: "paragraph", basedOn: "Normal", next: "Normal",
			body: `<w:pPr><w:spacing w:after="200"/></w:pPr><w:rPr><w:i/><w:iCs/><w:color w:val="44546A"/><w:sz w:val="18"/><w:szCs w:val="18"/></w:rPr>`},
		builtinStyle{id: "TOCHeading", name: "TOC Heading", kind: "paragraph", basedOn: "Heading1", next: "Normal",
			body: `<w:pPr><w:outlineLvl w:val="9"/></w:pPr>`},
		builtinStyle{id: "ListParagraph", name: "List Paragraph", kind: "paragraph", basedOn: "Normal",
			body: `<w:pPr><w:ind w:left="720"/><w:contextualSpacing/></w:pPr>`},
		builtinStyle{id: "Quote", name: "Quote", kind: "paragraph", basedOn: "Normal", next: "Normal",
			body: `<w:pPr><w:ind w:left="864" w:right="864"/></w:pPr><w:rPr><w:i/><w:iCs/><w:color w:val="404040"/></w:rPr>`},
		builtinStyle{id: "Hyperlink", name: "Hyperlink", kind: "character", basedOn: "DefaultParagraphFont",
			body: `<w:rPr><w:color w:val="0563C1"/><w:u w:val="single"/></w:rPr>`},
		builtinStyle{id: "TableGrid", name: "Table Grid", kind: "table", basedOn: "TableNormal",
			body: `<w:tblPr><w:tblBorders>` + gridBorders("single", 4) + `</w:tblBorders></w:tblPr>`},
		builtinStyle{id: "FootnoteText", name: "footnote text", kind: "paragraph", basedOn: "Normal",
			body: `<w:rPr><w:sz w:val="20"/><w:szCs w:val="20"/></w:rPr>`},
		builtinStyle{id: "FootnoteReference", name: "footnote reference", kind: "character", basedOn: "DefaultParagraphFont",
			body: `<w:rPr><w:vertAlign w:val="superscript"/></w:rPr>`},
		builtinStyle{id: "EndnoteText", name: "endnote text", kind: "paragraph", basedOn: "Normal",
			body: `<w:rPr><w:sz w:val="20"/><w:szCs w:val="20"/></w:rPr>`},
		builtinStyle{id: "EndnoteReference", name: "endnote reference", kind: "character", basedOn: "DefaultParagraphFont",
			body: `<w:rPr><w:vertAlign w:val="superscript"/></w:rPr>`},
		builtinStyle{id: "Header", name: "header", kind: "paragraph", basedOn: "Normal",
			body: `<w:pPr><w:tabs><w:tab w:val="center" w:pos="4680"/><w:tab w:val="right" w:pos="9360"/></w:tabs></w:pPr>`},
		builtinStyle{id: "Footer", name: "footer", kind: "paragraph", basedOn: "Normal",
			body: `<w:pPr><w:tabs><w:tab w:val="center" w:pos="4680"/><w:tab w:val="right" w:pos="9360"/></w:tabs></w:pPr>`},
	)
	return styles
}()

func gridBorders(val string, size int) string {
	var sb strings.Builder
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		fmt.Fprintf(&sb, `<w:%s w:val="%s" w:sz="%d" w:space="0" w:color="auto"/>`, side, val, size)
	}
	return sb.String()
}

func blankStyles() string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<w:styles xmlns:w="` + NSWordML + `">`)
	sb.WriteString(`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:eastAsia="Calibri" w:cs="Calibri"/>` +
		`<w:sz w:val="22"/><w:szCs w:val="22"/><w:lang w:val="en-US"/></w:rPr></w:rPrDefault>` +
		`<w:pPrDefault><w:pPr><w:spacing w:after="160" w:line="259" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults>`)
	for _, s := range builtinStyles {
		sb.WriteString(s.xml())
	}
	sb.WriteString(`</w:styles>`)
	return sb.String()
}

func lookupBuiltin(name string) (builtinStyle, bool) {
	for _, s := range builtinStyles {
		if strings.EqualFold(s.name, name) || strings.EqualFold(s.id, name) {
			return s, true
		}
	}
	return builtinStyle{}, false
}
