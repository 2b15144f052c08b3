package docx

import (
	"strconv"

	"github.com/beevik/etree"
)

// Child element orders mandated by the WordprocessingML schema. Word
// rejects documents whose property children are out of sequence.
var (
	pPrOrder = []string{
		"pStyle", "keepNext", "keepLines", "pageBreakBefore", "framePr", "widowControl", "numPr",
		"suppressLineNumbers", "pBdr", "shd", "tabs", "suppressAutoHyphens", "kinsoku", "wordWrap",
		"overflowPunct", "topLinePunct", "autoSpaceDE", "autoSpaceDN", "bidi", "adjustRightInd",
		"snapToGrid", "spacing", "ind", "contextualSpacing", "mirrorIndents", "suppressOverlap", "jc",
		"textDirection", "textAlignment", "textboxTightWrap", "outlineLvl", "divId", "cnfStyle",
		"rPr", "sectPr", "pPrChange",
	}
	rPrOrder = []string{
		"rStyle", "rFonts", "b", "bCs", "i", "iCs", "caps", "smallCaps", "strike", "dstrike",
		"outline", "shadow", "emboss", "imprint", "noProof", "snapToGrid", "vanish", "webHidden",
		"color", "spacing", "w", "kern", "position", "sz", "szCs", "highlight", "u", "effect",
		"bdr", "shd", "fitText", "vertAlign", "rtl", "cs", "em", "lang", "eastAsianLayout",
		"specVanish", "oMath",
	}
	sectPrOrder = []string{
		"headerReference", "footerReference", "footnotePr", "endnotePr", "type", "pgSz", "pgMar",
		"paperSrc", "pgBorders", "lnNumType", "pgNumType", "cols", "formProt", "vAlign",
		"noEndnote", "titlePg", "textDirection", "bidi", "rtlGutter", "docGrid", "printerSettings",
		"sectPrChange",
	}
	styleOrder = []string{
		"name", "aliases", "basedOn", "next", "link", "autoRedefine", "hidden", "uiPriority",
		"semiHidden", "unhideWhenUsed", "qFormat", "locked", "personal", "personalCompose",
		"personalReply", "rsid", "pPr", "rPr", "tblPr", "trPr", "tcPr", "tblStylePr",
	}
	tblPrOrder = []string{
		"tblStyle", "tblpPr", "tblOverlap", "bidiVisual", "tblStyleRowBandSize",
		"tblStyleColBandSize", "tblW", "jc", "tblCellSpacing", "tblInd", "tblBorders", "shd",
		"tblLayout", "tblCellMar", "tblLook",
	}
	tcPrOrder = []string{
		"cnfStyle", "tcW", "gridSpan", "hMerge", "vMerge", "tcBorders", "shd", "noWrap", "tcMar",
		"textDirection", "tcFitText", "vAlign", "hideMark",
	}
	settingsOrder = []string{
		"writeProtection", "view", "zoom", "removePersonalInformation", "removeDateAndTime",
		"doNotDisplayPageBoundaries", "displayBackgroundShape", "printPostScriptOverText",
		"printFractionalCharacterWidth", "printFormsData", "embedTrueTypeFonts", "embedSystemFonts",
		"saveSubsetFonts", "saveFormsData", "mirrorMargins", "alignBordersAndEdges",
		"bordersDoNotSurroundHeader", "bordersDoNotSurroundFooter", "gutterAtTop",
		"hideSpellingErrors", "hideGrammaticalErrors", "activeWritingStyle", "proofState",
		"formsDesign", "attachedTemplate", "linkStyles", "stylePaneFormatFilter",
		"stylePaneSortMethod", "documentType", "mailMerge", "revisionView", "trackRevisions",
		"doNotTrackMoves", "doNotTrackFormatting", "documentProtection",
	}
)

func orderIndex(order []string, tag string) int {
	for i, t := range order {
		if t == tag {
			return i
		}
	}
	return len(order)
}

// isW reports whether e is the WordprocessingML element with the given local name.
func isW(e *etree.Element, tag string) bool {
	return e != nil && e.Space == "w" && e.Tag == tag
}

// wChild returns the first w:<tag> child of parent.
func wChild(parent *etree.Element, tag string) *etree.Element {
	if parent == nil {
		return nil
	}
	for _, c := range parent.ChildElements() {
		if isW(c, tag) {
			return c
		}
	}
	return nil
}

// wChildren returns every w:<tag> child of parent.
func wChildren(parent *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	if parent == nil {
		return out
	}
	for _, c := range parent.ChildElements() {
		if isW(c, tag) {
			out = append(out, c)
		}
	}
	return out
}

// insertOrdered places child under parent at the position the schema order
// requires. Children not listed in order sort after every listed one.
func insertOrdered(parent, child *etree.Element, order []string) {
	mine := orderIndex(order, child.Tag)
	for _, c := range parent.ChildElements() {
		if orderIndex(order, c.Tag) > mine || c.Space != "w" {
			parent.InsertChildAt(c.Index(), child)
			return
		}
	}
	parent.AddChild(child)
}

// ensureWChild returns the w:<tag> child of parent, creating it in schema
// order when absent.
func ensureWChild(parent *etree.Element, tag string, order []string) *etree.Element {
	if c := wChild(parent, tag); c != nil {
		return c
	}
	c := etree.NewElement("w:" + tag)
	insertOrdered(parent, c, order)
	return c
}

// removeWChildren deletes every w:<tag> child of parent.
func removeWChildren(parent *etree.Element, tag string) {
	for _, c := range wChildren(parent, tag) {
		parent.RemoveChild(c)
	}
}

// setVal sets w:val on the w:<tag> child of parent, creating it as needed.
func setVal(parent *etree.Element, tag, val string, order []string) *etree.Element {
	c := ensureWChild(parent, tag, order)
	c.CreateAttr("w:val", val)
	return c
}

// setToggle switches an on/off property such as w:b.
func setToggle(parent *etree.Element, tag string, on bool, order []string) {
	if !on {
		removeWChildren(parent, tag)
		return
	}
	c := ensureWChild(parent, tag, order)
	c.RemoveAttr("w:val")
}

// toggleOn reports whether an on/off property is present and not disabled.
func toggleOn(parent *etree.Element, tag string) bool {
	c := wChild(parent, tag)
	if c == nil {
		return false
	}
	switch c.SelectAttrValue("w:val", "true") {
	case "0", "false", "off":
		return false
	}
	return true
}

// wAttrInt reads an integer w:<attr> attribute, returning dflt when absent.
func wAttrInt(e *etree.Element, attr string, dflt int) int {
	if e == nil {
		return dflt
	}
	v, err := strconv.Atoi(e.SelectAttrValue("w:"+attr, ""))
	if err != nil {
		return dflt
	}
	return v
}

// ensureNamespace declares prefix on root when it is not yet declared.
func ensureNamespace(root *etree.Element, prefix, uri string) {
	if root.SelectAttr("xmlns:"+prefix) == nil {
		root.CreateAttr("xmlns:"+prefix, uri)
	}
}

// attr reads an attribute from a possibly nil element.
func attr(e *etree.Element, key string) string {
	if e == nil {
		return ""
	}
	return e.SelectAttrValue(key, "")
}

// wVal reads w:val from a possibly nil element.
func wVal(e *etree.Element) string {
	return attr(e, "w:val")
}
