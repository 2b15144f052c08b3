package docx

import "math"

// XML namespaces used by the WordprocessingML parts this package touches.
const (
	NSWordML        = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NSRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NSPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
	NSContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	NSDrawingWP     = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	NSDrawingMain   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NSPicture       = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	NSCoreProps     = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	NSDublinCore    = "http://purl.org/dc/elements/1.1/"
	NSDCTerms       = "http://purl.org/dc/terms/"
	NSXSI           = "http://www.w3.org/2001/XMLSchema-instance"
)

// Relationship types.
const (
	RelOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	RelStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	RelSettings       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/settings"
	RelHeader         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	RelFooter         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	RelImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	RelHyperlink      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	RelFootnotes      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footnotes"
	RelEndnotes       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/endnotes"
)

// Content types.
const (
	CTDocument  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	CTTemplate  = "application/vnd.openxmlformats-officedocument.wordprocessingml.template.main+xml"
	CTStyles    = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	CTSettings  = "application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"
	CTHeader    = "application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"
	CTFooter    = "application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"
	CTFootnotes = "application/vnd.openxmlformats-officedocument.wordprocessingml.footnotes+xml"
	CTEndnotes  = "application/vnd.openxmlformats-officedocument.wordprocessingml.endnotes+xml"
	CTCoreProps = "application/vnd.openxmlformats-package.core-properties+xml"
	CTRels      = "application/vnd.openxmlformats-package.relationships+xml"
)

// Measurement conversions.
const (
	TwipsPerInch = 1440
	EMUPerInch   = 914400
)

// InchesToTwips converts inches to twentieths of a point.
func InchesToTwips(in float64) int {
	return int(math.Round(in * TwipsPerInch))
}

// InchesToEMU converts inches to English Metric Units.
func InchesToEMU(in float64) int64 {
	return int64(math.Round(in * EMUPerInch))
}

// PointsToHalfPoints converts a font size in points to the w:sz unit.
func PointsToHalfPoints(pt float64) int {
	return int(math.Round(pt * 2))
}
