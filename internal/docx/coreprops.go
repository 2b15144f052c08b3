package docx

import (
	"time"

	"github.com/beevik/etree"
)

// CoreProperties are the Dublin Core metadata of docProps/core.xml.
type CoreProperties struct {
	Title          string `json:"title"`
	Author         string `json:"author"`
	Subject        string `json:"subject"`
	Keywords       string `json:"keywords"`
	Description    string `json:"description"`
	LastModifiedBy string `json:"last_modified_by"`
	Revision       string `json:"revision"`
	Created        string `json:"created"`
	Modified       string `json:"modified"`
}

// CorePropertiesUpdate carries the fields to change; nil fields are kept.
type CorePropertiesUpdate struct {
	Title    *string
	Author   *string
	Subject  *string
	Keywords *string
}

var coreFields = []struct {
	tag string
	get func(*CoreProperties) *string
}{
	{"dc:title", func(c *CoreProperties) *string { return &c.Title }},
	{"dc:subject", func(c *CoreProperties) *string { return &c.Subject }},
	{"dc:creator", func(c *CoreProperties) *string { return &c.Author }},
	{"cp:keywords", func(c *CoreProperties) *string { return &c.Keywords }},
	{"dc:description", func(c *CoreProperties) *string { return &c.Description }},
	{"cp:lastModifiedBy", func(c *CoreProperties) *string { return &c.LastModifiedBy }},
	{"cp:revision", func(c *CoreProperties) *string { return &c.Revision }},
	{"dcterms:created", func(c *CoreProperties) *string { return &c.Created }},
	{"dcterms:modified", func(c *CoreProperties) *string { return &c.Modified }},
}

func (d *Document) corePropsRoot() (*etree.Element, error) {
	part := "docProps/core.xml"
	if rel, ok := d.pkg.FindRelationship("", RelCoreProps); ok {
		part = ResolveTarget("", rel.Target)
	} else {
		if _, err := d.pkg.AddRelationship("", RelCoreProps, part, false); err != nil {
			return nil, err
		}
	}
	if !d.pkg.Has(part) {
		d.pkg.SetBytes(part, []byte(blankCoreProps))
		if err := d.pkg.SetOverride(part, CTCoreProps); err != nil {
			return nil, err
		}
	}
	doc, err := d.pkg.XML(part)
	if err != nil {
		return nil, err
	}
	root := doc.Root()
	ensureNamespace(root, "dc", NSDublinCore)
	ensureNamespace(root, "dcterms", NSDCTerms)
	ensureNamespace(root, "xsi", NSXSI)
	return root, nil
}

// CoreProperties reads the document metadata.
func (d *Document) CoreProperties() (CoreProperties, error) {
	var cp CoreProperties
	root, err := d.corePropsRoot()
	if err != nil {
		return cp, err
	}
	for _, f := range coreFields {
		if e := root.SelectElement(f.tag); e != nil {
			*f.get(&cp) = e.Text()
		}
	}
	return cp, nil
}

// UpdateCoreProperties writes the non-nil fields and stamps the modified time.
func (d *Document) UpdateCoreProperties(u CorePropertiesUpdate) error {
	root, err := d.corePropsRoot()
	if err != nil {
		return err
	}
	set := func(tag string, v *string) {
		if v != nil {
			setCoreText(root, tag, *v)
		}
	}
	set("dc:title", u.Title)
	set("dc:creator", u.Author)
	set("dc:subject", u.Subject)
	set("cp:keywords", u.Keywords)
	setCoreDate(root, "dcterms:modified", time.Now())
	return nil
}

// StampCreated sets created and modified to now and the revision to 1.
func (d *Document) StampCreated(author string) error {
	root, err := d.corePropsRoot()
	if err != nil {
		return err
	}
	now := time.Now()
	setCoreDate(root, "dcterms:created", now)
	setCoreDate(root, "dcterms:modified", now)
	setCoreText(root, "cp:revision", "1")
	if author != "" {
		setCoreText(root, "cp:lastModifiedBy", author)
	}
	return nil
}

func setCoreText(root *etree.Element, tag, value string) *etree.Element {
	e := root.SelectElement(tag)
	if e == nil {
		e = root.CreateElement(tag)
	}
	e.SetText(value)
	return e
}

func setCoreDate(root *etree.Element, tag string, t time.Time) {
	e := setCoreText(root, tag, t.UTC().Format(time.RFC3339))
	e.CreateAttr("xsi:type", "dcterms:W3CDTF")
}
