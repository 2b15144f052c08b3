package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

const contentTypesPart = "[Content_Types].xml"

// Package is an OPC zip package. Part names carry no leading slash.
// XML parts are parsed lazily and written back from their trees on save.
type Package struct {
	order []string
	parts map[string][]byte
	xml   map[string]*etree.Document
}

// Relationship is one entry of a .rels part.
type Relationship struct {
	ID         string
	Type       string
	Target     string
	TargetMode string
}

// ReadPackage parses a package from zip bytes.
func ReadPackage(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}
	p := newPackage()
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open part %s: %w", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", f.Name, err)
		}
		p.SetBytes(f.Name, b)
	}
	if !p.Has(contentTypesPart) {
		return nil, fmt.Errorf("not a word document: missing %s", contentTypesPart)
	}
	return p, nil
}

// OpenPackage reads the package stored at path.
func OpenPackage(filename string) (*Package, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ReadPackage(data)
}

func newPackage() *Package {
	return &Package{parts: map[string][]byte{}, xml: map[string]*etree.Document{}}
}

// Has reports whether the named part exists.
func (p *Package) Has(name string) bool {
	if _, ok := p.parts[name]; ok {
		return true
	}
	_, ok := p.xml[name]
	return ok
}

// Names returns part names in package order.
func (p *Package) Names() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// SetBytes stores raw part content, replacing any parsed tree.
func (p *Package) SetBytes(name string, data []byte) {
	p.track(name)
	p.parts[name] = data
	delete(p.xml, name)
}

// Bytes returns the current content of a part.
func (p *Package) Bytes(name string) ([]byte, error) {
	if doc, ok := p.xml[name]; ok {
		return doc.WriteToBytes()
	}
	b, ok := p.parts[name]
	if !ok {
		return nil, fmt.Errorf("part %s not found", name)
	}
	return b, nil
}

// XML returns the parsed tree of a part. Later edits to the tree are
// persisted when the package is written.
func (p *Package) XML(name string) (*etree.Document, error) {
	if doc, ok := p.xml[name]; ok {
		return doc, nil
	}
	b, ok := p.parts[name]
	if !ok {
		return nil, fmt.Errorf("part %s not found", name)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(b); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("parse %s: empty document", name)
	}
	p.xml[name] = doc
	return doc, nil
}

// SetXML stores a tree as the content of a part.
func (p *Package) SetXML(name string, doc *etree.Document) {
	p.track(name)
	delete(p.parts, name)
	p.xml[name] = doc
}

func (p *Package) track(name string) {
	if _, ok := p.parts[name]; ok {
		return
	}
	if _, ok := p.xml[name]; ok {
		return
	}
	p.order = append(p.order, name)
}

// NextPartName returns the first unused "<prefix>N<ext>" starting at 1.
func (p *Package) NextPartName(prefix, ext string) string {
	for i := 1; ; i++ {
		name := prefix + strconv.Itoa(i) + ext
		if !p.Has(name) {
			return name
		}
	}
}

// WriteTo serializes the package as a zip archive.
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)

	names := p.Names()
	sort.SliceStable(names, func(i, j int) bool {
		return names[i] == contentTypesPart && names[j] != contentTypesPart
	})
	for _, name := range names {
		data, err := p.Bytes(name)
		if err != nil {
			return cw.n, err
		}
		fw, err := zw.Create(name)
		if err != nil {
			return cw.n, fmt.Errorf("write part %s: %w", name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return cw.n, fmt.Errorf("write part %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// Save writes the package to filename through a temporary file in the same
// directory so a failed write never truncates the original.
func (p *Package) Save(filename string) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), ".docx-save-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := p.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, filename); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}

// Content types

// ContentType returns the override content type registered for a part.
func (p *Package) ContentType(name string) string {
	doc, err := p.XML(contentTypesPart)
	if err != nil {
		return ""
	}
	for _, o := range doc.Root().SelectElements("Override") {
		if o.SelectAttrValue("PartName", "") == "/"+name {
			return o.SelectAttrValue("ContentType", "")
		}
	}
	ext := strings.ToLower(path.Ext(name))
	for _, d := range doc.Root().SelectElements("Default") {
		if "."+strings.ToLower(d.SelectAttrValue("Extension", "")) == ext {
			return d.SelectAttrValue("ContentType", "")
		}
	}
	return ""
}

// SetOverride registers (or replaces) the content type of a part.
func (p *Package) SetOverride(name, contentType string) error {
	doc, err := p.XML(contentTypesPart)
	if err != nil {
		return err
	}
	root := doc.Root()
	for _, o := range root.SelectElements("Override") {
		if o.SelectAttrValue("PartName", "") == "/"+name {
			o.CreateAttr("ContentType", contentType)
			return nil
		}
	}
	o := root.CreateElement("Override")
	o.CreateAttr("PartName", "/"+name)
	o.CreateAttr("ContentType", contentType)
	return nil
}

// EnsureDefault registers a content type for a file extension when missing.
func (p *Package) EnsureDefault(ext, contentType string) error {
	doc, err := p.XML(contentTypesPart)
	if err != nil {
		return err
	}
	root := doc.Root()
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, d := range root.SelectElements("Default") {
		if strings.EqualFold(d.SelectAttrValue("Extension", ""), ext) {
			return nil
		}
	}
	d := etree.NewElement("Default")
	d.CreateAttr("Extension", ext)
	d.CreateAttr("ContentType", contentType)
	root.InsertChildAt(0, d)
	return nil
}

// Relationships

func relsPartName(source string) string {
	if source == "" {
		return "_rels/.rels"
	}
	dir, file := path.Split(source)
	return dir + "_rels/" + file + ".rels"
}

func (p *Package) relsDoc(source string, create bool) (*etree.Document, error) {
	name := relsPartName(source)
	if p.Has(name) {
		return p.XML(name)
	}
	if !create {
		return nil, nil
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", NSPackageRels)
	p.SetXML(name, doc)
	return doc, nil
}

// Relationships lists the relationships whose source is the given part
// ("" for the package itself).
func (p *Package) Relationships(source string) ([]Relationship, error) {
	doc, err := p.relsDoc(source, false)
	if err != nil || doc == nil {
		return nil, err
	}
	var rels []Relationship
	for _, r := range doc.Root().SelectElements("Relationship") {
		rels = append(rels, Relationship{
			ID:         r.SelectAttrValue("Id", ""),
			Type:       r.SelectAttrValue("Type", ""),
			Target:     r.SelectAttrValue("Target", ""),
			TargetMode: r.SelectAttrValue("TargetMode", ""),
		})
	}
	return rels, nil
}

// Relationship returns the relationship with the given id.
func (p *Package) Relationship(source, id string) (Relationship, bool) {
	rels, err := p.Relationships(source)
	if err != nil {
		return Relationship{}, false
	}
	for _, r := range rels {
		if r.ID == id {
			return r, true
		}
	}
	return Relationship{}, false
}

// FindRelationship returns the first relationship of relType from source.
func (p *Package) FindRelationship(source, relType string) (Relationship, bool) {
	rels, err := p.Relationships(source)
	if err != nil {
		return Relationship{}, false
	}
	for _, r := range rels {
		if r.Type == relType {
			return r, true
		}
	}
	return Relationship{}, false
}

// AddRelationship appends a relationship and returns its new id.
func (p *Package) AddRelationship(source, relType, target string, external bool) (string, error) {
	doc, err := p.relsDoc(source, true)
	if err != nil {
		return "", err
	}
	root := doc.Root()
	maxID := 0
	for _, r := range root.SelectElements("Relationship") {
		id := r.SelectAttrValue("Id", "")
		if n, err := strconv.Atoi(strings.TrimPrefix(id, "rId")); err == nil && n > maxID {
			maxID = n
		}
	}
	id := "rId" + strconv.Itoa(maxID+1)
	r := root.CreateElement("Relationship")
	r.CreateAttr("Id", id)
	r.CreateAttr("Type", relType)
	r.CreateAttr("Target", target)
	if external {
		r.CreateAttr("TargetMode", "External")
	}
	return id, nil
}

// ResolveTarget turns a relationship target into a part name.
func ResolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return strings.TrimPrefix(path.Join(path.Dir(source), target), "/")
}
