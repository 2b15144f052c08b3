package docx

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"strconv"
	"unicode/utf16"

	"github.com/beevik/etree"
)

// DefaultSpinCount is the number of hash iterations for new protections.
const DefaultSpinCount = 100000

// ErrWrongPassword is returned when unprotecting with a bad password.
var ErrWrongPassword = errors.New("incorrect password")

func (d *Document) settingsRoot() (*etree.Element, error) {
	part, err := d.relatedPart(RelSettings, "word/settings.xml", CTSettings, blankSettings)
	if err != nil {
		return nil, err
	}
	doc, err := d.pkg.XML(part)
	if err != nil {
		return nil, err
	}
	return doc.Root(), nil
}

// Protection describes the editing restriction stored in settings.
type Protection struct {
	Edit      string
	Enforced  bool
	Algorithm string
}

// Protection returns the current editing restriction, if any.
func (d *Document) Protection() (Protection, bool, error) {
	root, err := d.settingsRoot()
	if err != nil {
		return Protection{}, false, err
	}
	dp := wChild(root, "documentProtection")
	if dp == nil {
		return Protection{}, false, nil
	}
	enf := dp.SelectAttrValue("w:enforcement", "0")
	return Protection{
		Edit:      dp.SelectAttrValue("w:edit", ""),
		Enforced:  enf == "1" || enf == "true" || enf == "on",
		Algorithm: dp.SelectAttrValue("w:algorithmName", ""),
	}, true, nil
}

// Protect restricts editing to read-only, guarded by password.
func (d *Document) Protect(password string) error {
	root, err := d.settingsRoot()
	if err != nil {
		return err
	}
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return err
	}
	hash := protectionHash(password, salt, DefaultSpinCount)

	removeWChildren(root, "documentProtection")
	dp := etree.NewElement("w:documentProtection")
	dp.CreateAttr("w:edit", "readOnly")
	dp.CreateAttr("w:enforcement", "1")
	dp.CreateAttr("w:algorithmName", "SHA-512")
	dp.CreateAttr("w:hashValue", base64.StdEncoding.EncodeToString(hash))
	dp.CreateAttr("w:saltValue", base64.StdEncoding.EncodeToString(salt))
	dp.CreateAttr("w:spinCount", strconv.Itoa(DefaultSpinCount))
	insertOrdered(root, dp, settingsOrder)
	return nil
}

// Unprotect removes the editing restriction when password matches. A
// document without protection unprotects trivially.
func (d *Document) Unprotect(password string) error {
	root, err := d.settingsRoot()
	if err != nil {
		return err
	}
	dp := wChild(root, "documentProtection")
	if dp == nil {
		return nil
	}
	hashValue := dp.SelectAttrValue("w:hashValue", "")
	if hashValue != "" {
		salt, err := base64.StdEncoding.DecodeString(dp.SelectAttrValue("w:saltValue", ""))
		if err != nil {
			return err
		}
		want, err := base64.StdEncoding.DecodeString(hashValue)
		if err != nil {
			return err
		}
		spin := wAttrInt(dp, "spinCount", DefaultSpinCount)
		got := protectionHash(password, salt, spin)
		if subtle.ConstantTimeCompare(got, want) != 1 {
			return ErrWrongPassword
		}
	}
	root.RemoveChild(dp)
	return nil
}

// protectionHash derives the ISO/IEC 29500 agile password hash:
// H0 = SHA512(salt || UTF-16LE(password)), Hn = SHA512(Hn-1 || LE32(n-1)).
func protectionHash(password string, salt []byte, spin int) []byte {
	units := utf16.Encode([]rune(password))
	pw := make([]byte, 2*len(units))
	for i, u := range units {
		binary.LittleEndian.PutUint16(pw[2*i:], u)
	}
	h := sha512.New()
	h.Write(salt)
	h.Write(pw)
	sum := h.Sum(nil)

	var iter [4]byte
	for i := 0; i < spin; i++ {
		binary.LittleEndian.PutUint32(iter[:], uint32(i))
		h.Reset()
		h.Write(sum)
		h.Write(iter[:])
		sum = h.Sum(sum[:0])
	}
	return sum
}
