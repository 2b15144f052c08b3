// Package filegate holds the precondition checks every document operation
// runs before touching a file: extension normalization, existence and a
// writability probe.
package filegate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DocxExt is the extension every document path is coerced to.
const DocxExt = ".docx"

// EnsureDocxExtension appends .docx when path does not already end with it.
func EnsureDocxExtension(path string) string {
	if strings.EqualFold(filepath.Ext(path), DocxExt) {
		return path
	}
	return path + DocxExt
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CheckWriteable probes whether path can be written. An existing file is
// opened for append; a missing file requires a writable parent directory.
// The returned reason is empty when the path is writable.
func CheckWriteable(path string) (bool, string) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return false, fmt.Sprintf("%s is a directory", path)
	case err == nil:
		f, oerr := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
		if oerr != nil {
			return false, fmt.Sprintf("File %s is not writeable: %v", path, oerr)
		}
		_ = f.Close()
		return true, ""
	case !os.IsNotExist(err):
		return false, fmt.Sprintf("Cannot access %s: %v", path, err)
	}

	dir := filepath.Dir(path)
	dinfo, err := os.Stat(dir)
	if err != nil {
		return false, fmt.Sprintf("Directory %s does not exist", dir)
	}
	if !dinfo.IsDir() {
		return false, fmt.Sprintf("%s is not a directory", dir)
	}
	probe, err := os.CreateTemp(dir, ".docxbuilder-probe-*")
	if err != nil {
		return false, fmt.Sprintf("Directory %s is not writeable: %v", dir, err)
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return true, ""
}

// Precondition runs the standard checks for an operation that mutates an
// existing document. It returns the normalized path and, when a check
// fails, the status message to return to the caller.
func Precondition(filename string) (string, string) {
	path := EnsureDocxExtension(filename)
	if !Exists(path) {
		return path, fmt.Sprintf("Document %s does not exist", path)
	}
	if ok, reason := CheckWriteable(path); !ok {
		return path, fmt.Sprintf("Cannot modify document: %s", reason)
	}
	return path, ""
}

// DefaultCopyPath derives "<base>_copy.docx" next to source.
func DefaultCopyPath(source string) string {
	base := strings.TrimSuffix(source, filepath.Ext(source))
	return base + "_copy" + DocxExt
}

// CopyDocument copies source to destination (DefaultCopyPath when empty).
// It returns whether the copy succeeded, a status message and the
// destination path actually used.
func CopyDocument(source, destination string) (bool, string, string) {
	if !Exists(source) {
		return false, fmt.Sprintf("Source document %s does not exist", source), ""
	}
	if destination == "" {
		destination = DefaultCopyPath(source)
	} else {
		destination = EnsureDocxExtension(destination)
	}
	if ok, reason := CheckWriteable(destination); !ok {
		return false, fmt.Sprintf("Cannot create copy: %s", reason), ""
	}
	if err := copyFile(source, destination); err != nil {
		return false, fmt.Sprintf("Failed to copy document: %v", err), ""
	}
	return true, fmt.Sprintf("Document copied to %s", destination), destination
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
