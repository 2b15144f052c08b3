package tools

import (
	"context"
	"errors"
	"fmt"

	"git.home.luguber.info/inful/docxbuilder/internal/docx"
)

type passwordArgs struct {
	Filename string `json:"filename" arg:"required" desc:"Path to the document"`
	Password string `json:"password" arg:"required" desc:"Protection password"`
}

func protectionTools(env *Env) []Tool {
	return []Tool{
		Define("protect_document", "Restrict a document to read-only editing, guarded by a password.",
			passwordArgs{}, env.protectDocument),
		Define("unprotect_document", "Remove the editing restriction from a document.",
			passwordArgs{}, env.unprotectDocument),
	}
}

func (e *Env) protectDocument(_ context.Context, a passwordArgs) (string, error) {
	return e.edit(a.Filename, "Failed to protect document", func(d *docx.Document, path string) (string, error) {
		if err := d.Protect(a.Password); err != nil {
			return "", err
		}
		return fmt.Sprintf("Document %s protected successfully", path), nil
	}), nil
}

func (e *Env) unprotectDocument(_ context.Context, a passwordArgs) (string, error) {
	return e.edit(a.Filename, "Failed to unprotect document", func(d *docx.Document, path string) (string, error) {
		_, protected, err := d.Protection()
		if err != nil {
			return "", err
		}
		if !protected {
			return "", abort{fmt.Sprintf("Document %s is not protected", path)}
		}
		if err := d.Unprotect(a.Password); err != nil {
			if errors.Is(err, docx.ErrWrongPassword) {
				return "", abort{"Failed to unprotect document: incorrect password"}
			}
			return "", err
		}
		return fmt.Sprintf("Document %s unprotected successfully", path), nil
	}), nil
}
