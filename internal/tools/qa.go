package tools

import (
	"context"

	"git.home.luguber.info/inful/docxbuilder/internal/docx"
	"git.home.luguber.info/inful/docxbuilder/internal/qa"
)

type sentenceLengthArgs struct {
	Filename string `json:"filename" arg:"required" desc:"Path to the document"`
	MaxChars int    `json:"max_chars" desc:"Longest acceptable sentence in characters"`
}

func qaTools(env *Env) []Tool {
	return []Tool{
		Define("extract_text", "Extract the non-empty paragraphs of a document as plain text.",
			filenameArgs{}, env.extractText),
		Define("check_sentence_length", "List sentences longer than max_chars as a JSON array.",
			sentenceLengthArgs{MaxChars: qa.DefaultMaxChars}, env.checkSentenceLength),
		Define("check_passive_voice", "List sentences with simple passive constructions as a JSON array.",
			filenameArgs{}, env.checkPassiveVoice),
	}
}

func (e *Env) extractText(_ context.Context, a filenameArgs) (string, error) {
	return e.read(a.Filename, "Failed to extract text", func(d *docx.Document, _ string) (string, error) {
		return d.ParagraphText(), nil
	}), nil
}

func (e *Env) checkSentenceLength(_ context.Context, a sentenceLengthArgs) (string, error) {
	return e.read(a.Filename, "Failed to check sentence length", func(d *docx.Document, _ string) (string, error) {
		return marshalIndent(qa.LongSentences(d.ParagraphText(), a.MaxChars))
	}), nil
}

func (e *Env) checkPassiveVoice(_ context.Context, a filenameArgs) (string, error) {
	return e.read(a.Filename, "Failed to check passive voice", func(d *docx.Document, _ string) (string, error) {
		return marshalIndent(qa.PassiveSentences(d.ParagraphText()))
	}), nil
}
