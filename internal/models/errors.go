package models

import "errors"

// Analysis failures are deterministic functions of the input and are never
// retried. All of them are user-correctable.
var (
	// ErrUnsupportedFormat means the upload is not a PDF or DOCX file.
	ErrUnsupportedFormat = errors.New("unsupported file format, use PDF or DOCX")

	// ErrCorruptDocument means the bytes do not parse as the declared format.
	ErrCorruptDocument = errors.New("document could not be parsed, re-export the file and try again")

	// ErrEmptyDocument means parsing succeeded but no text came out, e.g. a
	// scanned-image PDF with no text layer.
	ErrEmptyDocument = errors.New("no text could be extracted, use a text-based file")
)
