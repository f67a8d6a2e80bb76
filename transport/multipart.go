package transport

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// Form builds multipart request bodies from field values and file handles.
// Used for registration, profile image updates, and video publishing.
type Form struct {
	fields []fieldPart
	files  []filePart
}

type fieldPart struct {
	key   string
	value string
}

type filePart struct {
	key      string
	filename string
	reader   io.Reader
}

// NewForm returns an empty multipart form builder.
func NewForm() *Form {
	return &Form{}
}

// Field adds a text field. Empty values are skipped so optional fields can
// be passed through unconditionally.
func (f *Form) Field(key, value string) *Form {
	if value != "" {
		f.fields = append(f.fields, fieldPart{key: key, value: value})
	}
	return f
}

// File adds a file part read from r. A nil reader is skipped so optional
// files can be passed through unconditionally.
func (f *Form) File(key, filename string, r io.Reader) *Form {
	if r != nil {
		f.files = append(f.files, filePart{key: key, filename: filename, reader: r})
	}
	return f
}

// Encode renders the form into a body and its content type. The body is
// buffered so the transport client can resend it after a token refresh.
func (f *Form) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if err := w.WriteField(field.key, field.value); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", field.key, err)
		}
	}
	for _, file := range f.files {
		part, err := w.CreateFormFile(file.key, file.filename)
		if err != nil {
			return nil, "", fmt.Errorf("create form file %s: %w", file.key, err)
		}
		if _, err := io.Copy(part, file.reader); err != nil {
			return nil, "", fmt.Errorf("copy form file %s: %w", file.key, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
