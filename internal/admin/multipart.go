package admin

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// FilePart is a file attached to a management form submission.
type FilePart struct {
	FieldName   string
	FileName    string
	ContentType string
	Reader      io.Reader
}

// buildMultipart encodes the form fields and files as multipart/form-data and
// returns the body together with its content type.
func buildMultipart(fields map[string]string, files []FilePart) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("admin: write form field %q: %w", name, err)
		}
	}

	for _, file := range files {
		if file.FieldName == "" || file.Reader == nil {
			continue
		}
		part, err := createFilePart(writer, file)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return nil, "", fmt.Errorf("admin: copy file %q: %w", file.FileName, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("admin: finalize multipart body: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

func createFilePart(writer *multipart.Writer, file FilePart) (io.Writer, error) {
	if file.ContentType == "" {
		return writer.CreateFormFile(file.FieldName, file.FileName)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`,
		escapeQuotes(file.FieldName), escapeQuotes(file.FileName)))
	header.Set("Content-Type", file.ContentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("admin: create file part %q: %w", file.FileName, err)
	}
	return part, nil
}

func escapeQuotes(s string) string {
	replacer := strings.NewReplacer("\\", "\\\\", `"`, "\\\"")
	return replacer.Replace(s)
}
