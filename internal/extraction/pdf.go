package extraction

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// pdfText extracts plain text from a PDF payload. A payload the parser
// cannot read is a permanent failure; retrying the same bytes cannot help.
func pdfText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", &PermanentError{Reason: "empty pdf payload"}
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &PermanentError{Reason: "unparseable pdf", Err: err}
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", &PermanentError{Reason: "unparseable pdf", Err: err}
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}
