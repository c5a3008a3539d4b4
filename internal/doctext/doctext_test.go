package doctext

import (
	"errors"
	"strings"
	"testing"
)

func TestExtract_PlainTextPassthrough(t *testing.T) {
	in := "Aula: nós básicos\nObjetivos: dominar o nó direito\n"
	got, err := Extract([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if got != in {
		t.Errorf("text changed: %q", got)
	}
}

func TestExtract_UTF8Accents(t *testing.T) {
	in := "Orientação e acampamento — revisão"
	got, err := Extract([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if got != in {
		t.Errorf("accented text changed: %q", got)
	}
}

func TestExtract_EmptyRejected(t *testing.T) {
	_, err := Extract(nil)
	var unsupported *ErrUnsupportedFormat
	if !errors.As(err, &unsupported) {
		t.Fatalf("want ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtract_BinaryRejected(t *testing.T) {
	_, err := Extract([]byte{0xff, 0xfe, 0x00, 0x01, 0x80})
	var unsupported *ErrUnsupportedFormat
	if !errors.As(err, &unsupported) {
		t.Fatalf("want ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtract_CorruptPDFRejected(t *testing.T) {
	// Carries the PDF magic but no valid structure.
	_, err := Extract([]byte("%PDF-1.4 garbage"))
	var unsupported *ErrUnsupportedFormat
	if !errors.As(err, &unsupported) {
		t.Fatalf("want ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtractReader(t *testing.T) {
	got, err := ExtractReader(strings.NewReader("linha um\nlinha dois"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "linha um\nlinha dois" {
		t.Errorf("got %q", got)
	}
}
