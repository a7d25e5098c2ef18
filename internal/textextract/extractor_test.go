package textextract

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/waybill-recon/constants"
	"github.com/joseph-ayodele/waybill-recon/internal/common"
)

type stubRunner struct {
	out   string
	err   error
	calls [][]string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.calls = append(s.calls, append([]string{name}, args...))
	return []byte(s.out), []byte("stderr"), s.err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestDecode(t *testing.T) {
	text, enc, err := Decode([]byte("22. Pa\xeds Destino: JAP\xd3N"))
	require.NoError(t, err)
	assert.Equal(t, EncodingLatin1, enc)
	assert.Equal(t, "22. País Destino: JAPÓN", text)

	text, enc, err = Decode(append([]byte{0xEF, 0xBB, 0xBF}, "País"...))
	require.NoError(t, err)
	assert.Equal(t, EncodingUTF8, enc)
	assert.Equal(t, "País", text)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "a  b\nc\n\nd", Sanitize("a  b  \r\nc\x00\r\rd"))
	assert.Equal(t, "", Sanitize(""))
}

func TestExtractCSV(t *testing.T) {
	path := writeFile(t, "fmm.csv", []byte("FORMULARIO No. No. 1\r\n22. Pa\xeds Destino: 249 US\r\n"))
	res, err := NewExtractor(Config{}, nil).Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, constants.CSV, res.SourceType)
	assert.Equal(t, MethodPlain, res.Method)
	assert.Equal(t, EncodingLatin1, res.Encoding)
	assert.Equal(t, "FORMULARIO No. No. 1\n22. País Destino: 249 US\n", res.Text)
	assert.Equal(t, 1, res.Pages)
}

func TestExtractEmptyText(t *testing.T) {
	path := writeFile(t, "blank.txt", []byte("  \n\n"))
	_, err := NewExtractor(Config{}, nil).Extract(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNoExtractableText)
}

func TestExtractUnsupported(t *testing.T) {
	_, err := NewExtractor(Config{}, nil).Extract(context.Background(), "scan.png")
	assert.ErrorIs(t, err, common.ErrUnsupportedFormat)
}

func TestExtractPDFWithPdftotext(t *testing.T) {
	runner := &stubRunner{out: "ORIGIN ID:BOGA  \fEXPRESS WORLDWIDE\f"}
	e := NewExtractor(Config{UsePdftotext: true, Pdftotext: "/opt/pdftotext"}, nil).WithRunner(runner)

	res, err := e.Extract(context.Background(), "labels.pdf")
	require.NoError(t, err)
	assert.Equal(t, MethodPdftotext, res.Method)
	assert.Equal(t, []string{"ORIGIN ID:BOGA", "EXPRESS WORLDWIDE"}, res.PageTexts)
	assert.Equal(t, "ORIGIN ID:BOGA\nEXPRESS WORLDWIDE", res.Text)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "/opt/pdftotext", runner.calls[0][0])
	assert.Equal(t, "labels.pdf", runner.calls[0][len(runner.calls[0])-2])
}

func TestExtractPDFMaxPages(t *testing.T) {
	runner := &stubRunner{out: "one\ftwo\fthree\f"}
	e := NewExtractor(Config{UsePdftotext: true, MaxPages: 2}, nil).WithRunner(runner)
	res, err := e.Extract(context.Background(), "labels.pdf")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)
	assert.Len(t, res.Warnings, 1)
}

func TestExtractPDFMissingBinary(t *testing.T) {
	runner := &stubRunner{err: exec.ErrNotFound}
	e := NewExtractor(Config{UsePdftotext: true}, nil).WithRunner(runner)
	_, err := e.Extract(context.Background(), "labels.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrExtractorUnavailable)
}

func TestExtractBrokenPDFFallsBack(t *testing.T) {
	path := writeFile(t, "broken.pdf", []byte("not a pdf at all"))

	runner := &stubRunner{out: "WAYBILL 1234567890\f"}
	res, err := NewExtractor(Config{}, nil).WithRunner(runner).Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, MethodPdftotext, res.Method)
	assert.NotEmpty(t, res.Warnings)

	e := NewExtractor(Config{}, nil)
	e.lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	_, err = e.Extract(context.Background(), path)
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	e := NewExtractor(Config{UsePdftotext: true}, nil)
	e.lookPath = func(string) (string, error) { return "", errors.New("missing") }
	err := e.Check(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrExtractorUnavailable)
	assert.Equal(t, common.CodeExtractor, common.CodeOf(err))

	assert.NoError(t, NewExtractor(Config{}, nil).Check(context.Background()))
}
