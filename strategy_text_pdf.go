package convert

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

const (
	textPDFMargin   = 40.0 // pt, left margin and distance from top
	textPDFFontSize = 10.0
	textPDFLeading  = 12.0 // pt between baselines
)

// textToPDFStrategy lays plain text files out as single-page PDFs: literal
// lines in a monospace face, no reflow, starting near the top margin.
// Decoding is permissive; undecodable bytes are dropped, never fatal.
type textToPDFStrategy struct {
	e *Engine
}

func (s *textToPDFStrategy) Name() string { return "text_to_pdf" }

func (s *textToPDFStrategy) Convert(ctx context.Context, req *ConversionRequest) (*Outcome, error) {
	artifacts, err := s.e.runBatch(ctx, req.Files, func(_ context.Context, _ int, f InputFile) (Artifact, error) {
		data, err := textToPDF(decodeText(f.Data))
		if err != nil {
			return Artifact{}, fmt.Errorf("layout %s: %w", f.Name, err)
		}
		return Artifact{
			Name: outputName(f.BaseName(), "pdf"),
			Data: data,
			MIME: "application/pdf",
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if len(artifacts) == 1 {
		return &Outcome{Artifacts: artifacts}, nil
	}
	return &Outcome{
		Artifacts:   artifacts,
		ArchiveName: req.Files[0].BaseName() + convertedSuffix + ".zip",
	}, nil
}

// textToPDF renders lines onto a single A4 page in Courier. Lines past the
// bottom of the page are drawn outside the visible area rather than
// flowing onto a second page; downstream automation expects one page.
func textToPDF(text string) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		SizeStr: "A4",
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFont("Courier", "", textPDFFontSize)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	y := textPDFMargin
	for _, line := range strings.Split(text, "\n") {
		pdf.Text(textPDFMargin, y, tr(line))
		y += textPDFLeading
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// decodeText turns raw bytes into UTF-8 text. Valid UTF-8 passes through;
// otherwise the charset is detected and decoded, and as a last resort
// invalid sequences are stripped. It never fails.
func decodeText(data []byte) string {
	s := string(data)
	if utf8.Valid(data) {
		s = strings.ReplaceAll(s, "\r\n", "\n")
		return s
	}

	detector := chardet.NewTextDetector()
	if result, err := detector.DetectBest(data); err == nil {
		if enc := lookupEncoding(result.Charset); enc != nil {
			if decoded, err := enc.NewDecoder().Bytes(data); err == nil && utf8.Valid(decoded) {
				return strings.ReplaceAll(string(decoded), "\r\n", "\n")
			}
		}
	}

	// Lossy fallback: drop whatever cannot be decoded.
	s = strings.ToValidUTF8(s, "")
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// lookupEncoding maps detected charset names to Go encodings.
func lookupEncoding(charset string) encoding.Encoding {
	switch strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(charset, "-", ""), "_", "")) {
	case "utf8", "utf8bom", "ascii", "usascii":
		return unicode.UTF8
	case "utf16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case "utf16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case "iso88591", "latin1":
		return charmap.ISO8859_1
	case "iso88592":
		return charmap.ISO8859_2
	case "iso88595":
		return charmap.ISO8859_5
	case "iso88597":
		return charmap.ISO8859_7
	case "iso88599":
		return charmap.ISO8859_9
	case "iso885915":
		return charmap.ISO8859_15
	case "windows1250", "cp1250":
		return charmap.Windows1250
	case "windows1251", "cp1251":
		return charmap.Windows1251
	case "windows1252", "cp1252":
		return charmap.Windows1252
	case "koi8r":
		return charmap.KOI8R
	case "shiftjis", "sjis", "cp932", "windows31j":
		return japanese.ShiftJIS
	case "eucjp":
		return japanese.EUCJP
	case "iso2022jp":
		return japanese.ISO2022JP
	case "euckr", "cp949":
		return korean.EUCKR
	case "gb2312", "gbk", "cp936", "gb18030":
		return simplifiedchinese.GBK
	case "big5", "cp950":
		return traditionalchinese.Big5
	}
	return nil
}
