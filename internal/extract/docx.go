package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	paragraphs, err := bodyParagraphs(doc.Editable().GetContent())
	if err != nil {
		return "", err
	}
	return strings.Join(paragraphs, "\n"), nil
}

// bodyParagraphs returns the text of each w:p that is a direct child of w:body.
// Paragraphs nested in tables, text boxes or content controls are skipped.
func bodyParagraphs(content string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))
	var (
		stack      []string
		paragraphs []string
		current    strings.Builder
		pIndex     = -1
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			switch {
			case pIndex < 0 && name == "p" && len(stack) > 0 && stack[len(stack)-1] == "body":
				pIndex = len(stack)
				current.Reset()
			case pIndex >= 0 && inRun(stack[pIndex+1:]):
				writeRunChild(&current, t)
			}
			stack = append(stack, name)
		case xml.CharData:
			if pIndex >= 0 && len(stack) > 0 && stack[len(stack)-1] == "t" && inRun(stack[pIndex+1:len(stack)-1]) {
				current.Write(t)
			}
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, errors.New("unbalanced document.xml")
			}
			stack = stack[:len(stack)-1]
			if pIndex >= 0 && len(stack) == pIndex {
				paragraphs = append(paragraphs, current.String())
				pIndex = -1
			}
		}
	}
	return paragraphs, nil
}

// inRun reports whether path (relative to a paragraph) ends inside a run
// that contributes to the paragraph text: w:r or w:hyperlink/w:r.
func inRun(path []string) bool {
	switch len(path) {
	case 1:
		return path[0] == "r"
	case 2:
		return path[0] == "hyperlink" && path[1] == "r"
	default:
		return false
	}
}

func writeRunChild(buf *strings.Builder, el xml.StartElement) {
	switch el.Name.Local {
	case "tab", "ptab":
		buf.WriteByte('\t')
	case "cr":
		buf.WriteByte('\n')
	case "noBreakHyphen":
		buf.WriteByte('-')
	case "br":
		for _, attr := range el.Attr {
			if attr.Name.Local == "type" && attr.Value != "textWrapping" {
				return
			}
		}
		buf.WriteByte('\n')
	}
}
