package refiner

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/nguyentantai21042004/bodhiflow/internal/metadata"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 18
)

type blockKind int

const (
	blockSkip blockKind = iota
	blockHeading
	blockBullet
	blockQuote
	blockText
)

// block is one rendered paragraph of a refined document.
type block struct {
	kind  blockKind
	level int
	text  string
}

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet   = regexp.MustCompile(`^[\-\*+]\s+(.+)$`)
	reQuote    = regexp.MustCompile(`^>\s?(.*)$`)
	reTableSep = regexp.MustCompile(`^\|?\s*:?-{3,}`)
)

// parseBlocks maps each Markdown line to the paragraph it renders as.
// Table rows flatten to tab separated text.
func parseBlocks(markdown string) []block {
	var blocks []block
	for _, line := range strings.Split(markdown, "\n") {
		b := classifyLine(strings.TrimSpace(line))
		if b.kind != blockSkip {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func classifyLine(line string) block {
	if line == "" || line == "---" || reTableSep.MatchString(line) {
		return block{kind: blockSkip}
	}
	if m := reHeading.FindStringSubmatch(line); m != nil {
		return block{kind: blockHeading, level: len(m[1]), text: m[2]}
	}
	if m := reBullet.FindStringSubmatch(line); m != nil {
		return block{kind: blockBullet, text: m[1]}
	}
	if m := reQuote.FindStringSubmatch(line); m != nil {
		return block{kind: blockQuote, text: m[1]}
	}
	if strings.HasPrefix(line, "|") {
		cells := strings.Split(strings.Trim(line, "|"), "|")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		return block{kind: blockText, text: strings.Join(cells, "\t")}
	}
	return block{kind: blockText, text: line}
}

// docxHeader is the caption under the title: style, author and publish date when known.
func docxHeader(meta metadata.Record) string {
	var parts []string
	for _, p := range []string{meta.Style, meta.Author, meta.PublishedAt} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " | ")
}

// writeDocx renders a refined document with its metadata header as a docx file.
func writeDocx(meta metadata.Record, markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addRun(doc.AddParagraph(""), meta.Title, true, titleSize)
	if header := docxHeader(meta); header != "" {
		addRun(doc.AddParagraph(""), header, false, fontSize)
	}
	if meta.Description != "" {
		addRichText(doc.AddParagraph(""), meta.Description)
	}

	for _, b := range parseBlocks(markdown) {
		p := doc.AddParagraph("")
		switch b.kind {
		case blockHeading:
			addRun(p, b.text, true, headingSize(b.level))
		case blockBullet:
			addRichText(p, "• "+b.text)
		case blockQuote:
			addRichText(p, "“"+b.text+"”")
		default:
			addRichText(p, b.text)
		}
	}

	return doc.SaveTo(outputPath)
}

func headingSize(level int) uint64 {
	if level < 1 || level > 3 {
		return fontSize
	}
	return uint64(17 - level)
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(stripInline(text)).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

// addRichText keeps **bold** spans bold and drops other inline markers.
func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	bolds := reBold.FindAllStringSubmatch(text, -1)
	for i, part := range parts {
		if part != "" {
			addRun(p, part, false, fontSize)
		}
		if i < len(bolds) {
			addRun(p, bolds[i][1], true, fontSize)
		}
	}
}

func stripInline(s string) string {
	return strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
}
