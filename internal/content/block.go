// Package content loads the gallery's two text resources and turns their
// text into display blocks.
package content

import "strings"

// BlockKind classifies a display block.
type BlockKind string

const (
	BlockSpacer    BlockKind = "spacer"
	BlockField     BlockKind = "field"
	BlockParagraph BlockKind = "paragraph"
)

// Block is one renderable unit derived from resource text.
type Block struct {
	Kind  BlockKind `json:"kind"`
	Label string    `json:"label,omitempty"`
	Value string    `json:"value,omitempty"`
	Text  string    `json:"text,omitempty"`
}

// ParseArtworkInfo classifies every line of text into one block, in order:
// blank lines become spacers, lines with a colon become label/value fields
// split at the first colon, anything else is a paragraph of the raw line.
func ParseArtworkInfo(text string) []Block {
	lines := strings.Split(text, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blocks = append(blocks, Block{Kind: BlockSpacer})
			continue
		}
		if label, value, ok := strings.Cut(line, ":"); ok {
			blocks = append(blocks, Block{
				Kind:  BlockField,
				Label: strings.TrimSpace(label),
				Value: strings.TrimSpace(value),
			})
			continue
		}
		blocks = append(blocks, Block{Kind: BlockParagraph, Text: line})
	}
	return blocks
}

// ParseCuratorNarration splits text on blank lines ("\n\n"); every segment
// is one verbatim paragraph.
func ParseCuratorNarration(text string) []Block {
	segments := strings.Split(text, "\n\n")
	blocks := make([]Block, len(segments))
	for i, seg := range segments {
		blocks[i] = Block{Kind: BlockParagraph, Text: seg}
	}
	return blocks
}
