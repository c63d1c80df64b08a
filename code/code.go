// Package code extracts fenced code blocks from model output. Bridge
// responses and collaboration syntheses frequently wrap generated code in
// markdown fences; callers want the bare code.
package code

import "strings"

// Block is one fenced code block in source order.
type Block struct {
	// Language is the fence info string ("go", "python", ...), empty when the
	// fence carried none.
	Language string
	Code     string
}

// Extract returns the first fenced code block of text. ok is false when text
// contains no complete fence.
func Extract(text string) (code, language string, ok bool) {
	blocks := ExtractAll(text)
	if len(blocks) == 0 {
		return "", "", false
	}
	return blocks[0].Code, blocks[0].Language, true
}

// ExtractAll returns every complete fenced block in order. An opening fence
// without a closing one is ignored.
func ExtractAll(text string) []Block {
	var (
		blocks  []Block
		current []string
		lang    string
		open    bool
	)
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if open {
				blocks = append(blocks, Block{Language: lang, Code: strings.Join(current, "\n")})
				current = nil
				open = false
				continue
			}
			lang = strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
			open = true
			continue
		}
		if open {
			current = append(current, line)
		}
	}
	return blocks
}
