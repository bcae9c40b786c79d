// Package block splits a source buffer into ordered blocks on the `---`
// separator line and classifies each block's declared kind from its leading
// keyword. Segmentation is purely lexical; no semantic lookahead happens here.
package block

import "strings"

// Separator is the line that delimits blocks, alone on its own line.
const Separator = "---"

// Kind is the declared kind of a block, inferred from the token preceding
// its first colon.
type Kind int

const (
	// Unknown marks a block with no recognized keyword or no colon at all.
	Unknown Kind = iota
	// Version marks a `version:` block.
	Version
	// Profile marks a `profile:` block.
	Profile
	// Service marks a `b-pod:` block.
	Service
	// Files marks a `files:` block.
	Files
)

// String returns the keyword associated with the kind.
func (k Kind) String() string {
	switch k {
	case Version:
		return "version"
	case Profile:
		return "profile"
	case Service:
		return "b-pod"
	case Files:
		return "files"
	default:
		return "unknown"
	}
}

// Classify maps a block keyword to its kind.
func Classify(keyword string) Kind {
	switch strings.TrimSpace(keyword) {
	case "version":
		return Version
	case "profile":
		return Profile
	case "b-pod":
		return Service
	case "files":
		return Files
	default:
		return Unknown
	}
}

// Block is one trimmed text fragment between separators.
type Block struct {
	Kind    Kind
	Keyword string
	Content string
	// Line is the 1-based line of the block's first non-blank line within
	// the scanned buffer.
	Line int
	// HasColon records whether any colon appeared; blocks without one have
	// no keyword and are reported as structural errors downstream.
	HasColon bool
}

// Body returns the block content after the first colon.
func (b Block) Body() string {
	idx := strings.Index(b.Content, ":")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(b.Content[idx+1:])
}

// Segment splits a buffer into ordered, trimmed, non-empty blocks. It is a
// pure function of the buffer.
func Segment(buffer string) []Block {
	var blocks []Block

	var current []string
	startLine := 0

	flush := func() {
		content := strings.TrimSpace(strings.Join(current, "\n"))
		current = nil
		if content == "" {
			startLine = 0
			return
		}
		blocks = append(blocks, makeBlock(content, startLine))
		startLine = 0
	}

	for i, line := range strings.Split(buffer, "\n") {
		if strings.TrimSpace(line) == Separator {
			flush()
			continue
		}
		if startLine == 0 && strings.TrimSpace(line) != "" {
			startLine = i + 1
		}
		if startLine != 0 {
			current = append(current, line)
		}
	}
	flush()

	return blocks
}

func makeBlock(content string, line int) Block {
	idx := strings.Index(content, ":")
	if idx < 0 {
		return Block{Kind: Unknown, Content: content, Line: line}
	}
	keyword := strings.TrimSpace(content[:idx])
	return Block{
		Kind:     Classify(keyword),
		Keyword:  keyword,
		Content:  content,
		Line:     line,
		HasColon: true,
	}
}
