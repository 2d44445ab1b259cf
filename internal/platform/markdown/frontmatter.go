package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "ritualcoach/internal/platform/errors"
)

const (
	fence      = "---"
	openFence  = fence + "\n"
	closeFence = "\n" + fence + "\n"
)

// SplitHeader separates a leading YAML header from the document body.
// found is false for documents without a header.
func SplitHeader(content string) (header, body string, found bool, err error) {
	if !strings.HasPrefix(content, openFence) {
		return "", content, false, nil
	}
	rest := content[len(openFence):]
	if strings.HasPrefix(rest, fence+"\n") {
		return "", rest[len(fence)+1:], true, nil
	}
	idx := strings.Index(rest, closeFence)
	if idx < 0 {
		return "", "", false, fmt.Errorf("%w: frontmatter has no closing fence", apperrors.ErrMalformedRecord)
	}
	return rest[:idx], rest[idx+len(closeFence):], true, nil
}

// DecodeFrontmatter decodes the header of content into meta, which must be a
// pointer, and returns the body. meta is left untouched when there is no
// header.
func DecodeFrontmatter(content string, meta any) (string, bool, error) {
	header, body, found, err := SplitHeader(content)
	if err != nil || !found {
		return body, found, err
	}
	if err := yaml.Unmarshal([]byte(header), meta); err != nil {
		return "", true, fmt.Errorf("%w: frontmatter: %v", apperrors.ErrMalformedRecord, err)
	}
	return body, true, nil
}

// EncodeFrontmatter writes meta as a YAML header above body. The body always
// starts on its own line after the closing fence.
func EncodeFrontmatter(meta any, body string) (string, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	var b strings.Builder
	b.WriteString(openFence)
	b.Write(raw)
	b.WriteString(openFence)
	if !strings.HasPrefix(body, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(body)
	return b.String(), nil
}
