package formatter

import "fmt"

// Content is anything that can render itself in the supported output formats.
type Content interface {
	ToText() (string, error)
	ToMarkdown() (string, error)
	ToJSON() ([]byte, error)
}

func Format(content Content, format string) (string, error) {
	switch format {
	case "text":
		return content.ToText()
	case "markdown":
		return content.ToMarkdown()
	case "json":
		b, err := content.ToJSON()
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}
