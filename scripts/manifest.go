package scripts

import (
	"strings"

	"github.com/reusee/tmplrun/configs"
	"github.com/reusee/tmplrun/logs"
)

// ManifestStyle describes the dependency block written before the rendered
// body. Dependencies are inserted verbatim between Header and Footer, every
// line carrying LinePrefix.
type ManifestStyle struct {
	LinePrefix string
	Header     []string
	Footer     []string
}

// cargo manifest understood by rust-script
var DefaultManifestStyle = ManifestStyle{
	LinePrefix: "//! ",
	Header: []string{
		"```cargo",
		"[dependencies]",
	},
	Footer: []string{
		"```",
	},
}

func (m ManifestStyle) Build(deps []string) string {
	if len(deps) == 0 {
		return ""
	}
	var b strings.Builder
	writeLine := func(line string) {
		b.WriteString(m.LinePrefix)
		b.WriteString(line)
		b.WriteString("\n")
	}
	for _, line := range m.Header {
		writeLine(line)
	}
	for _, dep := range deps {
		writeLine(dep)
	}
	for _, line := range m.Footer {
		writeLine(line)
	}
	return b.String()
}

func (Module) ManifestStyle(
	loader configs.Loader,
	logger logs.Logger,
) ManifestStyle {
	style := DefaultManifestStyle
	if prefix := configs.Lookup[*string](loader, logger, "manifest.line_prefix"); prefix != nil {
		style.LinePrefix = *prefix
	}
	if header := configs.Lookup[*[]string](loader, logger, "manifest.header"); header != nil {
		style.Header = *header
	}
	if footer := configs.Lookup[*[]string](loader, logger, "manifest.footer"); footer != nil {
		style.Footer = *footer
	}
	return style
}
