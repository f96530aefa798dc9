package config

import (
	"bytes"
	"strings"
	"text/template"
	"unicode"
)

var initTemplate = template.Must(template.New("Boon.toml").Parse(`[project]
title = {{ printf "%q" .Title }}
package_name = {{ printf "%q" .PackageName }}
uti = {{ printf "%q" .UTI }}
authors = ""
description = ""
email = ""
url = ""
version = "0.1.0"

[build]
output_directory = "release"
targets = ["love"]
# Set to true to use only the patterns below.
exclude_default_ignore_list = false
# Regular expressions matched against forward-slash paths relative to the project.
ignore_list = []

[love]
version = {{ printf "%q" .LoveVersion }}
`))

// InitTemplate renders a project Boon.toml for a project directory name.
func InitTemplate(dirName, loveVersion string) ([]byte, error) {
	pkg := PackageNameFor(dirName)
	data := struct {
		Title, PackageName, UTI, LoveVersion string
	}{
		Title:       dirName,
		PackageName: pkg,
		UTI:         "com.example." + strings.ReplaceAll(pkg, "_", ""),
		LoveVersion: loveVersion,
	}

	var buf bytes.Buffer
	if err := initTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PackageNameFor derives a lowercase identifier from a title:
// "My Cool Game!" becomes "my_cool_game".
func PackageNameFor(title string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			underscore = false
		case b.Len() > 0 && !underscore:
			b.WriteByte('_')
			underscore = true
		}
	}
	name := strings.TrimRight(b.String(), "_")
	if name == "" {
		return "game"
	}
	return name
}
