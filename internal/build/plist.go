package build

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"

	"howett.net/plist"

	"github.com/boonbuild/boon/internal/config"
	oerrors "github.com/boonbuild/boon/internal/errors"
)

var (
	bundleIdentifierRe = regexp.MustCompile(`<key>CFBundleIdentifier</key>\s*<string>([^<]*)</string>`)
	bundleNameRe       = regexp.MustCompile(`<key>CFBundleName</key>\s*<string>([^<]*)</string>`)
	exportedTypesKeyRe = regexp.MustCompile(`(?m)(?:^[ \t]*)?<key>UTExportedTypeDeclarations</key>\s*`)
	arrayTagRe         = regexp.MustCompile(`<(/?)array\s*(/?)>`)
)

// RewriteInfoPlist points a LÖVE Info.plist at the project: the bundle
// identifier becomes the project UTI, the bundle name becomes the title and
// the exported .love type declaration is dropped. Bytes outside the edited
// regions are left untouched. The result is parsed back and checked.
func RewriteInfoPlist(data []byte, project config.Project) ([]byte, error) {
	out, err := replaceStringValue(data, bundleIdentifierRe, "CFBundleIdentifier", project.UTI)
	if err != nil {
		return nil, err
	}
	if out, err = replaceStringValue(out, bundleNameRe, "CFBundleName", project.Title); err != nil {
		return nil, err
	}
	if out, err = removeExportedTypes(out); err != nil {
		return nil, err
	}
	if err := verifyInfoPlist(out, project); err != nil {
		return nil, err
	}
	return out, nil
}

// replaceStringValue swaps the <string> value of the first match of re,
// whose only group must be the value.
func replaceStringValue(data []byte, re *regexp.Regexp, key, value string) ([]byte, error) {
	loc := re.FindSubmatchIndex(data)
	if loc == nil {
		return nil, fmt.Errorf("%w: no <string> value for %s", oerrors.ErrMetadataRewrite, key)
	}

	var b bytes.Buffer
	b.Grow(len(data) + len(value))
	b.Write(data[:loc[2]])
	if err := xml.EscapeText(&b, []byte(value)); err != nil {
		return nil, fmt.Errorf("%w: escaping %s: %w", oerrors.ErrMetadataRewrite, key, err)
	}
	b.Write(data[loc[3]:])
	return b.Bytes(), nil
}

// removeExportedTypes cuts the UTExportedTypeDeclarations key and its array.
// When the key starts its own line, the whole line range is removed.
func removeExportedTypes(data []byte) ([]byte, error) {
	key := exportedTypesKeyRe.FindIndex(data)
	if key == nil {
		return data, nil
	}

	start, end := key[0], key[1]
	if !bytes.HasPrefix(data[end:], []byte("<array")) {
		return nil, fmt.Errorf("%w: UTExportedTypeDeclarations is not an array", oerrors.ErrMetadataRewrite)
	}
	n, err := arrayEnd(data[end:])
	if err != nil {
		return nil, err
	}
	end += n

	if start == 0 || data[start-1] == '\n' {
		for end < len(data) && (data[end] == ' ' || data[end] == '\t') {
			end++
		}
		if end < len(data) && data[end] == '\r' {
			end++
		}
		if end < len(data) && data[end] == '\n' {
			end++
		}
	}

	out := make([]byte, 0, len(data)-(end-start))
	out = append(out, data[:start]...)
	return append(out, data[end:]...), nil
}

// arrayEnd returns the offset just past the </array> closing the array
// that b starts with.
func arrayEnd(b []byte) (int, error) {
	depth := 0
	for _, m := range arrayTagRe.FindAllSubmatchIndex(b, -1) {
		closing := m[3] > m[2]
		selfClosing := m[5] > m[4]
		switch {
		case selfClosing:
			if depth == 0 {
				return m[1], nil
			}
		case closing:
			depth--
			if depth == 0 {
				return m[1], nil
			}
		default:
			depth++
		}
	}
	return 0, fmt.Errorf("%w: unterminated UTExportedTypeDeclarations array", oerrors.ErrMetadataRewrite)
}

func verifyInfoPlist(data []byte, project config.Project) error {
	var info map[string]interface{}
	if _, err := plist.Unmarshal(data, &info); err != nil {
		return fmt.Errorf("%w: rewritten Info.plist does not parse: %w", oerrors.ErrMetadataRewrite, err)
	}
	if id, _ := info["CFBundleIdentifier"].(string); id != project.UTI {
		return fmt.Errorf("%w: CFBundleIdentifier is %q, want %q", oerrors.ErrMetadataRewrite, id, project.UTI)
	}
	if name, _ := info["CFBundleName"].(string); name != project.Title {
		return fmt.Errorf("%w: CFBundleName is %q, want %q", oerrors.ErrMetadataRewrite, name, project.Title)
	}
	if _, ok := info["UTExportedTypeDeclarations"]; ok {
		return fmt.Errorf("%w: UTExportedTypeDeclarations still present", oerrors.ErrMetadataRewrite)
	}
	return nil
}
