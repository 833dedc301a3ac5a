package redirects

import (
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docrefs/internal/foundation/errors"
)

// Settings are the non-redirect keys of the configuration file that locate
// the documentation tree.
type Settings struct {
	Root      string `yaml:"root"`
	Structure struct {
		Readme  string `yaml:"readme"`
		Summary string `yaml:"summary"`
	} `yaml:"structure"`
}

// ParseSettings decodes the root and structure keys. The redirect block is
// removed before decoding since it may legitimately repeat keys.
func ParseSettings(content []byte) (Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(withoutRedirectBlock(content), &s); err != nil {
		return Settings{}, errors.RedirectsError("invalid documentation configuration").Wrap(err).Build()
	}
	return s, nil
}

// Settings decodes the settings of the loaded file.
func (t *Table) Settings() (Settings, error) {
	return ParseSettings(t.Content())
}

func withoutRedirectBlock(content []byte) []byte {
	lines := splitLines(content)
	kept := make([]string, 0, len(lines))
	inBlock := false
	for _, line := range lines {
		if inBlock {
			if strings.TrimSpace(line) == "" || line[0] == ' ' || line[0] == '\t' {
				continue
			}
			inBlock = false
		}
		if line == marker || strings.HasPrefix(line, marker+" ") {
			inBlock = true
			continue
		}
		kept = append(kept, line)
	}
	return []byte(strings.Join(kept, "\n"))
}
