package anchor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello-world"},
		{"", ""},
		{"Installation", "installation"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"API -- Reference", "api-reference"},
		{"snake_case stays", "snake_case-stays"},
		{"Version 2.0 (beta)", "version-20-beta"},
		{"---", ""},
		{"Tabs\tand\nnewlines", "tabs-and-newlines"},
		{"Über uns", "über-uns"},
		{"安装", "安装"},
		{"Configuración avanzada", "configuración-avanzada"},
		{"Установка и настройка", "установка-и-настройка"},
		{"Non\u00a0breaking", "non-breaking"},
		{"¿Qué?", "qué"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"Hello, World!",
		"Getting Started -- Quick Guide",
		"  --weird__ input--  ",
		"ÀÉÎ mixed Ünïcode",
		"already-a-slug",
		"",
	}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "input %q", in)
	}
}

func TestSlugifyCaseInsensitive(t *testing.T) {
	assert.Equal(t, Slugify("Getting Started"), Slugify("GETTING STARTED"))
}

func TestFragment(t *testing.T) {
	assert.Equal(t, "#quick-start", Fragment("Quick Start"))
	assert.Equal(t, "#custom", Fragment("Quick Start {#custom}"))
}

func TestSplitExplicitID(t *testing.T) {
	text, id := SplitExplicitID("Configuration {#config-section}")
	assert.Equal(t, "Configuration", text)
	assert.Equal(t, "config-section", id)

	text, id = SplitExplicitID("Plain heading")
	assert.Equal(t, "Plain heading", text)
	assert.Empty(t, id)
}
