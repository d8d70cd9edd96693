package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Smart CRM":               "smart-crm",
		"  Next.js & React  ":     "next-js-react",
		"Café Déjà Vu":            "cafe-deja-vu",
		"O'zbekiston --- Tech!!":  "o-zbekiston-tech",
		"***":                     "item",
		"":                        "item",
		"AI/ML Platform v2.0":     "ai-ml-platform-v2-0",
	}
	for in, want := range cases {
		assert.Equal(t, want, Make(in), in)
	}
}

func TestMake_TruncatesWithoutTrailingHyphen(t *testing.T) {
	in := strings.Repeat("ab ", 100)

	got := Make(in)
	assert.LessOrEqual(t, len(got), MaxLength)
	assert.False(t, strings.HasSuffix(got, "-"))
}
