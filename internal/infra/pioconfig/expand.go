package pioconfig

import (
	"regexp"
	"strings"

	"gopkg.in/ini.v1"
)

// maxExpandDepth bounds nested ${...} references.
const maxExpandDepth = 8

var referencePattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expander resolves option values for one environment, including
// PlatformIO ${section.option}, ${sysenv.VAR} and ${this.option} references.
type expander struct {
	file   *ini.File
	getenv func(string) string
	chain  []*ini.Section
}

// option looks key up along the environment's section chain.
func (x *expander) option(key string, depth int) (string, bool) {
	for _, sec := range x.chain {
		if sec.HasKey(key) {
			return x.expand(sec.Key(key).String(), depth), true
		}
	}
	return "", false
}

func (x *expander) expand(value string, depth int) string {
	value = strings.TrimSpace(value)
	if depth >= maxExpandDepth || !strings.Contains(value, "${") {
		return value
	}
	return referencePattern.ReplaceAllStringFunc(value, func(ref string) string {
		inner := referencePattern.FindStringSubmatch(ref)[1]
		dot := strings.LastIndex(inner, ".")
		if dot <= 0 || dot == len(inner)-1 {
			return ref
		}
		section, key := inner[:dot], inner[dot+1:]

		switch section {
		case "sysenv":
			return x.getenv(key)
		case "this":
			v, _ := x.option(key, depth+1)
			return v
		}

		sec, err := x.file.GetSection(section)
		if err != nil || !sec.HasKey(key) {
			return ""
		}
		return x.expand(sec.Key(key).String(), depth+1)
	})
}
