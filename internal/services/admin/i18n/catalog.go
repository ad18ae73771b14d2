package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BaseLocale is the locale every other catalog falls back to.
const BaseLocale = "en-US"

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// Catalog maps locales to their message sets.
type Catalog struct {
	locales map[string]map[string]string
}

var defaultCatalog = mustLoadAndRegister()

// DefaultCatalog returns the embedded admin catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// LoadCatalog reads locales/<locale>.yaml files from catalogFS.
func LoadCatalog(catalogFS fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(catalogFS, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	catalog := &Catalog{locales: make(map[string]map[string]string, len(paths))}
	for _, p := range paths {
		data, err := fs.ReadFile(catalogFS, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		locale, messages, err := parseCatalogFile(data)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if want := strings.TrimSuffix(path.Base(p), ".yaml"); locale != want {
			return nil, fmt.Errorf("catalog %s: locale %q must match file name %q", p, locale, want)
		}
		catalog.locales[locale] = messages
	}

	base, ok := catalog.locales[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	for locale, messages := range catalog.locales {
		for key := range messages {
			if _, ok := base[key]; !ok {
				return nil, fmt.Errorf("catalog %s: key %q missing from base locale", locale, key)
			}
		}
	}
	return catalog, nil
}

// Register installs every message with x/text/message. Locales also register
// under their base language so "pt" resolves to "pt-BR" strings.
func (c *Catalog) Register() error {
	for _, locale := range c.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if base, _ := tag.Base(); base.String() != "und" {
			if baseTag, err := language.Parse(base.String()); err == nil && baseTag != tag {
				tags = append(tags, baseTag)
			}
		}
		messages := c.locales[locale]
		for key, value := range messages {
			for _, registerTag := range tags {
				if err := message.SetString(registerTag, key, value); err != nil {
					return fmt.Errorf("register %s %q: %w", locale, key, err)
				}
			}
		}
	}
	return nil
}

// Locales returns the loaded locale identifiers, sorted.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.locales))
	for locale := range c.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Message returns one message with base-locale fallback.
func (c *Catalog) Message(locale, key string) (string, bool) {
	if messages, ok := c.locales[locale]; ok {
		if value, ok := messages[key]; ok {
			return value, true
		}
	}
	value, ok := c.locales[BaseLocale][key]
	return value, ok
}

// Keys returns the base locale keys, sorted.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.locales[BaseLocale]))
	for key := range c.locales[BaseLocale] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func mustLoadAndRegister() *Catalog {
	catalog, err := LoadCatalog(embeddedLocales)
	if err != nil {
		panic(err)
	}
	if err := catalog.Register(); err != nil {
		panic(err)
	}
	return catalog
}

// parseCatalogFile reads the flat catalog format:
//
//	locale: "en-US"
//	messages:
//	  "key": "value"
func parseCatalogFile(data []byte) (string, map[string]string, error) {
	var locale string
	messages := map[string]string{}
	inMessages := false

	for _, rawLine := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "locale:"):
			value, err := strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(line, "locale:")))
			if err != nil {
				return "", nil, fmt.Errorf("parse locale: %w", err)
			}
			locale = value
		case line == "messages:":
			inMessages = true
		default:
			if !inMessages {
				return "", nil, fmt.Errorf("unexpected line %q", line)
			}
			key, value, err := parseMessageEntry(line)
			if err != nil {
				return "", nil, fmt.Errorf("parse message entry %q: %w", line, err)
			}
			if _, exists := messages[key]; exists {
				return "", nil, fmt.Errorf("duplicate key %q", key)
			}
			messages[key] = value
		}
	}

	if locale == "" {
		return "", nil, fmt.Errorf("missing locale")
	}
	if len(messages) == 0 {
		return "", nil, fmt.Errorf("missing messages")
	}
	return locale, messages, nil
}

func parseMessageEntry(line string) (string, string, error) {
	keyToken, rest, err := splitQuotedToken(line)
	if err != nil {
		return "", "", err
	}
	key, err := strconv.Unquote(keyToken)
	if err != nil {
		return "", "", fmt.Errorf("unquote key: %w", err)
	}
	if strings.TrimSpace(key) == "" {
		return "", "", fmt.Errorf("blank key")
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, ":") {
		return "", "", fmt.Errorf("missing ':' separator")
	}
	value, err := strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(rest, ":")))
	if err != nil {
		return "", "", fmt.Errorf("unquote value: %w", err)
	}
	return key, value, nil
}

func splitQuotedToken(line string) (string, string, error) {
	if !strings.HasPrefix(line, "\"") {
		return "", "", fmt.Errorf("expected quoted token")
	}
	escaped := false
	for i := 1; i < len(line); i++ {
		switch ch := line[i]; {
		case escaped:
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '"':
			return line[:i+1], line[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("unterminated quoted token")
}
