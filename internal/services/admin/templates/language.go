package templates

import (
	"net/url"

	admini18n "github.com/louisbranch/adminpanel/internal/services/admin/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// LanguageOptions lists supported languages, each labelled in its own
// language, with links that keep the current path and query.
func LanguageOptions(page PageContext) []LanguageOption {
	supported := admini18n.Supported()
	options := make([]LanguageOption, 0, len(supported))
	for _, tag := range supported {
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  languageLabel(tag),
			URL:    LanguageURL(page, tag.String()),
			Active: page.Lang == tag.String(),
		})
	}
	return options
}

// LanguageURL returns the current URL with the lang parameter replaced.
func LanguageURL(page PageContext, tag string) string {
	path := page.CurrentPath
	if path == "" {
		path = "/"
	}
	values, err := url.ParseQuery(page.CurrentQuery)
	if err != nil {
		values = url.Values{}
	}
	values.Set(admini18n.LangParam, tag)
	return path + "?" + values.Encode()
}

func languageLabel(tag language.Tag) string {
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return tag.String()
}
