// Package console holds the shared shell widgets that ride on the event bus:
// the deletion-confirmation dialog, the message banners, and the global
// search pipeline.
package console

// Translator resolves message keys to display text. The full i18n catalogs
// live outside this core; a map-backed implementation is enough here.
type Translator interface {
	Translate(key string) string
}

// MapTranslator is a Translator backed by a plain map. Unknown keys resolve
// to themselves so missing entries stay visible instead of vanishing.
type MapTranslator map[string]string

func (m MapTranslator) Translate(key string) string {
	if text, ok := m[key]; ok {
		return text
	}
	return key
}
