// Package i18n holds the localized validation-message catalogs and the
// locale to forum-language mapping.
package i18n

import (
	"bufio"
	"os"
	"strings"
	"sync"
)

// DefaultLocale is used when a requested locale has no catalog
const DefaultLocale = "en"

// Catalog maps (locale, message code) to a localized message template.
// Templates may contain {min} and {max} placeholders which the error
// translator substitutes with field length bounds.
type Catalog struct {
	mu       sync.RWMutex
	messages map[string]map[string]string
}

// NewCatalog creates a catalog seeded with the built-in messages
func NewCatalog() *Catalog {
	c := &Catalog{messages: make(map[string]map[string]string)}
	for locale, msgs := range builtinMessages {
		bundle := make(map[string]string, len(msgs))
		for code, msg := range msgs {
			bundle[code] = msg
		}
		c.messages[locale] = bundle
	}
	return c
}

// Lookup returns the message template for the code in the given locale.
// An unknown locale falls back to the default locale; an unknown code
// reports ok=false.
func (c *Catalog) Lookup(code, locale string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	bundle, ok := c.messages[locale]
	if !ok {
		bundle, ok = c.messages[DefaultLocale]
		if !ok {
			return "", false
		}
	}
	msg, ok := bundle[code]
	return msg, ok
}

// Add registers a message template, overriding any built-in one
func (c *Catalog) Add(locale, code, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	bundle, ok := c.messages[locale]
	if !ok {
		bundle = make(map[string]string)
		c.messages[locale] = bundle
	}
	bundle[code] = message
}

// LoadFromFile merges messages for a locale from a properties-style file
// (code=message, one per line, # comments).
func (c *Catalog) LoadFromFile(locale, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		code, message, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		c.Add(locale, strings.TrimSpace(code), strings.TrimSpace(message))
	}
	return scanner.Err()
}
