// Package translate formats user-visible messages for the user's locale.
//
// The locale is detected from the environment on first use. SetLocales
// replaces it, for example from a command line flag.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

var (
	mutex   sync.RWMutex
	printer *message.Printer
)

// detect returns the printer for the environment's locales.
func detect() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("intcode: locale: %v", err)
	}

	return NewPrinter(locales...)
}

// NewPrinter returns a printer for the best match of the given locales,
// falling back to en-US when none are given.
func NewPrinter(locales ...string) *message.Printer {
	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// SetLocales selects the locales messages are formatted for. No locales
// restores the environment's.
func SetLocales(locales ...string) {
	p := detect()
	if len(locales) > 0 {
		p = NewPrinter(locales...)
	}

	mutex.Lock()
	printer = p
	mutex.Unlock()
}

func current() *message.Printer {
	mutex.RLock()
	p := printer
	mutex.RUnlock()
	if p != nil {
		return p
	}

	mutex.Lock()
	defer mutex.Unlock()
	if printer == nil {
		printer = detect()
	}
	return printer
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return current().Sprintf(key, args...)
}
