package main

import (
	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/message"

	"github.com/richardwooding/gbcore/internal/logger"
)

// newPrinter returns a printer that groups digits the way the user's locale does.
func newPrinter(log logger.Logger) *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Debugf("locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}
