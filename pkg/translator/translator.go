package translator

import (
	"os"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

type Config struct {
	TranslationFolder string
	// SupportedLanguages lists the base codes loaded from
	// TranslationFolder as "<code>.toml". Other files are ignored.
	SupportedLanguages []string
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

// InitTranslator builds the message bundle. English is the default
// language; a missing or broken file is logged and skipped.
func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if _, err := os.Stat(cfg.TranslationFolder); err != nil {
		zap.L().Error("failed to open translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, lang := range cfg.SupportedLanguages {
		file := filepath.Join(cfg.TranslationFolder, lang+".toml")
		if _, err := Translator.LoadMessageFile(file); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("lang", lang), zap.String("file", file), zap.Error(err))
		}
	}
}

// Localize returns the message for msgKey in lang, falling back to English
// and then to the key itself.
func Localize(msgKey string, lang string) string {
	if Translator == nil {
		return msgKey
	}
	l := i18n.NewLocalizer(Translator, lang, LanguageEn)
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: msgKey})
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}
