package translator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

var ErrNoTranslations = errors.New("no translation file loaded")

type Config struct {
	TranslationFolder string
	// SupportedLanguages restricts which <lang>.toml files are loaded. Empty
	// loads every file in the folder.
	SupportedLanguages []string
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

// InitTranslator builds the message bundle from the TOML files in
// cfg.TranslationFolder. The bundle is installed even on error, so lookups
// fall back to message keys instead of panicking.
func InitTranslator(cfg Config) error {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		return fmt.Errorf("read translation folder %s: %w", cfg.TranslationFolder, err)
	}

	loaded := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".toml" {
			continue
		}
		lang := strings.TrimSuffix(name, ".toml")
		if len(cfg.SupportedLanguages) > 0 && !slices.Contains(cfg.SupportedLanguages, lang) {
			zap.L().Debug("skipping unsupported translation", zap.String("file", name))
			continue
		}

		if _, err := Translator.LoadMessageFile(filepath.Join(cfg.TranslationFolder, name)); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", name), zap.Error(err))
			continue
		}
		loaded++
	}

	if loaded == 0 {
		return fmt.Errorf("%w in %s", ErrNoTranslations, cfg.TranslationFolder)
	}
	return nil
}

// Localize translates msgKey into lang, falling back to English and then to
// the key itself.
func Localize(msgKey, lang string, data map[string]any) string {
	if Translator == nil {
		return msgKey
	}

	l := i18n.NewLocalizer(Translator, lang, LanguageEn)
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: msgKey, TemplateData: data})
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}
