package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"tasktracker/pkg/translator"
)

var supportedLanguages = language.NewMatcher([]language.Tag{
	language.English,
	language.French,
})

// LanguageMiddleware picks the response language from Accept-Language.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", matchLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get("lang"); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}

func matchLanguage(header string) string {
	if header == "" {
		return translator.LanguageEn
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return translator.LanguageEn
	}
	_, index, _ := supportedLanguages.Match(tags...)
	if index == 1 {
		return translator.LanguageFr
	}
	return translator.LanguageEn
}
