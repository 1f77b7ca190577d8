package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"taskmanager/pkg/translator"
)

const langContextKey = "lang"

// Order matters: the first tag is the fallback of the matcher.
var supportedLanguages = []language.Tag{language.English, language.French}

var languageMatcher = language.NewMatcher(supportedLanguages)

// LanguageMiddleware resolves Accept-Language to one of the shipped
// translations and stores its base code ("en", "fr") in the context.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(langContextKey, NegotiateLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func NegotiateLanguage(header string) string {
	if header == "" {
		return translator.LanguageEn
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return translator.LanguageEn
	}
	_, index, confidence := languageMatcher.Match(tags...)
	if confidence == language.No {
		return translator.LanguageEn
	}
	base, _ := supportedLanguages[index].Base()
	return base.String()
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get(langContextKey); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}
