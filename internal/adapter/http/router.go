package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/pkg/apierrors"
)

type RouterConfig struct {
	Development    bool
	CorsOrigins    []string
	TrustedProxies []string
}

// NewRouter builds the engine with the middleware shared by every route.
func NewRouter(logger *zap.Logger, cfg RouterConfig) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	r.Use(
		middleware.LanguageMiddleware(),
		middleware.RecoveryMiddleware(logger, cfg.Development),
		middleware.GinZapMiddleware(logger),
		cors.New(corsConfig(cfg.CorsOrigins)),
	)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgRouteNotFound, middleware.GetLang(c)),
		)
	})

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	conf := cors.DefaultConfig()
	conf.AllowHeaders = append(conf.AllowHeaders, "Authorization", "Accept-Language")
	conf.ExposeHeaders = []string{"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"}

	if len(origins) == 0 {
		conf.AllowAllOrigins = true
		return conf
	}
	for _, origin := range origins {
		if origin == "*" {
			conf.AllowAllOrigins = true
			return conf
		}
	}
	conf.AllowOrigins = origins
	return conf
}
