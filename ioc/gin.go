package ioc

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/server/egin"
	"github.com/webfolio/webfolio/internal/contact"
	"github.com/webfolio/webfolio/internal/payment"
	"github.com/webfolio/webfolio/internal/project"
)

func initGinxServer(
	projectHdl *project.Handler,
	paymentHdl *payment.Handler,
	contactHdl *contact.Handler,
) *egin.Component {
	res := egin.Load("web").Build()
	res.Use(cors.New(cors.Config{
		AllowCredentials: true,
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowOriginFunc: func(origin string) bool {
			if strings.HasPrefix(origin, "http://localhost") {
				return true
			}
			// 只允许我的域名过来的
			return strings.Contains(origin, "webfolio.dev")
		},
	}))
	res.GET("/hello", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world!")
	})
	projectHdl.PublicRoutes(res.Engine)
	paymentHdl.PublicRoutes(res.Engine)
	contactHdl.PublicRoutes(res.Engine)
	return res
}
