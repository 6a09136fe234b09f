//go:build wireinject

package ioc

import (
	"github.com/google/wire"
	"github.com/webfolio/webfolio/internal/contact"
	"github.com/webfolio/webfolio/internal/payment"
	"github.com/webfolio/webfolio/internal/project"
)

var BaseSet = wire.NewSet(InitDB, InitCache, InitRedis, InitMQ,
	InitSnowflakeNode, InitEmailService)

func InitApp() (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		project.InitModule,
		wire.FieldsOf(new(*project.Module), "Hdl"),
		payment.InitModule,
		wire.FieldsOf(new(*payment.Module), "Hdl", "SyncPendingOrderJob"),
		contact.InitModule,
		wire.FieldsOf(new(*contact.Module), "Hdl"),
		initGinxServer,
		initCronJobs)
	return new(App), nil
}
