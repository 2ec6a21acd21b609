package bootstrap

import (
	"internlink/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	components.PersistenceModule,
	components.RealtimeModule,
	components.UseCaseModule,
	components.HandlerModule,
)
