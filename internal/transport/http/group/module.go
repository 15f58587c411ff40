package group

import "go.uber.org/fx"

// Module wires HTTP group handlers.
var Module = fx.Options(
	fx.Provide(NewHandler),
	fx.Invoke(Register),
)
