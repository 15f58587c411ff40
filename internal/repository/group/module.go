package group

import "go.uber.org/fx"

// Module provides the group repository to Fx.
var Module = fx.Provide(NewRepository)
