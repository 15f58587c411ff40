package group

import "go.uber.org/fx"

// Module provides the group service to Fx.
var Module = fx.Provide(NewService)
