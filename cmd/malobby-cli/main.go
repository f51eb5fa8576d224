package main

import (
	"malobby-backend/cmd/malobby-cli/commands"
	"malobby-backend/lib/serviceutil"
	"malobby-backend/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "malobby-cli")
	telemetry.InitSlog(true)
	telemetry.InstrumentPerfStats(ctx)
	commands.ExecuteContext(ctx)
}
