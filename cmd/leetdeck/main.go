package main

import (
	"context"
	"os"

	"leetdeck/cmd/leetdeck/commands"
	"leetdeck/lib/osutil"
	"leetdeck/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "leetdeck")
	telemetry.InitSlog(os.Getenv("LEETDECK_DEBUG") != "")
	commands.ExecuteContext(osutil.SignalContext())
}
