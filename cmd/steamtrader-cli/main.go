package main

import (
	"steamtrader/cmd/steamtrader-cli/commands"
	"steamtrader/lib/util/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
