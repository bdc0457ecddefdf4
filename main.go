package main

import (
	"champolis/bot"
	"champolis/command"
	"champolis/handlers"
)

func main() {
	bot.Run(handlers.Register, []bot.Command{
		&command.SyncCommand{},
		&command.SetupCommand{},
	})
}
