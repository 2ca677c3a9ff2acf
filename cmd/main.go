package main

import "github.com/adanyl0v/go-task-store/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadConfig()
	app.InitApplicationLogger()

	app.MustConnectStore()
	defer app.DisconnectStore()

	app.MustListenAndServeHTTP()
}
