package app

import (
	"github.com/adanyl0v/go-task-store/internal/config"
	"github.com/adanyl0v/go-task-store/internal/services"
)

var globalTaskService services.TaskService

// MustConnectStore connects to the configured driver, creates the tasks
// table when missing and builds the task service on top of it.
func MustConnectStore() {
	switch driver := config.Global().Store.Driver; driver {
	case config.StoreDriverPostgres:
		mustConnectPostgres()
	case config.StoreDriverMySQL:
		mustConnectMySQL()
	default:
		globalLogger.Error().
			Str("driver", driver).
			Msg("unknown store driver")
		panic("unknown store driver: " + driver)
	}

	globalTaskService = services.NewInstrumentedTaskService(globalTaskService)
}

func DisconnectStore() {
	switch config.Global().Store.Driver {
	case config.StoreDriverPostgres:
		disconnectPostgres()
	case config.StoreDriverMySQL:
		disconnectMySQL()
	}
}
