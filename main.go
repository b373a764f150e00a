package main

import (
	"github.com/wfunc/bingoserver/api"
	"github.com/wfunc/bingoserver/broadcast"
	"github.com/wfunc/bingoserver/config"
	"github.com/wfunc/bingoserver/logger"
	"github.com/wfunc/bingoserver/monitor"
	"github.com/wfunc/bingoserver/persistence"
	"github.com/wfunc/bingoserver/room"
	"github.com/wfunc/bingoserver/server"
	"github.com/wfunc/bingoserver/services"
	"github.com/wfunc/bingoserver/session"
)

func main() {
	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize storage
	var store persistence.Store
	var stats *services.StatsService

	switch cfg.Database.Driver {
	case "gorm":
		db, err := persistence.NewGormPostgreSQL(
			cfg.Database.Postgres.Host,
			cfg.Database.Postgres.Port,
			cfg.Database.Postgres.User,
			cfg.Database.Postgres.Password,
			cfg.Database.Postgres.DBName,
		)
		if err != nil {
			logger.Log.Fatalf("Failed to connect to database: %v", err)
		}
		store = db
		stats = services.NewStatsService(db)
	case "postgres":
		db, err := persistence.NewPostgreSQL(
			cfg.Database.Postgres.Host,
			cfg.Database.Postgres.Port,
			cfg.Database.Postgres.User,
			cfg.Database.Postgres.Password,
			cfg.Database.Postgres.DBName,
		)
		if err != nil {
			logger.Log.Fatalf("Failed to connect to database: %v", err)
		}
		store = db
	default:
		store = persistence.NewMemoryStore()
	}
	defer store.Close()
	logger.Log.Infof("Storage ready, driver: %s", cfg.Database.Driver)

	// Wire the room state machine
	sessions := session.NewManager()
	notifier := broadcast.NewRoomNotifier(sessions)
	recorder := services.NewRecordService(store)
	machine := room.NewMachine(store, notifier, recorder)

	// Metrics endpoint
	mon := monitor.NewMonitor("bingoserver")
	mon.StartServer(cfg.Server.MetricsAddress)

	// WebSocket game server plus RPC
	gameServer := server.NewGameServer(cfg.Server.HTTPAddress, cfg.Server.RPCAddress, machine, sessions, mon)
	gameServer.Start()
	defer gameServer.Shutdown()

	// HTTP surface: REST API and the websocket endpoint
	router := api.NewRouter(machine, gameServer.Handler(), stats)
	logger.Log.Infof("Starting bingo server on %s", cfg.Server.HTTPAddress)
	if err := router.Run(cfg.Server.HTTPAddress); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
