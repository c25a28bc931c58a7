package cli

import (
	"context"
	"database/sql"
	"log"
	"os"

	_ "modernc.org/sqlite"

	"github.com/presencelabs/facemark/internal/config"
	dbpkg "github.com/presencelabs/facemark/internal/db"
	"github.com/presencelabs/facemark/internal/facemark/service"
	sqlitestore "github.com/presencelabs/facemark/internal/facemark/store/sqlite"
)

// app bundles the shared dependencies every command needs: config, logger,
// the open database, the write worker, and the stores/services over them.
type app struct {
	cfg    config.Config
	logger *log.Logger
	conn   *sql.DB
	writer *dbpkg.Worker

	identities *sqlitestore.IdentityStore
	attendance *sqlitestore.AttendanceStore
	ledger     *service.Ledger
}

func openApp(ctx context.Context) (*app, error) {
	cfg := config.FromEnv()
	logger := log.New(os.Stderr, "facemark ", log.LstdFlags|log.LUTC)

	conn, err := dbpkg.Open(ctx, dbpkg.Config{Path: cfg.DBPath, Env: cfg.Env})
	if err != nil {
		return nil, err
	}

	writer := dbpkg.NewWorker(conn)
	identities := sqlitestore.NewIdentityStore(conn, writer)
	attendance := sqlitestore.NewAttendanceStore(conn, writer)

	return &app{
		cfg:        cfg,
		logger:     logger,
		conn:       conn,
		writer:     writer,
		identities: identities,
		attendance: attendance,
		ledger:     service.NewLedger(attendance),
	}, nil
}

func (a *app) Close() {
	a.writer.Close()
	_ = a.conn.Close()
}
