package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/kelasi/kelasi/internal/clock"
	"github.com/kelasi/kelasi/internal/config"
	"github.com/kelasi/kelasi/internal/idempotency"
	"github.com/kelasi/kelasi/internal/ledger"
	"github.com/kelasi/kelasi/internal/migration"
	"github.com/kelasi/kelasi/internal/observability"
	"github.com/kelasi/kelasi/internal/payment"
	"github.com/kelasi/kelasi/internal/ratelimit"
	"github.com/kelasi/kelasi/internal/reconcile"
	"github.com/kelasi/kelasi/internal/scheduler"
	"github.com/kelasi/kelasi/internal/school"
	"github.com/kelasi/kelasi/internal/server"
	"github.com/kelasi/kelasi/internal/student"
	"github.com/kelasi/kelasi/internal/usage"
	"github.com/kelasi/kelasi/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		clock.Module,

		// Domains
		school.Module,
		student.Module,
		ledger.Module,
		idempotency.Module,
		ratelimit.Module,
		usage.Module,
		reconcile.Module,
		payment.Module,
		scheduler.Module,

		migration.Module,
		server.Module,
	)

	app.Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
