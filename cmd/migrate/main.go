// Command migrate aplica las migraciones goose del esquema.
//
//	migrate up              aplica las pendientes
//	migrate down            revierte la última
//	migrate status          lista el estado de cada migración
//	migrate version         versión actual
//	migrate to <versión>    sube o baja hasta la versión indicada
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

const usage = "uso: migrate up|down|status|version|redo|reset|to <versión>"

func main() {
	command, args, err := parseCommand(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "migrate"})

	// el comando ya está validado: a partir de aquí toda salida pasa por m.Close.
	m, err := postgres.OpenMigrator(cfg.DB.ConnectionString(), cfg.Migrations.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir conexión")
	}
	defer m.Close()

	ctx := context.Background()
	if command == "to" {
		err = m.MigrateTo(ctx, args[0])
	} else {
		err = m.Run(ctx, command, args...)
	}
	if err != nil {
		log.Error().Err(err).Str("command", command).Msg("migración fallida")
		m.Close()
		os.Exit(1)
	}
	log.Info().Str("command", command).Msg("migración completada")
}

// parseCommand valida los argumentos antes de abrir la conexión.
func parseCommand(argv []string) (string, []string, error) {
	if len(argv) == 0 {
		return "", nil, errors.New(usage)
	}
	command, args := argv[0], argv[1:]
	switch command {
	case "to":
		if len(args) != 1 {
			return "", nil, errors.New("uso: migrate to <versión>")
		}
	case "up", "down", "status", "version", "redo", "reset":
	default:
		return "", nil, fmt.Errorf("comando desconocido %q; %s", command, usage)
	}
	return command, args, nil
}
