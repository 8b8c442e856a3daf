package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stephenafamo/infolist"
	"github.com/stephenafamo/infolist/internal/config"
	"github.com/stephenafamo/infolist/pgxhost"
	"github.com/stephenafamo/infolist/sqlhost"
	"gopkg.in/yaml.v3"
)

type dumpOptions struct {
	pointer   string
	arguments string
	format    string
}

func NewDumpCommand() *cobra.Command {
	var configPath string
	var opts dumpOptions

	cmd := &cobra.Command{
		Use:   "dump <list>",
		Short: "Print every item of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "json" && opts.format != "yaml" {
				return fmt.Errorf("unknown format %q", opts.format)
			}

			conf, err := config.NewFromFile(configPath)
			if err != nil {
				return err
			}

			logger, err := newLogger(conf.Logger.Level, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = logger.WithContext(ctx)

			h, closeDB, err := connect(ctx, conf, logger)
			if err != nil {
				return err
			}
			defer closeDB()

			return dump(ctx, withDebug(h, logger), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "infolist.yml", "Path to the configuration file")
	cmd.Flags().StringVarP(&opts.pointer, "pointer", "p", "", "Only list the object at this pointer")
	cmd.Flags().StringVarP(&opts.arguments, "arguments", "a", "", "Arguments passed to the list")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "Output format: json or yaml")

	return cmd
}

func newLogger(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("logger.level: %w", err)
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w}).
		Level(lvl).
		With().Timestamp().Logger(), nil
}

// connect opens the configured database and registers every list with the
// host serving it
func connect(ctx context.Context, conf *config.Config, logger zerolog.Logger) (infolist.Host, func(), error) {
	switch conf.Database.Driver {
	case config.DriverPostgres:
		conn, err := pgx.Connect(ctx, conf.Database.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting: %w", err)
		}

		return newPgxHost(conn, conf, logger), func() { conn.Close(context.Background()) }, nil

	case config.DriverMySQL:
		db, err := sql.Open("mysql", conf.Database.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open mysql: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("connecting: %w", err)
		}

		return newSQLHost(db, conf, logger), func() { db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown driver %q", conf.Database.Driver)
	}
}

func newPgxHost(db pgxhost.Queryer, conf *config.Config, logger zerolog.Logger) *pgxhost.Host {
	h := pgxhost.New(db, pgxhost.WithLogger(logger))
	for name, l := range conf.Lists {
		bind := pgxhost.NoArgs
		if l.Bind == config.BindPointer {
			bind = pgxhost.PointerArg
		}
		h.Register(name, l.Query, bind)
	}

	return h
}

func newSQLHost(db sqlhost.Queryer, conf *config.Config, logger zerolog.Logger) *sqlhost.Host {
	h := sqlhost.New(db, sqlhost.WithLogger(logger))
	for name, l := range conf.Lists {
		bind := sqlhost.NoArgs
		if l.Bind == config.BindPointer {
			bind = sqlhost.PointerArg
		}
		h.Register(name, l.Query, bind)
	}

	return h
}

// withDebug logs every host call when the logger is at debug level or lower
func withDebug(h infolist.Host, logger zerolog.Logger) infolist.Host {
	if logger.GetLevel() <= zerolog.DebugLevel {
		return infolist.Debug(h, &logger)
	}

	return h
}

func dump(ctx context.Context, h infolist.Host, w io.Writer, name string, opts dumpOptions) error {
	snaps, err := infolist.Snapshots(ctx, h, name,
		infolist.WithPointer(infolist.Pointer(opts.pointer)),
		infolist.WithArguments(opts.arguments),
	)
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Str("list", name).Int("items", len(snaps)).Msg("read list")

	if snaps == nil {
		snaps = []infolist.Snapshot{}
	}

	switch opts.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snaps)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(snaps)
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}
}
