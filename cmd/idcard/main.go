package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/schoolkit/idcard/pkg/audit"
	"github.com/schoolkit/idcard/pkg/claims"
	"github.com/schoolkit/idcard/pkg/config"
	"github.com/schoolkit/idcard/pkg/idcard"
	"github.com/schoolkit/idcard/pkg/keyring"
	"github.com/schoolkit/idcard/pkg/logger"
	"github.com/schoolkit/idcard/pkg/pg"
	"github.com/schoolkit/idcard/pkg/redis"
	"github.com/schoolkit/idcard/pkg/validator"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "keygen":
		return cmdKeygen(out, errOut)
	case "issue":
		return cmdIssue(ctx, args[1:], out, errOut)
	case "verify":
		return cmdVerify(ctx, args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "idcard: issue and verify sealed student ID cards")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  idcard keygen")
	fmt.Fprintln(w, "  idcard issue -record <student.yaml> [-png <card.png>] [-env <file>] [-v]")
	fmt.Fprintln(w, "  idcard verify [-scanner <id>] [-env <file>] [-v] <token>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  IDCARD_SECRET            card secret, raw or base64: prefixed (required)")
	fmt.Fprintln(w, "  IDCARD_VALIDITY          card validity (default 8760h)")
	fmt.Fprintln(w, "  IDCARD_FRESHNESS_WINDOW  maximum token age (default 24h)")
	fmt.Fprintln(w, "  IDCARD_QR_SIZE           QR code size in pixels (default 256)")
	fmt.Fprintln(w, "  IDCARD_PG_URL            store audit events in Postgres (optional)")
	fmt.Fprintln(w, "  IDCARD_REDIS_URL         append audit events to a Redis stream (optional)")
}

func cmdKeygen(out, errOut io.Writer) int {
	secret, err := keyring.GenerateEncodedSecret()
	if err != nil {
		fmt.Fprintf(errOut, "keygen: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, secret)
	return 0
}

// commonFlags registers the flags shared by issue and verify.
func commonFlags(fs *flag.FlagSet) (envFile *string, verbose *bool) {
	envFile = fs.String("env", "", "load variables from this .env file first")
	verbose = fs.Bool("v", false, "log at debug level")
	return envFile, verbose
}

func newService(ctx context.Context, envFile string, verbose bool, errOut io.Writer) (*idcard.Service, func(), error) {
	if envFile != "" {
		if err := config.LoadEnv(envFile); err != nil {
			return nil, nil, err
		}
	}

	var cfg idcard.Config
	if err := config.Load(&cfg); err != nil {
		return nil, nil, err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	log := logger.New(
		logger.WithOutput(errOut),
		logger.WithTextFormatter(),
		logger.WithLevel(level),
	)

	storage, closeStorage, err := auditStorage(ctx, log)
	if err != nil {
		return nil, nil, err
	}

	svc, err := idcard.NewService(cfg,
		idcard.WithLogger(log),
		idcard.WithAuditStorage(storage),
	)
	if err != nil {
		closeStorage()
		return nil, nil, err
	}
	return svc, closeStorage, nil
}

// auditStorage picks Postgres, then a Redis stream, then the log itself.
func auditStorage(ctx context.Context, log *slog.Logger) (audit.Storage, func(), error) {
	var pgCfg pg.Config
	if err := config.Load(&pgCfg); err != nil {
		return nil, nil, err
	}
	if pgCfg.Enabled() {
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return audit.NewPostgresStorage(pool), pool.Close, nil
	}

	var redisCfg redis.Config
	if err := config.Load(&redisCfg); err != nil {
		return nil, nil, err
	}
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, nil, err
		}
		closeClient := func() { _ = client.Close() }
		return audit.NewRedisStreamStorage(client, redisCfg.Stream, redisCfg.StreamMaxLen), closeClient, nil
	}

	return audit.NewSlogStorage(log), func() {}, nil
}

func cmdIssue(ctx context.Context, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("issue", flag.ContinueOnError)
	fs.SetOutput(errOut)
	recordPath := fs.String("record", "", "YAML file with the student record")
	pngPath := fs.String("png", "", "write the QR code image to this file")
	envFile, verbose := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *recordPath == "" || fs.NArg() != 0 {
		fmt.Fprintln(errOut, "usage: idcard issue -record <student.yaml> [-png <card.png>]")
		return 2
	}

	rec, err := readRecord(*recordPath)
	if err != nil {
		fmt.Fprintf(errOut, "read record: %v\n", err)
		return 1
	}

	svc, closeService, err := newService(ctx, *envFile, *verbose, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "config: %v\n", err)
		return 1
	}
	defer closeService()

	card, err := svc.Issue(ctx, rec)
	if err != nil {
		if verrs := validator.ExtractValidationErrors(err); !verrs.IsEmpty() {
			for _, field := range verrs.Fields() {
				for _, msg := range verrs.Get(field) {
					fmt.Fprintf(errOut, "%s: %s\n", field, msg)
				}
			}
			return 1
		}
		fmt.Fprintf(errOut, "issue: %v\n", err)
		return 1
	}

	if *pngPath != "" {
		if err := os.WriteFile(*pngPath, card.PNG, 0o644); err != nil {
			fmt.Fprintf(errOut, "write png: %v\n", err)
			return 1
		}
	}

	fmt.Fprintln(out, card.Token)
	return 0
}

func readRecord(path string) (claims.Record, error) {
	var rec claims.Record
	b, err := os.ReadFile(path)
	if err != nil {
		return rec, err
	}
	if err := yaml.Unmarshal(b, &rec); err != nil {
		return rec, errors.Join(errors.New("invalid yaml"), err)
	}
	return rec, nil
}

func cmdVerify(ctx context.Context, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(errOut)
	scanner := fs.String("scanner", "", "identifier of the scanning device")
	envFile, verbose := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: idcard verify [-scanner <id>] <token>")
		return 2
	}

	svc, closeService, err := newService(ctx, *envFile, *verbose, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "config: %v\n", err)
		return 1
	}
	defer closeService()

	if *scanner != "" {
		ctx = idcard.WithScanner(ctx, *scanner)
	}

	scan := svc.Verify(ctx, fs.Arg(0))
	fmt.Fprintln(out, scan.Message)
	if !scan.Valid() {
		return 1
	}

	c := scan.Claims
	fmt.Fprintf(out, "student:   %s %s (%s)\n", c.GivenName, c.FamilyName, c.Matricule)
	fmt.Fprintf(out, "school:    %d\n", c.SchoolID)
	if c.ClassLabel != "" {
		fmt.Fprintf(out, "class:     %s\n", c.ClassLabel)
	}
	if c.AcademicYear != "" {
		fmt.Fprintf(out, "year:      %s\n", c.AcademicYear)
	}
	if c.Status != "" {
		fmt.Fprintf(out, "status:    %s\n", c.Status)
	}
	fmt.Fprintf(out, "expires:   %s\n", c.ExpiresAt.Format("2006-01-02"))
	return 0
}
