package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"rentalmanager/config"
	"rentalmanager/internal/auth"
	"rentalmanager/internal/client"
	"rentalmanager/internal/models"
	"rentalmanager/internal/notify"
	"rentalmanager/internal/rental"
	"rentalmanager/internal/resource"
)

const usage = `usage: rentalctl [flags] <entity> <action> [args]

actions:
  list                 list records
  get <id>             show one record
  create <json>        create a record from a JSON input
  update <id> <json>   update a record from a JSON input
  delete <id>          delete a record

entities:
  %s

flags:
`

// command runs the actions of one entity.
type command func(ctx context.Context, action string, args []string, scope client.Scope, filter url.Values) (any, error)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{})
	logger.SetOutput(os.Stderr)

	propertyID := flag.Int64("property", 0, "parent property id")
	meterID := flag.Int64("meter", 0, "parent utility meter id")
	invoiceID := flag.Int64("invoice", 0, "parent invoice id")
	page := flag.Int("page", 0, "page of a list")
	limit := flag.Int("limit", 0, "page size of a list")
	name := flag.String("name", "", "name filter of a list")
	status := flag.String("status", "", "status filter of a list")
	verbose := flag.Bool("v", false, "log every notification")

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}

	session := auth.NewSession()
	c, err := client.New(client.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		Tokens:    session,
		RateLimit: cfg.API.RateLimit,
		Burst:     cfg.API.Burst,
	}, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create API client")
	}

	// notifications are logged; the level decides which reach stderr
	svc := rental.NewServices(c, session, notify.NewLogger(logger), logger)
	defer svc.Close()
	commands := commandsOf(svc)

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage, strings.Join(entityNames(commands), "\n  "))
		flag.PrintDefaults()
	}
	flag.Parse()
	if *verbose {
		level = logrus.DebugLevel
	} else if level < logrus.WarnLevel {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)

	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		os.Exit(2)
	}
	run, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown entity %q\n", args[0])
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	if cfg.API.Token != "" {
		session.Set(cfg.API.Token, time.Time{})
	} else if cfg.API.Email != "" {
		err := svc.Auth.Login(ctx, models.Credentials{Email: cfg.API.Email, Password: cfg.API.Password})
		if err != nil {
			logger.WithError(err).Fatal("Failed to log in")
		}
		defer svc.Auth.Logout(ctx)
	}

	filter := url.Values{}
	if *page > 0 {
		filter.Set("page", strconv.Itoa(*page))
	}
	if *limit > 0 {
		filter.Set("limit", strconv.Itoa(*limit))
	}
	if *name != "" {
		filter.Set("name", *name)
	}
	if *status != "" {
		filter.Set("status", *status)
	}
	scope := client.Scope{PropertyID: *propertyID, MeterID: *meterID, InvoiceID: *invoiceID}

	out, err := run(ctx, args[1], args[2:], scope, filter)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if out == nil {
		return
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		logger.WithError(err).Fatal("Failed to write output")
	}
}

func commandsOf(svc *rental.Services) map[string]command {
	return map[string]command{
		"properties":             entityCommand(svc.Properties),
		"rooms":                  entityCommand(svc.Rooms),
		"tenants":                entityCommand(svc.Tenants),
		"contracts":              entityCommand(svc.Contracts),
		"invoices":               entityCommand(svc.Invoices),
		"payments":               entityCommand(svc.Payments),
		"extra-fees":             entityCommand(svc.ExtraFees),
		"utility-meters":         entityCommand(svc.UtilityMeters),
		"utility-meter-readings": entityCommand(svc.UtilityMeterReadings),
		"users":                  entityCommand(svc.Users),
	}
}

func entityNames(commands map[string]command) []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func entityCommand[E resource.Record, C, U any](container *resource.Container[E, C, U]) command {
	return func(ctx context.Context, action string, args []string, scope client.Scope, filter url.Values) (any, error) {
		switch action {
		case "list":
			container.FetchAll(ctx, scope, filter)
			if msg := container.LastError(); msg != "" {
				return nil, errors.New(msg)
			}
			return struct {
				Results []E         `json:"results"`
				Page    client.Page `json:"page"`
			}{container.Collection(), container.Page()}, nil

		case "get":
			id, err := idArg(args)
			if err != nil {
				return nil, err
			}
			container.FetchOne(ctx, scope, id)
			if msg := container.LastError(); msg != "" {
				return nil, errors.New(msg)
			}
			record, _ := container.Current()
			return record, nil

		case "create":
			if len(args) != 1 {
				return nil, errors.New("create takes one JSON argument")
			}
			var input C
			if err := json.Unmarshal([]byte(args[0]), &input); err != nil {
				return nil, fmt.Errorf("invalid input: %w", err)
			}
			return container.Create(ctx, scope, input)

		case "update":
			id, err := idArg(args)
			if err != nil {
				return nil, err
			}
			if len(args) != 2 {
				return nil, errors.New("update takes an id and one JSON argument")
			}
			var input U
			if err := json.Unmarshal([]byte(args[1]), &input); err != nil {
				return nil, fmt.Errorf("invalid input: %w", err)
			}
			return container.Update(ctx, scope, id, input)

		case "delete":
			id, err := idArg(args)
			if err != nil {
				return nil, err
			}
			return nil, container.Delete(ctx, scope, id)
		}
		return nil, fmt.Errorf("unknown action %q", action)
	}
}

func idArg(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errors.New("missing id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}
