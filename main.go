package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"weatherly/datasource"
	"weatherly/favorites"
	"weatherly/forecast"
	"weatherly/location"
	"weatherly/render"
	"weatherly/session"

	"github.com/joho/godotenv"
)

const usage = `Usage:
  weatherly [flags] search <city...>
  weatherly [flags] here
  weatherly [flags] save <city...>
  weatherly [flags] favorites list
  weatherly [flags] favorites add <city...>
  weatherly [flags] favorites remove <city...>
  weatherly [flags] open <favorite>

Flags:
`

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	// Parse command line arguments
	configFile := flag.String("config", "config.json", "Path to configuration file")
	units := flag.String("units", "", "Unit system: metric, imperial or standard")
	lang := flag.String("lang", "", "Language for condition descriptions")
	store := flag.String("store", "", "Favorites store: SQLite file path or postgres:// DSN")
	locale := flag.String("locale", "", "Locale for weekday names, e.g. fr_FR")
	lat := flag.Float64("lat", 0, "Latitude for 'here' lookups")
	lon := flag.Float64("lon", 0, "Longitude for 'here' lookups")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable API rate limiting")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	config, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	config.ApplyEnv()

	// Flags override file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "units":
			config.OpenWeatherMap.Units = *units
		case "lang":
			config.OpenWeatherMap.Language = *lang
		case "store":
			config.Store = *store
		case "locale":
			config.Locale = *locale
		case "lat":
			config.Location.Enabled = true
			config.Location.Lat = lat
		case "lon":
			config.Location.Enabled = true
			config.Location.Lon = lon
		case "rate-limit":
			config.RateLimit.Enabled = *enableRateLimiting
		}
	})

	if err := config.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	favs, err := favorites.Open(config.Store)
	if err != nil {
		log.Fatalf("Failed to open favorites store: %v", err)
	}
	defer favs.Close()

	loc := forecast.LocaleFromEnv()
	if config.Locale != "" {
		loc = forecast.ParseLocale(config.Locale)
	}

	controller := session.NewController(
		config.NewClient(),
		favs,
		location.FromSettings(config.Location.Enabled, config.Location.Lat, config.Location.Lon),
		forecast.NewReducer(loc),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := controller.LoadFavorites(ctx); err != nil {
		log.Printf("Warning: %v", err)
	}

	if err := run(ctx, controller, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		favs.Close()
		os.Exit(1)
	}
}

// loadConfig reads the config file when present and falls back to defaults
func loadConfig(path string) (*datasource.Config, error) {
	config, err := datasource.LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		return datasource.DefaultConfig(), nil
	}
	return config, err
}

// run executes one subcommand
func run(ctx context.Context, controller *session.Controller, args []string) error {
	cmd, rest := args[0], args[1:]
	city := strings.Join(rest, " ")

	var st session.State
	switch cmd {
	case "search":
		st = controller.Search(ctx, city)
	case "here":
		st = controller.SearchHere(ctx)
	case "open":
		st = controller.SelectFavorite(ctx, city)
	case "save":
		// Save the name the API resolved, not the raw query
		st = controller.Search(ctx, city)
		if st.Phase == session.Ready {
			if _, err := controller.FavoriteCurrent(ctx); err != nil {
				return err
			}
			st = controller.State()
		}
	case "favorites":
		return runFavorites(ctx, controller, rest)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	if err := render.Text(os.Stdout, st); err != nil {
		return err
	}
	if st.Phase == session.Failed {
		return errors.New("lookup failed")
	}
	return nil
}

func runFavorites(ctx context.Context, controller *session.Controller, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	city := strings.Join(args[1:], " ")

	var (
		cities []string
		err    error
	)
	switch args[0] {
	case "list":
		cities, err = controller.LoadFavorites(ctx)
	case "add":
		cities, err = controller.AddFavorite(ctx, city)
	case "remove":
		cities, err = controller.RemoveFavorite(ctx, city)
	default:
		return fmt.Errorf("unknown favorites command %q", args[0])
	}
	if err != nil {
		return err
	}

	if len(cities) == 0 {
		fmt.Println("No favorite cities yet.")
		return nil
	}
	for _, c := range cities {
		fmt.Println(c)
	}
	return nil
}
