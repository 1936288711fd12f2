package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	toymc "github.com/dyb-exp/toymc_go/pkg"
)

var logger Logger

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	outFilename := flag.String("o", "", "Output file path")
	duration := flag.Float64("t", 0, "Runtime duration in whole seconds")
	start := flag.Float64("start", 0, "Data-taking start time in seconds")
	seed := flag.Int64("seed", -1, "Random seed (negative for system-derived)")
	flag.Parse()

	configuration := toymc.DefaultConfiguration()
	if *configFilename != "" {
		var err error
		configuration, err = toymc.LoadConfiguration(*configFilename)
		if err != nil {
			message := fmt.Errorf("error reading configuration file: %w", err)
			logger.Error(message.Error())
			os.Exit(1)
		}
	}
	toymc.SetLogger(logger)

	// Flags given on the command line win over the configuration file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			configuration.FileOut = *outFilename
		case "t":
			configuration.DurationS = *duration
		case "start":
			configuration.StartS = *start
		case "seed":
			configuration.Seed = *seed
		}
	})

	// Fail fast before any output resource is created.
	if configuration.FileOut == "" {
		logger.Error("no output file given (use -o or file_out in the configuration)")
		os.Exit(1)
	}
	if err := toymc.ValidateRunWindow(configuration); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	runSeed := uint64(configuration.Seed)
	if configuration.Seed < 0 {
		runSeed = uint64(time.Now().UnixNano())
	}
	logger.Info(fmt.Sprintf("random seed: %d", runSeed), "main")
	if configuration.Verbosity > 0 {
		toymc.PrintConfiguration(configuration)
	}

	eventTypes, err := toymc.BuildEventTypes(configuration)
	if err != nil {
		message := fmt.Errorf("error building event types: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}

	writer, err := toymc.NewWriter(configuration.FileOut)
	if err != nil {
		message := fmt.Errorf("error creating output file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	writer.SetRunInfo(runSeed, configuration.DurationS, configuration.StartS)

	mc, err := toymc.NewToyMC(writer, configuration.DurationS, configuration.StartS, runSeed)
	if err != nil {
		message := fmt.Errorf("error setting up run: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	for _, eventType := range eventTypes {
		if err := mc.AddEventType(eventType); err != nil {
			message := fmt.Errorf("error registering event type %q: %w", eventType.Name(), err)
			logger.Error(message.Error())
			os.Exit(1)
		}
	}

	startTime := time.Now()
	if err := mc.Run(); err != nil {
		message := fmt.Errorf("run failed: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	elapsed := time.Since(startTime)
	logger.Info(fmt.Sprintf("wrote %d events to %s in %d ms",
		mc.TotalEvents(), configuration.FileOut, elapsed.Milliseconds()), "main")

	if !configuration.NoDB {
		if err := recordRun(configuration, runSeed, mc.TotalEvents()); err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
	}
}

func recordRun(configuration toymc.Configuration, seed uint64, numEvents int) error {
	dbConn, err := toymc.ConnectToDatabase(configuration.User, configuration.Passwd,
		configuration.Host, configuration.DBName)
	if err != nil {
		return fmt.Errorf("error connecting to run catalog: %w", err)
	}
	defer dbConn.Close()

	runNumber, err := toymc.NextRunNumber(dbConn)
	if err != nil {
		return err
	}
	return toymc.RecordRun(dbConn, toymc.RunRecord{
		RunNumber: runNumber,
		Seed:      int64(seed),
		DurationS: configuration.DurationS,
		StartS:    configuration.StartS,
		NumEvents: numEvents,
		FileOut:   configuration.FileOut,
	})
}
