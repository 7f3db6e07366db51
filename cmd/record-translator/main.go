package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"

	"github.com/diwise/record-translator/internal/pkg/application/translator"
	"github.com/diwise/record-translator/internal/pkg/infrastructure/router"
	"github.com/diwise/record-translator/internal/pkg/presentation/api/records"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
)

const serviceName string = "record-translator"

func DefaultFlags() FlagMap {
	return FlagMap{
		listenAddress: "",
		servicePort:   "8080",

		configPath: "/opt/diwise/config/keysets.yaml",
		opaPath:    "/opt/diwise/config/authz.rego",

		logFormat: "json",
	}
}

func main() {
	serviceVersion := buildinfo.SourceVersion()

	ctx, flags := parseExternalConfig(context.Background(), DefaultFlags())

	ctx, logger, cleanup := o11y.Init(ctx, serviceName, serviceVersion, flags[logFormat])
	defer cleanup()

	cfgFile, err := os.Open(flags[configPath])
	if err != nil {
		logger.Error("failed to open key set configuration", "path", flags[configPath], "err", err.Error())
		os.Exit(1)
	}
	defer cfgFile.Close()

	policies, err := os.Open(flags[opaPath])
	if err != nil {
		logger.Error("failed to open authz policies", "path", flags[opaPath], "err", err.Error())
		os.Exit(1)
	}
	defer policies.Close()

	handler, err := initialize(ctx, cfgFile, policies)
	if err != nil {
		logger.Error("failed to initialize service", "err", err.Error())
		os.Exit(1)
	}

	addr := net.JoinHostPort(flags[listenAddress], flags[servicePort])
	logger.Info("starting to listen for connections", "addr", addr)

	err = http.ListenAndServe(addr, handler)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("failed to listen for connections", "err", err.Error())
		os.Exit(1)
	}
}

func initialize(ctx context.Context, cfgFile, policies io.Reader) (http.Handler, error) {
	cfg, err := translator.LoadConfiguration(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load key set configuration: %w", err)
	}

	app, err := translator.New(ctx, cfg, translator.DefaultBindings()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create record translator: %w", err)
	}

	r := router.New(serviceName)

	err = records.RegisterHandlers(ctx, r, policies, app)
	if err != nil {
		return nil, err
	}

	return r, nil
}

func parseExternalConfig(ctx context.Context, flags FlagMap) (context.Context, FlagMap) {

	// Allow environment variables to override certain defaults
	envOrDef := env.GetVariableOrDefault
	flags[listenAddress] = envOrDef(ctx, "LISTEN_ADDRESS", flags[listenAddress])
	flags[servicePort] = envOrDef(ctx, "SERVICE_PORT", flags[servicePort])
	flags[configPath] = envOrDef(ctx, "KEYSET_CONFIG_PATH", flags[configPath])
	flags[opaPath] = envOrDef(ctx, "POLICY_PATH", flags[opaPath])
	flags[logFormat] = envOrDef(ctx, "LOG_FORMAT", flags[logFormat])

	apply := func(f FlagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("config", "path to the key set configuration file", apply(configPath))
	flag.Func("policies", "an authorization policy file", apply(opaPath))
	flag.Func("port", "the port to listen for incoming requests on", apply(servicePort))
	flag.Parse()

	return ctx, flags
}
