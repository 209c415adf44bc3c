package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/bookwise/internal/flagx"
)

var serverFlags = []string{
	"-a", "-g", "-d", "-s", "-t", "-l",
	"-p", "-n", "-k", "-o",
	"-u", "-w", "-b", "-r", "-e",
}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-g string   gRPC health bind address (e.g. ":50051")
//	-d string   PostgreSQL DSN (empty: in-memory stores)
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-l string   log level (debug, info, warn, error)
//	-p string   model provider (gemini, openai)
//	-n string   model name
//	-k string   model API key
//	-o int      model call timeout, seconds
//	-u string   S3 root user
//	-w string   S3 root password
//	-b string   S3 bucket
//	-r string   S3 region
//	-e string   S3 base endpoint
//
// args is filtered with flagx.FilterArgs so that -c/-config and unknown
// flags do not make parsing fail.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	ttl := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	fs.StringVar(&config.ModelProvider, "p", config.ModelProvider, "model provider")
	fs.StringVar(&config.ModelName, "n", config.ModelName, "model name")
	fs.StringVar(&config.ModelAPIKey, "k", config.ModelAPIKey, "model API key")
	modelTimeout := fs.Int("o", int(config.ModelTimeout.Seconds()), "model call timeout (in seconds)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "w", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "r", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return err
	}

	// minute/second flags only apply when given, so finer env/JSON values survive
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*ttl) * time.Minute
		case "o":
			config.ModelTimeout = time.Duration(*modelTimeout) * time.Second
		}
	})
	return nil
}
