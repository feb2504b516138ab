package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/awnumar/memguard"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tusharlock10/envseed"
	"github.com/tusharlock10/envseed/internal/drbg"
	"github.com/tusharlock10/envseed/internal/hostenv"
	"github.com/tusharlock10/envseed/internal/stability"
)

// version is set at build time via -ldflags "-X main.version=<version>"
var version string

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "envseed",
		Short:         "Derive a stable seed from the execution environment",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (trace|debug|info|warn|error); overrides config")
	rootCmd.PersistentFlags().Duration("probe-timeout", 0, "Per-probe timeout; overrides config")

	rootCmd.AddCommand(seedCmd(), inspectCmd(), randomCmd(), stabilityCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildClient resolves config file + flag overrides into a pipeline client.
func buildClient(cmd *cobra.Command) (*envseed.Client, error) {
	cfg := defaultCLIConfig()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := loadCLIConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if d, _ := cmd.Flags().GetDuration("probe-timeout"); d > 0 {
		cfg.ProbeTimeout = d
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).Level(level).With().Timestamp().Str("app", "envseed").Logger()

	env := hostenv.New()
	env.UserAgentOverride = cfg.UserAgent
	env.PlatformOverride = cfg.Platform
	env.LanguageOverride = cfg.Language

	return envseed.New(
		envseed.WithEnvironment(env),
		envseed.WithProbeTimeout(cfg.ProbeTimeout),
		envseed.WithDisabledProbes(cfg.DisabledProbes...),
		envseed.WithLogger(logger),
	), nil
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Print the environment seed digest",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}
			fmt.Println(client.SeedString(cmd.Context()))
			return nil
		},
	}
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the full fingerprint: record, canonical string and digest",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}
			fp := client.FullFingerprint(cmd.Context())
			out, err := json.MarshalIndent(fp, "", "  ")
			if err != nil {
				return fmt.Errorf("encode fingerprint: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func randomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Generate deterministic bytes from an HMAC-DRBG personalized with the seed",
		Long: "Derives the environment seed, instantiates a NIST SP 800-90A HMAC-DRBG\n" +
			"(SHA-256) personalized with it, and prints the requested bytes in hex.\n" +
			"Without --entropy-file the seed itself is the entropy input, making the\n" +
			"output a pure function of the environment.",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := cmd.Flags().GetInt("bytes")
			if n < 1 {
				return fmt.Errorf("--bytes must be >= 1, got %d", n)
			}

			client, err := buildClient(cmd)
			if err != nil {
				return err
			}
			seed := client.SeedString(cmd.Context())

			var gen *drbg.DRBG
			if path, _ := cmd.Flags().GetString("entropy-file"); path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read entropy file: %w", err)
				}
				// Keep operator-supplied entropy off swap and wipe it once
				// the DRBG state has absorbed it.
				buf := memguard.NewBufferFromBytes(data)
				defer buf.Destroy()
				gen = drbg.New(buf.Bytes(), nil, []byte(seed))
			} else {
				gen = drbg.New([]byte(seed), nil, []byte(seed))
			}

			out, err := gen.RandomBytes(n)
			if err != nil {
				return fmt.Errorf("generate random bytes: %w", err)
			}
			fmt.Println(hex.EncodeToString(out))
			return nil
		},
	}
	cmd.Flags().Int("bytes", 32, "Number of bytes to generate")
	cmd.Flags().String("entropy-file", "", "File providing the DRBG entropy input")
	return cmd
}

func stabilityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stability",
		Short: "Run the pipeline repeatedly and report digest stability",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, _ := cmd.Flags().GetInt("runs")
			baseline, _ := cmd.Flags().GetString("baseline")
			statePath, _ := cmd.Flags().GetString("state")

			// A persisted baseline outranks the flag; the flag outranks the
			// first observed hash.
			var store *stability.Store
			if statePath != "" {
				s, err := stability.NewStore(statePath)
				if err != nil {
					return err
				}
				stored, err := s.Load()
				if err != nil {
					return err
				}
				if stored != nil {
					baseline = stored.Hash
				}
				store = s
			}

			client, err := buildClient(cmd)
			if err != nil {
				return err
			}
			report, err := stability.Run(cmd.Context(), client, runs, baseline)
			if err != nil {
				return err
			}

			if store != nil && report.AllStable {
				err := store.Save(&stability.Baseline{
					Hash:       report.BaselineHash,
					SessionID:  report.SessionID,
					RecordedAt: report.CapturedAt,
				})
				if err != nil {
					return err
				}
			}

			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			fmt.Println(string(out))
			if !report.AllStable {
				return fmt.Errorf("digest unstable across %d runs", report.TotalRuns)
			}
			return nil
		},
	}
	cmd.Flags().Int("runs", 5, "Number of pipeline runs")
	cmd.Flags().String("baseline", "", "Baseline digest; defaults to the first run")
	cmd.Flags().String("state", "", "Baseline file; loaded before the session and updated after a stable one")
	return cmd
}
