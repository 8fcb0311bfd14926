// Command panefs-sync copies (or moves) a set of source files to one or
// more destination directories, with optional content verification and
// policy-driven skip decisions.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	appcmd "github.com/panefs/syncengine/cmd"
	"github.com/panefs/syncengine/pkg/comparison"
	"github.com/panefs/syncengine/pkg/hashing"
	"github.com/panefs/syncengine/pkg/logging"
	"github.com/panefs/syncengine/pkg/syncengine"
)

// rootConfiguration stores configuration for the root (and only) command.
var rootConfiguration struct {
	// to holds the destination directories, repeatable via --to.
	to []string
	// move requests copy-then-delete-source semantics.
	move bool
	// compareMethod names the skip policy.
	compareMethod string
	// hashAlgorithm names the digest algorithm.
	hashAlgorithm string
	// verify enables post-copy digest verification.
	verify bool
	// threshold overrides the store monitor's promotion threshold.
	threshold int
	// logLevel names the verbosity level (disabled|error|warn|info|debug|trace).
	logLevel string
}

func rootMain(_ *cobra.Command, sources []string) error {
	if len(rootConfiguration.to) == 0 {
		return errors.New("at least one --to destination is required")
	}

	level, ok := logging.NameToLevel(rootConfiguration.logLevel)
	if !ok {
		return errors.Errorf("invalid --log-level: %s", rootConfiguration.logLevel)
	}
	logging.DebugEnabled = level >= logging.LevelDebug

	var method comparison.Method
	if err := method.UnmarshalText([]byte(rootConfiguration.compareMethod)); err != nil {
		return errors.Wrap(err, "invalid --compare-method")
	}

	var algorithm hashing.Algorithm
	if err := algorithm.UnmarshalText([]byte(rootConfiguration.hashAlgorithm)); err != nil {
		return errors.Wrap(err, "invalid --hash-algorithm")
	}

	options := syncengine.SyncOptions{
		Move:              rootConfiguration.move,
		CompareMethod:     method,
		HashAlgorithm:     algorithm,
		HasHashAlgorithm:  rootConfiguration.hashAlgorithm != "",
		VerifyDestination: rootConfiguration.verify,
		Threshold:         rootConfiguration.threshold,
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd())) || isatty.IsTerminal(os.Stdout.Fd())
	color.NoColor = !interactive

	engine := syncengine.New()
	result := engine.Sync(sources, rootConfiguration.to, options, newLiveObserver(), nil)

	if result.ItemsFailed > 0 || result.Cancelled || result.StoreFailureAbort {
		return errors.New("sync completed with errors")
	}
	return nil
}

var rootCommand = &cobra.Command{
	Use:          "panefs-sync <source>...",
	Short:        "Copy or move files to one or more destination directories",
	Args:         cobra.MinimumNArgs(1),
	RunE:         rootMain,
	SilenceUsage: true,
}

func init() {
	// Load a local .env file for default overrides, if present. A missing
	// file is not an error.
	_ = godotenv.Load()

	flags := rootCommand.Flags()
	flags.StringSliceVar(&rootConfiguration.to, "to", nil, "Specify a destination directory (repeatable)")
	flags.BoolVar(&rootConfiguration.move, "move", false, "Delete each source after it's copied to every destination")
	flags.StringVar(&rootConfiguration.compareMethod, "compare-method", envDefault("PANEFS_COMPARE_METHOD", "size-mtime"), "Specify the skip policy (none|size|mtime|size-mtime|hash)")
	flags.StringVar(&rootConfiguration.hashAlgorithm, "hash-algorithm", envDefault("PANEFS_HASH_ALGORITHM", ""), "Specify the digest algorithm (blake3|sha256|xxh3)")
	flags.BoolVar(&rootConfiguration.verify, "verify", false, "Recompute and compare the destination digest after copy")
	flags.IntVar(&rootConfiguration.threshold, "threshold", 0, "Specify the consecutive-error threshold before a destination is marked unavailable (0 = default)")
	flags.StringVar(&rootConfiguration.logLevel, "log-level", "info", "Specify the log verbosity (disabled|error|warn|info|debug|trace)")
}

// envDefault returns the value of the named environment variable, falling
// back to def if it's unset. It's used so godotenv-loaded values become flag
// defaults without requiring the user to pass a duplicate command-line flag.
func envDefault(name, def string) string {
	if value, ok := os.LookupEnv(name); ok {
		return value
	}
	return def
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		appcmd.Fatal(err)
	}
}
