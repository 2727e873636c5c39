// dirstore is a small CLI for inspecting and editing dirstore
// directories - keyed stores where each value lives in its own file.
//
// Usage:
//
//	dirstore [flags] <command> [args]
//
// Flags:
//
//	-d, --dir PATH     operate on an explicit directory path
//	-n, --name NAME    operate on a named store under the base directory
//	-c, --config PATH  config file (default: ~/.config/dirstore/config.json)
//
// Commands:
//
//	set <key> <value>   store a string value under key
//	get <key>           print the stored value for key
//	rm <key>            delete the value for key
//	ls                  list stored files (names are hashed keys)
//	du                  print total disk usage in bytes
//	path <key>          print the file path backing key
//	clear               remove the whole directory
//	shell               interactive mode
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/calvinalkan/dirstore"
	"github.com/calvinalkan/dirstore/internal/platform"
)

var (
	errMissingCommand = errors.New("missing command (run with --help for usage)")
	errUnknownCommand = errors.New("unknown command")
	errMissingKey     = errors.New("key is required")
	errMissingValue   = errors.New("value is required")
	errNoDirectory    = errors.New("no directory: pass --dir, --name, or set base_dir in the config")
	errKeyNotFound    = errors.New("key not found")
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr, os.Args[1:], platform.Environ()))
}

func run(stdout, stderr io.Writer, args []string, env map[string]string) int {
	flags := pflag.NewFlagSet("dirstore", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	dirPath := flags.StringP("dir", "d", "", "explicit directory path")
	name := flags.StringP("name", "n", "", "named store under the base directory")
	configPath := flags.StringP("config", "c", "", "config file path")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}

		return 2
	}

	rest := flags.Args()
	if len(rest) == 0 {
		fmt.Fprintf(stderr, "error: %v\n", errMissingCommand)

		return 2
	}

	dir, err := openDirectory(*dirPath, *name, *configPath, env)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)

		return 1
	}

	err = dispatch(stdout, dir, rest[0], rest[1:])
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)

		return 1
	}

	return 0
}

// openDirectory resolves the target directory from flags, the config
// file, and the platform base directories, in that order.
func openDirectory(dirPath, name, configPath string, env map[string]string) (*dirstore.Directory, error) {
	if dirPath != "" {
		return dirstore.New(dirPath)
	}

	cfg, err := loadConfig(configPath, env)
	if err != nil {
		return nil, err
	}

	base := cfg.BaseDir
	if base == "" {
		base = platform.CacheDir(env)
	}

	if name != "" {
		return dirstore.NewNamed(base, name)
	}

	if cfg.DefaultName != "" {
		return dirstore.NewNamed(base, cfg.DefaultName)
	}

	return nil, errNoDirectory
}

func dispatch(stdout io.Writer, dir *dirstore.Directory, command string, args []string) error {
	switch command {
	case "set":
		return cmdSet(dir, args)
	case "get":
		return cmdGet(stdout, dir, args)
	case "rm":
		return cmdRemove(dir, args)
	case "ls":
		return cmdList(stdout, dir)
	case "du":
		fmt.Fprintf(stdout, "%d\n", dir.DiskUsage())

		return nil
	case "path":
		if len(args) < 1 {
			return errMissingKey
		}

		fmt.Fprintln(stdout, dir.FilePath(args[0]))

		return nil
	case "clear":
		return dir.Clear()
	case "shell":
		return runShell(stdout, dir)
	default:
		return fmt.Errorf("%w: %s", errUnknownCommand, command)
	}
}

func cmdSet(dir *dirstore.Directory, args []string) error {
	if len(args) < 1 {
		return errMissingKey
	}

	if len(args) < 2 {
		return errMissingValue
	}

	return dir.WriteData([]byte(args[1]), args[0])
}

func cmdGet(stdout io.Writer, dir *dirstore.Directory, args []string) error {
	if len(args) < 1 {
		return errMissingKey
	}

	data, err := dir.Data(args[0])
	if err != nil {
		return err
	}

	if data == nil {
		return fmt.Errorf("%w: %s", errKeyNotFound, args[0])
	}

	fmt.Fprintf(stdout, "%s\n", data)

	return nil
}

func cmdRemove(dir *dirstore.Directory, args []string) error {
	if len(args) < 1 {
		return errMissingKey
	}

	return dir.WriteData(nil, args[0])
}

func cmdList(stdout io.Writer, dir *dirstore.Directory) error {
	entries, err := dir.Entries()
	if err != nil {
		return err
	}

	for _, entry := range entries {
		info, infoErr := entry.Info()
		if infoErr != nil || info.IsDir() {
			continue
		}

		fmt.Fprintf(stdout, "%10d  %s\n", info.Size(), entry.Name())
	}

	return nil
}
