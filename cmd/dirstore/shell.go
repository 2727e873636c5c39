package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/calvinalkan/dirstore"
)

// shellCommands feed the liner completer.
var shellCommands = []string{
	"set", "get", "rm", "ls", "du", "path", "clear", "help", "exit", "quit",
}

// historyFile returns the path to the shell history file.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".dirstore_history")
}

// runShell starts the interactive command loop against one directory.
func runShell(stdout io.Writer, dir *dirstore.Directory) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		var matches []string

		for _, cmd := range shellCommands {
			if strings.HasPrefix(cmd, strings.ToLower(prefix)) {
				matches = append(matches, cmd)
			}
		}

		return matches
	})

	if f, err := os.Open(historyFile()); err == nil {
		_, _ = line.ReadHistory(f)
		_ = f.Close()
	}

	fmt.Fprintf(stdout, "dirstore shell - %s\n", dir.Path())
	fmt.Fprintln(stdout, "Type 'help' for available commands.")

	for {
		input, err := line.Prompt("dirstore> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(stdout)

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			saveHistory(line)

			return nil
		case "help", "?":
			printShellHelp(stdout)
		case "shell":
			fmt.Fprintln(stdout, "already in a shell")
		default:
			if err := dispatch(stdout, dir, cmd, args); err != nil {
				fmt.Fprintf(stdout, "error: %v\n", err)
			}
		}
	}

	saveHistory(line)

	return nil
}

func saveHistory(line *liner.State) {
	path := historyFile()
	if path == "" {
		return
	}

	f, err := os.Create(path)
	if err != nil {
		return
	}

	_, _ = line.WriteHistory(f)
	_ = f.Close()
}

func printShellHelp(stdout io.Writer) {
	fmt.Fprint(stdout, `Commands:
  set <key> <value>   store a string value under key
  get <key>           print the stored value for key
  rm <key>            delete the value for key
  ls                  list stored files (names are hashed keys)
  du                  print total disk usage in bytes
  path <key>          print the file path backing key
  clear               remove the whole directory
  help                show this help
  exit / quit / q     leave the shell
`)
}
