package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"skrytki/internal/searchclient"
	"skrytki/internal/searchui"
	"skrytki/platform/config"
	"skrytki/platform/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := logger.NewWithWriter(cfg.Env, os.Stderr)

	client := searchclient.New(cfg, log)
	view := searchui.NewTerminalView(os.Stdout)

	searches := searchui.NewSearchController(client, view, view, searchui.SearchControllerConfig{
		Debounce: cfg.GetSearchDebounce(),
		Logger:   log,
	})
	defer searches.Close()

	details := searchui.NewDetailController(client, view.Detail(), view, log)
	defer details.Close()

	switch os.Args[1] {
	case "search":
		err = cmdSearch(searches, os.Args[2:])
	case "details":
		err = cmdDetails(details, os.Args[2:])
	case "interactive":
		runInteractive(os.Stdin, searches, details)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: skrytki <command> [flags]

Commands:
  search [-czy 0|1] [-limit N] <query>   search the registry once
  details <id>                           list every skrytka of the entity owning address <id>
  interactive                            read queries from stdin

Interactive input:
  <text>            search <text> now
  ~<text>           type <text>; searched after the debounce delay
  :opts <czy> <n>   set czy_urzad (0|1) and the result limit
  :d <id>           show details of address <id>
  :q                quit`)
}

func cmdSearch(searches *searchui.SearchController, args []string) error {
	defaults := searchui.DefaultOptions()

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	czy := fs.String("czy", "0", "Only offices (1) or every record (0)")
	limit := fs.Int("limit", defaults.Limit, "Maximum number of records")
	_ = fs.Parse(args)

	query := strings.Join(fs.Args(), " ")
	if query == "" {
		return fmt.Errorf("usage: skrytki search [-czy 0|1] [-limit N] <query>")
	}

	searches.SetOptions(searchui.OptionsFromRadio(*czy, strconv.Itoa(*limit)))
	searches.OnSubmit(query)
	searches.Wait()
	return nil
}

func cmdDetails(details *searchui.DetailController, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: skrytki details <id>")
	}

	details.OnOpenDetail(args[0])
	details.Wait()
	return nil
}

// runInteractive feeds stdin lines to the controllers until EOF or :q.
func runInteractive(in io.Reader, searches *searchui.SearchController, details *searchui.DetailController) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == ":q":
			return
		case strings.HasPrefix(line, ":opts"):
			fields := strings.Fields(strings.TrimPrefix(line, ":opts"))
			fields = append(fields, "", "")
			searches.SetOptions(searchui.OptionsFromRadio(fields[0], fields[1]))
			opts := searches.Options()
			fmt.Printf("czy_urzad=%t limit=%d\n", opts.CzyUrzad, opts.Limit)
		case strings.HasPrefix(line, ":d "):
			details.OnOpenDetail(strings.TrimSpace(strings.TrimPrefix(line, ":d ")))
			details.Wait()
		case strings.HasPrefix(line, "~"):
			searches.OnKeystroke(strings.TrimPrefix(line, "~"))
		default:
			if searches.OnSubmit(line) {
				searches.Wait()
			}
		}
	}
	searches.Wait()
}
