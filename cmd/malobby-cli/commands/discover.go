package commands

import (
	"bufio"
	"os"
	"strings"

	"malobby-backend/lib/serviceutil"
	"malobby-backend/services/fetcher"

	"github.com/spf13/cobra"
)

var (
	discoverInput  *string
	discoverOutput *string
)

func init() {
	discoverInput = discoverCmd.Flags().String("input", "summary_urls.txt", "File listing summary page urls, one per line.")
	discoverOutput = discoverCmd.Flags().String("output", "urls.txt", "File to write discovered disclosure urls to.")
	rootCmd.AddCommand(discoverCmd)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

var discoverCmd = &cobra.Command{
	Use:   "discover [--input <summary_urls.txt>] [--output <urls.txt>]",
	Short: "Collects disclosure urls from lobbyist search summary pages.",
	Run: func(cmd *cobra.Command, args []string) {
		summaries, err := readLines(*discoverInput)
		if err != nil {
			serviceutil.Fatal("failed to read summary urls", err)
		}

		f, err := fetcher.New(fetcher.Options{
			OutputDir: ".",
			StatePath: os.DevNull,
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize fetcher", err)
		}

		urls, err := f.Discover(cmd.Context(), summaries)
		if err != nil {
			serviceutil.Fatal("failed to discover disclosure urls", err)
		}

		err = os.WriteFile(*discoverOutput, []byte(strings.Join(urls, "\n")+"\n"), 0644)
		if err != nil {
			serviceutil.Fatal("failed to write url list", err)
		}
		cmd.Printf("wrote %d urls to %s\n", len(urls), *discoverOutput)
	},
}
