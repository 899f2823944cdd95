package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/naveenspark/moviemania/pkg/domain"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func checkFormat(f string) error {
	switch f {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want table, json or yaml)", f)
}

func newMoviesCmd(e *env) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "movies",
		Short: "Browse the catalog without the TUI",
	}
	cmd.PersistentFlags().StringVarP(&output, "output", "o", formatTable, "Output format: table, json, yaml")

	list := &cobra.Command{
		Use:   "list",
		Short: "List every movie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(output); err != nil {
				return err
			}
			movies, err := e.client.ListMovies(cmd.Context())
			if err != nil {
				return fmt.Errorf("list movies: %w", err)
			}
			return writeMovies(cmd.OutOrStdout(), movies, output)
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one movie with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(output); err != nil {
				return err
			}
			movie, err := e.client.GetMovie(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("show movie: %w", err)
			}
			return writeMovie(cmd.OutOrStdout(), *movie, output)
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

func writeMovies(w io.Writer, movies []domain.Movie, format string) error {
	if movies == nil {
		movies = []domain.Movie{}
	}
	switch format {
	case formatJSON:
		return writeJSON(w, movies)
	case formatYAML:
		return writeYAML(w, movies)
	}

	if len(movies) == 0 {
		fmt.Fprintln(w, "No movies available")
		return nil
	}
	rows := make([][]string, 0, len(movies))
	for _, m := range movies {
		rows = append(rows, []string{m.ID, m.Title, m.Director, yearString(m.Year), m.Genre})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "DIRECTOR", "YEAR", "GENRE").
		Rows(rows...).
		StyleFunc(func(_, _ int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
	fmt.Fprintln(w, t.Render())
	return nil
}

func writeMovie(w io.Writer, m domain.Movie, format string) error {
	switch format {
	case formatJSON:
		return writeJSON(w, m)
	case formatYAML:
		return writeYAML(w, m)
	}

	fmt.Fprintf(w, "%s (%s)\n", m.Title, yearString(m.Year))
	fmt.Fprintf(w, "%-10s %s\n", "ID:", m.ID)
	fmt.Fprintf(w, "%-10s %s\n", "Director:", m.Director)
	fmt.Fprintf(w, "%-10s %s\n", "Genre:", m.Genre)
	if d := strings.TrimSpace(m.Description); d != "" {
		fmt.Fprintf(w, "\n%s\n", d)
	}
	fmt.Fprintln(w, "\nComments:")
	if len(m.Comments) == 0 {
		fmt.Fprintln(w, "  No comments available")
		return nil
	}
	for _, c := range m.Comments {
		fmt.Fprintf(w, "  - %s\n", c.Comment)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func yearString(y int) string {
	if y <= 0 {
		return "-"
	}
	return strconv.Itoa(y)
}
