package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

// printResult prints resp in json format if requested, otherwise it renders
// the given rows as a table with the given header
func printResult(
	ctx *cli.Context, resp interface{}, header table.Row, rows []table.Row,
) error {
	if ctx.Bool(jsonFlag.Name) {
		return printJSON(ctx.App.Writer, resp)
	}
	printTable(ctx.App.Writer, header, rows)
	return nil
}

func printJSON(w io.Writer, resp interface{}) error {
	buf, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		return fmt.Errorf("unable to encode response: %w", err)
	}
	_, err = fmt.Fprintln(w, string(buf))
	return err
}

func printTable(w io.Writer, header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if len(header) > 0 {
		t.AppendHeader(header)
	}
	t.AppendRows(rows)
	t.Render()
}

var fieldValueHeader = table.Row{"Field", "Value"}
