// Spike 1: Go ↔ pdfplumber over NDJSON on stdout.
//
// Drives extract_tables.py against a real statement and dumps whatever
// comes back, one printed block per table. This proved out the wire
// protocol (header line, per-page lines, error envelope) before it moved
// into internal/extract/plumber.
//
// Usage: go run ./spike1 [flags] <statement.pdf>
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/exec"
)

type errorEnvelope struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type pageLine struct {
	Page   int           `json:"page"`
	Tables [][][]*string `json:"tables"`
}

func main() {
	script := flag.String("script", "internal/extract/plumber/extract_tables.py", "path to the extraction helper")
	mode := flag.String("mode", "tables", "text or tables")
	password := flag.String("password", "", "document password")
	settings := flag.String("settings", "{}", "table settings JSON")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: spike1 [flags] <statement.pdf>")
		os.Exit(2)
	}

	args := []string{*script, flag.Arg(0), "--mode", *mode}
	if *password != "" {
		args = append(args, "--password", *password)
	}
	if *mode == "tables" {
		args = append(args, "--settings", *settings)
	}

	cmd := exec.Command("python3", args...)
	cmd.Stderr = os.Stderr
	out, err := cmd.StdoutPipe()
	if err != nil {
		panic(err)
	}
	if err := cmd.Start(); err != nil {
		panic(err)
	}

	sc := bufio.NewScanner(out)
	// A dense page can blow past the default 64K line limit.
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()

		var env errorEnvelope
		if json.Unmarshal(line, &env) == nil && env.Error != nil {
			fmt.Printf("helper error %s: %s\n", env.Error.Code, env.Error.Message)
			break
		}

		if *mode == "text" {
			var t struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal(line, &t); err != nil {
				panic(err)
			}
			fmt.Println(t.Text)
			continue
		}

		// The header line is the only one carrying "pages".
		var header struct {
			Pages *int `json:"pages"`
		}
		if json.Unmarshal(line, &header) == nil && header.Pages != nil {
			fmt.Printf("document has %d pages\n", *header.Pages)
			continue
		}

		var page pageLine
		if err := json.Unmarshal(line, &page); err != nil {
			panic(err)
		}
		for ti, table := range page.Tables {
			fmt.Printf("page %d table %d: %d rows\n", page.Page, ti, len(table))
			for _, row := range table {
				for i, cell := range row {
					if i > 0 {
						fmt.Print(" | ")
					}
					if cell == nil {
						fmt.Print("<nil>")
					} else {
						fmt.Print(*cell)
					}
				}
				fmt.Println()
			}
		}
	}
	if err := sc.Err(); err != nil {
		panic(err)
	}
	if err := cmd.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, "helper exit:", err)
		os.Exit(1)
	}
}
