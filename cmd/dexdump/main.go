// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Command dexdump decodes a .dex file and prints the requested section as
// indented JSON.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	dex "github.com/go-dex/dexparser"
	dlog "github.com/go-dex/dexparser/log"
)

func prettyPrint(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return "", err
	}
	return out.String(), nil
}

func runDump(cmd *cobra.Command, args []string) error {
	filename := args[0]
	fast, _ := cmd.Flags().GetBool("fast")
	verbose, _ := cmd.Flags().GetBool("verbose")

	opts := &dex.Options{Fast: fast}
	if verbose {
		opts.Logger = dlog.NewStdLogger(os.Stderr)
	}

	df, err := dex.Open(filename, opts)
	if err != nil {
		return fmt.Errorf("opening %s: %w", filename, err)
	}
	defer df.Close()

	printSection := func(name string, v interface{}) error {
		s, err := prettyPrint(v)
		if err != nil {
			return err
		}
		fmt.Printf("--- %s ---\n%s\n", name, s)
		return nil
	}

	any := false
	if ok, _ := cmd.Flags().GetBool("strings"); ok {
		any = true
		if err := printSection("strings", df.Strings); err != nil {
			return err
		}
	}
	if ok, _ := cmd.Flags().GetBool("types"); ok {
		any = true
		if err := printSection("types", df.Types); err != nil {
			return err
		}
	}
	if ok, _ := cmd.Flags().GetBool("classes"); ok {
		any = true
		if err := printSection("classes", df.ClassDefs); err != nil {
			return err
		}
	}
	if ok, _ := cmd.Flags().GetBool("anomalies"); ok {
		any = true
		if err := printSection("anomalies", df.Anomalies); err != nil {
			return err
		}
	}
	if !any {
		return printSection("header", struct {
			Checksum     uint32
			LittleEndian bool
			NumStrings   int
			NumTypes     int
			NumClasses   int
		}{df.Checksum, df.LittleEndian, len(df.Strings), len(df.Types), len(df.ClassDefs)})
	}
	return nil
}

func main() {
	root := &cobra.Command{
		Use:   "dexdump <file.dex>",
		Short: "Decode and inspect a Dalvik executable",
		Args:  cobra.ExactArgs(1),
		RunE:  runDump,
	}
	root.Flags().Bool("fast", false, "skip per-class field/method/code resolution")
	root.Flags().Bool("verbose", false, "log non-fatal diagnostics to stderr")
	root.Flags().Bool("strings", false, "print the resolved string pool")
	root.Flags().Bool("types", false, "print the resolved type pool")
	root.Flags().Bool("classes", false, "print resolved class definitions")
	root.Flags().Bool("anomalies", false, "print the anomalies list (Parse itself adds none)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
