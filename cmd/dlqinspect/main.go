// Command dlqinspect reports the durability queue's on-disk state for
// operators, without starting any background loops.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"durableq/pkg/dlq"
)

func main() {
	var base, tables string
	flag.StringVar(&base, "base", "", "durability queue base path")
	flag.StringVar(&tables, "tables", "", "comma-separated table names")
	flag.Parse()

	if base == "" || tables == "" {
		fmt.Fprintln(os.Stderr, "--base and --tables are required")
		os.Exit(2)
	}

	var tableList []string
	for _, t := range strings.Split(tables, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tableList = append(tableList, t)
		}
	}

	cfg := dlq.Config{Enabled: true, BasePath: base, Tables: tableList}
	stats, err := dlq.Stats(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stats failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("base path:       %s\n", base)
	fmt.Printf("batches pending: %d\n", stats.BatchesPending)
	fmt.Printf("records pending: %d\n", stats.RecordsPending)
	fmt.Printf("disk usage:      %.2f MB\n", stats.DiskUsageMB)

	for _, table := range tableList {
		paths, err := dlq.List(base, table)
		if err != nil {
			fmt.Fprintf(os.Stderr, "list %s failed: %v\n", table, err)
			continue
		}
		fmt.Printf("\n%s: %d batch(es)\n", table, len(paths))
		for _, p := range paths {
			fmt.Printf("  %s\n", p)
		}
	}
}
