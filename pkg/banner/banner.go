package banner

import (
	"fmt"

	"durableq/pkg/config"
)

const banner = `
██████╗ ██╗   ██╗██████╗  █████╗ ██████╗ ██╗     ███████╗ ██████╗
██╔══██╗██║   ██║██╔══██╗██╔══██╗██╔══██╗██║     ██╔════╝██╔═══██╗
██║  ██║██║   ██║██████╔╝███████║██████╔╝██║     █████╗  ██║   ██║
██║  ██║██║   ██║██╔══██╗██╔══██║██╔══██╗██║     ██╔══╝  ██║▄▄ ██║
██████╔╝╚██████╔╝██║  ██║██║  ██║██████╔╝███████╗███████╗╚██████╔╝
╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝ ╚══════╝╚══════╝ ╚══▀▀═╝
`

// Print writes the startup banner and a "what did we resolve to, and
// from where" report of the effective configuration.
func Print(eff config.EffectiveConfigResult, version string) {
	fmt.Print(banner)
	fmt.Println("== Config =====================================================")
	fmt.Printf("Listen:        %s\n", eff.Addr)
	fmt.Printf("Config source: %s\n", eff.Source)
	if version != "" {
		fmt.Printf("Version:       %s\n", version)
	}

	dlq := eff.Config.DLQ
	fmt.Println("\n== Durability queue ============================================")
	if !dlq.Enabled {
		fmt.Println("- disabled")
	} else {
		fmt.Printf("- base path:        %s\n", dlq.BasePath)
		fmt.Printf("- max disk bytes:   %d\n", dlq.MaxDisk.Int64())
		fmt.Printf("- batch ttl:        %s\n", dlq.BatchTTL.Duration())
		fmt.Printf("- replay on start:  %t\n", dlq.ReplayOnStartup)
		fmt.Printf("- replay interval:  %s\n", dlq.ReplayInterval.Duration())
		fmt.Printf("- cleanup interval: %s\n", dlq.CleanupInterval.Duration())
		fmt.Printf("- tables:           %v\n", dlq.Tables)
	}

	fmt.Println("\n== Endpoints ===================================================")
	fmt.Println("GET /healthz - durability queue health snapshot")
	fmt.Println("GET /metrics - Prometheus metrics")
}
