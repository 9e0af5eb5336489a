// config-test loads a pumpmon configuration file and reports what it found,
// for validating a config before deploying it.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chrissnell/pumpmon/pkg/config"
)

func main() {
	yamlFile := flag.String("yaml", "", "Path to YAML configuration file")
	flag.Parse()

	if *yamlFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -yaml <config.yaml>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	fmt.Printf("Loading YAML configuration: %s\n", *yamlFile)
	provider := config.NewYAMLProvider(*yamlFile)
	cfg, err := provider.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading YAML config: %v\n", err)
		os.Exit(1)
	}
	defer provider.Close()

	fmt.Println("\nValidation Results:")
	fmt.Println("===================")

	fmt.Printf("Generator - count: %d, interval: %v, seed: %d\n",
		cfg.Generator.Count, cfg.Generator.Interval, cfg.Generator.Seed)

	fmt.Printf("Controllers: %d\n", len(cfg.Controllers))
	restFound := false
	for _, con := range cfg.Controllers {
		fmt.Printf("  - type: %s\n", con.Type)
		if con.RESTServer != nil {
			restFound = true
			fmt.Printf("    rest: listen_addr=%q port=%d tls=%v\n",
				con.RESTServer.ListenAddr, con.RESTServer.Port,
				con.RESTServer.TLSCertPath != "" && con.RESTServer.TLSKeyPath != "")
		}
	}

	if !restFound {
		fmt.Println("\n✗ No rest controller configured - the service will have no HTTP surface")
		os.Exit(1)
	}

	fmt.Println("\n✓ Configuration is valid")
}
