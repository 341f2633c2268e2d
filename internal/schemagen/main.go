// Command schemagen writes the JSON schemas of every textdlg document kind.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/macropower/textdlg/pkg/config"
)

var outDir = flag.String("o", "schemas", "Output directory for the generated schemas")

func main() {
	flag.Parse()

	schemas, err := config.Schemas()
	if err != nil {
		log.Fatalf("generate JSON schemas: %v", err)
	}

	err = os.MkdirAll(*outDir, 0o750)
	if err != nil {
		log.Fatalf("create output directory: %v", err)
	}

	for name, data := range schemas {
		err = os.WriteFile(filepath.Join(*outDir, name), data, 0o600)
		if err != nil {
			log.Fatalf("write schema file: %v", err)
		}
	}
}
