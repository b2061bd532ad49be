// Command validate performs offline integrity checks on a climate data tree
// before an extraction run: site table shape, projection descriptor
// presence, layer naming convention, duplicate layer names, and per
// sub-period grid geometry consistency. It reports per-phase pass/fail and
// exits non-zero when any phase fails.
//
// Usage:
//
//	go run ./cmd/validate -data ./data -category precipitation -sites ./data/sites.csv
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	projadapter "github.com/mvierula/climpoint/internal/adapter/proj"
	"github.com/mvierula/climpoint/internal/domain"
	"github.com/mvierula/climpoint/internal/pipeline"
	"github.com/mvierula/climpoint/internal/raster"
	"github.com/mvierula/climpoint/internal/sites"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataDir := flag.String("data", "", "data directory containing the category root")
	category := flag.String("category", "precipitation", "category directory name")
	sitesFile := flag.String("sites", "", "path to the site coordinate CSV")
	flag.Parse()

	if *dataDir == "" || *sitesFile == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*dataDir, *category, *sitesFile); code != 0 {
		os.Exit(code)
	}
}

func run(dataDir, category, sitesFile string) int {
	fmt.Println("=== Climate Data Tree Validation ===")
	fmt.Println()

	categoryRoot := filepath.Join(dataDir, category)
	phases := []*phase{
		checkSites(sitesFile),
		checkDescriptor(categoryRoot),
	}
	phases = append(phases, checkSubperiods(categoryRoot)...)

	failed := 0
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS  %s\n", p.name)
			continue
		}
		failed++
		fmt.Printf("FAIL  %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("      - %s\n", e)
		}
	}

	fmt.Println()
	if failed > 0 {
		fmt.Printf("%d of %d phases failed\n", failed, len(phases))
		return 1
	}
	fmt.Printf("all %d phases passed\n", len(phases))
	return 0
}

func checkSites(path string) *phase {
	p := &phase{name: "site coordinate table"}
	loaded, err := sites.Load(path)
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	seen := map[string]bool{}
	for _, s := range loaded {
		if seen[s.ID] {
			p.errorf("duplicate site identifier %q", s.ID)
		}
		seen[s.ID] = true
	}
	return p
}

func checkDescriptor(categoryRoot string) *phase {
	p := &phase{name: "projection descriptor"}
	path, err := projadapter.FindDescriptor(categoryRoot)
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	if _, err := projadapter.LoadDescriptor(path); err != nil {
		p.errorf("%v", err)
	}
	return p
}

// checkSubperiods validates naming and geometry for every sub-period
// directory, one phase per directory so failures stay localized.
func checkSubperiods(categoryRoot string) []*phase {
	discover := &phase{name: "sub-period discovery"}
	subs, err := pipeline.Subperiods(categoryRoot)
	if err != nil {
		discover.errorf("%v", err)
		return []*phase{discover}
	}

	phases := []*phase{discover}
	for _, sub := range subs {
		p := &phase{name: fmt.Sprintf("sub-period %s", sub)}
		phases = append(phases, p)

		paths, err := pipeline.GridFiles(filepath.Join(categoryRoot, sub))
		if err != nil {
			p.errorf("%v", err)
			continue
		}

		names := map[string]string{}
		var ref raster.GridInfo
		var refPath string
		for _, path := range paths {
			name := raster.LayerName(path)
			if _, err := domain.ParseLayerName(name); err != nil {
				p.errorf("%v", err)
			}
			if prev, dup := names[name]; dup {
				p.errorf("%s and %s both yield layer name %q", prev, path, name)
			}
			names[name] = path

			g, err := raster.ReadGrid(path)
			if err != nil {
				p.errorf("%v", err)
				continue
			}
			if refPath == "" {
				ref, refPath = g.Info, path
			} else if !raster.SameGeometry(ref, g.Info) {
				p.errorf("%s geometry does not match %s", path, refPath)
			}
		}
	}
	return phases
}
