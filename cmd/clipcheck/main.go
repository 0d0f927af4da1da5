// clipcheck validates prefab yaml against the playback naming contract:
// it builds every clip, the controller asset, and every entity headless
// and reports the first configuration error it finds.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/animplay/ecs"
	"github.com/milk9111/animplay/playback"
	"github.com/milk9111/animplay/prefabs"
)

func main() {
	clipsFile := flag.String("clips", "clips.yaml", "clips spec file")
	controllerFile := flag.String("controller", "controller.yaml", "controller spec file")
	flag.Parse()

	clipsSpec, err := prefabs.LoadClipsSpec(*clipsFile)
	if err != nil {
		log.Fatal(err)
	}
	clips, err := prefabs.BuildClips(clipsSpec.Clips, nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("clips: %d ok\n", len(clips))

	ctrlSpec, err := prefabs.LoadControllerSpec(*controllerFile)
	if err != nil {
		log.Fatal(err)
	}
	asset, err := prefabs.BuildController(ctrlSpec, clips)
	if err != nil {
		log.Fatal(err)
	}
	if asset.Name != playback.ControllerName {
		log.Fatalf("controller %q will be rejected at bind time; playback expects %q", asset.Name, playback.ControllerName)
	}
	fmt.Printf("controller %q: ok\n", asset.Name)

	entities := flag.Args()
	if len(entities) == 0 {
		entities = findEntityFiles(*clipsFile, *controllerFile)
	}
	w := ecs.NewWorld()
	for _, name := range entities {
		spec, err := prefabs.LoadEntitySpec(name)
		if err != nil {
			log.Fatal(err)
		}
		if _, err := prefabs.BuildEntity(w, spec, asset, clips); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("entity %q: ok\n", spec.Name)
	}
}

// findEntityFiles lists the yaml files under prefabs/data/ that are not
// the clips or controller specs.
func findEntityFiles(skip ...string) []string {
	matches, err := filepath.Glob(filepath.Join("prefabs", "data", "*.yaml"))
	if err != nil {
		return nil
	}
	var out []string
	for _, m := range matches {
		base := filepath.Base(m)
		skipped := false
		for _, s := range skip {
			if strings.EqualFold(base, filepath.Base(s)) {
				skipped = true
				break
			}
		}
		if !skipped {
			out = append(out, base)
		}
	}
	if len(out) == 0 {
		fmt.Fprintln(os.Stderr, "no entity prefabs found")
	}
	return out
}
