// wadinfo prints the directory of a map archive and, when a level name is
// given, the decoded level statistics as YAML or a spew dump of the
// statistics, sectors and linedefs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mirge/wadview/level"
	"github.com/mirge/wadview/utils"
	"github.com/mirge/wadview/wad"
)

func main() {
	var wadPath, levelName string
	var dump bool
	flag.StringVar(&wadPath, "wad", "", "Path to the map archive")
	flag.StringVar(&levelName, "level", "", "Level name to decode (e.g. E1M1)")
	flag.BoolVar(&dump, "dump", false, "Spew-dump the decoded level instead of YAML stats")
	flag.Parse()

	if wadPath == "" {
		flag.PrintDefaults()
		return
	}

	a, err := wad.Open(wadPath)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	fmt.Printf("%v archive, %d lumps\n", a.Type(), a.NumLumps())
	for i, l := range a.Lumps() {
		kind := ""
		if len(l.Data) == 0 {
			kind = " (marker)"
		}
		fmt.Printf("%5d %-8s %7d bytes%s\n", i, l.Name, len(l.Data), kind)
	}

	if levelName == "" {
		return
	}

	lvl, err := level.Load(a, levelName)
	if err != nil {
		log.Fatal(err)
	}

	if dump {
		utils.Dump(lvl.Stats(), lvl.Sectors, lvl.Linedefs)
		return
	}
	out, err := yaml.Marshal(lvl.Stats())
	if err != nil {
		log.Fatal(err)
	}
	os.Stdout.Write(out)
}
