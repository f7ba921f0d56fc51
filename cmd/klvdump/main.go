// Command klvdump builds a block from a named scenario, fills its KL
// data, and writes the block, KL-matrix, and KL-polynomial-store dump
// files (spec §6.2-6.4).
package main // import "github.com/atlasklv/klv/cmd/klvdump"

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/atlasklv/klv/dump"
	"github.com/atlasklv/klv/kl"
)

func main() {
	log.SetPrefix("klvdump: ")
	log.SetFlags(0)

	name := flag.String("scenario", "a1-split", "block scenario to build (see -list)")
	out := flag.String("out", "klvdump", "output path prefix; writes PREFIX.block, PREFIX.matrix, PREFIX.polys")
	list := flag.Bool("list", false, "print available scenarios and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: klvdump [options]

ex:
 $> klvdump -scenario a1-split -out /tmp/a1

Options:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *list {
		for _, n := range scenarioNames() {
			s, _ := lookupScenario(n)
			fmt.Printf("%-12s %s\n", s.name, s.summary)
		}
		return
	}

	s, err := lookupScenario(*name)
	if err != nil {
		flag.Usage()
		log.Fatal(err)
	}

	b := s.build()
	lastY := s.fillTo(b)

	e := kl.NewEngine(b)
	if err := e.Fill(lastY); err != nil {
		log.Fatalf("could not fill KL data: %v", err)
	}

	if err := writeFile(*out+".block", func(f *os.File) error { return dump.WriteBlock(f, b) }); err != nil {
		log.Fatalf("could not write block file: %v", err)
	}
	if err := writeFile(*out+".matrix", func(f *os.File) error { return dump.WriteMatrix(f, e, lastY) }); err != nil {
		log.Fatalf("could not write matrix file: %v", err)
	}
	if err := writeFile(*out+".polys", func(f *os.File) error { return dump.WritePolyStore(f, e.Store()) }); err != nil {
		log.Fatalf("could not write polynomial store file: %v", err)
	}

	fmt.Printf("wrote %s.{block,matrix,polys}: %d block elements, %d stored polynomials\n",
		*out, b.Size(), e.Store().Len())
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if werr := write(f); werr != nil {
		f.Close()
		return werr
	}
	return f.Close()
}
